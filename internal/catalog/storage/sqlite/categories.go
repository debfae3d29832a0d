package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/linagora/Argus-du-Libre/internal/catalog/storage"
)

// CreateCategory inserts one category and returns its id.
func (s *Store) CreateCategory(ctx context.Context, weight int) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := s.ready(); err != nil {
		return 0, err
	}
	if weight < 0 {
		return 0, fmt.Errorf("weight must not be negative")
	}
	res, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO categories (weight) VALUES (?)`, weight)
	if err != nil {
		return 0, fmt.Errorf("create category: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create category id: %w", err)
	}
	return id, nil
}

// UpdateCategoryWeight changes the weight of one category.
func (s *Store) UpdateCategoryWeight(ctx context.Context, id int64, weight int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	if weight < 0 {
		return fmt.Errorf("weight must not be negative")
	}
	res, err := s.sqlDB.ExecContext(ctx,
		`UPDATE categories SET weight = ? WHERE id = ?`, weight, id)
	if err != nil {
		return fmt.Errorf("update category weight: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update category weight: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListCategories returns all categories ordered by weight then id.
func (s *Store) ListCategories(ctx context.Context) ([]storage.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, weight FROM categories ORDER BY weight ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []storage.Category
	for rows.Next() {
		var category storage.Category
		if err := rows.Scan(&category.ID, &category.Weight); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// UpsertCategoryTranslation sets the localized name of one category.
func (s *Store) UpsertCategoryTranslation(ctx context.Context, translation storage.Translation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	locale := strings.TrimSpace(translation.Locale)
	name := strings.TrimSpace(translation.Name)
	if locale == "" {
		return fmt.Errorf("locale is required")
	}
	if name == "" {
		return fmt.Errorf("name is required")
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO category_translations (category_id, locale, name)
		 VALUES (?, ?, ?)
		 ON CONFLICT (category_id, locale) DO UPDATE SET name = excluded.name`,
		translation.OwnerID, locale, name)
	if err != nil {
		return fmt.Errorf("upsert category translation: %w", err)
	}
	return nil
}

// CategoryNames returns localized category names keyed by category id.
func (s *Store) CategoryNames(ctx context.Context, locale string) (map[int64]string, error) {
	return s.translationNames(ctx, "category_translations", "category_id", locale)
}

// CreateField inserts one field and returns its id.
func (s *Store) CreateField(ctx context.Context, field storage.Field) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := s.ready(); err != nil {
		return 0, err
	}
	slug := strings.TrimSpace(field.Slug)
	if slug == "" {
		return 0, fmt.Errorf("slug is required")
	}
	if field.CategoryID <= 0 {
		return 0, fmt.Errorf("category id is required")
	}
	if field.Weight < 0 {
		return 0, fmt.Errorf("weight must not be negative")
	}
	if field.AnalysisPeriodicityDays < 0 {
		return 0, fmt.Errorf("analysis periodicity must not be negative")
	}
	res, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO fields (category_id, slug, weight, analysis_periodicity_days)
		 VALUES (?, ?, ?, ?)`,
		field.CategoryID, slug, field.Weight, field.AnalysisPeriodicityDays)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, storage.ErrAlreadyExists
		}
		return 0, fmt.Errorf("create field: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create field id: %w", err)
	}
	return id, nil
}

// UpdateField changes the weight and analysis periodicity of one field.
func (s *Store) UpdateField(ctx context.Context, id int64, weight int, periodicityDays int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	if weight < 0 {
		return fmt.Errorf("weight must not be negative")
	}
	if periodicityDays < 0 {
		return fmt.Errorf("analysis periodicity must not be negative")
	}
	res, err := s.sqlDB.ExecContext(ctx,
		`UPDATE fields SET weight = ?, analysis_periodicity_days = ? WHERE id = ?`,
		weight, periodicityDays, id)
	if err != nil {
		return fmt.Errorf("update field: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update field: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListFields returns all fields ordered by weight then id.
func (s *Store) ListFields(ctx context.Context) ([]storage.Field, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, category_id, slug, weight, analysis_periodicity_days
		   FROM fields
		  ORDER BY weight ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list fields: %w", err)
	}
	defer rows.Close()

	var fields []storage.Field
	for rows.Next() {
		var field storage.Field
		if err := rows.Scan(&field.ID, &field.CategoryID, &field.Slug, &field.Weight, &field.AnalysisPeriodicityDays); err != nil {
			return nil, fmt.Errorf("scan field: %w", err)
		}
		fields = append(fields, field)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list fields: %w", err)
	}
	return fields, nil
}

// GetFieldBySlug returns one field by slug.
func (s *Store) GetFieldBySlug(ctx context.Context, slug string) (storage.Field, error) {
	if err := ctx.Err(); err != nil {
		return storage.Field{}, err
	}
	if err := s.ready(); err != nil {
		return storage.Field{}, err
	}
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return storage.Field{}, fmt.Errorf("slug is required")
	}
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, category_id, slug, weight, analysis_periodicity_days
		   FROM fields WHERE slug = ?`, slug)
	var field storage.Field
	err := row.Scan(&field.ID, &field.CategoryID, &field.Slug, &field.Weight, &field.AnalysisPeriodicityDays)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Field{}, storage.ErrNotFound
		}
		return storage.Field{}, fmt.Errorf("get field: %w", err)
	}
	return field, nil
}

// UpsertFieldTranslation sets the localized name of one field.
func (s *Store) UpsertFieldTranslation(ctx context.Context, translation storage.Translation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	locale := strings.TrimSpace(translation.Locale)
	name := strings.TrimSpace(translation.Name)
	if locale == "" {
		return fmt.Errorf("locale is required")
	}
	if name == "" {
		return fmt.Errorf("name is required")
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO field_translations (field_id, locale, name)
		 VALUES (?, ?, ?)
		 ON CONFLICT (field_id, locale) DO UPDATE SET name = excluded.name`,
		translation.OwnerID, locale, name)
	if err != nil {
		return fmt.Errorf("upsert field translation: %w", err)
	}
	return nil
}

// FieldNames returns localized field names keyed by field id.
func (s *Store) FieldNames(ctx context.Context, locale string) (map[int64]string, error) {
	return s.translationNames(ctx, "field_translations", "field_id", locale)
}

func (s *Store) translationNames(ctx context.Context, table, idColumn, locale string) (map[int64]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		fmt.Sprintf(`SELECT %s, locale, name FROM %s`, idColumn, table))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()

	var translations []translationRow
	for rows.Next() {
		var row translationRow
		if err := rows.Scan(&row.ownerID, &row.locale, &row.name); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		translations = append(translations, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	return resolveNames(translations, strings.TrimSpace(locale)), nil
}
