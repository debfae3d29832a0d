package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/linagora/Argus-du-Libre/internal/catalog/storage"
)

const softwareColumns = `id, name, slug, logo_url, repository_url, website_url,
	state, featured_at, created_at, updated_at`

func scanSoftware(scanner interface{ Scan(...any) error }) (storage.Software, error) {
	var software storage.Software
	var state string
	var featuredAt sql.NullInt64
	var createdAt, updatedAt int64
	err := scanner.Scan(
		&software.ID,
		&software.Name,
		&software.Slug,
		&software.LogoURL,
		&software.RepositoryURL,
		&software.WebsiteURL,
		&state,
		&featuredAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return storage.Software{}, err
	}
	software.State = storage.SoftwareState(state)
	if featuredAt.Valid {
		at := fromMillis(featuredAt.Int64)
		software.FeaturedAt = &at
	}
	software.CreatedAt = fromMillis(createdAt)
	software.UpdatedAt = fromMillis(updatedAt)
	return software, nil
}

func validateSoftware(software storage.Software) (storage.Software, error) {
	software.Name = strings.TrimSpace(software.Name)
	software.Slug = strings.TrimSpace(software.Slug)
	if software.Name == "" {
		return storage.Software{}, fmt.Errorf("name is required")
	}
	if software.Slug == "" {
		return storage.Software{}, fmt.Errorf("slug is required")
	}
	if !software.State.Valid() {
		return storage.Software{}, fmt.Errorf("state %q is not valid", software.State)
	}
	return software, nil
}

// CreateSoftware inserts one software entry and returns its id.
func (s *Store) CreateSoftware(ctx context.Context, software storage.Software) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := s.ready(); err != nil {
		return 0, err
	}
	software, err := validateSoftware(software)
	if err != nil {
		return 0, err
	}
	now := time.Now().UTC()
	createdAt := software.CreatedAt.UTC()
	if createdAt.IsZero() {
		createdAt = now
	}
	var featuredAt any
	if software.FeaturedAt != nil {
		featuredAt = toMillis(*software.FeaturedAt)
	}
	res, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO software (
		   name, slug, logo_url, repository_url, website_url,
		   state, featured_at, created_at, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		software.Name,
		software.Slug,
		software.LogoURL,
		software.RepositoryURL,
		software.WebsiteURL,
		string(software.State),
		featuredAt,
		toMillis(createdAt),
		toMillis(createdAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, storage.ErrAlreadyExists
		}
		return 0, fmt.Errorf("create software: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create software id: %w", err)
	}
	return id, nil
}

// UpdateSoftware replaces the editable attributes of one software entry.
func (s *Store) UpdateSoftware(ctx context.Context, software storage.Software) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	if software.ID <= 0 {
		return fmt.Errorf("software id is required")
	}
	software, err := validateSoftware(software)
	if err != nil {
		return err
	}
	res, err := s.sqlDB.ExecContext(ctx,
		`UPDATE software
		    SET name = ?, slug = ?, logo_url = ?, repository_url = ?,
		        website_url = ?, updated_at = ?
		  WHERE id = ?`,
		software.Name,
		software.Slug,
		software.LogoURL,
		software.RepositoryURL,
		software.WebsiteURL,
		toMillis(time.Now().UTC()),
		software.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("update software: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update software: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// SetSoftwareState moves one software entry through the publication lifecycle.
func (s *Store) SetSoftwareState(ctx context.Context, id int64, state storage.SoftwareState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	if !state.Valid() {
		return fmt.Errorf("state %q is not valid", state)
	}
	res, err := s.sqlDB.ExecContext(ctx,
		`UPDATE software SET state = ?, updated_at = ? WHERE id = ?`,
		string(state), toMillis(time.Now().UTC()), id)
	if err != nil {
		return fmt.Errorf("set software state: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set software state: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// SetSoftwareFeatured sets or clears the featured timestamp of one entry.
func (s *Store) SetSoftwareFeatured(ctx context.Context, id int64, featuredAt *time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	var value any
	if featuredAt != nil {
		value = toMillis(*featuredAt)
	}
	res, err := s.sqlDB.ExecContext(ctx,
		`UPDATE software SET featured_at = ?, updated_at = ? WHERE id = ?`,
		value, toMillis(time.Now().UTC()), id)
	if err != nil {
		return fmt.Errorf("set software featured: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set software featured: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// GetSoftwareBySlug returns one software entry regardless of state.
func (s *Store) GetSoftwareBySlug(ctx context.Context, slug string) (storage.Software, error) {
	return s.getSoftwareBySlug(ctx, slug, false)
}

// GetPublishedSoftwareBySlug returns one published software entry.
func (s *Store) GetPublishedSoftwareBySlug(ctx context.Context, slug string) (storage.Software, error) {
	return s.getSoftwareBySlug(ctx, slug, true)
}

func (s *Store) getSoftwareBySlug(ctx context.Context, slug string, publishedOnly bool) (storage.Software, error) {
	if err := ctx.Err(); err != nil {
		return storage.Software{}, err
	}
	if err := s.ready(); err != nil {
		return storage.Software{}, err
	}
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return storage.Software{}, fmt.Errorf("slug is required")
	}
	query := `SELECT ` + softwareColumns + ` FROM software WHERE slug = ?`
	args := []any{slug}
	if publishedOnly {
		query += ` AND state = ?`
		args = append(args, string(storage.StatePublished))
	}
	software, err := scanSoftware(s.sqlDB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Software{}, storage.ErrNotFound
		}
		return storage.Software{}, fmt.Errorf("get software: %w", err)
	}
	return software, nil
}

// ListSoftware returns every software entry ordered by name.
func (s *Store) ListSoftware(ctx context.Context) ([]storage.Software, error) {
	return s.querySoftware(ctx,
		`SELECT `+softwareColumns+` FROM software ORDER BY name COLLATE NOCASE ASC, id ASC`)
}

// ListFeaturedSoftware returns published featured entries, most recently
// featured first.
func (s *Store) ListFeaturedSoftware(ctx context.Context, limit int) ([]storage.Software, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}
	return s.querySoftware(ctx,
		`SELECT `+softwareColumns+`
		   FROM software
		  WHERE state = ? AND featured_at IS NOT NULL
		  ORDER BY featured_at DESC, id ASC
		  LIMIT ?`,
		string(storage.StatePublished), limit)
}

// ListPublishedSoftwareByName returns published entries ordered by name.
func (s *Store) ListPublishedSoftwareByName(ctx context.Context, limit int) ([]storage.Software, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}
	return s.querySoftware(ctx,
		`SELECT `+softwareColumns+`
		   FROM software
		  WHERE state = ?
		  ORDER BY name COLLATE NOCASE ASC, id ASC
		  LIMIT ?`,
		string(storage.StatePublished), limit)
}

// ListPublishedSoftwareBySlugs returns published entries matching the slugs,
// in the order the slugs were given. Unknown slugs are skipped.
func (s *Store) ListPublishedSoftwareBySlugs(ctx context.Context, slugs []string) ([]storage.Software, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	if len(slugs) == 0 {
		return nil, nil
	}
	placeholders := strings.Repeat("?,", len(slugs))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, 0, len(slugs)+1)
	for _, slug := range slugs {
		args = append(args, strings.TrimSpace(slug))
	}
	args = append(args, string(storage.StatePublished))
	entries, err := s.querySoftware(ctx,
		`SELECT `+softwareColumns+`
		   FROM software
		  WHERE slug IN (`+placeholders+`) AND state = ?`,
		args...)
	if err != nil {
		return nil, err
	}
	bySlug := make(map[string]storage.Software, len(entries))
	for _, entry := range entries {
		bySlug[entry.Slug] = entry
	}
	ordered := make([]storage.Software, 0, len(entries))
	for _, slug := range slugs {
		if entry, ok := bySlug[strings.TrimSpace(slug)]; ok {
			ordered = append(ordered, entry)
		}
	}
	return ordered, nil
}

// SearchPublishedSoftware matches published entries whose name or localized
// overview block contains the query, featured entries first.
func (s *Store) SearchPublishedSoftware(ctx context.Context, query string, locale string) ([]storage.Software, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	pattern := "%" + escapeLike(query) + "%"
	return s.querySoftware(ctx,
		`SELECT DISTINCT `+prefixColumns("software", softwareColumns)+`
		   FROM software
		   LEFT JOIN blocks ON blocks.software_id = software.id AND blocks.locale = ?
		  WHERE software.state = ?
		    AND (software.name LIKE ? ESCAPE '\'
		         OR blocks.content LIKE ? ESCAPE '\')
		  ORDER BY software.featured_at IS NULL ASC, software.featured_at DESC,
		           software.created_at DESC, software.id ASC`,
		strings.TrimSpace(locale), string(storage.StatePublished), pattern, pattern)
}

func (s *Store) querySoftware(ctx context.Context, query string, args ...any) ([]storage.Software, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query software: %w", err)
	}
	defer rows.Close()

	var entries []storage.Software
	for rows.Next() {
		software, err := scanSoftware(rows)
		if err != nil {
			return nil, fmt.Errorf("scan software: %w", err)
		}
		entries = append(entries, software)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query software: %w", err)
	}
	return entries, nil
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}

func prefixColumns(table, columns string) string {
	parts := strings.Split(columns, ",")
	for i, part := range parts {
		parts[i] = table + "." + strings.TrimSpace(part)
	}
	return strings.Join(parts, ", ")
}
