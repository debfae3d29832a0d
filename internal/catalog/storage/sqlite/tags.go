package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/linagora/Argus-du-Libre/internal/catalog/storage"
)

// CreateTag inserts one tag and returns its id.
func (s *Store) CreateTag(ctx context.Context, tag storage.Tag) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := s.ready(); err != nil {
		return 0, err
	}
	name := strings.TrimSpace(tag.Name)
	slug := strings.TrimSpace(tag.Slug)
	if name == "" {
		return 0, fmt.Errorf("name is required")
	}
	if slug == "" {
		return 0, fmt.Errorf("slug is required")
	}
	res, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO tags (name, slug) VALUES (?, ?)`, name, slug)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, storage.ErrAlreadyExists
		}
		return 0, fmt.Errorf("create tag: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create tag id: %w", err)
	}
	return id, nil
}

// ListTags returns all tags ordered by name.
func (s *Store) ListTags(ctx context.Context) ([]storage.Tag, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.queryTags(ctx,
		`SELECT id, name, slug FROM tags ORDER BY name COLLATE NOCASE ASC, id ASC`)
}

// GetTagBySlug returns one tag by slug.
func (s *Store) GetTagBySlug(ctx context.Context, slug string) (storage.Tag, error) {
	if err := ctx.Err(); err != nil {
		return storage.Tag{}, err
	}
	if err := s.ready(); err != nil {
		return storage.Tag{}, err
	}
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return storage.Tag{}, fmt.Errorf("slug is required")
	}
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, name, slug FROM tags WHERE slug = ?`, slug)
	var tag storage.Tag
	if err := row.Scan(&tag.ID, &tag.Name, &tag.Slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Tag{}, storage.ErrNotFound
		}
		return storage.Tag{}, fmt.Errorf("get tag: %w", err)
	}
	return tag, nil
}

// AttachTag links a tag to a software entry. Re-attaching is a no-op.
func (s *Store) AttachTag(ctx context.Context, softwareID int64, tagID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT OR IGNORE INTO software_tags (software_id, tag_id) VALUES (?, ?)`,
		softwareID, tagID)
	if err != nil {
		return fmt.Errorf("attach tag: %w", err)
	}
	return nil
}

// DetachTag removes a tag link from a software entry.
func (s *Store) DetachTag(ctx context.Context, softwareID int64, tagID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`DELETE FROM software_tags WHERE software_id = ? AND tag_id = ?`,
		softwareID, tagID)
	if err != nil {
		return fmt.Errorf("detach tag: %w", err)
	}
	return nil
}

// ListSoftwareTags returns the tags attached to one software entry.
func (s *Store) ListSoftwareTags(ctx context.Context, softwareID int64) ([]storage.Tag, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.queryTags(ctx,
		`SELECT tags.id, tags.name, tags.slug
		   FROM tags
		   JOIN software_tags ON software_tags.tag_id = tags.id
		  WHERE software_tags.software_id = ?
		  ORDER BY tags.name COLLATE NOCASE ASC, tags.id ASC`,
		softwareID)
}

// ListPublishedSoftwareByTag returns published entries carrying the tag,
// ordered by name.
func (s *Store) ListPublishedSoftwareByTag(ctx context.Context, tagID int64) ([]storage.Software, error) {
	return s.querySoftware(ctx,
		`SELECT `+prefixColumns("software", softwareColumns)+`
		   FROM software
		   JOIN software_tags ON software_tags.software_id = software.id
		  WHERE software_tags.tag_id = ? AND software.state = ?
		  ORDER BY software.name COLLATE NOCASE ASC, software.id ASC`,
		tagID, string(storage.StatePublished))
}

// UpsertBlock sets localized long-form content on a software entry.
func (s *Store) UpsertBlock(ctx context.Context, block storage.Block) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	kind := strings.TrimSpace(block.Kind)
	locale := strings.TrimSpace(block.Locale)
	if block.SoftwareID <= 0 {
		return fmt.Errorf("software id is required")
	}
	if kind == "" {
		return fmt.Errorf("kind is required")
	}
	if locale == "" {
		return fmt.Errorf("locale is required")
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO blocks (software_id, kind, locale, content)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (software_id, kind, locale) DO UPDATE SET content = excluded.content`,
		block.SoftwareID, kind, locale, block.Content)
	if err != nil {
		return fmt.Errorf("upsert block: %w", err)
	}
	return nil
}

// GetBlock returns one content block, falling back from the requested locale
// to the default locale and then to any available locale.
func (s *Store) GetBlock(ctx context.Context, softwareID int64, kind string, locale string) (storage.Block, error) {
	if err := ctx.Err(); err != nil {
		return storage.Block{}, err
	}
	if err := s.ready(); err != nil {
		return storage.Block{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, software_id, kind, locale, content
		   FROM blocks
		  WHERE software_id = ? AND kind = ?
		  ORDER BY CASE locale WHEN ? THEN 0 WHEN ? THEN 1 ELSE 2 END, locale ASC
		  LIMIT 1`,
		softwareID, strings.TrimSpace(kind), strings.TrimSpace(locale), fallbackLocale)
	var block storage.Block
	err := row.Scan(&block.ID, &block.SoftwareID, &block.Kind, &block.Locale, &block.Content)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Block{}, storage.ErrNotFound
		}
		return storage.Block{}, fmt.Errorf("get block: %w", err)
	}
	return block, nil
}

func (s *Store) queryTags(ctx context.Context, query string, args ...any) ([]storage.Tag, error) {
	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}
	defer rows.Close()

	var tags []storage.Tag
	for rows.Next() {
		var tag storage.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Slug); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}
	return tags, nil
}
