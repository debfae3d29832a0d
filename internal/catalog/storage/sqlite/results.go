package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/linagora/Argus-du-Libre/internal/catalog/score"
	"github.com/linagora/Argus-du-Libre/internal/catalog/scoring"
	"github.com/linagora/Argus-du-Libre/internal/catalog/storage"
)

// CreateResult inserts one analysis result and returns its id.
func (s *Store) CreateResult(ctx context.Context, result storage.Result) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := s.ready(); err != nil {
		return 0, err
	}
	if result.SoftwareID <= 0 {
		return 0, fmt.Errorf("software id is required")
	}
	if result.FieldID <= 0 {
		return 0, fmt.Errorf("field id is required")
	}
	if result.Score < 0 || result.Score > score.Max {
		return 0, fmt.Errorf("score %s is out of range", result.Score)
	}
	createdAt := result.CreatedAt.UTC()
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	res, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO results (software_id, field_id, score, is_published, is_manual, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		result.SoftwareID,
		result.FieldID,
		int64(result.Score),
		boolToInt(result.IsPublished),
		boolToInt(result.IsManual),
		toMillis(createdAt),
	)
	if err != nil {
		return 0, fmt.Errorf("create result: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create result id: %w", err)
	}
	return id, nil
}

// SetResultPublished toggles publication of one result.
func (s *Store) SetResultPublished(ctx context.Context, id int64, published bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	res, err := s.sqlDB.ExecContext(ctx,
		`UPDATE results SET is_published = ? WHERE id = ?`,
		boolToInt(published), id)
	if err != nil {
		return fmt.Errorf("set result published: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set result published: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListResults returns the most recent results first.
func (s *Store) ListResults(ctx context.Context, limit int) ([]storage.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, software_id, field_id, score, is_published, is_manual, created_at
		   FROM results
		  ORDER BY created_at DESC, id DESC
		  LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	var results []storage.Result
	for rows.Next() {
		var result storage.Result
		var scoreValue int64
		var published, manual int64
		var createdAt int64
		if err := rows.Scan(&result.ID, &result.SoftwareID, &result.FieldID, &scoreValue, &published, &manual, &createdAt); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		result.Score = score.FromHundredths(scoreValue)
		result.IsPublished = published != 0
		result.IsManual = manual != 0
		result.CreatedAt = fromMillis(createdAt)
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	return results, nil
}

// ScoringRows returns published results for the software joined with field
// and category weights.
func (s *Store) ScoringRows(ctx context.Context, softwareID int64) ([]scoring.ResultRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT results.id, results.field_id, fields.weight,
		        fields.category_id, categories.weight,
		        results.score, results.created_at
		   FROM results
		   JOIN fields ON fields.id = results.field_id
		   JOIN categories ON categories.id = fields.category_id
		  WHERE results.software_id = ? AND results.is_published = 1`,
		softwareID)
	if err != nil {
		return nil, fmt.Errorf("scoring rows: %w", err)
	}
	defer rows.Close()

	var result []scoring.ResultRow
	for rows.Next() {
		var row scoring.ResultRow
		var scoreValue int64
		var createdAt int64
		if err := rows.Scan(&row.ResultID, &row.FieldID, &row.FieldWeight,
			&row.CategoryID, &row.CategoryWeight, &scoreValue, &createdAt); err != nil {
			return nil, fmt.Errorf("scan scoring row: %w", err)
		}
		row.Score = score.FromHundredths(scoreValue)
		row.CreatedAt = fromMillis(createdAt)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scoring rows: %w", err)
	}
	return result, nil
}
