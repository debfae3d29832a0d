package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/linagora/Argus-du-Libre/internal/catalog/storage"
)

// CreateMetric inserts one metric and returns its id.
func (s *Store) CreateMetric(ctx context.Context, metric storage.Metric) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := s.ready(); err != nil {
		return 0, err
	}
	slug := strings.TrimSpace(metric.Slug)
	if slug == "" {
		return 0, fmt.Errorf("slug is required")
	}
	if metric.FieldID <= 0 {
		return 0, fmt.Errorf("field id is required")
	}
	res, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO metrics (field_id, slug, collection_enabled) VALUES (?, ?, ?)`,
		metric.FieldID, slug, boolToInt(metric.CollectionEnabled))
	if err != nil {
		if isUniqueViolation(err) {
			return 0, storage.ErrAlreadyExists
		}
		return 0, fmt.Errorf("create metric: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create metric id: %w", err)
	}
	return id, nil
}

// UpsertMetricTranslation sets the localized name of one metric.
func (s *Store) UpsertMetricTranslation(ctx context.Context, translation storage.Translation) error {
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
		`INSERT INTO metric_translations (metric_id, locale, name)
		 VALUES (?, ?, ?)
		 ON CONFLICT (metric_id, locale) DO UPDATE SET name = excluded.name`,
		translation.OwnerID, locale, name)
	if err != nil {
		return fmt.Errorf("upsert metric translation: %w", err)
	}
	return nil
}

// RecordMetricValue appends one collected sample and returns its id.
func (s *Store) RecordMetricValue(ctx context.Context, value storage.MetricValue) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := s.ready(); err != nil {
		return 0, err
	}
	if value.MetricID <= 0 {
		return 0, fmt.Errorf("metric id is required")
	}
	if value.SoftwareID <= 0 {
		return 0, fmt.Errorf("software id is required")
	}
	collectedAt := value.CollectedAt.UTC()
	if collectedAt.IsZero() {
		collectedAt = time.Now().UTC()
	}
	res, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO metric_values (metric_id, software_id, value, source, collected_at)
		 VALUES (?, ?, ?, ?, ?)`,
		value.MetricID, value.SoftwareID, value.Value, value.Source, toMillis(collectedAt))
	if err != nil {
		return 0, fmt.Errorf("record metric value: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("record metric value id: %w", err)
	}
	return id, nil
}

// FieldMetricSeries returns collection-enabled metrics of the field that have
// values for the software, with samples ordered by collection time.
func (s *Store) FieldMetricSeries(ctx context.Context, softwareID int64, fieldID int64, locale string) ([]storage.MetricSeries, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT metrics.id, metrics.field_id, metrics.slug, metrics.collection_enabled,
		        metric_values.id, metric_values.value, metric_values.source,
		        metric_values.collected_at
		   FROM metrics
		   JOIN metric_values ON metric_values.metric_id = metrics.id
		  WHERE metrics.field_id = ?
		    AND metrics.collection_enabled = 1
		    AND metric_values.software_id = ?
		  ORDER BY metrics.slug ASC, metric_values.collected_at ASC, metric_values.id ASC`,
		fieldID, softwareID)
	if err != nil {
		return nil, fmt.Errorf("field metric series: %w", err)
	}
	defer rows.Close()

	var series []storage.MetricSeries
	index := make(map[int64]int)
	for rows.Next() {
		var metric storage.Metric
		var enabled int64
		var value storage.MetricValue
		var collectedAt int64
		if err := rows.Scan(&metric.ID, &metric.FieldID, &metric.Slug, &enabled,
			&value.ID, &value.Value, &value.Source, &collectedAt); err != nil {
			return nil, fmt.Errorf("scan metric series: %w", err)
		}
		metric.CollectionEnabled = enabled != 0
		value.MetricID = metric.ID
		value.SoftwareID = softwareID
		value.CollectedAt = fromMillis(collectedAt)

		pos, ok := index[metric.ID]
		if !ok {
			pos = len(series)
			index[metric.ID] = pos
			series = append(series, storage.MetricSeries{Metric: metric})
		}
		series[pos].Values = append(series[pos].Values, value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("field metric series: %w", err)
	}
	if len(series) == 0 {
		return series, nil
	}

	names, err := s.translationNames(ctx, "metric_translations", "metric_id", locale)
	if err != nil {
		return nil, err
	}
	for i := range series {
		name, ok := names[series[i].Metric.ID]
		if !ok {
			name = series[i].Metric.Slug
		}
		series[i].Name = name
	}
	return series, nil
}
