// Package storage defines persistence contracts for catalog state.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/linagora/Argus-du-Libre/internal/catalog/score"
	"github.com/linagora/Argus-du-Libre/internal/catalog/scoring"
)

var (
	// ErrNotFound indicates a requested catalog record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a uniqueness-constrained record already exists.
	ErrAlreadyExists = errors.New("record already exists")
)

// SoftwareState enumerates the publication lifecycle of a software entry.
type SoftwareState string

const (
	StateDraft     SoftwareState = "draft"
	StatePublished SoftwareState = "published"
	StateArchived  SoftwareState = "archived"
)

// Valid reports whether the state is one of the known lifecycle values.
func (s SoftwareState) Valid() bool {
	switch s {
	case StateDraft, StatePublished, StateArchived:
		return true
	default:
		return false
	}
}

// Category groups analysis fields and weighs into the overall score.
type Category struct {
	ID     int64
	Weight int
}

// Translation is one localized display name for a category or field.
type Translation struct {
	OwnerID int64
	Locale  string
	Name    string
}

// Field is a scored attribute within a category.
type Field struct {
	ID                      int64
	CategoryID              int64
	Slug                    string
	Weight                  int
	AnalysisPeriodicityDays int
}

// Software is one catalogued project.
type Software struct {
	ID            int64
	Name          string
	Slug          string
	LogoURL       string
	RepositoryURL string
	WebsiteURL    string
	State         SoftwareState
	FeaturedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Tag labels software entries for browsing.
type Tag struct {
	ID   int64
	Name string
	Slug string
}

// BlockKindOverview is the long-form description block shown on detail pages.
const BlockKindOverview = "overview"

// Block is localized long-form content attached to a software entry.
type Block struct {
	ID         int64
	SoftwareID int64
	Kind       string
	Locale     string
	Content    string
}

// Result is one scored, timestamped analysis of a software field.
type Result struct {
	ID          int64
	SoftwareID  int64
	FieldID     int64
	Score       score.Score
	IsPublished bool
	IsManual    bool
	CreatedAt   time.Time
}

// Metric is a time-series measurement collected for a field.
type Metric struct {
	ID                int64
	FieldID           int64
	Slug              string
	CollectionEnabled bool
}

// MetricValue is one collected sample of a metric for a software entry.
type MetricValue struct {
	ID          int64
	MetricID    int64
	SoftwareID  int64
	Value       string
	Source      string
	CollectedAt time.Time
}

// MetricSeries is one metric with the samples collected for a software entry.
type MetricSeries struct {
	Metric Metric
	Name   string
	Values []MetricValue
}

// CategoryStore persists categories, fields, and their translations.
type CategoryStore interface {
	CreateCategory(ctx context.Context, weight int) (int64, error)
	UpdateCategoryWeight(ctx context.Context, id int64, weight int) error
	ListCategories(ctx context.Context) ([]Category, error)
	UpsertCategoryTranslation(ctx context.Context, translation Translation) error
	CategoryNames(ctx context.Context, locale string) (map[int64]string, error)

	CreateField(ctx context.Context, field Field) (int64, error)
	UpdateField(ctx context.Context, id int64, weight int, periodicityDays int) error
	ListFields(ctx context.Context) ([]Field, error)
	GetFieldBySlug(ctx context.Context, slug string) (Field, error)
	UpsertFieldTranslation(ctx context.Context, translation Translation) error
	FieldNames(ctx context.Context, locale string) (map[int64]string, error)
}

// SoftwareStore persists software entries, tags, and content blocks.
type SoftwareStore interface {
	CreateSoftware(ctx context.Context, software Software) (int64, error)
	UpdateSoftware(ctx context.Context, software Software) error
	SetSoftwareState(ctx context.Context, id int64, state SoftwareState) error
	SetSoftwareFeatured(ctx context.Context, id int64, featuredAt *time.Time) error
	GetSoftwareBySlug(ctx context.Context, slug string) (Software, error)
	GetPublishedSoftwareBySlug(ctx context.Context, slug string) (Software, error)
	ListSoftware(ctx context.Context) ([]Software, error)
	ListFeaturedSoftware(ctx context.Context, limit int) ([]Software, error)
	ListPublishedSoftwareByName(ctx context.Context, limit int) ([]Software, error)
	ListPublishedSoftwareBySlugs(ctx context.Context, slugs []string) ([]Software, error)
	SearchPublishedSoftware(ctx context.Context, query string, locale string) ([]Software, error)

	CreateTag(ctx context.Context, tag Tag) (int64, error)
	ListTags(ctx context.Context) ([]Tag, error)
	GetTagBySlug(ctx context.Context, slug string) (Tag, error)
	AttachTag(ctx context.Context, softwareID int64, tagID int64) error
	DetachTag(ctx context.Context, softwareID int64, tagID int64) error
	ListSoftwareTags(ctx context.Context, softwareID int64) ([]Tag, error)
	ListPublishedSoftwareByTag(ctx context.Context, tagID int64) ([]Software, error)

	UpsertBlock(ctx context.Context, block Block) error
	GetBlock(ctx context.Context, softwareID int64, kind string, locale string) (Block, error)
}

// ResultStore persists analysis results and exposes the scoring read model.
type ResultStore interface {
	CreateResult(ctx context.Context, result Result) (int64, error)
	SetResultPublished(ctx context.Context, id int64, published bool) error
	ListResults(ctx context.Context, limit int) ([]Result, error)
	// ScoringRows returns one row per published result for the software,
	// joined with field and category weights.
	ScoringRows(ctx context.Context, softwareID int64) ([]scoring.ResultRow, error)
}

// MetricStore persists metrics and their collected values.
type MetricStore interface {
	CreateMetric(ctx context.Context, metric Metric) (int64, error)
	UpsertMetricTranslation(ctx context.Context, translation Translation) error
	RecordMetricValue(ctx context.Context, value MetricValue) (int64, error)
	// FieldMetricSeries returns collection-enabled metrics of the field that
	// have at least one value for the software, samples ordered by
	// collection time.
	FieldMetricSeries(ctx context.Context, softwareID int64, fieldID int64, locale string) ([]MetricSeries, error)
}

// Store is the full catalog persistence surface.
type Store interface {
	CategoryStore
	SoftwareStore
	ResultStore
	MetricStore
}
