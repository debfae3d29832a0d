// Package seed loads catalog fixtures from a YAML file into storage.
//
// Loading is idempotent: records are matched by slug (or by default-locale
// name for categories, which have no slug) and reused when they already
// exist, so the seeder can run against a live database without duplicating
// the taxonomy.
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/linagora/Argus-du-Libre/internal/catalog/score"
	"github.com/linagora/Argus-du-Libre/internal/catalog/storage"
)

const defaultLocale = "en-US"

// Fixture is the root of a seed file.
type Fixture struct {
	Categories []CategoryFixture `yaml:"categories"`
	Tags       []TagFixture      `yaml:"tags"`
	Software   []SoftwareFixture `yaml:"software"`
}

// CategoryFixture declares one category with its fields.
type CategoryFixture struct {
	Weight int               `yaml:"weight"`
	Names  map[string]string `yaml:"names"`
	Fields []FieldFixture    `yaml:"fields"`
}

// FieldFixture declares one scored field.
type FieldFixture struct {
	Slug            string            `yaml:"slug"`
	Weight          int               `yaml:"weight"`
	PeriodicityDays int               `yaml:"periodicity_days"`
	Names           map[string]string `yaml:"names"`
}

// TagFixture declares one browsing tag.
type TagFixture struct {
	Name string `yaml:"name"`
	Slug string `yaml:"slug"`
}

// SoftwareFixture declares one catalog entry with optional scores.
type SoftwareFixture struct {
	Name          string            `yaml:"name"`
	Slug          string            `yaml:"slug"`
	State         string            `yaml:"state"`
	Featured      bool              `yaml:"featured"`
	LogoURL       string            `yaml:"logo_url"`
	WebsiteURL    string            `yaml:"website_url"`
	RepositoryURL string            `yaml:"repository_url"`
	Tags          []string          `yaml:"tags"`
	Overview      map[string]string `yaml:"overview"`
	Scores        []ScoreFixture    `yaml:"scores"`
}

// ScoreFixture declares one published analysis result.
type ScoreFixture struct {
	Field string `yaml:"field"`
	Score string `yaml:"score"`
}

// Load parses a fixture file.
func Load(path string) (Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("read fixture: %w", err)
	}
	var fixture Fixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return Fixture{}, fmt.Errorf("parse fixture: %w", err)
	}
	return fixture, nil
}

// Run applies a fixture to the store.
func Run(ctx context.Context, store storage.Store, fixture Fixture) error {
	fieldIDs, err := applyCategories(ctx, store, fixture.Categories)
	if err != nil {
		return err
	}
	tagIDs, err := applyTags(ctx, store, fixture.Tags)
	if err != nil {
		return err
	}
	return applySoftware(ctx, store, fixture.Software, fieldIDs, tagIDs)
}

func applyCategories(ctx context.Context, store storage.Store, categories []CategoryFixture) (map[string]int64, error) {
	existing, err := store.CategoryNames(ctx, defaultLocale)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]int64, len(existing))
	for id, name := range existing {
		byName[name] = id
	}

	fieldIDs := map[string]int64{}
	for _, category := range categories {
		name := strings.TrimSpace(category.Names[defaultLocale])
		if name == "" {
			return nil, fmt.Errorf("category requires a %s name", defaultLocale)
		}
		categoryID, ok := byName[name]
		if !ok {
			categoryID, err = store.CreateCategory(ctx, category.Weight)
			if err != nil {
				return nil, fmt.Errorf("create category %q: %w", name, err)
			}
			byName[name] = categoryID
		}
		for locale, localized := range category.Names {
			if err := store.UpsertCategoryTranslation(ctx, storage.Translation{
				OwnerID: categoryID,
				Locale:  locale,
				Name:    localized,
			}); err != nil {
				return nil, fmt.Errorf("translate category %q: %w", name, err)
			}
		}
		for _, field := range category.Fields {
			fieldID, err := applyField(ctx, store, categoryID, field)
			if err != nil {
				return nil, err
			}
			fieldIDs[field.Slug] = fieldID
		}
	}
	return fieldIDs, nil
}

func applyField(ctx context.Context, store storage.Store, categoryID int64, fixture FieldFixture) (int64, error) {
	existing, err := store.GetFieldBySlug(ctx, fixture.Slug)
	switch {
	case err == nil:
		if err := store.UpdateField(ctx, existing.ID, fixture.Weight, fixture.PeriodicityDays); err != nil {
			return 0, fmt.Errorf("update field %q: %w", fixture.Slug, err)
		}
	case errors.Is(err, storage.ErrNotFound):
		existing.ID, err = store.CreateField(ctx, storage.Field{
			CategoryID:              categoryID,
			Slug:                    fixture.Slug,
			Weight:                  fixture.Weight,
			AnalysisPeriodicityDays: fixture.PeriodicityDays,
		})
		if err != nil {
			return 0, fmt.Errorf("create field %q: %w", fixture.Slug, err)
		}
	default:
		return 0, err
	}
	for locale, localized := range fixture.Names {
		if err := store.UpsertFieldTranslation(ctx, storage.Translation{
			OwnerID: existing.ID,
			Locale:  locale,
			Name:    localized,
		}); err != nil {
			return 0, fmt.Errorf("translate field %q: %w", fixture.Slug, err)
		}
	}
	return existing.ID, nil
}

func applyTags(ctx context.Context, store storage.Store, tags []TagFixture) (map[string]int64, error) {
	ids := map[string]int64{}
	for _, tag := range tags {
		existing, err := store.GetTagBySlug(ctx, tag.Slug)
		switch {
		case err == nil:
			ids[tag.Slug] = existing.ID
		case errors.Is(err, storage.ErrNotFound):
			id, err := store.CreateTag(ctx, storage.Tag{Name: tag.Name, Slug: tag.Slug})
			if err != nil {
				return nil, fmt.Errorf("create tag %q: %w", tag.Slug, err)
			}
			ids[tag.Slug] = id
		default:
			return nil, err
		}
	}
	return ids, nil
}

func applySoftware(ctx context.Context, store storage.Store, entries []SoftwareFixture, fieldIDs map[string]int64, tagIDs map[string]int64) error {
	for _, fixture := range entries {
		id, created, err := ensureSoftware(ctx, store, fixture)
		if err != nil {
			return err
		}

		state := storage.SoftwareState(fixture.State)
		if state == "" {
			state = storage.StateDraft
		}
		if !state.Valid() {
			return fmt.Errorf("software %q has unknown state %q", fixture.Slug, fixture.State)
		}
		if err := store.SetSoftwareState(ctx, id, state); err != nil {
			return fmt.Errorf("set state for %q: %w", fixture.Slug, err)
		}
		if fixture.Featured {
			now := time.Now().UTC()
			if err := store.SetSoftwareFeatured(ctx, id, &now); err != nil {
				return fmt.Errorf("feature %q: %w", fixture.Slug, err)
			}
		}

		for _, tagSlug := range fixture.Tags {
			tagID, ok := tagIDs[tagSlug]
			if !ok {
				tag, err := store.GetTagBySlug(ctx, tagSlug)
				if err != nil {
					return fmt.Errorf("software %q references unknown tag %q", fixture.Slug, tagSlug)
				}
				tagID = tag.ID
			}
			if err := store.AttachTag(ctx, id, tagID); err != nil {
				return fmt.Errorf("attach tag %q to %q: %w", tagSlug, fixture.Slug, err)
			}
		}
		for locale, content := range fixture.Overview {
			if err := store.UpsertBlock(ctx, storage.Block{
				SoftwareID: id,
				Kind:       storage.BlockKindOverview,
				Locale:     locale,
				Content:    content,
			}); err != nil {
				return fmt.Errorf("overview for %q: %w", fixture.Slug, err)
			}
		}

		// Scores are only recorded for freshly created software so reruns
		// do not pile duplicate results onto existing entries.
		if !created {
			continue
		}
		for _, result := range fixture.Scores {
			fieldID, ok := fieldIDs[result.Field]
			if !ok {
				field, err := store.GetFieldBySlug(ctx, result.Field)
				if err != nil {
					return fmt.Errorf("software %q references unknown field %q", fixture.Slug, result.Field)
				}
				fieldID = field.ID
			}
			value, err := score.Parse(result.Score)
			if err != nil {
				return fmt.Errorf("score for %q field %q: %w", fixture.Slug, result.Field, err)
			}
			if _, err := store.CreateResult(ctx, storage.Result{
				SoftwareID:  id,
				FieldID:     fieldID,
				Score:       value,
				IsPublished: true,
			}); err != nil {
				return fmt.Errorf("record score for %q: %w", fixture.Slug, err)
			}
		}
	}
	return nil
}

func ensureSoftware(ctx context.Context, store storage.Store, fixture SoftwareFixture) (int64, bool, error) {
	existing, err := store.GetSoftwareBySlug(ctx, fixture.Slug)
	switch {
	case err == nil:
		existing.Name = fixture.Name
		existing.LogoURL = fixture.LogoURL
		existing.WebsiteURL = fixture.WebsiteURL
		existing.RepositoryURL = fixture.RepositoryURL
		if err := store.UpdateSoftware(ctx, existing); err != nil {
			return 0, false, fmt.Errorf("update software %q: %w", fixture.Slug, err)
		}
		return existing.ID, false, nil
	case errors.Is(err, storage.ErrNotFound):
		id, err := store.CreateSoftware(ctx, storage.Software{
			Name:          fixture.Name,
			Slug:          fixture.Slug,
			LogoURL:       fixture.LogoURL,
			WebsiteURL:    fixture.WebsiteURL,
			RepositoryURL: fixture.RepositoryURL,
			State:         storage.StateDraft,
		})
		if err != nil {
			return 0, false, fmt.Errorf("create software %q: %w", fixture.Slug, err)
		}
		return id, true, nil
	default:
		return 0, false, err
	}
}
