package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/linagora/Argus-du-Libre/internal/catalog/score"
	"github.com/linagora/Argus-du-Libre/internal/catalog/storage"
)

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(""); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestCreateSoftwareRoundTrip(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	now := time.Date(2026, time.March, 3, 10, 0, 0, 0, time.UTC)
	id, err := store.CreateSoftware(context.Background(), storage.Software{
		Name:          "Nextcloud",
		Slug:          "nextcloud",
		RepositoryURL: "https://github.com/nextcloud/server",
		WebsiteURL:    "https://nextcloud.com",
		State:         storage.StatePublished,
		CreatedAt:     now,
	})
	if err != nil {
		t.Fatalf("create software: %v", err)
	}
	if id <= 0 {
		t.Fatalf("id = %d, want positive", id)
	}

	got, err := store.GetSoftwareBySlug(context.Background(), "nextcloud")
	if err != nil {
		t.Fatalf("get software: %v", err)
	}
	if got.Name != "Nextcloud" {
		t.Fatalf("name = %q, want %q", got.Name, "Nextcloud")
	}
	if got.State != storage.StatePublished {
		t.Fatalf("state = %q, want %q", got.State, storage.StatePublished)
	}
	if !got.CreatedAt.Equal(now) {
		t.Fatalf("created_at = %v, want %v", got.CreatedAt, now)
	}
	if got.FeaturedAt != nil {
		t.Fatalf("featured_at = %v, want nil", got.FeaturedAt)
	}
}

func TestCreateSoftwareReturnsAlreadyExistsOnDuplicateSlug(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	input := storage.Software{Name: "GIMP", Slug: "gimp", State: storage.StateDraft}
	if _, err := store.CreateSoftware(context.Background(), input); err != nil {
		t.Fatalf("create initial software: %v", err)
	}
	_, err := store.CreateSoftware(context.Background(), input)
	if !errors.Is(err, storage.ErrAlreadyExists) {
		t.Fatalf("duplicate create error = %v, want %v", err, storage.ErrAlreadyExists)
	}
}

func TestGetPublishedSoftwareBySlugHidesDrafts(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	id, err := store.CreateSoftware(context.Background(), storage.Software{
		Name: "Draft App", Slug: "draft-app", State: storage.StateDraft,
	})
	if err != nil {
		t.Fatalf("create software: %v", err)
	}

	_, err = store.GetPublishedSoftwareBySlug(context.Background(), "draft-app")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("draft lookup error = %v, want %v", err, storage.ErrNotFound)
	}

	if err := store.SetSoftwareState(context.Background(), id, storage.StatePublished); err != nil {
		t.Fatalf("publish software: %v", err)
	}
	if _, err := store.GetPublishedSoftwareBySlug(context.Background(), "draft-app"); err != nil {
		t.Fatalf("published lookup: %v", err)
	}
}

func TestListFeaturedSoftwareOrdersByFeaturedAtDesc(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	base := time.Date(2026, time.March, 3, 12, 0, 0, 0, time.UTC)
	for i, slug := range []string{"first", "second", "third"} {
		at := base.Add(time.Duration(i) * time.Hour)
		if _, err := store.CreateSoftware(context.Background(), storage.Software{
			Name: "App " + slug, Slug: slug, State: storage.StatePublished, FeaturedAt: &at,
		}); err != nil {
			t.Fatalf("create software %s: %v", slug, err)
		}
	}
	if _, err := store.CreateSoftware(context.Background(), storage.Software{
		Name: "Plain", Slug: "plain", State: storage.StatePublished,
	}); err != nil {
		t.Fatalf("create unfeatured software: %v", err)
	}

	got, err := store.ListFeaturedSoftware(context.Background(), 2)
	if err != nil {
		t.Fatalf("list featured: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Slug != "third" || got[1].Slug != "second" {
		t.Fatalf("order = [%s %s], want [third second]", got[0].Slug, got[1].Slug)
	}
}

func TestListPublishedSoftwareBySlugsKeepsRequestOrder(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	for _, slug := range []string{"alpha", "beta", "gamma"} {
		state := storage.StatePublished
		if slug == "gamma" {
			state = storage.StateArchived
		}
		if _, err := store.CreateSoftware(context.Background(), storage.Software{
			Name: slug, Slug: slug, State: state,
		}); err != nil {
			t.Fatalf("create software %s: %v", slug, err)
		}
	}

	got, err := store.ListPublishedSoftwareBySlugs(context.Background(), []string{"beta", "gamma", "alpha", "missing"})
	if err != nil {
		t.Fatalf("list by slugs: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Slug != "beta" || got[1].Slug != "alpha" {
		t.Fatalf("order = [%s %s], want [beta alpha]", got[0].Slug, got[1].Slug)
	}
}

func TestSearchPublishedSoftwareMatchesNameAndOverview(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	idByName := map[string]int64{}
	for _, name := range []string{"Thunderbird", "Dolibarr"} {
		id, err := store.CreateSoftware(context.Background(), storage.Software{
			Name: name, Slug: name, State: storage.StatePublished,
		})
		if err != nil {
			t.Fatalf("create software %s: %v", name, err)
		}
		idByName[name] = id
	}
	err := store.UpsertBlock(context.Background(), storage.Block{
		SoftwareID: idByName["Dolibarr"],
		Kind:       storage.BlockKindOverview,
		Locale:     "en-US",
		Content:    "An ERP suite with email campaign tooling",
	})
	if err != nil {
		t.Fatalf("upsert block: %v", err)
	}

	byName, err := store.SearchPublishedSoftware(context.Background(), "thunder", "en-US")
	if err != nil {
		t.Fatalf("search by name: %v", err)
	}
	if len(byName) != 1 || byName[0].Name != "Thunderbird" {
		t.Fatalf("search by name = %v, want Thunderbird", byName)
	}

	byBlock, err := store.SearchPublishedSoftware(context.Background(), "email campaign", "en-US")
	if err != nil {
		t.Fatalf("search by block: %v", err)
	}
	if len(byBlock) != 1 || byBlock[0].Name != "Dolibarr" {
		t.Fatalf("search by block = %v, want Dolibarr", byBlock)
	}

	otherLocale, err := store.SearchPublishedSoftware(context.Background(), "email campaign", "fr-FR")
	if err != nil {
		t.Fatalf("search other locale: %v", err)
	}
	if len(otherLocale) != 0 {
		t.Fatalf("search other locale = %v, want empty", otherLocale)
	}
}

func TestCategoryNamesFallBackThroughLocales(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	localized, err := store.CreateCategory(ctx, 1)
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	englishOnly, err := store.CreateCategory(ctx, 2)
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	germanOnly, err := store.CreateCategory(ctx, 3)
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	for _, translation := range []storage.Translation{
		{OwnerID: localized, Locale: "fr-FR", Name: "Sécurité"},
		{OwnerID: localized, Locale: "en-US", Name: "Security"},
		{OwnerID: englishOnly, Locale: "en-US", Name: "Community"},
		{OwnerID: germanOnly, Locale: "de-DE", Name: "Gemeinschaft"},
	} {
		if err := store.UpsertCategoryTranslation(ctx, translation); err != nil {
			t.Fatalf("upsert translation: %v", err)
		}
	}

	names, err := store.CategoryNames(ctx, "fr-FR")
	if err != nil {
		t.Fatalf("category names: %v", err)
	}
	if names[localized] != "Sécurité" {
		t.Fatalf("localized name = %q, want %q", names[localized], "Sécurité")
	}
	if names[englishOnly] != "Community" {
		t.Fatalf("fallback name = %q, want %q", names[englishOnly], "Community")
	}
	if names[germanOnly] != "Gemeinschaft" {
		t.Fatalf("any-locale name = %q, want %q", names[germanOnly], "Gemeinschaft")
	}
}

func TestScoringRowsJoinWeightsAndSkipUnpublished(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	categoryID, err := store.CreateCategory(ctx, 2)
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	fieldID, err := store.CreateField(ctx, storage.Field{
		CategoryID: categoryID, Slug: "license", Weight: 3,
	})
	if err != nil {
		t.Fatalf("create field: %v", err)
	}
	softwareID, err := store.CreateSoftware(ctx, storage.Software{
		Name: "App", Slug: "app", State: storage.StatePublished,
	})
	if err != nil {
		t.Fatalf("create software: %v", err)
	}
	now := time.Date(2026, time.March, 4, 9, 0, 0, 0, time.UTC)
	published, err := store.CreateResult(ctx, storage.Result{
		SoftwareID: softwareID, FieldID: fieldID, Score: 450, IsPublished: true, CreatedAt: now,
	})
	if err != nil {
		t.Fatalf("create published result: %v", err)
	}
	if _, err := store.CreateResult(ctx, storage.Result{
		SoftwareID: softwareID, FieldID: fieldID, Score: 100, CreatedAt: now.Add(time.Hour),
	}); err != nil {
		t.Fatalf("create unpublished result: %v", err)
	}

	rows, err := store.ScoringRows(ctx, softwareID)
	if err != nil {
		t.Fatalf("scoring rows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("len = %d, want 1", len(rows))
	}
	row := rows[0]
	if row.ResultID != published {
		t.Fatalf("result id = %d, want %d", row.ResultID, published)
	}
	if row.FieldID != fieldID || row.FieldWeight != 3 {
		t.Fatalf("field = (%d, %d), want (%d, 3)", row.FieldID, row.FieldWeight, fieldID)
	}
	if row.CategoryID != categoryID || row.CategoryWeight != 2 {
		t.Fatalf("category = (%d, %d), want (%d, 2)", row.CategoryID, row.CategoryWeight, categoryID)
	}
	if row.Score != score.FromHundredths(450) {
		t.Fatalf("score = %v, want 4.50", row.Score)
	}
	if !row.CreatedAt.Equal(now) {
		t.Fatalf("created_at = %v, want %v", row.CreatedAt, now)
	}
}

func TestCreateResultRejectsOutOfRangeScore(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	categoryID, err := store.CreateCategory(ctx, 1)
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	fieldID, err := store.CreateField(ctx, storage.Field{CategoryID: categoryID, Slug: "f", Weight: 1})
	if err != nil {
		t.Fatalf("create field: %v", err)
	}
	softwareID, err := store.CreateSoftware(ctx, storage.Software{
		Name: "App", Slug: "app", State: storage.StateDraft,
	})
	if err != nil {
		t.Fatalf("create software: %v", err)
	}
	if _, err := store.CreateResult(ctx, storage.Result{
		SoftwareID: softwareID, FieldID: fieldID, Score: 501,
	}); err == nil {
		t.Fatal("expected out of range error")
	}
}

func TestTagAttachListAndDetach(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	tagID, err := store.CreateTag(ctx, storage.Tag{Name: "Office", Slug: "office"})
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}
	softwareID, err := store.CreateSoftware(ctx, storage.Software{
		Name: "OnlyOffice", Slug: "onlyoffice", State: storage.StatePublished,
	})
	if err != nil {
		t.Fatalf("create software: %v", err)
	}
	draftID, err := store.CreateSoftware(ctx, storage.Software{
		Name: "DraftSuite", Slug: "draftsuite", State: storage.StateDraft,
	})
	if err != nil {
		t.Fatalf("create draft software: %v", err)
	}
	for _, id := range []int64{softwareID, draftID} {
		if err := store.AttachTag(ctx, id, tagID); err != nil {
			t.Fatalf("attach tag: %v", err)
		}
	}
	// A second attach of the same pair is a no-op.
	if err := store.AttachTag(ctx, softwareID, tagID); err != nil {
		t.Fatalf("re-attach tag: %v", err)
	}

	tagged, err := store.ListPublishedSoftwareByTag(ctx, tagID)
	if err != nil {
		t.Fatalf("list by tag: %v", err)
	}
	if len(tagged) != 1 || tagged[0].Slug != "onlyoffice" {
		t.Fatalf("list by tag = %v, want [onlyoffice]", tagged)
	}

	if err := store.DetachTag(ctx, softwareID, tagID); err != nil {
		t.Fatalf("detach tag: %v", err)
	}
	tags, err := store.ListSoftwareTags(ctx, softwareID)
	if err != nil {
		t.Fatalf("list software tags: %v", err)
	}
	if len(tags) != 0 {
		t.Fatalf("tags after detach = %v, want empty", tags)
	}
}

func TestGetBlockFallsBackToDefaultLocale(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	softwareID, err := store.CreateSoftware(ctx, storage.Software{
		Name: "App", Slug: "app", State: storage.StatePublished,
	})
	if err != nil {
		t.Fatalf("create software: %v", err)
	}
	if err := store.UpsertBlock(ctx, storage.Block{
		SoftwareID: softwareID, Kind: storage.BlockKindOverview, Locale: "en-US", Content: "English overview",
	}); err != nil {
		t.Fatalf("upsert block: %v", err)
	}

	block, err := store.GetBlock(ctx, softwareID, storage.BlockKindOverview, "fr-FR")
	if err != nil {
		t.Fatalf("get block: %v", err)
	}
	if block.Locale != "en-US" || block.Content != "English overview" {
		t.Fatalf("block = (%s, %q), want en-US fallback", block.Locale, block.Content)
	}

	if err := store.UpsertBlock(ctx, storage.Block{
		SoftwareID: softwareID, Kind: storage.BlockKindOverview, Locale: "fr-FR", Content: "Présentation",
	}); err != nil {
		t.Fatalf("upsert localized block: %v", err)
	}
	block, err = store.GetBlock(ctx, softwareID, storage.BlockKindOverview, "fr-FR")
	if err != nil {
		t.Fatalf("get localized block: %v", err)
	}
	if block.Locale != "fr-FR" {
		t.Fatalf("locale = %s, want fr-FR", block.Locale)
	}
}

func TestFieldMetricSeriesGroupsValuesAndSkipsDisabled(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	categoryID, err := store.CreateCategory(ctx, 1)
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	fieldID, err := store.CreateField(ctx, storage.Field{CategoryID: categoryID, Slug: "activity", Weight: 1})
	if err != nil {
		t.Fatalf("create field: %v", err)
	}
	softwareID, err := store.CreateSoftware(ctx, storage.Software{
		Name: "App", Slug: "app", State: storage.StatePublished,
	})
	if err != nil {
		t.Fatalf("create software: %v", err)
	}
	enabled, err := store.CreateMetric(ctx, storage.Metric{FieldID: fieldID, Slug: "commits", CollectionEnabled: true})
	if err != nil {
		t.Fatalf("create metric: %v", err)
	}
	disabled, err := store.CreateMetric(ctx, storage.Metric{FieldID: fieldID, Slug: "stars", CollectionEnabled: false})
	if err != nil {
		t.Fatalf("create disabled metric: %v", err)
	}
	if err := store.UpsertMetricTranslation(ctx, storage.Translation{
		OwnerID: enabled, Locale: "en-US", Name: "Monthly commits",
	}); err != nil {
		t.Fatalf("upsert metric translation: %v", err)
	}
	base := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)
	for i, metricID := range []int64{enabled, enabled, disabled} {
		if _, err := store.RecordMetricValue(ctx, storage.MetricValue{
			MetricID: metricID, SoftwareID: softwareID,
			Value: "42", CollectedAt: base.Add(time.Duration(i) * time.Hour),
		}); err != nil {
			t.Fatalf("record metric value: %v", err)
		}
	}

	series, err := store.FieldMetricSeries(ctx, softwareID, fieldID, "en-US")
	if err != nil {
		t.Fatalf("field metric series: %v", err)
	}
	if len(series) != 1 {
		t.Fatalf("series len = %d, want 1", len(series))
	}
	if series[0].Name != "Monthly commits" {
		t.Fatalf("series name = %q, want %q", series[0].Name, "Monthly commits")
	}
	if len(series[0].Values) != 2 {
		t.Fatalf("values len = %d, want 2", len(series[0].Values))
	}
	if !series[0].Values[0].CollectedAt.Before(series[0].Values[1].CollectedAt) {
		t.Fatal("values are not ordered by collection time")
	}
}

func openTempStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}
