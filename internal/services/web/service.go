package web

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/linagora/Argus-du-Libre/internal/catalog/score"
	"github.com/linagora/Argus-du-Libre/internal/catalog/scoring"
	"github.com/linagora/Argus-du-Libre/internal/catalog/storage"
	apperrors "github.com/linagora/Argus-du-Libre/internal/platform/errors"
	"github.com/linagora/Argus-du-Libre/internal/platform/timeouts"
	"github.com/linagora/Argus-du-Libre/internal/services/web/routepath"
	"github.com/linagora/Argus-du-Libre/internal/services/web/templates"
)

const (
	featuredLimit    = 20
	compareMin       = 2
	compareMax       = 5
	compareOptionMax = 50
	resultListLimit  = 200

	timestampLayout = "2006-01-02 15:04"
	dateLayout      = "2006-01-02"
)

// catalogService assembles page view models from catalog storage.
type catalogService struct {
	store storage.Store
}

// mapNamer resolves display names from preloaded translation maps, falling
// back to stable placeholder names for untranslated records.
type mapNamer struct {
	categories map[int64]string
	fields     map[int64]string
}

func (n mapNamer) CategoryName(id int64) string {
	if name, ok := n.categories[id]; ok && name != "" {
		return name
	}
	return fmt.Sprintf("Category %d", id)
}

func (n mapNamer) FieldName(id int64) string {
	if name, ok := n.fields[id]; ok && name != "" {
		return name
	}
	return fmt.Sprintf("Field %d", id)
}

func (s *catalogService) namer(ctx context.Context, locale string) (mapNamer, error) {
	categories, err := s.store.CategoryNames(ctx, locale)
	if err != nil {
		return mapNamer{}, err
	}
	fields, err := s.store.FieldNames(ctx, locale)
	if err != nil {
		return mapNamer{}, err
	}
	return mapNamer{categories: categories, fields: fields}, nil
}

// mapStoreErr lifts storage sentinel errors into typed application errors.
func mapStoreErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, storage.ErrNotFound) {
		return apperrors.E(apperrors.KindNotFound, err.Error())
	}
	if errors.Is(err, storage.ErrAlreadyExists) {
		return apperrors.EK(apperrors.KindConflict, "admin.error.conflict", err.Error())
	}
	return err
}

func queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeouts.Query)
}

func (s *catalogService) projectCards(ctx context.Context, entries []storage.Software) ([]templates.ProjectCard, error) {
	cards := make([]templates.ProjectCard, 0, len(entries))
	for _, entry := range entries {
		rows, err := s.store.ScoringRows(ctx, entry.ID)
		if err != nil {
			return nil, err
		}
		scores := scoring.Aggregate(rows, nil)
		card := templates.ProjectCard{
			Name:    entry.Name,
			Slug:    entry.Slug,
			LogoURL: entry.LogoURL,
		}
		if scores.Scored {
			card.Overall = scores.Overall.String()
			card.Band = scores.Overall.Band()
		}
		cards = append(cards, card)
	}
	return cards, nil
}

func (s *catalogService) featured(ctx context.Context) ([]templates.ProjectCard, error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()
	entries, err := s.store.ListFeaturedSoftware(ctx, featuredLimit)
	if err != nil {
		return nil, err
	}
	return s.projectCards(ctx, entries)
}

func (s *catalogService) search(ctx context.Context, query string, locale string) ([]templates.ProjectCard, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	ctx, cancel := queryContext(ctx)
	defer cancel()
	entries, err := s.store.SearchPublishedSoftware(ctx, query, locale)
	if err != nil {
		return nil, err
	}
	return s.projectCards(ctx, entries)
}

func (s *catalogService) projectDetail(ctx context.Context, slug string, locale string) (templates.ProjectParams, error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()

	entry, err := s.store.GetPublishedSoftwareBySlug(ctx, slug)
	if err != nil {
		return templates.ProjectParams{}, mapStoreErr(err)
	}
	names, err := s.namer(ctx, locale)
	if err != nil {
		return templates.ProjectParams{}, err
	}
	rows, err := s.store.ScoringRows(ctx, entry.ID)
	if err != nil {
		return templates.ProjectParams{}, err
	}
	_, span := tracer.Start(ctx, "scoring.aggregate")
	scores := scoring.Aggregate(rows, names)
	span.End()

	fields, err := s.store.ListFields(ctx)
	if err != nil {
		return templates.ProjectParams{}, err
	}
	fieldSlugs := make(map[int64]string, len(fields))
	for _, field := range fields {
		fieldSlugs[field.ID] = field.Slug
	}

	tags, err := s.store.ListSoftwareTags(ctx, entry.ID)
	if err != nil {
		return templates.ProjectParams{}, err
	}

	overview := ""
	block, err := s.store.GetBlock(ctx, entry.ID, storage.BlockKindOverview, locale)
	switch {
	case err == nil:
		overview = block.Content
	case errors.Is(err, storage.ErrNotFound):
	default:
		return templates.ProjectParams{}, err
	}

	candidates, err := s.store.ListPublishedSoftwareByName(ctx, compareOptionMax)
	if err != nil {
		return templates.ProjectParams{}, err
	}

	params := templates.ProjectParams{
		Name:          entry.Name,
		Slug:          entry.Slug,
		LogoURL:       entry.LogoURL,
		WebsiteURL:    entry.WebsiteURL,
		RepositoryURL: entry.RepositoryURL,
		Overview:      overview,
	}
	if scores.Scored {
		params.Overall = scores.Overall.String()
		params.OverallBand = scores.Overall.Band()
	}
	for _, tag := range tags {
		params.Tags = append(params.Tags, templates.TagLink{Name: tag.Name, Slug: tag.Slug})
	}
	for _, category := range scores.Categories {
		view := templates.CategoryScoreView{
			Name:   category.Name,
			Weight: category.Weight,
		}
		if category.Scored {
			view.Score = category.Score.String()
			view.Band = category.Score.Band()
		}
		for _, field := range category.Fields {
			fieldView := templates.FieldScoreView{
				Name:   field.Name,
				Weight: field.Weight,
				Score:  field.Score.String(),
			}
			if fieldSlug := fieldSlugs[field.FieldID]; fieldSlug != "" {
				fieldView.MetricsURL = routepath.ProjectField(entry.Slug, fieldSlug)
			}
			view.Fields = append(view.Fields, fieldView)
		}
		params.Categories = append(params.Categories, view)
	}
	for _, candidate := range candidates {
		if candidate.ID == entry.ID {
			continue
		}
		params.CompareWith = append(params.CompareWith, templates.CompareOption{
			Name: candidate.Name,
			Slug: candidate.Slug,
		})
	}
	return params, nil
}

// parseCompareSlugs flattens repeated and comma-separated query values into
// an ordered, de-duplicated slug list.
func parseCompareSlugs(values []string) []string {
	seen := map[string]bool{}
	var slugs []string
	for _, value := range values {
		for _, raw := range strings.Split(value, ",") {
			slug := strings.TrimSpace(raw)
			if slug == "" || seen[slug] {
				continue
			}
			seen[slug] = true
			slugs = append(slugs, slug)
		}
	}
	return slugs
}

func (s *catalogService) compare(ctx context.Context, values []string, locale string) (templates.CompareParams, error) {
	slugs := parseCompareSlugs(values)
	if len(slugs) < compareMin || len(slugs) > compareMax {
		return templates.CompareParams{}, apperrors.EK(apperrors.KindInvalidInput,
			"public.compare.error_count", "between 2 and 5 projects are required")
	}

	ctx, cancel := queryContext(ctx)
	defer cancel()

	entries, err := s.store.ListPublishedSoftwareBySlugs(ctx, slugs)
	if err != nil {
		return templates.CompareParams{}, err
	}
	if len(entries) != len(slugs) {
		return templates.CompareParams{}, apperrors.EK(apperrors.KindNotFound,
			"public.compare.error_unknown", "unknown or unpublished project slug")
	}

	names, err := s.namer(ctx, locale)
	if err != nil {
		return templates.CompareParams{}, err
	}
	projectRows := make([][]scoring.ResultRow, len(entries))
	for i, entry := range entries {
		rows, err := s.store.ScoringRows(ctx, entry.ID)
		if err != nil {
			return templates.CompareParams{}, err
		}
		projectRows[i] = rows
	}
	_, span := tracer.Start(ctx, "scoring.compare")
	comparison := scoring.Compare(projectRows, names)
	span.End()

	params := templates.CompareParams{
		Overall: compareCells(comparison.Overall),
	}
	for _, entry := range entries {
		params.Projects = append(params.Projects, templates.CompareColumn{
			Name: entry.Name,
			Slug: entry.Slug,
		})
	}
	for _, category := range comparison.Categories {
		section := templates.CompareCategorySection{
			Name:  category.Name,
			Cells: compareCells(category.Scores),
		}
		for _, field := range category.Fields {
			section.Fields = append(section.Fields, templates.CompareRowView{
				Name:  field.Name,
				Cells: compareCells(field.Scores),
			})
		}
		params.Categories = append(params.Categories, section)
	}
	return params, nil
}

// compareCells formats comparison entries, leaving unscored cells empty.
func compareCells(entries []scoring.CompareEntry) []string {
	cells := make([]string, len(entries))
	for i, entry := range entries {
		if entry.Scored {
			cells[i] = entry.Score.String()
		}
	}
	return cells
}

func (s *catalogService) tagListing(ctx context.Context, slug string) (templates.TagParams, error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()

	tag, err := s.store.GetTagBySlug(ctx, slug)
	if err != nil {
		return templates.TagParams{}, mapStoreErr(err)
	}
	entries, err := s.store.ListPublishedSoftwareByTag(ctx, tag.ID)
	if err != nil {
		return templates.TagParams{}, err
	}
	cards, err := s.projectCards(ctx, entries)
	if err != nil {
		return templates.TagParams{}, err
	}
	return templates.TagParams{Name: tag.Name, Projects: cards}, nil
}

func (s *catalogService) fieldMetrics(ctx context.Context, slug string, fieldSlug string, locale string) (templates.MetricsParams, error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()

	entry, err := s.store.GetPublishedSoftwareBySlug(ctx, slug)
	if err != nil {
		return templates.MetricsParams{}, mapStoreErr(err)
	}
	field, err := s.store.GetFieldBySlug(ctx, fieldSlug)
	if err != nil {
		return templates.MetricsParams{}, mapStoreErr(err)
	}
	names, err := s.namer(ctx, locale)
	if err != nil {
		return templates.MetricsParams{}, err
	}
	series, err := s.store.FieldMetricSeries(ctx, entry.ID, field.ID, locale)
	if err != nil {
		return templates.MetricsParams{}, err
	}

	params := templates.MetricsParams{
		ProjectName: entry.Name,
		FieldName:   names.FieldName(field.ID),
	}
	for _, item := range series {
		view := templates.MetricSeriesView{Name: item.Name}
		for _, value := range item.Values {
			view.Samples = append(view.Samples, templates.MetricSample{
				CollectedAt: value.CollectedAt.UTC().Format(dateLayout),
				Value:       value.Value,
				Source:      value.Source,
			})
		}
		params.Series = append(params.Series, view)
	}
	return params, nil
}

func (s *catalogService) adminCategories(ctx context.Context, locale string) ([]templates.AdminCategoryRow, error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()

	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	fields, err := s.store.ListFields(ctx)
	if err != nil {
		return nil, err
	}
	names, err := s.namer(ctx, locale)
	if err != nil {
		return nil, err
	}

	fieldsByCategory := map[int64][]templates.AdminFieldRow{}
	for _, field := range fields {
		fieldsByCategory[field.CategoryID] = append(fieldsByCategory[field.CategoryID], templates.AdminFieldRow{
			ID:              field.ID,
			Slug:            field.Slug,
			Name:            names.FieldName(field.ID),
			Weight:          field.Weight,
			PeriodicityDays: field.AnalysisPeriodicityDays,
		})
	}
	rows := make([]templates.AdminCategoryRow, 0, len(categories))
	for _, category := range categories {
		rows = append(rows, templates.AdminCategoryRow{
			ID:     category.ID,
			Name:   names.CategoryName(category.ID),
			Weight: category.Weight,
			Fields: fieldsByCategory[category.ID],
		})
	}
	return rows, nil
}

func (s *catalogService) adminSoftwareList(ctx context.Context) ([]templates.AdminSoftwareRow, error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()

	entries, err := s.store.ListSoftware(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]templates.AdminSoftwareRow, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, templates.AdminSoftwareRow{
			Name:     entry.Name,
			Slug:     entry.Slug,
			State:    string(entry.State),
			Featured: entry.FeaturedAt != nil,
		})
	}
	return rows, nil
}

func (s *catalogService) adminSoftwareDetail(ctx context.Context, slug string, locale string) (templates.AdminSoftwareDetailParams, error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()

	entry, err := s.store.GetSoftwareBySlug(ctx, slug)
	if err != nil {
		return templates.AdminSoftwareDetailParams{}, mapStoreErr(err)
	}
	attached, err := s.store.ListSoftwareTags(ctx, entry.ID)
	if err != nil {
		return templates.AdminSoftwareDetailParams{}, err
	}
	all, err := s.store.ListTags(ctx)
	if err != nil {
		return templates.AdminSoftwareDetailParams{}, err
	}

	overview := ""
	block, err := s.store.GetBlock(ctx, entry.ID, storage.BlockKindOverview, locale)
	switch {
	case err == nil:
		overview = block.Content
	case errors.Is(err, storage.ErrNotFound):
	default:
		return templates.AdminSoftwareDetailParams{}, err
	}

	params := templates.AdminSoftwareDetailParams{
		Name:          entry.Name,
		Slug:          entry.Slug,
		LogoURL:       entry.LogoURL,
		WebsiteURL:    entry.WebsiteURL,
		RepositoryURL: entry.RepositoryURL,
		State:         string(entry.State),
		Featured:      entry.FeaturedAt != nil,
		Overview:      overview,
	}
	attachedIDs := map[int64]bool{}
	for _, tag := range attached {
		attachedIDs[tag.ID] = true
		params.Tags = append(params.Tags, templates.TagLink{Name: tag.Name, Slug: tag.Slug})
	}
	for _, tag := range all {
		if attachedIDs[tag.ID] {
			continue
		}
		params.AllTags = append(params.AllTags, templates.TagLink{Name: tag.Name, Slug: tag.Slug})
	}
	return params, nil
}

func (s *catalogService) adminResults(ctx context.Context, locale string) (templates.AdminResultsParams, error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()

	results, err := s.store.ListResults(ctx, resultListLimit)
	if err != nil {
		return templates.AdminResultsParams{}, err
	}
	entries, err := s.store.ListSoftware(ctx)
	if err != nil {
		return templates.AdminResultsParams{}, err
	}
	fields, err := s.store.ListFields(ctx)
	if err != nil {
		return templates.AdminResultsParams{}, err
	}
	names, err := s.namer(ctx, locale)
	if err != nil {
		return templates.AdminResultsParams{}, err
	}

	softwareNames := make(map[int64]string, len(entries))
	params := templates.AdminResultsParams{}
	for _, entry := range entries {
		softwareNames[entry.ID] = entry.Name
		params.Software = append(params.Software, templates.AdminResultOption{
			Value: entry.Slug,
			Label: entry.Name,
		})
	}
	for _, field := range fields {
		params.Fields = append(params.Fields, templates.AdminResultOption{
			Value: field.Slug,
			Label: names.FieldName(field.ID),
		})
	}
	for _, result := range results {
		params.Rows = append(params.Rows, templates.AdminResultRow{
			ID:        result.ID,
			Software:  softwareNames[result.SoftwareID],
			Field:     names.FieldName(result.FieldID),
			Score:     result.Score.String(),
			Published: result.IsPublished,
			CreatedAt: result.CreatedAt.UTC().Format(timestampLayout),
		})
	}
	return params, nil
}

func (s *catalogService) adminTags(ctx context.Context) ([]templates.TagLink, error) {
	ctx, cancel := queryContext(ctx)
	defer cancel()

	tags, err := s.store.ListTags(ctx)
	if err != nil {
		return nil, err
	}
	links := make([]templates.TagLink, 0, len(tags))
	for _, tag := range tags {
		links = append(links, templates.TagLink{Name: tag.Name, Slug: tag.Slug})
	}
	return links, nil
}

func (s *catalogService) setSoftwareState(ctx context.Context, slug string, state storage.SoftwareState) error {
	if !state.Valid() {
		return apperrors.EK(apperrors.KindInvalidInput, "admin.error.invalid", "unknown software state")
	}
	ctx, cancel := queryContext(ctx)
	defer cancel()
	entry, err := s.store.GetSoftwareBySlug(ctx, slug)
	if err != nil {
		return mapStoreErr(err)
	}
	return mapStoreErr(s.store.SetSoftwareState(ctx, entry.ID, state))
}

func (s *catalogService) setSoftwareFeatured(ctx context.Context, slug string, featured bool) error {
	ctx, cancel := queryContext(ctx)
	defer cancel()
	entry, err := s.store.GetSoftwareBySlug(ctx, slug)
	if err != nil {
		return mapStoreErr(err)
	}
	var featuredAt *time.Time
	if featured {
		now := time.Now().UTC()
		featuredAt = &now
	}
	return mapStoreErr(s.store.SetSoftwareFeatured(ctx, entry.ID, featuredAt))
}

func (s *catalogService) setSoftwareTag(ctx context.Context, slug string, tagSlug string, attach bool) error {
	ctx, cancel := queryContext(ctx)
	defer cancel()
	entry, err := s.store.GetSoftwareBySlug(ctx, slug)
	if err != nil {
		return mapStoreErr(err)
	}
	tag, err := s.store.GetTagBySlug(ctx, tagSlug)
	if err != nil {
		return mapStoreErr(err)
	}
	if attach {
		return mapStoreErr(s.store.AttachTag(ctx, entry.ID, tag.ID))
	}
	return mapStoreErr(s.store.DetachTag(ctx, entry.ID, tag.ID))
}

func (s *catalogService) upsertOverview(ctx context.Context, slug string, locale string, content string) error {
	ctx, cancel := queryContext(ctx)
	defer cancel()
	entry, err := s.store.GetSoftwareBySlug(ctx, slug)
	if err != nil {
		return mapStoreErr(err)
	}
	return mapStoreErr(s.store.UpsertBlock(ctx, storage.Block{
		SoftwareID: entry.ID,
		Kind:       storage.BlockKindOverview,
		Locale:     locale,
		Content:    content,
	}))
}

func (s *catalogService) createCategory(ctx context.Context, weight int, name string, locale string) error {
	name = strings.TrimSpace(name)
	if name == "" || weight < 0 {
		return apperrors.EK(apperrors.KindInvalidInput, "admin.error.invalid", "category name and weight are required")
	}
	ctx, cancel := queryContext(ctx)
	defer cancel()
	id, err := s.store.CreateCategory(ctx, weight)
	if err != nil {
		return mapStoreErr(err)
	}
	return mapStoreErr(s.store.UpsertCategoryTranslation(ctx, storage.Translation{
		OwnerID: id,
		Locale:  locale,
		Name:    name,
	}))
}

func (s *catalogService) updateCategoryWeight(ctx context.Context, id int64, weight int) error {
	if id <= 0 || weight < 0 {
		return apperrors.EK(apperrors.KindInvalidInput, "admin.error.invalid", "category id and weight are required")
	}
	ctx, cancel := queryContext(ctx)
	defer cancel()
	return mapStoreErr(s.store.UpdateCategoryWeight(ctx, id, weight))
}

func (s *catalogService) createField(ctx context.Context, field storage.Field, name string, locale string) error {
	name = strings.TrimSpace(name)
	if name == "" || strings.TrimSpace(field.Slug) == "" || field.CategoryID <= 0 || field.Weight < 0 {
		return apperrors.EK(apperrors.KindInvalidInput, "admin.error.invalid", "field slug, name, and category are required")
	}
	ctx, cancel := queryContext(ctx)
	defer cancel()
	id, err := s.store.CreateField(ctx, field)
	if err != nil {
		return mapStoreErr(err)
	}
	return mapStoreErr(s.store.UpsertFieldTranslation(ctx, storage.Translation{
		OwnerID: id,
		Locale:  locale,
		Name:    name,
	}))
}

func (s *catalogService) updateField(ctx context.Context, id int64, weight int, periodicityDays int) error {
	if id <= 0 || weight < 0 || periodicityDays < 0 {
		return apperrors.EK(apperrors.KindInvalidInput, "admin.error.invalid", "field id, weight, and periodicity are required")
	}
	ctx, cancel := queryContext(ctx)
	defer cancel()
	return mapStoreErr(s.store.UpdateField(ctx, id, weight, periodicityDays))
}

func (s *catalogService) createSoftware(ctx context.Context, entry storage.Software) error {
	ctx, cancel := queryContext(ctx)
	defer cancel()
	entry.State = storage.StateDraft
	_, err := s.store.CreateSoftware(ctx, entry)
	return mapStoreErr(err)
}

func (s *catalogService) updateSoftware(ctx context.Context, slug string, updated storage.Software) error {
	ctx, cancel := queryContext(ctx)
	defer cancel()
	entry, err := s.store.GetSoftwareBySlug(ctx, slug)
	if err != nil {
		return mapStoreErr(err)
	}
	updated.ID = entry.ID
	updated.State = entry.State
	return mapStoreErr(s.store.UpdateSoftware(ctx, updated))
}

func (s *catalogService) createTag(ctx context.Context, name string, slug string) error {
	name = strings.TrimSpace(name)
	slug = strings.TrimSpace(slug)
	if name == "" || slug == "" {
		return apperrors.EK(apperrors.KindInvalidInput, "admin.error.invalid", "tag name and slug are required")
	}
	ctx, cancel := queryContext(ctx)
	defer cancel()
	_, err := s.store.CreateTag(ctx, storage.Tag{Name: name, Slug: slug})
	return mapStoreErr(err)
}

func (s *catalogService) setResultPublished(ctx context.Context, id int64, published bool) error {
	if id <= 0 {
		return apperrors.EK(apperrors.KindInvalidInput, "admin.error.invalid", "result id is required")
	}
	ctx, cancel := queryContext(ctx)
	defer cancel()
	return mapStoreErr(s.store.SetResultPublished(ctx, id, published))
}

// recordResult resolves slugs and records a manual analysis result.
func (s *catalogService) recordResult(ctx context.Context, softwareSlug string, fieldSlug string, rawScore string, published bool) error {
	value, err := score.Parse(rawScore)
	if err != nil {
		return apperrors.EK(apperrors.KindInvalidInput, "admin.error.invalid", err.Error())
	}
	ctx, cancel := queryContext(ctx)
	defer cancel()
	entry, err := s.store.GetSoftwareBySlug(ctx, softwareSlug)
	if err != nil {
		return mapStoreErr(err)
	}
	field, err := s.store.GetFieldBySlug(ctx, fieldSlug)
	if err != nil {
		return mapStoreErr(err)
	}
	_, err = s.store.CreateResult(ctx, storage.Result{
		SoftwareID:  entry.ID,
		FieldID:     field.ID,
		Score:       value,
		IsPublished: published,
		IsManual:    true,
	})
	return mapStoreErr(err)
}
