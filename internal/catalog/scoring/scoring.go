// Package scoring aggregates published analysis results into category and
// overall scores.
//
// The computation runs over the read model produced by storage: one row per
// published result, carrying the owning field and category weights. It is
// pure and request-scoped; every call recomputes from the rows it is given.
package scoring

import (
	"sort"
	"time"

	"github.com/linagora/Argus-du-Libre/internal/catalog/score"
)

// ResultRow is one published analysis result joined with its field and
// category, as read from storage.
type ResultRow struct {
	ResultID       int64
	FieldID        int64
	FieldWeight    int
	CategoryID     int64
	CategoryWeight int
	Score          score.Score
	CreatedAt      time.Time
}

// Namer resolves display names for categories and fields. Implementations
// must never fail; missing translations fall back to placeholder names.
type Namer interface {
	CategoryName(id int64) string
	FieldName(id int64) string
}

// FieldScore is the latest published score for one field.
type FieldScore struct {
	FieldID int64
	Name    string
	Weight  int
	Score   score.Score
}

// CategorySummary holds one category's weighted mean and its field scores.
type CategorySummary struct {
	CategoryID int64
	Name       string
	Weight     int
	Score      score.Score
	Scored     bool
	Fields     []FieldScore
}

// ProjectScores is the aggregate for one software entity.
type ProjectScores struct {
	Categories []CategorySummary
	Overall    score.Score
	Scored     bool
}

// LatestPerField reduces rows to at most one row per field: the row with the
// newest creation time wins, with the higher result id breaking exact
// timestamp ties so the output never depends on input order.
func LatestPerField(rows []ResultRow) []ResultRow {
	latest := make(map[int64]ResultRow, len(rows))
	for _, row := range rows {
		current, ok := latest[row.FieldID]
		if !ok {
			latest[row.FieldID] = row
			continue
		}
		if row.CreatedAt.After(current.CreatedAt) {
			latest[row.FieldID] = row
			continue
		}
		if row.CreatedAt.Equal(current.CreatedAt) && row.ResultID > current.ResultID {
			latest[row.FieldID] = row
		}
	}
	out := make([]ResultRow, 0, len(latest))
	for _, row := range latest {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FieldWeight != out[j].FieldWeight {
			return out[i].FieldWeight < out[j].FieldWeight
		}
		return out[i].FieldID < out[j].FieldID
	})
	return out
}

// Aggregate computes per-category and overall scores for one software
// entity from its published result rows. Categories without any published
// field score are absent from the output entirely, and an entity with no
// published scores at all yields Scored == false.
func Aggregate(rows []ResultRow, names Namer) ProjectScores {
	selected := LatestPerField(rows)

	byCategory := map[int64][]ResultRow{}
	for _, row := range selected {
		byCategory[row.CategoryID] = append(byCategory[row.CategoryID], row)
	}

	categories := make([]CategorySummary, 0, len(byCategory))
	for categoryID, categoryRows := range byCategory {
		fields := make([]FieldScore, 0, len(categoryRows))
		weighted := make([]score.Weighted, 0, len(categoryRows))
		for _, row := range categoryRows {
			fields = append(fields, FieldScore{
				FieldID: row.FieldID,
				Name:    fieldName(names, row.FieldID),
				Weight:  row.FieldWeight,
				Score:   row.Score,
			})
			weighted = append(weighted, score.Weighted{Score: row.Score, Weight: row.FieldWeight})
		}
		categoryScore, scored := score.WeightedMean(weighted)
		categories = append(categories, CategorySummary{
			CategoryID: categoryID,
			Name:       categoryName(names, categoryID),
			Weight:     categoryRows[0].CategoryWeight,
			Score:      categoryScore,
			Scored:     scored,
			Fields:     fields,
		})
	}
	sortCategories(categories)

	overallInput := make([]score.Weighted, 0, len(categories))
	for _, category := range categories {
		if !category.Scored {
			continue
		}
		overallInput = append(overallInput, score.Weighted{Score: category.Score, Weight: category.Weight})
	}
	overall, scored := score.WeightedMean(overallInput)

	return ProjectScores{
		Categories: categories,
		Overall:    overall,
		Scored:     scored,
	}
}

func sortCategories(categories []CategorySummary) {
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Weight != categories[j].Weight {
			return categories[i].Weight < categories[j].Weight
		}
		return categories[i].CategoryID < categories[j].CategoryID
	})
}

func categoryName(names Namer, id int64) string {
	if names == nil {
		return ""
	}
	return names.CategoryName(id)
}

func fieldName(names Namer, id int64) string {
	if names == nil {
		return ""
	}
	return names.FieldName(id)
}
