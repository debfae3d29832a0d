package scoring

import (
	"sort"

	"github.com/linagora/Argus-du-Libre/internal/catalog/score"
)

// CompareEntry is one project's score in a comparison cell. Scored is false
// where the project has no published score for the row.
type CompareEntry struct {
	Score  score.Score
	Scored bool
}

// CompareField is one field row across all compared projects.
type CompareField struct {
	FieldID int64
	Name    string
	Weight  int
	Scores  []CompareEntry
}

// CompareCategory is one category section across all compared projects.
type CompareCategory struct {
	CategoryID int64
	Name       string
	Weight     int
	Scores     []CompareEntry
	Fields     []CompareField
}

// Comparison is the side-by-side score table for 2..5 projects. Cell slices
// are indexed by project position in the Compare input.
type Comparison struct {
	Projects   []ProjectScores
	Categories []CompareCategory
	Overall    []CompareEntry
}

// Compare aggregates each project independently and lays the results out
// over the union of categories and fields seen across all projects, ordered
// by (weight, id) at both levels.
func Compare(projects [][]ResultRow, names Namer) Comparison {
	aggregated := make([]ProjectScores, len(projects))
	for i, rows := range projects {
		aggregated[i] = Aggregate(rows, names)
	}

	type fieldKey struct {
		id     int64
		weight int
	}
	categoryWeights := map[int64]int{}
	categoryFields := map[int64]map[int64]int{}
	for _, project := range aggregated {
		for _, category := range project.Categories {
			categoryWeights[category.CategoryID] = category.Weight
			fields, ok := categoryFields[category.CategoryID]
			if !ok {
				fields = map[int64]int{}
				categoryFields[category.CategoryID] = fields
			}
			for _, field := range category.Fields {
				fields[field.FieldID] = field.Weight
			}
		}
	}

	categoryIDs := make([]fieldKey, 0, len(categoryWeights))
	for id, weight := range categoryWeights {
		categoryIDs = append(categoryIDs, fieldKey{id: id, weight: weight})
	}
	sort.Slice(categoryIDs, func(i, j int) bool {
		if categoryIDs[i].weight != categoryIDs[j].weight {
			return categoryIDs[i].weight < categoryIDs[j].weight
		}
		return categoryIDs[i].id < categoryIDs[j].id
	})

	categories := make([]CompareCategory, 0, len(categoryIDs))
	for _, categoryKey := range categoryIDs {
		fields := categoryFields[categoryKey.id]
		fieldKeys := make([]fieldKey, 0, len(fields))
		for id, weight := range fields {
			fieldKeys = append(fieldKeys, fieldKey{id: id, weight: weight})
		}
		sort.Slice(fieldKeys, func(i, j int) bool {
			if fieldKeys[i].weight != fieldKeys[j].weight {
				return fieldKeys[i].weight < fieldKeys[j].weight
			}
			return fieldKeys[i].id < fieldKeys[j].id
		})

		categoryScores := make([]CompareEntry, len(aggregated))
		for i, project := range aggregated {
			categoryScores[i] = categoryEntry(project, categoryKey.id)
		}

		compareFields := make([]CompareField, 0, len(fieldKeys))
		for _, fk := range fieldKeys {
			cells := make([]CompareEntry, len(aggregated))
			for i, project := range aggregated {
				cells[i] = fieldEntry(project, categoryKey.id, fk.id)
			}
			compareFields = append(compareFields, CompareField{
				FieldID: fk.id,
				Name:    fieldName(names, fk.id),
				Weight:  fk.weight,
				Scores:  cells,
			})
		}

		categories = append(categories, CompareCategory{
			CategoryID: categoryKey.id,
			Name:       categoryName(names, categoryKey.id),
			Weight:     categoryKey.weight,
			Scores:     categoryScores,
			Fields:     compareFields,
		})
	}

	overall := make([]CompareEntry, len(aggregated))
	for i, project := range aggregated {
		overall[i] = CompareEntry{Score: project.Overall, Scored: project.Scored}
	}

	return Comparison{
		Projects:   aggregated,
		Categories: categories,
		Overall:    overall,
	}
}

func categoryEntry(project ProjectScores, categoryID int64) CompareEntry {
	for _, category := range project.Categories {
		if category.CategoryID == categoryID {
			return CompareEntry{Score: category.Score, Scored: category.Scored}
		}
	}
	return CompareEntry{}
}

func fieldEntry(project ProjectScores, categoryID int64, fieldID int64) CompareEntry {
	for _, category := range project.Categories {
		if category.CategoryID != categoryID {
			continue
		}
		for _, field := range category.Fields {
			if field.FieldID == fieldID {
				return CompareEntry{Score: field.Score, Scored: true}
			}
		}
	}
	return CompareEntry{}
}
