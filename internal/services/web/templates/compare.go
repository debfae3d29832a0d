package templates

import (
	"github.com/a-h/templ"
	"github.com/linagora/Argus-du-Libre/internal/services/web/routepath"
)

// CompareColumn is one project heading a compare table column.
type CompareColumn struct {
	Name string
	Slug string
}

// CompareRowView is one labeled row of per-project cells.
// An empty cell means the project is unscored for that row.
type CompareRowView struct {
	Name  string
	Cells []string
}

// CompareCategorySection is one category row with its field rows.
type CompareCategorySection struct {
	Name   string
	Cells  []string
	Fields []CompareRowView
}

// CompareParams carries the full comparison matrix.
type CompareParams struct {
	Projects   []CompareColumn
	Overall    []string
	Categories []CompareCategorySection
}

// ComparePage renders the side-by-side comparison table.
func ComparePage(page PageContext, params CompareParams) templ.Component {
	body := build(func(b *htmlBuilder) {
		b.el("h1", "", T(page.Loc, "public.compare.title"))
		b.raw(`<table class="compare"><thead><tr><th></th>`)
		for _, project := range params.Projects {
			b.raw(`<th>`)
			b.link(routepath.Project(project.Slug), project.Name)
			b.raw(`</th>`)
		}
		b.raw(`</tr></thead><tbody>`)

		writeCompareRow(b, page, `class="overall"`, CompareRowView{
			Name:  T(page.Loc, "public.compare.overall"),
			Cells: params.Overall,
		})
		for _, category := range params.Categories {
			writeCompareRow(b, page, `class="category"`, CompareRowView{
				Name:  category.Name,
				Cells: category.Cells,
			})
			for _, field := range category.Fields {
				writeCompareRow(b, page, `class="field"`, field)
			}
		}
		b.raw(`</tbody></table>`)
	})
	return Layout(page, T(page.Loc, "public.compare.title"), body)
}

func writeCompareRow(b *htmlBuilder, page PageContext, attrs string, row CompareRowView) {
	b.raw(`<tr ` + attrs + `><th scope="row">`)
	b.text(row.Name)
	b.raw(`</th>`)
	for _, cell := range row.Cells {
		if cell == "" {
			b.el("td", `class="unscored"`, T(page.Loc, "public.project.no_score"))
			continue
		}
		b.el("td", "", cell)
	}
	b.raw(`</tr>`)
}
