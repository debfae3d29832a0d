package templates

import "github.com/a-h/templ"

// TagParams carries the tag and its published projects.
type TagParams struct {
	Name     string
	Projects []ProjectCard
}

// TagPage renders the listing of projects carrying one tag.
func TagPage(page PageContext, params TagParams) templ.Component {
	title := T(page.Loc, "public.tag.title", params.Name)
	body := build(func(b *htmlBuilder) {
		b.el("h1", "", title)
		if len(params.Projects) == 0 {
			b.el("p", `class="empty"`, T(page.Loc, "public.tag.empty"))
			return
		}
		b.raw(`<ul class="project-grid">`)
		for _, card := range params.Projects {
			writeProjectCard(b, page, card)
		}
		b.raw(`</ul>`)
	})
	return Layout(page, title, body)
}
