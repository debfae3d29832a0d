package templates

import (
	"github.com/a-h/templ"
	"github.com/linagora/Argus-du-Libre/internal/services/web/routepath"
)

// SearchParams carries the query and its matches.
type SearchParams struct {
	Query   string
	Results []ProjectCard
}

// SearchPage renders the search form and any results.
func SearchPage(page PageContext, params SearchParams) templ.Component {
	body := build(func(b *htmlBuilder) {
		b.el("h1", "", T(page.Loc, "public.search.title"))
		b.rawf(`<form method="get" action="%s" class="search-form">`, routepath.Search)
		b.rawf(`<input type="search" name="%s" value="%s" placeholder="%s">`,
			routepath.SearchQueryKey,
			templ.EscapeString(params.Query),
			templ.EscapeString(T(page.Loc, "public.search.placeholder")))
		b.el("button", `type="submit"`, T(page.Loc, "public.search.submit"))
		b.raw(`</form>`)

		if params.Query == "" {
			return
		}
		b.el("h2", "", T(page.Loc, "public.search.results_for", params.Query))
		if len(params.Results) == 0 {
			b.el("p", `class="empty"`, T(page.Loc, "public.search.no_results"))
			return
		}
		b.raw(`<ul class="project-grid">`)
		for _, card := range params.Results {
			writeProjectCard(b, page, card)
		}
		b.raw(`</ul>`)
	})
	return Layout(page, T(page.Loc, "public.search.title"), body)
}
