package templates

import (
	"github.com/a-h/templ"
	"github.com/linagora/Argus-du-Libre/internal/services/web/routepath"
)

// ProjectCard summarizes one software entry in listings.
type ProjectCard struct {
	Name    string
	Slug    string
	LogoURL string
	// Overall is the formatted overall score, empty when unscored.
	Overall string
	// Band is the 1..5 presentation band, zero when unscored.
	Band int
}

// HomePage renders the featured project grid.
func HomePage(page PageContext, cards []ProjectCard) templ.Component {
	body := build(func(b *htmlBuilder) {
		b.el("h1", "", T(page.Loc, "public.home.title"))
		if len(cards) == 0 {
			b.el("p", `class="empty"`, T(page.Loc, "public.home.empty"))
			return
		}
		b.raw(`<ul class="project-grid">`)
		for _, card := range cards {
			writeProjectCard(b, page, card)
		}
		b.raw(`</ul>`)
	})
	return Layout(page, T(page.Loc, "public.home.title"), body)
}

func writeProjectCard(b *htmlBuilder, page PageContext, card ProjectCard) {
	b.raw(`<li class="project-card">`)
	b.rawf(`<a href="%s">`, templ.EscapeString(routepath.Project(card.Slug)))
	if card.LogoURL != "" {
		b.rawf(`<img src="%s" alt="">`, templ.EscapeString(card.LogoURL))
	}
	b.el("span", `class="project-name"`, card.Name)
	b.raw(`</a>`)
	writeScoreBadge(b, page, card.Overall, card.Band)
	b.raw(`</li>`)
}

func writeScoreBadge(b *htmlBuilder, page PageContext, overall string, band int) {
	if overall == "" {
		b.el("span", `class="score unscored"`, T(page.Loc, "public.project.no_score"))
		return
	}
	b.rawf(`<span class="score band-%d">`, band)
	b.text(overall)
	b.raw(`</span>`)
}
