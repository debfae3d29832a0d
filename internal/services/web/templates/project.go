package templates

import (
	"strconv"

	"github.com/a-h/templ"
	"github.com/linagora/Argus-du-Libre/internal/services/web/routepath"
)

// TagLink points at one tag listing page.
type TagLink struct {
	Name string
	Slug string
}

// FieldScoreView is one scored field row on the project page.
type FieldScoreView struct {
	Name       string
	Weight     int
	Score      string
	MetricsURL string
}

// CategoryScoreView is one category section on the project page.
type CategoryScoreView struct {
	Name   string
	Weight int
	// Score is empty when no field of the category is scored.
	Score  string
	Band   int
	Fields []FieldScoreView
}

// CompareOption is one candidate project for the compare picker.
type CompareOption struct {
	Name string
	Slug string
}

// ProjectParams carries everything the project detail page renders.
type ProjectParams struct {
	Name          string
	Slug          string
	LogoURL       string
	WebsiteURL    string
	RepositoryURL string
	Overview      string
	Tags          []TagLink
	Overall       string
	OverallBand   int
	Categories    []CategoryScoreView
	CompareWith   []CompareOption
}

// ProjectPage renders the project detail view with per-category scores.
func ProjectPage(page PageContext, params ProjectParams) templ.Component {
	body := build(func(b *htmlBuilder) {
		b.raw(`<article class="project">`)
		b.raw(`<header>`)
		if params.LogoURL != "" {
			b.rawf(`<img class="logo" src="%s" alt="">`, templ.EscapeString(params.LogoURL))
		}
		b.el("h1", "", params.Name)
		writeScoreBadge(b, page, params.Overall, params.OverallBand)
		b.raw(`</header>`)

		b.raw(`<ul class="project-links">`)
		if params.WebsiteURL != "" {
			b.raw(`<li>`)
			b.link(params.WebsiteURL, T(page.Loc, "public.project.website"))
			b.raw(`</li>`)
		}
		if params.RepositoryURL != "" {
			b.raw(`<li>`)
			b.link(params.RepositoryURL, T(page.Loc, "public.project.repository"))
			b.raw(`</li>`)
		}
		b.raw(`</ul>`)

		if params.Overview != "" {
			b.el("section", `class="overview"`, params.Overview)
		}

		if len(params.Tags) > 0 {
			b.el("h2", "", T(page.Loc, "public.project.tags"))
			b.raw(`<ul class="tags">`)
			for _, tag := range params.Tags {
				b.raw(`<li>`)
				b.link(routepath.Tag(tag.Slug), tag.Name)
				b.raw(`</li>`)
			}
			b.raw(`</ul>`)
		}

		for _, category := range params.Categories {
			writeCategoryScores(b, page, category)
		}

		writeComparePicker(b, page, params)
		b.raw(`</article>`)
	})
	return Layout(page, params.Name, body)
}

func writeCategoryScores(b *htmlBuilder, page PageContext, category CategoryScoreView) {
	b.raw(`<section class="category">`)
	b.raw(`<h2>`)
	b.text(category.Name)
	b.raw(`</h2>`)
	writeScoreBadge(b, page, category.Score, category.Band)
	b.raw(`<table class="fields"><tbody>`)
	for _, field := range category.Fields {
		b.raw(`<tr><td>`)
		if field.MetricsURL != "" {
			b.link(field.MetricsURL, field.Name)
		} else {
			b.text(field.Name)
		}
		b.raw(`</td><td class="weight">`)
		b.text(strconv.Itoa(field.Weight))
		b.raw(`</td><td class="value">`)
		b.text(field.Score)
		b.raw(`</td></tr>`)
	}
	b.raw(`</tbody></table></section>`)
}

func writeComparePicker(b *htmlBuilder, page PageContext, params ProjectParams) {
	if len(params.CompareWith) == 0 {
		return
	}
	b.raw(`<section class="compare-picker">`)
	b.el("h2", "", T(page.Loc, "public.project.compare_with"))
	b.rawf(`<form method="get" action="%s">`, routepath.Compare)
	b.rawf(`<input type="hidden" name="%s" value="%s">`,
		routepath.CompareQueryKey, templ.EscapeString(params.Slug))
	b.rawf(`<select name="%s" multiple>`, routepath.CompareQueryKey)
	for _, option := range params.CompareWith {
		b.rawf(`<option value="%s">`, templ.EscapeString(option.Slug))
		b.text(option.Name)
		b.raw(`</option>`)
	}
	b.raw(`</select>`)
	b.el("button", `type="submit"`, T(page.Loc, "public.project.compare_submit"))
	b.raw(`</form></section>`)
}
