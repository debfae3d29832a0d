package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/linagora/Argus-du-Libre/internal/services/web/routepath"
)

// adminLayout wraps admin bodies with the editor chrome and nav.
func adminLayout(page PageContext, title string, signedIn bool, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var head htmlBuilder
		head.rawf(`<!doctype html><html lang="%s"><head><meta charset="utf-8">`, templ.EscapeString(page.Lang))
		head.el("title", "", title)
		head.raw(`<link rel="stylesheet" href="/static/site.css"></head><body class="admin">`)
		head.raw(`<header class="site-header"><nav>`)
		head.rawf(`<a class="brand" href="%s">`, routepath.AdminRoot)
		head.text(T(page.Loc, "admin.title"))
		head.raw(`</a>`)
		if signedIn {
			head.raw(`<ul class="nav-links"><li>`)
			head.link(routepath.AdminCategories, T(page.Loc, "admin.nav.categories"))
			head.raw(`</li><li>`)
			head.link(routepath.AdminSoftware, T(page.Loc, "admin.nav.software"))
			head.raw(`</li><li>`)
			head.link(routepath.AdminResults, T(page.Loc, "admin.nav.results"))
			head.raw(`</li><li>`)
			head.link(routepath.AdminTags, T(page.Loc, "admin.nav.tags"))
			head.raw(`</li><li>`)
			head.rawf(`<form method="post" action="%s">`, routepath.AdminLogout)
			head.el("button", `type="submit"`, T(page.Loc, "admin.nav.logout"))
			head.raw(`</form></li></ul>`)
		}
		head.raw(`</nav></header><main>`)
		if _, err := io.WriteString(w, head.String()); err != nil {
			return err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

// AdminLoginParams carries login form state.
type AdminLoginParams struct {
	Error string
}

// AdminLoginPage renders the editor sign-in form.
func AdminLoginPage(page PageContext, params AdminLoginParams) templ.Component {
	body := build(func(b *htmlBuilder) {
		b.el("h1", "", T(page.Loc, "admin.login.title"))
		if params.Error != "" {
			b.el("p", `class="form-error"`, params.Error)
		}
		b.rawf(`<form method="post" action="%s" class="login-form">`, routepath.AdminLogin)
		b.raw(`<label>`)
		b.text(T(page.Loc, "admin.login.editor_id"))
		b.raw(`<input type="text" name="editor_id" required></label>`)
		b.raw(`<label>`)
		b.text(T(page.Loc, "admin.login.secret"))
		b.raw(`<input type="password" name="secret" required></label>`)
		b.el("button", `type="submit"`, T(page.Loc, "admin.login.submit"))
		b.raw(`</form>`)
	})
	return adminLayout(page, T(page.Loc, "admin.login.title"), false, body)
}

// AdminFieldRow is one field under a category in the admin view.
type AdminFieldRow struct {
	ID              int64
	Slug            string
	Name            string
	Weight          int
	PeriodicityDays int
}

// AdminCategoryRow is one category with its fields in the admin view.
type AdminCategoryRow struct {
	ID     int64
	Name   string
	Weight int
	Fields []AdminFieldRow
}

// AdminCategoriesPage renders category and field management.
func AdminCategoriesPage(page PageContext, rows []AdminCategoryRow) templ.Component {
	body := build(func(b *htmlBuilder) {
		b.el("h1", "", T(page.Loc, "admin.categories.title"))
		for _, category := range rows {
			b.raw(`<section class="admin-category">`)
			b.raw(`<h2>`)
			b.text(category.Name)
			b.rawf(` <small>#%d</small></h2>`, category.ID)
			b.rawf(`<form method="post" action="%s" class="inline">`, routepath.AdminCategories)
			b.raw(`<input type="hidden" name="action" value="update">`)
			b.rawf(`<input type="hidden" name="id" value="%d">`, category.ID)
			b.raw(`<label>`)
			b.text(T(page.Loc, "admin.common.weight"))
			b.rawf(`<input type="number" name="weight" value="%d" min="0"></label>`, category.Weight)
			b.el("button", `type="submit"`, T(page.Loc, "admin.common.save"))
			b.raw(`</form>`)

			b.el("h3", "", T(page.Loc, "admin.categories.fields"))
			b.raw(`<table><tbody>`)
			for _, field := range category.Fields {
				b.raw(`<tr><td>`)
				b.text(field.Name)
				b.raw(`</td><td class="slug">`)
				b.text(field.Slug)
				b.raw(`</td><td>`)
				b.rawf(`<form method="post" action="%s" class="inline">`, routepath.AdminFields)
				b.raw(`<input type="hidden" name="action" value="update">`)
				b.rawf(`<input type="hidden" name="id" value="%d">`, field.ID)
				b.rawf(`<input type="number" name="weight" value="%d" min="0">`, field.Weight)
				b.rawf(`<input type="number" name="periodicity_days" value="%d" min="0">`, field.PeriodicityDays)
				b.el("button", `type="submit"`, T(page.Loc, "admin.common.save"))
				b.raw(`</form></td></tr>`)
			}
			b.raw(`</tbody></table>`)

			writeAdminFieldForm(b, page, category.ID)
			b.raw(`</section>`)
		}
		writeAdminCategoryForm(b, page)
	})
	return adminLayout(page, T(page.Loc, "admin.categories.title"), true, body)
}

func writeAdminCategoryForm(b *htmlBuilder, page PageContext) {
	b.el("h2", "", T(page.Loc, "admin.categories.new"))
	b.rawf(`<form method="post" action="%s">`, routepath.AdminCategories)
	b.raw(`<input type="hidden" name="action" value="create">`)
	b.raw(`<label>`)
	b.text(T(page.Loc, "admin.common.weight"))
	b.raw(`<input type="number" name="weight" value="1" min="0"></label>`)
	b.raw(`<label>`)
	b.text(T(page.Loc, "admin.common.name"))
	b.raw(`<input type="text" name="name" required></label>`)
	b.raw(`<label>`)
	b.text(T(page.Loc, "admin.common.locale"))
	writeLocaleSelect(b, page)
	b.raw(`</label>`)
	b.el("button", `type="submit"`, T(page.Loc, "admin.common.create"))
	b.raw(`</form>`)
}

func writeAdminFieldForm(b *htmlBuilder, page PageContext, categoryID int64) {
	b.el("h4", "", T(page.Loc, "admin.fields.new"))
	b.rawf(`<form method="post" action="%s">`, routepath.AdminFields)
	b.raw(`<input type="hidden" name="action" value="create">`)
	b.rawf(`<input type="hidden" name="category_id" value="%d">`, categoryID)
	b.raw(`<label>`)
	b.text(T(page.Loc, "admin.common.slug"))
	b.raw(`<input type="text" name="slug" required></label>`)
	b.raw(`<label>`)
	b.text(T(page.Loc, "admin.common.name"))
	b.raw(`<input type="text" name="name" required></label>`)
	b.raw(`<label>`)
	b.text(T(page.Loc, "admin.common.locale"))
	writeLocaleSelect(b, page)
	b.raw(`</label>`)
	b.raw(`<label>`)
	b.text(T(page.Loc, "admin.common.weight"))
	b.raw(`<input type="number" name="weight" value="1" min="0"></label>`)
	b.raw(`<label>`)
	b.text(T(page.Loc, "admin.fields.periodicity"))
	b.raw(`<input type="number" name="periodicity_days" value="0" min="0"></label>`)
	b.el("button", `type="submit"`, T(page.Loc, "admin.common.create"))
	b.raw(`</form>`)
}

func writeLocaleSelect(b *htmlBuilder, page PageContext) {
	b.raw(`<select name="locale">`)
	for _, option := range LanguageOptions(page) {
		b.rawf(`<option value="%s">`, templ.EscapeString(option.Tag))
		b.text(option.Label)
		b.raw(`</option>`)
	}
	b.raw(`</select>`)
}

// AdminSoftwareRow is one software entry in the admin list.
type AdminSoftwareRow struct {
	Name     string
	Slug     string
	State    string
	Featured bool
}

// AdminSoftwarePage renders the software list and create form.
func AdminSoftwarePage(page PageContext, rows []AdminSoftwareRow) templ.Component {
	body := build(func(b *htmlBuilder) {
		b.el("h1", "", T(page.Loc, "admin.software.title"))
		b.raw(`<table><tbody>`)
		for _, row := range rows {
			b.raw(`<tr><td>`)
			b.link(routepath.AdminSoftwareDetail(row.Slug), row.Name)
			b.raw(`</td><td class="state">`)
			b.text(row.State)
			b.raw(`</td><td>`)
			if row.Featured {
				b.raw(`<span class="featured">&#9733;</span>`)
			}
			b.raw(`</td></tr>`)
		}
		b.raw(`</tbody></table>`)

		b.el("h2", "", T(page.Loc, "admin.software.new"))
		b.rawf(`<form method="post" action="%s">`, routepath.AdminSoftware)
		b.raw(`<label>`)
		b.text(T(page.Loc, "admin.common.name"))
		b.raw(`<input type="text" name="name" required></label>`)
		b.raw(`<label>`)
		b.text(T(page.Loc, "admin.common.slug"))
		b.raw(`<input type="text" name="slug" required></label>`)
		b.raw(`<label>Website<input type="url" name="website_url"></label>`)
		b.raw(`<label>Repository<input type="url" name="repository_url"></label>`)
		b.raw(`<label>Logo<input type="url" name="logo_url"></label>`)
		b.el("button", `type="submit"`, T(page.Loc, "admin.common.create"))
		b.raw(`</form>`)
	})
	return adminLayout(page, T(page.Loc, "admin.software.title"), true, body)
}

// AdminSoftwareDetailParams carries one software entry for editing.
type AdminSoftwareDetailParams struct {
	Name          string
	Slug          string
	LogoURL       string
	WebsiteURL    string
	RepositoryURL string
	State         string
	Featured      bool
	Tags          []TagLink
	AllTags       []TagLink
	Overview      string
}

// AdminSoftwareDetailPage renders the edit surface for one software entry.
func AdminSoftwareDetailPage(page PageContext, params AdminSoftwareDetailParams) templ.Component {
	detail := routepath.AdminSoftwareDetail(params.Slug)
	body := build(func(b *htmlBuilder) {
		b.raw(`<h1>`)
		b.text(params.Name)
		b.raw(` <small class="state">`)
		b.text(params.State)
		b.raw(`</small></h1>`)

		b.rawf(`<form method="post" action="%s">`, templ.EscapeString(detail))
		b.raw(`<label>`)
		b.text(T(page.Loc, "admin.common.name"))
		b.rawf(`<input type="text" name="name" value="%s" required></label>`, templ.EscapeString(params.Name))
		b.raw(`<label>`)
		b.text(T(page.Loc, "admin.common.slug"))
		b.rawf(`<input type="text" name="slug" value="%s" required></label>`, templ.EscapeString(params.Slug))
		b.rawf(`<label>Website<input type="url" name="website_url" value="%s"></label>`, templ.EscapeString(params.WebsiteURL))
		b.rawf(`<label>Repository<input type="url" name="repository_url" value="%s"></label>`, templ.EscapeString(params.RepositoryURL))
		b.rawf(`<label>Logo<input type="url" name="logo_url" value="%s"></label>`, templ.EscapeString(params.LogoURL))
		b.el("button", `type="submit"`, T(page.Loc, "admin.common.save"))
		b.raw(`</form>`)

		b.rawf(`<form method="post" action="%s/state" class="inline">`, templ.EscapeString(detail))
		b.raw(`<select name="state">`)
		for _, state := range []string{"draft", "published", "archived"} {
			selected := ""
			if state == params.State {
				selected = ` selected`
			}
			b.rawf(`<option value="%s"%s>`, state, selected)
			b.text(state)
			b.raw(`</option>`)
		}
		b.raw(`</select>`)
		b.el("button", `type="submit"`, T(page.Loc, "admin.software.state"))
		b.raw(`</form>`)

		b.rawf(`<form method="post" action="%s/feature" class="inline">`, templ.EscapeString(detail))
		if params.Featured {
			b.raw(`<input type="hidden" name="featured" value="0">`)
			b.el("button", `type="submit"`, T(page.Loc, "admin.software.unfeature"))
		} else {
			b.raw(`<input type="hidden" name="featured" value="1">`)
			b.el("button", `type="submit"`, T(page.Loc, "admin.software.feature"))
		}
		b.raw(`</form>`)

		b.el("h2", "", T(page.Loc, "public.project.tags"))
		b.raw(`<ul class="tags">`)
		for _, tag := range params.Tags {
			b.raw(`<li>`)
			b.text(tag.Name)
			b.rawf(` <form method="post" action="%s/tags" class="inline">`, templ.EscapeString(detail))
			b.raw(`<input type="hidden" name="action" value="detach">`)
			b.rawf(`<input type="hidden" name="tag_slug" value="%s">`, templ.EscapeString(tag.Slug))
			b.raw(`<button type="submit">&times;</button></form></li>`)
		}
		b.raw(`</ul>`)
		if len(params.AllTags) > 0 {
			b.rawf(`<form method="post" action="%s/tags" class="inline">`, templ.EscapeString(detail))
			b.raw(`<input type="hidden" name="action" value="attach"><select name="tag_slug">`)
			for _, tag := range params.AllTags {
				b.rawf(`<option value="%s">`, templ.EscapeString(tag.Slug))
				b.text(tag.Name)
				b.raw(`</option>`)
			}
			b.raw(`</select>`)
			b.el("button", `type="submit"`, T(page.Loc, "admin.common.save"))
			b.raw(`</form>`)
		}

		b.raw(`<h2>Overview</h2>`)
		b.rawf(`<form method="post" action="%s/overview">`, templ.EscapeString(detail))
		b.raw(`<label>`)
		b.text(T(page.Loc, "admin.common.locale"))
		writeLocaleSelect(b, page)
		b.raw(`</label><textarea name="content" rows="8">`)
		b.text(params.Overview)
		b.raw(`</textarea>`)
		b.el("button", `type="submit"`, T(page.Loc, "admin.common.save"))
		b.raw(`</form>`)
	})
	return adminLayout(page, params.Name, true, body)
}

// AdminResultRow is one analysis result in the admin list.
type AdminResultRow struct {
	ID        int64
	Software  string
	Field     string
	Score     string
	Published bool
	CreatedAt string
}

// AdminResultOption is one select option for recording results.
type AdminResultOption struct {
	Value string
	Label string
}

// AdminResultsParams carries result rows and form options.
type AdminResultsParams struct {
	Rows     []AdminResultRow
	Software []AdminResultOption
	Fields   []AdminResultOption
}

// AdminResultsPage renders the result list and record form.
func AdminResultsPage(page PageContext, params AdminResultsParams) templ.Component {
	body := build(func(b *htmlBuilder) {
		b.el("h1", "", T(page.Loc, "admin.results.title"))
		b.raw(`<table><tbody>`)
		for _, row := range params.Rows {
			b.raw(`<tr><td>`)
			b.text(row.Software)
			b.raw(`</td><td>`)
			b.text(row.Field)
			b.raw(`</td><td class="value">`)
			b.text(row.Score)
			b.raw(`</td><td class="when">`)
			b.text(row.CreatedAt)
			b.raw(`</td><td>`)
			b.rawf(`<form method="post" action="%s/%d/publish" class="inline">`, routepath.AdminResults, row.ID)
			if row.Published {
				b.raw(`<input type="hidden" name="published" value="0">`)
				b.el("button", `type="submit"`, T(page.Loc, "admin.results.unpublish"))
			} else {
				b.raw(`<input type="hidden" name="published" value="1">`)
				b.el("button", `type="submit"`, T(page.Loc, "admin.results.publish"))
			}
			b.raw(`</form></td></tr>`)
		}
		b.raw(`</tbody></table>`)

		b.el("h2", "", T(page.Loc, "admin.results.new"))
		b.rawf(`<form method="post" action="%s">`, routepath.AdminResults)
		writeAdminSelect(b, "software_slug", params.Software)
		writeAdminSelect(b, "field_slug", params.Fields)
		b.raw(`<label>`)
		b.text(T(page.Loc, "admin.results.score"))
		b.raw(`<input type="text" name="score" placeholder="4.50" required></label>`)
		b.raw(`<label><input type="checkbox" name="published" value="1"> `)
		b.text(T(page.Loc, "admin.results.publish"))
		b.raw(`</label>`)
		b.el("button", `type="submit"`, T(page.Loc, "admin.common.create"))
		b.raw(`</form>`)
	})
	return adminLayout(page, T(page.Loc, "admin.results.title"), true, body)
}

func writeAdminSelect(b *htmlBuilder, name string, options []AdminResultOption) {
	b.rawf(`<select name="%s">`, name)
	for _, option := range options {
		b.rawf(`<option value="%s">`, templ.EscapeString(option.Value))
		b.text(option.Label)
		b.raw(`</option>`)
	}
	b.raw(`</select>`)
}

// AdminTagsPage renders the tag list and create form.
func AdminTagsPage(page PageContext, tags []TagLink) templ.Component {
	body := build(func(b *htmlBuilder) {
		b.el("h1", "", T(page.Loc, "admin.tags.title"))
		b.raw(`<ul class="tags">`)
		for _, tag := range tags {
			b.raw(`<li>`)
			b.text(tag.Name)
			b.raw(` <span class="slug">`)
			b.text(tag.Slug)
			b.raw(`</span></li>`)
		}
		b.raw(`</ul>`)

		b.el("h2", "", T(page.Loc, "admin.tags.new"))
		b.rawf(`<form method="post" action="%s">`, routepath.AdminTags)
		b.raw(`<label>`)
		b.text(T(page.Loc, "admin.common.name"))
		b.raw(`<input type="text" name="name" required></label>`)
		b.raw(`<label>`)
		b.text(T(page.Loc, "admin.common.slug"))
		b.raw(`<input type="text" name="slug" required></label>`)
		b.el("button", `type="submit"`, T(page.Loc, "admin.common.create"))
		b.raw(`</form>`)
	})
	return adminLayout(page, T(page.Loc, "admin.tags.title"), true, body)
}
