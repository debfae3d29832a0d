package templates

import "github.com/a-h/templ"

// AboutPage renders the static about page.
func AboutPage(page PageContext) templ.Component {
	body := build(func(b *htmlBuilder) {
		b.el("h1", "", T(page.Loc, "public.about.title"))
		b.el("p", "", T(page.Loc, "public.about.body"))
	})
	return Layout(page, T(page.Loc, "public.about.title"), body)
}
