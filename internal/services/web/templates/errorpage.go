package templates

import "github.com/a-h/templ"

// ErrorParams carries a localized error title and body.
type ErrorParams struct {
	Title string
	Body  string
}

// ErrorPage renders a full-page error view.
func ErrorPage(page PageContext, params ErrorParams) templ.Component {
	body := build(func(b *htmlBuilder) {
		b.raw(`<section class="error-page">`)
		b.el("h1", "", params.Title)
		b.el("p", "", params.Body)
		b.raw(`</section>`)
	})
	return Layout(page, params.Title, body)
}
