// Package templates renders the catalog's HTML pages as templ components.
package templates

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/linagora/Argus-du-Libre/internal/services/web/routepath"
)

// htmlBuilder accumulates markup with escaped interpolation.
type htmlBuilder struct {
	strings.Builder
}

func (b *htmlBuilder) raw(markup string) {
	b.WriteString(markup)
}

func (b *htmlBuilder) text(value string) {
	b.WriteString(templ.EscapeString(value))
}

func (b *htmlBuilder) rawf(format string, args ...any) {
	fmt.Fprintf(b, format, args...)
}

// el writes an element with escaped text content.
func (b *htmlBuilder) el(tag string, attrs string, text string) {
	b.WriteString("<" + tag)
	if attrs != "" {
		b.WriteString(" " + attrs)
	}
	b.WriteString(">")
	b.text(text)
	b.WriteString("</" + tag + ">")
}

func (b *htmlBuilder) link(href string, text string) {
	b.rawf(`<a href="%s">`, templ.EscapeString(href))
	b.text(text)
	b.raw("</a>")
}

func build(render func(b *htmlBuilder)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b htmlBuilder
		render(&b)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// Layout wraps a page body with the shared document chrome.
func Layout(page PageContext, title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var head htmlBuilder
		head.rawf(`<!doctype html><html lang="%s"><head><meta charset="utf-8">`, templ.EscapeString(page.Lang))
		head.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		head.el("title", "", title)
		head.raw(`<link rel="stylesheet" href="/static/site.css"></head><body>`)
		head.raw(`<header class="site-header"><nav>`)
		head.rawf(`<a class="brand" href="%s">`, routepath.Root)
		head.text(siteName(page))
		head.raw(`</a><ul class="nav-links">`)
		head.raw(`<li>`)
		head.link(routepath.Root, T(page.Loc, "public.nav.home"))
		head.raw(`</li><li>`)
		head.link(routepath.Search, T(page.Loc, "public.nav.search"))
		head.raw(`</li><li>`)
		head.link(routepath.About, T(page.Loc, "public.nav.about"))
		head.raw(`</li></ul><ul class="lang-switch">`)
		for _, option := range LanguageOptions(page) {
			if option.Active {
				head.raw(`<li class="active">`)
				head.text(option.Label)
				head.raw(`</li>`)
				continue
			}
			head.raw(`<li>`)
			head.link(LanguageURL(page, option.Tag), option.Label)
			head.raw(`</li>`)
		}
		head.raw(`</ul></nav></header><main>`)
		if _, err := io.WriteString(w, head.String()); err != nil {
			return err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		var tail htmlBuilder
		tail.raw(`</main><footer class="site-footer">`)
		tail.el("p", "", T(page.Loc, "public.site.tagline"))
		tail.raw(`</footer></body></html>`)
		_, err := io.WriteString(w, tail.String())
		return err
	})
}

func siteName(page PageContext) string {
	if strings.TrimSpace(page.AppName) != "" {
		return page.AppName
	}
	return T(page.Loc, "public.site.name")
}
