package web

import (
	"bytes"
	"net/http"

	"github.com/a-h/templ"
	platformerrors "github.com/linagora/Argus-du-Libre/internal/platform/errors"
	sharedi18n "github.com/linagora/Argus-du-Libre/internal/services/shared/i18nhttp"
	"github.com/linagora/Argus-du-Libre/internal/services/web/templates"
	"golang.org/x/text/message"
)

// localizer resolves the request locale, optionally persists a cookie,
// and returns a message printer with the resolved language tag string.
func localizer(w http.ResponseWriter, r *http.Request) (*message.Printer, string) {
	tag, setCookie := sharedi18n.ResolveTag(r)
	if setCookie {
		sharedi18n.SetLanguageCookie(w, tag)
	}
	return sharedi18n.Printer(tag), tag.String()
}

// pageContext builds the shared layout context for the current request.
func pageContext(w http.ResponseWriter, r *http.Request) templates.PageContext {
	printer, lang := localizer(w, r)
	page := templates.PageContext{
		Lang: lang,
		Loc:  printer,
	}
	if r != nil && r.URL != nil {
		page.CurrentPath = r.URL.Path
		page.CurrentQuery = r.URL.RawQuery
	}
	return page
}

// writePage renders a templ component into a buffer before writing so a
// render failure never emits a half-built page.
func writePage(w http.ResponseWriter, r *http.Request, statusCode int, component templ.Component) {
	if w == nil || component == nil {
		return
	}
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	var rendered bytes.Buffer
	if err := component.Render(r.Context(), &rendered); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(rendered.Bytes())
}

// writeError renders the localized error page for a typed failure.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	page := pageContext(w, r)
	status := platformerrors.HTTPStatus(err)

	var params templates.ErrorParams
	if status == http.StatusNotFound {
		params.Title = templates.T(page.Loc, "public.error.not_found_title")
		params.Body = templates.T(page.Loc, "public.error.not_found_body")
	} else {
		params.Title = templates.T(page.Loc, "public.error.server_title")
		params.Body = templates.T(page.Loc, "public.error.server_body")
	}
	// Typed errors can carry a more specific, localized body.
	if key := platformerrors.LocalizationKey(err); key != "" {
		params.Body = templates.T(page.Loc, key)
	}
	writePage(w, r, status, templates.ErrorPage(page, params))
}
