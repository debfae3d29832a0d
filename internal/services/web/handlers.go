package web

import (
	"net/http"

	"github.com/linagora/Argus-du-Libre/internal/services/web/routepath"
	"github.com/linagora/Argus-du-Libre/internal/services/web/templates"
)

// page builds the layout context for the current request with branding applied.
func (h *handler) page(w http.ResponseWriter, r *http.Request) templates.PageContext {
	page := pageContext(w, r)
	page.AppName = h.appName
	return page
}

// handleNotFound renders the localized 404 page for paths no route claims.
func (h *handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	page := h.page(w, r)
	writePage(w, r, http.StatusNotFound, templates.ErrorPage(page, templates.ErrorParams{
		Title: templates.T(page.Loc, "public.error.not_found_title"),
		Body:  templates.T(page.Loc, "public.error.not_found_body"),
	}))
}

func (h *handler) handleHome(w http.ResponseWriter, r *http.Request) {
	page := h.page(w, r)
	cards, err := h.service.featured(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writePage(w, r, http.StatusOK, templates.HomePage(page, cards))
}

func (h *handler) handleAbout(w http.ResponseWriter, r *http.Request) {
	page := h.page(w, r)
	writePage(w, r, http.StatusOK, templates.AboutPage(page))
}

func (h *handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	page := h.page(w, r)
	query := r.URL.Query().Get(routepath.SearchQueryKey)
	results, err := h.service.search(r.Context(), query, page.Lang)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writePage(w, r, http.StatusOK, templates.SearchPage(page, templates.SearchParams{
		Query:   query,
		Results: results,
	}))
}

func (h *handler) handleCompare(w http.ResponseWriter, r *http.Request) {
	page := h.page(w, r)
	params, err := h.service.compare(r.Context(), r.URL.Query()[routepath.CompareQueryKey], page.Lang)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writePage(w, r, http.StatusOK, templates.ComparePage(page, params))
}

func (h *handler) handleProject(w http.ResponseWriter, r *http.Request) {
	page := h.page(w, r)
	params, err := h.service.projectDetail(r.Context(), r.PathValue("slug"), page.Lang)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writePage(w, r, http.StatusOK, templates.ProjectPage(page, params))
}

func (h *handler) handleProjectField(w http.ResponseWriter, r *http.Request) {
	page := h.page(w, r)
	params, err := h.service.fieldMetrics(r.Context(), r.PathValue("slug"), r.PathValue("fieldSlug"), page.Lang)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writePage(w, r, http.StatusOK, templates.MetricsPage(page, params))
}

func (h *handler) handleTag(w http.ResponseWriter, r *http.Request) {
	page := h.page(w, r)
	params, err := h.service.tagListing(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writePage(w, r, http.StatusOK, templates.TagPage(page, params))
}
