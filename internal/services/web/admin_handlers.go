package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/linagora/Argus-du-Libre/internal/catalog/storage"
	apperrors "github.com/linagora/Argus-du-Libre/internal/platform/errors"
	sharedi18n "github.com/linagora/Argus-du-Libre/internal/services/shared/i18nhttp"
	"github.com/linagora/Argus-du-Libre/internal/services/web/requestmeta"
	"github.com/linagora/Argus-du-Libre/internal/services/web/routepath"
	"github.com/linagora/Argus-du-Libre/internal/services/web/templates"
)

// requireEditor gates admin handlers behind a valid session. Mutating
// requests additionally need same-origin proof.
func (h *handler) requireEditor(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := h.sessions.authenticated(r); err != nil {
			http.Redirect(w, r, routepath.AdminLogin, http.StatusFound)
			return
		}
		if r.Method != http.MethodGet && !requestmeta.HasSameOriginProof(r) {
			writeError(w, r, apperrors.E(apperrors.KindForbidden, "cross-origin form submission rejected"))
			return
		}
		next(w, r)
	}
}

func (h *handler) handleAdminRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, routepath.AdminSoftware, http.StatusFound)
}

func (h *handler) handleAdminLoginForm(w http.ResponseWriter, r *http.Request) {
	page := h.page(w, r)
	if _, err := h.sessions.authenticated(r); err == nil {
		http.Redirect(w, r, routepath.AdminSoftware, http.StatusFound)
		return
	}
	writePage(w, r, http.StatusOK, templates.AdminLoginPage(page, templates.AdminLoginParams{}))
}

func (h *handler) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	page := h.page(w, r)
	if !requestmeta.HasSameOriginProof(r) {
		writeError(w, r, apperrors.E(apperrors.KindForbidden, "cross-origin form submission rejected"))
		return
	}
	if err := r.ParseForm(); err != nil {
		writeError(w, r, apperrors.E(apperrors.KindInvalidInput, "invalid form submission"))
		return
	}
	editorID := strings.TrimSpace(r.PostFormValue("editor_id"))
	if err := h.sessions.authenticate(editorID, r.PostFormValue("secret")); err != nil {
		writePage(w, r, apperrors.HTTPStatus(err), templates.AdminLoginPage(page, templates.AdminLoginParams{
			Error: templates.T(page.Loc, "admin.login.error"),
		}))
		return
	}
	token, err := h.sessions.issue(editorID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.sessions.setCookie(w, r, token)
	http.Redirect(w, r, routepath.AdminSoftware, http.StatusFound)
}

func (h *handler) handleAdminLogout(w http.ResponseWriter, r *http.Request) {
	h.sessions.clearCookie(w)
	http.Redirect(w, r, routepath.Root, http.StatusFound)
}

func (h *handler) handleAdminCategories(w http.ResponseWriter, r *http.Request) {
	page := h.page(w, r)
	rows, err := h.service.adminCategories(r.Context(), page.Lang)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writePage(w, r, http.StatusOK, templates.AdminCategoriesPage(page, rows))
}

func (h *handler) handleAdminCategoriesSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, r, apperrors.E(apperrors.KindInvalidInput, "invalid form submission"))
		return
	}
	var err error
	switch r.PostFormValue("action") {
	case "create":
		err = h.service.createCategory(r.Context(),
			formInt(r, "weight"),
			r.PostFormValue("name"),
			formLocale(r))
	case "update":
		err = h.service.updateCategoryWeight(r.Context(), formID(r, "id"), formInt(r, "weight"))
	default:
		err = apperrors.EK(apperrors.KindInvalidInput, "admin.error.invalid", "unknown category action")
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	http.Redirect(w, r, routepath.AdminCategories, http.StatusSeeOther)
}

func (h *handler) handleAdminFieldsSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, r, apperrors.E(apperrors.KindInvalidInput, "invalid form submission"))
		return
	}
	var err error
	switch r.PostFormValue("action") {
	case "create":
		err = h.service.createField(r.Context(), storage.Field{
			CategoryID:              formID(r, "category_id"),
			Slug:                    strings.TrimSpace(r.PostFormValue("slug")),
			Weight:                  formInt(r, "weight"),
			AnalysisPeriodicityDays: formInt(r, "periodicity_days"),
		}, r.PostFormValue("name"), formLocale(r))
	case "update":
		err = h.service.updateField(r.Context(), formID(r, "id"), formInt(r, "weight"), formInt(r, "periodicity_days"))
	default:
		err = apperrors.EK(apperrors.KindInvalidInput, "admin.error.invalid", "unknown field action")
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	http.Redirect(w, r, routepath.AdminCategories, http.StatusSeeOther)
}

func (h *handler) handleAdminSoftware(w http.ResponseWriter, r *http.Request) {
	page := h.page(w, r)
	rows, err := h.service.adminSoftwareList(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writePage(w, r, http.StatusOK, templates.AdminSoftwarePage(page, rows))
}

func (h *handler) handleAdminSoftwareCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, r, apperrors.E(apperrors.KindInvalidInput, "invalid form submission"))
		return
	}
	entry := storage.Software{
		Name:          strings.TrimSpace(r.PostFormValue("name")),
		Slug:          strings.TrimSpace(r.PostFormValue("slug")),
		WebsiteURL:    strings.TrimSpace(r.PostFormValue("website_url")),
		RepositoryURL: strings.TrimSpace(r.PostFormValue("repository_url")),
		LogoURL:       strings.TrimSpace(r.PostFormValue("logo_url")),
	}
	if err := h.service.createSoftware(r.Context(), entry); err != nil {
		writeError(w, r, err)
		return
	}
	http.Redirect(w, r, routepath.AdminSoftwareDetail(entry.Slug), http.StatusSeeOther)
}

func (h *handler) handleAdminSoftwareDetail(w http.ResponseWriter, r *http.Request) {
	page := h.page(w, r)
	params, err := h.service.adminSoftwareDetail(r.Context(), r.PathValue("slug"), page.Lang)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writePage(w, r, http.StatusOK, templates.AdminSoftwareDetailPage(page, params))
}

func (h *handler) handleAdminSoftwareUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, r, apperrors.E(apperrors.KindInvalidInput, "invalid form submission"))
		return
	}
	updated := storage.Software{
		Name:          strings.TrimSpace(r.PostFormValue("name")),
		Slug:          strings.TrimSpace(r.PostFormValue("slug")),
		WebsiteURL:    strings.TrimSpace(r.PostFormValue("website_url")),
		RepositoryURL: strings.TrimSpace(r.PostFormValue("repository_url")),
		LogoURL:       strings.TrimSpace(r.PostFormValue("logo_url")),
	}
	if err := h.service.updateSoftware(r.Context(), r.PathValue("slug"), updated); err != nil {
		writeError(w, r, err)
		return
	}
	http.Redirect(w, r, routepath.AdminSoftwareDetail(updated.Slug), http.StatusSeeOther)
}

func (h *handler) handleAdminSoftwareState(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, r, apperrors.E(apperrors.KindInvalidInput, "invalid form submission"))
		return
	}
	slug := r.PathValue("slug")
	state := storage.SoftwareState(strings.TrimSpace(r.PostFormValue("state")))
	if err := h.service.setSoftwareState(r.Context(), slug, state); err != nil {
		writeError(w, r, err)
		return
	}
	http.Redirect(w, r, routepath.AdminSoftwareDetail(slug), http.StatusSeeOther)
}

func (h *handler) handleAdminSoftwareFeature(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, r, apperrors.E(apperrors.KindInvalidInput, "invalid form submission"))
		return
	}
	slug := r.PathValue("slug")
	featured := r.PostFormValue("featured") == "1"
	if err := h.service.setSoftwareFeatured(r.Context(), slug, featured); err != nil {
		writeError(w, r, err)
		return
	}
	http.Redirect(w, r, routepath.AdminSoftwareDetail(slug), http.StatusSeeOther)
}

func (h *handler) handleAdminSoftwareTags(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, r, apperrors.E(apperrors.KindInvalidInput, "invalid form submission"))
		return
	}
	slug := r.PathValue("slug")
	attach := r.PostFormValue("action") == "attach"
	if err := h.service.setSoftwareTag(r.Context(), slug, r.PostFormValue("tag_slug"), attach); err != nil {
		writeError(w, r, err)
		return
	}
	http.Redirect(w, r, routepath.AdminSoftwareDetail(slug), http.StatusSeeOther)
}

func (h *handler) handleAdminSoftwareOverview(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, r, apperrors.E(apperrors.KindInvalidInput, "invalid form submission"))
		return
	}
	slug := r.PathValue("slug")
	if err := h.service.upsertOverview(r.Context(), slug, formLocale(r), r.PostFormValue("content")); err != nil {
		writeError(w, r, err)
		return
	}
	http.Redirect(w, r, routepath.AdminSoftwareDetail(slug), http.StatusSeeOther)
}

func (h *handler) handleAdminResults(w http.ResponseWriter, r *http.Request) {
	page := h.page(w, r)
	params, err := h.service.adminResults(r.Context(), page.Lang)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writePage(w, r, http.StatusOK, templates.AdminResultsPage(page, params))
}

func (h *handler) handleAdminResultsCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, r, apperrors.E(apperrors.KindInvalidInput, "invalid form submission"))
		return
	}
	err := h.service.recordResult(r.Context(),
		r.PostFormValue("software_slug"),
		r.PostFormValue("field_slug"),
		r.PostFormValue("score"),
		r.PostFormValue("published") == "1")
	if err != nil {
		writeError(w, r, err)
		return
	}
	http.Redirect(w, r, routepath.AdminResults, http.StatusSeeOther)
}

func (h *handler) handleAdminResultPublish(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, r, apperrors.E(apperrors.KindInvalidInput, "invalid form submission"))
		return
	}
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, r, apperrors.EK(apperrors.KindInvalidInput, "admin.error.invalid", "result id must be numeric"))
		return
	}
	if err := h.service.setResultPublished(r.Context(), id, r.PostFormValue("published") == "1"); err != nil {
		writeError(w, r, err)
		return
	}
	http.Redirect(w, r, routepath.AdminResults, http.StatusSeeOther)
}

func (h *handler) handleAdminTags(w http.ResponseWriter, r *http.Request) {
	page := h.page(w, r)
	tags, err := h.service.adminTags(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writePage(w, r, http.StatusOK, templates.AdminTagsPage(page, tags))
}

func (h *handler) handleAdminTagsCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, r, apperrors.E(apperrors.KindInvalidInput, "invalid form submission"))
		return
	}
	if err := h.service.createTag(r.Context(), r.PostFormValue("name"), r.PostFormValue("slug")); err != nil {
		writeError(w, r, err)
		return
	}
	http.Redirect(w, r, routepath.AdminTags, http.StatusSeeOther)
}

func formInt(r *http.Request, name string) int {
	value, err := strconv.Atoi(strings.TrimSpace(r.PostFormValue(name)))
	if err != nil {
		return -1
	}
	return value
}

func formID(r *http.Request, name string) int64 {
	value, err := strconv.ParseInt(strings.TrimSpace(r.PostFormValue(name)), 10, 64)
	if err != nil {
		return 0
	}
	return value
}

// formLocale normalizes the submitted locale to a supported language tag.
func formLocale(r *http.Request) string {
	return sharedi18n.NormalizeTag(r.PostFormValue("locale")).String()
}
