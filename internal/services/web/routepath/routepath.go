// Package routepath stores canonical HTTP paths for the web service.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Root    = "/"
	About   = "/about"
	Search  = "/search"
	Compare = "/compare"
	Health  = "/healthz"

	ProjectPrefix       = "/project/"
	ProjectPattern      = ProjectPrefix + "{slug}"
	ProjectFieldPattern = ProjectPrefix + "{slug}/field/{fieldSlug}"
	TagPrefix           = "/tag/"
	TagPattern          = TagPrefix + "{slug}"

	AdminPrefix           = "/admin/"
	AdminRoot             = "/admin/"
	AdminLogin            = "/admin/login"
	AdminLogout           = "/admin/logout"
	AdminCategories       = "/admin/categories"
	AdminFields           = "/admin/fields"
	AdminSoftware         = "/admin/software"
	AdminSoftwarePattern  = AdminSoftware + "/{slug}"
	AdminSoftwareState    = AdminSoftware + "/{slug}/state"
	AdminSoftwareFeature  = AdminSoftware + "/{slug}/feature"
	AdminSoftwareTags     = AdminSoftware + "/{slug}/tags"
	AdminSoftwareOverview = AdminSoftware + "/{slug}/overview"
	AdminResults          = "/admin/results"
	AdminResultsPublish   = AdminResults + "/{id}/publish"
	AdminTags             = "/admin/tags"

	// SearchQueryKey carries the search terms on the search route.
	SearchQueryKey = "q"
	// CompareQueryKey carries comma-separated software slugs on the compare route.
	CompareQueryKey = "slugs"
)

// Project returns the public detail route for a software slug.
func Project(slug string) string {
	return ProjectPrefix + escapeSegment(slug)
}

// ProjectField returns the public metrics route for a software field.
func ProjectField(slug string, fieldSlug string) string {
	return Project(slug) + "/field/" + escapeSegment(fieldSlug)
}

// Tag returns the public listing route for a tag slug.
func Tag(slug string) string {
	return TagPrefix + escapeSegment(slug)
}

// AdminSoftwareDetail returns the admin edit route for a software slug.
func AdminSoftwareDetail(slug string) string {
	return AdminSoftware + "/" + escapeSegment(slug)
}

func escapeSegment(raw string) string {
	return url.PathEscape(strings.TrimSpace(raw))
}
