package templates

import (
	sharedi18n "github.com/linagora/Argus-du-Libre/internal/services/shared/i18nhttp"
	"golang.org/x/text/language"
)

// LanguageOption represents a supported language option in the UI.
type LanguageOption = sharedi18n.LanguageOption

// LanguageOptions returns supported language options with active selection.
func LanguageOptions(page PageContext) []LanguageOption {
	return sharedi18n.BuildLanguageOptions(sharedi18n.Supported(), page.Lang, func(tag language.Tag) string {
		return T(page.Loc, sharedi18n.LanguageKeyLabel(tag))
	})
}

// LanguageURL returns the current URL with the language param updated.
func LanguageURL(page PageContext, tag string) string {
	return sharedi18n.LanguageURL(page.CurrentPath, page.CurrentQuery, tag)
}
