// Package i18n defines the locales supported by the catalog and helpers to
// resolve language tags against them.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var supported = []language.Tag{
	language.AmericanEnglish,
	language.MustParse("fr-FR"),
}

var matcher = language.NewMatcher(supported)

// SupportedTags returns the supported language tags, default first.
func SupportedTags() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}

// DefaultTag returns the default language tag.
func DefaultTag() language.Tag {
	return supported[0]
}

// ParseTag parses a user-supplied language value into a supported tag.
// The bool reports whether the value matched a supported locale.
func ParseTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return DefaultTag(), false
	}
	parsed, err := language.Parse(value)
	if err != nil {
		return DefaultTag(), false
	}
	_, index, confidence := matcher.Match(parsed)
	if confidence == language.No {
		return DefaultTag(), false
	}
	return supported[index], true
}

// MatchTags returns the best supported tag for an ordered preference list.
func MatchTags(preferred []language.Tag) language.Tag {
	if len(preferred) == 0 {
		return DefaultTag()
	}
	_, index, confidence := matcher.Match(preferred...)
	if confidence == language.No {
		return DefaultTag()
	}
	return supported[index]
}

// Printer returns a message printer for the supplied tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}
