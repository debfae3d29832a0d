package i18n

import (
	"testing"

	"golang.org/x/text/language"
)

func TestDefaultTagIsAmericanEnglish(t *testing.T) {
	t.Parallel()

	if got := DefaultTag(); got != language.AmericanEnglish {
		t.Fatalf("default tag = %v", got)
	}
}

func TestParseTag(t *testing.T) {
	t.Parallel()

	cases := []struct {
		value   string
		want    string
		matched bool
	}{
		{"en-US", "en-US", true},
		{"en", "en-US", true},
		{"fr", "fr-FR", true},
		{"fr-FR", "fr-FR", true},
		{"FR", "fr-FR", true},
		{"", "en-US", false},
		{"not a tag!!", "en-US", false},
	}
	for _, tc := range cases {
		tag, ok := ParseTag(tc.value)
		if ok != tc.matched {
			t.Fatalf("ParseTag(%q) matched = %v, want %v", tc.value, ok, tc.matched)
		}
		if tag.String() != tc.want {
			t.Fatalf("ParseTag(%q) = %v, want %s", tc.value, tag, tc.want)
		}
	}
}

func TestMatchTagsPrefersFirstSupported(t *testing.T) {
	t.Parallel()

	got := MatchTags([]language.Tag{language.German, language.French})
	if got.String() != "fr-FR" {
		t.Fatalf("match = %v, want fr-FR", got)
	}
	if got := MatchTags(nil); got != DefaultTag() {
		t.Fatalf("empty preference should fall back to default, got %v", got)
	}
}
