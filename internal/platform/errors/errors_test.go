package errors

import (
	"fmt"
	"net/http"
	"testing"
)

func TestErrorMessageFallsBackToKind(t *testing.T) {
	t.Parallel()

	err := E(KindNotFound, "")
	if err.Error() != "not_found" {
		t.Fatalf("error = %q, want %q", err.Error(), "not_found")
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		kind Kind
		want int
	}{
		{KindInvalidInput, http.StatusBadRequest},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindForbidden, http.StatusForbidden},
		{KindUnavailable, http.StatusServiceUnavailable},
		{KindNotFound, http.StatusNotFound},
		{KindConflict, http.StatusConflict},
		{KindUnknown, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := HTTPStatus(E(tc.kind, "boom")); got != tc.want {
			t.Fatalf("HTTPStatus(%s) = %d, want %d", tc.kind, got, tc.want)
		}
	}
}

func TestHTTPStatusUntypedError(t *testing.T) {
	t.Parallel()

	if got := HTTPStatus(fmt.Errorf("plain failure")); got != http.StatusInternalServerError {
		t.Fatalf("untyped error status = %d, want 500", got)
	}
	if got := HTTPStatus(nil); got != http.StatusOK {
		t.Fatalf("nil error status = %d, want 200", got)
	}
}

func TestHTTPStatusWrappedError(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("render page: %w", E(KindInvalidInput, "bad slug"))
	if got := HTTPStatus(wrapped); got != http.StatusBadRequest {
		t.Fatalf("wrapped error status = %d, want 400", got)
	}
}

func TestLocalizationKey(t *testing.T) {
	t.Parallel()

	err := EK(KindInvalidInput, "compare.error_count", "select 2 to 5 projects")
	if got := LocalizationKey(err); got != "compare.error_count" {
		t.Fatalf("localization key = %q", got)
	}
	if got := LocalizationKey(fmt.Errorf("plain")); got != "" {
		t.Fatalf("expected empty key for untyped error, got %q", got)
	}
}
