// Package errors defines typed application errors shared by web modules.
package errors

import (
	stderrors "errors"
	"net/http"
	"strings"
)

// Kind classifies application failures for consistent HTTP mapping.
type Kind string

const (
	KindUnknown      Kind = "unknown"
	KindInvalidInput Kind = "invalid_input"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindUnavailable  Kind = "unavailable"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
)

// Error is a typed application failure.
type Error struct {
	Kind    Kind
	Key     string
	Message string
}

// Error renders the human-readable message.
func (e Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

// E builds a typed Error.
func E(kind Kind, message string) error {
	return Error{Kind: kind, Message: message}
}

// EK builds a typed Error with a localization key.
func EK(kind Kind, key string, message string) error {
	return Error{Kind: kind, Key: strings.TrimSpace(key), Message: message}
}

// LocalizationKey returns the structured localization key when available.
func LocalizationKey(err error) string {
	if err == nil {
		return ""
	}
	var appErr Error
	if !stderrors.As(err, &appErr) {
		return ""
	}
	return strings.TrimSpace(appErr.Key)
}

// KindOf returns the error kind, or KindUnknown for untyped errors.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var appErr Error
	if !stderrors.As(err, &appErr) {
		return KindUnknown
	}
	return appErr.Kind
}

// HTTPStatus maps an error to an HTTP status code.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var appErr Error
	if !stderrors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Kind {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindUnavailable:
		return http.StatusServiceUnavailable
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
