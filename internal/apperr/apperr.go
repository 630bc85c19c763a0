package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Kind categorizes a domain error so the transport layer can map it to a
// client-facing status without inspecting message text.
type Kind int

const (
	// KindNotFound - a single-entity lookup matched zero rows
	KindNotFound Kind = iota
	// KindValidation - a mutation's referenced entities or relationship
	// could not be matched
	KindValidation
	// KindInvalidParameter - sort key outside the allow-list or malformed
	// pagination bounds, rejected before any transaction is opened
	KindInvalidParameter
)

// Error is a structured domain error carrying the identifiers involved.
type Error struct {
	Kind    Kind
	Message string
	Details map[string]string
}

// Error implements the error interface
func (e *Error) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}

	keys := make([]string, 0, len(e.Details))
	for k := range e.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(e.Message)
	sb.WriteString(" (")
	for i, k := range keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(k)
		sb.WriteString("=")
		sb.WriteString(e.Details[k])
	}
	sb.WriteString(")")
	return sb.String()
}

// Is matches errors of the same kind, so callers can use errors.Is with a
// bare kind sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// WithDetail attaches an identifier to the error for diagnostics.
func (e *Error) WithDetail(key, value string) *Error {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// New creates an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, Details: make(map[string]string)}
}

// NotFound creates a not-found error carrying the lookup key.
func NotFound(entity, key string) *Error {
	return New(KindNotFound, fmt.Sprintf("%s not found", entity)).WithDetail("key", key)
}

// NotFoundf creates a not-found error with a formatted message.
func NotFoundf(format string, args ...interface{}) *Error {
	return New(KindNotFound, fmt.Sprintf(format, args...))
}

// Validation creates a validation error.
func Validation(message string) *Error {
	return New(KindValidation, message)
}

// Validationf creates a validation error with formatting.
func Validationf(format string, args ...interface{}) *Error {
	return New(KindValidation, fmt.Sprintf(format, args...))
}

// InvalidParameter creates an invalid-parameter error.
func InvalidParameter(message string) *Error {
	return New(KindInvalidParameter, message)
}

// InvalidParameterf creates an invalid-parameter error with formatting.
func InvalidParameterf(format string, args ...interface{}) *Error {
	return New(KindInvalidParameter, fmt.Sprintf(format, args...))
}

// IsNotFound reports whether err is a not-found domain error.
func IsNotFound(err error) bool {
	return isKind(err, KindNotFound)
}

// IsValidation reports whether err is a validation domain error.
func IsValidation(err error) bool {
	return isKind(err, KindValidation)
}

// IsInvalidParameter reports whether err is an invalid-parameter domain error.
func IsInvalidParameter(err error) bool {
	return isKind(err, KindInvalidParameter)
}

// GetKind returns the kind of a domain error, or ok=false for
// infrastructure errors that should propagate untranslated.
func GetKind(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

func isKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
