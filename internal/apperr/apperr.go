package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind identifies which reference or field a ValidationError is about.
type Kind string

const (
	KindInvalidDestination Kind = "invalid_destination"
	KindInvalidRestaurant  Kind = "invalid_restaurant"
	KindInvalidUser        Kind = "invalid_user"
	KindInvalidOrder       Kind = "invalid_order"
	KindDuplicateUsername  Kind = "duplicate_username"
	KindDuplicateEmail     Kind = "duplicate_email"
	KindMissingField       Kind = "missing_field"
)

// ValidationError rejects a write before it reaches the store: a foreign key
// that does not resolve, a uniqueness violation, or a missing required field.
type ValidationError struct {
	Kind   Kind
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return string(e.Kind)
}

func NewValidation(kind Kind, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

// ErrNotFound means the addressed entity no longer exists.
var ErrNotFound = errors.New("not found")

// ErrConcurrencyConflict means the underlying row changed between read and
// write. Never retried here; the caller decides.
var ErrConcurrencyConflict = errors.New("concurrency conflict")

// PersistenceError wraps an unexpected store-layer failure. Always fatal for
// the request.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func NewPersistence(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}

// AsValidation unwraps err into a *ValidationError if there is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// HTTPStatus maps the taxonomy onto response codes: validation 400, missing
// 404, conflict and store failures 500.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConcurrencyConflict):
		return http.StatusInternalServerError
	default:
		if _, ok := AsValidation(err); ok {
			return http.StatusBadRequest
		}
		return http.StatusInternalServerError
	}
}

// Code returns the machine-checkable code string reported to API consumers.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrConcurrencyConflict):
		return "concurrency_conflict"
	}
	if ve, ok := AsValidation(err); ok {
		return string(ve.Kind)
	}
	var pe *PersistenceError
	if errors.As(err, &pe) {
		return "persistence_failure"
	}
	return "internal_error"
}
