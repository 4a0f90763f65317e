package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	require.Equal(t, http.StatusOK, HTTPStatus(nil))
	require.Equal(t, http.StatusNotFound, HTTPStatus(ErrNotFound))
	require.Equal(t, http.StatusNotFound, HTTPStatus(fmt.Errorf("outer: %w", ErrNotFound)))
	require.Equal(t, http.StatusInternalServerError, HTTPStatus(ErrConcurrencyConflict))
	require.Equal(t, http.StatusBadRequest, HTTPStatus(NewValidation(KindInvalidRestaurant, "Invalid Restaurant ID")))
	require.Equal(t, http.StatusInternalServerError, HTTPStatus(NewPersistence("create order", errors.New("boom"))))
	require.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("unclassified")))
}

func TestCode(t *testing.T) {
	require.Equal(t, "", Code(nil))
	require.Equal(t, "not_found", Code(ErrNotFound))
	require.Equal(t, "concurrency_conflict", Code(ErrConcurrencyConflict))
	require.Equal(t, "invalid_user", Code(NewValidation(KindInvalidUser, "Invalid User ID")))
	require.Equal(t, "duplicate_email", Code(NewValidation(KindDuplicateEmail, "Email already exists")))
	require.Equal(t, "persistence_failure", Code(NewPersistence("update order", errors.New("boom"))))
	require.Equal(t, "internal_error", Code(errors.New("unclassified")))
}

func TestValidationError_MessageFallsBackToKind(t *testing.T) {
	withReason := NewValidation(KindMissingField, "name is required")
	require.Equal(t, "name is required", withReason.Error())

	bare := &ValidationError{Kind: KindInvalidOrder}
	require.Equal(t, "invalid_order", bare.Error())
}

func TestAsValidation_Unwraps(t *testing.T) {
	inner := NewValidation(KindInvalidDestination, "Invalid Destination ID")
	wrapped := fmt.Errorf("while creating restaurant: %w", inner)

	ve, ok := AsValidation(wrapped)
	require.True(t, ok)
	require.Equal(t, KindInvalidDestination, ve.Kind)

	_, ok = AsValidation(errors.New("plain"))
	require.False(t, ok)
}

func TestPersistenceError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewPersistence("list orders", cause)
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "list orders")
}
