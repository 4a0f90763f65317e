package services

import (
	"errors"

	"github.com/travelfoodcms/travelfood-backend/internal/apperr"
)

// wrapStore turns an unexpected store error into a PersistenceError while
// letting already-typed protocol errors pass through unchanged.
func wrapStore(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, apperr.ErrNotFound) || errors.Is(err, apperr.ErrConcurrencyConflict) {
		return err
	}
	if _, ok := apperr.AsValidation(err); ok {
		return err
	}
	var pe *apperr.PersistenceError
	if errors.As(err, &pe) {
		return err
	}
	return apperr.NewPersistence(op, err)
}
