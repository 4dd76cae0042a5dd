package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a record with the requested uid does not exist in
// the store.
var ErrNotFound = errors.New("record not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// StoreError is a non-2xx reply from the sheet API. The status and body are
// kept verbatim; nothing in the application retries or interprets them beyond
// the 404 → ErrNotFound mapping done in the store client.
type StoreError struct {
	Status int
	Body   string
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store returned status %d: %s", e.Status, e.Body)
}

// IsStoreError reports whether err wraps a StoreError and returns it when so.
func IsStoreError(err error) (*StoreError, bool) {
	var se *StoreError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
