package price

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound indicates no record carries the requested date.
	ErrNotFound = errors.New("record not found")
	// ErrStorageUnavailable wraps any failure to read or write the backing store.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrMalformedDate indicates a stored or requested date is not YYYY-MM-DD.
	ErrMalformedDate = errors.New("malformed date")
	// ErrMalformedPrice indicates a Close value that is not a decimal number.
	ErrMalformedPrice = errors.New("malformed price")
	// ErrUnauthorized indicates the bulk delete credential did not match.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInsufficientData indicates too few records for the average window.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("validation failed")
)

// ValidationError reports the required fields missing from a request.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

// Is lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
