package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the service layer. Handlers translate them to
// HTTP statuses; anything unrecognized becomes a generic 500.
var (
	// ErrNotFound indicates the identifier does not resolve to a row.
	ErrNotFound = errors.New("resource not found")
	// ErrUnauthorized covers every credential failure uniformly.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrBadRequest indicates a malformed request (e.g. a patch with no fields).
	ErrBadRequest = errors.New("bad request")
)

// ValidationError accumulates field-level failures as field→message pairs.
// Интейк сообщает все ошибки разом, не только первую.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

// NewValidation builds a ValidationError from the accumulated field map.
func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// IsNotFoundError checks if the error is or wraps ErrNotFound.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnauthorizedError checks if the error is or wraps ErrUnauthorized.
func IsUnauthorizedError(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsBadRequestError checks if the error is or wraps ErrBadRequest.
func IsBadRequestError(err error) bool {
	return errors.Is(err, ErrBadRequest)
}

// AsValidation extracts a ValidationError when err is or wraps one.
func AsValidation(err error) (*ValidationError, bool) {
	var v *ValidationError
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
