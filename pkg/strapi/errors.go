package strapi

import (
	"errors"
	"fmt"
)

// Sentinel errors for the three terminal failure kinds. Match with errors.Is.
var (
	// ErrPermissionDenied is returned when the response body carries
	// statusCode 403.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound is returned when the response body is literally null.
	ErrNotFound = errors.New("not found")

	// ErrUnknownResponse is returned when the response body does not match
	// any expected shape.
	ErrUnknownResponse = errors.New("unrecognized response shape")
)

// APIError wraps a failed operation with request context. It unwraps to one
// of the sentinel errors above.
type APIError struct {
	Operation   string
	ContentType string
	StatusCode  int
	Err         error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("strapi %s %q (status %d): %v",
			e.Operation, e.ContentType, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("strapi %s %q: %v", e.Operation, e.ContentType, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *APIError) Unwrap() error {
	return e.Err
}
