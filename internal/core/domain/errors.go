package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent catalog failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrHTTPStatus matches any LoadError caused by an unsuccessful response.
	ErrHTTPStatus = errors.New("unsuccessful response status")

	// ErrInvalidFormat matches any LoadError caused by an unexpected body shape.
	ErrInvalidFormat = errors.New("unexpected data format")

	// ErrNotLoaded indicates the catalog has not been loaded successfully.
	ErrNotLoaded = errors.New("catalog not loaded")

	// ErrWrongView indicates an operation was requested in a view that
	// does not support it.
	ErrWrongView = errors.New("operation not available in current view")
)

// LoadErrorKind distinguishes why a dataset could not be loaded.
type LoadErrorKind int

const (
	// LoadErrorHTTP means the response status was not successful.
	LoadErrorHTTP LoadErrorKind = iota + 1
	// LoadErrorFormat means the body could not be interpreted as a dataset.
	LoadErrorFormat
)

// String returns the string representation of the kind.
func (k LoadErrorKind) String() string {
	switch k {
	case LoadErrorHTTP:
		return "http"
	case LoadErrorFormat:
		return "format"
	default:
		return "unknown"
	}
}

// LoadError is returned by the category dataset loader. The distinction
// between kinds is for logs only; the user sees a single load-error state.
type LoadError struct {
	Kind LoadErrorKind

	// Status is the HTTP status code for LoadErrorHTTP.
	Status int

	// Reason describes the problem for LoadErrorFormat.
	Reason string

	// Err is the underlying cause, if any.
	Err error
}

// NewHTTPError creates a LoadError for an unsuccessful response.
func NewHTTPError(status int) *LoadError {
	return &LoadError{Kind: LoadErrorHTTP, Status: status}
}

// NewFormatError creates a LoadError for a body of unexpected shape.
func NewFormatError(reason string, cause error) *LoadError {
	return &LoadError{Kind: LoadErrorFormat, Reason: reason, Err: cause}
}

// Error implements error.
func (e *LoadError) Error() string {
	switch e.Kind {
	case LoadErrorHTTP:
		return fmt.Sprintf("HTTP error: status %d", e.Status)
	case LoadErrorFormat:
		if e.Err != nil {
			return fmt.Sprintf("%s: %s: %v", ErrInvalidFormat, e.Reason, e.Err)
		}
		return fmt.Sprintf("%s: %s", ErrInvalidFormat, e.Reason)
	default:
		return "load error"
	}
}

// Unwrap returns the underlying cause.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinels so callers can use errors.Is.
func (e *LoadError) Is(target error) bool {
	switch target {
	case ErrHTTPStatus:
		return e.Kind == LoadErrorHTTP
	case ErrInvalidFormat:
		return e.Kind == LoadErrorFormat
	}
	return false
}
