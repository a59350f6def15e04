package common

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// Credential exchange rejected (bad credentials or non-success status).
	ErrAuthenticationFailed = errors.New("authentication failed")

	// Response body could not be interpreted.
	ErrMalformedResponse = errors.New("malformed server response")
	ErrNoToken           = fmt.Errorf("%w: no token in response", ErrMalformedResponse)

	// Operation attempted without a valid stored token.
	ErrNotAuthenticated = errors.New("not authenticated")

	// Query endpoint reported an application-level error.
	ErrServiceError = errors.New("service error")

	// Empty or absent dataset.
	ErrDataUnavailable = errors.New("data unavailable")
)

// StatusError reports a non-success HTTP status from a remote endpoint.
// It unwraps to ErrAuthenticationFailed for the credential endpoint and to
// ErrNotAuthenticated for 401/403 answers of the query endpoint.
type StatusError struct {
	Op    string
	Code  int
	class error
}

// NewStatusError builds a StatusError belonging to the given error class.
func NewStatusError(op string, code int, class error) *StatusError {
	return &StatusError{Op: op, Code: code, class: class}
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d (%s)", e.Op, e.Code, http.StatusText(e.Code))
}

func (e *StatusError) Unwrap() error { return e.class }

// ServiceError carries the first error reported by the query endpoint.
type ServiceError struct {
	Message string
	Code    string
}

func (e *ServiceError) Error() string { return e.Message }

// Unwrap reports ErrServiceError, plus ErrNotAuthenticated when the code
// says the bearer token was rejected.
func (e *ServiceError) Unwrap() []error {
	switch e.Code {
	case "invalid-jwt", "invalid-headers", "access-denied":
		return []error{ErrServiceError, ErrNotAuthenticated}
	}
	return []error{ErrServiceError}
}

// IsAuthError reports whether err means the session is no longer usable and
// the user has to sign in again.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrNotAuthenticated)
}
