package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrServerOffline indicates the backend is unreachable
	ErrServerOffline = errors.New("backend is unreachable")

	// ErrUnauthorized indicates the backend rejected the access token (401/403)
	ErrUnauthorized = errors.New("session expired or unauthorized")

	// ErrInvalidData indicates a success response whose body could not be decoded
	ErrInvalidData = errors.New("received invalid data from server")

	// ErrNoSession indicates an authenticated call was attempted without tokens
	ErrNoSession = errors.New("not logged in")

	// ErrValidation indicates input was rejected before any request was sent
	ErrValidation = errors.New("invalid input")
)

// StatusError is a non-ok HTTP response. Body holds the raw response text.
type StatusError struct {
	Code    int
	Body    string
	Message string // Decoded error message, when the endpoint returns one
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status code: %d", e.Code)
	}
	return fmt.Sprintf("unexpected status code: %d - %s", e.Code, e.Body)
}

// BodyOr returns the response body, or fallback when the body is empty
func (e *StatusError) BodyOr(fallback string) string {
	if e.Body == "" {
		return fallback
	}
	return e.Body
}

// AsStatusError unwraps err into a *StatusError if it carries one
func AsStatusError(err error) (*StatusError, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// ValidationError is input rejected before any request was sent.
// Reason is safe to show to the user.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + e.Reason
}

// Is makes errors.Is(err, ErrValidation) match
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
