// Package apperr defines the error taxonomy shared by services and handlers
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound is returned when a course, module, credential or user is unknown
	ErrNotFound = errors.New("not found")
	// ErrVerificationFailed is returned when a credential signature check is negative
	ErrVerificationFailed = errors.New("verification failed")
	// ErrUpstreamFailure is returned when an external collaborator (database, LLM, verifier) fails
	ErrUpstreamFailure = errors.New("upstream failure")
	// ErrInvalidInput is returned when request data does not pass validation
	ErrInvalidInput = errors.New("invalid input")
)

// NotFound wraps ErrNotFound with a subject, e.g. NotFound("course %s", id)
func NotFound(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
}

// InvalidInput wraps ErrInvalidInput with a message
func InvalidInput(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidInput)
}

// Upstream wraps err as an ErrUpstreamFailure, keeping err in the chain.
// Errors that already belong to the taxonomy are returned unchanged.
func Upstream(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsKnown(err) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", op, ErrUpstreamFailure, err)
}

// IsKnown reports whether err belongs to the taxonomy
func IsKnown(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrVerificationFailed) ||
		errors.Is(err, ErrUpstreamFailure) ||
		errors.Is(err, ErrInvalidInput)
}

// HTTPStatus maps an error to the status code returned to API clients
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrVerificationFailed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrUpstreamFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
