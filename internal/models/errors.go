package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure taxonomy. Handlers translate these
// into HTTP status codes and machine-readable error kinds; anything
// not in the taxonomy surfaces as an internal error.
var (
	// ErrNotFound signals an absent entity (404).
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail signals a registration conflict (409).
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrDuplicateEntry signals a (user, game) pair already in the
	// collection. Services translate it into the idempotent
	// "already exists" outcome, so it never reaches a client.
	ErrDuplicateEntry = errors.New("game already in collection")
	// ErrInvalidCredentials is returned for both an unknown email and
	// a wrong password, deliberately indistinguishable (401).
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUnauthenticated signals a missing, invalid or expired
	// credential proof (401).
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden signals an authenticated caller without the
	// required role (403).
	ErrForbidden = errors.New("admin access required")
	// ErrUpstream signals a failed external catalog request (502).
	ErrUpstream = errors.New("external catalog request failed")
)

// ValidationError reports missing or malformed input (400).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
