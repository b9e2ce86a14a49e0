// Package errs defines the error categories the stores report to the
// handler layer. Callers classify failures with errors.Is and map each
// category to an HTTP status; the wrapped message carries the detail.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalid marks malformed or missing required input, such as an
	// empty category set or a blank comment body.
	ErrInvalid = errors.New("invalid input")

	// ErrNotFound marks a reference to a row that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden marks an action the actor's role does not permit.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict marks a unique-constraint violation, such as a
	// duplicate slug or email.
	ErrConflict = errors.New("conflict")
)

// Invalidf returns a validation error with a formatted detail message.
func Invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...)
}

// NotFoundf returns a not-found error with a formatted detail message.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrNotFound}, args...)...)
}

// Forbiddenf returns an authorization error with a formatted detail message.
func Forbiddenf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrForbidden}, args...)...)
}

// Conflictf returns a conflict error with a formatted detail message.
func Conflictf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrConflict}, args...)...)
}
