// Package errors provides common domain error types for callsight.
//
// It defines sentinel errors for domain conditions plus a structured
// PipelineError for classified extraction failures. Using typed errors
// enables consistent handling with errors.Is()/errors.As() checks across
// the validator, orchestrator, and CLI surface.
package errors

import "errors"

// Domain errors - common sentinel errors for domain conditions.
var (
	// ErrValidation indicates parsed model output that violates the insight
	// schema (missing field, invalid enum, out-of-range score).
	ErrValidation = errors.New("validation error")

	// ErrNotFound indicates a requested resource was not found.
	ErrNotFound = errors.New("not found")

	// ErrInvalidState indicates the operation is not valid for the current state.
	ErrInvalidState = errors.New("invalid state")
)

// IsValidation reports whether any error in err's chain is ErrValidation.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNotFound reports whether any error in err's chain is ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidState reports whether any error in err's chain is ErrInvalidState.
func IsInvalidState(err error) bool {
	return errors.Is(err, ErrInvalidState)
}
