package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("resource conflict")

	// ErrDependency marks failures of collaborators (database, mail) so
	// batch operations can tell an unhealthy system apart from a business
	// rule rejection.
	ErrDependency = errors.New("dependency failure")
)

// ValidationError represents a field-level validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// InvalidTransitionError reports an application status change that the
// transition table does not allow. Both states are kept so the API layer
// can show the caller what was attempted.
type InvalidTransitionError struct {
	From ApplicationStatus
	To   ApplicationStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %s to %s", e.From, e.To)
}
