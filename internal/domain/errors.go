// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error taxonomy raised by the catalog core. These are the only failure kinds the
// transport layer needs to understand; everything else is an internal error.
var (
	// ErrInvalidArgument is returned when an identifier or payload is missing or malformed.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrValidationFailed is matched by every *ValidationError.
	ErrValidationFailed = errors.New("validation failed")

	// ErrNotFound is returned when a referenced entity id does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrConflict is returned when a mutation violates a uniqueness constraint.
	ErrConflict = errors.New("conflict")
)

// ValidationError carries every field-rule violation found in a payload.
type ValidationError struct {
	Errors []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return ErrValidationFailed.Error()
	}
	return fmt.Sprintf("%s: %s", ErrValidationFailed, strings.Join(e.Errors, "; "))
}

// Is makes errors.Is(err, ErrValidationFailed) true for any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// NewInvalidArgumentError wraps ErrInvalidArgument with a message.
func NewInvalidArgumentError(message string) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, message)
}

// NewNotFoundError wraps ErrNotFound with the entity name and id, e.g.
// "entity not found: restaurant with id=7 not found".
func NewNotFoundError(entity string, id int64) error {
	return fmt.Errorf("%w: %s with id=%d not found", ErrNotFound, entity, id)
}

// NewConflictError wraps ErrConflict with a human-readable hint.
func NewConflictError(hint string) error {
	return fmt.Errorf("%w: %s", ErrConflict, hint)
}

// ValidationErrors returns the collected messages if err is a *ValidationError.
func ValidationErrors(err error) []string {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Errors
	}
	return nil
}
