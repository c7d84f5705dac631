package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would violate a uniqueness constraint.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when the store rejects an entity, for example
	// because of a check or foreign key constraint.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrRestaurantNotFound indicates that the requested restaurant does not exist.
	ErrRestaurantNotFound = fmt.Errorf("%w: restaurant", ErrNotFound)

	// ErrMealNotFound indicates that the requested meal does not exist.
	ErrMealNotFound = fmt.Errorf("%w: meal", ErrNotFound)

	// ErrRestaurantNameExists indicates that another restaurant already uses the name.
	ErrRestaurantNameExists = fmt.Errorf("%w: restaurant name", ErrDuplicate)

	// ErrMealExists indicates that the restaurant already has a meal with the same
	// name and category.
	ErrMealExists = fmt.Errorf("%w: meal name and category", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError is a store failure with the entity and operation that produced it.
type StoreError struct {
	Entity    string // e.g. "restaurant", "meal"
	Operation string // e.g. "save", "delete"
	Message   string
	Err       error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation on %s failed: %s: %v", e.Operation, e.Entity, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
