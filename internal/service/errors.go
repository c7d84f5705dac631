package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/lunchvote/internal/domain"
	"github.com/phrazzld/lunchvote/internal/redact"
	"github.com/phrazzld/lunchvote/internal/store"
)

// Conflict hints surfaced to clients.
const (
	hintRestaurantNameExists = "a restaurant with this name already exists"
	hintMealExists           = "the restaurant already has a meal with this name and category"
	hintDuplicate            = "the entity already exists"
)

// CatalogError wraps a failure of a catalog or voting operation with the
// operation name. Err is a domain taxonomy error for client failures and the raw
// cause otherwise, so errors.Is against the domain sentinels keeps working.
type CatalogError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for CatalogError.
func (e *CatalogError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("catalog %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("catalog %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *CatalogError) Unwrap() error {
	return e.Err
}

// NewCatalogError creates a new CatalogError.
func NewCatalogError(operation, message string, err error) *CatalogError {
	return &CatalogError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// IsClientError reports whether err belongs to the domain taxonomy, i.e. the
// caller can fix it by changing the request.
func IsClientError(err error) bool {
	return errors.Is(err, domain.ErrInvalidArgument) ||
		errors.Is(err, domain.ErrValidationFailed) ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrConflict)
}

// translateStoreError maps store errors onto the domain taxonomy. A not-found
// store error becomes NotFound for the given entity and id. Errors without a
// mapping are returned unchanged.
func translateStoreError(err error, entity string, id int64) error {
	switch {
	case err == nil:
		return nil
	case store.IsNotFoundError(err):
		return domain.NewNotFoundError(entity, id)
	case errors.Is(err, store.ErrRestaurantNameExists):
		return domain.NewConflictError(hintRestaurantNameExists)
	case errors.Is(err, store.ErrMealExists):
		return domain.NewConflictError(hintMealExists)
	case store.IsDuplicateError(err):
		return domain.NewConflictError(hintDuplicate)
	case errors.Is(err, store.ErrInvalidEntity):
		return domain.NewInvalidArgumentError("entity rejected by the store")
	default:
		return err
	}
}

// failure logs err and wraps it for the caller. Client errors are expected and
// logged at debug level; anything else is logged redacted at error level.
func failure(log *slog.Logger, operation, message string, err error) error {
	if IsClientError(err) {
		log.Debug("operation rejected",
			slog.String("operation", operation),
			slog.String("error", err.Error()))
	} else {
		log.Error("operation failed",
			slog.String("operation", operation),
			slog.String("message", message),
			slog.String("error", redact.Error(err)))
	}
	return NewCatalogError(operation, message, err)
}
