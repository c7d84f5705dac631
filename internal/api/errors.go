package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/lunchvote/internal/api/shared"
	"github.com/phrazzld/lunchvote/internal/domain"
	"github.com/phrazzld/lunchvote/internal/service"
)

// Messages for responses whose detail must not reach the client.
const (
	msgUnexpected       = "An unexpected error occurred"
	msgValidationFailed = "Validation failed"
	msgInvalidBody      = "Invalid request format"
)

// MapErrorToStatusCode maps the domain error taxonomy to HTTP status codes.
// Anything outside the taxonomy is an internal server error.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidationFailed),
		errors.Is(err, domain.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the message a client may see for err. Taxonomy
// errors carry client-facing text; every other error gets a generic message.
func GetSafeErrorMessage(err error) string {
	if err == nil || !service.IsClientError(err) {
		return msgUnexpected
	}
	if errors.Is(err, domain.ErrValidationFailed) {
		return msgValidationFailed
	}

	var catErr *service.CatalogError
	if errors.As(err, &catErr) && catErr.Err != nil {
		return catErr.Err.Error()
	}
	return err.Error()
}

// HandleAPIError writes the error response for a failed service call.
// fallback replaces the generic message for internal errors when non-empty.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}

	var opts []shared.ResponseOption
	if details := domain.ValidationErrors(err); len(details) > 0 {
		opts = append(opts, shared.WithDetails(details))
	}
	if status == http.StatusConflict {
		opts = append(opts, shared.WithElevatedLogLevel())
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}

// SanitizeValidationError turns validator errors into client-safe messages, one
// per failed field.
func SanitizeValidationError(err error) []string {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return []string{"Validation error"}
	}

	msgs := make([]string, 0, len(vErrs))
	for _, fe := range vErrs {
		msgs = append(msgs, fmt.Sprintf("Invalid %s: %s", lowerFirst(fe.Field()), getValidationTagMessage(fe)))
	}
	return msgs
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required field"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "validation failed"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
