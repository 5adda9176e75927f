package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/task-tracker/internal/api/shared"
	"github.com/phrazzld/task-tracker/internal/domain"
	"github.com/phrazzld/task-tracker/internal/platform/logger"
	"github.com/phrazzld/task-tracker/internal/store"
)

// Client messages that do not depend on request data.
const (
	msgInvalidDetails       = "Invalid Details"
	msgDeadlinePassed       = "Can't create new task that it's deadline is over"
	msgCreatePriority       = "The priority should be one of this: HIGH, MEDIUM or LOW"
	msgInvalidPriority      = "Invalid priority parameter"
	msgInvalidPriorityOrKey = "Invalid priority or sortBy parameter"
	msgKeywordRequired      = "Keyword parameter is required for searching tasks."
	msgInvalidLoggerName    = "Invalid logger name"
	msgInvalidLoggerLevel   = "Invalid logger level"
	msgRouteNotFound        = "Route not found"
	msgUnexpected           = "An unexpected error occurred"
)

// errRouteNotFound is reported for requests matching no route.
var errRouteNotFound = fmt.Errorf("%w: route", store.ErrNotFound)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error category. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusInternalServerError

	// Not found errors
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Conflict errors: duplicate title, passed deadline
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, logger.ErrUnknownCategory),
		errors.Is(err, logger.ErrInvalidLevel):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return msgUnexpected
	}

	switch {
	case errors.Is(err, domain.ErrMissingField):
		return msgInvalidDetails

	case errors.Is(err, domain.ErrDeadlinePassed):
		return msgDeadlinePassed

	case errors.Is(err, domain.ErrInvalidPriority):
		return msgCreatePriority

	case errors.Is(err, domain.ErrInvalidPriorityFilter):
		return msgInvalidPriority

	case errors.Is(err, domain.ErrInvalidSortKey):
		return msgInvalidPriorityOrKey

	case errors.Is(err, domain.ErrEmptyKeyword):
		return msgKeywordRequired

	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found."

	case errors.Is(err, store.ErrTitleExists):
		return "The title already exists in the system"

	case errors.Is(err, logger.ErrUnknownCategory):
		return msgInvalidLoggerName

	case errors.Is(err, logger.ErrInvalidLevel):
		return msgInvalidLoggerLevel

	case errors.Is(err, domain.ErrValidation):
		return "Validation error"

	default:
		return msgUnexpected
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return fmt.Sprintf("Invalid %s: %s", verr.Field, verr.Message)
	}

	errMsg := err.Error()

	// Example format: "Key: 'CreateTaskRequest.Title' Error:Field validation for 'Title' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "oneof":
		return "invalid value"
	case "gt", "gte":
		return "too small"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the error response for err. message replaces the
// category message when non-empty. opts are passed to the responder.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string, opts ...shared.ResponseOption) {
	status := MapErrorToStatusCode(err)
	if message == "" || status == http.StatusInternalServerError {
		message = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}

// handleRequestError writes the error response for a request that does not
// address a valid resource and logs it at ERROR on the request logger.
func handleRequestError(w http.ResponseWriter, r *http.Request, err error, message string) {
	HandleAPIError(w, r, err, message, shared.WithLogLevel(slog.LevelError))
}
