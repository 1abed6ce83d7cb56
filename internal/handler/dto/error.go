package dto

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/vexa-app/vexa-web/internal/domain"
)

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error code and message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewErrorResponse creates a new error response.
func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
}

// MapDomainError maps domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code string, message string) {
	message = err.Error()

	switch {
	// Submission errors
	case errors.Is(err, domain.ErrSubmissionNotFound):
		return http.StatusNotFound, "SUBMISSION_NOT_FOUND", message
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusConflict, "EMAIL_EXISTS", message

	// Validation errors
	case errors.Is(err, domain.ErrConsentRequired):
		return http.StatusBadRequest, "CONSENT_REQUIRED", message
	case errors.Is(err, domain.ErrInvalidName):
		return http.StatusUnprocessableEntity, "VALIDATION_ERROR", message
	case errors.Is(err, domain.ErrInvalidEmail):
		return http.StatusUnprocessableEntity, "VALIDATION_ERROR", message

	// Email errors
	case errors.Is(err, domain.ErrEmailSendFailed):
		return http.StatusBadGateway, "EMAIL_FAILED", message

	// Default: internal server error
	default:
		// CRITICAL: Log unmapped error for debugging
		slog.Error("unmapped domain error returned to client",
			"error", err,
			"error_type", fmt.Sprintf("%T", err),
		)
		return http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"
	}
}
