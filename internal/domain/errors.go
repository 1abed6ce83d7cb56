package domain

import "errors"

// Domain-specific errors for business logic validation.
var (
	// Submission errors
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrDuplicateEmail     = errors.New("email already registered")

	// Validation errors
	ErrConsentRequired = errors.New("consent is required")
	ErrInvalidName     = errors.New("full name must be at least 3 characters")
	ErrInvalidEmail    = errors.New("invalid email address")

	// Email errors
	ErrEmailSendFailed = errors.New("failed to send email")
)
