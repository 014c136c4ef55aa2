package models

import "errors"

var (
	// input errors
	ErrValidation  = errors.New("validation error")
	ErrEmailExists = errors.New("email already in use")
	ErrSlugExists  = errors.New("slug already in use")

	// auth errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidResetToken  = errors.New("password reset token is invalid or has expired")
	ErrUserSuspended      = errors.New("account suspended")
	ErrForbidden          = errors.New("forbidden")

	// repository errors
	ErrNotFound = errors.New("not found")

	// infrastructure errors
	ErrPersistence        = errors.New("persistence failure")
	ErrNotificationFailed = errors.New("notification delivery failed")
	ErrStorageUnavailable = errors.New("object storage unavailable")
)

// ValidationError carries a message safe to show to the client. It matches
// ErrValidation with errors.Is.
type ValidationError struct {
	Message string
}

// NewValidationError wraps msg as a client-facing validation error.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is makes errors.Is match ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
