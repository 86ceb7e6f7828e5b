// Package services provides the business logic layer between the HTTP
// handlers and the persistence backends.
package services

import (
	"errors"
	"fmt"
)

// Business logic errors. These indicate client errors (4xx responses).
var (
	// Validation errors (400 Bad Request).
	ErrInvalidRequest    = errors.New("invalid request")
	ErrInvalidSortField  = errors.New("invalid sort field")
	ErrInvalidSortOrder  = errors.New("invalid sort order")
	ErrInvalidStatus     = errors.New("invalid workflow status")
	ErrEmptyAccountID    = errors.New("account ID cannot be empty")
	ErrNameRequired      = errors.New("workflow name is required")
	ErrBrandNameRequired = errors.New("brand name is required")
	ErrSlugRequired      = errors.New("slug is required")

	// Business logic conflicts (409 Conflict).
	ErrTriggerRequired = errors.New("workflow must have exactly one trigger node to go live")
	ErrSlugTaken       = errors.New("slug is already taken")
)

// ServiceError wraps service-level errors with additional context.
type ServiceError struct {
	Op      string // Operation name
	Code    string // Error code for API responses
	Message string // Human-readable message
	Err     error  // Underlying error
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}

	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func (e *ServiceError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// IsValidationError checks if an error is a validation error that should return HTTP 400.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrInvalidSortField) ||
		errors.Is(err, ErrInvalidSortOrder) ||
		errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrEmptyAccountID) ||
		errors.Is(err, ErrNameRequired) ||
		errors.Is(err, ErrBrandNameRequired) ||
		errors.Is(err, ErrSlugRequired)
}

// IsConflictError checks if an error is a business logic conflict that should return HTTP 409.
func IsConflictError(err error) bool {
	return errors.Is(err, ErrTriggerRequired) ||
		errors.Is(err, ErrSlugTaken)
}

// NewValidationError creates a new validation error with context.
func NewValidationError(op, code, message string, err error) *ServiceError {
	return &ServiceError{
		Op:      op,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
