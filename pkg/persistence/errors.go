// Package persistence provides standardized error types for persistence operations.
package persistence

import (
	"errors"
	"fmt"
)

// Standard persistence error types that all implementations should use.
var (
	// ErrWorkflowNotFound indicates a workflow was not found by the given identifier.
	ErrWorkflowNotFound = errors.New("workflow not found")

	// ErrNodeNotFound indicates a node was not found within a workflow.
	ErrNodeNotFound = errors.New("node not found")

	// ErrUserNotFound indicates a user was not found by the given identifier.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserHasData indicates a user delete hit a referential-integrity
	// constraint: the account still has associated data.
	ErrUserHasData = errors.New("user still has associated data")

	// ErrSettingsNotFound indicates no website settings exist for the account.
	ErrSettingsNotFound = errors.New("website settings not found")

	// ErrSupportSessionNotFound indicates the support session does not exist
	// or was already ended.
	ErrSupportSessionNotFound = errors.New("support session not found")

	// ErrInvalidSortField indicates an unknown sort column was requested.
	ErrInvalidSortField = errors.New("invalid sort field")
)

// WorkflowError wraps workflow-related errors with operation context.
type WorkflowError struct {
	Op         string // Operation being performed (e.g., "GetByID", "Save", "Delete")
	WorkflowID string
	Err        error
}

func (e *WorkflowError) Error() string {
	return fmt.Sprintf("%s operation failed for workflow %s: %v", e.Op, e.WorkflowID, e.Err)
}

func (e *WorkflowError) Unwrap() error {
	return e.Err
}

func (e *WorkflowError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewWorkflowError creates a new workflow error with context.
func NewWorkflowError(op, workflowID string, err error) *WorkflowError {
	return &WorkflowError{Op: op, WorkflowID: workflowID, Err: err}
}

func IsWorkflowNotFound(err error) bool {
	return errors.Is(err, ErrWorkflowNotFound)
}

func IsNodeNotFound(err error) bool {
	return errors.Is(err, ErrNodeNotFound)
}

func IsUserNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}

func IsUserHasData(err error) bool {
	return errors.Is(err, ErrUserHasData)
}

func IsSettingsNotFound(err error) bool {
	return errors.Is(err, ErrSettingsNotFound)
}

func IsSupportSessionNotFound(err error) bool {
	return errors.Is(err, ErrSupportSessionNotFound)
}

func IsInvalidSortField(err error) bool {
	return errors.Is(err, ErrInvalidSortField)
}
