package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrNotFound            = errors.New("not found")
	ErrAlreadyExists       = errors.New("already exists")
	ErrDuplicateAssignment = errors.New("duplicate assignment")
	ErrInvalidCredentials  = errors.New("invalid credentials")
)

// ValidationError reports a missing or malformed request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Required builds the ValidationError for an absent field.
func Required(field string) error {
	return &ValidationError{Field: field, Message: "is required"}
}

// Invalid builds a ValidationError for a malformed field.
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError reports a missing employee, project, assignment or user.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// DuplicateAssignmentError reports a second assignment for the same employee and day.
type DuplicateAssignmentError struct {
	EmployeeID string
	Date       string
}

func (e *DuplicateAssignmentError) Error() string {
	return fmt.Sprintf("employee %s already has an assignment on %s", e.EmployeeID, e.Date)
}

func (e *DuplicateAssignmentError) Unwrap() error { return ErrDuplicateAssignment }
