// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"sort"
	"strings"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidPassword is returned when a password doesn't meet the password policy.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrCategoryKindMismatch is returned when a category is assigned to an
	// entity its kind does not apply to.
	ErrCategoryKindMismatch = errors.New("category kind mismatch")
)

// ValidationError is a business-rule or single-field failure carrying a
// human-readable message that is safe to show to API clients.
type ValidationError struct {
	Field   string // Optional field the failure relates to
	Message string // Client-facing message
	Err     error  // Wrapped cause, usually a sentinel
}

// NewValidationError creates a ValidationError for the given field.
// Field may be empty for failures that are not tied to a single input.
func NewValidationError(field, message string, err error) *ValidationError {
	if err == nil {
		err = ErrValidation
	}
	return &ValidationError{Field: field, Message: message, Err: err}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// FieldErrors maps input field names to the validation messages raised for them.
// It is returned when a payload fails schema validation.
type FieldErrors map[string][]string

// Add appends a message for the given field.
func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

// Error implements the error interface with a stable, field-sorted message.
func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for field := range fe {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+strings.Join(fe[field], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is lets errors.Is(err, ErrValidation) match field errors.
func (fe FieldErrors) Is(target error) bool {
	return target == ErrValidation
}
