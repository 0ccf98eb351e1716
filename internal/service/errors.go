package service

import (
	"errors"
	"fmt"
)

// Common service errors, checked by callers with errors.Is.
var (
	// ErrAuthenticationRequired is returned when an operation needs a user and
	// none is present. API layer maps this to 401 Unauthorized.
	ErrAuthenticationRequired = errors.New("authentication required")

	// ErrPermissionDenied is returned when the user may not act on a resource,
	// for example a non-owner editing a room. API layer maps this to 403 Forbidden.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrWrongCredentials is returned for an unknown username or a wrong password.
	// The two cases are indistinguishable to callers.
	ErrWrongCredentials = errors.New("wrong credentials")
)

// ServiceError wraps an unexpected failure with the operation that hit it.
type ServiceError struct {
	Service   string
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Service, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Service, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(service, operation, message string, err error) *ServiceError {
	return &ServiceError{
		Service:   service,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
