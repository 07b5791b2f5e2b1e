package shared

import "errors"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound         = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists    = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput     = NewDomainError("VALIDATION_ERROR", "Invalid input provided")
	ErrConflict         = NewDomainError("CONFLICT", "Operation conflicts with current state")
	ErrCapacityExceeded = NewDomainError("CAPACITY_EXCEEDED", "Requested quantity exceeds remaining capacity")
	ErrInvalidAction    = NewDomainError("INVALID_ACTION", "Unrecognized action")
	ErrUnauthorized     = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrLockTimeout      = NewDomainError("LOCK_TIMEOUT", "Could not acquire lock within the allowed time")
)

// ErrorCode extracts the domain error code, or "" for non-domain errors
func ErrorCode(err error) string {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ""
}

// IsNotFound reports whether err is a not-found domain error
func IsNotFound(err error) bool {
	return ErrorCode(err) == ErrNotFound.Code
}
