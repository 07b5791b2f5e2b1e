package dto

import "net/http"

// Error codes shared between the domain layer and the API surface
const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeInvalidAction = "INVALID_ACTION"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	ErrCodeConflict      = "CONFLICT"
	ErrCodeCapacity      = "CAPACITY_EXCEEDED"
	ErrCodeConcurrentMod = "CONCURRENT_MODIFICATION"
	ErrCodeLockTimeout   = "LOCK_TIMEOUT"
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeInternal      = "INTERNAL_ERROR"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes. Anything the
// caller could have avoided by reading their own request maps to 400; state
// disagreements map to 409.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeValidation:    http.StatusBadRequest,
	ErrCodeInvalidAction: http.StatusBadRequest,
	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeConflict:      http.StatusConflict,
	ErrCodeCapacity:      http.StatusConflict,
	ErrCodeConcurrentMod: http.StatusConflict,
	ErrCodeLockTimeout:   http.StatusConflict,
	ErrCodeUnauthorized:  http.StatusUnauthorized,
	ErrCodeInternal:      http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for an error code, defaulting to 500
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
