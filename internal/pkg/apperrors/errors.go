package apperrors

import "errors"

// Error categories. Every error returned to a controller either is, or wraps, one of these;
// anything else is treated as an internal error.
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")
	ErrInvalidState          = errors.New("invalid state")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTooManyRequests    = errors.New("too many requests")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
)

// Student errors
var (
	ErrStudentNotFound      = NewResourceNotFoundError("student not found")
	ErrStudentAlreadyExists = NewAlreadyExistsError("student with this ID or email already exists")
)

// Admin errors
var (
	ErrAdminNotFound      = NewResourceNotFoundError("admin user not found")
	ErrAdminAlreadyExists = NewAlreadyExistsError("admin username already exists")
)

// Room and allocation errors
var (
	ErrRoomNotFound            = NewResourceNotFoundError("room not found")
	ErrRoomFull                = NewConflictError("room has no available capacity")
	ErrActiveAllocationExists  = NewConflictError("student already has an active allocation")
	ErrActiveAllocationMissing = NewResourceNotFoundError("student has no active allocation")
)

// Swap request errors
var (
	ErrSwapNotFound         = NewResourceNotFoundError("swap request not found")
	ErrSwapAlreadyResolved  = NewInvalidStateError("swap request has already been resolved")
	ErrSwapStale            = NewInvalidStateError("allocations changed since the swap was requested")
	ErrSwapNeedsAllocations = NewValidationError("both students must have active allocations")
)

// Complaint errors
var (
	ErrComplaintNotFound = NewResourceNotFoundError("complaint not found")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) *CustomError {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewAlreadyExistsError creates a new custom error for duplicate resources with a message
func NewAlreadyExistsError(message string) *CustomError {
	return &CustomError{
		Err:     ErrResourceAlreadyExists,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) *CustomError {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewInvalidStateError creates a new custom error for actions on entities in a terminal state
func NewInvalidStateError(message string) *CustomError {
	return &CustomError{
		Err:     ErrInvalidState,
		Message: message,
	}
}

// NewValidationError creates a new custom error for invalid input with a message
func NewValidationError(message string) *CustomError {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) *CustomError {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// IsClientError reports whether err belongs to one of the categories that map to a 4xx response.
func IsClientError(err error) bool {
	return Is(err, ErrValidationFailed,
		ErrConflict,
		ErrResourceAlreadyExists,
		ErrResourceNotFound,
		ErrInvalidState,
		ErrInvalidCredentials,
		ErrTokenExpired,
		ErrTokenInvalid,
		ErrTooManyRequests,
		ErrPermissionDenied,
	)
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails returns a copy of the error carrying context details.
// The package-level sentinels are shared, so they are never mutated.
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	return &CustomError{
		Err:     e,
		Message: e.Message,
		Details: details,
	}
}
