package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents the type of error.
type ErrorType string

const (
	// ErrorTypeInvalidContainer marks a file that is not a usable RIFF/AVI
	// container (bad magic, malformed chunk structure). Fatal to the run.
	ErrorTypeInvalidContainer ErrorType = "INVALID_CONTAINER"
	// ErrorTypeIO marks a read failure on the source file. Fatal to the run.
	ErrorTypeIO ErrorType = "IO_ERROR"
	// ErrorTypeNotFound marks a missing structure (no index chunk, no
	// subcode packet). Recoverable: the item is skipped.
	ErrorTypeNotFound ErrorType = "NOT_FOUND"
	// ErrorTypeValidation marks decoded data that failed range checks.
	// Recoverable: the record is discarded.
	ErrorTypeValidation ErrorType = "VALIDATION_ERROR"
	ErrorTypeInternal   ErrorType = "INTERNAL_ERROR"
)

// AppError represents an application error with additional context.
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(errType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
	}
}

// Wrap wraps an existing error.
func Wrap(err error, errType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Err:     err,
	}
}

// GetAppError extracts an AppError from an error chain.
func GetAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsFatal reports whether the error is an unrecoverable precondition
// failure for the run (unreadable file, invalid container). Recoverable
// errors are absorbed at the point of failure and never reach the caller,
// so anything unclassified is treated as fatal too.
func IsFatal(err error) bool {
	appErr, ok := GetAppError(err)
	if !ok {
		return true
	}
	switch appErr.Type {
	case ErrorTypeNotFound, ErrorTypeValidation:
		return false
	}
	return true
}

// Common error constructors.

// NewInvalidContainerError creates an invalid container error.
func NewInvalidContainerError(message string) *AppError {
	return New(ErrorTypeInvalidContainer, message)
}

// NewIOError wraps a read failure.
func NewIOError(err error, message string) *AppError {
	return Wrap(err, ErrorTypeIO, message)
}

// NewNotFoundError creates a not found error.
func NewNotFoundError(message string) *AppError {
	return New(ErrorTypeNotFound, message)
}

// NewValidationError creates a validation error.
func NewValidationError(message string) *AppError {
	return New(ErrorTypeValidation, message)
}
