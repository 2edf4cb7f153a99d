// Package errors provides structured error handling with typed error codes.
//
// Error codes are organized into categories:
//   - General errors (1-99): Unknown and general errors
//   - Validation errors (100-199): Invalid parameters, malformed contracts and configuration
//   - Automation environment errors (200-299): Missing window or controls, driver failures
//   - Filesystem probe errors (300-399): Artifact lookup and directory watch failures
//   - Session errors (400-499): Mining session lifecycle failures
//
// Usage:
//
//	// Create a new error
//	err := errors.New(errors.ErrCodeInvalidParameter, "invalid parameter value")
//
//	// Create a formatted error
//	err := errors.Newf(errors.ErrCodeControlNotFound, "control %s not found", control)
//
//	// Wrap an existing error
//	err := errors.Wrap(errors.ErrCodeArtifactProbeFailed, "failed to stat artifact", originalErr)
//
//	// Check error code
//	if errors.HasCode(err, errors.ErrCodeWindowNotFound) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Error represents a structured error with an error code and message.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// New creates a new Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   nil,
	}
}

// Newf creates a new Error with the given code and formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   nil,
	}
}

// Wrap wraps an existing error with a new Error containing the given code and message.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an existing error with a new Error containing the given code and formatted message.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}

	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around the standard errors.Is function.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around the standard errors.As function.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode extracts the ErrorCode from an error if it's an *Error type.
// Returns ErrCodeUnknown if the error is not an *Error type.
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return ErrCodeUnknown
}

// HasCode checks if an error has a specific ErrorCode.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// IsEnvironmentFailure reports whether err means the automation target could not
// be located at all. Only these failures abort a mining session; every other
// driver failure is folded into probe classification.
func IsEnvironmentFailure(err error) bool {
	code := GetCode(err)

	return code == ErrCodeWindowNotFound || code == ErrCodeControlNotFound
}

// FormatError is returned when textual input does not match an expected layout,
// such as a contract string that is not "SYMBOL MM-YY".
type FormatError struct {
	Input    string // The rejected input
	Expected string // Human-readable description of the expected layout
	Message  string // Human-readable message
}

// NewFormatError creates a new FormatError.
func NewFormatError(input, expected, message string) *FormatError {
	return &FormatError{
		Input:    input,
		Expected: expected,
		Message:  message,
	}
}

// NewFormatErrorf creates a new FormatError with a formatted message.
func NewFormatErrorf(input, expected, format string, args ...any) *FormatError {
	return &FormatError{
		Input:    input,
		Expected: expected,
		Message:  fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	return e.Message
}

// IsFormatError checks if an error is a FormatError.
// It uses errors.As to check the error chain.
func IsFormatError(err error) bool {
	var formatErr *FormatError

	return errors.As(err, &formatErr)
}
