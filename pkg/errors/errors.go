// Package errors provides structured error types for bindery.
//
// Every failure that reaches the user carries a machine-readable [Code] so
// the CLI can tell fatal configuration problems apart from degraded-but-valid
// plans and from I/O failures.
//
// # Error Codes
//
//   - INVALID_*: configuration and input validation failures (fatal)
//   - SOURCE_BOUNDS: skip parameters trim away the whole source (fatal)
//   - CONSTRAINT_UNSATISFIED: the minimum signature size stopped the planner
//     from shrinking further; reported, never returned as fatal
//   - FILE_NOT_FOUND, RENDER_FAILED: document I/O
//   - INTERNAL_ERROR: a broken invariant
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidConfig, "signature size %d is not a multiple of 4", n)
//	if errors.Is(err, errors.ErrCodeInvalidConfig) {
//	    // reject before planning
//	}
//
//	err := errors.Wrap(errors.ErrCodeRenderFailed, origErr, "writing %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Validation errors
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// Planning outcomes
	ErrCodeSourceBounds          Code = "SOURCE_BOUNDS"
	ErrCodeConstraintUnsatisfied Code = "CONSTRAINT_UNSATISFIED"

	// Document I/O
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeRenderFailed Code = "RENDER_FAILED"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix, followed by
// the cause when there is one.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}

// Fatal reports whether err must abort the run before any output is
// produced. Everything except an unsatisfied size constraint is fatal.
func Fatal(err error) bool {
	if err == nil {
		return false
	}
	return GetCode(err) != ErrCodeConstraintUnsatisfied
}
