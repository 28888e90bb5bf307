// Package errors provides structured error types for gridpath.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the library packages
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Load-time failures carry [ErrCodeMalformedInput] or [ErrCodeUndefinedVertex].
// Search-time failures carry [ErrCodeNegativeCycle] or [ErrCodeSearchAborted].
// An unreachable target is a search result, never an error.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMalformedInput, "line %d: expected 3 fields", line)
//	if errors.Is(err, errors.ErrCodeMalformedInput) {
//	    // Handle parse error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeSearchAborted, ctx.Err(), "a* stopped after %d pops", n)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Load-time errors
	ErrCodeMalformedInput  Code = "MALFORMED_INPUT"
	ErrCodeUndefinedVertex Code = "UNDEFINED_VERTEX"

	// Search-time errors
	ErrCodeNegativeCycle         Code = "NEGATIVE_CYCLE"
	ErrCodeSearchAborted         Code = "SEARCH_ABORTED"
	ErrCodeInconsistentHeuristic Code = "INCONSISTENT_HEURISTIC"

	// Input validation errors
	ErrCodeInvalidInput Code = "INVALID_INPUT"

	// Resource not found errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Malformed reports a structural or parse failure at a 1-based input line.
// A line of 0 means the failure is not tied to a specific line.
func Malformed(line int, format string, args ...any) *Error {
	msg := fmt.Sprintf(format, args...)
	if line > 0 {
		msg = fmt.Sprintf("line %d: %s", line, msg)
	}
	return &Error{Code: ErrCodeMalformedInput, Message: msg}
}

// UndefinedVertex reports a reference to a vertex id that was never declared.
// where names the referencing site, e.g. "edge 3" or "source".
func UndefinedVertex(id any, where string) *Error {
	return &Error{
		Code:    ErrCodeUndefinedVertex,
		Message: fmt.Sprintf("%s references undefined vertex %v", where, id),
	}
}
