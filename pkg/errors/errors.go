// Package errors provides structured error types for flowlens.
//
// Error codes give the CLI and HTTP API a machine-readable way to map
// failures to exit codes and status codes while keeping human-readable
// messages for users.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMalformedInput, "invalid XML at line %d", line)
//	if errors.Is(err, errors.ErrCodeMalformedInput) {
//	    // handle parse failure
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeFileNotFound, origErr, "open %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// ErrCodeMalformedInput indicates the document is not well-formed XML.
	ErrCodeMalformedInput Code = "MALFORMED_INPUT"

	// ErrCodeFileNotFound indicates the input path could not be opened.
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// ErrCodeInvalidWorkflow indicates well-formed XML that is not a
	// recognizable workflow document.
	ErrCodeInvalidWorkflow Code = "INVALID_WORKFLOW"

	// ErrCodeInvalidFormat indicates an unsupported output format request.
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// ErrCodeNotFound indicates a requested resource does not exist.
	ErrCodeNotFound Code = "NOT_FOUND"

	// ErrCodeUnsupported indicates a feature that is not available.
	ErrCodeUnsupported Code = "UNSUPPORTED"

	// ErrCodeInternal indicates an unexpected internal failure.
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
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
