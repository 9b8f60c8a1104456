// Package errors provides structured error types for foldserver.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and API
//   - Machine-readable error codes for programmatic handling
//   - Distinct reporting of parse failures and solver process failures
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - *_NOT_FOUND: Resource not found
//   - SOLVER_*: External solver process failures
//   - PARSE_ERROR: Solver output without any numeric content
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidMethod, "method not allowed: %s", method)
//	if errors.Is(err, errors.ErrCodeInvalidMethod) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeSolverFailed, origErr, "solver exited with %d", code)
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidSequence Code = "INVALID_SEQUENCE"
	ErrCodeInvalidMethod   Code = "INVALID_METHOD"
	ErrCodeInvalidThreads  Code = "INVALID_THREADS"
	ErrCodeInvalidJobID    Code = "INVALID_JOB_ID"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeJobNotFound  Code = "JOB_NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Conversion errors
	ErrCodeParse Code = "PARSE_ERROR"

	// Solver process errors
	ErrCodeSolverFailed        Code = "SOLVER_FAILED"
	ErrCodeSolverTimeout       Code = "SOLVER_TIMEOUT"
	ErrCodeSolverOutputMissing Code = "SOLVER_OUTPUT_MISSING"

	// Network errors
	ErrCodeNetwork Code = "NETWORK_ERROR"

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
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsSolverFailure reports whether err originates from the solver process
// itself (non-zero exit, timeout, missing output) rather than from
// converting its output.
func IsSolverFailure(err error) bool {
	switch GetCode(err) {
	case ErrCodeSolverFailed, ErrCodeSolverTimeout, ErrCodeSolverOutputMissing:
		return true
	}
	return false
}

// HTTPStatus maps an error code to the HTTP status the API responds with.
// Errors without a code map to 500.
func HTTPStatus(code Code) int {
	switch code {
	case ErrCodeInvalidInput, ErrCodeInvalidSequence, ErrCodeInvalidMethod,
		ErrCodeInvalidThreads, ErrCodeInvalidJobID:
		return http.StatusBadRequest
	case ErrCodeNotFound, ErrCodeJobNotFound, ErrCodeFileNotFound:
		return http.StatusNotFound
	case ErrCodeParse:
		return http.StatusUnprocessableEntity
	case ErrCodeSolverFailed, ErrCodeSolverOutputMissing, ErrCodeNetwork:
		return http.StatusBadGateway
	case ErrCodeSolverTimeout:
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}
