// Package errors provides structured error types for beltprio.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the HTTP API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - NOT_FOUND_*: Resource not found
//   - Network failures of the belt algorithm have their own codes
//     (NO_ENTRY_CANDIDATES, EMPTY_SELECTION, UNREACHABLE_MERGE_STATE)
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidFormat, "unsupported grid format: %s", ext)
//	if errors.Is(err, errors.ErrCodeInvalidFormat) {
//	    // Handle validation error
//	}
//
//	// Classify errors coming out of pkg/belt
//	err = errors.FromCore(err)
package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/matzehuels/beltprio/pkg/belt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidGrid      Code = "INVALID_GRID"
	ErrCodeInvalidBlueprint Code = "INVALID_BLUEPRINT"
	ErrCodeInvalidDirection Code = "INVALID_DIRECTION"
	ErrCodeUnknownTier      Code = "UNKNOWN_TIER"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Network (conveyor) errors
	ErrCodeNoEntryCandidates     Code = "NO_ENTRY_CANDIDATES"
	ErrCodeEmptySelection        Code = "EMPTY_SELECTION"
	ErrCodeUnreachableMergeState Code = "UNREACHABLE_MERGE_STATE"

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

// coreCodes maps pkg/belt sentinels to codes, checked in order.
var coreCodes = []struct {
	sentinel error
	code     Code
	message  string
}{
	{belt.ErrNoEntryCandidates, ErrCodeNoEntryCandidates, "found no input belts"},
	{belt.ErrEmptySelection, ErrCodeEmptySelection, "no valid input belt selected"},
	{belt.ErrUnreachableMergeState, ErrCodeUnreachableMergeState, "splitter reached without a prioritized input"},
	{belt.ErrInvalidDirection, ErrCodeInvalidDirection, "entity has an invalid direction"},
	{belt.ErrUnknownTier, ErrCodeUnknownTier, "unknown underground belt tier"},
	{belt.ErrTileOccupied, ErrCodeInvalidGrid, "two entities share a tile"},
	{belt.ErrDuplicateID, ErrCodeInvalidGrid, "duplicate entity id"},
	{belt.ErrUnknownKind, ErrCodeInvalidGrid, "unknown entity kind"},
}

// FromCore classifies an error returned by pkg/belt. Errors that already
// carry a code, and nil, are returned unchanged; unknown errors become
// INTERNAL_ERROR.
func FromCore(err error) error {
	if err == nil || GetCode(err) != "" {
		return err
	}
	for _, c := range coreCodes {
		if errors.Is(err, c.sentinel) {
			return Wrap(c.code, err, "%s", c.message)
		}
	}
	return Wrap(ErrCodeInternal, err, "unexpected error")
}

// HTTPStatus returns the HTTP status code for an error code.
func HTTPStatus(code Code) int {
	switch code {
	case ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidGrid,
		ErrCodeInvalidBlueprint, ErrCodeInvalidDirection, ErrCodeUnknownTier:
		return http.StatusBadRequest
	case ErrCodeNotFound, ErrCodeFileNotFound:
		return http.StatusNotFound
	case ErrCodeNoEntryCandidates, ErrCodeEmptySelection, ErrCodeUnreachableMergeState:
		return http.StatusUnprocessableEntity
	case ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}
