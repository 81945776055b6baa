// Package domainerrors provides coded errors that services return to the
// transport layer. Codes classify the failure for HTTP translation; the
// message is always safe to show to clients, the wrapped cause never is.
package domainerrors

import (
	"errors"
	"fmt"
)

type Code string

const (
	// CodeValidation marks client-correctable input defects. Validation
	// errors carry the full ordered list of failure messages so callers
	// can surface every bad field at once.
	CodeValidation Code = "validation"
	// CodeBadRequest marks malformed requests (bad JSON, wrong types,
	// unknown action) that are not field-level validation failures.
	CodeBadRequest Code = "bad_request"
	// CodeNotFound marks a referenced record that does not exist.
	CodeNotFound Code = "not_found"
	// CodeConflict marks a state conflict with an existing resource.
	CodeConflict Code = "conflict"
	// CodeUnavailable marks a dependency that is temporarily unreachable.
	CodeUnavailable Code = "unavailable"
	// CodeUpload marks a blob-store write failure. Retry policy belongs
	// to the caller, so the failure is surfaced as-is.
	CodeUpload Code = "upload_failed"
	// CodeInternal marks anything unanticipated. The message names the
	// failed operation and is safe to return; the wrapped cause is
	// logged, never serialized.
	CodeInternal Code = "internal"
)

// Error is the coded error type. Details is only populated for
// CodeValidation and preserves the order validations ran in.
type Error struct {
	Code    Code
	Message string
	Details []string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a coded error with a client-safe message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a coded error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error, keeping the
// cause available to errors.Is/As while hiding it from clients.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// NewValidation creates a validation error carrying every failure
// message collected at the intake boundary.
func NewValidation(details []string) *Error {
	return &Error{Code: CodeValidation, Message: "Validation failed", Details: details}
}

// HasCode reports whether err (or anything it wraps) carries the code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal for
// uncoded errors.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}
