// Package errors defines the error taxonomy shared by the catalog,
// store, and controller so the UI can react to failures by kind.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Code classifies an application error.
type Code string

const (
	// CodeValidation marks malformed user input (e.g. a bad
	// legality-notes structure on the item form).
	CodeValidation Code = "VALIDATION_ERROR"

	// CodeNotFound marks a missing preset key or checklist id.
	CodeNotFound Code = "NOT_FOUND"

	// CodeLoad marks a failed preset payload fetch.
	CodeLoad Code = "LOAD_ERROR"

	// CodeStorage marks a generic persistence failure.
	CodeStorage Code = "STORAGE_ERROR"

	// CodeStorageQuota marks a persistence failure caused by the
	// storage medium being full.
	CodeStorageQuota Code = "STORAGE_QUOTA_EXCEEDED"
)

// AppError carries a Code alongside a human-readable message and an
// optional wrapped cause.
type AppError struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError with no underlying cause.
func New(code Code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Newf creates an AppError with a formatted message.
func Newf(code Code, format string, args ...interface{}) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an existing error.
func Wrap(code Code, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// HasCode reports whether err (or anything it wraps) is an AppError
// with the given code.
func HasCode(err error, code Code) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// CodeOf returns the code of err if it is (or wraps) an AppError.
// The second result reports whether a code was present.
func CodeOf(err error) (Code, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code, true
	}
	return "", false
}
