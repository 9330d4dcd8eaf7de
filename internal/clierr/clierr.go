// Package clierr holds the coded errors tasklist reports to users. The code
// is what --json consumers match on; the message is for people.
package clierr

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
)

// Codes are part of the --json contract. Do not rename them.
const (
	TaskNotFound     = "TASK_NOT_FOUND"
	AmbiguousTaskID  = "AMBIGUOUS_TASK_ID"
	InvalidInput     = "INVALID_INPUT"
	TaskCompleted    = "TASK_COMPLETED"
	InvalidFilter    = "INVALID_FILTER"
	InvalidTheme     = "INVALID_THEME"
	ConfirmationReq  = "CONFIRMATION_REQUIRED"
	ConfigNotFound   = "CONFIG_NOT_FOUND"
	ConfigExists     = "CONFIG_ALREADY_EXISTS"
	InvalidConfigKey = "INVALID_CONFIG_KEY"
	InternalError    = "INTERNAL_ERROR"
)

// Error is a user-facing failure. Details are copied into the JSON error
// envelope verbatim.
type Error struct {
	Code    string
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string { return e.Message }

// New creates an Error with the given code and message.
func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithDetails returns the error with the given details map attached.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

// ExitCode returns 2 for InternalError, 1 for all others.
func (e *Error) ExitCode() int {
	if e.Code == InternalError {
		return 2 //nolint:mnd // exit code 2 for internal errors
	}
	return 1
}

// HasCode reports whether err wraps an *Error carrying any of codes.
func HasCode(err error, codes ...string) bool {
	var e *Error
	return errors.As(err, &e) && slices.Contains(codes, e.Code)
}

// SilentError exits with Code without printing anything. Commands return it
// after they have already shown the problem, such as a dismissed alert.
type SilentError struct {
	Code int
}

// Error implements the error interface.
func (e *SilentError) Error() string { return "exit " + strconv.Itoa(e.Code) }
