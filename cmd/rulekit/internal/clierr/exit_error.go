// SPDX-License-Identifier: AGPL-3.0-or-later

// Package clierr carries explicit process exit codes through the error chain
// so main stays dumb.
package clierr

import (
	"errors"
	"fmt"
)

// ExitError is an error with an explicit exit code. It wraps a cause so
// errors.Is/As keep working.
type ExitError struct {
	code  int
	msg   string
	cause error
}

func (e *ExitError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return fmt.Sprintf("%s: %v", e.msg, e.cause)
}

// ExitCode returns the process exit code this error requests.
func (e *ExitError) ExitCode() int { return e.code }

// Unwrap exposes the underlying cause.
func (e *ExitError) Unwrap() error { return e.cause }

// New returns an ExitError with a plain message.
func New(code int, msg string) error {
	return &ExitError{code: normalize(code), msg: msg}
}

// Newf is the formatted variant of New.
func Newf(code int, format string, args ...any) error {
	return &ExitError{code: normalize(code), msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches an exit code to an underlying cause.
func Wrap(code int, msg string, cause error) error {
	if cause == nil {
		return New(code, msg)
	}
	return &ExitError{code: normalize(code), msg: msg, cause: cause}
}

// ExitCodeOf extracts the exit code from any error, defaulting to 1 for
// errors without one and 0 for nil.
func ExitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 1
}

func normalize(code int) int {
	// An error can never mean success.
	if code <= 0 {
		return 1
	}
	return code
}
