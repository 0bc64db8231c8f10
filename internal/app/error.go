// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import (
	"errors"
	"fmt"
)

// Error is an operational error: an expected failure whose Message is safe
// to show to the client.
//
// Status may be left zero, in which case the HTTP layer derives it from the
// wrapped Err.
type Error struct {
	Status  int
	Message string
	Err     error
}

// NewError returns an operational error with an explicit HTTP status.
func NewError(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// Wrap attaches a client-facing message to err.
func Wrap(err error, message string) *Error {
	return &Error{Message: message, Err: err}
}

// Wrapf is like [Wrap] with a formatted message.
func Wrapf(err error, format string, args ...any) *Error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}

	return e.Message + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// AsError returns the outermost *Error in err's chain.
func AsError(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}

	return nil, false
}
