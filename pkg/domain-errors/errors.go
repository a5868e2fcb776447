// Package domainerrors carries coded errors across service boundaries.
//
// Stores return sentinel errors (see pkg/platform/sentinel); services translate
// them into one of the codes below so transports can map them without
// inspecting store internals.
//
// The registry core only ever produces four codes:
//   - CodeUnauthorized: caller failed an ownership or authority check
//   - CodeAlreadyExists: key collision on creation
//   - CodeNotFound: key absent for an operation that needs an existing record
//   - CodeSessionAlreadyCompleted: terminal session re-entry
//
// The remaining codes belong to the edges (request decoding, persistence).
package domainerrors

import (
	"errors"
)

// Code identifies the failure kind. Values are stable wire strings.
type Code string

const (
	CodeUnauthorized            Code = "unauthorized"
	CodeAlreadyExists           Code = "already_exists"
	CodeNotFound                Code = "not_found"
	CodeSessionAlreadyCompleted Code = "session_already_completed"

	CodeUnauthenticated Code = "unauthenticated"
	CodeBadRequest      Code = "bad_request"
	CodeInvalidInput    Code = "invalid_input"
	CodeInternal        Code = "internal_error"
)

// Error is a coded domain error. Err, when set, is the underlying cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds a coded error with a human readable message.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// Wrap attaches a code and message to an underlying cause.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, Err: err}
}

// CodeOf returns the code of the first *Error in err's chain, or CodeInternal
// when the chain carries no domain error.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// HasCode reports whether err's chain contains a domain error with code.
func HasCode(err error, code Code) bool {
	if err == nil {
		return false
	}
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// Is is shorthand for HasCode, kept for call sites that read better as a predicate.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}
