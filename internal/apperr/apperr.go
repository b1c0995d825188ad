// Package apperr provides a coded error type with HTTP status mapping.
package apperr

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// Code classifies errors crossing the handler boundary.
// Values are stable; add sparingly.
type Code uint8

const (
	// CodeUnknown is for unclassified failures.
	CodeUnknown Code = iota

	// CodeJSON is for malformed request bodies.
	CodeJSON

	// CodeValidation is for missing or badly formatted input fields.
	CodeValidation

	// CodeTooManyRequests is for rate limiting.
	CodeTooManyRequests

	// CodeDuplicateKey is for unique key violations (card ID already taken).
	CodeDuplicateKey

	// CodeUnauthorized is for rejected or absent service credentials.
	CodeUnauthorized

	// CodeUnavailable is for transient upstream failures where retry may succeed.
	CodeUnavailable
)

// HTTPStatusCode maps a Code to its HTTP status.
// Credential failures against an upstream service are the server's fault,
// not the caller's, so CodeUnauthorized surfaces as a 500.
func HTTPStatusCode(c Code) int {
	switch c {
	case CodeJSON, CodeValidation:
		return http.StatusBadRequest
	case CodeTooManyRequests:
		return http.StatusTooManyRequests
	case CodeDuplicateKey:
		return http.StatusConflict
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error is the structured error type with wrapping.
type Error struct {
	orig error
	msg  string
	code Code
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}
	return e.msg
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error { return e.orig }

// Code returns the error code.
func (e *Error) Code() Code { return e.code }

// Message returns the human-facing message without the wrapped cause.
func (e *Error) Message() string { return e.msg }

// As unwraps and returns (*Error, true) if err is one of ours.
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// CodeOf extracts a Code from any error, defaulting to Unknown.
func CodeOf(err error) Code {
	if e, ok := As(err); ok {
		return e.code
	}
	return CodeUnknown
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code Code) bool { return CodeOf(err) == code }

// HTTPStatus returns the mapped HTTP status for any error.
func HTTPStatus(err error) int { return HTTPStatusCode(CodeOf(err)) }

// New returns a new *Error with the given code and message.
func New(code Code, msg string) error { return &Error{code: code, msg: msg} }

// Newf returns a new *Error with code and formatted message.
func Newf(code Code, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrap returns a new *Error that wraps orig with code and message.
func Wrap(orig error, code Code, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

// Wrapf returns a new *Error that wraps orig with code and formatted message.
func Wrapf(orig error, code Code, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...), orig: orig}
}

// Sugar

// Validationf returns a validation error.
func Validationf(format string, a ...any) error { return Newf(CodeValidation, format, a...) }

// JSONErrf returns a malformed body error.
func JSONErrf(format string, a ...any) error { return Newf(CodeJSON, format, a...) }

// DuplicateKeyf returns a duplicate key error.
func DuplicateKeyf(format string, a ...any) error { return Newf(CodeDuplicateKey, format, a...) }

// TooManyRequestsf returns a rate limit error.
func TooManyRequestsf(format string, a ...any) error { return Newf(CodeTooManyRequests, format, a...) }

// Unavailablef returns a transient upstream error.
func Unavailablef(format string, a ...any) error { return Newf(CodeUnavailable, format, a...) }

// Unauthorizedf returns a credential error.
func Unauthorizedf(format string, a ...any) error { return Newf(CodeUnauthorized, format, a...) }

// Internalf returns a generic internal error.
func Internalf(format string, a ...any) error { return Newf(CodeUnknown, format, a...) }
