// Package errors carries coded errors between the repos, services and the
// HTTP edge. Import it as perr everywhere.
package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies an error for clients and logs.
// Values are stable on the wire; append only.
type ErrorCode uint16

const (
	// ErrorCodeUnknown covers errors nothing else classified
	ErrorCodeUnknown ErrorCode = iota

	// ErrorCodePanic marks a panic recovered by middleware
	ErrorCodePanic

	// ErrorCodeUnavailable marks transient failures where a retry can succeed,
	// chiefly the vendor API being down or timing out
	ErrorCodeUnavailable

	// ErrorCodeUnauthorized marks auth failures, ours or the vendor's
	ErrorCodeUnauthorized

	// ErrorCodeForbidden marks access control rejections
	ErrorCodeForbidden

	// ErrorCodeInvalidArgument marks bad request parameters
	ErrorCodeInvalidArgument

	// ErrorCodeValidation marks payloads that parsed but failed validation
	ErrorCodeValidation

	// ErrorCodeJSON marks payloads that did not parse at all
	ErrorCodeJSON

	// ErrorCodeNotFound marks missing resources
	ErrorCodeNotFound

	// ErrorCodeDuplicateKey marks unique constraint violations
	ErrorCodeDuplicateKey

	// ErrorCodeDB marks other database failures
	ErrorCodeDB
)

// HTTPStatusCode maps an ErrorCode onto the status the edge responds with
func HTTPStatusCode(c ErrorCode) int {
	switch c {
	case ErrorCodeNotFound:
		return http.StatusNotFound
	case ErrorCodeInvalidArgument:
		return http.StatusUnprocessableEntity
	case ErrorCodeDuplicateKey:
		return http.StatusConflict
	case ErrorCodeValidation, ErrorCodeJSON:
		return http.StatusBadRequest
	case ErrorCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrorCodeForbidden:
		return http.StatusForbidden
	case ErrorCodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error pairs a developer facing message with a machine facing code.
// field names the offending input field when validation set one.
// cause is the wrapped error and stays out of client responses.
type Error struct {
	cause error
	msg   string
	code  ErrorCode
	field string
}

// Wire is the JSON shape of an error inside the response envelope
type Wire struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.cause)
	}
	return e.msg
}

// Unwrap returns the wrapped cause, if any
func (e *Error) Unwrap() error { return e.cause }

// Code returns the error code
func (e *Error) Code() ErrorCode { return e.code }

// Field returns the offending field, empty unless validation set one
func (e *Error) Field() string { return e.field }

// ToWire renders the client visible part of the error
func (e *Error) ToWire() Wire { return Wire{Code: e.code, Message: e.msg, Field: e.field} }

// WireFrom renders any error for the wire.
// Foreign errors come out as Unknown; nil comes out as the zero Wire.
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return e.ToWire()
	}
	return Wire{Code: ErrorCodeUnknown, Message: err.Error()}
}

// Root walks the Unwrap chain to the deepest cause
func Root(err error) error {
	for err != nil {
		u := stderrs.Unwrap(err)
		if u == nil {
			return err
		}
		err = u
	}
	return nil
}

// CodeOf extracts the ErrorCode from any error, Unknown for foreign errors
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err carries the given code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// HTTPStatus is HTTPStatusCode(CodeOf(err))
func HTTPStatus(err error) int { return HTTPStatusCode(CodeOf(err)) }

// As unwraps err to (*Error, true) when it is one of ours
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// WithField returns a copy of err with field set.
// Foreign errors pass through unchanged.
func WithField(err error, field string) error {
	if e, ok := As(err); ok {
		c := *e
		c.field = field
		return &c
	}
	return err
}

// Constructors

// New returns a coded error with a fixed message
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf returns a coded error with a formatted message
func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrap returns a coded error around cause
func Wrap(cause error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, cause: cause}
}

// Wrapf is Wrap with a formatted message
func Wrapf(cause error, code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...), cause: cause}
}

// WrapIf wraps only when err is non nil, for one line returns
func WrapIf(err error, code ErrorCode, msg string) error {
	if err == nil {
		return nil
	}
	return Wrap(err, code, msg)
}

// Sugar

// InvalidArgf returns an invalid argument error
func InvalidArgf(format string, a ...any) error { return Newf(ErrorCodeInvalidArgument, format, a...) }

// JSONErrf returns a JSON parse error
func JSONErrf(format string, a ...any) error { return Newf(ErrorCodeJSON, format, a...) }

// PanicErrf returns a recovered panic error
func PanicErrf(format string, a ...any) error { return Newf(ErrorCodePanic, format, a...) }

// Unauthorizedf returns an unauthorized error
func Unauthorizedf(format string, a ...any) error { return Newf(ErrorCodeUnauthorized, format, a...) }

// Unavailablef returns a transient unavailable error
func Unavailablef(format string, a ...any) error { return Newf(ErrorCodeUnavailable, format, a...) }
