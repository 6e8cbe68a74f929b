// Package apperr carries the error taxonomy shared by the services and the
// HTTP layer: a short machine code plus a message that is safe to show to
// the end user verbatim.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a failure.
type Code string

const (
	Unauthenticated  Code = "unauthenticated"
	InvalidArgument  Code = "invalid-argument"
	NotFound         Code = "not-found"
	PermissionDenied Code = "permission-denied"
	AlreadyExists    Code = "already-exists"
	Internal         Code = "internal"
)

// InternalMessage is what callers see for any unclassified failure.
const InternalMessage = "An unexpected error occurred."

// Error is a classified, user-facing error.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New builds a classified error.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap classifies err, keeping it as the cause. An err that is already
// classified is returned unchanged.
func Wrap(err error, code Code, message string) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return &Error{Code: code, Message: message, cause: err}
}

// From returns the classified error inside err, or an Internal error
// wrapping it.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return &Error{Code: Internal, Message: InternalMessage, cause: err}
}

// CodeOf reports the code of err, Internal for unclassified errors.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	return From(err).Code
}

// Is reports whether err is classified with code.
func Is(err error, code Code) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Code == code
}

// HTTPStatus maps a code onto a response status.
func HTTPStatus(code Code) int {
	switch code {
	case Unauthenticated:
		return http.StatusUnauthorized
	case InvalidArgument:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case PermissionDenied:
		return http.StatusForbidden
	case AlreadyExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
