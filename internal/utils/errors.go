package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the machine-readable class of a storefront error.
type Kind string

const (
	KindDuplicateEmail Kind = "DUPLICATE_EMAIL"
	KindAuthFailure    Kind = "AUTH_FAILURE"
	KindUnauthorized   Kind = "UNAUTHORIZED"
	KindNotFound       Kind = "NOT_FOUND"
	KindMalformedJSON  Kind = "MALFORMED_JSON"
	KindInternal       Kind = "INTERNAL"
)

type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound) works
// whatever the message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrDuplicateEmail = &Error{Kind: KindDuplicateEmail, Message: "A user with the same email address is already registered."}
	ErrAuthFailure    = &Error{Kind: KindAuthFailure, Message: "Login failed. Incorrect email or password."}
	ErrUnauthorized   = &Error{Kind: KindUnauthorized, Message: "Unauthorized. Access denied."}
	ErrNotFound       = &Error{Kind: KindNotFound, Message: "Not found."}
)

func New(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, cause error) error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

func NotFound(message string) error {
	return New(KindNotFound, message)
}

// KindOf reports the kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the user-facing message carried by err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal server error."
}

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindDuplicateEmail:
		return http.StatusConflict
	case KindAuthFailure:
		return http.StatusUnauthorized
	case KindUnauthorized:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindMalformedJSON:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
