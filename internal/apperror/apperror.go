// Package apperror defines the error kinds every service returns and how they map to HTTP.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindConfiguration Kind = "configuration"
	KindAuthorization Kind = "authorization"
	// KindForbidden is an authorization failure for an authenticated caller lacking a role.
	KindForbidden     Kind = "forbidden"
	KindValidation    Kind = "validation"
	KindGateway       Kind = "gateway"
	KindConflict      Kind = "conflict"
	KindNotFound      Kind = "not_found"
	KindInternal      Kind = "internal"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

func Configuration(msg string) *Error { return New(KindConfiguration, msg) }
func Authorization(msg string) *Error { return New(KindAuthorization, msg) }
func Forbidden(msg string) *Error     { return New(KindForbidden, msg) }
func Validation(msg string) *Error    { return New(KindValidation, msg) }
func Conflict(msg string) *Error      { return New(KindConflict, msg) }
func NotFound(msg string) *Error      { return New(KindNotFound, msg) }

// Gateway keeps the provider's message as the user-visible text.
func Gateway(msg string, err error) *Error { return Wrap(KindGateway, msg, err) }

// As returns the *Error in err's chain, if any.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}
	return KindInternal
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

func HTTPStatus(kind Kind) int {
	switch kind {
	case KindConfiguration:
		return http.StatusServiceUnavailable
	case KindAuthorization:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindValidation:
		return http.StatusBadRequest
	case KindGateway:
		return http.StatusBadGateway
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
