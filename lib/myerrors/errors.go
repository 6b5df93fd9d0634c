package myerrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindMissingConfig   Kind = "missing_config"
	KindInvalidRequest  Kind = "invalid_request"
	KindExchangeError   Kind = "exchange_error"
	KindUnauthenticated Kind = "unauthenticated"
	KindNotFound        Kind = "not_found"
	KindInternal        Kind = "internal"
)

// Error is a domain failure tagged with a machine-readable kind.
type Error struct {
	Kind   Kind
	Detail string
	Cause  error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Detail, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindInvalidRequest, KindExchangeError:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusFound
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func newError(kind Kind, detail string, cause error) *Error {
	return &Error{
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

func NewMissingConfigError(variableName string) *Error {
	return newError(KindMissingConfig, fmt.Sprintf("required setting %s is missing", variableName), nil)
}

func NewInvalidConfigError(variableName string, cause error) *Error {
	return newError(KindMissingConfig, fmt.Sprintf("setting %s is invalid", variableName), cause)
}

func NewInvalidRequestError(detail string) *Error {
	return newError(KindInvalidRequest, detail, nil)
}

func NewInvalidRequestErrorf(format string, args ...any) *Error {
	return NewInvalidRequestError(fmt.Sprintf(format, args...))
}

func NewExchangeError(detail string, cause error) *Error {
	return newError(KindExchangeError, detail, cause)
}

func NewUnauthenticatedError(detail string) *Error {
	return newError(KindUnauthenticated, detail, nil)
}

func NewNotFoundError(detail string) *Error {
	return newError(KindNotFound, detail, nil)
}

func NewInternalError(cause error) *Error {
	return newError(KindInternal, "internal error", cause)
}

// KindOf returns the kind of the first *Error in the chain, KindInternal otherwise.
func KindOf(err error) Kind {
	var myErr *Error
	if errors.As(err, &myErr) {
		return myErr.Kind
	}
	return KindInternal
}

// PublicMessage is the text that may be shown to a client. Internal causes stay in the logs.
func PublicMessage(err error) string {
	var myErr *Error
	if !errors.As(err, &myErr) {
		return fmt.Sprintf("%s: internal error", KindInternal)
	}
	if myErr.Kind == KindInternal {
		return fmt.Sprintf("%s: %s", myErr.Kind, myErr.Detail)
	}
	return err.Error()
}

func GetHTTPStatus(err error) int {
	var myErr *Error
	if errors.As(err, &myErr) {
		return myErr.HTTPStatus()
	}
	return http.StatusInternalServerError
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
