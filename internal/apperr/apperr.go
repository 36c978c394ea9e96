// Package apperr defines the typed business errors returned by the service
// layer. Every rejection carries a stable kind and a human-readable message;
// handlers map the kind to an HTTP status and never leak internal detail.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an application error.
type Kind string

const (
	KindValidation     Kind = "validation"
	KindNotFound       Kind = "not_found"
	KindUnauthorized   Kind = "unauthorized"
	KindOutOfStock     Kind = "out_of_stock"
	KindOrderFinalized Kind = "order_finalized"
	KindOrderCancelled Kind = "order_cancelled"
	KindInternal       Kind = "internal"
)

// Error is a typed application error. Message is safe to return to callers;
// Err, when set, is the underlying cause and stays server-side.
type Error struct {
	Kind    Kind
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

// New returns a typed error with the given kind and caller-visible message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a cause to a typed error.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of err, or KindInternal for untyped errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// IsKind reports whether err is a typed error of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Message returns the caller-visible message for err. Untyped errors
// collapse to a generic message so storage failures never leak.
func Message(err error) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Kind != KindInternal {
		return ae.Message
	}
	return "Internal Server Error"
}

// HTTPStatus maps an error to the HTTP status its kind is reported with.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation, KindOutOfStock, KindOrderFinalized, KindOrderCancelled:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
