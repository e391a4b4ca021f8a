package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for HTTP mapping and cleanup decisions
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindUnsupportedMedia
	KindNotFound
	KindForbidden
	KindStorage
	KindPersistence
)

// Error is the application error carried from services to handlers.
// Message is safe to show to callers; Err is the wrapped cause and may
// contain storage keys or driver details, so it is never serialized.
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

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Validation(message string) *Error       { return New(KindValidation, message) }
func UnsupportedMedia(message string) *Error { return New(KindUnsupportedMedia, message) }
func NotFound(message string) *Error         { return New(KindNotFound, message) }
func Forbidden(message string) *Error        { return New(KindForbidden, message) }

func Storage(message string, err error) *Error {
	return Wrap(KindStorage, message, err)
}

func Persistence(message string, err error) *Error {
	return Wrap(KindPersistence, message, err)
}

// KindOf returns the kind of err, or KindUnknown for untyped errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// HTTPStatus maps an error to the status code the API responds with.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnsupportedMedia:
		return http.StatusUnsupportedMediaType
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindStorage:
		return http.StatusBadGateway
	case KindPersistence:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the caller-safe message for err. Untyped errors
// collapse to a generic message so internal details never leak.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}
