package usecase

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindNotFound         Kind = "not_found"
	KindConflict         Kind = "conflict"
	KindInvalidOrExpired Kind = "invalid_or_expired"
	KindUnauthorized     Kind = "unauthorized"
	KindDeliveryFailed   Kind = "delivery_failed"
	KindValidation       Kind = "validation"
	KindInternal         Kind = "internal"
)

// Error is what every service method returns on failure. Message is safe to show to clients.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns KindInternal for errors that did not come from this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func newError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func errNotFound(message string) error {
	return newError(KindNotFound, message, nil)
}

func errConflict(message string) error {
	return newError(KindConflict, message, nil)
}

func errInvalidOrExpired() error {
	return newError(KindInvalidOrExpired, "invalid or expired code", nil)
}

func errUnauthorized() error {
	return newError(KindUnauthorized, "invalid credentials", nil)
}

func errDelivery(message string, err error) error {
	return newError(KindDeliveryFailed, message, err)
}

func errInternal(message string, err error) error {
	return newError(KindInternal, message, err)
}

func errValidation(fields map[string]string) error {
	return &Error{Kind: KindValidation, Message: "validation failed", Fields: fields}
}
