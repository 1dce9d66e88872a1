package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies operation failures so callers can branch on one
// envelope shape instead of operation-specific errors.
type ErrorKind string

const (
	KindValidation    ErrorKind = "validation"
	KindAuthorization ErrorKind = "authorization"
	KindNotFound      ErrorKind = "not_found"
	KindUnexpected    ErrorKind = "unexpected"
)

// Error is a kinded operation error. The message is safe to show to the
// caller; internal diagnostic detail stays out of it.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

// NewValidationError reports a caller-fixable field problem.
func NewValidationError(field, reason string) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf("invalid %s: %s", field, reason)}
}

// ErrUnauthorized is the single authorization failure surfaced to callers.
// Missing identity and cross-tenant access report the same generic message
// so an unauthorized caller learns nothing about resources in other tenants.
var ErrUnauthorized = &Error{Kind: KindAuthorization, Message: "unauthorized"}

// NewNotFoundError reports an id that resolved to nothing.
func NewNotFoundError(entity string) *Error {
	return &Error{Kind: KindNotFound, Message: entity + " not found"}
}

// NewUnexpectedError hides internal failure detail behind a generic message.
func NewUnexpectedError() *Error {
	return &Error{Kind: KindUnexpected, Message: "an unexpected error occurred"}
}

// KindOf extracts the ErrorKind from err, defaulting to KindUnexpected for
// anything that is not a *Error.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnexpected
}
