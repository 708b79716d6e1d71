// Package apperr defines the error classes shared by the directory and
// scheduling services. Transports map a Kind to a status code; internal
// causes stay wrapped and are never shown to callers.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for callers.
type Kind string

const (
	// KindValidation means the input was malformed or missing required fields.
	KindValidation Kind = "validation"
	// KindNotFound means a referenced entity does not exist.
	KindNotFound Kind = "not_found"
	// KindConflict means a business rule rejected the request (duplicate name,
	// taken time slot).
	KindConflict Kind = "conflict"
	// KindDependency means a storage or notification collaborator failed.
	KindDependency Kind = "dependency"
)

// Error carries a stable kind and a caller-safe message. The wrapped cause,
// if any, is for logs only.
type Error struct {
	Kind    Kind
	Message string
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

// Validation builds a caller-fixable input error.
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// NotFound builds a missing-entity error.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Conflict builds a business-rule rejection.
func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// Dependency wraps a collaborator failure. The cause is kept for logging but
// msg is all a caller ever sees.
func Dependency(msg string, err error) *Error {
	return &Error{Kind: KindDependency, Message: msg, Err: err}
}

// KindOf returns the kind of err, or KindDependency for anything that is not
// an *Error (unknown failures are never the caller's fault).
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindDependency
}

// MessageOf returns the caller-safe message of err, falling back to a generic
// one for unclassified errors.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}
