package service

import (
	"errors"
	"fmt"
)

// The four failure classes every service operation can return. Handlers
// map them to HTTP statuses; anything else is treated as an internal
// error and never echoed to the client.

// ValidationError covers missing or malformed input and voting-window
// violations.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// NotFoundError signals that a referenced entity does not exist.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

// ConflictError signals a state conflict: a duplicate vote, or an edit
// or delete blocked by existing votes.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string { return e.Reason }

// UpstreamError wraps a failure in a collaborator (database, mail).
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *UpstreamError) Unwrap() error { return e.Err }

func validationf(format string, args ...interface{}) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

func notFound(resource string) error {
	return &NotFoundError{Resource: resource}
}

func conflict(reason string) error {
	return &ConflictError{Reason: reason}
}

func upstream(op string, err error) error {
	return &UpstreamError{Op: op, Err: err}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var e *ConflictError
	return errors.As(err, &e)
}
