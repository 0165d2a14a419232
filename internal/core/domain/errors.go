package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Concrete errors below unwrap to one of these so callers can
// switch on the kind with errors.Is and read details with errors.As.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
)

// NotFoundError - the requested identity does not resolve.
// Lookups by a unique field set Field/Value instead of ID.
type NotFoundError struct {
	Kind  EntityKind
	ID    int64
	Field string
	Value string
}

func NewNotFoundError(kind EntityKind, id int64) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id}
}

// NewNotFoundByField reports a failed lookup by a unique field.
func NewNotFoundByField(kind EntityKind, field, value string) *NotFoundError {
	return &NotFoundError{Kind: kind, Field: field, Value: value}
}

func (e *NotFoundError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s with %s %q not found", e.Kind, e.Field, e.Value)
	}
	return fmt.Sprintf("%s with id %d not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ValidationError - input failed a format, required-field or cross-reference check.
type ValidationError struct {
	Reason string
}

func NewValidationError(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}

func (e *ValidationError) Error() string { return e.Reason }

func (e *ValidationError) Unwrap() error { return ErrValidation }

// ConflictError - a uniqueness constraint would be violated.
type ConflictError struct {
	Kind  EntityKind
	Field string
	Value string
}

func NewConflictError(kind EntityKind, field, value string) *ConflictError {
	return &ConflictError{Kind: kind, Field: field, Value: value}
}

func (e *ConflictError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s %s already registered", e.Kind, e.Field)
	}
	return fmt.Sprintf("%s %s %q already registered", e.Kind, e.Field, e.Value)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// UnauthorizedError - login failure. Reason is for logs; the kind is what
// callers expose, so unknown email and wrong password look the same outside.
type UnauthorizedError struct {
	Reason string
}

func (e *UnauthorizedError) Error() string { return e.Reason }

func (e *UnauthorizedError) Unwrap() error { return ErrUnauthorized }

var (
	ErrEmailNotFound     = &UnauthorizedError{Reason: "email not found"}
	ErrIncorrectPassword = &UnauthorizedError{Reason: "incorrect password"}
)
