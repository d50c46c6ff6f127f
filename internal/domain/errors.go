package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrConflict      = errors.New("conflict")

	// ErrSessionActive is returned by StartSession when today's journal
	// already holds an unterminated session.
	ErrSessionActive = errors.New("session already active")

	// ErrNoActiveSession is returned by EndSession when today's journal
	// holds no unterminated session.
	ErrNoActiveSession = errors.New("no active session")
)

// SessionActiveError carries the task of the currently active session so the
// caller can decide to end it first.
type SessionActiveError struct {
	Task string
}

func (e *SessionActiveError) Error() string {
	return fmt.Sprintf("session already active: %q", e.Task)
}

func (e *SessionActiveError) Unwrap() error { return ErrSessionActive }

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}
