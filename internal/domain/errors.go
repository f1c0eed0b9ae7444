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
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrConflict      = errors.New("conflict")

	// ErrPageNotFound means the wiki has no page for the requested word.
	ErrPageNotFound = errors.New("page not found")
	// ErrLanguageNotFound means the page exists but has no section for the
	// requested language.
	ErrLanguageNotFound = errors.New("language not found")
)

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

// LanguageNotFoundError is returned when a page lacks the top-level section
// of the requested language.
type LanguageNotFoundError struct {
	Word string
	Code string
	Name string
}

func (e *LanguageNotFoundError) Error() string {
	if e.Word == "" {
		return fmt.Sprintf("language %s (%s) not found", e.Name, e.Code)
	}
	return fmt.Sprintf("language %s (%s) not found on page %q", e.Name, e.Code, e.Word)
}

func (e *LanguageNotFoundError) Unwrap() error { return ErrLanguageNotFound }
