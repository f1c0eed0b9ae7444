package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError_SingleField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("lang", "unknown language code")

	if got := err.Error(); got != "validation: lang: unknown language code" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
}

func TestValidationError_MultipleFields(t *testing.T) {
	t.Parallel()

	err := NewValidationErrors([]FieldError{
		{Field: "word", Message: "required"},
		{Field: "lang", Message: "required"},
	})

	if got := err.Error(); got != "validation: 2 errors" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
	if len(err.Errors) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(err.Errors))
	}
}

func TestLanguageNotFoundError(t *testing.T) {
	t.Parallel()

	var err error = &LanguageNotFoundError{Word: "hallo", Code: "fr", Name: "French"}
	wrapped := fmt.Errorf("parse: %w", err)

	if !errors.Is(wrapped, ErrLanguageNotFound) {
		t.Fatal("errors.Is(wrapped, ErrLanguageNotFound) = false")
	}
	if errors.Is(wrapped, ErrPageNotFound) {
		t.Fatal("language absence must not match ErrPageNotFound")
	}

	var lnf *LanguageNotFoundError
	if !errors.As(wrapped, &lnf) || lnf.Code != "fr" {
		t.Fatalf("errors.As: got %+v", lnf)
	}
	if got := err.Error(); got != `language French (fr) not found on page "hallo"` {
		t.Errorf("unexpected Error(): %q", got)
	}
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	t.Parallel()

	sentinels := []error{
		ErrNotFound, ErrAlreadyExists, ErrValidation,
		ErrUnauthorized, ErrForbidden, ErrConflict,
		ErrPageNotFound, ErrLanguageNotFound,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel errors %d and %d should not match", i, j)
			}
		}
	}
}
