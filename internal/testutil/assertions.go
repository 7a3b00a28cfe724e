package testutil

import (
	"errors"
	"testing"

	apperrors "spendly/internal/errors"
)

// AssertAppError checks that err is an *AppError with the expected code and
// returns it so callers can inspect its fields.
func AssertAppError(t *testing.T, err error, expectedCode string) *apperrors.AppError {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", expectedCode)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}

	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
	return appErr
}

// AssertFieldError checks that err is a validation error with at least one
// message on field, and returns that field's messages.
func AssertFieldError(t *testing.T, err error, field string) []string {
	t.Helper()

	appErr := AssertAppError(t, err, apperrors.ErrValidation.Code)
	msgs := appErr.Fields.Get(field)
	if len(msgs) == 0 {
		t.Fatalf("expected a message on %q, got %+v", field, appErr.Fields)
	}
	return msgs
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
