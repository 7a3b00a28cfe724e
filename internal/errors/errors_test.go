package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestFieldErrorsMarshalKeepsOrder(t *testing.T) {
	fields := FieldErrors{
		Field("name", "This field is required."),
		Field("amount", "A valid number is required.", "Ensure that there are no more than 2 decimal places."),
		Field(NonFieldErrors),
	}

	raw, err := json.Marshal(fields)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `{"name":["This field is required."],"amount":["A valid number is required.","Ensure that there are no more than 2 decimal places."],"non_field_errors":[]}`
	if string(raw) != want {
		t.Errorf("got %s, want %s", raw, want)
	}
}

func TestFieldErrorsAddMerges(t *testing.T) {
	var fields FieldErrors
	fields = fields.Add("name", "first")
	fields = fields.Add("parent", "second")
	fields = fields.Add("name", "third")

	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
	if got := fields.Get("name"); len(got) != 2 || got[1] != "third" {
		t.Errorf("unexpected name messages: %v", got)
	}
}

func TestAppErrorMessages(t *testing.T) {
	t.Run("fields_flatten_in_order", func(t *testing.T) {
		err := WithFields(ErrValidation,
			Field("name", "a", "b"),
			Field("parent", "c"),
		)
		if got := strings.Join(err.Messages(), "|"); got != "a|b|c" {
			t.Errorf("messages = %q", got)
		}
		if err.Error() != "a\nb\nc" {
			t.Errorf("Error() = %q", err.Error())
		}
	})

	t.Run("message_only", func(t *testing.T) {
		err := WithMessage(ErrNotFound, "gone")
		if got := err.Messages(); len(got) != 1 || got[0] != "gone" {
			t.Errorf("messages = %v", got)
		}
	})
}

func TestAppErrorIsMatchesByCode(t *testing.T) {
	wrapped := fmt.Errorf("deleting: %w", WithMessage(ErrNotFound, "category 9 is gone"))
	if !stderrors.Is(wrapped, ErrNotFound) {
		t.Error("expected wrapped error to match ErrNotFound")
	}
	if stderrors.Is(wrapped, ErrValidation) {
		t.Error("did not expect match with ErrValidation")
	}
}

func TestUnwrapReachesInternal(t *testing.T) {
	err := Wrap(ErrTransport, context.Canceled)
	if !stderrors.Is(err, context.Canceled) {
		t.Error("expected errors.Is to reach the internal error")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"too long", 3, "too"},
		{"ünïcödé", 3, "ünï"},
		{"unbounded", 0, "unbounded"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestFlatten(t *testing.T) {
	long := strings.Repeat("x", 120)
	err := WithFields(ErrValidation, Field("name", long), Field("parent", "bad parent"))

	got := Flatten(err, 100)
	if len(got) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(got))
	}
	if len(got[0]) != 100 {
		t.Errorf("expected first message truncated to 100, got %d", len(got[0]))
	}

	plain := Flatten(stderrors.New("connection refused"), 80)
	if len(plain) != 1 || plain[0] != "connection refused" {
		t.Errorf("unexpected plain flatten: %v", plain)
	}

	if Flatten(nil, 80) != nil {
		t.Error("expected nil for nil error")
	}
}

func TestSurface(t *testing.T) {
	t.Run("keeps_code_and_truncates_fields", func(t *testing.T) {
		src := WithFields(ErrValidation, Field("name", strings.Repeat("n", 90)))
		got := Surface(fmt.Errorf("create: %w", src), 80)

		if got.Code != ErrValidation.Code {
			t.Errorf("code = %q", got.Code)
		}
		if msgs := got.Fields.Get("name"); len(msgs) != 1 || len(msgs[0]) != 80 {
			t.Errorf("expected truncated field message, got %v", msgs)
		}
	})

	t.Run("plain_error_becomes_transport", func(t *testing.T) {
		got := Surface(stderrors.New("dial tcp: refused"), 80)
		if got.Code != ErrTransport.Code {
			t.Errorf("code = %q, want %q", got.Code, ErrTransport.Code)
		}
		if !stderrors.Is(got, ErrTransport) {
			t.Error("expected surfaced error to match ErrTransport")
		}
	})

	t.Run("nil", func(t *testing.T) {
		if Surface(nil, 80) != nil {
			t.Error("expected nil")
		}
	})
}

func TestHasCode(t *testing.T) {
	if !HasCode(fmt.Errorf("x: %w", ErrRefreshFailed), "REFRESH_FAILED") {
		t.Error("expected HasCode to see through wrapping")
	}
	if HasCode(stderrors.New("plain"), "REFRESH_FAILED") {
		t.Error("plain error should not have a code")
	}
}
