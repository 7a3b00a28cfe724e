// Package errors provides the error kinds shared by the sync client, the
// category and spending stores, and the reference remote store.
//
// Every failure is an *AppError carrying a stable code. Validation failures
// additionally carry ordered per-field messages, mirroring the field map the
// remote store sends back, so callers can surface them verbatim.
package errors

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// NonFieldErrors is the field key used for problems not tied to one field.
const NonFieldErrors = "non_field_errors"

// FieldError holds the messages reported for a single input field.
type FieldError struct {
	Field    string
	Messages []string
}

// Field builds a FieldError.
func Field(name string, messages ...string) FieldError {
	return FieldError{Field: name, Messages: messages}
}

// FieldErrors is an ordered list of field errors. It marshals to a JSON
// object whose keys keep the list order.
type FieldErrors []FieldError

// Add appends msg to field, merging with an existing entry for the same field.
func (f FieldErrors) Add(field, msg string) FieldErrors {
	for i := range f {
		if f[i].Field == field {
			f[i].Messages = append(f[i].Messages, msg)
			return f
		}
	}
	return append(f, FieldError{Field: field, Messages: []string{msg}})
}

// Get returns the messages recorded for field.
func (f FieldErrors) Get(field string) []string {
	for _, fe := range f {
		if fe.Field == field {
			return fe.Messages
		}
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (f FieldErrors) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, fe := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(fe.Field)
		if err != nil {
			return nil, err
		}
		msgs := fe.Messages
		if msgs == nil {
			msgs = []string{}
		}
		val, err := json.Marshal(msgs)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, optional field errors and
// optional internal error.
type AppError struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	StatusCode int         `json:"-"`
	Fields     FieldErrors `json:"-"`
	Internal   error       `json:"-"`
}

// Error implements the error interface. Field errors, when present, are
// joined one per line.
func (e *AppError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return strings.Join(e.Messages(), "\n")
}

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is reports whether target is an *AppError with the same code, so wrapped
// copies still match their sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// Messages flattens the field errors in order. Without field errors it
// returns the message alone.
func (e *AppError) Messages() []string {
	if len(e.Fields) == 0 {
		if e.Message == "" {
			return nil
		}
		return []string{e.Message}
	}
	var out []string
	for _, f := range e.Fields {
		out = append(out, f.Messages...)
	}
	return out
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// WithFields creates a new AppError carrying the given field errors.
func WithFields(sentinel *AppError, fields ...FieldError) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Fields:     FieldErrors(fields),
		Internal:   sentinel.Internal,
	}
}

// HasCode reports whether err is an *AppError with the given code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// Truncate shortens s to at most n runes. A non-positive n disables truncation.
func Truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// Flatten returns the human-readable messages of err, each truncated to limit runes.
func Flatten(err error, limit int) []string {
	if err == nil {
		return nil
	}
	var msgs []string
	var appErr *AppError
	if errors.As(err, &appErr) {
		msgs = appErr.Messages()
	}
	if len(msgs) == 0 {
		msgs = []string{err.Error()}
	}
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = Truncate(m, limit)
	}
	return out
}

// Surface converts err into the flattened form shown to a user: an *AppError
// whose message and field messages are truncated to limit runes. Errors that
// are not AppErrors are reported as transport failures.
func Surface(err error, limit int) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = Wrap(ErrTransport, err)
	}

	var fields FieldErrors
	for _, f := range appErr.Fields {
		msgs := make([]string, len(f.Messages))
		for i, m := range f.Messages {
			msgs[i] = Truncate(m, limit)
		}
		fields = append(fields, FieldError{Field: f.Field, Messages: msgs})
	}

	return &AppError{
		Code:       appErr.Code,
		Message:    Truncate(appErr.Message, limit),
		StatusCode: appErr.StatusCode,
		Fields:     fields,
		Internal:   appErr.Internal,
	}
}

// Sync layer and store errors.
var (
	ErrValidation    = &AppError{Code: "VALIDATION_ERROR", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrTransport     = &AppError{Code: "TRANSPORT_ERROR", Message: "The request could not be completed", StatusCode: http.StatusBadGateway}
	ErrNotFound      = &AppError{Code: "NOT_FOUND", Message: "Not found.", StatusCode: http.StatusNotFound}
	ErrRefreshFailed = &AppError{Code: "REFRESH_FAILED", Message: "Saved, but the list could not be reloaded", StatusCode: http.StatusBadGateway}
)

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication credentials were not provided.", StatusCode: http.StatusUnauthorized}
	ErrInvalidToken       = &AppError{Code: "INVALID_TOKEN", Message: "Invalid or expired token.", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Unable to log in with provided credentials.", StatusCode: http.StatusBadRequest}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "You do not have permission to perform this action.", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Resource errors.
var (
	ErrCategoryNotFound = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Not found.", StatusCode: http.StatusNotFound}
	ErrSpendingNotFound = &AppError{Code: "SPENDING_NOT_FOUND", Message: "Not found.", StatusCode: http.StatusNotFound}
	ErrUserNotFound     = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
)

// Collaborator errors.
var (
	ErrAssistantUnavailable = &AppError{Code: "ASSISTANT_UNAVAILABLE", Message: "Assistant is not configured.", StatusCode: http.StatusNotImplemented}
)
