package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "spendly/internal/errors"
)

const maxErrorBody = 1 << 20

// errorBody is what could be recovered from a failed response.
type errorBody struct {
	message string
	fields  apperrors.FieldErrors
}

// decodeError maps a non-2xx response to an AppError. 400 becomes a
// validation error carrying the field map in the order the server sent it;
// 401, 403 and 404 keep their own kinds; anything else is a transport error.
func decodeError(resp *http.Response, op string) *apperrors.AppError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	body := parseErrorBody(raw)

	switch resp.StatusCode {
	case http.StatusBadRequest:
		if len(body.fields) == 0 {
			if body.message == "" {
				return apperrors.ErrValidation
			}
			return apperrors.WithMessage(apperrors.ErrValidation, body.message)
		}
		err := apperrors.WithFields(apperrors.ErrValidation, body.fields...)
		if body.message != "" {
			err.Fields = append(apperrors.FieldErrors{apperrors.Field(apperrors.NonFieldErrors, body.message)}, err.Fields...)
		}
		return err
	case http.StatusUnauthorized:
		return withBodyMessage(apperrors.ErrUnauthorized, body)
	case http.StatusForbidden:
		return withBodyMessage(apperrors.ErrForbidden, body)
	case http.StatusNotFound:
		return withBodyMessage(apperrors.ErrNotFound, body)
	}

	err := apperrors.Wrap(apperrors.ErrTransport, fmt.Errorf("%s: unexpected status %d", op, resp.StatusCode))
	if msg := body.summary(); msg != "" {
		err.Message = msg
	} else {
		err.Message = fmt.Sprintf("Unexpected response from server (status %d)", resp.StatusCode)
	}
	return err
}

func withBodyMessage(sentinel *apperrors.AppError, body errorBody) *apperrors.AppError {
	if msg := body.summary(); msg != "" {
		return apperrors.WithMessage(sentinel, msg)
	}
	return apperrors.WithMessage(sentinel, sentinel.Message)
}

// summary returns the body's message, or its first field message.
func (b errorBody) summary() string {
	if b.message != "" {
		return b.message
	}
	for _, f := range b.fields {
		if len(f.Messages) > 0 {
			return f.Messages[0]
		}
	}
	return ""
}

// parseErrorBody understands the field map {"field":["msg"]}, a bare list of
// messages, {"detail":"..."} and {"error":"..."} or {"error":{"message":"..."}}.
// Bodies that are not JSON are ignored.
func parseErrorBody(raw []byte) errorBody {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || !json.Valid(raw) {
		return errorBody{}
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return errorBody{}
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return parseObject(dec)
		case '[':
			var msgs []string
			for dec.More() {
				var item json.RawMessage
				if err := dec.Decode(&item); err != nil {
					break
				}
				msgs = append(msgs, flattenValue(item)...)
			}
			if len(msgs) == 0 {
				return errorBody{}
			}
			return errorBody{fields: apperrors.FieldErrors{apperrors.Field(apperrors.NonFieldErrors, msgs...)}}
		}
	case string:
		return errorBody{message: v}
	}
	return errorBody{}
}

// parseObject reads the members of an object whose opening brace has been
// consumed, keeping key order.
func parseObject(dec *json.Decoder) errorBody {
	var out errorBody
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			break
		}
		key, _ := keyTok.(string)

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			break
		}

		switch key {
		case "detail":
			out.message = first(flattenValue(value))
		case "code":
		case "error":
			var nested struct {
				Message string `json:"message"`
			}
			if json.Unmarshal(value, &nested) == nil && nested.Message != "" {
				out.message = nested.Message
			} else {
				out.message = first(flattenValue(value))
			}
		default:
			out.fields = append(out.fields, apperrors.Field(key, flattenValue(value)...))
		}
	}
	return out
}

// flattenValue turns a JSON value into display strings: strings as is,
// arrays and objects recursively in order, anything else verbatim.
func flattenValue(raw json.RawMessage) []string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return []string{s}
	}

	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		var out []string
		for _, item := range list {
			out = append(out, flattenValue(item)...)
		}
		return out
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	if tok, err := dec.Token(); err == nil && tok == json.Delim('{') {
		nested := parseObject(dec)
		var out []string
		if nested.message != "" {
			out = append(out, nested.message)
		}
		for _, f := range nested.fields {
			out = append(out, f.Messages...)
		}
		return out
	}

	return []string{string(raw)}
}

func first(msgs []string) string {
	if len(msgs) == 0 {
		return ""
	}
	return msgs[0]
}
