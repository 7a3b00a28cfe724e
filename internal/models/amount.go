package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Amount is a monetary value with two decimal places.
type Amount struct {
	decimal.Decimal
}

// NewAmount parses s into an Amount.
func NewAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, err
	}
	return Amount{Decimal: d}, nil
}

// MustAmount is like NewAmount but panics on invalid input. Use in tests and
// for constants only.
func MustAmount(s string) Amount {
	a, err := NewAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

// String returns the amount with exactly two decimal places.
func (a Amount) String() string {
	return a.StringFixed(2)
}

// MarshalJSON implements the json.Marshaler interface. Amounts are emitted as
// strings to keep their precision.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

// UnmarshalJSON accepts both JSON strings and numbers.
func (a *Amount) UnmarshalJSON(data []byte) error {
	return a.Decimal.UnmarshalJSON(data)
}

// Scan writes the value from the database.
func (a *Amount) Scan(value any) error {
	return a.Decimal.Scan(value)
}

// Value returns the value for the SQL driver to write to the database.
func (a Amount) Value() (driver.Value, error) {
	return a.String(), nil
}

// AmountText is amount input as typed by a user. It is sent as a JSON string
// and accepts a JSON number on the way in.
type AmountText string

// UnmarshalJSON implements the json.Unmarshaler interface.
func (t *AmountText) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = AmountText(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("amount must be a string or number: %w", err)
	}
	*t = AmountText(n.String())
	return nil
}

// Decimal parses the text.
func (t AmountText) Decimal() (decimal.Decimal, error) {
	return decimal.NewFromString(string(t))
}
