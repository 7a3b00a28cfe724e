package models

import (
	"encoding/json"
	"strconv"
)

// OptionalID is a nullable reference in a partial update. The zero value is
// "absent" and is omitted from JSON (use it with the omitzero option); a set
// value with a nil ID is an explicit null that clears the reference.
type OptionalID struct {
	Set bool
	ID  *uint
}

// SetID returns an OptionalID pointing at id.
func SetID(id uint) OptionalID {
	return OptionalID{Set: true, ID: &id}
}

// Clear returns an OptionalID that clears the reference.
func Clear() OptionalID {
	return OptionalID{Set: true}
}

// IsZero reports whether the value is absent.
func (o OptionalID) IsZero() bool {
	return !o.Set
}

// MarshalJSON implements the json.Marshaler interface.
func (o OptionalID) MarshalJSON() ([]byte, error) {
	if o.ID == nil {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatUint(uint64(*o.ID), 10)), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface. It is only called
// when the key is present, so any call marks the value as set.
func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.ID = nil
		return nil
	}
	var id uint
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	o.ID = NormalizeID(&id)
	return nil
}

// NormalizeID maps a missing or zero reference to nil.
func NormalizeID(id *uint) *uint {
	if id == nil || *id == 0 {
		return nil
	}
	v := *id
	return &v
}
