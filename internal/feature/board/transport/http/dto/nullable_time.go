package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// dateOnly is the layout sent by HTML date inputs.
const dateOnly = "2006-01-02"

// NullableTime distinguishes an absent JSON field from an explicit null.
// Set is true whenever the field appeared in the body; Value is nil for null or "".
type NullableTime struct {
	Set   bool
	Value *time.Time
}

// UnmarshalJSON accepts null, "", RFC 3339 timestamps and YYYY-MM-DD dates.
func (n *NullableTime) UnmarshalJSON(b []byte) error {
	n.Set = true
	n.Value = nil
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("dueDate must be a string: %w", err)
	}
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, dateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			n.Value = &t
			return nil
		}
	}
	return fmt.Errorf("dueDate %q is not a valid date", s)
}

// MarshalJSON writes null or the RFC 3339 timestamp.
func (n NullableTime) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value.UTC())
}

// IsZero reports whether the field was absent, so omitzero drops it from request bodies.
func (n NullableTime) IsZero() bool {
	return !n.Set
}

// NullTime returns a NullableTime that is present with the given value.
func NullTime(t *time.Time) NullableTime {
	return NullableTime{Set: true, Value: t}
}
