package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// NullableLabels distinguishes an absent labels field from a present one.
// An explicit null clears the labels, so Value is never nil once Set.
type NullableLabels struct {
	Set   bool
	Value []string
}

// UnmarshalJSON accepts null or an array of strings.
func (n *NullableLabels) UnmarshalJSON(b []byte) error {
	n.Set = true
	n.Value = []string{}
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var v []string
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("labels must be an array of strings: %w", err)
	}
	if v != nil {
		n.Value = v
	}
	return nil
}

// MarshalJSON writes the labels, [] when empty.
func (n NullableLabels) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(n.Value)
}

// IsZero reports whether the field was absent, so omitzero drops it from request bodies.
func (n NullableLabels) IsZero() bool {
	return !n.Set
}

// SetLabels returns a NullableLabels that is present with the given labels.
func SetLabels(labels ...string) NullableLabels {
	if labels == nil {
		labels = []string{}
	}
	return NullableLabels{Set: true, Value: labels}
}
