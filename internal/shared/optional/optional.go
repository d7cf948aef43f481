// Package optional provides a tri-state field for partial updates: a field
// may be absent from the payload, explicitly null, or carry a value.
package optional

import (
	"bytes"
	"encoding/json"
)

type state uint8

const (
	unset state = iota
	null
	present
)

// Value is the zero-value-is-unset tri-state wrapper. Decoding JSON into a
// struct of Values leaves absent keys Unset, maps `null` to Null and anything
// else to a set value.
type Value[T any] struct {
	state state
	value T
}

// Of returns a set value.
func Of[T any](v T) Value[T] {
	return Value[T]{state: present, value: v}
}

// Null returns an explicit null.
func Null[T any]() Value[T] {
	return Value[T]{state: null}
}

// IsSet reports whether the field was present in the payload, null or not.
func (v Value[T]) IsSet() bool { return v.state != unset }

// IsNull reports whether the field was present and explicitly null.
func (v Value[T]) IsNull() bool { return v.state == null }

// HasValue reports whether the field was present with a non-null value.
func (v Value[T]) HasValue() bool { return v.state == present }

// Get returns the value and whether one is present.
func (v Value[T]) Get() (T, bool) {
	return v.value, v.state == present
}

// Ptr returns nil for Null or Unset, otherwise a pointer to a copy of the value.
func (v Value[T]) Ptr() *T {
	if v.state != present {
		return nil
	}
	out := v.value
	return &out
}

// Any returns the value as an interface, nil when null. It is meant for
// building update payload maps and must only be called when IsSet is true.
func (v Value[T]) Any() any {
	if v.state != present {
		return nil
	}
	return v.value
}

func (v *Value[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		v.state, v.value = null, zero
		return nil
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	v.state, v.value = present, out
	return nil
}

// MarshalJSON writes null for Unset and Null. Callers that must drop unset
// fields build a map from IsSet instead of relying on omitempty.
func (v Value[T]) MarshalJSON() ([]byte, error) {
	if v.state != present {
		return []byte("null"), nil
	}
	return json.Marshal(v.value)
}
