package callable

import (
	"encoding/json"

	"github.com/spf13/cast"
)

// OptionalBool is an optional boolean parameter. It supports three states: true,
// false, and "not set". The zero value is "not set".
type OptionalBool struct { //nolint:recvcheck // Unmarshal requires pointer receiver.
	value bool
	isSet bool
}

// Interface tests.
var _ Marshaler = OptionalBool{}
var _ Unmarshaler = &OptionalBool{}

// Unmarshal sets the OptionalBool from a bool or a string such as "true" or "0".
// The empty string resets it to "not set".
func (o *OptionalBool) Unmarshal(v any) error {
	if s, ok := v.(string); ok && s == "" {
		*o = OptionalBool{}
		return nil
	}

	b, err := cast.ToBoolE(v)
	if err != nil {
		return err //nolint:wrapcheck // Wrapped by the caller.
	}

	o.value = b
	o.isSet = true

	return nil
}

// Marshal implements the Marshaler interface.
func (OptionalBool) Marshal() ValueType {
	return TypeBoolean
}

// IsSet reports whether a value was assigned.
func (o OptionalBool) IsSet() bool {
	return o.isSet
}

// Ptr returns nil when the value is not set.
func (o OptionalBool) Ptr() *bool {
	if !o.isSet {
		return nil
	}

	// Create a copy to avoid mutation of the internal value.
	v := o.value

	return &v
}

func (o OptionalBool) String() string {
	if !o.isSet {
		return "unset"
	}

	return cast.ToString(o.value)
}

// MarshalJSON encodes the value as true, false or null.
func (o OptionalBool) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.Ptr())
}
