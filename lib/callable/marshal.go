package callable

import (
	"reflect"
)

// ValueType is the coarse type a parameter is presented as, both on the
// command line and in tool schemas.
type ValueType int

const (
	TypeString ValueType = iota
	TypeNumber
	TypeBoolean
	TypeArray
)

func (v ValueType) String() string {
	switch v {
	case TypeString:
		return "string"
	case TypeNumber:
		return "number"
	case TypeBoolean:
		return "boolean"
	case TypeArray:
		return "array"
	default:
		return "unknown"
	}
}

// Marshaler is implemented by custom parameter types to report their ValueType.
// Typically used in combination with the Unmarshaler interface.
type Marshaler interface {
	Marshal() ValueType
}

// Unmarshaler is the interface implemented by types that can set themselves from
// a raw value, usually a command-line token. Typically used in combination with
// the Marshaler interface.
type Unmarshaler interface {
	Unmarshal(v any) error
}

// ValueTypeOf returns the ValueType of r. Unresolved and "any" types are strings.
func ValueTypeOf(r TypeRef) ValueType {
	t := r.Reflect()
	if t == nil || r.IsAny() {
		return TypeString
	}

	if m, ok := marshalerFor(t); ok {
		return m.Marshal()
	}

	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t == durationType {
		return TypeString
	}

	//nolint:exhaustive // Everything else is presented as a string.
	switch t.Kind() {
	case reflect.Bool:
		return TypeBoolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return TypeNumber
	case reflect.Slice, reflect.Array:
		return TypeArray
	default:
		return TypeString
	}
}

func marshalerFor(t reflect.Type) (Marshaler, bool) {
	var v any
	if t.Kind() == reflect.Pointer {
		v = reflect.New(t.Elem()).Interface()
	} else {
		v = reflect.Zero(t).Interface()
	}

	m, ok := v.(Marshaler)

	return m, ok
}
