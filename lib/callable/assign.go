package callable

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"

	"github.com/spf13/cast"
)

// ErrAssign indicates that a value could not be converted to a parameter type.
var ErrAssign = errors.New("failed to assign value")

// Convert converts value to the Go type t. Strings are parsed, numbers are
// converted between kinds, slices and string-keyed maps are converted element
// by element, and types implementing Unmarshaler parse the value themselves.
// A nil value converts to the zero value of t.
func Convert(value any, t reflect.Type) (any, error) {
	v, err := convertValue(value, t)
	if err != nil {
		return nil, err
	}

	return v.Interface(), nil
}

// assign sets target to value, converting as needed.
func assign(target reflect.Value, value any) error {
	if !target.CanSet() {
		return fmt.Errorf("%w: target is not settable", ErrAssign)
	}

	v, err := convertValue(value, target.Type())
	if err != nil {
		return err
	}

	target.Set(v)

	return nil
}

//nolint:cyclop,funlen,gocognit,gocyclo // Unfortunately reflection is complex.
func convertValue(value any, t reflect.Type) (reflect.Value, error) {
	out := reflect.New(t).Elem()

	// A nil value leaves the zero value in place.
	if value == nil {
		return out, nil
	}

	// Check Unmarshaler first: custom types decide how to read raw values.
	if u, ok := out.Addr().Interface().(Unmarshaler); ok {
		if err := u.Unmarshal(value); err != nil {
			return reflect.Value{}, fmt.Errorf("%w: %w", ErrAssign, err)
		}

		return out, nil
	}

	rv := reflect.ValueOf(value)
	if rv.Type().AssignableTo(t) {
		out.Set(rv)
		return out, nil
	}

	if t == durationType {
		d, err := cast.ToDurationE(value)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w: %w", ErrAssign, err)
		}

		out.SetInt(int64(d))

		return out, nil
	}

	//nolint:exhaustive // Unhandled cases return an error.
	switch t.Kind() {
	case reflect.String:
		s, err := cast.ToStringE(value)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w: %w", ErrAssign, err)
		}

		out.SetString(s)

	case reflect.Bool:
		b, err := cast.ToBoolE(value)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w: %w", ErrAssign, err)
		}

		out.SetBool(b)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		var (
			i   int64
			err error
		)

		// Parse strings in base 10 so that "010" is ten, not eight.
		if s, ok := value.(string); ok {
			i, err = strconv.ParseInt(s, 10, 64)
		} else {
			i, err = cast.ToInt64E(value)
		}

		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w: cannot convert %#v to %s: %w", ErrAssign, value, t, err)
		}

		if out.OverflowInt(i) {
			return reflect.Value{}, fmt.Errorf("%w: %d overflows %s", ErrAssign, i, t)
		}

		out.SetInt(i)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		var (
			u   uint64
			err error
		)

		switch v := value.(type) {
		case string:
			u, err = strconv.ParseUint(v, 10, 64)
		default:
			var i int64

			i, err = cast.ToInt64E(value)
			if err == nil && i < 0 {
				err = errors.New("cannot convert negative value to unsigned int")
			}

			u = uint64(i) //nolint:gosec // Checked above.
		}

		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w: cannot convert %#v to %s: %w", ErrAssign, value, t, err)
		}

		if out.OverflowUint(u) {
			return reflect.Value{}, fmt.Errorf("%w: %d overflows %s", ErrAssign, u, t)
		}

		out.SetUint(u)

	case reflect.Float32, reflect.Float64:
		f, err := cast.ToFloat64E(value)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w: cannot convert %#v to %s: %w", ErrAssign, value, t, err)
		}

		if out.OverflowFloat(f) {
			return reflect.Value{}, fmt.Errorf("%w: %g overflows %s", ErrAssign, f, t)
		}

		out.SetFloat(f)

	case reflect.Slice:
		elems := reflect.ValueOf(value)
		if elems.Kind() != reflect.Slice && elems.Kind() != reflect.Array {
			// A single value becomes a one element slice.
			elems = reflect.ValueOf([]any{value})
		}

		s := reflect.MakeSlice(t, elems.Len(), elems.Len())
		for i := range elems.Len() {
			e, err := convertValue(elems.Index(i).Interface(), t.Elem())
			if err != nil {
				return reflect.Value{}, err
			}

			s.Index(i).Set(e)
		}

		out.Set(s)

	case reflect.Map:
		src := reflect.ValueOf(value)
		if src.Kind() != reflect.Map || src.Type().Key().Kind() != reflect.String || t.Key().Kind() != reflect.String {
			return reflect.Value{}, fmt.Errorf("%w: cannot convert %T to %s", ErrAssign, value, t)
		}

		m := reflect.MakeMapWithSize(t, src.Len())

		iter := src.MapRange()
		for iter.Next() {
			e, err := convertValue(iter.Value().Interface(), t.Elem())
			if err != nil {
				return reflect.Value{}, err
			}

			m.SetMapIndex(iter.Key().Convert(t.Key()), e)
		}

		out.Set(m)

	case reflect.Pointer:
		e, err := convertValue(value, t.Elem())
		if err != nil {
			return reflect.Value{}, err
		}

		p := reflect.New(t.Elem())
		p.Elem().Set(e)
		out.Set(p)

	default:
		return reflect.Value{}, fmt.Errorf("%w: unsupported target type %s", ErrAssign, t)
	}

	return out, nil
}
