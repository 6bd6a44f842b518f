package argparse

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/spf13/cast"

	"github.com/NF-coder/tap-modified/lib/callable"
	"github.com/NF-coder/tap-modified/lib/schema"
)

var errBool = errors.New("expected a prefix of true or false, or 1 or 0")

// value implements pflag.Value for one argument spec.
type value struct {
	spec   schema.ArgumentSpec
	kind   valueKind
	tokens []string

	parsed any
	set    bool
	err    error
}

type valueKind int

const (
	kindScalar valueKind = iota
	kindSwitch
	kindBool
	kindSlice
)

func newValue(spec schema.ArgumentSpec, explicitBool bool) *value {
	v := &value{spec: spec}

	switch callable.ValueTypeOf(spec.Type) {
	case callable.TypeBoolean:
		v.kind = kindSwitch
		if explicitBool {
			v.kind = kindBool
		}
	case callable.TypeArray:
		if t := spec.Type.Reflect(); t != nil && t.Kind() == reflect.Slice {
			v.kind = kindSlice
		}
	default:
	}

	return v
}

func (v *value) String() string {
	switch {
	case v.set:
		return format(v.parsed)
	case v.spec.HasDefault && v.spec.Default != nil:
		return format(v.spec.Default)
	default:
		return ""
	}
}

// Set is called by pflag once per occurrence. Slices accumulate, everything
// else is replaced by the last occurrence.
func (v *value) Set(s string) error {
	parsed, err := v.convert(s)
	if err != nil {
		v.err = &ConversionError{
			Flag:  v.spec.Flag,
			Value: s,
			Type:  v.spec.Type,
			Err:   err,
		}

		return v.err
	}

	v.parsed = parsed
	v.set = true

	return nil
}

func (v *value) convert(s string) (any, error) {
	t := v.spec.Type.Reflect()
	if t == nil || v.spec.Type.IsAny() {
		return s, nil
	}

	switch v.kind {
	case kindSwitch, kindBool:
		b, err := parseBool(s)
		if err != nil {
			return nil, err
		}

		return callable.Convert(b, t)

	case kindSlice:
		tokens := v.tokens
		if !v.set {
			tokens = nil
		}

		if s != "" {
			if _, err := callable.Convert(s, t.Elem()); err != nil {
				return nil, err
			}

			tokens = append(tokens, s)
		}

		if len(tokens) == 0 {
			v.tokens = nil
			return reflect.MakeSlice(t, 0, 0).Interface(), nil
		}

		parsed, err := callable.Convert(tokens, t)
		if err != nil {
			return nil, err
		}

		v.tokens = tokens

		return parsed, nil

	default:
		return callable.Convert(s, t)
	}
}

func (v *value) Type() string {
	if v.kind == kindBool {
		return "boolean"
	}

	return typeName(v.spec.Type)
}

// typeName is the placeholder shown in usage output.
func typeName(r callable.TypeRef) string {
	t := r.Reflect()
	if t == nil || r.IsAny() {
		return "string"
	}

	switch callable.ValueTypeOf(r) {
	case callable.TypeBoolean:
		return "bool"
	case callable.TypeArray:
		if t.Kind() == reflect.Slice {
			return typeName(callable.TypeOf(t.Elem())) + "s"
		}
	default:
	}

	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t.PkgPath() != "" {
		return strings.ToLower(t.Name())
	}

	return t.Kind().String()
}

// parseBool accepts case-insensitive prefixes of "true" and "false" as well as
// "1" and "0".
func parseBool(s string) (bool, error) {
	l := strings.ToLower(strings.TrimSpace(s))

	switch {
	case l == "1":
		return true, nil
	case l == "0":
		return false, nil
	case l != "" && strings.HasPrefix("true", l):
		return true, nil
	case l != "" && strings.HasPrefix("false", l):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q", errBool, s)
	}
}

func format(v any) string {
	if s, err := cast.ToStringE(v); err == nil {
		return s
	}

	return fmt.Sprint(v)
}
