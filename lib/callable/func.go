package callable

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// Func returns a Callable for the function fn. Parameter names must be given
// with Names, one per parameter, not counting a leading context.Context.
// Problems with fn are reported by Params.
func Func(name string, fn any, opts ...Option) Callable {
	return &funcCallable{
		name: name,
		fn:   reflect.ValueOf(fn),
		opts: newOptions(opts),
	}
}

type funcCallable struct {
	name string
	fn   reflect.Value
	opts options
}

func (f *funcCallable) Name() string {
	if f.opts.name != "" {
		return f.opts.name
	}

	return f.name
}

func (f *funcCallable) Doc() string {
	if f.opts.doc != nil {
		return *f.opts.doc
	}

	return ""
}

// offset returns 1 if the function takes a leading context.Context.
func (f *funcCallable) offset() int {
	ft := f.fn.Type()
	if ft.NumIn() > 0 && ft.In(0) == contextType {
		return 1
	}

	return 0
}

//nolint:cyclop,funlen // Unfortunately reflection is complex.
func (f *funcCallable) Params() ([]Param, error) {
	if !f.fn.IsValid() || f.fn.Kind() != reflect.Func || f.fn.IsNil() {
		return nil, fmt.Errorf("%w: %s: expected a function, got %T", ErrSignature, f.name, f.fnInterface())
	}

	ft := f.fn.Type()
	if ft.IsVariadic() {
		return nil, fmt.Errorf("%w: %s: variadic functions are not supported", ErrSignature, f.name)
	}

	if err := checkResults(ft); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSignature, f.name, err)
	}

	off := f.offset()
	if n := ft.NumIn() - off; n != len(f.opts.names) {
		return nil, fmt.Errorf("%w: %s: got %d parameter names for %d parameters", ErrSignature, f.name, len(f.opts.names), n)
	}

	var (
		params []Param
		seen   = make(map[string]bool)
		errs   error
	)

	for i, raw := range f.opts.names {
		name, varKw := strings.CutPrefix(raw, "**")
		t := ft.In(off + i)

		switch {
		case name == "":
			errs = errors.Join(errs, fmt.Errorf("%w: %s: empty name for parameter %d", ErrSignature, f.name, i))
			continue
		case seen[name]:
			errs = errors.Join(errs, fmt.Errorf("%w: %s: duplicate parameter %q", ErrSignature, f.name, name))
			continue
		}

		seen[name] = true

		p := Param{
			Name: name,
			Kind: PositionalOrKeyword,
			Type: TypeOf(t),
		}

		if varKw {
			if i != len(f.opts.names)-1 {
				errs = errors.Join(errs, fmt.Errorf("%w: %s: keyword parameter %q must be last", ErrSignature, f.name, name))
				continue
			}

			if !isKeywordMap(t) {
				errs = errors.Join(errs, fmt.Errorf("%w: %s: keyword parameter %q must be a map with string keys, got %s", ErrSignature, f.name, name, t))
				continue
			}

			if _, ok := f.opts.defaults[name]; ok {
				errs = errors.Join(errs, fmt.Errorf("%w: %s: keyword parameter %q cannot have a default", ErrSignature, f.name, name))
				continue
			}

			p.Kind = VarKeyword
			params = append(params, p)

			continue
		}

		if v, ok := f.opts.defaults[name]; ok {
			p.Default = v
			p.HasDefault = true
		}

		params = append(params, p)
	}

	for name := range f.opts.defaults {
		if !seen[name] {
			errs = errors.Join(errs, fmt.Errorf("%w: %s: default for unknown parameter %q", ErrSignature, f.name, name))
		}
	}

	if errs != nil {
		return nil, errs
	}

	return params, nil
}

func (f *funcCallable) fnInterface() any {
	if !f.fn.IsValid() {
		return nil
	}

	return f.fn.Interface()
}

// Call converts kwargs to the parameter types and calls the function. Parameters
// missing from kwargs fall back to their declared default.
func (f *funcCallable) Call(ctx context.Context, kwargs map[string]any) (any, error) {
	params, err := f.Params()
	if err != nil {
		return nil, err
	}

	ft := f.fn.Type()
	off := f.offset()

	args := make([]reflect.Value, 0, ft.NumIn())
	if off == 1 {
		args = append(args, reflect.ValueOf(&ctx).Elem())
	}

	var errs error

	known := make(map[string]bool, len(params))

	for i, p := range params {
		known[p.Name] = true

		v, ok := kwargs[p.Name]
		if !ok {
			switch {
			case p.HasDefault:
				v = p.Default
			case p.Kind == VarKeyword:
				v = nil
			default:
				errs = errors.Join(errs, fmt.Errorf("%w: missing value for parameter %q", ErrAssign, p.Name))
				continue
			}
		}

		rv, err := convertValue(v, ft.In(off+i))
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("parameter %q: %w", p.Name, err))
			continue
		}

		args = append(args, rv)
	}

	var unknown []string

	for name := range kwargs {
		if !known[name] {
			unknown = append(unknown, name)
		}
	}

	slices.Sort(unknown)

	for _, name := range unknown {
		errs = errors.Join(errs, fmt.Errorf("%w: unknown parameter %q", ErrAssign, name))
	}

	if errs != nil {
		return nil, errs
	}

	return unpackResults(f.fn.Call(args))
}

// checkResults accepts (), (T), (error) and (T, error).
func checkResults(ft reflect.Type) error {
	switch ft.NumOut() {
	case 0, 1:
		return nil
	case 2:
		if ft.Out(1) != errorType {
			return fmt.Errorf("second result must be error, got %s", ft.Out(1))
		}

		return nil
	default:
		return fmt.Errorf("too many results (%d)", ft.NumOut())
	}
}

func unpackResults(out []reflect.Value) (any, error) {
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		if out[0].Type() == errorType {
			return nil, asError(out[0])
		}

		return out[0].Interface(), nil
	default:
		return out[0].Interface(), asError(out[1])
	}
}

func asError(v reflect.Value) error {
	if v.IsNil() {
		return nil
	}

	return v.Interface().(error) //nolint:forcetypeassert // Checked by checkResults.
}
