package callable

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// Struct returns a Callable that constructs a *T from named arguments.
func Struct[T any](opts ...Option) Callable {
	return NewStruct(reflect.TypeFor[T](), opts...)
}

// NewStruct returns a Callable that constructs values of the struct type t, or
// of the struct type t points to. Problems with t are reported by Params.
func NewStruct(t reflect.Type, opts ...Option) Callable {
	return &structCallable{
		t:    t,
		opts: newOptions(opts),
	}
}

type structCallable struct {
	t    reflect.Type
	opts options
}

// structField ties a parameter to the field it was read from.
type structField struct {
	param Param
	index int
}

func (s *structCallable) Name() string {
	if s.opts.name != "" {
		return s.opts.name
	}

	if t := s.structType(); t != nil && t.Name() != "" {
		return toSnakeCase(t.Name())
	}

	return "struct"
}

func (s *structCallable) structType() reflect.Type {
	t := s.t
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}

	return t
}

// Doc prefers the Doc option, then InitDoc, then Doc methods on T or *T.
func (s *structCallable) Doc() string {
	if s.opts.doc != nil {
		return *s.opts.doc
	}

	t := s.structType()
	if t == nil {
		return ""
	}

	v := reflect.New(t).Interface()

	if d, ok := v.(InitDocumenter); ok {
		if doc := d.InitDoc(); doc != "" {
			return doc
		}
	}

	if d, ok := v.(Documenter); ok {
		return d.Doc()
	}

	return ""
}

func (s *structCallable) Params() ([]Param, error) {
	fields, err := s.fields()
	if err != nil {
		return nil, err
	}

	params := make([]Param, 0, len(fields))
	for _, f := range fields {
		params = append(params, f.param)
	}

	return params, nil
}

//nolint:cyclop,funlen // Unfortunately reflection is complex.
func (s *structCallable) fields() ([]structField, error) {
	t := s.structType()
	if t == nil {
		return nil, fmt.Errorf("%w: expected struct, got %v", ErrSignature, s.t)
	}

	if len(s.opts.names) > 0 {
		return nil, fmt.Errorf("%w: parameter names cannot be set for struct %s", ErrSignature, t)
	}

	var (
		fields []structField
		seen   = make(map[string]bool)
		varKw  string
		errs   error
	)

	for i := range t.NumField() {
		field := t.Field(i)

		// Skip unexported fields
		if !field.IsExported() {
			continue
		}

		name, extra, skip := parseFieldTag(field)
		if skip {
			continue
		}

		if field.Anonymous {
			errs = errors.Join(errs, fmt.Errorf("%w: embedded field %q is not supported", ErrSignature, field.Name))
			continue
		}

		if seen[name] {
			errs = errors.Join(errs, fmt.Errorf("%w: duplicate parameter %q on field %q", ErrSignature, name, field.Name))
			continue
		}

		seen[name] = true

		p := Param{
			Name: name,
			Kind: PositionalOrKeyword,
			Type: TypeOf(field.Type),
		}

		if extra {
			if !isKeywordMap(field.Type) {
				errs = errors.Join(errs, fmt.Errorf("%w: extra field %q must be a map with string keys, got %s", ErrSignature, field.Name, field.Type))
				continue
			}

			if varKw != "" {
				errs = errors.Join(errs, fmt.Errorf("%w: more than one extra field (%q and %q)", ErrSignature, varKw, name))
				continue
			}

			if _, ok := s.opts.defaults[name]; ok {
				errs = errors.Join(errs, fmt.Errorf("%w: extra field %q cannot have a default", ErrSignature, field.Name))
				continue
			}

			varKw = name
			p.Kind = VarKeyword
			fields = append(fields, structField{param: p, index: i})

			continue
		}

		if tag, ok := field.Tag.Lookup("default"); ok {
			v, err := Convert(tag, field.Type)
			if err != nil {
				errs = errors.Join(errs, fmt.Errorf("%w: invalid default for field %q: %w", ErrSignature, field.Name, err))
				continue
			}

			p.Default = v
			p.HasDefault = true
		}

		if v, ok := s.opts.defaults[name]; ok {
			p.Default = v
			p.HasDefault = true
		}

		fields = append(fields, structField{param: p, index: i})
	}

	for name := range s.opts.defaults {
		if !seen[name] {
			errs = errors.Join(errs, fmt.Errorf("%w: default for unknown parameter %q", ErrSignature, name))
		}
	}

	if errs != nil {
		return nil, errs
	}

	return fields, nil
}

// Call allocates a new *T, assigns kwargs to the matching fields and runs Init
// when *T implements Initializer.
func (s *structCallable) Call(ctx context.Context, kwargs map[string]any) (any, error) {
	fields, err := s.fields()
	if err != nil {
		return nil, err
	}

	ptr := reflect.New(s.structType())

	byName := make(map[string]structField, len(fields))
	for _, f := range fields {
		byName[f.param.Name] = f
	}

	var errs error

	names := make([]string, 0, len(kwargs))
	for name := range kwargs {
		names = append(names, name)
	}

	slices.Sort(names)

	for _, name := range names {
		f, ok := byName[name]
		if !ok {
			errs = errors.Join(errs, fmt.Errorf("%w: unknown parameter %q", ErrAssign, name))
			continue
		}

		if err := assign(ptr.Elem().Field(f.index), kwargs[name]); err != nil {
			errs = errors.Join(errs, fmt.Errorf("parameter %q: %w", name, err))
		}
	}

	if errs != nil {
		return nil, errs
	}

	if init, ok := ptr.Interface().(Initializer); ok {
		if err := init.Init(ctx); err != nil {
			return nil, err //nolint:wrapcheck // Errors of the target are returned as is.
		}
	}

	return ptr.Interface(), nil
}

// parseFieldTag reads the "tapify" tag: `tapify:"name"`, `tapify:",extra"` or `tapify:"-"`.
func parseFieldTag(field reflect.StructField) (name string, extra, skip bool) {
	tag := field.Tag.Get("tapify")
	if tag == "-" {
		return "", false, true
	}

	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = toSnakeCase(field.Name)
	}

	for _, opt := range strings.Split(opts, ",") {
		if opt == "extra" {
			extra = true
		}
	}

	return name, extra, false
}

func isKeywordMap(t reflect.Type) bool {
	return t.Kind() == reflect.Map && t.Key().Kind() == reflect.String
}
