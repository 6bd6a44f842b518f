package callable

import (
	"context"
	"errors"
)

// ErrSignature indicates that the parameters of a callable cannot be read.
var ErrSignature = errors.New("cannot read callable signature")

//go:generate mockgen -destination=../testing/tapifytest/mock_callable.go -package=tapifytest . Callable

// Callable is anything that can enumerate its parameters and be invoked with a
// mapping of parameter names to values.
type Callable interface {
	// Name returns a short name, used as program or tool name.
	Name() string

	// Params returns the formal parameters in declaration order.
	Params() ([]Param, error)

	// Doc returns the raw documentation text. It may be empty.
	Doc() string

	// Call invokes the callable. The value stored under the name of a
	// VarKeyword parameter is a map with string keys.
	Call(ctx context.Context, kwargs map[string]any) (any, error)
}

// Documenter is implemented by types that carry their own documentation.
type Documenter interface {
	Doc() string
}

// InitDocumenter is implemented by struct types that document their
// construction separately from the type itself. InitDoc is preferred over Doc.
type InitDocumenter interface {
	InitDoc() string
}

// Initializer is implemented by struct types that need to run code once all
// fields have been assigned. An error returned by Init is returned by Call as is.
type Initializer interface {
	Init(ctx context.Context) error
}

// Option configures a Callable created by Struct, NewStruct or Func.
type Option func(*options)

type options struct {
	name     string
	doc      *string
	names    []string
	defaults map[string]any
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// Name overrides the name of the callable.
func Name(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// Doc sets the documentation text, taking precedence over Doc and InitDoc methods.
func Doc(doc string) Option {
	return func(o *options) {
		o.doc = &doc
	}
}

// Names sets the parameter names of a function, in order. Prefix the name of a
// trailing map parameter with "**" to make it the catch-all keyword parameter.
func Names(names ...string) Option {
	return func(o *options) {
		o.names = append(o.names, names...)
	}
}

// Default declares a default value for the named parameter.
func Default(name string, value any) Option {
	return func(o *options) {
		if o.defaults == nil {
			o.defaults = make(map[string]any)
		}

		o.defaults[name] = value
	}
}
