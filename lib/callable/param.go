package callable

import (
	"context"
	"reflect"
	"time"
)

// ParamKind distinguishes named parameters from the catch-all keyword parameter.
type ParamKind int

const (
	// PositionalOrKeyword is a regular named parameter.
	PositionalOrKeyword ParamKind = iota

	// VarKeyword absorbs arbitrary additional named arguments.
	VarKeyword
)

func (k ParamKind) String() string {
	switch k {
	case PositionalOrKeyword:
		return "positional_or_keyword"
	case VarKeyword:
		return "var_keyword"
	default:
		return "unknown"
	}
}

type typeRefKind int

const (
	typeUnresolved typeRefKind = iota
	typeAny
	typeConcrete
)

// TypeRef is the declared type of a parameter. It is either unresolved (no type
// was declared), the unconstrained "any" marker, or a concrete Go type.
// The zero value is unresolved.
type TypeRef struct {
	kind typeRefKind
	t    reflect.Type
}

// Unresolved returns the TypeRef of a parameter without a declared type.
func Unresolved() TypeRef {
	return TypeRef{}
}

// AnyType returns the TypeRef of a parameter declared as "any".
func AnyType() TypeRef {
	return TypeRef{kind: typeAny, t: anyType}
}

// TypeOf returns the TypeRef for t. Empty interface types map to AnyType and a
// nil type maps to Unresolved.
func TypeOf(t reflect.Type) TypeRef {
	if t == nil {
		return Unresolved()
	}

	if t.Kind() == reflect.Interface && t.NumMethod() == 0 {
		return AnyType()
	}

	return TypeRef{kind: typeConcrete, t: t}
}

// StringType returns the TypeRef of the string type.
func StringType() TypeRef {
	return TypeOf(stringType)
}

// IsUnresolved reports whether no type was declared.
func (r TypeRef) IsUnresolved() bool {
	return r.kind == typeUnresolved
}

// IsAny reports whether the type is the unconstrained "any" marker.
func (r TypeRef) IsAny() bool {
	return r.kind == typeAny
}

// Reflect returns the Go type. It is nil for unresolved types.
func (r TypeRef) Reflect() reflect.Type {
	return r.t
}

func (r TypeRef) String() string {
	switch r.kind {
	case typeAny:
		return "any"
	case typeConcrete:
		return r.t.String()
	default:
		return "unresolved"
	}
}

// Param describes one formal parameter of a callable.
type Param struct {
	Name string
	Kind ParamKind
	Type TypeRef

	// Default is only meaningful when HasDefault is set.
	Default    any
	HasDefault bool
}

var (
	anyType      = reflect.TypeFor[any]()
	stringType   = reflect.TypeFor[string]()
	errorType    = reflect.TypeFor[error]()
	contextType  = reflect.TypeFor[context.Context]()
	durationType = reflect.TypeFor[time.Duration]()
)
