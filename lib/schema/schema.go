// Package schema derives a command-line argument schema from the parameters of
// a callable.
//
// For every parameter, in declaration order, Build decides the argument type,
// whether it is required or which default it has, and its help text. Defaults
// are taken, in order of precedence, from caller-supplied override values, then
// from the callable's declared defaults; a parameter with neither is required.
// Command-line input parsed later always wins over both.
//
// The catch-all keyword parameter gets no argument. Its presence switches the
// schema into "tolerate unknown" mode so that unrecognised command-line
// arguments can be folded into it.
package schema

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/NF-coder/tap-modified/lib/callable"
)

// FlagPrefix is prepended to parameter names to form their flag.
const FlagPrefix = "--"

// ErrUnknownArgument indicates override values for names that are not
// parameters of the callable.
var ErrUnknownArgument = errors.New("unknown keyword arguments")

// UnknownArgumentError lists the override names that matched no parameter.
type UnknownArgumentError struct {
	Names []string
}

func (e *UnknownArgumentError) Error() string {
	return fmt.Sprintf("%v: %s", ErrUnknownArgument, strings.Join(e.Names, ", "))
}

func (e *UnknownArgumentError) Is(target error) bool {
	return target == ErrUnknownArgument //nolint:errorlint,err113 // Sentinel comparison.
}

// AnyPolicy controls the argument type of parameters declared as "any".
type AnyPolicy int

const (
	// AnyAsString types "any" parameters as strings, so their values
	// round-trip through text parsing. This is the default.
	AnyAsString AnyPolicy = iota

	// AnyKeep keeps the "any" marker and leaves the choice to the parser.
	AnyKeep
)

// Options configures Build.
type Options struct {
	// KnownOnly tolerates unknown override values and command-line arguments.
	KnownOnly bool

	// AnyPolicy selects how "any" parameters are typed.
	AnyPolicy AnyPolicy
}

// ArgumentSpec is the command-line argument derived from one parameter.
// Exactly one of Required and HasDefault is set.
type ArgumentSpec struct {
	Name string
	Flag string
	Type callable.TypeRef

	Required   bool
	Default    any
	HasDefault bool

	Help   string
	Source Source
}

// Schema is the ordered set of arguments of a callable.
type Schema struct {
	Specs []ArgumentSpec

	// VarKeyword is the name of the catch-all keyword parameter, if any.
	VarKeyword string

	// TolerateUnknown is set when unknown arguments must not cause failure,
	// either because it was requested or because of VarKeyword.
	TolerateUnknown bool

	// Dropped lists override names that were ignored in tolerate mode.
	Dropped []string
}

// Lookup returns the argument derived from the named parameter.
func (s *Schema) Lookup(name string) (ArgumentSpec, bool) {
	for _, spec := range s.Specs {
		if spec.Name == name {
			return spec, true
		}
	}

	return ArgumentSpec{}, false
}

// Build derives the schema for params. help maps parameter names to help text
// and may document names that are not parameters. overrides is not modified.
func Build(params []callable.Param, help map[string]string, overrides map[string]any, opts Options) (*Schema, error) {
	pending := make(map[string]any, len(overrides))
	for name, v := range overrides {
		pending[name] = v
	}

	s := &Schema{
		TolerateUnknown: opts.KnownOnly,
	}

	for _, p := range params {
		if p.Kind == callable.VarKeyword {
			s.VarKeyword = p.Name
			s.TolerateUnknown = true

			continue
		}

		spec := ArgumentSpec{
			Name: p.Name,
			Flag: FlagPrefix + p.Name,
			Type: effectiveType(p.Type, opts.AnyPolicy),
			Help: help[p.Name],
		}

		spec.Source, spec.Default = resolveDefault(p, pending)
		spec.Required = spec.Source == SourceRequired
		spec.HasDefault = !spec.Required

		s.Specs = append(s.Specs, spec)
	}

	if len(pending) > 0 {
		names := make([]string, 0, len(pending))
		for name := range pending {
			names = append(names, name)
		}

		slices.Sort(names)

		if !s.TolerateUnknown {
			return nil, &UnknownArgumentError{Names: names}
		}

		s.Dropped = names
	}

	return s, nil
}

// effectiveType applies the "any" policy. Unresolved types stay unresolved and
// are left to the parser's default.
func effectiveType(t callable.TypeRef, policy AnyPolicy) callable.TypeRef {
	if t.IsAny() && policy == AnyAsString {
		return callable.StringType()
	}

	return t
}
