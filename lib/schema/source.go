package schema

import (
	"github.com/NF-coder/tap-modified/lib/callable"
)

// Source records where the default of an argument came from.
type Source int

const (
	// SourceRequired means there is no default: the argument is required.
	SourceRequired Source = iota

	// SourceDeclared is the callable's own declared default.
	SourceDeclared

	// SourceOverride is a caller-supplied override value.
	SourceOverride
)

func (s Source) String() string {
	switch s {
	case SourceRequired:
		return "required"
	case SourceDeclared:
		return "declared"
	case SourceOverride:
		return "override"
	default:
		return "unknown"
	}
}

// resolveDefault steps through the sources from highest to lowest precedence,
// override, declared, required, and stops at the first one that has a value.
// A consumed override is deleted from overrides.
func resolveDefault(p callable.Param, overrides map[string]any) (Source, any) {
	state := SourceOverride

	for {
		switch state {
		case SourceOverride:
			if v, ok := overrides[p.Name]; ok {
				delete(overrides, p.Name)
				return SourceOverride, v
			}

			state = SourceDeclared

		case SourceDeclared:
			if p.HasDefault {
				return SourceDeclared, p.Default
			}

			state = SourceRequired

		default:
			return SourceRequired, nil
		}
	}
}
