package mcptool

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cast"

	"github.com/NF-coder/tap-modified/lib/argparse"
	"github.com/NF-coder/tap-modified/lib/callable"
	"github.com/NF-coder/tap-modified/lib/schema"
)

// Arguments turns the arguments of a tool call into keyword arguments for the
// callable described by s. Arguments win over schema defaults. Arguments that
// match no parameter go to the keyword parameter as strings, are ignored when s
// tolerates unknown arguments, and are an error otherwise.
func Arguments(s *schema.Schema, args map[string]any) (map[string]any, error) {
	var (
		kwargs  = make(map[string]any, len(s.Specs)+1)
		missing []string
		errs    error
	)

	for _, spec := range s.Specs {
		v, ok := args[spec.Name]

		switch {
		case ok:
			converted, err := convert(v, spec.Type)
			if err != nil {
				errs = errors.Join(errs, fmt.Errorf("%w: %q: %w", ErrArgumentType, spec.Name, err))
				continue
			}

			kwargs[spec.Name] = converted
		case spec.Required:
			missing = append(missing, spec.Name)
		default:
			kwargs[spec.Name] = spec.Default
		}
	}

	if len(missing) > 0 {
		errs = errors.Join(errs, &argparse.MissingRequiredError{Flags: missing})
	}

	var unknown []string

	for _, name := range slices.Sorted(maps.Keys(args)) {
		if _, ok := s.Lookup(name); !ok {
			unknown = append(unknown, name)
		}
	}

	switch {
	case s.VarKeyword != "":
		extra := make(map[string]string, len(unknown))

		for _, name := range unknown {
			v, err := cast.ToStringE(args[name])
			if err != nil {
				v = fmt.Sprint(args[name])
			}

			extra[name] = v
		}

		kwargs[s.VarKeyword] = extra

	case len(unknown) > 0 && !s.TolerateUnknown:
		errs = errors.Join(errs, &argparse.UnrecognizedArgumentsError{Args: unknown})
	}

	if errs != nil {
		return nil, errs
	}

	return kwargs, nil
}

func convert(v any, r callable.TypeRef) (any, error) {
	t := r.Reflect()
	if t == nil || r.IsAny() {
		return v, nil
	}

	return callable.Convert(v, t)
}
