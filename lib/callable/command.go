package callable

import (
	"context"
	"errors"
	"fmt"
)

// Command is a Callable with hand-declared parameters. Unlike functions and
// structs its parameters may be left untyped (see Unresolved), in which case
// the values reach Run as parsed by the command-line parser.
type Command struct {
	Use        string
	Help       string
	Parameters []Param
	Run        func(ctx context.Context, kwargs map[string]any) (any, error)
}

// Interface tests.
var _ Callable = &Command{}

func (c *Command) Name() string {
	return c.Use
}

func (c *Command) Doc() string {
	return c.Help
}

func (c *Command) Params() ([]Param, error) {
	if c.Run == nil {
		return nil, fmt.Errorf("%w: command %q has no Run function", ErrSignature, c.Use)
	}

	var (
		seen  = make(map[string]bool, len(c.Parameters))
		varKw bool
		errs  error
	)

	for _, p := range c.Parameters {
		switch {
		case p.Name == "":
			errs = errors.Join(errs, fmt.Errorf("%w: command %q has a parameter without name", ErrSignature, c.Use))
		case seen[p.Name]:
			errs = errors.Join(errs, fmt.Errorf("%w: command %q: duplicate parameter %q", ErrSignature, c.Use, p.Name))
		case p.Kind == VarKeyword && varKw:
			errs = errors.Join(errs, fmt.Errorf("%w: command %q: more than one keyword parameter", ErrSignature, c.Use))
		}

		seen[p.Name] = true
		varKw = varKw || p.Kind == VarKeyword
	}

	if errs != nil {
		return nil, errs
	}

	return append([]Param(nil), c.Parameters...), nil
}

func (c *Command) Call(ctx context.Context, kwargs map[string]any) (any, error) {
	if c.Run == nil {
		return nil, fmt.Errorf("%w: command %q has no Run function", ErrSignature, c.Use)
	}

	return c.Run(ctx, kwargs)
}
