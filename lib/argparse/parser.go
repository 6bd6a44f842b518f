// Package argparse parses command-line tokens against a schema.Schema.
//
// Arguments are long flags only: "--name value" or "--name=value". Boolean
// arguments are switches unless explicit booleans are requested, slices consume
// every following token that is not a flag. Tokens that match no argument, and
// everything after "--", are collected in order as unknown arguments.
package argparse

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/NF-coder/tap-modified/lib/schema"
)

// Parser parses command lines. The zero value is usable.
type Parser struct {
	// Program is the name shown in usage output.
	Program string

	// Description is printed below the usage line.
	Description string

	// ExplicitBool requires boolean arguments to be given a value.
	ExplicitBool bool

	// KnownOnly collects unknown arguments instead of failing.
	KnownOnly bool

	// Output receives help output. It defaults to os.Stdout.
	Output io.Writer
}

// Result is the outcome of a successful parse.
type Result struct {
	// Values maps every argument name to its value: parsed from the command
	// line or, when absent there, the schema default.
	Values map[string]any

	// Extra holds the unknown tokens in command-line order.
	Extra []string
}

// Parse parses args against s. Unknown arguments are an error unless the parser
// or the schema tolerate them.
func (p *Parser) Parse(s *schema.Schema, args []string) (*Result, error) {
	fs, values := p.flagSet(s)

	known, extra, help, err := partition(values, args)

	switch {
	case help:
		p.usage(fs)
		return nil, ErrHelp
	case err != nil:
		return nil, err
	}

	if err := fs.Parse(known); err != nil {
		return nil, conversionError(values, err)
	}

	var missing []string

	res := &Result{
		Values: make(map[string]any, len(s.Specs)),
		Extra:  extra,
	}

	for _, spec := range s.Specs {
		v := values[spec.Name]

		switch {
		case v.set:
			res.Values[spec.Name] = v.parsed
		case spec.Required:
			missing = append(missing, spec.Flag)
		default:
			res.Values[spec.Name] = spec.Default
		}
	}

	if len(missing) > 0 {
		return nil, &MissingRequiredError{Flags: missing}
	}

	if len(extra) > 0 && !p.KnownOnly && !s.TolerateUnknown {
		return nil, &UnrecognizedArgumentsError{Args: extra}
	}

	return res, nil
}

// partition splits args into tokens for the flag set, rewritten to the
// "--name=value" form, and unknown tokens.
func partition(values map[string]*value, args []string) ([]string, []string, bool, error) {
	var (
		known []string
		extra []string
		help  bool
	)

	_, helpIsArg := values["help"]

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if arg == "--" {
			extra = append(extra, args[i+1:]...)
			break
		}

		if arg == "-h" || (arg == "--help" && !helpIsArg) {
			help = true
			continue
		}

		name, _, hasValue := strings.Cut(strings.TrimPrefix(arg, schema.FlagPrefix), "=")

		v, ok := values[name]
		if !strings.HasPrefix(arg, schema.FlagPrefix) || !ok {
			extra = append(extra, arg)
			continue
		}

		switch {
		case hasValue, v.kind == kindSwitch:
			known = append(known, arg)

		case v.kind == kindSlice:
			n := 0
			for i+1 < len(args) && !isFlag(args[i+1]) {
				i++
				n++

				known = append(known, v.spec.Flag+"="+args[i])
			}

			if n == 0 {
				known = append(known, v.spec.Flag+"=")
			}

		case i+1 < len(args) && !isFlag(args[i+1]):
			i++

			known = append(known, arg+"="+args[i])

		default:
			return nil, nil, false, fmt.Errorf("%w: argument %s: expected one argument", ErrInvalidArgument, v.spec.Flag)
		}
	}

	return known, extra, help, nil
}

// flagSet registers one flag per argument spec.
func (p *Parser) flagSet(s *schema.Schema) (*pflag.FlagSet, map[string]*value) {
	values := make(map[string]*value, len(s.Specs))

	fs := pflag.NewFlagSet(p.program(), pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false
	fs.SetInterspersed(true)

	for _, spec := range s.Specs {
		v := newValue(spec, p.ExplicitBool)
		values[spec.Name] = v

		usage := spec.Help
		if spec.Required {
			usage = strings.TrimSpace(usage + " (required)")
		}

		fs.Var(v, spec.Name, usage)

		// A bare switch flips the default.
		if v.kind == kindSwitch {
			flag := fs.Lookup(spec.Name)

			flag.NoOptDefVal = "true"
			if b, ok := spec.Default.(bool); ok && b {
				flag.NoOptDefVal = "false"
			}
		}
	}

	return fs, values
}

func isFlag(arg string) bool {
	return arg == "-h" || arg == "--" || (strings.HasPrefix(arg, schema.FlagPrefix) && len(arg) > len(schema.FlagPrefix))
}

// conversionError prefers the typed error recorded by a value over pflag's
// flattened message.
func conversionError(values map[string]*value, err error) error {
	for _, v := range values {
		if v.err != nil {
			return v.err
		}
	}

	if errors.Is(err, pflag.ErrHelp) {
		return ErrHelp
	}

	return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
}

func (p *Parser) program() string {
	if p.Program != "" {
		return p.Program
	}

	return "tapify"
}

func (p *Parser) output() io.Writer {
	if p.Output != nil {
		return p.Output
	}

	return os.Stdout
}
