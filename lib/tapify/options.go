package tapify

import (
	"io"
	"maps"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/NF-coder/tap-modified/lib/schema"
)

// Option configures Tapify and Describe.
type Option func(*config)

type config struct {
	args    []string
	argsSet bool

	knownOnly    bool
	explicitBool bool
	overrides    map[string]any
	anyPolicy    schema.AnyPolicy

	logger  logrus.FieldLogger
	output  io.Writer
	program string
}

func newConfig(opts []Option) *config {
	cfg := &config{
		overrides: make(map[string]any),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		cfg.logger = l
	}

	if cfg.output == nil {
		cfg.output = os.Stdout
	}

	return cfg
}

func (c *config) arguments() []string {
	if c.argsSet {
		return c.args
	}

	return os.Args[1:]
}

// WithArgs sets the command-line tokens to parse. The default is os.Args[1:].
func WithArgs(args []string) Option {
	return func(c *config) {
		c.args = args
		c.argsSet = true
	}
}

// KnownOnly tolerates unknown override values and command-line arguments.
// Unknown command-line arguments are still folded into a keyword parameter.
func KnownOnly(knownOnly bool) Option {
	return func(c *config) {
		c.knownOnly = knownOnly
	}
}

// ExplicitBool requires boolean arguments to be given an explicit value.
func ExplicitBool(explicitBool bool) Option {
	return func(c *config) {
		c.explicitBool = explicitBool
	}
}

// WithOverrides replaces declared defaults. Command-line values still win.
// The map is copied.
func WithOverrides(overrides map[string]any) Option {
	return func(c *config) {
		maps.Copy(c.overrides, overrides)
	}
}

// WithOverride replaces the declared default of a single parameter.
func WithOverride(name string, value any) Option {
	return func(c *config) {
		c.overrides[name] = value
	}
}

// WithAnyPolicy selects how parameters declared as "any" are typed.
func WithAnyPolicy(policy schema.AnyPolicy) Option {
	return func(c *config) {
		c.anyPolicy = policy
	}
}

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithOutput sets where help output goes. The default is os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		c.output = w
	}
}

// WithProgram sets the program name shown in usage output. The default is the
// callable's name.
func WithProgram(name string) Option {
	return func(c *config) {
		c.program = name
	}
}
