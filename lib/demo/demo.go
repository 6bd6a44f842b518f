// Package demo contains the callables served by the tapify binary.
package demo

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/NF-coder/tap-modified/lib/callable"
)

// ErrInvalidConfig is returned by ServerConfig.Init for unusable settings.
var ErrInvalidConfig = errors.New("invalid server configuration")

// Callables returns every demo callable, in the order they are listed by the
// binary.
func Callables() []callable.Callable {
	return []callable.Callable{
		Greet(),
		callable.Struct[ServerConfig](callable.Name("serve")),
		Echo(),
	}
}

const greetDoc = `Print a greeting.

The greeting is repeated count times.

Args:
    name (str): Who to greet.
    count (int): How many times to greet.
    shout: Print the greeting in upper case.
`

// Greet returns the "greet" callable: a plain function with a declared default.
func Greet() callable.Callable {
	return callable.Func("greet", greet,
		callable.Names("name", "count", "shout"),
		callable.Default("count", 3),
		callable.Default("shout", false),
		callable.Doc(greetDoc))
}

func greet(name string, count int, shout bool) (string, error) {
	if count < 0 {
		return "", fmt.Errorf("count must not be negative, got %d", count)
	}

	line := "Hello, " + name + "!"
	if shout {
		line = strings.ToUpper(line)
	}

	return strings.TrimSuffix(strings.Repeat(line+"\n", count), "\n"), nil
}

// ServerConfig is the "serve" callable: a constructor whose fields are the
// parameters. Unknown --key value pairs end up in Labels.
type ServerConfig struct {
	Addr     string                `default:":8080"`
	Timeout  time.Duration         `default:"30s"`
	MaxConns int                   `tapify:"max_conns" default:"100"`
	Verbose  bool                  `default:"false"`
	Debug    callable.OptionalBool `default:""`
	Labels   map[string]string     `tapify:",extra" json:",omitempty"`
}

// InitDoc documents the constructor.
func (*ServerConfig) InitDoc() string {
	return `Describe a server configuration.

	:param addr: Address to listen on.
	:param timeout: Request timeout, for example 10s or 1m.
	:param max_conns: Maximum number of concurrent connections.
	:param verbose: Log every request.
	:param debug: Force debug mode on or off.
	`
}

// Init validates the configuration once all fields are set.
func (c *ServerConfig) Init(_ context.Context) error {
	var errs error

	if c.Timeout <= 0 {
		errs = errors.Join(errs, fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidConfig, c.Timeout))
	}

	if c.MaxConns < 1 {
		errs = errors.Join(errs, fmt.Errorf("%w: max_conns must be at least 1, got %d", ErrInvalidConfig, c.MaxConns))
	}

	return errs
}

// Echo returns the "echo" callable: hand-declared, untyped parameters and a
// catch-all keyword parameter. It returns everything it was called with.
func Echo() callable.Callable {
	return &callable.Command{
		Use:  "echo",
		Help: "Echo the arguments back.\n\n:param message: The message.\n:param kwargs: Any other --key value pairs.",
		Parameters: []callable.Param{
			{Name: "message"},
			{Name: "prefix", Type: callable.AnyType(), Default: "", HasDefault: true},
			{Name: "kwargs", Kind: callable.VarKeyword},
		},
		Run: func(_ context.Context, kwargs map[string]any) (any, error) {
			out := maps.Clone(kwargs)
			out["message"] = fmt.Sprint(kwargs["prefix"], kwargs["message"])

			return out, nil
		},
	}
}
