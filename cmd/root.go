// Package cmd implements the root command for Cobra.
package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/NF-coder/tap-modified/lib/argparse"
	"github.com/NF-coder/tap-modified/lib/callable"
	"github.com/NF-coder/tap-modified/lib/schema"
	"github.com/NF-coder/tap-modified/lib/tapify"
)

// New creates a new command hierarchy for Cobra with one command per callable.
func New(callables ...callable.Callable) *cobra.Command {
	root := &rootCommand{
		viper:     newViper(),
		callables: callables,
	}

	cmd := root.command()

	for _, c := range callables {
		cmd.AddCommand(root.newCallableCommand(c))
	}

	cmd.AddCommand(
		root.newDescribeCommand(),
		root.newMCPCommand(),
		newVersionCommand(),
	)

	return cmd
}

// Execute runs cmd and returns the process exit code. An error is written to
// the command's error output.
func Execute(ctx context.Context, cmd *cobra.Command) int {
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
	}

	return ExitCode(err)
}

// ExitCode returns the process exit code for an error returned by the command
// hierarchy: 2 for command-line usage errors, 1 otherwise.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, argparse.ErrMissingRequired),
		errors.Is(err, argparse.ErrConversion),
		errors.Is(err, argparse.ErrUnrecognizedArguments),
		errors.Is(err, argparse.ErrInvalidArgument),
		errors.Is(err, schema.ErrUnknownArgument),
		errors.Is(err, tapify.ErrMalformedExtraArguments):
		return 2
	default:
		return 1
	}
}

type rootCommand struct {
	viper     *viper.Viper
	callables []callable.Callable

	config *Config
	logger *logrus.Logger
}

// command returns the root command for the CLI. Callable commands do not
// parse flags themselves, so root flags placed before the command name are
// parsed while traversing to it.
func (r *rootCommand) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tapify",
		Short: "Run functions and constructors from the command line",
		Long: "A command-line tool that derives command-line arguments from the parameters of a callable, " +
			"parses them and calls it. Every callable is also available as an MCP tool.",
		PersistentPreRunE: r.init,
		SilenceUsage:      true,
		SilenceErrors:     true,
		TraverseChildren:  true,
	}

	flags := cmd.PersistentFlags()
	flags.String("config", "", "Path to a config file (YAML, TOML or JSON)")
	flags.String("log-level", "warning", "Log level: debug, info, warning or error")
	flags.String("log-format", "text", "Log format: text or json")
	flags.Bool("known-only", false, "Ignore unknown arguments instead of failing")
	flags.Bool("explicit-bool", false, "Require an explicit value for boolean arguments")

	_ = r.viper.BindPFlag("config", flags.Lookup("config"))
	_ = r.viper.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = r.viper.BindPFlag("log_format", flags.Lookup("log-format"))
	_ = r.viper.BindPFlag("known_only", flags.Lookup("known-only"))
	_ = r.viper.BindPFlag("explicit_bool", flags.Lookup("explicit-bool"))

	return cmd
}

func (r *rootCommand) init(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(r.viper)
	if err != nil {
		return err
	}

	r.config = cfg
	r.logger = newLogger(cfg, cmd.ErrOrStderr())

	r.logger.WithFields(logrus.Fields{
		"command":    cmd.Name(),
		"config":     r.viper.ConfigFileUsed(),
		"known_only": cfg.KnownOnly,
	}).Debug("Configuration loaded")

	return nil
}

// options returns the pipeline options shared by every command for c.
func (r *rootCommand) options(c callable.Callable) []tapify.Option {
	opts := []tapify.Option{
		tapify.KnownOnly(r.config.KnownOnly),
		tapify.ExplicitBool(r.config.ExplicitBool),
		tapify.WithLogger(r.logger),
	}

	if overrides := r.config.overrides(c.Name()); len(overrides) > 0 {
		opts = append(opts, tapify.WithOverrides(overrides))
	}

	return opts
}

func (r *rootCommand) lookup(name string) (callable.Callable, error) {
	for _, c := range r.callables {
		if c.Name() == name {
			return c, nil
		}
	}

	return nil, fmt.Errorf("unknown command %q", name)
}
