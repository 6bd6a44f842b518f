package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/NF-coder/tap-modified/lib/argparse"
	"github.com/NF-coder/tap-modified/lib/callable"
	"github.com/NF-coder/tap-modified/lib/docparse"
	"github.com/NF-coder/tap-modified/lib/tapify"
)

// newCallableCommand returns a command that runs c. Flag parsing is left to
// the tapify pipeline, which also handles -h and --help. Root flags must come
// before the command name; everything after it belongs to c.
func (r *rootCommand) newCallableCommand(c callable.Callable) *cobra.Command {
	doc := docparse.Parse(c.Doc())

	return &cobra.Command{
		Use:                c.Name() + " [--name value]...",
		Short:              doc.Short,
		Long:               doc.Description(),
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := append(r.options(c),
				tapify.WithArgs(args),
				tapify.WithOutput(cmd.OutOrStdout()),
				tapify.WithProgram(cmd.CommandPath()),
			)

			result, err := tapify.Tapify(cmd.Context(), c, opts...)
			if errors.Is(err, argparse.ErrHelp) {
				return nil
			}

			if err != nil {
				return fmt.Errorf("%s: %w", c.Name(), err)
			}

			return writeResult(cmd.OutOrStdout(), result)
		},
	}
}

// writeResult prints strings as they are and everything else as indented JSON.
func writeResult(w io.Writer, v any) error {
	switch v := v.(type) {
	case nil:
		return nil
	case string:
		_, err := fmt.Fprintln(w, v)
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding to JSON: %w", err)
	}

	return nil
}
