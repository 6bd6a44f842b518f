package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NF-coder/tap-modified/lib/build"
)

// newVersionCommand returns a new Cobra command for displaying the current version of tapify.
func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Long:  "Display the current version of tapify",
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()

			fmt.Fprintf(w, "tapify version: %s\n", build.Summary())
			fmt.Fprintln(w)
			fmt.Fprintln(w, "https://github.com/NF-coder/tap-modified")

			return nil
		},
		Args: cobra.NoArgs,
	}
}
