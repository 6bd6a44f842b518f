package cmd

import (
	"fmt"
	"slices"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/NF-coder/tap-modified/lib/build"
	"github.com/NF-coder/tap-modified/lib/mcptool"
)

// newMCPCommand returns a command serving the callables as MCP tools over
// standard input and output.
func (r *rootCommand) newMCPCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the commands as MCP tools",
		Long:  "Start an MCP server on standard input and output that offers every command as a tool.",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := r.newMCPServer()
			if err != nil {
				return err
			}

			// Start the server
			if err := server.ServeStdio(s); err != nil {
				return fmt.Errorf("ServeStdio: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().StringSlice("tools", nil, "Comma separated list of commands to serve, defaults to all")
	_ = r.viper.BindPFlag("mcp_tools", cmd.Flags().Lookup("tools"))

	return cmd
}

// newMCPServer returns an MCP server with one tool per selected callable.
func (r *rootCommand) newMCPServer() (*server.MCPServer, error) {
	s := server.NewMCPServer(
		"tapify",
		build.Version(),
		server.WithToolCapabilities(false),
		server.WithLogging(),
		server.WithRecovery(),
	)

	for _, name := range r.config.MCPTools {
		if _, err := r.lookup(name); err != nil {
			return nil, fmt.Errorf("%w: mcp_tools: %w", ErrConfig, err)
		}
	}

	var tools []server.ServerTool

	for _, c := range r.callables {
		if len(r.config.MCPTools) > 0 && !slices.Contains(r.config.MCPTools, c.Name()) {
			continue
		}

		tool, err := mcptool.NewTool(c, r.options(c)...)
		if err != nil {
			return nil, err
		}

		tools = append(tools, tool)
		r.logger.WithField("tool", c.Name()).Debug("Registered MCP tool")
	}

	s.AddTools(tools...)

	return s, nil
}
