package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/NF-coder/tap-modified/lib/schema"
	"github.com/NF-coder/tap-modified/lib/tapify"
)

type commandDescription struct {
	Name             string                `json:"name"                        yaml:"name"`
	Description      string                `json:"description,omitempty"       yaml:"description,omitempty"`
	Arguments        []argumentDescription `json:"arguments"                   yaml:"arguments"`
	KeywordParameter string                `json:"keyword_parameter,omitempty" yaml:"keyword_parameter,omitempty"`
}

type argumentDescription struct {
	Name     string `json:"name"              yaml:"name"`
	Flag     string `json:"flag"              yaml:"flag"`
	Type     string `json:"type"              yaml:"type"`
	Required bool   `json:"required"          yaml:"required"`
	Default  string `json:"default,omitempty" yaml:"default,omitempty"`
	Source   string `json:"source"            yaml:"source"`
	Help     string `json:"help,omitempty"    yaml:"help,omitempty"`
}

// newDescribeCommand returns a command printing the arguments derived for a
// callable, including defaults taken from the configuration.
func (r *rootCommand) newDescribeCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "describe <command>",
		Short: "Describe the arguments of a command",
		Long:  "Print the arguments derived for a command: type, default and where the default comes from.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := r.lookup(args[0])
			if err != nil {
				return err
			}

			s, doc, err := tapify.Describe(c, r.options(c)...)
			if err != nil {
				return fmt.Errorf("%s: %w", c.Name(), err)
			}

			return writeDescription(cmd.OutOrStdout(), format, describeSchema(c.Name(), doc.Description(), s))
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", "text", "Output format: text, json or yaml")

	return cmd
}

func describeSchema(name, description string, s *schema.Schema) commandDescription {
	d := commandDescription{
		Name:             name,
		Description:      description,
		Arguments:        make([]argumentDescription, 0, len(s.Specs)),
		KeywordParameter: s.VarKeyword,
	}

	for _, spec := range s.Specs {
		arg := argumentDescription{
			Name:     spec.Name,
			Flag:     spec.Flag,
			Type:     spec.Type.String(),
			Required: spec.Required,
			Source:   spec.Source.String(),
			Help:     spec.Help,
		}

		if spec.HasDefault && spec.Default != nil {
			if v, err := cast.ToStringE(spec.Default); err == nil {
				arg.Default = v
			} else {
				arg.Default = fmt.Sprint(spec.Default)
			}
		}

		d.Arguments = append(d.Arguments, arg)
	}

	return d
}

func writeDescription(w io.Writer, format string, d commandDescription) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(d)

	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(d); err != nil {
			return err
		}

		return enc.Close()

	case "text":
		if d.Description != "" {
			fmt.Fprintf(w, "%s\n\n", d.Description)
		}

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "FLAG\tTYPE\tDEFAULT\tSOURCE\tHELP")

		for _, a := range d.Arguments {
			def := a.Default
			if a.Required {
				def = "(required)"
			}

			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", a.Flag, a.Type, def, a.Source, a.Help)
		}

		if d.KeywordParameter != "" {
			fmt.Fprintf(tw, "--<any>\tstring\t\t\tcollected into %s\n", d.KeywordParameter)
		}

		return tw.Flush()

	default:
		return fmt.Errorf("%w: unknown output format %q, want %s", ErrConfig, format, strings.Join([]string{"text", "json", "yaml"}, ", "))
	}
}
