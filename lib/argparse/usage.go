package argparse

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"github.com/NF-coder/tap-modified/lib/schema"
)

// usage writes the help text: a usage line, the description and the flag list.
func (p *Parser) usage(fs *pflag.FlagSet) {
	w := p.output()

	fmt.Fprintf(w, "usage: %s\n", usageLine(p.program(), fs))

	if p.Description != "" {
		fmt.Fprintf(w, "\n%s\n", p.Description)
	}

	fmt.Fprintf(w, "\noptions:\n  -h, --help    show this help message and exit\n")
	writeFlags(w, fs)
}

// Usage returns the help text for s.
func (p *Parser) Usage(s *schema.Schema) string {
	var sb strings.Builder

	fs, _ := p.flagSet(s)

	q := *p
	q.Output = &sb
	q.usage(fs)

	return sb.String()
}

func usageLine(program string, fs *pflag.FlagSet) string {
	parts := []string{program, "[-h]"}

	fs.VisitAll(func(f *pflag.Flag) {
		part := "--" + f.Name
		if f.NoOptDefVal == "" || f.Value.Type() != "bool" {
			part += " " + strings.ToUpper(f.Name)
		}

		if !strings.HasSuffix(f.Usage, "(required)") {
			part = "[" + part + "]"
		}

		parts = append(parts, part)
	})

	return strings.Join(parts, " ")
}

func writeFlags(w io.Writer, fs *pflag.FlagSet) {
	if s := fs.FlagUsages(); s != "" {
		io.WriteString(w, s) //nolint:errcheck // Best effort help output.
	}
}
