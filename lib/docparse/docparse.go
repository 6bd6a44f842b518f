// Package docparse splits documentation text into a short description, a long
// description and per-parameter descriptions.
//
// Four layouts are recognised and detected automatically:
//
// reST:
//
//	Short description.
//
//	:param name: The name.
//	:param int count: How many times.
//
// epydoc:
//
//	@param name: The name.
//	@type count: int
//
// Google:
//
//	Args:
//	    name (str): The name.
//	    count: How many times.
//
// numpydoc:
//
//	Parameters
//	----------
//	name : str
//	    The name.
//
// Parse never fails: text it does not understand ends up in the descriptions.
package docparse

import (
	"strings"
)

// ParamDoc documents a single parameter.
type ParamDoc struct {
	Name        string
	Type        string
	Description string
}

// Docstring is the parsed form of a documentation text.
type Docstring struct {
	Short  string
	Long   string
	Params []ParamDoc
}

// Description joins the short and long descriptions with a newline, skipping
// empty ones.
func (d Docstring) Description() string {
	var parts []string

	for _, s := range []string{d.Short, d.Long} {
		if s != "" {
			parts = append(parts, s)
		}
	}

	return strings.Join(parts, "\n")
}

// ParamHelp maps parameter names to their descriptions. When a name is
// documented more than once, the last description wins.
func (d Docstring) ParamHelp() map[string]string {
	help := make(map[string]string, len(d.Params))
	for _, p := range d.Params {
		help[p.Name] = p.Description
	}

	return help
}

type style int

const (
	stylePlain style = iota
	styleReST
	styleEpydoc
	styleGoogle
	styleNumpy
)

// Parse parses text. Empty text yields an empty Docstring.
func Parse(text string) Docstring {
	lines := cleanLines(text)
	if len(lines) == 0 {
		return Docstring{}
	}

	var (
		prose  []string
		params []ParamDoc
	)

	switch detect(lines) {
	case styleReST:
		prose, params = parseFields(lines, ":", restParam)
	case styleEpydoc:
		prose, params = parseFields(lines, "@", epydocParam)
	case styleGoogle:
		prose, params = parseGoogle(lines)
	case styleNumpy:
		prose, params = parseNumpy(lines)
	default:
		prose = lines
	}

	short, long := splitProse(prose)

	return Docstring{
		Short:  short,
		Long:   long,
		Params: params,
	}
}

// splitProse takes the first line as short description and the rest, trimmed,
// as long description.
func splitProse(lines []string) (string, string) {
	lines = trimBlank(lines)
	if len(lines) == 0 {
		return "", ""
	}

	short := strings.TrimSpace(lines[0])
	long := strings.Join(trimBlank(lines[1:]), "\n")

	return short, long
}

func detect(lines []string) style {
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(line, ":") && isRESTField(trimmed):
			return styleReST
		case strings.HasPrefix(line, "@") && isEpydocField(trimmed):
			return styleEpydoc
		case i+1 < len(lines) && numpyHeader(lines, i) != "":
			return styleNumpy
		case googleHeader(trimmed) != "":
			return styleGoogle
		}
	}

	return stylePlain
}

// cleanLines expands tabs, removes trailing white space and the common
// indentation of all lines but the first, like Python's inspect.cleandoc.
func cleanLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\t", "    ")

	raw := strings.Split(text, "\n")
	for i, line := range raw {
		raw[i] = strings.TrimRight(line, " ")
	}

	margin := -1

	for _, line := range raw[1:] {
		if line == "" {
			continue
		}

		if ind := indent(line); margin < 0 || ind < margin {
			margin = ind
		}
	}

	lines := make([]string, len(raw))
	lines[0] = strings.TrimSpace(raw[0])

	for i, line := range raw[1:] {
		if margin > 0 && len(line) >= margin {
			line = line[margin:]
		}

		lines[i+1] = line
	}

	return trimBlank(lines)
}

func trimBlank(lines []string) []string {
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}

	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}

func indent(line string) int {
	return len(line) - len(strings.TrimLeft(line, " "))
}

// joinText joins description lines with single spaces.
func joinText(parts []string) string {
	var words []string

	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			words = append(words, p)
		}
	}

	return strings.Join(words, " ")
}
