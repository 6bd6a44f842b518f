package docparse

import (
	"strings"
)

// paramSections are the section titles, lower case, that list parameters.
var paramSections = map[string]bool{
	"args":              true,
	"arguments":         true,
	"parameters":        true,
	"params":            true,
	"keyword args":      true,
	"keyword arguments": true,
	"other parameters":  true,
	"attributes":        true,
}

var otherSections = map[string]bool{
	"returns":    true,
	"return":     true,
	"yields":     true,
	"yield":      true,
	"raises":     true,
	"raise":      true,
	"examples":   true,
	"example":    true,
	"note":       true,
	"notes":      true,
	"warning":    true,
	"warnings":   true,
	"see also":   true,
	"references": true,
	"todo":       true,
}

func isSection(title string) bool {
	return paramSections[title] || otherSections[title]
}

// googleHeader returns the lower case title if line is a Google style section
// header such as "Args:".
func googleHeader(line string) string {
	title, ok := strings.CutSuffix(line, ":")
	if !ok {
		return ""
	}

	title = strings.ToLower(strings.TrimSpace(title))
	if !isSection(title) {
		return ""
	}

	return title
}

// numpyHeader returns the lower case title if lines[i] is a numpydoc section
// header, that is a known title underlined with dashes.
func numpyHeader(lines []string, i int) string {
	if i+1 >= len(lines) {
		return ""
	}

	underline := strings.TrimSpace(lines[i+1])
	if len(underline) < 3 || strings.Trim(underline, "-") != "" {
		return ""
	}

	title := strings.ToLower(strings.TrimSpace(lines[i]))
	if !isSection(title) {
		return ""
	}

	return title
}

func parseGoogle(lines []string) ([]string, []ParamDoc) {
	isHeader := func(i int) bool {
		return indent(lines[i]) == 0 && googleHeader(lines[i]) != ""
	}

	start := len(lines)

	for i := range lines {
		if isHeader(i) {
			start = i
			break
		}
	}

	var params []ParamDoc

	for i := start; i < len(lines); {
		title := googleHeader(lines[i])

		// The body is every following blank or indented line.
		j := i + 1
		for j < len(lines) && (strings.TrimSpace(lines[j]) == "" || indent(lines[j]) > 0) {
			j++
		}

		if paramSections[title] {
			params = append(params, googleItems(lines[i+1:j])...)
		}

		// Skip stray text until the next header.
		for i = j; i < len(lines) && !isHeader(i); i++ {
		}
	}

	return lines[:start], params
}

// googleItems reads "name (type): description" items. Lines indented deeper
// than the first item continue the description.
func googleItems(body []string) []ParamDoc {
	itemIndent := -1

	var params []ParamDoc

	for _, line := range body {
		if strings.TrimSpace(line) == "" {
			continue
		}

		if itemIndent < 0 {
			itemIndent = indent(line)
		}

		if indent(line) > itemIndent && len(params) > 0 {
			last := &params[len(params)-1]
			last.Description = joinText([]string{last.Description, line})

			continue
		}

		head, text, _ := strings.Cut(strings.TrimSpace(line), ":")

		name, typ := head, ""
		if open := strings.Index(head, "("); open >= 0 && strings.HasSuffix(head, ")") {
			name = head[:open]
			typ = head[open+1 : len(head)-1]
		}

		params = append(params, ParamDoc{
			Name:        strings.TrimLeft(strings.TrimSpace(name), "*"),
			Type:        cleanType(typ),
			Description: strings.TrimSpace(text),
		})
	}

	return params
}

func parseNumpy(lines []string) ([]string, []ParamDoc) {
	start := len(lines)

	for i := range lines {
		if numpyHeader(lines, i) != "" {
			start = i
			break
		}
	}

	var params []ParamDoc

	for i := start; i < len(lines); {
		title := numpyHeader(lines, i)

		j := i + 2
		for j < len(lines) && numpyHeader(lines, j) == "" {
			j++
		}

		if paramSections[title] {
			params = append(params, numpyItems(lines[i+2:j])...)
		}

		i = j
	}

	return lines[:start], params
}

// numpyItems reads "name : type" lines followed by indented description lines.
// "x, y : int" documents both x and y.
func numpyItems(body []string) []ParamDoc {
	var (
		params []ParamDoc
		group  int
	)

	for _, line := range body {
		if strings.TrimSpace(line) == "" {
			continue
		}

		if indent(line) > 0 {
			for k := group; k < len(params); k++ {
				params[k].Description = joinText([]string{params[k].Description, line})
			}

			continue
		}

		names, typ, _ := strings.Cut(line, ":")
		group = len(params)

		for _, name := range strings.Split(names, ",") {
			if name = strings.TrimLeft(strings.TrimSpace(name), "*"); name != "" {
				params = append(params, ParamDoc{Name: name, Type: cleanType(typ)})
			}
		}
	}

	return params
}

// cleanType drops the ", optional" marker from a type description.
func cleanType(typ string) string {
	typ = strings.TrimSpace(typ)
	typ = strings.TrimSuffix(typ, ", optional")
	typ = strings.TrimSuffix(typ, ",optional")

	if typ == "optional" {
		return ""
	}

	return typ
}
