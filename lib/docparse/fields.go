package docparse

import (
	"strings"
)

var paramKeywords = map[string]bool{
	"param":     true,
	"parameter": true,
	"arg":       true,
	"argument":  true,
	"attribute": true,
	"key":       true,
	"keyword":   true,
}

func isRESTField(line string) bool {
	key, _, ok := strings.Cut(strings.TrimPrefix(line, ":"), ":")
	return ok && key != "" && !strings.HasPrefix(key, " ")
}

func isEpydocField(line string) bool {
	key, _, ok := strings.Cut(strings.TrimPrefix(line, "@"), ":")
	return ok && key != "" && !strings.HasPrefix(key, " ")
}

// parseFields handles the field-list layouts (reST and epydoc): prose up to the
// first field, then one field per line starting with marker, continued by
// indented lines.
func parseFields(lines []string, marker string, parse func(key, text string, types map[string]string) (ParamDoc, bool)) ([]string, []ParamDoc) {
	start := len(lines)

	for i, line := range lines {
		if strings.HasPrefix(line, marker) {
			start = i
			break
		}
	}

	type field struct {
		key  string
		text []string
	}

	var fields []field

	for _, line := range lines[start:] {
		if strings.HasPrefix(line, marker) {
			key, text, _ := strings.Cut(strings.TrimPrefix(line, marker), ":")
			fields = append(fields, field{key: strings.TrimSpace(key), text: []string{text}})

			continue
		}

		if len(fields) > 0 {
			last := &fields[len(fields)-1]
			last.text = append(last.text, line)
		}
	}

	// Types may be declared in separate ":type name:" / "@type name:" fields.
	types := make(map[string]string)

	for _, f := range fields {
		words := strings.Fields(f.key)
		if len(words) == 2 && words[0] == "type" {
			types[words[1]] = joinText(f.text)
		}
	}

	var params []ParamDoc

	for _, f := range fields {
		if p, ok := parse(f.key, joinText(f.text), types); ok {
			params = append(params, p)
		}
	}

	return lines[:start], params
}

// restParam reads "param name" or "param type name".
func restParam(key, text string, types map[string]string) (ParamDoc, bool) {
	words := strings.Fields(key)
	if len(words) < 2 || !paramKeywords[words[0]] {
		return ParamDoc{}, false
	}

	p := ParamDoc{
		Name:        words[len(words)-1],
		Description: text,
	}

	if len(words) > 2 {
		p.Type = strings.Join(words[1:len(words)-1], " ")
	} else {
		p.Type = types[p.Name]
	}

	return p, true
}

// epydocParam reads "param name".
func epydocParam(key, text string, types map[string]string) (ParamDoc, bool) {
	words := strings.Fields(key)
	if len(words) != 2 || !paramKeywords[words[0]] {
		return ParamDoc{}, false
	}

	return ParamDoc{
		Name:        words[1],
		Type:        types[words[1]],
		Description: text,
	}, true
}
