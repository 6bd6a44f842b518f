package callable

import (
	"strings"
	"unicode"
)

// toSnakeCase converts a CamelCase string to snake_case.
func toSnakeCase(s string) string {
	var result strings.Builder

	// Special case for "IDs", which we want to convert to "_ids", not "_i_ds".
	if strings.HasSuffix(s, "IDs") {
		s = s[:len(s)-3] + "Ids"
	}

	for i, r := range s {
		// Start a new word at an upper case letter that follows a lower case
		// letter, or that ends an acronym ("HTTPServer" -> "http_server").
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(rune(s[i-1])) ||
				(i < len(s)-1 && unicode.IsLower(rune(s[i+1])))) {
				result.WriteRune('_')
			}
		}

		result.WriteRune(unicode.ToLower(r))
	}

	return result.String()
}
