package mcptool

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/mark3labs/mcp-go/mcp"
)

func newToolResultJSON(v any) (*mcp.CallToolResult, error) {
	// If v is a slice and v is nil, we return "[]" (indicating an empty slice) rather than "null".
	if value := reflect.ValueOf(v); value.Kind() == reflect.Slice && value.IsNil() {
		return mcp.NewToolResultText("[]"), nil
	}

	// Strings are returned as they are.
	if s, ok := v.(string); ok {
		return mcp.NewToolResultText(s), nil
	}

	var b bytes.Buffer
	if err := json.NewEncoder(&b).Encode(v); err != nil {
		return nil, fmt.Errorf("encoding to JSON: %w", err)
	}

	return mcp.NewToolResultText(b.String()), nil
}
