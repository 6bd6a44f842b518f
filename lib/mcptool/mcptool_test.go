package mcptool

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/mcptest"

	"github.com/NF-coder/tap-modified/lib/argparse"
	"github.com/NF-coder/tap-modified/lib/callable"
	"github.com/NF-coder/tap-modified/lib/schema"
	"github.com/NF-coder/tap-modified/lib/tapify"
)

type report struct {
	Title  string            `tapify:"title"`
	Pages  int               `default:"1"`
	Draft  bool              `default:"true"`
	Tags   []string          `tapify:"tags"`
	Labels map[string]string `tapify:",extra"`
}

func (report) Doc() string {
	return `Create a report.

	:param title: The title.
	:param pages: Number of pages.
	`
}

func newGreet() callable.Callable {
	return callable.Func("greet",
		func(name string, count int) []string {
			out := make([]string, count)
			for i := range out {
				out[i] = "hello " + name
			}

			return out
		},
		callable.Names("name", "count"),
		callable.Default("count", 3),
		callable.Doc("Greet someone.\n\n:param name: Who to greet."))
}

func TestMarshal(t *testing.T) {
	s, _, err := tapify.Describe(callable.Struct[report]())
	if err != nil {
		t.Fatalf("Describe() unexpected error = %v", err)
	}

	got, err := Marshal(s)
	if err != nil {
		t.Fatalf("Marshal() unexpected error = %v", err)
	}

	want := []mcp.ToolOption{
		mcp.WithString("title", mcp.Description("The title."), mcp.Required()),
		mcp.WithNumber("pages", mcp.Description("Number of pages."), mcp.DefaultNumber(1)),
		mcp.WithBoolean("draft", mcp.DefaultBool(true)),
		mcp.WithArray("tags", mcp.Required(), mcp.Items(map[string]any{"type": "string"})),
	}

	wantTool := mcp.NewTool("test_tool", want...)
	gotTool := mcp.NewTool("test_tool", got...)

	if diff := cmp.Diff(wantTool, gotTool, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Marshal() mismatch (-want +got):\n%s", diff)
	}
}

func TestNewTool(t *testing.T) {
	tool, err := NewTool(newGreet(), tapify.WithOverride("count", 2))
	if err != nil {
		t.Fatalf("NewTool() unexpected error = %v", err)
	}

	if tool.Tool.Name != "greet" {
		t.Errorf("Name = %q, want greet", tool.Tool.Name)
	}

	if tool.Tool.Description != "Greet someone." {
		t.Errorf("Description = %q, want %q", tool.Tool.Description, "Greet someone.")
	}

	if diff := cmp.Diff([]string{"name"}, tool.Tool.InputSchema.Required); diff != "" {
		t.Errorf("Required mismatch (-want +got):\n%s", diff)
	}

	count, ok := tool.Tool.InputSchema.Properties["count"].(map[string]any)
	if !ok || count["default"] != float64(2) {
		t.Errorf("count property = %v, want default 2", tool.Tool.InputSchema.Properties["count"])
	}
}

func TestNewToolErrors(t *testing.T) {
	if _, err := NewTool(callable.Func("bad", 1)); !errors.Is(err, callable.ErrSignature) {
		t.Errorf("NewTool() error = %v, want ErrSignature", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("MustNewTool() did not panic")
		}
	}()

	MustNewTool(newGreet(), tapify.WithOverride("bogus", 1))
}

func TestCallTool(t *testing.T) {
	tests := []struct {
		name              string
		args              map[string]any
		wantErrorResponse bool
		want              []string
	}{
		{
			name: "defaults",
			args: map[string]any{"name": "abc"},
			want: []string{"hello abc", "hello abc", "hello abc"},
		},
		{
			name: "numbers arrive as float",
			args: map[string]any{"name": "abc", "count": float64(1)},
			want: []string{"hello abc"},
		},
		{
			name:              "missing required",
			args:              map[string]any{"count": 1},
			wantErrorResponse: true,
		},
		{
			name:              "wrong type",
			args:              map[string]any{"name": "abc", "count": "many"},
			wantErrorResponse: true,
		},
		{
			name:              "unknown argument",
			args:              map[string]any{"name": "abc", "color": "red"},
			wantErrorResponse: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, err := mcptest.NewServer(t, MustNewTool(newGreet()))
			if err != nil {
				t.Fatalf("failed to create server: %v", err)
			}
			defer srv.Close()

			var req mcp.CallToolRequest
			req.Params.Name = "greet"
			req.Params.Arguments = tt.args

			result, err := srv.Client().CallTool(t.Context(), req)
			if err != nil {
				t.Fatalf("CallTool() unexpected error = %v", err)
			}

			if result.IsError != tt.wantErrorResponse {
				t.Errorf("unexpected inline error status, got: %v, want: %v", result.IsError, tt.wantErrorResponse)
			}

			if result.IsError {
				return
			}

			var got []string
			if err := unmarshalResult(result, &got); err != nil {
				t.Fatalf("decode error: %v", err)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("result mismatch (-want/+got):\n%s", diff)
			}
		})
	}
}

func TestCallToolKeywordParameter(t *testing.T) {
	srv, err := mcptest.NewServer(t, MustNewTool(callable.Struct[report]()))
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}
	defer srv.Close()

	var req mcp.CallToolRequest
	req.Params.Name = "report"
	req.Params.Arguments = map[string]any{
		"title": "Q3",
		"tags":  []any{"a", "b"},
		"owner": "bob",
		"year":  2024,
	}

	result, err := srv.Client().CallTool(t.Context(), req)
	if err != nil {
		t.Fatalf("CallTool() unexpected error = %v", err)
	}

	var got report
	if err := unmarshalResult(result, &got); err != nil {
		t.Fatalf("decode error: %v", err)
	}

	want := report{
		Title:  "Q3",
		Pages:  1,
		Draft:  true,
		Tags:   []string{"a", "b"},
		Labels: map[string]string{"owner": "bob", "year": "2024"},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("result mismatch (-want/+got):\n%s", diff)
	}
}

func TestArguments(t *testing.T) {
	s := &schema.Schema{
		Specs: []schema.ArgumentSpec{
			{Name: "a", Type: callable.StringType(), Required: true},
			{Name: "b", Type: callable.StringType(), Required: true},
			{Name: "v", Type: callable.AnyType(), Default: 1, HasDefault: true},
		},
	}

	_, err := Arguments(s, map[string]any{"x": 1})

	var missingErr *argparse.MissingRequiredError
	if !errors.As(err, &missingErr) {
		t.Fatalf("Arguments() error = %v, want *MissingRequiredError", err)
	}

	if diff := cmp.Diff([]string{"a", "b"}, missingErr.Flags); diff != "" {
		t.Errorf("Flags mismatch (-want +got):\n%s", diff)
	}

	if !errors.Is(err, argparse.ErrUnrecognizedArguments) {
		t.Errorf("Arguments() error = %v, want ErrUnrecognizedArguments as well", err)
	}

	s.TolerateUnknown = true

	got, err := Arguments(s, map[string]any{"a": "1", "b": 2, "v": []any{true}, "x": 1})
	if err != nil {
		t.Fatalf("Arguments() unexpected error = %v", err)
	}

	want := map[string]any{"a": "1", "b": "2", "v": []any{true}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Arguments() mismatch (-want +got):\n%s", diff)
	}
}

func unmarshalResult(res *mcp.CallToolResult, v any) error {
	s, err := resultToString(res)
	if err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(s), v); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return nil
}

func resultToString(res *mcp.CallToolResult) (string, error) {
	var b strings.Builder

	for _, c := range res.Content {
		tc, ok := mcp.AsTextContent(c)
		if !ok {
			return "", fmt.Errorf("content is not text: %T", c)
		}

		b.WriteString(tc.Text)
	}

	if res.IsError {
		return "", fmt.Errorf("tool returned error: %s", b.String())
	}

	return b.String(), nil
}
