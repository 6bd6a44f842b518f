// Package mcptool exposes callables as MCP tools.
//
// The tool's input schema is derived exactly like the command line of
// tapify.Tapify: one property per parameter, with the parameter's help as
// description, "required" for parameters without a default and the default
// value otherwise. Tool arguments take the place of command-line input.
package mcptool

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cast"

	"github.com/NF-coder/tap-modified/lib/callable"
	"github.com/NF-coder/tap-modified/lib/schema"
	"github.com/NF-coder/tap-modified/lib/tapify"
)

// ErrMarshalArguments indicates a schema that cannot be expressed as tool options.
var ErrMarshalArguments = errors.New("failed to marshal arguments")

// ErrArgumentType is an error indicating that the argument provided is of an invalid type.
var ErrArgumentType = errors.New("invalid argument type")

// NewTool returns a ServerTool that calls c. opts are applied as for
// tapify.Describe, so overrides replace the defaults advertised by the tool.
func NewTool(c callable.Callable, opts ...tapify.Option) (server.ServerTool, error) {
	s, doc, err := tapify.Describe(c, opts...)
	if err != nil {
		return server.ServerTool{}, err
	}

	toolOpts, err := Marshal(s)
	if err != nil {
		return server.ServerTool{}, fmt.Errorf("%s: %w", c.Name(), err)
	}

	if desc := doc.Description(); desc != "" {
		toolOpts = append([]mcp.ToolOption{mcp.WithDescription(desc)}, toolOpts...)
	}

	return server.ServerTool{
		Handler: (&tool{callable: c, schema: s}).handle,
		Tool:    mcp.NewTool(c.Name(), toolOpts...),
	}, nil
}

// MustNewTool is like NewTool but panics if the tool cannot be created.
func MustNewTool(c callable.Callable, opts ...tapify.Option) server.ServerTool {
	t, err := NewTool(c, opts...)
	if err != nil {
		panic(err)
	}

	return t
}

// Marshal returns one MCP tool option per argument of s.
func Marshal(s *schema.Schema) ([]mcp.ToolOption, error) { //nolint:cyclop // One case per value type.
	var (
		toolOpts []mcp.ToolOption
		errs     error
	)

	for _, spec := range s.Specs {
		var propOpts []mcp.PropertyOption

		if spec.Help != "" {
			propOpts = append(propOpts, mcp.Description(spec.Help))
		}

		if spec.Required {
			propOpts = append(propOpts, mcp.Required())
		}

		vt := callable.ValueTypeOf(spec.Type)

		if spec.HasDefault && spec.Default != nil {
			if opt, ok := defaultOption(vt, spec.Default); ok {
				propOpts = append(propOpts, opt)
			}
		}

		switch vt {
		case callable.TypeString:
			toolOpts = append(toolOpts, mcp.WithString(spec.Name, propOpts...))
		case callable.TypeBoolean:
			toolOpts = append(toolOpts, mcp.WithBoolean(spec.Name, propOpts...))
		case callable.TypeNumber:
			toolOpts = append(toolOpts, mcp.WithNumber(spec.Name, propOpts...))
		case callable.TypeArray:
			propOpts = append(propOpts, mcp.Items(map[string]any{"type": itemType(spec.Type).String()}))
			toolOpts = append(toolOpts, mcp.WithArray(spec.Name, propOpts...))
		default:
			errs = errors.Join(errs, fmt.Errorf("%w: unsupported type %v for parameter %q", ErrMarshalArguments, vt, spec.Name))
		}
	}

	if errs != nil {
		return nil, errs
	}

	return toolOpts, nil
}

func defaultOption(vt callable.ValueType, v any) (mcp.PropertyOption, bool) {
	//nolint:exhaustive // Arrays have no default option.
	switch vt {
	case callable.TypeString:
		if s, err := cast.ToStringE(v); err == nil {
			return mcp.DefaultString(s), true
		}
	case callable.TypeNumber:
		if f, err := cast.ToFloat64E(v); err == nil {
			return mcp.DefaultNumber(f), true
		}
	case callable.TypeBoolean:
		if b, err := cast.ToBoolE(v); err == nil {
			return mcp.DefaultBool(b), true
		}
	}

	return nil, false
}

// itemType is the value type of the elements of an array argument.
func itemType(r callable.TypeRef) callable.ValueType {
	t := r.Reflect()
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t == nil || (t.Kind() != reflect.Slice && t.Kind() != reflect.Array) {
		return callable.TypeString
	}

	return callable.ValueTypeOf(callable.TypeOf(t.Elem()))
}

type tool struct {
	callable callable.Callable
	schema   *schema.Schema
}

func (t *tool) handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kwargs, err := Arguments(t.schema, request.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := t.callable.Call(ctx, kwargs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", t.callable.Name(), err)
	}

	return newToolResultJSON(result)
}
