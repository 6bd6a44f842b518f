package schema

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/NF-coder/tap-modified/lib/callable"
)

var cmpTypeRef = cmp.Comparer(func(a, b callable.TypeRef) bool {
	return a == b
})

var (
	stringRef = callable.TypeOf(reflect.TypeFor[string]())
	intRef    = callable.TypeOf(reflect.TypeFor[int]())
)

func TestBuild(t *testing.T) {
	params := []callable.Param{
		{Name: "name", Type: stringRef},
		{Name: "count", Type: intRef, Default: 3, HasDefault: true},
		{Name: "tag", Type: callable.AnyType()},
		{Name: "raw"},
		{Name: "rest", Kind: callable.VarKeyword},
	}

	help := map[string]string{
		"name":       "Who to greet.",
		"count":      "How many times.",
		"not_a_para": "Ignored.",
	}

	got, err := Build(params, help, nil, Options{})
	if err != nil {
		t.Fatalf("Build() unexpected error = %v", err)
	}

	want := &Schema{
		Specs: []ArgumentSpec{
			{Name: "name", Flag: "--name", Type: stringRef, Required: true, Help: "Who to greet.", Source: SourceRequired},
			{Name: "count", Flag: "--count", Type: intRef, Default: 3, HasDefault: true, Help: "How many times.", Source: SourceDeclared},
			{Name: "tag", Flag: "--tag", Type: stringRef, Required: true, Source: SourceRequired},
			{Name: "raw", Flag: "--raw", Type: callable.Unresolved(), Required: true, Source: SourceRequired},
		},
		VarKeyword:      "rest",
		TolerateUnknown: true,
	}

	if diff := cmp.Diff(want, got, cmpTypeRef); diff != "" {
		t.Errorf("Build() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildRequiredXorDefault(t *testing.T) {
	params := []callable.Param{
		{Name: "a", Type: intRef},
		{Name: "b", Type: intRef, Default: 1, HasDefault: true},
		{Name: "c", Type: intRef},
		{Name: "d", Type: callable.AnyType(), Default: nil, HasDefault: true},
	}

	s, err := Build(params, nil, map[string]any{"c": 5}, Options{})
	if err != nil {
		t.Fatalf("Build() unexpected error = %v", err)
	}

	if len(s.Specs) != len(params) {
		t.Fatalf("Build() returned %d specs, want %d", len(s.Specs), len(params))
	}

	wantRequired := map[string]bool{"a": true, "b": false, "c": false, "d": false}

	for _, spec := range s.Specs {
		if spec.Required == spec.HasDefault {
			t.Errorf("%s: Required = %v, HasDefault = %v, want exactly one set", spec.Name, spec.Required, spec.HasDefault)
		}

		if spec.Required != wantRequired[spec.Name] {
			t.Errorf("%s: Required = %v, want %v", spec.Name, spec.Required, wantRequired[spec.Name])
		}
	}
}

func TestBuildOverridePrecedence(t *testing.T) {
	params := []callable.Param{
		{Name: "count", Type: intRef, Default: 3, HasDefault: true},
		{Name: "name", Type: stringRef},
	}

	overrides := map[string]any{"count": 10, "name": "abc"}

	s, err := Build(params, nil, overrides, Options{})
	if err != nil {
		t.Fatalf("Build() unexpected error = %v", err)
	}

	count, _ := s.Lookup("count")
	if count.Default != 10 || count.Source != SourceOverride {
		t.Errorf("count: Default = %v, Source = %v, want 10 from override", count.Default, count.Source)
	}

	name, _ := s.Lookup("name")
	if name.Required || name.Default != "abc" {
		t.Errorf("name: Required = %v, Default = %v, want optional with default abc", name.Required, name.Default)
	}

	// The caller's map is left alone.
	if len(overrides) != 2 {
		t.Errorf("overrides were modified: %v", overrides)
	}
}

func TestBuildAnyPolicy(t *testing.T) {
	params := []callable.Param{{Name: "v", Type: callable.AnyType()}}

	tests := []struct {
		policy AnyPolicy
		want   callable.TypeRef
	}{
		{AnyAsString, callable.StringType()},
		{AnyKeep, callable.AnyType()},
	}

	for _, tt := range tests {
		s, err := Build(params, nil, nil, Options{AnyPolicy: tt.policy})
		if err != nil {
			t.Fatalf("Build() unexpected error = %v", err)
		}

		if got := s.Specs[0].Type; got != tt.want {
			t.Errorf("policy %d: Type = %v, want %v", tt.policy, got, tt.want)
		}
	}
}

func TestBuildUnknownOverrides(t *testing.T) {
	params := []callable.Param{{Name: "name", Type: stringRef}}
	overrides := map[string]any{"zeta": 1, "alpha": 2, "name": "x"}

	tests := []struct {
		name        string
		params      []callable.Param
		opts        Options
		wantErr     bool
		wantDropped []string
	}{
		{
			name:    "strict",
			params:  params,
			wantErr: true,
		},
		{
			name:        "known only",
			params:      params,
			opts:        Options{KnownOnly: true},
			wantDropped: []string{"alpha", "zeta"},
		},
		{
			name:        "keyword parameter",
			params:      append(append([]callable.Param(nil), params...), callable.Param{Name: "rest", Kind: callable.VarKeyword}),
			wantDropped: []string{"alpha", "zeta"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Build(tt.params, nil, overrides, tt.opts)

			if tt.wantErr {
				var unknownErr *UnknownArgumentError
				if !errors.As(err, &unknownErr) {
					t.Fatalf("Build() error = %v, want *UnknownArgumentError", err)
				}

				if !errors.Is(err, ErrUnknownArgument) {
					t.Errorf("Build() error = %v, want ErrUnknownArgument", err)
				}

				if diff := cmp.Diff([]string{"alpha", "zeta"}, unknownErr.Names); diff != "" {
					t.Errorf("Names mismatch (-want +got):\n%s", diff)
				}

				return
			}

			if err != nil {
				t.Fatalf("Build() unexpected error = %v", err)
			}

			if diff := cmp.Diff(tt.wantDropped, s.Dropped); diff != "" {
				t.Errorf("Dropped mismatch (-want +got):\n%s", diff)
			}

			// Dropped overrides have no effect on the schema.
			if len(s.Specs) != 1 || s.Specs[0].Default != "x" {
				t.Errorf("Specs = %+v, want only name with default x", s.Specs)
			}
		})
	}
}

func TestResolveDefault(t *testing.T) {
	tests := []struct {
		name       string
		param      callable.Param
		overrides  map[string]any
		wantSource Source
		wantValue  any
		wantLeft   int
	}{
		{
			name:       "override wins over declared",
			param:      callable.Param{Name: "x", Default: 1, HasDefault: true},
			overrides:  map[string]any{"x": 2},
			wantSource: SourceOverride,
			wantValue:  2,
		},
		{
			name:       "nil override still counts",
			param:      callable.Param{Name: "x"},
			overrides:  map[string]any{"x": nil},
			wantSource: SourceOverride,
		},
		{
			name:       "declared",
			param:      callable.Param{Name: "x", Default: 1, HasDefault: true},
			overrides:  map[string]any{"y": 2},
			wantSource: SourceDeclared,
			wantValue:  1,
			wantLeft:   1,
		},
		{
			name:       "required",
			param:      callable.Param{Name: "x"},
			overrides:  map[string]any{},
			wantSource: SourceRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source, value := resolveDefault(tt.param, tt.overrides)

			if source != tt.wantSource || value != tt.wantValue {
				t.Errorf("resolveDefault() = %v, %v, want %v, %v", source, value, tt.wantSource, tt.wantValue)
			}

			if len(tt.overrides) != tt.wantLeft {
				t.Errorf("%d overrides left, want %d", len(tt.overrides), tt.wantLeft)
			}
		})
	}
}
