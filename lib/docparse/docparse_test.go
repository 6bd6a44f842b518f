package docparse

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Docstring
	}{
		{
			name: "empty",
			text: "",
			want: Docstring{},
		},
		{
			name: "white space only",
			text: "  \n\t\n",
			want: Docstring{},
		},
		{
			name: "short only",
			text: "Greet someone.",
			want: Docstring{Short: "Greet someone."},
		},
		{
			name: "short and long",
			text: `Greet someone.

			The greeting is printed once per count.
			It ends with a newline.
			`,
			want: Docstring{
				Short: "Greet someone.",
				Long:  "The greeting is printed once per count.\nIt ends with a newline.",
			},
		},
		{
			name: "reST",
			text: `Greet someone.

			Longer text.

			:param name: Who to greet.
			:param int count: How many times,
			    at least one.
			:type name: str
			:returns: The greeting.
			`,
			want: Docstring{
				Short: "Greet someone.",
				Long:  "Longer text.",
				Params: []ParamDoc{
					{Name: "name", Type: "str", Description: "Who to greet."},
					{Name: "count", Type: "int", Description: "How many times, at least one."},
				},
			},
		},
		{
			name: "reST without prose",
			text: ":param name: Who to greet.",
			want: Docstring{
				Params: []ParamDoc{{Name: "name", Description: "Who to greet."}},
			},
		},
		{
			name: "epydoc",
			text: `Greet someone.

			@param name: Who to greet.
			@type name: str
			@param count: How many
			    times.
			@return: The greeting.
			`,
			want: Docstring{
				Short: "Greet someone.",
				Params: []ParamDoc{
					{Name: "name", Type: "str", Description: "Who to greet."},
					{Name: "count", Description: "How many times."},
				},
			},
		},
		{
			name: "Google",
			text: `Greet someone.

			Args:
			    name (str): Who to greet.
			    count (int, optional): How many times.
			        Defaults to three.
			    **extra: Anything else.

			Returns:
			    The greeting.
			`,
			want: Docstring{
				Short: "Greet someone.",
				Params: []ParamDoc{
					{Name: "name", Type: "str", Description: "Who to greet."},
					{Name: "count", Type: "int", Description: "How many times. Defaults to three."},
					{Name: "extra", Description: "Anything else."},
				},
			},
		},
		{
			name: "numpydoc",
			text: `Greet someone.

			Parameters
			----------
			name : str
			    Who to greet.
			x, y : float, optional
			    Coordinates.

			Returns
			-------
			str
			    The greeting.
			`,
			want: Docstring{
				Short: "Greet someone.",
				Params: []ParamDoc{
					{Name: "name", Type: "str", Description: "Who to greet."},
					{Name: "x", Type: "float", Description: "Coordinates."},
					{Name: "y", Type: "float", Description: "Coordinates."},
				},
			},
		},
		{
			name: "malformed fields are ignored",
			text: `Short.

			:param: missing name
			:raises ValueError: when things break
			`,
			want: Docstring{Short: "Short."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.text)

			if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDescription(t *testing.T) {
	tests := []struct {
		doc  Docstring
		want string
	}{
		{Docstring{}, ""},
		{Docstring{Short: "a"}, "a"},
		{Docstring{Long: "b"}, "b"},
		{Docstring{Short: "a", Long: "b"}, "a\nb"},
	}

	for _, tt := range tests {
		if got := tt.doc.Description(); got != tt.want {
			t.Errorf("%+v.Description() = %q, want %q", tt.doc, got, tt.want)
		}
	}
}

func TestParamHelpIsOrderIndependent(t *testing.T) {
	a := Parse(":param x: first\n:param y: second").ParamHelp()
	b := Parse(":param y: second\n:param x: first").ParamHelp()

	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("ParamHelp() depends on order (-a +b):\n%s", diff)
	}

	if a["x"] != "first" || a["y"] != "second" {
		t.Errorf("ParamHelp() = %v", a)
	}
}
