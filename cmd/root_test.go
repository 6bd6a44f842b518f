package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NF-coder/tap-modified/lib/argparse"
	"github.com/NF-coder/tap-modified/lib/demo"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := New(demo.Callables()...)

	var out bytes.Buffer

	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(t.Context())

	return out.String(), err
}

func TestCallableCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
		want string
	}{
		{
			name: "string result",
			args: []string{"greet", "--name", "Ada", "--count", "1"},
			want: "Hello, Ada!\n",
		},
		{
			name: "JSON result",
			args: []string{"echo", "--message", "hi", "--to", "all"},
			want: "{\n  \"kwargs\": {\n    \"to\": \"all\"\n  },\n  \"message\": \"hi\",\n  \"prefix\": \"\"\n}\n",
		},
		{
			name: "known only from environment",
			args: []string{"greet", "--name", "Ada", "--count", "1", "--bogus"},
			env:  map[string]string{"TAPIFY_KNOWN_ONLY": "true"},
			want: "Hello, Ada!\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			got, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCallableCommandRootFlags(t *testing.T) {
	path := writeFile(t, "tapify.yaml", "defaults:\n  greet:\n    count: 2\n")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "known only",
			args: []string{"--known-only", "greet", "--name", "Ada", "--count", "1", "--bogus"},
			want: "Hello, Ada!\n",
		},
		{
			name: "config file",
			args: []string{"--config", path, "greet", "--name", "Ada"},
			want: "Hello, Ada!\nHello, Ada!\n",
		},
		{
			name: "log level",
			args: []string{"--log-level", "debug", "--log-format=json", "greet", "--name", "Ada", "--count", "1"},
			want: "Hello, Ada!\n",
		},
		{
			name: "explicit bool",
			args: []string{"--explicit-bool", "greet", "--name", "Ada", "--count", "1", "--shout", "t"},
			want: "HELLO, ADA!\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	// With explicit booleans a bare switch is missing its value.
	_, err := execute(t, "--explicit-bool", "greet", "--name", "Ada", "--shout")
	require.ErrorIs(t, err, argparse.ErrInvalidArgument)

	// Tokens after the command name belong to the callable.
	_, err = execute(t, "greet", "--name", "Ada", "--known-only")
	require.ErrorIs(t, err, argparse.ErrUnrecognizedArguments)
}

func TestExecute(t *testing.T) {
	cmd := New(demo.Callables()...)

	var out, errOut bytes.Buffer

	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"greet", "--count", "1"})

	assert.Equal(t, 2, Execute(t.Context(), cmd))
	assert.Empty(t, out.String())
	assert.True(t, strings.HasPrefix(errOut.String(), "Error: greet: "), errOut.String())
	assert.Contains(t, errOut.String(), "--name")

	cmd.SetArgs([]string{"greet", "--name", "Ada", "--count", "1"})
	errOut.Reset()

	assert.Equal(t, 0, Execute(t.Context(), cmd))
	assert.Equal(t, "Hello, Ada!\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestCallableCommandConfigDefaults(t *testing.T) {
	path := writeFile(t, "tapify.yaml", "defaults:\n  greet:\n    count: 2\n")
	t.Setenv("TAPIFY_CONFIG", path)

	got, err := execute(t, "greet", "--name", "Ada")
	require.NoError(t, err)
	assert.Equal(t, "Hello, Ada!\nHello, Ada!\n", got)

	// The command line still wins.
	got, err = execute(t, "greet", "--name", "Ada", "--count", "1")
	require.NoError(t, err)
	assert.Equal(t, "Hello, Ada!\n", got)
}

func TestCallableCommandHelp(t *testing.T) {
	got, err := execute(t, "greet", "--help")
	require.NoError(t, err)

	assert.Contains(t, got, "usage: tapify greet")
	assert.Contains(t, got, "Who to greet.")
}

func TestCallableCommandErrors(t *testing.T) {
	_, err := execute(t, "greet", "--count", "1")
	require.ErrorIs(t, err, argparse.ErrMissingRequired)
	assert.Equal(t, 2, ExitCode(err))

	_, err = execute(t, "greet", "--name", "Ada", "--count", "-1")
	require.Error(t, err)
	assert.Equal(t, 1, ExitCode(err))
}

func TestDescribeCommand(t *testing.T) {
	got, err := execute(t, "describe", "greet", "-o", "json")
	require.NoError(t, err)

	var d commandDescription
	require.NoError(t, json.Unmarshal([]byte(got), &d))

	assert.Equal(t, "greet", d.Name)
	require.Len(t, d.Arguments, 3)
	assert.Equal(t, argumentDescription{
		Name:     "name",
		Flag:     "--name",
		Type:     "string",
		Required: true,
		Source:   "required",
		Help:     "Who to greet.",
	}, d.Arguments[0])
	assert.Equal(t, "3", d.Arguments[1].Default)

	got, err = execute(t, "describe", "echo", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, got, "name: echo")
	assert.Contains(t, got, "keyword_parameter: kwargs")

	got, err = execute(t, "describe", "serve")
	require.NoError(t, err)
	assert.Contains(t, got, "--max_conns")
	assert.Contains(t, got, "collected into labels")

	_, err = execute(t, "describe", "nope")
	require.Error(t, err)

	_, err = execute(t, "describe", "greet", "-o", "xml")
	require.ErrorIs(t, err, ErrConfig)
}

func TestVersionCommand(t *testing.T) {
	got, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, got, "tapify version: dev")
}

func TestNewMCPServer(t *testing.T) {
	logger, _ := logtest.NewNullLogger()

	tests := []struct {
		name    string
		tools   []string
		want    []string
		wantErr bool
	}{
		{
			name: "all",
			want: []string{"echo", "greet", "serve"},
		},
		{
			name:  "selected",
			tools: []string{"greet"},
			want:  []string{"greet"},
		},
		{
			name:    "unknown",
			tools:   []string{"nope"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &rootCommand{
				viper:     newViper(),
				callables: demo.Callables(),
				config:    &Config{LogLevel: logrus.InfoLevel, MCPTools: tt.tools},
				logger:    logger,
			}

			s, err := r.newMCPServer()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrConfig)
				return
			}

			require.NoError(t, err)

			resp := s.HandleMessage(t.Context(), []byte(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))

			b, err := json.Marshal(resp)
			require.NoError(t, err)

			var list struct {
				Result struct {
					Tools []struct {
						Name string `json:"name"`
					} `json:"tools"`
				} `json:"result"`
			}
			require.NoError(t, json.Unmarshal(b, &list))

			var got []string
			for _, tool := range list.Result.Tools {
				got = append(got, tool.Name)
			}

			assert.ElementsMatch(t, tt.want, got)
		})
	}
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(errors.New("boom")))
	assert.Equal(t, 2, ExitCode(&argparse.UnrecognizedArgumentsError{Args: []string{"x"}}))
}
