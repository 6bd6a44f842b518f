package tapify

import (
	"errors"
	"fmt"
	"strings"

	"github.com/NF-coder/tap-modified/lib/tokiter"
)

// ErrMalformedExtraArguments indicates unknown arguments that cannot be paired
// into flag/value pairs for the keyword parameter.
var ErrMalformedExtraArguments = errors.New("malformed extra arguments")

// MalformedExtraArgumentsError reports the unknown tokens that could not be
// paired.
type MalformedExtraArgumentsError struct {
	Tokens []string
	Err    error
}

func (e *MalformedExtraArgumentsError) Error() string {
	return fmt.Sprintf("%v %q: %v", ErrMalformedExtraArguments, e.Tokens, e.Err)
}

func (e *MalformedExtraArgumentsError) Is(target error) bool {
	return target == ErrMalformedExtraArguments //nolint:errorlint,err113 // Sentinel comparison.
}

func (e *MalformedExtraArgumentsError) Unwrap() error {
	return e.Err
}

// mergeExtra pairs unknown tokens as flag/value pairs. Keys lose every leading
// "-", values are kept as given. A repeated key keeps its last value.
func mergeExtra(tokens []string) (map[string]string, error) {
	extra := make(map[string]string, len(tokens)/2)

	for pair, err := range tokiter.Pairs(tokens) {
		if err != nil {
			return nil, &MalformedExtraArgumentsError{Tokens: tokens, Err: err}
		}

		extra[strings.TrimLeft(pair.Key, "-")] = pair.Value
	}

	return extra, nil
}
