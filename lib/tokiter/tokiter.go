// Package tokiter implements iterators over command-line tokens.
package tokiter

import (
	"errors"
	"fmt"
	"iter"
)

// ErrOddTokens is returned by Pairs when the last token has no partner.
var ErrOddTokens = errors.New("odd number of tokens")

// Pair is a flag token and the value token following it.
type Pair struct {
	Key   string
	Value string
}

// Chunks yields consecutive chunks of n items. The last chunk may be shorter.
// It stops when the yield function returns false.
func Chunks[T any](items []T, n int) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		if n <= 0 {
			return
		}

		for start := 0; start < len(items); start += n {
			end := min(start+n, len(items))

			if !yield(items[start:end]) {
				return
			}
		}
	}
}

// Pairs groups tokens into consecutive key/value pairs. If the number of tokens
// is odd, the complete pairs are yielded first, followed by an error naming the
// unpaired token.
func Pairs(tokens []string) iter.Seq2[Pair, error] {
	return func(yield func(Pair, error) bool) {
		for chunk := range Chunks(tokens, 2) {
			if len(chunk) < 2 {
				yield(Pair{Key: chunk[0]}, fmt.Errorf("%w: %q has no value", ErrOddTokens, chunk[0]))
				return
			}

			if !yield(Pair{Key: chunk[0], Value: chunk[1]}, nil) {
				return
			}
		}
	}
}
