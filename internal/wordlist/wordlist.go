// Package wordlist reads the plain word lists dictionaries are compiled from.
package wordlist

import (
	"bufio"
	"context"
	"io"
	"strings"
)

// Read returns the words of r, one per line. Surrounding whitespace is trimmed and
// blank lines are skipped. Every other line is a word.
//
// Words are returned in file order: sorting is the caller's contract, checked when
// the words are compiled.
func Read(ctx context.Context, r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" {
			continue
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		words = append(words, word)
	}
	return words, scanner.Err()
}
