// Package dict compiles sorted word lists into letter tries and into the compact
// front-coded dictionary format, and loads that format back into a trie.
//
// A compiled dictionary is the 7-byte Magic header followed by one token group per
// word, in sorted order:
//
//	N suffix   drop the last N letters of the previous word, then append suffix
//	* suffix   keep the whole previous word, then append suffix
//
// Both token kinds also mean "the previous word ends here". The last word has no
// terminating token. Words must not be empty and must not contain digits or '*',
// since those bytes are the format's only delimiters.
package dict

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"crosswarped.com/wordbrain/pkg/trie"
)

// Magic identifies a compiled dictionary.
const Magic = "vdkD1c7"

var (
	// ErrUnsorted is returned when a word is not strictly greater than the one before it.
	ErrUnsorted = errors.New("word list is not sorted")
	// ErrInvalidWord is returned for words the compiled format cannot represent.
	ErrInvalidWord = errors.New("invalid word")
	// ErrFormat is returned when a compiled dictionary is malformed.
	ErrFormat = errors.New("invalid compiled dictionary")
)

func validWord(word string) error {
	if word == "" {
		return fmt.Errorf("%w: empty word", ErrInvalidWord)
	}
	if i := strings.IndexFunc(word, func(r rune) bool {
		return r == rune(trie.End) || (r >= '0' && r <= '9')
	}); i >= 0 {
		return fmt.Errorf("%w: %q contains %q", ErrInvalidWord, word, word[i])
	}
	return nil
}

// commonPrefix returns the length of the longest common prefix of prev and word,
// failing unless word sorts strictly after prev.
func commonPrefix(prev, word string) (int, error) {
	i := 0
	for i < len(prev) && i < len(word) && prev[i] == word[i] {
		i++
	}
	switch {
	case i == len(word):
		// Duplicate, or word is a prefix of prev.
		return 0, fmt.Errorf("%w: %q after %q", ErrUnsorted, word, prev)
	case i < len(prev) && word[i] < prev[i]:
		return 0, fmt.Errorf("%w: %q after %q", ErrUnsorted, word, prev)
	}
	return i, nil
}

// Build returns a trie holding words, which must be sorted and free of duplicates.
//
// It returns the number of words inserted. On error no trie is returned.
func Build(words iter.Seq[string], capacity int) (*trie.Trie, int, error) {
	t := trie.New(capacity)
	prev := ""
	count := 0
	for word := range words {
		if err := validWord(word); err != nil {
			return nil, 0, err
		}
		if _, err := commonPrefix(prev, word); err != nil {
			return nil, 0, err
		}
		if err := t.Insert(word); err != nil {
			return nil, 0, fmt.Errorf("inserting %q: %w", word, err)
		}
		prev = word
		count++
	}
	return t, count, nil
}
