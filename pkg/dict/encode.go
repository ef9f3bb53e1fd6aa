package dict

import (
	"bufio"
	"io"
	"iter"
	"strconv"

	"crosswarped.com/wordbrain/pkg/trie"
)

// Encode writes words, which must be sorted and free of duplicates, to w in the
// compiled dictionary format. It returns the number of words written.
//
// Validation happens as words stream through, so on error w may hold a truncated
// dictionary.
func Encode(w io.Writer, words iter.Seq[string]) (int, error) {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(Magic); err != nil {
		return 0, err
	}

	prev := ""
	count := 0
	for word := range words {
		if err := validWord(word); err != nil {
			return count, err
		}
		i, err := commonPrefix(prev, word)
		if err != nil {
			return count, err
		}

		if i == len(prev) {
			err = bw.WriteByte(trie.End)
		} else {
			_, err = bw.WriteString(strconv.Itoa(len(prev) - i))
		}
		if err != nil {
			return count, err
		}
		if _, err := bw.WriteString(word[i:]); err != nil {
			return count, err
		}

		prev = word
		count++
	}
	return count, bw.Flush()
}

// EncodeTrie writes every word held by t to w in the compiled dictionary format.
func EncodeTrie(w io.Writer, t *trie.Trie) (int, error) {
	return Encode(w, t.Words())
}
