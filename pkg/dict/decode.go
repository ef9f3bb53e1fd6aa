package dict

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"crosswarped.com/wordbrain/pkg/trie"
)

// Decode reads a compiled dictionary from r straight into a new trie with room for
// capacity nodes. It returns the trie and the number of words it holds.
//
// The word list is never materialized: each token moves a cursor up or down the trie.
// On error no trie is returned.
func Decode(r io.Reader, capacity int) (*trie.Trie, int, error) {
	br := bufio.NewReader(r)

	header := make([]byte, len(Magic))
	if _, err := io.ReadFull(br, header); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, 0, fmt.Errorf("%w: missing header, was it compiled with this tool?", ErrFormat)
		}
		return nil, 0, err
	}
	if string(header) != Magic {
		return nil, 0, fmt.Errorf("%w: bad header %q, was it compiled with this tool?", ErrFormat, header)
	}

	// Every stream byte creates at most one node, which bounds the arena when the
	// size is known up front.
	hint := 0
	if s, ok := r.(interface{ Size() int64 }); ok {
		hint = int(s.Size())
	}
	d := decoder{t: trie.NewWithHint(capacity, hint), cur: trie.Root}

	empty := true
	for {
		c, err := br.ReadByte()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, err
		}
		empty = false

		switch {
		case c == trie.End:
			err = d.endWord()
		case isDigit(c):
			var n int
			if n, err = d.readCount(br, c); err != nil {
				break
			}
			if err = d.endWord(); err == nil {
				err = d.rewind(n)
			}
		default:
			err = d.descend(c)
		}
		if err != nil {
			return nil, 0, err
		}
	}

	if !empty {
		if err := d.endWord(); err != nil {
			return nil, 0, err
		}
	}
	return d.t, d.words, nil
}

type decoder struct {
	t     *trie.Trie
	cur   trie.NodeID
	path  []trie.NodeID // path[i] is the node above the i-th letter of the current word
	words int
}

func (d *decoder) endWord() error {
	// The stream always opens with a '*' for the empty word before the first one.
	if d.cur == trie.Root {
		return nil
	}
	if d.t.IsWord(d.cur) {
		return nil
	}
	if _, err := d.t.AddLetter(d.cur, trie.End); err != nil {
		return err
	}
	d.words++
	return nil
}

// readCount parses the discard count starting with digit c. No valid count exceeds
// the length of the current word, which also keeps n from overflowing.
func (d *decoder) readCount(br *bufio.Reader, c byte) (int, error) {
	n := int(c - '0')
	for {
		if n > len(d.path) {
			return 0, fmt.Errorf("%w: cannot drop %d or more letters from a %d letter word", ErrFormat, n, len(d.path))
		}
		next, err := br.Peek(1)
		if err != nil || !isDigit(next[0]) {
			return n, nil
		}
		n = n*10 + int(next[0]-'0')
		_, _ = br.ReadByte()
	}
}

func (d *decoder) rewind(n int) error {
	if n < 0 || n > len(d.path) {
		return fmt.Errorf("%w: cannot drop %d letters from a %d letter word", ErrFormat, n, len(d.path))
	}
	if n == 0 {
		return nil
	}
	d.cur = d.path[len(d.path)-n]
	d.path = d.path[:len(d.path)-n]
	return nil
}

func (d *decoder) descend(c byte) error {
	next, err := d.t.AddLetter(d.cur, c)
	if err != nil {
		return err
	}
	d.path = append(d.path, d.cur)
	d.cur = next
	return nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// Load decodes a compiled dictionary and logs its size.
func Load(r io.Reader, capacity int, logger *zap.Logger) (*trie.Trie, error) {
	t, words, err := Decode(r, capacity)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded dictionary",
		zap.Int("words", words),
		zap.Int("nodes", t.Len()),
		zap.Int("capacity", t.Cap()))
	return t, nil
}
