package wordbrain

import (
	"errors"
	"fmt"
	"strings"

	"crosswarped.com/wordbrain/pkg/trie"
)

// MaxSize is the largest supported board side. A row of the consumed mask must fit in a uint8.
const MaxSize = 7

// Hole marks a cell whose letter has been used up.
const Hole byte = ' '

var (
	// ErrUsage is returned for malformed puzzles.
	ErrUsage = errors.New("invalid puzzle")
	// ErrBoardTooLarge is returned for boards wider than MaxSize.
	ErrBoardTooLarge = errors.New("board too large")
)

// Mask has one bit per cell, bit x of row y standing for cell (x, y).
type Mask [MaxSize]uint8

func (m *Mask) Has(x, y int) bool {
	return m[y]&(1<<x) != 0
}

func (m *Mask) Set(x, y int) {
	m[y] |= 1 << x
}

func (m *Mask) Clear(x, y int) {
	m[y] &^= 1 << x
}

// Board is a square grid of letters, with Hole for empty cells.
type Board struct {
	size  int
	cells [MaxSize * MaxSize]byte
}

// NewBoard builds a board from its rows, top to bottom.
func NewBoard(rows []string) (Board, error) {
	size := len(rows)
	if size == 0 {
		return Board{}, fmt.Errorf("%w: no rows", ErrUsage)
	}
	if size > MaxSize {
		return Board{}, fmt.Errorf("%w: side %d is over the maximum of %d", ErrBoardTooLarge, size, MaxSize)
	}

	b := Board{size: size}
	for y, row := range rows {
		if len(row) != size {
			return Board{}, fmt.Errorf("%w: row %d (%q) has %d letters, want %d", ErrUsage, y+1, row, len(row), size)
		}
		for x := range size {
			c := row[x]
			if c == Hole || c == trie.End {
				return Board{}, fmt.Errorf("%w: row %d (%q) contains %q", ErrUsage, y+1, row, c)
			}
			b.cells[y*size+x] = c
		}
	}
	return b, nil
}

// ParseBoard builds a board of the given side from its letters in row-major order.
func ParseBoard(letters string, size int) (Board, error) {
	if size <= 0 || len(letters) != size*size {
		return Board{}, fmt.Errorf("%w: %d letters do not make a %dx%d board", ErrUsage, len(letters), size, size)
	}
	rows := make([]string, size)
	for y := range size {
		rows[y] = letters[y*size : (y+1)*size]
	}
	return NewBoard(rows)
}

func (b Board) Size() int {
	return b.size
}

// Letter returns the letter at column x, row y.
func (b Board) Letter(x, y int) byte {
	return b.cells[y*b.size+x]
}

// Holes returns the mask of empty cells.
func (b Board) Holes() Mask {
	var m Mask
	for y := range b.size {
		for x := range b.size {
			if b.Letter(x, y) == Hole {
				m.Set(x, y)
			}
		}
	}
	return m
}

// Gravity returns the board left once the consumed cells are emptied and every
// remaining letter has fallen as far down its column as it can.
//
// The returned mask marks the holes, so a search on the new board treats them as
// already used.
func (b Board) Gravity(consumed Mask) (Board, Mask) {
	next := Board{size: b.size}
	var holes Mask
	for x := range b.size {
		j := b.size - 1
		for y := b.size - 1; y >= 0; y-- {
			c := b.Letter(x, y)
			if c == Hole || consumed.Has(x, y) {
				continue
			}
			next.cells[j*b.size+x] = c
			j--
		}
		for ; j >= 0; j-- {
			next.cells[j*b.size+x] = Hole
			holes.Set(x, j)
		}
	}
	return next, holes
}

// Rows returns the board rows, top to bottom.
func (b Board) Rows() []string {
	rows := make([]string, b.size)
	for y := range b.size {
		rows[y] = string(b.cells[y*b.size : (y+1)*b.size])
	}
	return rows
}

func (b Board) Repr() string {
	return strings.Join(b.Rows(), "\n")
}

func (b Board) DebugString() string {
	return fmt.Sprintf("Board{size: %d, rows: %q}", b.size, b.Rows())
}
