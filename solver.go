package wordbrain

import (
	"fmt"
	"iter"

	"crosswarped.com/wordbrain/pkg/trie"
)

// Puzzle is a board together with the lengths of the words to find on it, in order.
// Build one with NewPuzzle. The zero Puzzle has no solutions.
type Puzzle struct {
	board     Board
	wordSizes []int
}

// NewPuzzle validates a puzzle given as board rows and word lengths.
//
// The word lengths must add up to the number of cells, since every letter is used
// exactly once.
func NewPuzzle(rows []string, wordSizes []int) (*Puzzle, error) {
	board, err := NewBoard(rows)
	if err != nil {
		return nil, err
	}
	if len(wordSizes) == 0 {
		return nil, fmt.Errorf("%w: no word lengths", ErrUsage)
	}

	total := 0
	for i, n := range wordSizes {
		if n <= 0 {
			return nil, fmt.Errorf("%w: word %d has length %d", ErrUsage, i+1, n)
		}
		total += n
	}
	if area := board.Size() * board.Size(); total != area {
		return nil, fmt.Errorf("%w: word lengths add up to %d, but the board has %d letters", ErrUsage, total, area)
	}

	return &Puzzle{
		board:     board,
		wordSizes: append([]int(nil), wordSizes...),
	}, nil
}

func (p *Puzzle) Board() Board {
	return p.board
}

// WordSizes returns a copy of the word lengths, in search order.
func (p *Puzzle) WordSizes() []int {
	return append([]int(nil), p.wordSizes...)
}

// Reporter receives each solution. Returning false stops the search.
type Reporter func(Solution) bool

// Solver finds every solution of a puzzle against a dictionary.
//
// The dictionary is only read, so one trie may back any number of solvers.
type Solver struct {
	dict   *trie.Trie
	puzzle *Puzzle
}

func NewSolver(dict *trie.Trie, puzzle *Puzzle) *Solver {
	return &Solver{dict: dict, puzzle: puzzle}
}

// Solutions returns a sequence of every solution, in search order.
func (s *Solver) Solutions() iter.Seq[Solution] {
	return func(yield func(Solution) bool) {
		if s.puzzle == nil || len(s.puzzle.wordSizes) == 0 {
			return
		}
		newSearch(s.dict, s.puzzle, yield).findWords(0)
	}
}

// Solve calls report for each solution and returns how many were reported.
func (s *Solver) Solve(report Reporter) int {
	count := 0
	for sol := range s.Solutions() {
		count++
		if !report(sol) {
			break
		}
	}
	return count
}

// step is one traced letter of the word being searched for.
type step struct {
	node trie.NodeID
	x, y int
}

// searchState is the search for one word of the puzzle.
type searchState struct {
	board Board
	seen  Mask
	path  []step
}

// search holds one state per word. states[d+1] is rebuilt from states[d] by gravity
// every time a word of the right length is traced at depth d.
type search struct {
	dict      *trie.Trie
	size      int
	wordSizes []int
	states    []searchState
	yield     func(Solution) bool
}

func newSearch(dict *trie.Trie, p *Puzzle, yield func(Solution) bool) *search {
	size := p.board.Size()
	se := &search{
		dict:      dict,
		size:      size,
		wordSizes: p.wordSizes,
		states:    make([]searchState, len(p.wordSizes)),
		yield:     yield,
	}
	for d := range se.states {
		se.states[d].path = make([]step, 0, size*size)
	}
	se.states[0].board = p.board
	se.states[0].seen = p.board.Holes()
	return se
}

// neighbours lists the offsets tried from each cell, in order.
var neighbours = [8]struct{ dx, dy int }{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-1, -1}, {-1, 1}, {1, -1}, {1, 1},
}

// findWords starts a trace from every cell of the board at depth d.
// It returns false once the consumer wants no more solutions.
func (se *search) findWords(d int) bool {
	st := &se.states[d]
	for x := range se.size {
		for y := range se.size {
			st.path = st.path[:0]
			if !se.visit(d, x, y, trie.Root) {
				return false
			}
		}
	}
	return true
}

func (se *search) visit(d, x, y int, parent trie.NodeID) bool {
	if x < 0 || y < 0 || x >= se.size || y >= se.size {
		return true
	}
	st := &se.states[d]
	if st.seen.Has(x, y) {
		return true
	}
	n, ok := se.dict.Child(parent, st.board.Letter(x, y))
	if !ok {
		return true
	}

	if len(st.path) == cap(st.path) {
		panic("traversal stack is full -- this should never happen")
	}
	st.seen.Set(x, y)
	st.path = append(st.path, step{node: n, x: x, y: y})

	defer func() {
		st.seen.Clear(x, y)
		st.path = st.path[:len(st.path)-1]
	}()

	if len(st.path) == se.wordSizes[d] && se.dict.IsWord(n) {
		if d == len(se.wordSizes)-1 {
			// Any longer trace is too long for the last word.
			return se.yield(se.solution())
		}
		next := &se.states[d+1]
		next.board, next.seen = st.board.Gravity(st.seen)
		if !se.findWords(d + 1) {
			return false
		}
	}

	for _, o := range neighbours {
		if !se.visit(d, x+o.dx, y+o.dy, n) {
			return false
		}
	}
	return true
}

// solution copies the current trace of every depth.
func (se *search) solution() Solution {
	words := make([]Word, len(se.states))
	for d := range se.states {
		st := &se.states[d]
		letters := make([]byte, len(st.path))
		cells := make([]Cell, len(st.path))
		for i, s := range st.path {
			letters[i] = se.dict.Letter(s.node)
			cells[i] = Cell{X: s.x, Y: s.y}
		}
		words[d] = Word{Letters: string(letters), Cells: cells, Board: st.board}
	}
	return Solution{Words: words}
}
