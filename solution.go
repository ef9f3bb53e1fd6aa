package wordbrain

import (
	"strings"
)

// Cell is a board position: column X, row Y, with (0, 0) at the top left.
type Cell struct {
	X, Y int
}

// Word is one word of a solution, as traced on the board it was found on.
type Word struct {
	Letters string
	Cells   []Cell // Cells[i] holds Letters[i]
	Board   Board
}

// Solution is a set of words, in the order they are taken off the board.
type Solution struct {
	Words []Word
}

// String returns the words joined with " + ".
func (s Solution) String() string {
	words := make([]string, len(s.Words))
	for i, w := range s.Words {
		words[i] = w.Letters
	}
	return strings.Join(words, " + ")
}

const pickOrder = "123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMN"

// Repr lays out the solution for a terminal: the words, then the board of every
// step side by side, each letter followed by its position in the word being picked.
func (s Solution) Repr() string {
	var sb strings.Builder
	sb.WriteString(strings.Repeat("*", 76))
	sb.WriteByte('\n')
	sb.WriteString(s.String())
	sb.WriteByte('\n')

	if len(s.Words) == 0 {
		return sb.String()
	}

	size := s.Words[0].Board.Size()
	for y := range size {
		for _, w := range s.Words {
			order := make(map[Cell]int, len(w.Cells))
			for i, c := range w.Cells {
				order[c] = i
			}
			for x := range size {
				sb.WriteByte(w.Board.Letter(x, y))
				if i, ok := order[Cell{X: x, Y: y}]; ok {
					sb.WriteByte(pickOrder[i])
				} else {
					sb.WriteByte(' ')
				}
				sb.WriteByte(' ')
			}
			sb.WriteString("    |    ")
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
