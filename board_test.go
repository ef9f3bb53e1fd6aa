package wordbrain

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustBoard(t testing.TB, rows ...string) Board {
	t.Helper()
	b, err := NewBoard(rows)
	if err != nil {
		t.Fatalf("NewBoard(%q) error = %v", rows, err)
	}
	return b
}

func TestNewBoard(t *testing.T) {
	tests := []struct {
		name    string
		rows    []string
		wantErr error
	}{
		{"2x2", []string{"ab", "cd"}, nil},
		{"7x7", []string{"abcdefg", "abcdefg", "abcdefg", "abcdefg", "abcdefg", "abcdefg", "abcdefg"}, nil},
		{"no rows", nil, ErrUsage},
		{"8x8", []string{"abcdefgh", "abcdefgh", "abcdefgh", "abcdefgh", "abcdefgh", "abcdefgh", "abcdefgh", "abcdefgh"}, ErrBoardTooLarge},
		{"short row", []string{"abc", "de", "fgh"}, ErrUsage},
		{"not square", []string{"abc", "def"}, ErrUsage},
		{"hole", []string{"a ", "cd"}, ErrUsage},
		{"end marker", []string{"a*", "cd"}, ErrUsage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBoard(tt.rows)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewBoard() error = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if diff := cmp.Diff(tt.rows, b.Rows()); diff != "" {
				t.Errorf("Rows() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseBoard(t *testing.T) {
	b, err := ParseBoard("abcdefghi", 3)
	if err != nil {
		t.Fatalf("ParseBoard() error = %v", err)
	}
	if got := b.Letter(1, 2); got != 'h' {
		t.Errorf("Letter(1, 2) = %q, want 'h'", got)
	}
	if _, err := ParseBoard("abcdefgh", 3); !errors.Is(err, ErrUsage) {
		t.Errorf("ParseBoard() with 8 letters error = %v, want ErrUsage", err)
	}
}

func TestMask(t *testing.T) {
	var m Mask
	m.Set(6, 6)
	m.Set(0, 3)
	if !m.Has(6, 6) || !m.Has(0, 3) {
		t.Errorf("Has() = false after Set(), mask %v", m)
	}
	if m.Has(3, 0) {
		t.Error("Has(3, 0) = true, x and y are swapped")
	}
	m.Clear(6, 6)
	if m.Has(6, 6) {
		t.Error("Has() = true after Clear()")
	}
}

func TestGravity_NoHolesIsIdentity(t *testing.T) {
	b := mustBoard(t, "abcd", "efgh", "ijkl", "mnop")
	got, holes := b.Gravity(Mask{})
	if diff := cmp.Diff(b.Rows(), got.Rows()); diff != "" {
		t.Errorf("Gravity() mismatch (-want +got):\n%s", diff)
	}
	if holes != (Mask{}) {
		t.Errorf("Gravity() holes = %v, want none", holes)
	}
}

func TestGravity(t *testing.T) {
	tests := []struct {
		name      string
		rows      []string
		consumed  []Cell
		want      []string
		wantHoles []Cell
	}{
		{
			name:      "middle square",
			rows:      []string{"abcd", "efgh", "ijkl", "mnop"},
			consumed:  []Cell{{1, 1}, {2, 1}, {2, 2}, {1, 2}},
			want:      []string{"a  d", "e  h", "ibcl", "mnop"},
			wantHoles: []Cell{{1, 0}, {2, 0}, {1, 1}, {2, 1}},
		},
		{
			name:      "bottom row",
			rows:      []string{"dog", "cat", "bee"},
			consumed:  []Cell{{0, 2}, {1, 2}, {2, 2}},
			want:      []string{"   ", "dog", "cat"},
			wantHoles: []Cell{{0, 0}, {1, 0}, {2, 0}},
		},
		{
			name:      "scattered in one column",
			rows:      []string{"abc", "def", "ghi"},
			consumed:  []Cell{{1, 0}, {1, 2}},
			want:      []string{"a c", "d f", "gei"},
			wantHoles: []Cell{{1, 0}, {1, 1}},
		},
		{
			name:      "whole column",
			rows:      []string{"ab", "cd"},
			consumed:  []Cell{{0, 0}, {0, 1}},
			want:      []string{" b", " d"},
			wantHoles: []Cell{{0, 0}, {0, 1}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustBoard(t, tt.rows...)
			var consumed Mask
			for _, c := range tt.consumed {
				consumed.Set(c.X, c.Y)
			}

			got, holes := b.Gravity(consumed)
			if diff := cmp.Diff(tt.want, got.Rows()); diff != "" {
				t.Errorf("Gravity() mismatch (-want +got):\n%s", diff)
			}

			var wantHoles Mask
			for _, c := range tt.wantHoles {
				wantHoles.Set(c.X, c.Y)
			}
			if holes != wantHoles {
				t.Errorf("Gravity() holes = %v, want %v", holes, wantHoles)
			}
			if got.Holes() != holes {
				t.Errorf("Holes() = %v, want the mask returned by Gravity() %v", got.Holes(), holes)
			}
			if diff := cmp.Diff(tt.rows, b.Rows()); diff != "" {
				t.Errorf("Gravity() modified its input (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGravity_ColumnIndependent(t *testing.T) {
	var consumed Mask
	consumed.Set(0, 1)
	consumed.Set(1, 0)
	consumed.Set(1, 2)
	consumed.Set(2, 3)

	before := mustBoard(t, "abcd", "efgh", "ijkl", "mnop")
	// Column 1 shuffled, every other column untouched.
	after := mustBoard(t, "ancd", "ejgh", "ibkl", "mfop")

	g1, _ := before.Gravity(consumed)
	g2, _ := after.Gravity(consumed)
	for y := range 4 {
		for x := range 4 {
			if x == 1 {
				continue
			}
			if g1.Letter(x, y) != g2.Letter(x, y) {
				t.Errorf("cell (%d, %d) = %q and %q, other columns must not change", x, y, g1.Letter(x, y), g2.Letter(x, y))
			}
		}
	}
	if diff := cmp.Diff([]byte{' ', ' ', 'j', 'f'}, column(g2, 1)); diff != "" {
		t.Errorf("shuffled column mismatch (-want +got):\n%s", diff)
	}
}

func column(b Board, x int) []byte {
	col := make([]byte, b.Size())
	for y := range b.Size() {
		col[y] = b.Letter(x, y)
	}
	return col
}
