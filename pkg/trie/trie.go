package trie

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"slices"
)

// End is the pseudo-letter marking that the path leading to its parent spells a complete word.
const End byte = '*'

// DefaultMaxNodes is the default arena capacity, in nodes, not counting the root.
const DefaultMaxNodes = 1_500_000

// MaxCapacity is the largest arena capacity a NodeID can address.
const MaxCapacity = math.MaxInt32

// ErrCapacity is returned when a trie needs more nodes than its arena holds.
var ErrCapacity = errors.New("too many nodes in dictionary tree")

// NodeID identifies a node in a Trie's arena.
//
// The root is always 0. Since the root is never anyone's child or sibling, 0 also
// serves as the "no link" value inside the arena.
type NodeID int32

const (
	Root NodeID = 0
	none NodeID = 0
)

type node struct {
	letter     byte
	firstChild NodeID
	next       NodeID
}

// Trie is a letter trie whose nodes live in a single fixed-capacity arena.
//
// Children of a node form a singly linked list in insertion order. Nodes are never
// freed individually; the whole arena goes away with the Trie.
type Trie struct {
	nodes    []node
	capacity int
}

// New returns an empty trie able to hold up to capacity nodes besides the root.
// Capacity is clamped to MaxCapacity.
func New(capacity int) *Trie {
	return NewWithHint(capacity, 0)
}

// NewWithHint is New, preallocating room for about hint nodes.
func NewWithHint(capacity, hint int) *Trie {
	capacity = min(max(capacity, 0), MaxCapacity)
	hint = min(max(hint, 0), capacity)
	nodes := make([]node, 1, hint+1)
	return &Trie{nodes: nodes, capacity: capacity}
}

// Len returns the number of allocated nodes, not counting the root.
func (t *Trie) Len() int {
	return len(t.nodes) - 1
}

// Cap returns the arena capacity, not counting the root.
func (t *Trie) Cap() int {
	return t.capacity
}

// Letter returns the letter carried by n. The root carries 0.
func (t *Trie) Letter(n NodeID) byte {
	return t.nodes[n].letter
}

// Child returns the child of parent carrying letter c.
func (t *Trie) Child(parent NodeID, c byte) (NodeID, bool) {
	for child := t.nodes[parent].firstChild; child != none; child = t.nodes[child].next {
		if t.nodes[child].letter == c {
			return child, true
		}
	}
	return none, false
}

// IsWord reports whether the path from the root to n spells a complete word.
//
// The end marker may sit anywhere in the sibling list, so this scans the whole list
// rather than looking only at the first child.
func (t *Trie) IsWord(n NodeID) bool {
	_, ok := t.Child(n, End)
	return ok
}

// AddLetter returns the child of parent carrying letter c, creating it if needed.
func (t *Trie) AddLetter(parent NodeID, c byte) (NodeID, error) {
	if child, ok := t.Child(parent, c); ok {
		return child, nil
	}

	child, err := t.alloc(c)
	if err != nil {
		return none, err
	}

	p := &t.nodes[parent]
	if p.firstChild == none {
		p.firstChild = child
		return child, nil
	}
	last := p.firstChild
	for t.nodes[last].next != none {
		last = t.nodes[last].next
	}
	t.nodes[last].next = child
	return child, nil
}

func (t *Trie) alloc(c byte) (NodeID, error) {
	if t.Len() >= t.capacity {
		return none, fmt.Errorf("%w: capacity is %d nodes", ErrCapacity, t.capacity)
	}
	t.nodes = append(t.nodes, node{letter: c})
	return NodeID(len(t.nodes) - 1), nil
}

// Insert adds word, followed by the end marker, to the trie.
func (t *Trie) Insert(word string) error {
	n := Root
	for i := range len(word) {
		var err error
		if n, err = t.AddLetter(n, word[i]); err != nil {
			return err
		}
	}
	_, err := t.AddLetter(n, End)
	return err
}

// Contains reports whether word was inserted as a complete word.
func (t *Trie) Contains(word string) bool {
	n := Root
	for i := range len(word) {
		var ok bool
		if n, ok = t.Child(n, word[i]); !ok {
			return false
		}
	}
	return t.IsWord(n)
}

// Children iterates over the children of n in insertion order, end markers included.
func (t *Trie) Children(n NodeID) iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		for child := t.nodes[n].firstChild; child != none; child = t.nodes[child].next {
			if !yield(child) {
				return
			}
		}
	}
}

// Words iterates over every complete word in bytewise ascending order.
func (t *Trie) Words() iter.Seq[string] {
	return func(yield func(string) bool) {
		var buf []byte
		t.walk(Root, &buf, yield)
	}
}

func (t *Trie) walk(n NodeID, buf *[]byte, yield func(string) bool) bool {
	// A word comes before its extensions, so the end marker goes first whatever
	// its byte value.
	children := slices.Collect(t.Children(n))
	slices.SortFunc(children, func(a, b NodeID) int {
		return sortKey(t.nodes[a].letter) - sortKey(t.nodes[b].letter)
	})

	for _, child := range children {
		c := t.nodes[child].letter
		if c == End {
			if len(*buf) > 0 && !yield(string(*buf)) {
				return false
			}
			continue
		}
		*buf = append(*buf, c)
		ok := t.walk(child, buf, yield)
		*buf = (*buf)[:len(*buf)-1]
		if !ok {
			return false
		}
	}
	return true
}

func sortKey(c byte) int {
	if c == End {
		return -1
	}
	return int(c)
}
