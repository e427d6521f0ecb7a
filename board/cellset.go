package board

import (
	"math/bits"
	"strings"
)

// CellSet is a set of positions on one board, stored as a bitset over
// row-major cell indices. Iteration is always in row-major order.
type CellSet struct {
	words []uint64
	cols  int
}

func newCellSet(numCells, cols int) CellSet {
	return CellSet{words: make([]uint64, (numCells+63)/64), cols: cols}
}

func (s *CellSet) addIndex(i int) {
	s.words[i>>6] |= 1 << (uint(i) & 63)
}

func (s CellSet) hasIndex(i int) bool {
	if i < 0 || i>>6 >= len(s.words) {
		return false
	}
	return s.words[i>>6]&(1<<(uint(i)&63)) != 0
}

func (s CellSet) index(c Cell) int {
	return c.Row*s.cols + c.Col
}

// Add inserts c. c must be in bounds for the board the set belongs to.
func (s *CellSet) Add(c Cell) {
	s.addIndex(s.index(c))
}

// Has reports whether c is in the set.
func (s CellSet) Has(c Cell) bool {
	if c.Row < 0 || c.Col < 0 || c.Col >= s.cols {
		return false
	}
	return s.hasIndex(s.index(c))
}

// Len is the number of cells in the set.
func (s CellSet) Len() int {
	n := 0
	for _, w := range s.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Cells returns the members in row-major order.
func (s CellSet) Cells() []Cell {
	out := make([]Cell, 0, s.Len())
	s.Each(func(c Cell) {
		out = append(out, c)
	})
	return out
}

// Each calls fn for every member in row-major order.
func (s CellSet) Each(fn func(Cell)) {
	for wi, w := range s.words {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			i := wi*64 + b
			fn(Cell{Row: i / s.cols, Col: i % s.cols})
			w &= w - 1
		}
	}
}

// Intersect returns the cells present in both sets.
func (s CellSet) Intersect(o CellSet) CellSet {
	r := CellSet{words: make([]uint64, len(s.words)), cols: s.cols}
	for i := range r.words {
		if i < len(o.words) {
			r.words[i] = s.words[i] & o.words[i]
		}
	}
	return r
}

// Union returns the cells present in either set.
func (s CellSet) Union(o CellSet) CellSet {
	r := s.Clone()
	for i := range r.words {
		if i < len(o.words) {
			r.words[i] |= o.words[i]
		}
	}
	return r
}

// Clone returns an independent copy.
func (s CellSet) Clone() CellSet {
	w := make([]uint64, len(s.words))
	copy(w, s.words)
	return CellSet{words: w, cols: s.cols}
}

func (s CellSet) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	first := true
	s.Each(func(c Cell) {
		if !first {
			sb.WriteString(" ")
		}
		first = false
		sb.WriteString(c.String())
	})
	sb.WriteString("}")
	return sb.String()
}
