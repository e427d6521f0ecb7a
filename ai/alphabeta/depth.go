package alphabeta

import "github.com/domino14/reversi/board"

// DepthPolicy picks a search depth from the game phase. Early on, while
// the ring of cells around the center is still open, it searches
// shallow. After that the depth grows with the number of discs, reaching
// Endgame when few empty cells remain.
type DepthPolicy struct {
	Shallow int
	Opening int
	Midgame int
	Endgame int

	MidgamePieces int
	EndgamePieces int

	// The shallow depth applies while fewer than InnerNum/InnerDen of the
	// inner ring cells are occupied.
	InnerNum int
	InnerDen int
}

func DefaultDepthPolicy() DepthPolicy {
	return DepthPolicy{
		Shallow:       5,
		Opening:       6,
		Midgame:       7,
		Endgame:       12,
		MidgamePieces: 32,
		EndgamePieces: 52,
		InnerNum:      2,
		InnerDen:      3,
	}
}

// Depth returns the depth to search b with.
func (p DepthPolicy) Depth(b *board.Board) int {
	ring := InnerRing(b)
	occupied := 0
	for _, c := range ring {
		if b.Get(c) != board.Empty {
			occupied++
		}
	}
	if occupied*p.InnerDen < len(ring)*p.InnerNum {
		return p.Shallow
	}
	pieces := b.Pieces().Len()
	switch {
	case pieces < p.MidgamePieces:
		return p.Opening
	case pieces >= p.EndgamePieces:
		return p.Endgame
	}
	return p.Midgame
}

// InnerRing returns the 12 cells forming the perimeter of the 4x4 square
// centered on the board, in row-major order. On 8x8 these are the cells
// from c3 to f6 minus the central 2x2.
func InnerRing(b *board.Board) []board.Cell {
	r0, c0 := b.NumRows()/2-2, b.NumCols()/2-2
	r1, c1 := r0+3, c0+3
	out := make([]board.Cell, 0, 12)
	for r := r0; r <= r1; r++ {
		for c := c0; c <= c1; c++ {
			if r == r0 || r == r1 || c == c0 || c == c1 {
				out = append(out, board.Cell{Row: r, Col: c})
			}
		}
	}
	return out
}
