package board

// Stable-disc tracking. Each color has its own mask; a cell is stable if
// either mask has it. Masks only grow: relaxation adds cells and nothing
// but Reset/ClearAll removes them, so a disc that was once reported
// stable stays stable even if later positions would not prove it.

// IsStable reports whether c has been marked stable for either color.
func (b *Board) IsStable(c Cell) bool {
	if !b.InBounds(c) {
		return false
	}
	b.ensureStable()
	i := b.idx(c)
	return b.stable[0][i] || b.stable[1][i]
}

// StableCount returns the number of cells in the stable mask of color.
func (b *Board) StableCount(color Color) int {
	if !color.IsPlayer() {
		return 0
	}
	b.ensureStable()
	n := 0
	for _, s := range b.stable[color.Index()] {
		if s {
			n++
		}
	}
	return n
}

// StableSet returns the cells marked stable for color.
func (b *Board) StableSet(color Color) CellSet {
	s := newCellSet(len(b.cells), b.cols)
	if !color.IsPlayer() {
		return s
	}
	b.ensureStable()
	for i, st := range b.stable[color.Index()] {
		if st {
			s.addIndex(i)
		}
	}
	return s
}

func (b *Board) ensureStable() {
	if !b.stableDirty {
		return
	}
	// each color's rules read the other's mask, so repeat until a full
	// pass over both colors changes nothing
	for {
		cb := b.relaxStable(Black)
		cw := b.relaxStable(White)
		if !cb && !cw {
			break
		}
	}
	b.stableDirty = false
}

// relaxStable runs one pass over the board, marking every disc of color
// that the current masks prove stable. It returns whether anything was
// added.
func (b *Board) relaxStable(color Color) bool {
	own := b.stable[color.Index()]
	opp := b.stable[color.Opposite().Index()]
	changed := false
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.cols; c++ {
			i := r*b.cols + c
			if own[i] || b.cells[i] != color {
				continue
			}
			if b.provablyStable(Cell{r, c}, own, opp) {
				own[i] = true
				changed = true
			}
		}
	}
	return changed
}

func (b *Board) provablyStable(cell Cell, own, opp []bool) bool {
	onRowEdge := cell.Row == 0 || cell.Row == b.rows-1
	onColEdge := cell.Col == 0 || cell.Col == b.cols-1
	switch {
	case onRowEdge && onColEdge:
		return true
	case onColEdge:
		return b.sideStable(cell, North, South, own, opp)
	case onRowEdge:
		return b.sideStable(cell, West, East, own, opp)
	}
	return b.interiorStable(cell, own, opp)
}

// sideStable: an edge disc is stable when one of its two edge neighbors
// is stable for the same color, or both are stable for the opponent.
func (b *Board) sideStable(cell Cell, d1, d2 Direction, own, opp []bool) bool {
	n1, n2 := b.idx(cell.Adjacent(d1)), b.idx(cell.Adjacent(d2))
	return own[n1] || own[n2] || (opp[n1] && opp[n2])
}

// interiorStable: an interior disc is stable when four circularly
// consecutive neighbors are stable for the same color, or all eight
// neighbors are stable for the opponent.
func (b *Board) interiorStable(cell Cell, own, opp []bool) bool {
	var mine [8]bool
	allOpp := true
	for k, d := range AllDirections {
		ni := b.idx(cell.Adjacent(d))
		mine[k] = own[ni]
		if !opp[ni] {
			allOpp = false
		}
	}
	if allOpp {
		return true
	}
	run := 0
	// walk twice around so runs that wrap past north are counted
	for k := 0; k < 16; k++ {
		if mine[k%8] {
			run++
			if run >= 4 {
				return true
			}
		} else {
			run = 0
		}
	}
	return false
}
