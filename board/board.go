// Package board implements the Reversi board: move legality, move
// application and the derived cell sets (pieces, fringe, border, valid
// moves, stable discs) the evaluator needs.
package board

import (
	"errors"
	"fmt"
)

const (
	// StandardDim is the side of a regular Reversi board.
	StandardDim = 8
	// MinDim is the smallest side we can set the opening position on
	// and still have an inner ring around the center.
	MinDim = 4
)

var (
	ErrDimensionMismatch = errors.New("board dimensions do not match")
	ErrBadDimensions     = errors.New("board dimensions must be even and at least 4")
)

// Board is an R x C grid of colors. The grid size is fixed at creation.
//
// The occupied-piece, fringe, border and valid-move sets are caches: they
// are computed on first access and thrown away whenever any cell changes.
// The stable-disc masks are not caches: once a disc is found to be stable
// it stays marked until the board is reset.
type Board struct {
	rows  int
	cols  int
	cells []Color

	// pure functions of the dimensions; shared between copies.
	types  []CellType
	byType *[numCellTypes]CellSet

	piecesValid bool
	pieces      CellSet
	fillValid   bool
	fringe      CellSet
	border      CellSet
	movesValid  [2]bool
	moves       [2][]Cell

	stable      [2][]bool
	stableDirty bool
}

// NewBoard creates a rows x cols board set to the opening position.
func NewBoard(rows, cols int) (*Board, error) {
	if rows < MinDim || cols < MinDim || rows%2 != 0 || cols%2 != 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadDimensions, rows, cols)
	}
	b := &Board{
		rows:  rows,
		cols:  cols,
		cells: make([]Color, rows*cols),
		types: make([]CellType, rows*cols),
	}
	b.byType = new([numCellTypes]CellSet)
	for t := range b.byType {
		b.byType[t] = newCellSet(rows*cols, cols)
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			t := ClassifyCell(r, c, rows, cols)
			b.types[r*cols+c] = t
			b.byType[t].Add(Cell{r, c})
		}
	}
	b.stable[0] = make([]bool, rows*cols)
	b.stable[1] = make([]bool, rows*cols)
	b.Reset()
	return b, nil
}

// NewStandardBoard returns an 8x8 board in the opening position.
func NewStandardBoard() *Board {
	b, err := NewBoard(StandardDim, StandardDim)
	if err != nil {
		panic(err)
	}
	return b
}

func (b *Board) NumRows() int  { return b.rows }
func (b *Board) NumCols() int  { return b.cols }
func (b *Board) NumCells() int { return b.rows * b.cols }

// InBounds reports whether c lies on this board.
func (b *Board) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < b.rows && c.Col >= 0 && c.Col < b.cols
}

// Conform resolves a cell obtained from another board (for instance a
// search copy) against this board.
func (b *Board) Conform(c Cell) (Cell, bool) {
	if !b.InBounds(c) {
		return Cell{}, false
	}
	return Cell{Row: c.Row, Col: c.Col}, true
}

func (b *Board) idx(c Cell) int {
	return c.Row*b.cols + c.Col
}

// Get returns the color at c, or Empty if c is out of bounds.
func (b *Board) Get(c Cell) Color {
	if !b.InBounds(c) {
		return Empty
	}
	return b.cells[b.idx(c)]
}

// Type returns the strategic classification of c.
func (b *Board) Type(c Cell) CellType {
	if !b.InBounds(c) {
		return TypeNone
	}
	return b.types[b.idx(c)]
}

// CellsOfType returns all positions of type t.
func (b *Board) CellsOfType(t CellType) CellSet {
	return b.byType[t].Clone()
}

// Set writes a color directly, bypassing the rules. It is meant for
// setting up positions; gameplay goes through MakeMove.
func (b *Board) Set(c Cell, color Color) {
	if !b.InBounds(c) {
		return
	}
	b.cells[b.idx(c)] = color
	b.invalidate()
}

// Clear empties a cell.
func (b *Board) Clear(c Cell) {
	b.Set(c, Empty)
}

// Flip swaps the color of an occupied cell.
func (b *Board) Flip(c Cell) {
	if !b.InBounds(c) {
		return
	}
	i := b.idx(c)
	b.cells[i] = b.cells[i].Opposite()
	b.invalidate()
}

func (b *Board) invalidate() {
	b.piecesValid = false
	b.fillValid = false
	b.movesValid[0] = false
	b.movesValid[1] = false
	b.stableDirty = true
}

// ClearAll empties every cell and forgets all stable discs.
func (b *Board) ClearAll() {
	for i := range b.cells {
		b.cells[i] = Empty
	}
	for p := range b.stable {
		for i := range b.stable[p] {
			b.stable[p][i] = false
		}
	}
	b.invalidate()
}

// Reset sets the opening position: two black and two white discs
// arranged diagonally around the center.
func (b *Board) Reset() {
	b.ClearAll()
	r0, c0 := b.rows/2-1, b.cols/2-1
	b.cells[b.idx(Cell{r0, c0})] = White
	b.cells[b.idx(Cell{r0 + 1, c0 + 1})] = White
	b.cells[b.idx(Cell{r0, c0 + 1})] = Black
	b.cells[b.idx(Cell{r0 + 1, c0})] = Black
	b.invalidate()
}

// CopyFrom overwrites this board with the contents of o, including the
// stable-disc masks. The boards must have the same dimensions; on a
// mismatch nothing is changed.
func (b *Board) CopyFrom(o *Board) error {
	if o.rows != b.rows || o.cols != b.cols {
		return fmt.Errorf("%w: %dx%d vs %dx%d", ErrDimensionMismatch,
			b.rows, b.cols, o.rows, o.cols)
	}
	copy(b.cells, o.cells)
	copy(b.stable[0], o.stable[0])
	copy(b.stable[1], o.stable[1])
	b.invalidate()
	b.stableDirty = o.stableDirty
	return nil
}

// Copy returns an independent copy of the board.
func (b *Board) Copy() *Board {
	n := &Board{
		rows:   b.rows,
		cols:   b.cols,
		cells:  make([]Color, len(b.cells)),
		types:  b.types,
		byType: b.byType,
	}
	n.stable[0] = make([]bool, len(b.cells))
	n.stable[1] = make([]bool, len(b.cells))
	if err := n.CopyFrom(b); err != nil {
		panic(err)
	}
	return n
}

// Equals compares cell contents only.
func (b *Board) Equals(o *Board) bool {
	if b.rows != o.rows || b.cols != o.cols {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// BetweenResult is the outcome of Between. Colinear is false when the two
// cells do not share a row, column or diagonal; in that case Cells is nil.
// Colinear cells that are adjacent or identical have no cells between
// them.
type BetweenResult struct {
	Colinear bool
	Cells    []Cell
}

// Between returns the cells strictly between a and b on a shared line.
func (b *Board) Between(a, c Cell) BetweenResult {
	dr, dc := c.Row-a.Row, c.Col-a.Col
	if dr != 0 && dc != 0 && abs(dr) != abs(dc) {
		return BetweenResult{}
	}
	res := BetweenResult{Colinear: true, Cells: []Cell{}}
	if abs(dr) <= 1 && abs(dc) <= 1 {
		return res
	}
	dir := Direction{sign(dr), sign(dc)}
	for cur := a.Adjacent(dir); cur != c; cur = cur.Adjacent(dir) {
		res.Cells = append(res.Cells, cur)
	}
	return res
}

// findEnclosingPiece walks from cell in direction dir over a run of
// opponent discs and returns the disc of the given color that closes the
// run, if there is one. An occupied starting cell overrides color.
func (b *Board) findEnclosingPiece(cell Cell, dir Direction, color Color) (Cell, bool) {
	if cc := b.Get(cell); cc != Empty {
		color = cc
	}
	foundOpp := false
	cur := cell.Adjacent(dir)
	for b.InBounds(cur) {
		cc := b.cells[b.idx(cur)]
		if cc == Empty {
			return Cell{}, false
		}
		if cc == color {
			return cur, foundOpp
		}
		foundOpp = true
		cur = cur.Adjacent(dir)
	}
	return Cell{}, false
}

// IsValidMove reports whether color may play at c.
func (b *Board) IsValidMove(c Cell, color Color) bool {
	if !color.IsPlayer() || !b.InBounds(c) || b.cells[b.idx(c)] != Empty {
		return false
	}
	for _, d := range AllDirections {
		if _, ok := b.findEnclosingPiece(c, d, color); ok {
			return true
		}
	}
	return false
}

// ValidMoves returns the legal moves for color in row-major order.
func (b *Board) ValidMoves(color Color) []Cell {
	if !color.IsPlayer() {
		return nil
	}
	moves := b.validMoves(color)
	out := make([]Cell, len(moves))
	copy(out, moves)
	return out
}

func (b *Board) validMoves(color Color) []Cell {
	p := color.Index()
	if !b.movesValid[p] {
		b.ensureFill()
		moves := []Cell{}
		b.fringe.Each(func(c Cell) {
			if b.IsValidMove(c, color) {
				moves = append(moves, c)
			}
		})
		b.moves[p] = moves
		b.movesValid[p] = true
	}
	return b.moves[p]
}

// Mobility is the number of legal moves for color.
func (b *Board) Mobility(color Color) int {
	if !color.IsPlayer() {
		return 0
	}
	return len(b.validMoves(color))
}

// HasValidMove reports whether color has at least one legal move.
func (b *Board) HasValidMove(color Color) bool {
	return b.Mobility(color) > 0
}

// MakeMove plays a disc of the given color at c, flipping every enclosed
// run. It returns false, leaving the board untouched, if the move is
// illegal.
func (b *Board) MakeMove(c Cell, color Color) bool {
	if !color.IsPlayer() || !b.InBounds(c) || b.cells[b.idx(c)] != Empty {
		return false
	}
	var enclosing [8]Cell
	n := 0
	for _, d := range AllDirections {
		if e, ok := b.findEnclosingPiece(c, d, color); ok {
			enclosing[n] = e
			n++
		}
	}
	if n == 0 {
		return false
	}
	for _, e := range enclosing[:n] {
		for _, f := range b.Between(c, e).Cells {
			i := b.idx(f)
			b.cells[i] = b.cells[i].Opposite()
		}
	}
	b.cells[b.idx(c)] = color
	b.invalidate()
	return true
}

// Pieces returns every occupied cell.
func (b *Board) Pieces() CellSet {
	return b.piecesSet().Clone()
}

func (b *Board) piecesSet() CellSet {
	if !b.piecesValid {
		s := newCellSet(len(b.cells), b.cols)
		for i, c := range b.cells {
			if c != Empty {
				s.addIndex(i)
			}
		}
		b.pieces = s
		b.piecesValid = true
	}
	return b.pieces
}

// Fringe returns the empty cells adjacent to the occupied region. Every
// legal move is in the fringe.
func (b *Board) Fringe() CellSet {
	b.ensureFill()
	return b.fringe.Clone()
}

// Border returns the occupied cells that touch at least one empty cell.
func (b *Board) Border() CellSet {
	b.ensureFill()
	return b.border.Clone()
}

func (b *Board) seed() Cell {
	return Cell{b.rows / 2, b.cols / 2}
}

// ensureFill computes fringe and border with a single flood fill over
// the occupied region, starting at the center seed cell. Discs are
// only ever placed next to existing discs, so the occupied region is
// connected and contains the seed. If the seed is empty both sets come
// out empty.
func (b *Board) ensureFill() {
	if b.fillValid {
		return
	}
	n := len(b.cells)
	fringe := newCellSet(n, b.cols)
	border := newCellSet(n, b.cols)
	visited := make([]bool, n)

	seed := b.seed()
	if b.Get(seed) != Empty {
		stack := []Cell{seed}
		visited[b.idx(seed)] = true
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			touchesEmpty := false
			for _, d := range AllDirections {
				nb := cur.Adjacent(d)
				if !b.InBounds(nb) {
					continue
				}
				ni := b.idx(nb)
				if b.cells[ni] == Empty {
					fringe.addIndex(ni)
					touchesEmpty = true
					continue
				}
				if !visited[ni] {
					visited[ni] = true
					stack = append(stack, nb)
				}
			}
			if touchesEmpty {
				border.Add(cur)
			}
		}
	}
	b.fringe = fringe
	b.border = border
	b.fillValid = true
}

// Count returns the number of discs of the given color.
func (b *Board) Count(color Color) int {
	n := 0
	for _, c := range b.cells {
		if c == color {
			n++
		}
	}
	return n
}

// CountIn returns how many cells of s hold the given color.
func (b *Board) CountIn(s CellSet, color Color) int {
	n := 0
	s.Each(func(c Cell) {
		if b.cells[b.idx(c)] == color {
			n++
		}
	})
	return n
}

// Full reports whether no empty cell remains.
func (b *Board) Full() bool {
	return b.piecesSet().Len() == len(b.cells)
}

// Winner returns the color with more discs, or Empty on a tie.
func (b *Board) Winner() Color {
	black, white := b.Count(Black), b.Count(White)
	switch {
	case black > white:
		return Black
	case white > black:
		return White
	}
	return Empty
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
