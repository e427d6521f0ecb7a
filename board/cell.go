package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrBadCell = errors.New("bad cell coordinates")

// A Cell is a position on a board. Cells carry no reference to a board;
// the same Cell value addresses the same position on any board of
// compatible size, and a board resolves it with Conform.
type Cell struct {
	Row int
	Col int
}

// Adjacent returns the neighboring position in direction d. It may be
// out of bounds.
func (c Cell) Adjacent(d Direction) Cell {
	return Cell{c.Row + d.DR, c.Col + d.DC}
}

// String uses the usual notation: a column letter followed by a
// 1-based row number, e.g. "c4".
func (c Cell) String() string {
	return fmt.Sprintf("%c%d", 'a'+c.Col, c.Row+1)
}

// ParseCell is the inverse of Cell.String. It does not check bounds.
func ParseCell(s string) (Cell, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) < 2 {
		return Cell{}, fmt.Errorf("%w: %q", ErrBadCell, s)
	}
	col := int(s[0]) - 'a'
	if col < 0 || col > 25 {
		return Cell{}, fmt.Errorf("%w: %q", ErrBadCell, s)
	}
	row, err := strconv.Atoi(s[1:])
	if err != nil || row < 1 {
		return Cell{}, fmt.Errorf("%w: %q", ErrBadCell, s)
	}
	return Cell{Row: row - 1, Col: col}, nil
}

// CellType classifies positions by their strategic role.
type CellType uint8

const (
	TypeNone CellType = iota
	TypeA
	TypeB
	TypeC
	TypeX
	TypeCorner
	numCellTypes
)

func (t CellType) String() string {
	switch t {
	case TypeA:
		return "A"
	case TypeB:
		return "B"
	case TypeC:
		return "C"
	case TypeX:
		return "X"
	case TypeCorner:
		return "corner"
	}
	return "none"
}

// ClassifyCell returns the type of (row, col) on a rows x cols board.
// Corners are the four extremes, X cells are diagonally adjacent to a
// corner, C cells are edge cells next to a corner, and A and B cells
// are the next two rings inward along the edges. Everything else,
// including all interior cells, is TypeNone.
func ClassifyCell(row, col, rows, cols int) CellType {
	r1, c1 := rows-1, cols-1
	onRowEdge := row == 0 || row == r1
	onColEdge := col == 0 || col == c1
	if onRowEdge && onColEdge {
		return TypeCorner
	}
	if (row == 1 || row == r1-1) && (col == 1 || col == c1-1) {
		return TypeX
	}
	if !onRowEdge && !onColEdge {
		return TypeNone
	}
	switch {
	case row == 1 || row == r1-1 || col == 1 || col == c1-1:
		return TypeC
	case row == 2 || row == r1-2 || col == 2 || col == c1-2:
		return TypeA
	case row == 3 || row == r1-3 || col == 3 || col == c1-3:
		return TypeB
	}
	return TypeNone
}
