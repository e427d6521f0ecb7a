package board

import "strings"

// Color is the content of a cell. Black and White double as the player
// identifiers; Empty is never a player.
type Color uint8

const (
	Empty Color = iota
	Black
	White
)

// Opposite returns the other player's color. Empty maps to itself.
func (c Color) Opposite() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	}
	return Empty
}

// IsPlayer is true for Black and White.
func (c Color) IsPlayer() bool {
	return c == Black || c == White
}

// Index is 0 for black and 1 for white. It panics for Empty.
func (c Color) Index() int {
	switch c {
	case Black:
		return 0
	case White:
		return 1
	}
	panic("color index requested for an empty cell")
}

func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	}
	return "empty"
}

// Rune is the character used when displaying a board.
func (c Color) Rune() rune {
	switch c {
	case Black:
		return 'X'
	case White:
		return 'O'
	}
	return '.'
}

// ColorFromString parses "black", "white" (or "x", "o", "b", "w").
func ColorFromString(s string) (Color, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "black", "b", "x":
		return Black, true
	case "white", "w", "o":
		return White, true
	}
	return Empty, false
}

func colorFromRune(r rune) (Color, bool) {
	switch r {
	case 'X', 'x', '*', '#':
		return Black, true
	case 'O', 'o':
		return White, true
	case '.', '-', ' ':
		return Empty, true
	}
	return Empty, false
}
