package game

import (
	"fmt"
	"strings"
)

func addText(lines []string, row int, hpad int, text string) {
	if row >= len(lines) {
		return
	}
	lines[row] = lines[row] + strings.Repeat(" ", hpad) + text
}

// ToDisplayText renders the board with the score and side to move to the
// right of it.
func (s *State) ToDisplayText() string {
	bts := strings.Split(s.board.ToDisplayText(), "\n")
	hpadding := 3
	black, white := s.Score()

	addText(bts, 3, hpadding, fmt.Sprintf("black (X): %d", black))
	addText(bts, 4, hpadding, fmt.Sprintf("white (O): %d", white))
	if s.turn.IsPlayer() {
		addText(bts, 6, hpadding, fmt.Sprintf("%s to move", s.turn))
	} else {
		addText(bts, 6, hpadding, "game over")
	}
	if c, ok := s.LastMove(); ok {
		addText(bts, 7, hpadding, fmt.Sprintf("last move: %s", c))
	}
	return strings.Join(bts, "\n")
}
