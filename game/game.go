// Package game pairs a board with whose turn it is and applies the turn
// rules: passes, the end of the game and the ply counter.
package game

import (
	"github.com/rs/zerolog/log"

	"github.com/domino14/reversi/board"
)

// PlayState tells whether the game is still going.
type PlayState uint8

const (
	Playing PlayState = iota
	GameOver
)

func (p PlayState) String() string {
	if p == GameOver {
		return "game-over"
	}
	return "playing"
}

// State is a board plus the color to move. A turn of board.Empty means
// the game is over.
type State struct {
	board    *board.Board
	turn     board.Color
	lastMove board.Cell
	hasLast  bool
	depth    int
}

// NewGame starts a game on a fresh rows x cols board with black to move.
func NewGame(rows, cols int) (*State, error) {
	b, err := board.NewBoard(rows, cols)
	if err != nil {
		return nil, err
	}
	return &State{board: b, turn: board.Black}, nil
}

// NewStandardGame starts an 8x8 game.
func NewStandardGame() *State {
	return &State{board: board.NewStandardBoard(), turn: board.Black}
}

// NewStateFromBoard wraps an existing position. The turn is settled the
// same way it is after a move: if turn cannot move the other color gets
// the turn, and if neither can move (or the board is full) the game is
// over. The state takes ownership of b.
func NewStateFromBoard(b *board.Board, turn board.Color) *State {
	s := &State{board: b, turn: turn}
	if turn.IsPlayer() {
		s.settle(turn)
	}
	return s
}

// Copy returns a state with an independent board.
func (s *State) Copy() *State {
	n := *s
	n.board = s.board.Copy()
	return &n
}

// CopyFrom overwrites s with the contents of o.
func (s *State) CopyFrom(o *State) error {
	if err := s.board.CopyFrom(o.board); err != nil {
		return err
	}
	s.turn = o.turn
	s.lastMove = o.lastMove
	s.hasLast = o.hasLast
	s.depth = o.depth
	return nil
}

func (s *State) Board() *board.Board { return s.board }
func (s *State) Turn() board.Color   { return s.turn }

// Depth is the number of moves played that did not end the game.
func (s *State) Depth() int { return s.depth }

func (s *State) Playing() PlayState {
	if s.turn == board.Empty {
		return GameOver
	}
	return Playing
}

// LastMove returns the most recent move, if any was made.
func (s *State) LastMove() (board.Cell, bool) {
	return s.lastMove, s.hasLast
}

// ValidMoves lists the legal moves for the side to move.
func (s *State) ValidMoves() []board.Cell {
	if s.turn == board.Empty {
		return nil
	}
	return s.board.ValidMoves(s.turn)
}

// PlayMove plays c for the side to move. It returns false, leaving the
// state unchanged, if the game is over or the move is illegal.
func (s *State) PlayMove(c board.Cell) bool {
	mover := s.turn
	if !mover.IsPlayer() {
		return false
	}
	if !s.board.MakeMove(c, mover) {
		return false
	}
	s.lastMove = c
	s.hasLast = true
	if s.settle(mover.Opposite()) {
		s.depth++
	}
	return true
}

// settle hands the turn to next, passing back if next cannot move, and
// ends the game if the board is full or nobody can move. It reports
// whether the game is still going.
func (s *State) settle(next board.Color) bool {
	switch {
	case s.board.Full():
		s.turn = board.Empty
	case s.board.HasValidMove(next):
		s.turn = next
	case s.board.HasValidMove(next.Opposite()):
		log.Debug().Str("color", next.String()).Msg("forced-pass")
		s.turn = next.Opposite()
	default:
		s.turn = board.Empty
	}
	return s.turn != board.Empty
}

// Score returns the disc counts for black and white.
func (s *State) Score() (black, white int) {
	return s.board.Count(board.Black), s.board.Count(board.White)
}

// Winner is only meaningful once the game is over; it returns Empty on a
// tie.
func (s *State) Winner() board.Color {
	return s.board.Winner()
}
