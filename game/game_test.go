package game

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/reversi/board"
)

func stateFromRows(t *testing.T, turn board.Color, rows ...string) *State {
	t.Helper()
	b, err := board.NewBoard(len(rows), len(rows))
	if err != nil {
		t.Fatal(err)
	}
	if err := b.SetFromRows(rows); err != nil {
		t.Fatal(err)
	}
	return NewStateFromBoard(b, turn)
}

func TestNewGame(t *testing.T) {
	is := is.New(t)
	s := NewStandardGame()
	is.Equal(s.Turn(), board.Black)
	is.Equal(s.Playing(), Playing)
	is.Equal(s.Depth(), 0)
	_, ok := s.LastMove()
	is.True(!ok)
	is.Equal(len(s.ValidMoves()), 4)
}

func TestPlayMoveAlternates(t *testing.T) {
	is := is.New(t)
	s := NewStandardGame()
	is.True(s.PlayMove(board.Cell{Row: 2, Col: 3}))
	is.Equal(s.Turn(), board.White)
	is.Equal(s.Depth(), 1)
	last, ok := s.LastMove()
	is.True(ok)
	is.Equal(last, board.Cell{Row: 2, Col: 3})
	black, white := s.Score()
	is.Equal(black, 4)
	is.Equal(white, 1)
}

func TestIllegalMoveLeavesStateUnchanged(t *testing.T) {
	is := is.New(t)
	s := NewStandardGame()
	before := s.Copy()
	is.True(!s.PlayMove(board.Cell{Row: 0, Col: 0}))
	is.Equal(s.Turn(), board.Black)
	is.Equal(s.Depth(), 0)
	is.True(s.Board().Equals(before.Board()))
}

func TestFullBoardEndsGame(t *testing.T) {
	is := is.New(t)
	s := stateFromRows(t, board.Black,
		"XXXX",
		"XXXX",
		"XXXO",
		"XXX.",
	)
	is.Equal(s.Turn(), board.Black)
	is.True(s.PlayMove(board.Cell{Row: 3, Col: 3}))
	is.Equal(s.Turn(), board.Empty)
	is.Equal(s.Playing(), GameOver)
	is.Equal(s.Depth(), 0)
	is.Equal(s.Winner(), board.Black)
	is.True(!s.PlayMove(board.Cell{Row: 0, Col: 0}))
}

func TestNobodyCanMoveEndsGame(t *testing.T) {
	is := is.New(t)
	s := stateFromRows(t, board.Black,
		"....",
		"XO..",
		"..X.",
		"....",
	)
	is.True(s.PlayMove(board.Cell{Row: 1, Col: 2}))
	is.Equal(s.Turn(), board.Empty)
	is.Equal(s.Depth(), 0)
	is.Equal(len(s.ValidMoves()), 0)
}

func TestPassReturnsTurnToMover(t *testing.T) {
	is := is.New(t)
	s := stateFromRows(t, board.Black,
		"XXXX",
		"XXXX",
		"XXO.",
		"XO..",
	)
	is.True(s.PlayMove(board.Cell{Row: 2, Col: 3}))
	// white has nothing, so black moves again
	is.Equal(s.Turn(), board.Black)
	is.Equal(s.Depth(), 1)
	is.Equal(s.ValidMoves(), []board.Cell{{Row: 3, Col: 2}})

	is.True(s.PlayMove(board.Cell{Row: 3, Col: 2}))
	is.Equal(s.Turn(), board.Empty)
	is.Equal(s.Depth(), 1)
}

func TestStateFromBoardSettlesTurn(t *testing.T) {
	is := is.New(t)
	s := stateFromRows(t, board.White,
		"XXXX",
		"XXXX",
		"XXX.",
		"XO..",
	)
	is.Equal(s.Turn(), board.Black)
}

func TestCopyIsIndependent(t *testing.T) {
	is := is.New(t)
	s := NewStandardGame()
	c := s.Copy()
	is.True(c.PlayMove(board.Cell{Row: 2, Col: 3}))
	is.Equal(s.Turn(), board.Black)
	is.Equal(s.Board().Count(board.Black), 2)
	is.Equal(c.Depth(), 1)
	is.Equal(s.Depth(), 0)
}

func TestHistory(t *testing.T) {
	is := is.New(t)
	s := NewStandardGame()
	var h History
	c := board.Cell{Row: 2, Col: 3}
	is.True(s.PlayMove(c))
	h.RecordMove(s, board.Black, c, 0)
	h.RecordPass(s, board.White)
	is.Equal(len(h.Events), 2)
	is.Equal(h.Moves(), []board.Cell{c})
	is.Equal(h.Events[0].Black, 4)
	is.Equal(h.Events[1].String(), "white passes")
}
