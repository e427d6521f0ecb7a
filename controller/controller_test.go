package controller

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/domino14/reversi/ai/player"
	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/config"
	"github.com/domino14/reversi/game"
	"github.com/domino14/reversi/genetic"
	"github.com/domino14/reversi/heuristic"
)

type recorder struct {
	mu       sync.Mutex
	moves    []board.Cell
	passes   []board.Color
	hints    []board.Cell
	starts   int
	ends     int
	searches int
	aborted  int
}

func (r *recorder) OnMove(c board.Cell, color board.Color, elapsed time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.moves = append(r.moves, c)
}

func (r *recorder) OnPass(color board.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.passes = append(r.passes, color)
}

func (r *recorder) OnHint(c board.Cell, color board.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hints = append(r.hints, c)
}

func (r *recorder) OnGameStart(st *game.State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.starts++
}

func (r *recorder) OnGameEnd(st *game.State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ends++
}

func (r *recorder) OnSearchStart(p player.AIPlayer) {}

func (r *recorder) OnSearchEnd(p player.AIPlayer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.searches++
}

func (r *recorder) OnSearchAborted(p player.AIPlayer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aborted++
}

func newRecorded(st *game.State) (*Controller, *recorder) {
	c := New(st)
	r := &recorder{}
	c.AddMoveListener(r)
	c.AddGameListener(r)
	c.AddSearchListener(r)
	return c, r
}

func TestComputerVsComputer(t *testing.T) {
	is := is.New(t)
	c, r := newRecorded(game.NewStandardGame())
	c.SetPlayer(board.Black, player.NewRandomPlayer(genetic.NewRNG("black")))
	c.SetPlayer(board.White, player.NewRandomPlayer(genetic.NewRNG("white")))
	c.StartGame()

	st := c.State()
	is.Equal(st.Playing(), game.GameOver)
	is.Equal(r.starts, 1)
	is.Equal(r.ends, 1)
	is.Equal(r.searches, len(r.moves))
	h := c.History()
	is.Equal(h.Moves(), r.moves)
	is.Equal(len(h.Events), len(r.moves)+len(r.passes))
	is.True(strings.HasPrefix(c.EndGameMessage(), "Game finished."))
}

func TestStartGameContextStopsAfterCancel(t *testing.T) {
	is := is.New(t)
	c, r := newRecorded(game.NewStandardGame())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c.SetPlayer(board.Black, player.NewRandomPlayer(genetic.NewRNG("black")))
	c.SetPlayer(board.White, player.NewRandomPlayer(genetic.NewRNG("white")))
	c.StartGameContext(ctx)

	// the random player does not look at ctx, so it moves once
	is.Equal(len(r.moves), 1)
	is.Equal(c.State().Playing(), game.Playing)

	ab := player.NewAlphaBetaPlayer(config.DefaultConfig(), heuristic.DefaultGenome)
	c.SetPlayer(board.White, ab)
	c.ContinueGameContext(ctx)
	is.Equal(len(r.moves), 1)
	is.Equal(r.aborted, 1)
}

func TestHumanMoves(t *testing.T) {
	is := is.New(t)
	c, r := newRecorded(game.NewStandardGame())
	err := c.Move(board.Cell{Row: 0, Col: 0})
	is.True(errors.Is(err, ErrIllegalMove))
	is.Equal(len(r.moves), 0)

	is.NoErr(c.Move(board.Cell{Row: 2, Col: 3}))
	is.Equal(r.moves, []board.Cell{{Row: 2, Col: 3}})
	is.Equal(c.State().Turn(), board.White)
}

func TestComputerAnswersHuman(t *testing.T) {
	is := is.New(t)
	c, r := newRecorded(game.NewStandardGame())
	ab := player.NewAlphaBetaPlayer(config.DefaultConfig(), heuristic.DefaultGenome)
	c.SetPlayer(board.White, ab)
	c.SetSearchDepth(2)
	is.Equal(ab.Solver().MaxDepth(), 2)

	c.StartGame()
	is.Equal(len(r.moves), 0)

	is.NoErr(c.Move(board.Cell{Row: 2, Col: 3}))
	is.Equal(len(r.moves), 2)
	is.Equal(c.State().Turn(), board.Black)

	err := c.Move(board.Cell{Row: 0, Col: 0})
	is.True(errors.Is(err, ErrIllegalMove))
}

func TestComputerCannotBeOverridden(t *testing.T) {
	is := is.New(t)
	c, _ := newRecorded(game.NewStandardGame())
	c.SetPlayer(board.Black, player.NewRandomPlayer(genetic.NewRNG("b")))
	err := c.Move(board.Cell{Row: 2, Col: 3})
	is.True(errors.Is(err, ErrNotHumanTurn))
}

func TestHintOnly(t *testing.T) {
	is := is.New(t)
	c, r := newRecorded(game.NewStandardGame())
	ab := player.NewAlphaBetaPlayer(config.DefaultConfig(), heuristic.DefaultGenome)
	ab.SetMaxDepth(2)
	c.SetPlayer(board.Black, ab)
	c.SetHintOnly(true)
	c.StartGame()

	is.Equal(len(r.hints), 1)
	is.Equal(len(r.moves), 0)
	st := c.State()
	is.Equal(st.Turn(), board.Black)
	is.True(st.Board().IsValidMove(r.hints[0], board.Black))

	// the human may take the hint
	is.NoErr(c.Move(r.hints[0]))
	is.Equal(c.State().Turn(), board.White)
}

func TestBackgroundAbort(t *testing.T) {
	is := is.New(t)
	st := game.NewStandardGame()
	for _, m := range []string{"d3", "c5", "f6", "f5", "e6", "e3"} {
		cell, err := board.ParseCell(m)
		is.NoErr(err)
		is.True(st.PlayMove(cell))
	}
	before := st.Copy()
	c, r := newRecorded(st)
	ab := player.NewAlphaBetaPlayer(config.DefaultConfig(), heuristic.DefaultGenome)
	ab.SetMaxDepth(14)
	c.SetPlayer(board.Black, ab)
	c.SetBackground(true)
	c.StartGame()

	done := make(chan struct{})
	go func() {
		c.Wait()
		close(done)
	}()
	deadline := time.After(30 * time.Second)
wait:
	for {
		c.Abort()
		select {
		case <-done:
			break wait
		case <-time.After(5 * time.Millisecond):
		case <-deadline:
			t.Fatal("search was not aborted")
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	is.Equal(r.aborted, 1)
	is.Equal(len(r.moves), 0)
	after := c.State()
	is.True(after.Board().Equals(before.Board()))
	is.Equal(after.Turn(), board.Black)
}
