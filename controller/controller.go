// Package controller drives a game between any mix of human and computer
// players. It owns the authoritative game state; computer players only
// ever see copies of it.
package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/reversi/ai/player"
	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/game"
)

var (
	ErrGameOver      = errors.New("game is over")
	ErrNotHumanTurn  = errors.New("it is the computer's turn")
	ErrIllegalMove   = errors.New("illegal move")
	ErrSearchRunning = errors.New("a search is already running")
)

type Controller struct {
	mu        sync.Mutex
	state     *game.State
	history   game.History
	players   [2]player.AIPlayer
	hintOnly  bool
	totalTime [2]time.Duration
	turnStart time.Time

	background bool
	searching  bool
	current    player.AIPlayer
	cancel     context.CancelFunc
	wg         sync.WaitGroup

	moveListeners   []MoveListener
	gameListeners   []GameListener
	searchListeners []SearchListener
}

// New creates a controller for st. Both sides start out human.
func New(st *game.State) *Controller {
	return &Controller{state: st, turnStart: time.Now()}
}

// SetPlayer puts p in charge of color; nil makes the side human.
func (c *Controller) SetPlayer(color board.Color, p player.AIPlayer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.players[color.Index()] = p
}

// IsAI reports whether a computer plays color.
func (c *Controller) IsAI(color board.Color) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return color.IsPlayer() && c.players[color.Index()] != nil
}

// SetBackground makes computer turns run on a worker goroutine instead
// of in the caller.
func (c *Controller) SetBackground(b bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.background = b
}

// SetHintOnly makes computer players suggest moves through OnHint
// instead of playing them.
func (c *Controller) SetHintOnly(h bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hintOnly = h
}

// SetSearchDepth changes the depth of every player that has one.
func (c *Controller) SetSearchDepth(d int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.players {
		if dc, ok := p.(player.DepthConfigurable); ok {
			dc.SetMaxDepth(d)
		}
	}
}

func (c *Controller) AddMoveListener(l MoveListener) {
	c.moveListeners = append(c.moveListeners, l)
}

func (c *Controller) AddGameListener(l GameListener) {
	c.gameListeners = append(c.gameListeners, l)
}

func (c *Controller) AddSearchListener(l SearchListener) {
	c.searchListeners = append(c.searchListeners, l)
}

// State returns a copy of the current state.
func (c *Controller) State() *game.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Copy()
}

// History returns a copy of the game record.
func (c *Controller) History() game.History {
	c.mu.Lock()
	defer c.mu.Unlock()
	return game.History{Events: append([]game.Event(nil), c.history.Events...)}
}

// TotalTime is the time color has spent on its moves so far.
func (c *Controller) TotalTime(color board.Color) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalTime[color.Index()]
}

// NewGame aborts any running search and replaces the game.
func (c *Controller) NewGame(st *game.State) {
	c.Abort()
	c.Wait()
	c.mu.Lock()
	c.state = st
	c.history = game.History{}
	c.totalTime = [2]time.Duration{}
	c.turnStart = time.Now()
	snapshot := st.Copy()
	c.mu.Unlock()
	c.fire([]event{gameStartEvent(snapshot)})
}

// StartGame announces the current game and lets a computer move if it
// is its turn.
func (c *Controller) StartGame() {
	c.StartGameContext(context.Background())
}

// StartGameContext is StartGame with computer turns bounded by ctx.
func (c *Controller) StartGameContext(ctx context.Context) {
	c.mu.Lock()
	c.turnStart = time.Now()
	snapshot := c.state.Copy()
	c.mu.Unlock()
	c.fire([]event{gameStartEvent(snapshot)})
	c.ContinueGameContext(ctx)
}

// ContinueGame lets computer players move until it is a human's turn or
// the game is over. In background mode it returns at once; use Wait to
// block until the worker is done.
func (c *Controller) ContinueGame() {
	c.ContinueGameContext(context.Background())
}

// ContinueGameContext is ContinueGame with computer turns bounded by
// parent. Once parent is done no further computer move is made.
func (c *Controller) ContinueGameContext(parent context.Context) {
	c.mu.Lock()
	if c.searching {
		c.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(parent)
	c.searching = true
	c.cancel = cancel
	bg := c.background
	c.wg.Add(1)
	c.mu.Unlock()

	run := func() {
		defer c.wg.Done()
		defer cancel()
		c.runComputerTurns(ctx)
		c.mu.Lock()
		c.searching = false
		c.cancel = nil
		c.mu.Unlock()
	}
	if bg {
		go run()
	} else {
		run()
	}
}

// Wait blocks until no computer turn is in progress.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Abort stops a running search. The interrupted player makes no move;
// the turn stays where it was.
func (c *Controller) Abort() {
	c.mu.Lock()
	cancel, p := c.cancel, c.current
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	if p != nil {
		p.Abort()
	}
}

func (c *Controller) runComputerTurns(ctx context.Context) {
	for {
		c.mu.Lock()
		turn := c.state.Turn()
		if turn == board.Empty {
			c.mu.Unlock()
			return
		}
		p := c.players[turn.Index()]
		hint := c.hintOnly
		if p == nil {
			c.mu.Unlock()
			return
		}
		snapshot := c.state.Copy()
		c.current = p
		c.mu.Unlock()

		for _, l := range c.searchListeners {
			l.OnSearchStart(p)
		}
		t0 := time.Now()
		m, err := p.BestMove(ctx, snapshot)
		elapsed := time.Since(t0)

		c.mu.Lock()
		c.current = nil
		c.mu.Unlock()

		if err != nil {
			log.Debug().Err(err).Str("player", p.Name()).Msg("search-ended-without-move")
			for _, l := range c.searchListeners {
				l.OnSearchAborted(p)
			}
			return
		}
		for _, l := range c.searchListeners {
			l.OnSearchEnd(p)
		}
		if hint {
			c.fire([]event{hintEvent(m, turn)})
			return
		}
		if err := c.apply(m, turn, elapsed); err != nil {
			log.Error().Err(err).Str("player", p.Name()).Str("move", m.String()).Msg("computer-move-rejected")
			return
		}
		// players that ignore ctx still stop after their move
		if ctx.Err() != nil {
			return
		}
	}
}

// Move plays a human move for the side to move.
func (c *Controller) Move(cell board.Cell) error {
	c.mu.Lock()
	if c.searching {
		c.mu.Unlock()
		return ErrSearchRunning
	}
	turn := c.state.Turn()
	if turn == board.Empty {
		c.mu.Unlock()
		return ErrGameOver
	}
	if c.players[turn.Index()] != nil && !c.hintOnly {
		c.mu.Unlock()
		return ErrNotHumanTurn
	}
	elapsed := time.Since(c.turnStart)
	c.mu.Unlock()

	if err := c.apply(cell, turn, elapsed); err != nil {
		return err
	}
	c.ContinueGame()
	return nil
}

// apply plays cell for color on the shared state and notifies listeners.
func (c *Controller) apply(cell board.Cell, color board.Color, elapsed time.Duration) error {
	c.mu.Lock()
	if c.state.Turn() != color {
		c.mu.Unlock()
		return fmt.Errorf("%w: not %s's turn", ErrIllegalMove, color)
	}
	if !c.state.PlayMove(cell) {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s for %s", ErrIllegalMove, cell, color)
	}
	c.totalTime[color.Index()] += elapsed
	c.history.RecordMove(c.state, color, cell, elapsed)
	events := []event{moveEvent(cell, color, elapsed)}
	next := c.state.Turn()
	switch next {
	case board.Empty:
		events = append(events, gameEndEvent(c.state.Copy()))
	case color:
		c.history.RecordPass(c.state, color.Opposite())
		events = append(events, passEvent(color.Opposite()))
	}
	c.turnStart = time.Now()
	c.mu.Unlock()

	c.fire(events)
	return nil
}

// EndGameMessage summarizes the finished game.
func (c *Controller) EndGameMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	b := c.state.Board()
	black, white := b.Count(board.Black), b.Count(board.White)
	var sb strings.Builder
	sb.WriteString("Game finished.\n\n")
	if black == white {
		fmt.Fprintf(&sb, "Tie! (%d to %d)", black, white)
	} else {
		winner := b.Winner()
		aiBlack, aiWhite := c.players[0] != nil, c.players[1] != nil
		humanVsMachine := aiBlack != aiWhite
		humanWinner := c.players[winner.Index()] == nil
		fmt.Fprintf(&sb, "%s wins %d to %d.", winner, max(black, white), min(black, white))
		if humanWinner {
			sb.WriteString("\nCongratulations!")
		} else if humanVsMachine {
			sb.WriteString("\n\nHuman beaten by machine!")
		}
	}
	fmt.Fprintf(&sb, "\n\nTotal black time: %.1f", c.totalTime[0].Seconds())
	fmt.Fprintf(&sb, "\nTotal white time: %.1f", c.totalTime[1].Seconds())
	return sb.String()
}
