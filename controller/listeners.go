package controller

import (
	"time"

	"github.com/domino14/reversi/ai/player"
	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/game"
)

// MoveListener hears about every move, pass and hint.
type MoveListener interface {
	OnMove(c board.Cell, color board.Color, elapsed time.Duration)
	OnPass(color board.Color)
	OnHint(c board.Cell, color board.Color)
}

// GameListener hears about games starting and ending. The state passed
// in is a copy.
type GameListener interface {
	OnGameStart(st *game.State)
	OnGameEnd(st *game.State)
}

// SearchListener hears about computer players thinking.
type SearchListener interface {
	OnSearchStart(p player.AIPlayer)
	OnSearchEnd(p player.AIPlayer)
	OnSearchAborted(p player.AIPlayer)
}

// event is a notification collected under the lock and delivered after
// it is released, so listeners may call back into the controller.
type event func(c *Controller)

func moveEvent(cell board.Cell, color board.Color, elapsed time.Duration) event {
	return func(c *Controller) {
		for _, l := range c.moveListeners {
			l.OnMove(cell, color, elapsed)
		}
	}
}

func passEvent(color board.Color) event {
	return func(c *Controller) {
		for _, l := range c.moveListeners {
			l.OnPass(color)
		}
	}
}

func hintEvent(cell board.Cell, color board.Color) event {
	return func(c *Controller) {
		for _, l := range c.moveListeners {
			l.OnHint(cell, color)
		}
	}
}

func gameStartEvent(st *game.State) event {
	return func(c *Controller) {
		for _, l := range c.gameListeners {
			l.OnGameStart(st)
		}
	}
}

func gameEndEvent(st *game.State) event {
	return func(c *Controller) {
		for _, l := range c.gameListeners {
			l.OnGameEnd(st)
		}
	}
}

func (c *Controller) fire(events []event) {
	for _, e := range events {
		e(c)
	}
}
