// Package player defines the computer players the controller drives.
package player

import (
	"context"
	"errors"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/game"
	"github.com/domino14/reversi/heuristic"
)

var ErrNoMoves = errors.New("no legal moves")

// AIPlayer picks moves for whichever side is to move in the state it is
// given. BestMove may block for a long time; Abort makes a running
// BestMove return early with an error and no move.
type AIPlayer interface {
	BestMove(ctx context.Context, st *game.State) (board.Cell, error)
	Abort()
	Name() string
}

// DepthConfigurable is implemented by players whose strength is a search
// depth.
type DepthConfigurable interface {
	SetMaxDepth(int)
}

// GenomeCarrier is implemented by players that score positions with a
// heuristic genome.
type GenomeCarrier interface {
	Genome() heuristic.Genome
}
