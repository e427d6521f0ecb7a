package player

import (
	"context"

	"github.com/domino14/reversi/ai/alphabeta"
	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/config"
	"github.com/domino14/reversi/game"
	"github.com/domino14/reversi/heuristic"
)

// AlphaBetaPlayer searches with an alphabeta.Solver.
type AlphaBetaPlayer struct {
	solver *alphabeta.Solver
	name   string
}

func NewAlphaBetaPlayer(cfg *config.Config, g heuristic.Genome) *AlphaBetaPlayer {
	return &AlphaBetaPlayer{
		solver: alphabeta.NewSolver(cfg, g),
		name:   "alphabeta-" + g.ID(),
	}
}

func (p *AlphaBetaPlayer) BestMove(ctx context.Context, st *game.State) (board.Cell, error) {
	return p.solver.BestMove(ctx, st)
}

func (p *AlphaBetaPlayer) Abort()                   { p.solver.Abort() }
func (p *AlphaBetaPlayer) Name() string             { return p.name }
func (p *AlphaBetaPlayer) SetMaxDepth(d int)        { p.solver.SetMaxDepth(d) }
func (p *AlphaBetaPlayer) Genome() heuristic.Genome { return p.solver.Genome() }
func (p *AlphaBetaPlayer) Solver() *alphabeta.Solver {
	return p.solver
}

// SetName overrides the default name.
func (p *AlphaBetaPlayer) SetName(n string) { p.name = n }
