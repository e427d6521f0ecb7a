package player

import (
	"context"
	"sync"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/game"
	"github.com/domino14/reversi/genetic"
)

// RandomPlayer plays a uniformly random legal move.
type RandomPlayer struct {
	mu  sync.Mutex
	rng genetic.Source
}

func NewRandomPlayer(src genetic.Source) *RandomPlayer {
	return &RandomPlayer{rng: src}
}

func (p *RandomPlayer) BestMove(ctx context.Context, st *game.State) (board.Cell, error) {
	moves := st.ValidMoves()
	if len(moves) == 0 {
		return board.Cell{}, ErrNoMoves
	}
	p.mu.Lock()
	i := p.rng.Intn(len(moves))
	p.mu.Unlock()
	return moves[i], nil
}

func (p *RandomPlayer) Abort()       {}
func (p *RandomPlayer) Name() string { return "random" }

// ProbabilisticPlayer asks its first player with probability p and its
// second otherwise, deciding afresh on every move.
type ProbabilisticPlayer struct {
	mu     sync.Mutex
	rng    genetic.Source
	first  AIPlayer
	second AIPlayer
	// per mille
	threshold int
	current   AIPlayer
}

func NewProbabilisticPlayer(src genetic.Source, first, second AIPlayer, p float64) *ProbabilisticPlayer {
	return &ProbabilisticPlayer{
		rng:       src,
		first:     first,
		second:    second,
		threshold: int(p * 1000),
	}
}

func (p *ProbabilisticPlayer) BestMove(ctx context.Context, st *game.State) (board.Cell, error) {
	p.mu.Lock()
	pl := p.second
	if p.rng.Intn(1000) < p.threshold {
		pl = p.first
	}
	p.current = pl
	p.mu.Unlock()
	return pl.BestMove(ctx, st)
}

func (p *ProbabilisticPlayer) Abort() {
	p.mu.Lock()
	pl := p.current
	p.mu.Unlock()
	if pl != nil {
		pl.Abort()
	}
}

func (p *ProbabilisticPlayer) Name() string {
	return "mix(" + p.first.Name() + "," + p.second.Name() + ")"
}

// SetMaxDepth forwards to whichever wrapped players accept a depth.
func (p *ProbabilisticPlayer) SetMaxDepth(d int) {
	for _, pl := range []AIPlayer{p.first, p.second} {
		if dc, ok := pl.(DepthConfigurable); ok {
			dc.SetMaxDepth(d)
		}
	}
}
