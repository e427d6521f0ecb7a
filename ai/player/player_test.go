package player

import (
	"context"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/reversi/config"
	"github.com/domino14/reversi/game"
	"github.com/domino14/reversi/genetic"
	"github.com/domino14/reversi/heuristic"
)

func TestCapabilities(t *testing.T) {
	is := is.New(t)
	var p AIPlayer = NewAlphaBetaPlayer(config.DefaultConfig(), heuristic.Evo7)
	_, ok := p.(DepthConfigurable)
	is.True(ok)
	gc, ok := p.(GenomeCarrier)
	is.True(ok)
	is.Equal(gc.Genome(), heuristic.Evo7)

	var r AIPlayer = NewRandomPlayer(genetic.NewRNG("x"))
	_, ok = r.(DepthConfigurable)
	is.True(!ok)
}

func TestRandomPlayerPlaysLegalMoves(t *testing.T) {
	is := is.New(t)
	p := NewRandomPlayer(genetic.NewRNG("legal"))
	st := game.NewStandardGame()
	for st.Playing() == game.Playing {
		m, err := p.BestMove(context.Background(), st)
		is.NoErr(err)
		is.True(st.PlayMove(m))
	}
	_, err := p.BestMove(context.Background(), st)
	is.Equal(err, ErrNoMoves)
}

func TestProbabilisticPlayer(t *testing.T) {
	is := is.New(t)
	ab := NewAlphaBetaPlayer(config.DefaultConfig(), heuristic.DefaultGenome)
	mix := NewProbabilisticPlayer(genetic.NewRNG("mix"), ab, NewRandomPlayer(genetic.NewRNG("r")), 1.0)
	mix.SetMaxDepth(2)
	is.Equal(ab.Solver().MaxDepth(), 2)

	st := game.NewStandardGame()
	want, err := ab.BestMove(context.Background(), st)
	is.NoErr(err)
	got, err := mix.BestMove(context.Background(), st)
	is.NoErr(err)
	is.Equal(got, want)
}
