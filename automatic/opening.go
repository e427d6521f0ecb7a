package automatic

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/domino14/reversi/ai/player"
	"github.com/domino14/reversi/config"
	"github.com/domino14/reversi/game"
	"github.com/domino14/reversi/heuristic"
)

// GenerateOpening plays the default genome against itself until at least
// fraction of the board is covered, giving tournaments a common start
// position past the book openings.
func GenerateOpening(ctx context.Context, cfg *config.Config, fraction float64) (*game.State, error) {
	size := cfg.GetInt(config.ConfigBoardSize)
	st, err := game.NewGame(size, size)
	if err != nil {
		return nil, err
	}
	p := player.NewAlphaBetaPlayer(cfg, heuristic.DefaultGenome)
	target := fraction * float64(st.Board().NumCells())
	for st.Playing() == game.Playing && float64(st.Board().Pieces().Len()) < target {
		m, err := p.BestMove(ctx, st)
		if err != nil {
			return nil, err
		}
		st.PlayMove(m)
	}
	log.Debug().Int("pieces", st.Board().Pieces().Len()).Float64("fraction", fraction).
		Msg("opening-generated")
	return st, nil
}
