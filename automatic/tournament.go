package automatic

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/reversi/ai/player"
	"github.com/domino14/reversi/config"
	"github.com/domino14/reversi/game"
	"github.com/domino14/reversi/heuristic"
)

// PlayerFactory makes a fresh player for a genome. Every match gets its
// own players so concurrent matches share nothing.
type PlayerFactory func(g heuristic.Genome) player.AIPlayer

// TournamentPlayerFactory builds alpha-beta players that search to the
// configured tournament depth.
func TournamentPlayerFactory(cfg *config.Config) PlayerFactory {
	depth := cfg.GetInt(config.ConfigTournamentDepth)
	return func(g heuristic.Genome) player.AIPlayer {
		p := player.NewAlphaBetaPlayer(cfg, g)
		p.SetMaxDepth(depth)
		return p
	}
}

// Pairing is one match of a round robin, by population index.
type Pairing struct {
	Black int
	White int
}

// Pairings lists every ordered pair (i, j) with i != j, black-major.
func Pairings(n int) []Pairing {
	out := make([]Pairing, 0, n*(n-1))
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j {
				out = append(out, Pairing{i, j})
			}
		}
	}
	return out
}

// Tournament plays round robins from a fixed start position.
type Tournament struct {
	Start   *game.State
	Factory PlayerFactory
	// Threads is how many matches run at once. Results do not depend on
	// it.
	Threads    int
	LogChan    chan<- MatchRecord
	Generation int
}

// Play runs the round robin over pop and returns each genome's score: a
// point for every win, minus a point for every loss, with either color.
func (t *Tournament) Play(ctx context.Context, pop []heuristic.Genome) ([]int, []Result, error) {
	pairs := Pairings(len(pop))
	results := make([]Result, len(pairs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, t.Threads))
	for k, p := range pairs {
		k, p := k, p
		g.Go(func() error {
			r, err := Battle(gctx, t.Start, t.Factory(pop[p.Black]), t.Factory(pop[p.White]))
			if err != nil {
				return err
			}
			results[k] = r
			MatchCounter.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	scores := make([]int, len(pop))
	for k, p := range pairs {
		r := results[k]
		scores[p.Black] += r.Cmp()
		scores[p.White] -= r.Cmp()
		log.Debug().
			Int("generation", t.Generation).
			Int("match", k+1).
			Int("of", len(pairs)).
			Str("black", pop[p.Black].ID()).
			Str("white", pop[p.White].ID()).
			Int("black-discs", r.Black).
			Int("white-discs", r.White).
			Dur("black-time", r.BlackTime).
			Dur("white-time", r.WhiteTime).
			Msg("match-finished")
		if t.LogChan != nil {
			t.LogChan <- MatchRecord{
				Generation: t.Generation,
				Match:      k + 1,
				Black:      pop[p.Black].ID(),
				White:      pop[p.White].ID(),
				Result:     r,
			}
		}
	}
	return scores, results, nil
}
