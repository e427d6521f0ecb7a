package automatic

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domino14/reversi/ai/player"
	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/config"
	"github.com/domino14/reversi/game"
	"github.com/domino14/reversi/genetic"
	"github.com/domino14/reversi/heuristic"
)

func smallConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigBoardSize, 6)
	cfg.Set(config.ConfigDynamicDepth, false)
	cfg.Set(config.ConfigSearchDepth, 2)
	cfg.Set(config.ConfigTournamentDepth, 1)
	return cfg
}

func smallStart(t *testing.T) *game.State {
	st, err := game.NewGame(6, 6)
	require.NoError(t, err)
	return st
}

func presets(t *testing.T, names ...string) []heuristic.Genome {
	out := make([]heuristic.Genome, len(names))
	for i, n := range names {
		g, err := heuristic.Preset(n)
		require.NoError(t, err)
		out[i] = g
	}
	return out
}

func TestPairings(t *testing.T) {
	is := is.New(t)
	ps := Pairings(5)
	is.Equal(len(ps), 20)
	seen := map[Pairing]bool{}
	for _, p := range ps {
		is.True(p.Black != p.White)
		is.True(!seen[p])
		seen[p] = true
	}
	is.Equal(len(Pairings(1)), 0)
}

func TestShapeValidate(t *testing.T) {
	cases := []struct {
		name  string
		shape Shape
		ok    bool
	}{
		{"defaults", Shape{16, 7, 4, 4, 1}, true},
		{"sum mismatch", Shape{16, 7, 4, 4, 2}, false},
		{"no survivors", Shape{2, 0, 0, 0, 2}, false},
		{"too many mutations", Shape{6, 2, 3, 0, 1}, false},
		{"every pair crossed", Shape{6, 3, 0, 3, 0}, true},
		{"pairs exhausted", Shape{7, 3, 0, 4, 0}, false},
		{"negative", Shape{4, 5, -1, 0, 0}, false},
	}
	for _, tc := range cases {
		err := tc.shape.Validate()
		if tc.ok {
			assert.NoError(t, err, tc.name)
		} else {
			assert.ErrorIs(t, err, ErrBadPopulationShape, tc.name)
		}
	}
}

func TestSelectBest(t *testing.T) {
	is := is.New(t)
	pop := presets(t, "default", "evo1", "evo2", "evo6")
	best := SelectBest(pop, []int{1, 3, 3, -2}, 3)
	is.Equal(best, []heuristic.Genome{pop[1], pop[2], pop[0]})
	is.Equal(len(SelectBest(pop, []int{0, 0, 0, 0}, 10)), 4)
}

func TestReproduce(t *testing.T) {
	is := is.New(t)
	src := genetic.NewRNG("reproduce")
	survivors := presets(t, "default", "evo1", "evo2")
	shape := Shape{Population: 8, Survivors: 3, Mutations: 2, Crossovers: 3, Randoms: 0}
	next, err := Reproduce(src, survivors, shape)
	is.NoErr(err)
	is.Equal(len(next), 8)
	is.Equal(next[:3], survivors)

	_, err = Reproduce(src, survivors[:2], shape)
	is.True(errors.Is(err, ErrBadPopulationShape))
}

func TestReproduceIsSeeded(t *testing.T) {
	is := is.New(t)
	survivors := presets(t, "evo7", "evo8a", "evo8b", "evo8c")
	shape := Shape{Population: 10, Survivors: 4, Mutations: 2, Crossovers: 2, Randoms: 2}
	a, err := Reproduce(genetic.NewRNG("same"), survivors, shape)
	is.NoErr(err)
	b, err := Reproduce(genetic.NewRNG("same"), survivors, shape)
	is.NoErr(err)
	is.Equal(a, b)
}

func TestBattle(t *testing.T) {
	is := is.New(t)
	cfg := smallConfig()
	f := TournamentPlayerFactory(cfg)
	start := smallStart(t)
	r, err := Battle(context.Background(), start, f(heuristic.DefaultGenome), f(heuristic.Evo8c))
	is.NoErr(err)
	is.True(r.Black+r.White <= 36)
	is.True(r.Black+r.White > 4)
	is.True(r.Moves > 0)
	// the start position is not consumed
	is.Equal(start.Board().Pieces().Len(), 4)

	again, err := Battle(context.Background(), start, f(heuristic.DefaultGenome), f(heuristic.Evo8c))
	is.NoErr(err)
	is.Equal(again.Black, r.Black)
	is.Equal(again.White, r.White)
}

func TestBattleCancelled(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rp := player.NewRandomPlayer(genetic.NewRNG("x"))
	_, err := Battle(ctx, smallStart(t), rp, rp)
	is.True(errors.Is(err, context.Canceled))
}

// cancellingPlayer cancels the match context as soon as it has chosen
// its move.
type cancellingPlayer struct {
	player.AIPlayer
	cancel context.CancelFunc
}

func (p cancellingPlayer) BestMove(ctx context.Context, st *game.State) (board.Cell, error) {
	m, err := p.AIPlayer.BestMove(ctx, st)
	p.cancel()
	return m, err
}

func TestBattleCancelledMidGame(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rp := player.NewRandomPlayer(genetic.NewRNG("mid"))
	_, err := Battle(ctx, smallStart(t), cancellingPlayer{rp, cancel}, rp)
	is.True(errors.Is(err, context.Canceled))
}

func TestOpeningInterrupted(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := smallConfig()
	cfg.Set(config.ConfigBoardSize, 8)
	_, err := GenerateOpening(ctx, cfg, 0.5)
	is.True(errors.Is(err, context.Canceled))
}

func TestResultCmp(t *testing.T) {
	is := is.New(t)
	is.Equal(Result{Black: 20, White: 16}.Cmp(), 1)
	is.Equal(Result{Black: 10, White: 26}.Cmp(), -1)
	is.Equal(Result{Black: 18, White: 18}.Cmp(), 0)
}

func TestTournamentDoesNotDependOnThreads(t *testing.T) {
	is := is.New(t)
	cfg := smallConfig()
	pop := presets(t, "default", "evo1", "evo8c")
	var first []int
	for _, threads := range []int{1, 3} {
		tour := &Tournament{Start: smallStart(t), Factory: TournamentPlayerFactory(cfg), Threads: threads}
		scores, results, err := tour.Play(context.Background(), pop)
		is.NoErr(err)
		is.Equal(len(results), 6)
		sum := 0
		for _, s := range scores {
			sum += s
		}
		is.Equal(sum, 0)
		if first == nil {
			first = scores
		} else {
			is.Equal(scores, first)
		}
	}
}

func TestMatchLog(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "matches.csv")
	ch, closer, err := StartMatchLog(path)
	is.NoErr(err)
	ch <- MatchRecord{Generation: 1, Match: 1, Black: "aaaaaaaa", White: "bbbbbbbb",
		Result: Result{Black: 40, White: 24, BlackTime: time.Second, Moves: 58}}
	ch <- MatchRecord{Generation: 1, Match: 2, Black: "bbbbbbbb", White: "aaaaaaaa",
		Result: Result{Black: 32, White: 32, Moves: 60}}
	is.NoErr(closer())

	raw, err := os.ReadFile(path)
	is.NoErr(err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	is.Equal(len(lines), 3)
	is.Equal(lines[1], "1,1,aaaaaaaa,bbbbbbbb,40,24,1000,0,58")

	summary, err := AnalyzeMatchLog(path)
	is.NoErr(err)
	is.True(strings.Contains(summary, "Games played: 2"))
	is.True(strings.Contains(summary, "Black wins: 1"))
	is.True(strings.Contains(summary, "Ties: 1"))
	// aaaaaaaa won one and tied one
	is.True(strings.Contains(summary, "aaaaaaaa      2    75.00"))
}

func TestPopulationFile(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "pop.yaml")
	pf := PopulationFile{Generation: 3, Genomes: presets(t, "evo2", "evo6")}
	is.NoErr(SavePopulation(path, pf))
	back, err := LoadPopulation(path)
	is.NoErr(err)
	is.Equal(back, pf)

	_, err = LoadPopulation(filepath.Join(t.TempDir(), "missing.yaml"))
	is.True(errors.Is(err, os.ErrNotExist))
}

func TestEvolverRun(t *testing.T) {
	is := is.New(t)
	cfg := smallConfig()
	cfg.Set(config.ConfigPopulationSize, 4)
	cfg.Set(config.ConfigSurvivors, 2)
	cfg.Set(config.ConfigMutations, 1)
	cfg.Set(config.ConfigCrossovers, 1)
	cfg.Set(config.ConfigRandoms, 0)
	cfg.Set(config.ConfigGenerations, 2)
	cfg.Set(config.ConfigThreads, 2)
	cfg.Set(config.ConfigPopulationFile, filepath.Join(t.TempDir(), "pop.yaml"))

	e, err := NewEvolver(cfg, smallStart(t), genetic.NewRNG("evolve"))
	is.NoErr(err)
	var out bytes.Buffer
	e.Out = &out

	pop, gen, err := e.InitialPopulation()
	is.NoErr(err)
	is.Equal(gen, 0)
	is.Equal(len(pop), 4)

	next, rep, err := e.Step(context.Background(), 1, pop)
	is.NoErr(err)
	is.Equal(len(next), 4)
	is.Equal(next[:2], rep.Survivors)
	is.Equal(rep.Scoreboard.Iterations(), 4)

	final, err := e.Run(context.Background(), next, 1)
	is.NoErr(err)
	is.Equal(len(final), 4)
	is.True(strings.Contains(out.String(), "generation 2"))
	is.True(strings.Contains(out.String(), "generation 3"))

	pf, err := LoadPopulation(cfg.GetString(config.ConfigPopulationFile))
	is.NoErr(err)
	is.Equal(pf.Generation, 3)
	is.Equal(pf.Genomes, final)

	// a second evolver resumes from the file
	e2, err := NewEvolver(cfg, smallStart(t), genetic.NewRNG("evolve"))
	is.NoErr(err)
	resumed, gen, err := e2.InitialPopulation()
	is.NoErr(err)
	is.Equal(gen, 3)
	is.Equal(resumed, final)
}

func TestNewEvolverRejectsBadShape(t *testing.T) {
	cfg := smallConfig()
	cfg.Set(config.ConfigRandoms, 5)
	_, err := NewEvolver(cfg, smallStart(t), genetic.NewRNG(""))
	assert.ErrorIs(t, err, ErrBadPopulationShape)
}

func TestGenerateOpening(t *testing.T) {
	is := is.New(t)
	cfg := smallConfig()
	st, err := GenerateOpening(context.Background(), cfg, 0.5)
	is.NoErr(err)
	is.True(st.Board().Pieces().Len() >= 18 || st.Playing() == game.GameOver)
	is.Equal(st.Board().NumCells(), 36)
}
