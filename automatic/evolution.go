package automatic

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/reversi/config"
	"github.com/domino14/reversi/game"
	"github.com/domino14/reversi/genetic"
	"github.com/domino14/reversi/heuristic"
	"github.com/domino14/reversi/stats"
)

// Shape fixes how each generation is made up. Population must equal the
// sum of the other four.
type Shape struct {
	Population int
	Survivors  int
	Mutations  int
	Crossovers int
	Randoms    int
}

func ShapeFromConfig(cfg *config.Config) Shape {
	return Shape{
		Population: cfg.GetInt(config.ConfigPopulationSize),
		Survivors:  cfg.GetInt(config.ConfigSurvivors),
		Mutations:  cfg.GetInt(config.ConfigMutations),
		Crossovers: cfg.GetInt(config.ConfigCrossovers),
		Randoms:    cfg.GetInt(config.ConfigRandoms),
	}
}

// Validate checks the shape can be filled: mutants come from distinct
// survivors and crossover children from distinct survivor pairs.
func (s Shape) Validate() error {
	switch {
	case s.Survivors < 1 || s.Mutations < 0 || s.Crossovers < 0 || s.Randoms < 0:
		return fmt.Errorf("%w: negative count or no survivors in %+v", ErrBadPopulationShape, s)
	case s.Survivors+s.Mutations+s.Crossovers+s.Randoms != s.Population:
		return fmt.Errorf("%w: %d+%d+%d+%d != %d", ErrBadPopulationShape,
			s.Survivors, s.Mutations, s.Crossovers, s.Randoms, s.Population)
	case s.Mutations > s.Survivors:
		return fmt.Errorf("%w: %d mutations need as many survivors, have %d",
			ErrBadPopulationShape, s.Mutations, s.Survivors)
	case s.Crossovers > s.Survivors*(s.Survivors-1)/2:
		return fmt.Errorf("%w: not enough survivor pairs for %d crossovers",
			ErrBadPopulationShape, s.Crossovers)
	}
	return nil
}

// SelectBest returns the k genomes with the highest scores, best first.
// Equal scores keep population order.
func SelectBest(pop []heuristic.Genome, scores []int, k int) []heuristic.Genome {
	idx := lo.Range(len(pop))
	sort.SliceStable(idx, func(a, b int) bool {
		return scores[idx[a]] > scores[idx[b]]
	})
	k = min(k, len(pop))
	return lo.Map(idx[:k], func(i int, _ int) heuristic.Genome {
		return pop[i]
	})
}

// Reproduce builds the next generation: the survivors unchanged, then
// mutants of distinct survivors, then crossovers of distinct survivor
// pairs, then fully random genomes.
func Reproduce(src genetic.Source, survivors []heuristic.Genome, shape Shape) ([]heuristic.Genome, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if len(survivors) != shape.Survivors {
		return nil, fmt.Errorf("%w: have %d survivors, want %d",
			ErrBadPopulationShape, len(survivors), shape.Survivors)
	}
	k := len(survivors)
	next := make([]heuristic.Genome, 0, shape.Population)
	next = append(next, survivors...)

	used := make([]bool, k)
	for n := 0; n < shape.Mutations; n++ {
		i := genetic.RandomInt(src, 0, k)
		for used[i] {
			i = genetic.RandomInt(src, 0, k)
		}
		used[i] = true
		next = append(next, genetic.RandomMutations(src, survivors[i]))
	}

	paired := make(map[[2]int]bool)
	for n := 0; n < shape.Crossovers; n++ {
		var a, b int
		for {
			a, b = genetic.RandomInt(src, 0, k), genetic.RandomInt(src, 0, k)
			if a != b && !paired[[2]int{min(a, b), max(a, b)}] {
				break
			}
		}
		paired[[2]int{min(a, b), max(a, b)}] = true
		next = append(next, genetic.RandomCrossover(src, survivors[a], survivors[b]))
	}

	for n := 0; n < shape.Randoms; n++ {
		next = append(next, genetic.FullyRandomGenome(src))
	}
	return next, nil
}

// RandomPopulation draws n fully random genomes.
func RandomPopulation(src genetic.Source, n int) []heuristic.Genome {
	return lo.Times(n, func(int) heuristic.Genome {
		return genetic.FullyRandomGenome(src)
	})
}

// GenerationReport summarizes one tournament round.
type GenerationReport struct {
	Generation int
	Population []heuristic.Genome
	Scores     []int
	Survivors  []heuristic.Genome
	Scoreboard stats.Statistic
	Elapsed    time.Duration
}

// Evolver runs the generation loop.
type Evolver struct {
	Shape          Shape
	Generations    int
	Tournament     *Tournament
	RNG            genetic.Source
	PopulationFile string
	// Out receives the human-readable summaries; nil discards them.
	Out io.Writer
}

// NewEvolver wires an evolver from cfg, playing every match from start.
func NewEvolver(cfg *config.Config, start *game.State, rng genetic.Source) (*Evolver, error) {
	shape := ShapeFromConfig(cfg)
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	return &Evolver{
		Shape:       shape,
		Generations: cfg.GetInt(config.ConfigGenerations),
		Tournament: &Tournament{
			Start:   start,
			Factory: TournamentPlayerFactory(cfg),
			Threads: cfg.GetInt(config.ConfigThreads),
		},
		RNG:            rng,
		PopulationFile: cfg.GetString(config.ConfigPopulationFile),
		Out:            io.Discard,
	}, nil
}

// InitialPopulation loads the population file if there is one, or else
// draws a random population.
func (e *Evolver) InitialPopulation() ([]heuristic.Genome, int, error) {
	if e.PopulationFile != "" {
		pf, err := LoadPopulation(e.PopulationFile)
		switch {
		case err == nil:
			if len(pf.Genomes) != e.Shape.Population {
				return nil, 0, fmt.Errorf("%w: file has %d genomes, want %d",
					ErrBadPopulationShape, len(pf.Genomes), e.Shape.Population)
			}
			log.Info().Str("file", e.PopulationFile).Int("generation", pf.Generation).
				Msg("loaded-population")
			return pf.Genomes, pf.Generation, nil
		case !errors.Is(err, os.ErrNotExist):
			return nil, 0, err
		}
	}
	return RandomPopulation(e.RNG, e.Shape.Population), 0, nil
}

// Step plays one generation and breeds the next.
func (e *Evolver) Step(ctx context.Context, gen int, pop []heuristic.Genome) ([]heuristic.Genome, GenerationReport, error) {
	rep := GenerationReport{Generation: gen, Population: pop}
	if len(pop) != e.Shape.Population {
		return nil, rep, fmt.Errorf("%w: population has %d genomes, want %d",
			ErrBadPopulationShape, len(pop), e.Shape.Population)
	}
	tstart := time.Now()
	e.Tournament.Generation = gen
	scores, _, err := e.Tournament.Play(ctx, pop)
	if err != nil {
		return nil, rep, err
	}
	rep.Scores = scores
	for _, s := range scores {
		rep.Scoreboard.PushInt(s)
	}
	rep.Survivors = SelectBest(pop, scores, e.Shape.Survivors)
	next, err := Reproduce(e.RNG, rep.Survivors, e.Shape)
	if err != nil {
		return nil, rep, err
	}
	rep.Elapsed = time.Since(tstart)
	log.Info().
		Int("generation", gen).
		Float64("mean-score", rep.Scoreboard.Mean()).
		Float64("max-score", rep.Scoreboard.Max()).
		Str("best", rep.Survivors[0].ID()).
		Dur("elapsed", rep.Elapsed).
		Msg("generation-finished")
	return next, rep, nil
}

// Run plays the configured number of generations starting from pop and
// returns the final population.
func (e *Evolver) Run(ctx context.Context, pop []heuristic.Genome, firstGen int) ([]heuristic.Genome, error) {
	if IsPlaying.Value() > 0 {
		return nil, ErrAlreadyPlaying
	}
	IsPlaying.Add(1)
	defer IsPlaying.Add(-1)

	for gen := firstGen + 1; gen <= firstGen+e.Generations; gen++ {
		next, rep, err := e.Step(ctx, gen, pop)
		if err != nil {
			return pop, err
		}
		if e.Out != nil {
			if err := WriteReport(e.Out, rep); err != nil {
				return pop, err
			}
		}
		pop = next
		if e.PopulationFile != "" {
			if err := SavePopulation(e.PopulationFile, PopulationFile{Generation: gen, Genomes: pop}); err != nil {
				return pop, err
			}
		}
	}
	return pop, nil
}

// WriteReport prints the scoreboard and a histogram of scores.
func WriteReport(w io.Writer, rep GenerationReport) error {
	fmt.Fprintf(w, "######### generation %d #########\n", rep.Generation)
	order := lo.Range(len(rep.Population))
	sort.SliceStable(order, func(a, b int) bool {
		return rep.Scores[order[a]] > rep.Scores[order[b]]
	})
	for _, i := range order {
		fmt.Fprintf(w, "%s %+4d %s\n", rep.Population[i].ID(), rep.Scores[i], rep.Population[i])
	}
	fmt.Fprintf(w, "scores: %s\n", rep.Scoreboard.String())
	data := lo.Map(rep.Scores, func(s int, _ int) float64 { return float64(s) })
	if rep.Scoreboard.Max() > rep.Scoreboard.Min() {
		hist := histogram.Hist(8, data)
		if err := histogram.Fprint(w, hist, histogram.Linear(40)); err != nil {
			return err
		}
	}
	fmt.Fprintf(w, "survivors: %v\n", lo.Map(rep.Survivors, func(g heuristic.Genome, _ int) string {
		return g.ID()
	}))
	fmt.Fprintf(w, "time: %s\n", rep.Elapsed.Round(time.Millisecond))
	return nil
}
