package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/reversi/automatic"
	"github.com/domino14/reversi/config"
	"github.com/domino14/reversi/genetic"
)

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log.Info().Msgf("Loaded config: %v", cfg.SanitizedSettings())

	if p := cfg.GetString(config.ConfigCPUProfile); p != "" {
		f, err := os.Create(p)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create CPU profile")
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer pprof.StopCPUProfile()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		if errors.Is(err, context.Canceled) {
			log.Info().Msg("interrupted")
			return
		}
		log.Error().Err(err).Msg("evolution failed")
		pprof.StopCPUProfile()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	rng := genetic.NewRNG(cfg.GetString(config.ConfigSeed))

	start, err := automatic.GenerateOpening(ctx, cfg, cfg.GetFloat64(config.ConfigStartPercent))
	if err != nil {
		return err
	}
	fmt.Println("tournament start position:")
	fmt.Println(start.ToDisplayText())

	e, err := automatic.NewEvolver(cfg, start, rng)
	if err != nil {
		return err
	}
	e.Out = os.Stdout

	if path := cfg.GetString(config.ConfigMatchLog); path != "" {
		logChan, closer, err := automatic.StartMatchLog(path)
		if err != nil {
			return err
		}
		e.Tournament.LogChan = logChan
		defer func() {
			if err := closer(); err != nil {
				log.Error().Err(err).Str("file", path).Msg("closing-match-log")
				return
			}
			summary, err := automatic.AnalyzeMatchLog(path)
			if err != nil {
				log.Error().Err(err).Msg("analyzing-match-log")
				return
			}
			fmt.Print(summary)
		}()
	}

	pop, gen, err := e.InitialPopulation()
	if err != nil {
		return err
	}
	final, err := e.Run(ctx, pop, gen)
	if err != nil {
		return err
	}
	fmt.Println("final population:")
	for _, g := range final {
		fmt.Printf("%s %s\n", g.ID(), g)
	}
	return nil
}
