package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/reversi/ai/player"
	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/config"
	"github.com/domino14/reversi/controller"
	"github.com/domino14/reversi/game"
	"github.com/domino14/reversi/heuristic"
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

	size := cfg.GetInt(config.ConfigBoardSize)
	st, err := game.NewGame(size, size)
	if err != nil {
		log.Fatal().Err(err).Msg("bad board size")
	}
	c := controller.New(st)
	for _, side := range []struct {
		color board.Color
		key   string
	}{{board.Black, config.ConfigBlackGenome}, {board.White, config.ConfigWhiteGenome}} {
		name := cfg.GetString(side.key)
		g, err := heuristic.Preset(name)
		if err != nil {
			log.Fatal().Err(err).Str("color", side.color.String()).Msg("bad genome")
		}
		p := player.NewAlphaBetaPlayer(cfg, g)
		p.SetName(name)
		c.SetPlayer(side.color, p)
		log.Info().Str("color", side.color.String()).Str("genome", name).Str("id", g.ID()).Msg("player")
	}

	c.StartGame()

	h := c.History()
	fmt.Println(h.String())
	fmt.Println(c.State().ToDisplayText())
	fmt.Println()
	fmt.Println(c.EndGameMessage())
}
