// Package shell is an interactive console for playing against the engine,
// asking it for hints and inspecting positions.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/reversi/ai/player"
	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/config"
	"github.com/domino14/reversi/controller"
	"github.com/domino14/reversi/game"
	"github.com/domino14/reversi/genetic"
)

var errQuit = errors.New("quit requested")

type ShellController struct {
	l   *readline.Instance
	cfg *config.Config
	out io.Writer

	ctrl    *controller.Controller
	players [2]string
	rng     *frand.RNG
	aliases map[string]string
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

// NewShellController makes a shell reading from the terminal. Computer
// moves run in the background so `stop` can interrupt them.
func NewShellController(cfg *config.Config) (*ShellController, error) {
	sc := newShell(cfg, os.Stdout)
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[32mreversi>\033[0m ",
		HistoryFile:     "/tmp/reversi_readline.tmp",
		AutoComplete:    NewShellCompleter(sc),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return nil, err
	}
	sc.l = l
	sc.out = l.Stdout()
	sc.ctrl.SetBackground(true)
	return sc, nil
}

// newShell builds a shell writing to out, with computer moves played in
// the calling goroutine.
func newShell(cfg *config.Config, out io.Writer) *ShellController {
	sc := &ShellController{
		cfg:     cfg,
		out:     out,
		players: [2]string{"human", cfg.GetString(config.ConfigWhiteGenome)},
		rng:     genetic.NewRNG(cfg.GetString(config.ConfigSeed)),
		aliases: map[string]string{},
	}
	size := cfg.GetInt(config.ConfigBoardSize)
	st, err := game.NewGame(size, size)
	if err != nil {
		log.Warn().Err(err).Int("size", size).Msg("bad-board-size-using-standard")
		st = game.NewStandardGame()
	}
	sc.ctrl = controller.New(st)
	sc.ctrl.AddMoveListener(sc)
	sc.ctrl.AddGameListener(sc)
	sc.ctrl.AddSearchListener(sc)
	for i, name := range sc.players {
		p, err := sc.makePlayer(name)
		if err != nil {
			log.Warn().Err(err).Str("player", name).Msg("bad-player-using-human")
			sc.players[i] = "human"
			continue
		}
		sc.ctrl.SetPlayer(colors[i], p)
	}
	return sc
}

var colors = [2]board.Color{board.Black, board.White}

func (sc *ShellController) showMessage(msg string) {
	io.WriteString(sc.out, msg)
	io.WriteString(sc.out, "\n")
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

// makePlayer turns a player description into a player: "human" is nil,
// "random" picks uniformly, "mix:<p>:<genome>" searches with the genome
// with probability p and plays randomly otherwise, and anything else is a
// genome.
func (sc *ShellController) makePlayer(desc string) (player.AIPlayer, error) {
	switch strings.ToLower(desc) {
	case "human", "h":
		return nil, nil
	case "random":
		return player.NewRandomPlayer(sc.rng), nil
	}
	if strings.HasPrefix(desc, "mix:") {
		parts := strings.SplitN(desc, ":", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("want mix:<p>:<genome>, got %q", desc)
		}
		prob, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, err
		}
		if prob < 0 || prob > 1 {
			return nil, fmt.Errorf("mix probability %v not in [0, 1]", prob)
		}
		g, err := genomeFromArg(parts[2])
		if err != nil {
			return nil, err
		}
		ab := player.NewAlphaBetaPlayer(sc.cfg, g)
		ab.SetName(parts[2])
		return player.NewProbabilisticPlayer(sc.rng, ab, player.NewRandomPlayer(sc.rng), prob), nil
	}
	g, err := genomeFromArg(desc)
	if err != nil {
		return nil, err
	}
	p := player.NewAlphaBetaPlayer(sc.cfg, g)
	p.SetName(desc)
	return p, nil
}

// Execute runs one command line.
func (sc *ShellController) Execute(line string) error {
	fields, err := shellquote.Split(line)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}
	if a, ok := sc.aliases[fields[0]]; ok {
		af, err := shellquote.Split(a)
		if err != nil {
			return err
		}
		fields = append(af, fields[1:]...)
	}
	cmd := &shellcmd{name: strings.ToLower(fields[0]), args: fields[1:]}
	h, ok := handlers[cmd.name]
	if !ok {
		// a bare cell is a move
		if _, err := board.ParseCell(cmd.name); err == nil {
			return sc.handleMove(&shellcmd{name: "move", args: fields})
		}
		return fmt.Errorf("unknown command %q; try `help`", cmd.name)
	}
	return h(sc, cmd)
}

// Loop reads commands until exit or EOF and then signals sig.
func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()
	sc.showMessage(sc.ctrl.State().ToDisplayText())
	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}
		err = sc.Execute(strings.TrimSpace(line))
		if errors.Is(err, errQuit) {
			break
		}
		if err != nil {
			sc.showError(err)
		}
	}
	log.Debug().Msg("exiting-readline-loop")
	sig <- syscall.SIGINT
}

// Cleanup stops any computer move still running.
func (sc *ShellController) Cleanup() {
	sc.ctrl.Abort()
	done := make(chan struct{})
	go func() {
		sc.ctrl.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		log.Warn().Msg("search-did-not-stop")
	}
}

// Controller listeners.

func (sc *ShellController) OnMove(c board.Cell, color board.Color, elapsed time.Duration) {
	sc.showMessage(fmt.Sprintf("%s plays %s (%s)", color, c, elapsed.Round(time.Millisecond)))
	sc.showMessage(sc.ctrl.State().ToDisplayText())
}

func (sc *ShellController) OnPass(color board.Color) {
	sc.showMessage(fmt.Sprintf("%s has no move and passes", color))
}

func (sc *ShellController) OnHint(c board.Cell, color board.Color) {
	sc.showMessage(fmt.Sprintf("hint for %s: %s", color, c))
}

func (sc *ShellController) OnGameStart(st *game.State) {}

func (sc *ShellController) OnGameEnd(st *game.State) {
	sc.showMessage(sc.ctrl.EndGameMessage())
}

func (sc *ShellController) OnSearchStart(p player.AIPlayer) {
	log.Debug().Str("player", p.Name()).Msg("thinking")
}

func (sc *ShellController) OnSearchEnd(p player.AIPlayer) {
	if ab, ok := p.(*player.AlphaBetaPlayer); ok {
		log.Debug().Str("player", p.Name()).Int("nodes", ab.Solver().Nodes()).
			Int("depth", ab.Solver().SearchDepth()).Msg("search-done")
	}
}

func (sc *ShellController) OnSearchAborted(p player.AIPlayer) {
	sc.showMessage(p.Name() + " stopped without moving")
}

// searchContext bounds one-off analysis searches run from the shell.
func searchContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 2*time.Minute)
}
