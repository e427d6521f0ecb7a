package shell

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/domino14/reversi/ai/alphabeta"
	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/config"
	"github.com/domino14/reversi/game"
	"github.com/domino14/reversi/heuristic"
)

type shellcmd struct {
	name string
	args []string
}

type handler func(sc *ShellController, cmd *shellcmd) error

var handlers map[string]handler

func init() {
	handlers = map[string]handler{
		"help":    (*ShellController).handleHelp,
		"new":     (*ShellController).handleNew,
		"s":       (*ShellController).handleShow,
		"show":    (*ShellController).handleShow,
		"move":    (*ShellController).handleMove,
		"m":       (*ShellController).handleMove,
		"go":      (*ShellController).handleGo,
		"stop":    (*ShellController).handleStop,
		"player":  (*ShellController).handlePlayer,
		"depth":   (*ShellController).handleDepth,
		"hint":    (*ShellController).handleHint,
		"eval":    (*ShellController).handleEval,
		"history": (*ShellController).handleHistory,
		"moves":   (*ShellController).handleMoves,
		"alias":   (*ShellController).handleAlias,
		"script":  (*ShellController).handleScript,
		"wait":    (*ShellController).handleWait,
		"exit":    (*ShellController).handleExit,
		"bye":     (*ShellController).handleExit,
	}
}

func (sc *ShellController) handleHelp(cmd *shellcmd) error {
	if len(cmd.args) == 0 {
		usage(sc.out, "standard")
	} else {
		usageTopic(sc.out, cmd.args[0])
	}
	return nil
}

func (sc *ShellController) handleNew(cmd *shellcmd) error {
	var st *game.State
	if len(cmd.args) > 0 {
		n, err := strconv.Atoi(cmd.args[0])
		if err != nil {
			return err
		}
		if st, err = game.NewGame(n, n); err != nil {
			return err
		}
	} else {
		size := sc.ctrl.State().Board().NumRows()
		var err error
		if st, err = game.NewGame(size, size); err != nil {
			return err
		}
	}
	sc.ctrl.NewGame(st)
	sc.showMessage(st.ToDisplayText())
	sc.ctrl.ContinueGame()
	return nil
}

func (sc *ShellController) handleShow(cmd *shellcmd) error {
	sc.showMessage(sc.ctrl.State().ToDisplayText())
	return nil
}

func (sc *ShellController) handleMove(cmd *shellcmd) error {
	if len(cmd.args) != 1 {
		return errors.New("usage: move <cell>, e.g. move d3")
	}
	c, err := board.ParseCell(cmd.args[0])
	if err != nil {
		return err
	}
	return sc.ctrl.Move(c)
}

func (sc *ShellController) handleGo(cmd *shellcmd) error {
	st := sc.ctrl.State()
	if st.Playing() == game.GameOver {
		return errors.New("game is over; start one with `new`")
	}
	if !sc.ctrl.IsAI(st.Turn()) {
		return fmt.Errorf("%s is human; set a computer with `player %s <genome>`", st.Turn(), st.Turn())
	}
	sc.ctrl.ContinueGame()
	return nil
}

func (sc *ShellController) handleWait(cmd *shellcmd) error {
	sc.ctrl.Wait()
	return nil
}

func (sc *ShellController) handleStop(cmd *shellcmd) error {
	sc.ctrl.Abort()
	return nil
}

func (sc *ShellController) handlePlayer(cmd *shellcmd) error {
	if len(cmd.args) == 0 {
		sc.showMessage(fmt.Sprintf("black: %s\nwhite: %s", sc.players[0], sc.players[1]))
		return nil
	}
	if len(cmd.args) != 2 {
		return errors.New("usage: player <black|white> <human|random|genome|mix:p:genome>")
	}
	color, ok := board.ColorFromString(cmd.args[0])
	if !ok {
		return fmt.Errorf("not a color: %q", cmd.args[0])
	}
	p, err := sc.makePlayer(cmd.args[1])
	if err != nil {
		return err
	}
	sc.ctrl.SetPlayer(color, p)
	sc.players[color.Index()] = cmd.args[1]
	log.Debug().Str("color", color.String()).Str("player", cmd.args[1]).Msg("player-set")
	return nil
}

func (sc *ShellController) handleDepth(cmd *shellcmd) error {
	if len(cmd.args) != 1 {
		return errors.New("usage: depth <plies>")
	}
	d, err := strconv.Atoi(cmd.args[0])
	if err != nil {
		return err
	}
	if d < 1 {
		return errors.New("depth must be at least 1")
	}
	sc.cfg.Set(config.ConfigSearchDepth, d)
	sc.cfg.Set(config.ConfigDynamicDepth, false)
	sc.ctrl.SetSearchDepth(d)
	return nil
}

// handleHint searches the current position with a genome (the default one
// unless named) and shows the best move and the expected line. `hint on`
// makes the computer players suggest moves instead of playing them.
func (sc *ShellController) handleHint(cmd *shellcmd) error {
	if len(cmd.args) == 1 && (cmd.args[0] == "on" || cmd.args[0] == "off") {
		on := cmd.args[0] == "on"
		sc.ctrl.SetHintOnly(on)
		if on {
			sc.ctrl.ContinueGame()
		}
		return nil
	}
	g := heuristic.DefaultGenome
	if len(cmd.args) > 0 {
		var err error
		if g, err = genomeFromArg(cmd.args[0]); err != nil {
			return err
		}
	}
	st := sc.ctrl.State()
	solver := alphabeta.NewSolver(sc.cfg, g)
	ctx, cancel := searchContext()
	defer cancel()
	m, err := solver.BestMove(ctx, st)
	if err != nil {
		return err
	}
	pv := solver.PrincipalVariation()
	pr := message.NewPrinter(language.English)
	sc.showMessage(pr.Sprintf("best for %s: %s (depth %d, %d nodes)", st.Turn(), m,
		solver.SearchDepth(), solver.Nodes()))
	if len(pv) > 0 {
		strs := make([]string, len(pv))
		for i, c := range pv {
			strs[i] = c.String()
		}
		sc.showMessage("line: " + strings.Join(strs, " "))
	}
	return nil
}

// handleEval shows the one-ply value of every legal move, or with
// `eval position` the feature breakdown of the position itself.
func (sc *ShellController) handleEval(cmd *shellcmd) error {
	st := sc.ctrl.State()
	if len(cmd.args) > 0 && cmd.args[0] == "position" {
		color := st.Turn()
		if !color.IsPlayer() {
			color = board.Black
		}
		sc.showMessage(heuristic.Evaluate(st.Board(), color).String())
		return nil
	}
	g := heuristic.DefaultGenome
	if len(cmd.args) > 0 {
		var err error
		if g, err = genomeFromArg(cmd.args[0]); err != nil {
			return err
		}
	}
	if st.Playing() == game.GameOver {
		return errors.New("game is over")
	}
	mvs := heuristic.EvaluateAllMoves(st.Board(), st.Turn(), g)
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-5s %10s\n", "move", "value")
	for _, mv := range mvs {
		fmt.Fprintf(&sb, "%-5s %10d\n", mv.Cell, mv.Value)
	}
	if best, ok := heuristic.BestMoveValue(mvs); ok {
		fmt.Fprintf(&sb, "best: %s", best.Cell)
	}
	sc.showMessage(sb.String())
	return nil
}

func (sc *ShellController) handleHistory(cmd *shellcmd) error {
	h := sc.ctrl.History()
	sc.showMessage(h.String())
	return nil
}

func (sc *ShellController) handleMoves(cmd *shellcmd) error {
	st := sc.ctrl.State()
	moves := st.ValidMoves()
	strs := make([]string, len(moves))
	for i, c := range moves {
		strs[i] = c.String()
	}
	sc.showMessage(fmt.Sprintf("%s: %s", st.Turn(), strings.Join(strs, " ")))
	return nil
}

func (sc *ShellController) handleAlias(cmd *shellcmd) error {
	switch {
	case len(cmd.args) == 0:
		for k, v := range sc.aliases {
			sc.showMessage(k + " = " + v)
		}
	case len(cmd.args) == 1:
		delete(sc.aliases, cmd.args[0])
	default:
		if _, ok := handlers[cmd.args[0]]; ok {
			return fmt.Errorf("%q is already a command", cmd.args[0])
		}
		sc.aliases[cmd.args[0]] = strings.Join(cmd.args[1:], " ")
	}
	return nil
}

func (sc *ShellController) handleExit(cmd *shellcmd) error {
	return errQuit
}

// genomeFromArg accepts a preset name or 16 comma-separated weights.
func genomeFromArg(arg string) (heuristic.Genome, error) {
	if !strings.Contains(arg, ",") {
		return heuristic.Preset(arg)
	}
	parts := strings.Split(arg, ",")
	ws := make([]int, len(parts))
	for i, p := range parts {
		w, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return heuristic.Genome{}, err
		}
		ws[i] = w
	}
	return heuristic.NewGenome(ws...)
}
