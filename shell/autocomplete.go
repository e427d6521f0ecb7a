package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/samber/lo"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/heuristic"
)

// ShellCompleter completes command names, player descriptions and
// legal moves.
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

var commandNames = []string{
	"help", "new", "show", "move", "go", "stop", "player", "depth",
	"hint", "eval", "history", "moves", "alias", "script", "wait", "exit",
}

// completions returns the candidates for the word after fields.
func (c *ShellCompleter) completions(fields []string) []string {
	if len(fields) == 0 {
		return append(append([]string{}, commandNames...), lo.Keys(c.sc.aliases)...)
	}
	switch fields[0] {
	case "player":
		if len(fields) == 1 {
			return []string{"black", "white"}
		}
		return append([]string{"human", "random"}, heuristic.PresetNames()...)
	case "hint":
		return append([]string{"on", "off"}, heuristic.PresetNames()...)
	case "eval":
		return append([]string{"position"}, heuristic.PresetNames()...)
	case "move", "m":
		return lo.Map(c.sc.ctrl.State().ValidMoves(), func(cl board.Cell, _ int) string {
			return cl.String()
		})
	case "help":
		return commandNames
	}
	return nil
}

// Do implements readline.AutoCompleter.
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])
	fields, err := shellquote.Split(text)
	if err != nil {
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	if len(fields) > 0 && !endsWithSpace {
		prefix = fields[len(fields)-1]
		fields = fields[:len(fields)-1]
	}
	var matches [][]rune
	for _, cand := range c.completions(fields) {
		if strings.HasPrefix(cand, prefix) {
			matches = append(matches, []rune(cand[len(prefix):]))
		}
	}
	return matches, len(prefix)
}
