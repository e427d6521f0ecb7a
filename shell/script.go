package shell

import (
	"bytes"
	"errors"
	"io"

	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"
	luajson "layeh.com/gopher-json"

	"github.com/domino14/reversi/game"
)

func getShell(L *lua.LState) *ShellController {
	shell := L.GetGlobal("reversi_shell")
	ud, ok := shell.(*lua.LUserData)
	if !ok {
		panic("luserdata not right type")
	}
	sc, ok := ud.Value.(*ShellController)
	if !ok {
		panic("shellcontroller not right type")
	}
	return sc
}

// Run executes a shell command line and returns what it printed, or
// nil and the error message.
func Run(L *lua.LState) int {
	line := L.CheckString(1)
	sc := getShell(L)
	var buf bytes.Buffer
	out := sc.out
	sc.out = &buf
	err := sc.Execute(line)
	sc.ctrl.Wait()
	sc.out = out
	if err != nil {
		log.Err(err).Str("line", line).Msg("error-executing-script-command")
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LString(buf.String()))
	return 1
}

// State returns a table describing the current game.
func State(L *lua.LState) int {
	sc := getShell(L)
	st := sc.ctrl.State()
	black, white := st.Score()
	t := L.NewTable()
	t.RawSetString("black", lua.LNumber(black))
	t.RawSetString("white", lua.LNumber(white))
	t.RawSetString("turn", lua.LString(st.Turn().String()))
	t.RawSetString("over", lua.LBool(st.Playing() == game.GameOver))
	t.RawSetString("ply", lua.LNumber(st.Depth()))
	moves := L.NewTable()
	for _, c := range st.ValidMoves() {
		moves.Append(lua.LString(c.String()))
	}
	t.RawSetString("moves", moves)
	L.Push(t)
	return 1
}

func (sc *ShellController) handleScript(cmd *shellcmd) error {
	if len(cmd.args) == 0 {
		return errors.New("usage: script <file.lua>")
	}
	L := lua.NewState()
	defer L.Close()
	luajson.Preload(L)

	lsc := L.NewUserData()
	lsc.Value = sc
	L.SetGlobal("reversi_shell", lsc)
	L.SetGlobal("reversi_run", L.NewFunction(Run))
	L.SetGlobal("reversi_state", L.NewFunction(State))
	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		for i := 1; i <= L.GetTop(); i++ {
			if i > 1 {
				io.WriteString(sc.out, "\t")
			}
			io.WriteString(sc.out, L.ToStringMeta(L.Get(i)).String())
		}
		io.WriteString(sc.out, "\n")
		return 0
	}))

	if err := L.DoFile(cmd.args[0]); err != nil {
		log.Err(err).Str("file", cmd.args[0]).Msg("script-failed")
		return err
	}
	return nil
}
