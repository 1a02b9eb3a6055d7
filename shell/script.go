package shell

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"
	luajson "layeh.com/gopher-json"
)

func getShell(L *lua.LState) *ShellController {
	shell := L.GetGlobal("oska_shell")
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

// luaCommand exposes a shell command to Lua. The function takes the rest of
// the command line as one string and returns the command's output, or
// "ERROR: ..." if it failed.
func luaCommand(name string) lua.LGFunction {
	return func(L *lua.LState) int {
		sc := getShell(L)
		line := name
		if lv := L.ToString(1); lv != "" {
			line += " " + lv
		}
		r, err := sc.standardModeSwitch(line)
		if err != nil {
			log.Err(err).Str("command", name).Msg("error-executing-script-command")
			L.Push(lua.LString("ERROR: " + err.Error()))
			return 1
		}
		if r == nil {
			L.Push(lua.LString(""))
			return 1
		}
		L.Push(lua.LString(r.message))
		// return number of results pushed to stack.
		return 1
	}
}

type scriptResult struct {
	Status   string   `json:"status"`
	Winner   string   `json:"winner"`
	Moves    int      `json:"moves"`
	Explored int      `json:"explored"`
	Budget   bool     `json:"budget_exhausted"`
	Path     []string `json:"path"`
}

// Result returns the last solve as a table, or nil if nothing was solved.
func Result(L *lua.LState) int {
	sc := getShell(L)
	if sc.lastResult == nil {
		L.Push(lua.LNil)
		return 1
	}
	res := sc.lastResult
	sr := scriptResult{
		Status:   res.Status.String(),
		Winner:   res.Winner.String(),
		Moves:    res.Moves(),
		Explored: res.Explored,
		Budget:   res.BudgetExhausted,
		Path:     []string{},
	}
	for _, id := range res.Path {
		sr.Path = append(sr.Path, strings.Join(id.Rows(sc.lastCtx), "/"))
	}
	dat, err := json.Marshal(sr)
	if err != nil {
		L.RaiseError("marshal result: %v", err)
		return 0
	}
	v, err := luajson.Decode(L, dat)
	if err != nil {
		L.RaiseError("decode result: %v", err)
		return 0
	}
	L.Push(v)
	return 1
}

var scriptCommands = []string{"load", "side", "depth", "nodes", "heuristic",
	"show", "moves", "solve", "path", "set"}

func (sc *ShellController) script(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("need arguments for script")
	}
	filepath := cmd.args[0]

	L := lua.NewState()
	defer L.Close()

	lsc := L.NewUserData()
	lsc.Value = sc
	L.SetGlobal("oska_shell", lsc)
	for _, c := range scriptCommands {
		L.SetGlobal("oska_"+c, L.NewFunction(luaCommand(c)))
	}
	L.SetGlobal("oska_result", L.NewFunction(Result))
	luajson.Preload(L)

	if err := L.DoFile(filepath); err != nil {
		log.Err(err).Msg("there was a error")
		return nil, err
	}
	return nil, nil
}
