package shell

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/oska/board"
	"github.com/domino14/oska/config"
	"github.com/domino14/oska/equity"
	"github.com/domino14/oska/search"
	"github.com/domino14/oska/state"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func testShell() (*ShellController, *bytes.Buffer) {
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigHeuristicCacheFraction, 0.0)
	var buf bytes.Buffer
	return newTestController(cfg, &buf), &buf
}

func TestExtractFields(t *testing.T) {
	is := is.New(t)
	type testdata struct {
		line   string
		expCmd *shellcmd
		expErr error
	}
	cases := []testdata{
		{"", nil, errNoData},
		{"solve -trace /tmp/trace.yaml",
			&shellcmd{"solve", nil, map[string]string{"trace": "/tmp/trace.yaml"}},
			nil},
		{"side black",
			&shellcmd{"side", []string{"black"}, map[string]string{}},
			nil},
		{"load wwww --- -- --- bbbb -x 1 ",
			&shellcmd{"load",
				[]string{"wwww", "---", "--", "---", "bbbb"},
				map[string]string{"x": "1"}},
			nil,
		},
		{"solve -depth 3 -nodes",
			nil, errWrongOptionSyntax},
		// rows that start with an empty cell
		{"load -www/w--/--/---/bbbb",
			&shellcmd{"load", []string{"-www/w--/--/---/bbbb"}, map[string]string{}},
			nil},
		{"load www- -w- -- --- bbbb",
			&shellcmd{"load", []string{"www-", "-w-", "--", "---", "bbbb"}, map[string]string{}},
			nil},
		{"solve -w- 1",
			&shellcmd{"solve", []string{"-w-", "1"}, map[string]string{}},
			nil},
		{"solve -nodes 10 -b--",
			&shellcmd{"solve", []string{"-b--"}, map[string]string{"nodes": "10"}},
			nil},
	}
	for _, t := range cases {
		cmd, err := extractFields(t.line)
		is.Equal(cmd, t.expCmd)
		is.Equal(err, t.expErr)
	}
}

func TestLoadAndShow(t *testing.T) {
	is := is.New(t)
	sc, _ := testShell()

	_, err := sc.standardModeSwitch("show")
	is.True(errors.Is(err, errNoPosition))

	r, err := sc.standardModeSwitch("load wwww/---/--/---/bbbb")
	is.NoErr(err)
	is.True(strings.HasPrefix(r.message, "W W W W\n - - -\n  - -\n - - -\nB B B B\n"))
	is.True(strings.Contains(r.message, "white 4, black 4; solving for white"))
	is.True(strings.Contains(r.message, "blocking estimate: 4"))

	// rows as separate arguments
	r, err = sc.standardModeSwitch("load w--- b-- -- --- ----")
	is.NoErr(err)
	is.Equal(sc.position, state.StateID("w---b-----------"))
	is.True(strings.Contains(r.message, "white 1, black 1"))

	_, err = sc.standardModeSwitch("load www/--/bbb")
	is.True(errors.Is(err, board.ErrInvalidBoard))
	// the old position is kept
	is.Equal(sc.position, state.StateID("w---b-----------"))

	// rows starting with an empty cell are rows, not options
	_, err = sc.standardModeSwitch("load -www/w--/--/---/bbbb")
	is.NoErr(err)
	is.Equal(sc.position, state.StateID("-wwww-------bbbb"))
	_, err = sc.standardModeSwitch("load -www w-- -- --- bbbb")
	is.NoErr(err)
	is.Equal(sc.position, state.StateID("-wwww-------bbbb"))
	_, err = sc.standardModeSwitch("load www- -w- -- --- bbbb")
	is.NoErr(err)
	is.Equal(sc.position, state.StateID("www--w------bbbb"))
}

func TestSideAndSettings(t *testing.T) {
	is := is.New(t)
	sc, _ := testShell()

	r, err := sc.standardModeSwitch("side")
	is.NoErr(err)
	is.Equal(r.message, "side to solve for: white")
	r, err = sc.standardModeSwitch("side b")
	is.NoErr(err)
	is.Equal(sc.side, state.SideB)
	is.Equal(r.message, "side to solve for: black")
	_, err = sc.standardModeSwitch("side green")
	is.True(errors.Is(err, state.ErrUnknownSide))

	_, err = sc.standardModeSwitch("depth 7")
	is.NoErr(err)
	is.Equal(sc.config.GetInt(config.ConfigMaxDepth), 7)
	r, err = sc.standardModeSwitch("depth")
	is.NoErr(err)
	is.Equal(r.message, "max-depth: 7")

	_, err = sc.standardModeSwitch("nodes x")
	is.True(err != nil)
	_, err = sc.standardModeSwitch("heuristic custom")
	is.NoErr(err)
	is.Equal(sc.config.GetString(config.ConfigHeuristic), "custom")
	_, err = sc.standardModeSwitch("heuristic nope")
	is.True(errors.Is(err, equity.ErrUnknownHeuristic))

	_, err = sc.standardModeSwitch("set target-only maybe")
	is.True(err != nil)
	_, err = sc.standardModeSwitch("set cpu-profile /tmp/x")
	is.True(err != nil)
	r, err = sc.standardModeSwitch("set")
	is.NoErr(err)
	is.True(strings.Contains(r.message, "heuristic-cache-fraction"))
}

func TestMoves(t *testing.T) {
	is := is.New(t)
	sc, _ := testShell()
	_, err := sc.standardModeSwitch("load w---/b--/--/---/----")
	is.NoErr(err)
	r, err := sc.standardModeSwitch("moves")
	is.NoErr(err)
	is.Equal(r.message, "  1: ----/---/w-/---/----")

	_, err = sc.standardModeSwitch("load ----/---/--/---/---w")
	is.NoErr(err)
	r, err = sc.standardModeSwitch("moves")
	is.NoErr(err)
	is.Equal(r.message, "white has no moves")
}

func TestSolveAndPath(t *testing.T) {
	is := is.New(t)
	sc, buf := testShell()

	_, err := sc.standardModeSwitch("path")
	is.True(err != nil)

	_, err = sc.standardModeSwitch("load w---/b--/--/---/----")
	is.NoErr(err)
	r, err := sc.standardModeSwitch("solve")
	is.NoErr(err)
	is.True(strings.Contains(buf.String(), "solving for white with blocking heuristic"))
	is.True(strings.Contains(r.message, "white wins"))
	is.True(strings.Contains(r.message, "total moves: 1"))
	is.True(strings.Contains(r.message, "total states explored: 2"))
	is.Equal(sc.lastResult.Status, search.StatusSolved)

	r, err = sc.standardModeSwitch("path")
	is.NoErr(err)
	is.Equal(r.message, "  0: w---/b--/--/---/----\n  1: ----/---/w-/---/----\nwhite wins, 1 moves")

	// the solver and its cache are reused until a setting changes
	s := sc.solver
	_, err = sc.standardModeSwitch("solve")
	is.NoErr(err)
	is.True(sc.solver == s)
	_, err = sc.standardModeSwitch("heuristic custom")
	is.NoErr(err)
	is.True(sc.solver == nil)
}

func TestSolveOptions(t *testing.T) {
	is := is.New(t)
	sc, _ := testShell()
	_, err := sc.standardModeSwitch("load wwww/---/--/---/bbbb")
	is.NoErr(err)

	r, err := sc.standardModeSwitch("solve -depth 2")
	is.NoErr(err)
	is.True(strings.Contains(r.message, "no solution found"))
	is.True(strings.Contains(r.message, "total moves: 0"))

	r, err = sc.standardModeSwitch("solve -nodes 3")
	is.NoErr(err)
	is.True(strings.Contains(r.message, "node budget exhausted"))
	is.True(strings.Contains(r.message, "total states explored: 3"))

	_, err = sc.standardModeSwitch("solve -depth two")
	is.True(err != nil)

	trace := filepath.Join(t.TempDir(), "trace.yaml")
	_, err = sc.standardModeSwitch("solve -depth 1 -trace " + trace)
	is.NoErr(err)
	dat, err := os.ReadFile(trace)
	is.NoErr(err)
	is.True(strings.HasPrefix(string(dat), "- explored: 1\n"))
}

func TestScript(t *testing.T) {
	is := is.New(t)
	sc, _ := testShell()
	_, err := sc.standardModeSwitch("script testdata/solve.lua")
	is.NoErr(err)
	is.Equal(sc.lastResult.Moves(), 1)
	is.Equal(sc.config.GetInt(config.ConfigMaxDepth), 3)

	_, err = sc.standardModeSwitch("script testdata/rows.lua")
	is.NoErr(err)
	is.Equal(sc.position, state.StateID("-wwww-------bbbb"))

	_, err = sc.standardModeSwitch("script testdata/bad.lua")
	is.True(err != nil)
	_, err = sc.standardModeSwitch("script")
	is.True(err != nil)
}

func TestBatch(t *testing.T) {
	is := is.New(t)
	sc, _ := testShell()
	r, err := sc.standardModeSwitch("batch testdata/batch.yaml")
	is.NoErr(err)
	is.True(strings.Contains(r.message, "solved 1, no solution 1, failed 0, unexpected 0"))
}

func TestHelp(t *testing.T) {
	is := is.New(t)
	sc, _ := testShell()
	r, err := sc.standardModeSwitch("help")
	is.NoErr(err)
	is.True(strings.HasPrefix(r.message, "Commands:"))
	r, err = sc.standardModeSwitch("help solve")
	is.NoErr(err)
	is.True(strings.Contains(r.message, "-target-only"))
	_, err = sc.standardModeSwitch("help nothing")
	is.True(err != nil)

	for _, c := range commandNames {
		r, err := sc.standardModeSwitch("help " + c)
		is.NoErr(err) // every command has a help topic
		is.True(strings.HasPrefix(r.message, c))
	}
}

func TestExecute(t *testing.T) {
	is := is.New(t)
	sc, buf := testShell()
	sig := make(chan os.Signal, 1)

	sc.Execute(sig, "bogus")
	is.True(strings.Contains(buf.String(), `Error: unrecognized command "bogus"`))

	sc.Execute(sig, "exit")
	is.Equal(<-sig, os.Signal(syscall.SIGINT))
	is.True(!sc.Interrupt())
}

func TestCompleter(t *testing.T) {
	is := is.New(t)
	sc, _ := testShell()
	c := NewShellCompleter(sc)

	got, n := c.Do([]rune("sol"), 3)
	is.Equal(n, 3)
	is.Equal(got, [][]rune{[]rune("ve")})

	line := "solve -tar"
	got, n = c.Do([]rune(line), len(line))
	is.Equal(n, 4)
	is.Equal(got, [][]rune{[]rune("get-only")})

	line = "set heuristic c"
	got, _ = c.Do([]rune(line), len(line))
	is.Equal(got, [][]rune{[]rune("ustom")})

	line = "side "
	got, n = c.Do([]rune(line), len(line))
	is.Equal(n, 0)
	is.Equal(len(got), 2)
}
