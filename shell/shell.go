// Package shell is an interactive driver for the solver: load a position,
// pick a side and budgets, solve and look at the path.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"
	"syscall"
	"unicode"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/oska/board"
	"github.com/domino14/oska/config"
	"github.com/domino14/oska/movegen"
	"github.com/domino14/oska/search"
	"github.com/domino14/oska/state"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errNoPosition        = errors.New("no position loaded; use load")
)

var errExit = errors.New("exit")

type ShellController struct {
	l      *readline.Instance
	config *config.Config
	out    io.Writer

	execPath   string
	gitVersion string

	position state.StateID
	bctx     *board.Context
	side     state.Side
	gen      movegen.MoveGenerator

	// solver is kept between solves so its heuristic cache carries over.
	// Changing a setting it was built from drops it.
	solver     *search.Solver
	lastResult *search.Result
	lastCtx    *board.Context

	mu          sync.Mutex
	solveCancel context.CancelFunc
}

type shellcmd struct {
	cmd     string
	args    []string
	options map[string]string
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

// NewShellController creates a shell that reads from the terminal.
func NewShellController(cfg *config.Config, execPath, gitVersion string) *ShellController {
	prompt := "oska"
	sc := &ShellController{config: cfg, execPath: execPath, gitVersion: gitVersion,
		gen: movegen.NewOskaGenerator()}
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31m" + prompt + ">\033[0m ",
		HistoryFile:     "/tmp/oska_readline.tmp",
		AutoComplete:    NewShellCompleter(sc),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc.l = l
	sc.out = l.Stdout()
	return sc
}

// newTestController builds a shell without a terminal; output goes to w.
func newTestController(cfg *config.Config, w io.Writer) *ShellController {
	return &ShellController{config: cfg, out: w, gen: movegen.NewOskaGenerator()}
}

func (sc *ShellController) showMessage(msg string) {
	io.WriteString(sc.out, msg)
	io.WriteString(sc.out, "\n")
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := map[string]string{}
	// Options are -key value pairs and may appear anywhere after the
	// command; everything else is a positional argument. Rows such as
	// "---" or "-w-" are arguments unless the command declares them.
	for i := 1; i < len(fields); i++ {
		if isOption(cmd, fields[i]) {
			if i == len(fields)-1 {
				return nil, errWrongOptionSyntax
			}
			options[strings.TrimPrefix(fields[i], "-")] = fields[i+1]
			i++
			continue
		}
		args = append(args, fields[i])
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

// isOption reports whether f is an option of cmd: one of its declared
// options, or a -name that cannot be read as a row of cells.
func isOption(cmd, f string) bool {
	if len(f) < 2 || f[0] != '-' || !unicode.IsLetter(rune(f[1])) {
		return false
	}
	if slices.Contains(commandMetadata[cmd].Options, f) {
		return true
	}
	return strings.ContainsFunc(f, func(r rune) bool {
		return !strings.ContainsRune(rowChars, r)
	})
}

// rowChars are the characters a row of cells may be written with.
const rowChars = "wbWB-."

func (sc *ShellController) standardModeSwitch(line string) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	switch cmd.cmd {
	case "exit":
		return nil, errExit
	case "help":
		return sc.help(cmd)
	case "load":
		return sc.load(cmd)
	case "side":
		return sc.setSide(cmd)
	case "depth":
		return sc.configValue(cmd, config.ConfigMaxDepth)
	case "nodes":
		return sc.configValue(cmd, config.ConfigMaxNodes)
	case "heuristic":
		return sc.configValue(cmd, config.ConfigHeuristic)
	case "show":
		return sc.show(cmd)
	case "moves":
		return sc.moves(cmd)
	case "solve":
		return sc.solve(cmd)
	case "path":
		return sc.path(cmd)
	case "set":
		return sc.set(cmd)
	case "script":
		return sc.script(cmd)
	case "batch":
		return sc.batch(cmd)
	default:
		log.Debug().Msgf("you said: %q", line)
		return nil, fmt.Errorf("unrecognized command %q; try help", cmd.cmd)
	}
}

// Execute runs a single command line and prints its output.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	sc.executeLine(sig, line)
}

func (sc *ShellController) executeLine(sig chan os.Signal, line string) bool {
	resp, err := sc.standardModeSwitch(line)
	if errors.Is(err, errExit) {
		sig <- syscall.SIGINT
		return true
	}
	if err != nil {
		if !errors.Is(err, errNoData) {
			sc.showError(err)
		}
		return false
	}
	if resp != nil && resp.message != "" {
		sc.showMessage(resp.message)
	}
	return false
}

// Interrupt stops a running solve, if there is one.
func (sc *ShellController) Interrupt() bool {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.solveCancel == nil {
		return false
	}
	sc.solveCancel()
	return true
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if sc.executeLine(sig, line) {
			break
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}

func (sc *ShellController) Cleanup() {
	sc.Interrupt()
	log.Info().Msg("shell cleaned up")
}
