package shell

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/oska/config"
	"github.com/domino14/oska/equity"
	"github.com/domino14/oska/scenario"
	"github.com/domino14/oska/search"
	"github.com/domino14/oska/state"
)

type Response struct {
	message string
}

type CmdOptions map[string]string

func (c CmdOptions) String(key string) string {
	return c[key]
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v, ok := c[key]
	if !ok {
		return defaultI, nil
	}
	return strconv.Atoi(v)
}

func (c CmdOptions) BoolDefault(key string, defaultB bool) (bool, error) {
	v, ok := c[key]
	if !ok {
		return defaultB, nil
	}
	return strconv.ParseBool(v)
}

func msg(message string) *Response {
	return &Response{message: message}
}

// settable lists the config keys the set command may change.
var settable = []string{
	config.ConfigHeuristic, config.ConfigMaxDepth, config.ConfigMaxNodes,
	config.ConfigTargetOnly, config.ConfigHeuristicCache,
	config.ConfigHeuristicCacheFraction, config.ConfigBatchThreads,
	config.ConfigTraceFile,
}

func (sc *ShellController) load(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: load wwww/---/--/---/bbbb  or  load wwww --- -- --- bbbb")
	}
	rows := cmd.args
	if len(rows) == 1 {
		rows = strings.Split(rows[0], "/")
	}
	id, c, err := state.ParseRows(rows)
	if err != nil {
		return nil, err
	}
	sc.position = id
	sc.bctx = c
	log.Debug().Str("position", string(id)).Int("width", c.Width()).Msg("loaded-position")
	return sc.show(cmd)
}

func (sc *ShellController) setSide(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg("side to solve for: " + sc.side.String()), nil
	}
	side, err := state.ParseSide(cmd.args[0])
	if err != nil {
		return nil, err
	}
	sc.side = side
	return msg("side to solve for: " + side.String()), nil
}

// configValue shows or sets one config key. Setting drops the cached
// solver so the next solve picks it up.
func (sc *ShellController) configValue(cmd *shellcmd, key string) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg(fmt.Sprintf("%s: %v", key, sc.config.Get(key))), nil
	}
	return sc.set(&shellcmd{cmd: "set", args: []string{key, cmd.args[0]}})
}

func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		var sb strings.Builder
		for _, k := range settable {
			fmt.Fprintf(&sb, "%-26s %v\n", k, sc.config.Get(k))
		}
		return msg(strings.TrimRight(sb.String(), "\n")), nil
	}
	key := cmd.args[0]
	if !slices.Contains(settable, key) {
		return nil, fmt.Errorf("cannot set %q; settable keys are %s", key, strings.Join(settable, ", "))
	}
	if len(cmd.args) == 1 {
		return msg(fmt.Sprintf("%s: %v", key, sc.config.Get(key))), nil
	}
	val := cmd.args[1]
	switch key {
	case config.ConfigHeuristic:
		if _, err := equity.NamedHeuristic(val); err != nil {
			return nil, err
		}
	case config.ConfigMaxDepth, config.ConfigMaxNodes, config.ConfigBatchThreads:
		n, err := strconv.Atoi(val)
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, fmt.Errorf("%s must not be negative", key)
		}
	case config.ConfigTargetOnly, config.ConfigHeuristicCache:
		if _, err := strconv.ParseBool(val); err != nil {
			return nil, err
		}
	case config.ConfigHeuristicCacheFraction:
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, err
		}
		if f < 0 || f > 1 {
			return nil, errors.New("heuristic-cache-fraction must be between 0 and 1")
		}
	}
	sc.config.Set(key, val)
	sc.solver = nil
	return msg("set " + key + " to " + val), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if sc.bctx == nil {
		return nil, errNoPosition
	}
	var sb strings.Builder
	sb.WriteString(sc.bctx.ToDisplayText(string(sc.position)))
	fmt.Fprintf(&sb, "white %d, black %d; solving for %s\n",
		sc.position.Count(state.SideASymbol), sc.position.Count(state.SideBSymbol), sc.side)
	if o := equity.EvaluateWinner(sc.position); o != equity.None {
		fmt.Fprintf(&sb, "game over: %s\n", o)
	}
	h, err := equity.NamedHeuristic(sc.config.GetString(config.ConfigHeuristic))
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(&sb, "%s estimate: %g", h.Name(), h.Estimate(sc.position, sc.side, sc.bctx))
	return msg(sb.String()), nil
}

// moves lists the positions reachable in one move by the side to solve for.
func (sc *ShellController) moves(cmd *shellcmd) (*Response, error) {
	if sc.bctx == nil {
		return nil, errNoPosition
	}
	succ, err := sc.gen.GenerateSuccessors(sc.position, sc.side, sc.bctx)
	if err != nil {
		return nil, err
	}
	if len(succ) == 0 {
		return msg(sc.side.String() + " has no moves"), nil
	}
	lines := lo.Map(succ, func(id state.StateID, i int) string {
		return fmt.Sprintf("%3d: %s", i+1, strings.Join(id.Rows(sc.bctx), "/"))
	})
	return msg(strings.Join(lines, "\n")), nil
}

func (sc *ShellController) ensureSolver() (*search.Solver, error) {
	if sc.solver != nil {
		return sc.solver, nil
	}
	s, err := search.NewSolverFromConfig(sc.config, sc.gen)
	if err != nil {
		return nil, err
	}
	sc.solver = s
	return s, nil
}

func (sc *ShellController) solve(cmd *shellcmd) (*Response, error) {
	if sc.bctx == nil {
		return nil, errNoPosition
	}
	opts := CmdOptions(cmd.options)
	s, err := sc.ensureSolver()
	if err != nil {
		return nil, err
	}
	depth, err := opts.IntDefault("depth", sc.config.GetInt(config.ConfigMaxDepth))
	if err != nil {
		return nil, err
	}
	nodes, err := opts.IntDefault("nodes", sc.config.GetInt(config.ConfigMaxNodes))
	if err != nil {
		return nil, err
	}
	targetOnly, err := opts.BoolDefault("target-only", sc.config.GetBool(config.ConfigTargetOnly))
	if err != nil {
		return nil, err
	}
	s.SetMaxDepth(depth)
	s.SetMaxNodes(nodes)
	s.SetTargetOnly(targetOnly)

	traceFile := opts.String("trace")
	if traceFile == "" {
		traceFile = sc.config.GetString(config.ConfigTraceFile)
	}
	if traceFile != "" {
		f, err := os.Create(traceFile)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		s.SetLogStream(f)
		defer s.SetLogStream(nil)
	}

	ctx, done := sc.interruptible()
	defer done()

	sc.showMessage(fmt.Sprintf("solving for %s with %s heuristic...", sc.side, s.Heuristic().Name()))
	res, err := s.Solve(ctx, sc.position, sc.side)
	if err != nil {
		return nil, err
	}
	sc.lastResult = res
	sc.lastCtx = sc.bctx
	return msg(sc.renderResult(res)), nil
}

// interruptible returns a context that Interrupt cancels until done is
// called.
func (sc *ShellController) interruptible() (context.Context, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	sc.mu.Lock()
	sc.solveCancel = cancel
	sc.mu.Unlock()
	return ctx, func() {
		sc.mu.Lock()
		sc.solveCancel = nil
		sc.mu.Unlock()
		cancel()
	}
}

func (sc *ShellController) renderResult(res *search.Result) string {
	var sb strings.Builder
	if res.Status == search.StatusSolved {
		for i, id := range res.Path {
			if i == 0 {
				sb.WriteString("start:\n")
			} else {
				fmt.Fprintf(&sb, "move %d:\n", i)
			}
			sb.WriteString(sc.bctx.ToDisplayText(string(id)))
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%s\n", res.Winner)
	} else {
		sb.WriteString("no solution found")
		if res.BudgetExhausted {
			sb.WriteString(" (node budget exhausted)")
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "total moves: %d\n", res.Moves())
	fmt.Fprintf(&sb, "total states explored: %d", res.Explored)
	if hc := sc.solver.HeuristicCache(); hc != nil {
		lookups, hits, _ := hc.Stats()
		if lookups > 0 {
			fmt.Fprintf(&sb, "\nheuristic cache hit rate: %.1f%%", 100*float64(hits)/float64(lookups))
		}
	}
	return sb.String()
}

// path prints the path from the last solve, one position per line.
func (sc *ShellController) path(cmd *shellcmd) (*Response, error) {
	if sc.lastResult == nil {
		return nil, errors.New("nothing solved yet")
	}
	if sc.lastResult.Status != search.StatusSolved {
		return msg("no solution found"), nil
	}
	lines := lo.Map(sc.lastResult.Path, func(id state.StateID, i int) string {
		return fmt.Sprintf("%3d: %s", i, strings.Join(id.Rows(sc.lastCtx), "/"))
	})
	lines = append(lines, fmt.Sprintf("%s, %d moves", sc.lastResult.Winner, sc.lastResult.Moves()))
	return msg(strings.Join(lines, "\n")), nil
}

func (sc *ShellController) batch(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: batch <scenarios.yaml>")
	}
	scs, err := scenario.LoadFile(cmd.args[0])
	if err != nil {
		return nil, err
	}
	ctx, done := sc.interruptible()
	defer done()
	outcomes, err := scenario.SolveAll(ctx, sc.config, scs)
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	scenario.Report(&sb, outcomes)
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}
