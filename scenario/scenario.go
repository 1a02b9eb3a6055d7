// Package scenario loads named start positions from YAML and solves them in
// parallel, one solver per position.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/domino14/oska/board"
	"github.com/domino14/oska/config"
	"github.com/domino14/oska/movegen"
	"github.com/domino14/oska/search"
	"github.com/domino14/oska/state"
	"github.com/domino14/oska/stats"
)

var ErrNoScenarios = errors.New("no scenarios")

// Scenario is one start position to solve. The board is given either as a
// list of rows or as a single slash-separated string.
type Scenario struct {
	Name  string   `yaml:"name"`
	Rows  []string `yaml:"rows,omitempty"`
	Board string   `yaml:"board,omitempty"`
	Side  string   `yaml:"side"`
	Depth int      `yaml:"depth"`
	// Expect is optional: "solved" or "no solution".
	Expect string `yaml:"expect,omitempty"`
}

type File struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

func (s Scenario) rows() []string {
	if len(s.Rows) > 0 {
		return s.Rows
	}
	return strings.Split(s.Board, "/")
}

// Parse validates the scenario and returns its start position.
func (s Scenario) Parse() (state.StateID, *board.Context, state.Side, error) {
	side, err := state.ParseSide(s.Side)
	if err != nil {
		return "", nil, 0, fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	id, c, err := state.ParseRows(s.rows())
	if err != nil {
		return "", nil, 0, fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	return id, c, side, nil
}

// Load reads a YAML scenario file. Scenarios without a name are named after
// their index.
func Load(r io.Reader) ([]Scenario, error) {
	var f File
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoScenarios
		}
		return nil, err
	}
	if len(f.Scenarios) == 0 {
		return nil, ErrNoScenarios
	}
	for i := range f.Scenarios {
		if f.Scenarios[i].Name == "" {
			f.Scenarios[i].Name = fmt.Sprintf("scenario-%d", i+1)
		}
	}
	dupes := lo.FindDuplicates(lo.Map(f.Scenarios, func(s Scenario, _ int) string { return s.Name }))
	if len(dupes) > 0 {
		return nil, fmt.Errorf("duplicate scenario names: %s", strings.Join(dupes, ", "))
	}
	return f.Scenarios, nil
}

func LoadFile(path string) ([]Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Outcome is what happened to one scenario. Err is set for scenarios that
// could not be parsed or whose search failed; the rest of the batch still
// runs.
type Outcome struct {
	Scenario Scenario
	Result   *search.Result
	Err      error
}

// Unexpected reports whether the scenario named an expected status that the
// search did not produce.
func (o Outcome) Unexpected() bool {
	if o.Scenario.Expect == "" || o.Result == nil {
		return false
	}
	return !strings.EqualFold(o.Scenario.Expect, o.Result.Status.String())
}

// SolveAll solves every scenario, at most batch-threads at a time. Every
// scenario gets its own Solver built from cfg; nothing is shared between
// searches. Outcomes are returned in input order. Only context cancellation
// stops the batch early.
func SolveAll(ctx context.Context, cfg *config.Config, scenarios []Scenario) ([]Outcome, error) {
	threads := max(1, cfg.GetInt(config.ConfigBatchThreads))
	outcomes := make([]Outcome, len(scenarios))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)
	var mu sync.Mutex
	done := 0

	for i, sc := range scenarios {
		i, sc := i, sc
		g.Go(func() error {
			outcomes[i] = solveOne(gctx, cfg, sc)
			if err := gctx.Err(); err != nil {
				return err
			}
			mu.Lock()
			done++
			log.Debug().Str("scenario", sc.Name).Int("done", done).
				Int("total", len(scenarios)).Msg("scenario-finished")
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return outcomes, err
	}
	return outcomes, nil
}

func solveOne(ctx context.Context, cfg *config.Config, sc Scenario) Outcome {
	out := Outcome{Scenario: sc}
	start, _, side, err := sc.Parse()
	if err != nil {
		out.Err = err
		return out
	}
	s, err := search.NewSolverFromConfig(cfg, movegen.NewOskaGenerator())
	if err != nil {
		out.Err = err
		return out
	}
	if sc.Depth > 0 {
		s.SetMaxDepth(sc.Depth)
	}
	out.Result, out.Err = s.Solve(ctx, start, side)
	return out
}

// Summary aggregates a batch.
type Summary struct {
	Solved     int
	NoSolution int
	Failed     int
	Unexpected int
	Explored   stats.Summary
	Moves      stats.Summary
}

// Summarize computes node counts over every finished search and path
// lengths over the solved ones.
func Summarize(outcomes []Outcome) Summary {
	finished := lo.Filter(outcomes, func(o Outcome, _ int) bool { return o.Err == nil && o.Result != nil })
	solved := lo.Filter(finished, func(o Outcome, _ int) bool { return o.Result.Status == search.StatusSolved })

	return Summary{
		Solved:     len(solved),
		NoSolution: len(finished) - len(solved),
		Failed:     len(outcomes) - len(finished),
		Unexpected: lo.CountBy(outcomes, func(o Outcome) bool { return o.Unexpected() }),
		Explored: stats.Summarize(lo.Map(finished, func(o Outcome, _ int) float64 {
			return float64(o.Result.Explored)
		}), 95),
		Moves: stats.Summarize(lo.Map(solved, func(o Outcome, _ int) float64 {
			return float64(o.Result.Moves())
		}), 95),
	}
}

// Report writes one line per scenario followed by the summary.
func Report(w io.Writer, outcomes []Outcome) {
	for _, o := range outcomes {
		switch {
		case o.Err != nil:
			fmt.Fprintf(w, "%-20s error: %v\n", o.Scenario.Name, o.Err)
		default:
			flag := ""
			if o.Unexpected() {
				flag = fmt.Sprintf("  (expected %s)", o.Scenario.Expect)
			}
			fmt.Fprintf(w, "%-20s %-12s moves %3d  explored %8d%s\n", o.Scenario.Name,
				o.Result.Status, o.Result.Moves(), o.Result.Explored, flag)
		}
	}
	s := Summarize(outcomes)
	fmt.Fprintf(w, "solved %d, no solution %d, failed %d, unexpected %d\n",
		s.Solved, s.NoSolution, s.Failed, s.Unexpected)
	fmt.Fprintf(w, "explored: mean %.1f ± %.1f, stdev %.1f, median %.0f, min %.0f, max %.0f\n",
		s.Explored.Mean, s.Explored.CI, s.Explored.Stdev, s.Explored.Median, s.Explored.Min, s.Explored.Max)
	if s.Solved > 0 {
		fmt.Fprintf(w, "moves: mean %.1f, median %.0f, min %.0f, max %.0f\n",
			s.Moves.Mean, s.Moves.Median, s.Moves.Min, s.Moves.Max)
	}
}
