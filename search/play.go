package search

import (
	"context"

	"github.com/domino14/oska/board"
	"github.com/domino14/oska/config"
	"github.com/domino14/oska/equity"
	"github.com/domino14/oska/movegen"
	"github.com/domino14/oska/state"
)

// NewSolverFromConfig builds a solver with the heuristic, budgets and cache
// settings named in cfg.
func NewSolverFromConfig(cfg *config.Config, gen movegen.MoveGenerator) (*Solver, error) {
	h, err := equity.NamedHeuristic(cfg.GetString(config.ConfigHeuristic))
	if err != nil {
		return nil, err
	}
	s := &Solver{}
	if err := s.Init(gen, h); err != nil {
		return nil, err
	}
	s.SetMaxDepth(cfg.GetInt(config.ConfigMaxDepth))
	s.SetMaxNodes(cfg.GetInt(config.ConfigMaxNodes))
	s.SetTargetOnly(cfg.GetBool(config.ConfigTargetOnly))
	s.SetHeuristicCache(cfg.GetBool(config.ConfigHeuristicCache))
	s.SetHeuristicCacheFraction(cfg.GetFloat64(config.ConfigHeuristicCacheFraction))
	return s, nil
}

// Play parses the start rows and searches for a win for side within depth
// plies (0 for no limit), using the Oska rules and the rest of cfg. The
// board context is returned for rendering the path. Malformed rows are
// rejected before any search work with an error wrapping
// board.ErrInvalidBoard.
func Play(ctx context.Context, cfg *config.Config, rows []string, side state.Side,
	depth int) (*Result, *board.Context, error) {

	start, c, err := state.ParseRows(rows)
	if err != nil {
		return nil, nil, err
	}
	s, err := NewSolverFromConfig(cfg, movegen.NewOskaGenerator())
	if err != nil {
		return nil, nil, err
	}
	s.SetMaxDepth(depth)
	res, err := s.Solve(ctx, start, side)
	if err != nil {
		return nil, nil, err
	}
	return res, c, nil
}
