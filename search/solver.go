// Package search finds a sequence of positions leading from a start position
// to a win, using best-first search over a priority frontier.
package search

import (
	"container/heap"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/oska/board"
	"github.com/domino14/oska/equity"
	"github.com/domino14/oska/movegen"
	"github.com/domino14/oska/state"
)

const DefaultHeuristicCacheFraction = 0.01

var ErrNotInitialized = errors.New("solver is not initialized")

type Status int

const (
	// StatusNoSolution means no winning position was reached. It is a
	// normal outcome, not an error.
	StatusNoSolution Status = iota
	StatusSolved
)

func (s Status) String() string {
	if s == StatusSolved {
		return "solved"
	}
	return "no solution"
}

type Result struct {
	Status Status
	// Path runs from the start position to the goal. Empty without a solution.
	Path []state.StateID
	// Winner is the outcome at the end of Path.
	Winner equity.Outcome
	// Explored counts nodes popped from the frontier.
	Explored int
	// Enqueued counts nodes pushed onto the frontier, the start included.
	Enqueued int
	// Transpositions counts successors dropped because they were seen before.
	Transpositions int
	// Duplicates counts StateIDs pushed onto the frontier more than once.
	// Only tracked with instrumentation on; it must always be 0.
	Duplicates  int
	MaxFrontier int
	// BudgetExhausted is set when the node budget stopped the search.
	BudgetExhausted bool
	Elapsed         time.Duration
}

// Moves is the number of plies in the path.
func (r *Result) Moves() int {
	if len(r.Path) == 0 {
		return 0
	}
	return len(r.Path) - 1
}

// Solver runs one search at a time. Everything it builds during a search
// (board context, visited table, frontier) belongs to that search; use one
// Solver per goroutine.
type Solver struct {
	movegen   movegen.MoveGenerator
	heuristic equity.Heuristic

	maxDepth   int
	maxNodes   int
	targetOnly bool

	heuristicCacheOptim    bool
	heuristicCacheFraction float64
	hcache                 *HeuristicCache

	instrument bool
	enqueued   map[state.StateID]struct{}
	duplicates int

	bctx        *board.Context
	side        state.Side
	visited     *VisitedTable
	frontier    frontier
	seq         uint64
	maxFrontier int

	logStream io.Writer
}

// Init initializes the solver
func (s *Solver) Init(gen movegen.MoveGenerator, h equity.Heuristic) error {
	if gen == nil || h == nil {
		return ErrNotInitialized
	}
	s.movegen = gen
	s.heuristic = h
	s.heuristicCacheFraction = DefaultHeuristicCacheFraction
	return nil
}

// SetMaxDepth stops positions at or beyond this many plies from the start
// from being expanded. 0 means no limit.
func (s *Solver) SetMaxDepth(plies int) {
	s.maxDepth = max(0, plies)
}

// SetMaxNodes stops the search after this many nodes are popped without a
// win. 0 means no limit.
func (s *Solver) SetMaxNodes(nodes int) {
	s.maxNodes = max(0, nodes)
}

// SetTargetOnly makes a win for the other side a dead end rather than the
// end of the search.
func (s *Solver) SetTargetOnly(t bool) {
	s.targetOnly = t
}

func (s *Solver) SetHeuristicCache(on bool) {
	s.heuristicCacheOptim = on
}

// SetHeuristicCacheFraction sets how much of system memory the heuristic
// cache may use. It takes effect the next time the cache is rebuilt.
func (s *Solver) SetHeuristicCacheFraction(f float64) {
	s.heuristicCacheFraction = f
	if s.hcache != nil {
		s.hcache.table = nil
	}
}

// SetInstrumentation tracks every StateID pushed onto the frontier so that
// Result.Duplicates can be checked. It costs a second map per search.
func (s *Solver) SetInstrumentation(on bool) {
	s.instrument = on
}

// SetLogStream writes a YAML trace of every expansion to w.
func (s *Solver) SetLogStream(w io.Writer) {
	s.logStream = w
}

func (s *Solver) Heuristic() equity.Heuristic {
	return s.heuristic
}

// HeuristicCache returns the cache used by the last search, if any. Its
// stats cover the last search only.
func (s *Solver) HeuristicCache() *HeuristicCache {
	if !s.heuristicCacheOptim {
		return nil
	}
	return s.hcache
}

func (s *Solver) reset(c *board.Context, side state.Side) {
	s.bctx = c
	s.side = side
	s.visited = NewVisitedTable()
	clear(s.frontier)
	s.frontier = s.frontier[:0]
	s.seq = 0
	s.maxFrontier = 0
	s.duplicates = 0
	s.enqueued = nil
	if s.instrument {
		s.enqueued = make(map[state.StateID]struct{})
	}
	if s.heuristicCacheOptim {
		// Estimates survive from one search to the next as long as they
		// were computed for the same heuristic, side and board size.
		owner := cacheOwner{heuristic: s.heuristic.Name(), side: side,
			numPositions: c.PositionTotal()}
		if s.hcache == nil {
			s.hcache = &HeuristicCache{}
		}
		if s.hcache.table == nil || s.hcache.owner != owner {
			s.hcache.Reset(s.heuristicCacheFraction, owner.numPositions)
			s.hcache.owner = owner
		} else {
			s.hcache.resetStats()
		}
	}
}

func (s *Solver) estimate(id state.StateID) float64 {
	if !s.heuristicCacheOptim {
		return s.heuristic.Estimate(id, s.side, s.bctx)
	}
	zval := s.hcache.zobrist.Hash(id)
	if v, ok := s.hcache.lookup(zval, id); ok {
		return v
	}
	v := s.heuristic.Estimate(id, s.side, s.bctx)
	s.hcache.store(zval, id, v)
	return v
}

func (s *Solver) push(n *state.Node) {
	if s.instrument {
		if _, ok := s.enqueued[n.ID]; ok {
			s.duplicates++
		}
		s.enqueued[n.ID] = struct{}{}
	}
	heap.Push(&s.frontier, &frontierEntry{node: n, f: n.F(), seq: s.seq})
	s.seq++
	s.maxFrontier = max(s.maxFrontier, s.frontier.Len())
}

// sideToMove alternates every ply, starting with the solving side.
func (s *Solver) sideToMove(n *state.Node) state.Side {
	if n.G%2 == 0 {
		return s.side
	}
	return s.side.Opponent()
}

// Solve searches for a path from start to a position where one side has
// won. Running out of positions is not an error; the Result says
// StatusNoSolution. A start position whose length is not a board size is
// an error wrapping board.ErrInvalidBoard. Move generator errors abort the
// search.
func (s *Solver) Solve(ctx context.Context, start state.StateID, side state.Side) (*Result, error) {
	if s.movegen == nil || s.heuristic == nil {
		return nil, ErrNotInitialized
	}
	tstart := time.Now()

	n := board.PositionTotalToWidth(start.Len())
	if board.WidthToPositionTotal(n) != start.Len() {
		return nil, &board.GeometryError{Width: n,
			Expected: board.WidthToPositionTotal(n), Got: start.Len()}
	}
	c, err := board.ContextFor(n)
	if err != nil {
		return nil, err
	}
	s.reset(c, side)

	log.Debug().Str("side", side.String()).Int("width", n).
		Str("heuristic", s.heuristic.Name()).Int("max-depth", s.maxDepth).
		Int("max-nodes", s.maxNodes).Bool("target-only", s.targetOnly).
		Msg("best-first-solve-config")

	s.visited.Mark(start, state.NoParent)
	s.push(&state.Node{ID: start, G: 0, H: s.estimate(start)})

	res := &Result{}
	var goal state.StateID
	found := false

	for s.frontier.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		node := heap.Pop(&s.frontier).(*frontierEntry).node
		res.Explored++

		outcome := equity.EvaluateWinner(node.ID)
		if outcome != equity.None {
			winner, _ := outcome.Winner()
			if !s.targetOnly || winner == side {
				goal = node.ID
				res.Winner = outcome
				found = true
				s.traceGoal(res.Explored, node, outcome)
				break
			}
			// The game is over here, just not the way we want.
			s.traceDeadEnd(res.Explored, node, "opponent-win")
			continue
		}
		if s.maxNodes > 0 && res.Explored >= s.maxNodes {
			res.BudgetExhausted = true
			break
		}
		if s.maxDepth > 0 && node.G >= s.maxDepth {
			s.traceDeadEnd(res.Explored, node, "depth-limit")
			continue
		}

		toMove := s.sideToMove(node)
		children, err := s.movegen.GenerateSuccessors(node.ID, toMove, c)
		if err != nil {
			return nil, fmt.Errorf("generating successors for %s: %w", toMove, err)
		}
		s.traceExpansion(res.Explored, node, toMove)
		for _, child := range children {
			if child.Len() != start.Len() {
				return nil, fmt.Errorf("%w: successor has %d positions, board has %d",
					movegen.ErrLengthMismatch, child.Len(), start.Len())
			}
			if !s.visited.Mark(child, node.ID) {
				continue
			}
			cn := &state.Node{ID: child, G: node.G + 1, H: s.estimate(child)}
			s.push(cn)
			s.traceChild(cn)
		}
	}

	res.Enqueued = int(s.seq)
	res.Transpositions = s.visited.Rejected()
	res.Duplicates = s.duplicates
	res.MaxFrontier = s.maxFrontier

	if !found {
		res.Status = StatusNoSolution
		res.Elapsed = time.Since(tstart)
		s.logResult(res)
		return res, nil
	}

	path, err := ReconstructPath(s.visited, start, goal)
	if err != nil {
		log.Error().Err(err).Int("visited", s.visited.Len()).Msg("reconstruct-path")
		return nil, err
	}
	res.Status = StatusSolved
	res.Path = path
	res.Elapsed = time.Since(tstart)
	s.logResult(res)
	return res, nil
}

func (s *Solver) logResult(res *Result) {
	ev := log.Info().
		Str("status", res.Status.String()).
		Int("moves", res.Moves()).
		Int("explored", res.Explored).
		Int("enqueued", res.Enqueued).
		Int("transpositions", res.Transpositions).
		Int("max-frontier", res.MaxFrontier).
		Bool("budget-exhausted", res.BudgetExhausted).
		Dur("elapsed", res.Elapsed)
	if s.heuristicCacheOptim && s.hcache != nil {
		lookups, hits, collisions := s.hcache.Stats()
		ev = ev.Uint64("hcache-lookups", lookups).
			Uint64("hcache-hits", hits).
			Uint64("hcache-collisions", collisions)
	}
	ev.Msg("best-first-solve-done")
}
