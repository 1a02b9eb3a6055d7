package search

import (
	"fmt"

	"github.com/domino14/oska/equity"
	"github.com/domino14/oska/state"
)

// The trace is a YAML list with one item per popped node.

func (s *Solver) traceNodeHeader(explored int, n *state.Node) {
	fmt.Fprintf(s.logStream, "- explored: %d\n", explored)
	fmt.Fprintf(s.logStream, "  frontier: %d\n", s.frontier.Len())
	fmt.Fprintf(s.logStream, "  state: %q\n", string(n.ID))
	fmt.Fprintf(s.logStream, "  g: %d\n  h: %v\n  f: %v\n", n.G, n.H, n.F())
}

func (s *Solver) traceExpansion(explored int, n *state.Node, toMove state.Side) {
	if s.logStream == nil {
		return
	}
	s.traceNodeHeader(explored, n)
	fmt.Fprintf(s.logStream, "  to-move: %s\n", toMove)
	fmt.Fprint(s.logStream, "  children:\n")
}

func (s *Solver) traceChild(n *state.Node) {
	if s.logStream == nil {
		return
	}
	fmt.Fprintf(s.logStream, "  - state: %q\n", string(n.ID))
	fmt.Fprintf(s.logStream, "    h: %v\n    f: %v\n", n.H, n.F())
}

func (s *Solver) traceDeadEnd(explored int, n *state.Node, reason string) {
	if s.logStream == nil {
		return
	}
	s.traceNodeHeader(explored, n)
	fmt.Fprintf(s.logStream, "  dead-end: %s\n", reason)
}

func (s *Solver) traceGoal(explored int, n *state.Node, o equity.Outcome) {
	if s.logStream == nil {
		return
	}
	s.traceNodeHeader(explored, n)
	fmt.Fprintf(s.logStream, "  goal: %s\n", o)
}
