package search

import (
	"errors"
	"fmt"
	"slices"

	"github.com/domino14/oska/state"
)

var ErrReconstructionInconsistency = errors.New("path reconstruction is inconsistent")

// VisitedTable maps every discovered StateID to the StateID that first
// produced it. The start state maps to state.NoParent. A StateID is
// inserted at most once; a present key means "already enqueued or
// expanded".
type VisitedTable struct {
	parents  map[state.StateID]state.StateID
	rejected int
}

func NewVisitedTable() *VisitedTable {
	return &VisitedTable{parents: make(map[state.StateID]state.StateID)}
}

// Mark records parent as the parent of child. It returns false, and leaves
// the table alone, if child was already there.
func (vt *VisitedTable) Mark(child, parent state.StateID) bool {
	if _, ok := vt.parents[child]; ok {
		vt.rejected++
		return false
	}
	vt.parents[child] = parent
	return true
}

// Parent returns the parent recorded for id.
func (vt *VisitedTable) Parent(id state.StateID) (state.StateID, bool) {
	p, ok := vt.parents[id]
	return p, ok
}

func (vt *VisitedTable) Len() int {
	return len(vt.parents)
}

// Rejected is how many times Mark was called for a StateID already present.
func (vt *VisitedTable) Rejected() int {
	return vt.rejected
}

// ReconstructPath follows parent links back from goal and returns the path
// from start to goal. A chain that does not end at start, or that is longer
// than the table (a cycle), is an error.
func ReconstructPath(vt *VisitedTable, start, goal state.StateID) ([]state.StateID, error) {
	path := []state.StateID{goal}
	cur := goal
	for {
		parent, ok := vt.Parent(cur)
		if !ok {
			return nil, fmt.Errorf("%w: state %x has no parent entry",
				ErrReconstructionInconsistency, cur.Fingerprint())
		}
		if parent == state.NoParent {
			break
		}
		path = append(path, parent)
		if len(path) > vt.Len() {
			return nil, fmt.Errorf("%w: parent chain longer than %d states",
				ErrReconstructionInconsistency, vt.Len())
		}
		cur = parent
	}
	slices.Reverse(path)
	if path[0] != start {
		return nil, fmt.Errorf("%w: path starts at %x, not at the start state %x",
			ErrReconstructionInconsistency, path[0].Fingerprint(), start.Fingerprint())
	}
	return path, nil
}
