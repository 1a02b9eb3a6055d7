// Package equity evaluates Oska positions: whether someone has won, and how
// far a position looks from a win for the side we are solving for.
package equity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/domino14/oska/board"
	"github.com/domino14/oska/state"
)

// Heuristic estimates the remaining cost from a position to a win for side.
// Estimates must be non-negative, finite, and deterministic: the same
// StateID always gets the same value. They need not be admissible.
type Heuristic interface {
	Name() string
	Estimate(id state.StateID, side state.Side, c *board.Context) float64
}

const (
	BlockingHeuristicName = "blocking"
	CustomHeuristicName   = "custom"
)

var ErrUnknownHeuristic = errors.New("unknown heuristic")

// NamedHeuristic returns a heuristic by name. Mode numbers "0" and "1" are
// accepted as aliases for blocking and custom.
func NamedHeuristic(name string) (Heuristic, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case BlockingHeuristicName, "0":
		return &Blocking{}, nil
	case CustomHeuristicName, "1":
		return &Custom{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownHeuristic, name)
}
