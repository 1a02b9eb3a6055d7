// Package movegen contains the move-generating functions. The search only
// sees the MoveGenerator interface; the rules behind it are swappable.
package movegen

import (
	"errors"
	"fmt"

	"github.com/domino14/oska/board"
	"github.com/domino14/oska/state"
)

// MoveGenerator produces every configuration side can reach in one move.
// A side with no legal moves gets an empty slice, not an error. Every
// returned StateID has the same length as id.
type MoveGenerator interface {
	GenerateSuccessors(id state.StateID, side state.Side, c *board.Context) ([]state.StateID, error)
}

// Func adapts an ordinary function to the MoveGenerator interface.
type Func func(id state.StateID, side state.Side, c *board.Context) ([]state.StateID, error)

func (f Func) GenerateSuccessors(id state.StateID, side state.Side, c *board.Context) ([]state.StateID, error) {
	return f(id, side, c)
}

var ErrLengthMismatch = errors.New("state length does not match board")

func checkLength(id state.StateID, c *board.Context) error {
	if id.Len() != c.PositionTotal() {
		return fmt.Errorf("%w: got %d positions, board has %d",
			ErrLengthMismatch, id.Len(), c.PositionTotal())
	}
	return nil
}
