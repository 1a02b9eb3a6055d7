package movegen

import (
	"github.com/domino14/oska/board"
	"github.com/domino14/oska/state"
)

// OskaGenerator implements the Oska movement rules. Side A starts on the top
// row and moves down the board; side B starts on the bottom row and moves
// up. A piece either steps one cell diagonally forward onto an empty cell,
// or jumps diagonally forward over an adjacent opponent piece onto the empty
// cell beyond it, capturing that piece.
type OskaGenerator struct{}

func NewOskaGenerator() *OskaGenerator {
	return &OskaGenerator{}
}

// GenerateSuccessors visits pieces in position order, tries the left
// diagonal before the right, and steps before jumps, so the output order is
// fixed for a given input.
func (g *OskaGenerator) GenerateSuccessors(id state.StateID, side state.Side, c *board.Context) ([]state.StateID, error) {
	if err := checkLength(id, c); err != nil {
		return nil, err
	}
	ours := side.Symbol()
	theirs := side.Opponent().Symbol()
	forward := 1
	if side == state.SideB {
		forward = -1
	}

	var steps, jumps []state.StateID
	for pos := 0; pos < id.Len(); pos++ {
		if id.At(pos) != ours {
			continue
		}
		for _, dx := range [2]int{-1, 1} {
			next, ok := c.Diagonal(pos, forward, dx, 1)
			if !ok {
				continue
			}
			switch id.At(next) {
			case state.EmptySymbol:
				steps = append(steps, id.With(map[int]state.Symbol{
					pos:  state.EmptySymbol,
					next: ours,
				}))
			case theirs:
				landing, ok := c.Diagonal(pos, forward, dx, 2)
				if !ok || id.At(landing) != state.EmptySymbol {
					continue
				}
				jumps = append(jumps, id.With(map[int]state.Symbol{
					pos:     state.EmptySymbol,
					next:    state.EmptySymbol,
					landing: ours,
				}))
			}
		}
	}
	return append(steps, jumps...), nil
}
