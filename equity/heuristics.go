package equity

import (
	"github.com/domino14/oska/board"
	"github.com/domino14/oska/state"
)

// Blocking counts the opponent pieces still on the board. Every one of them
// has to be captured before side wins by elimination.
type Blocking struct{}

func (b *Blocking) Name() string { return BlockingHeuristicName }

func (b *Blocking) Estimate(id state.StateID, side state.Side, _ *board.Context) float64 {
	return float64(id.Count(side.Opponent().Symbol()))
}

// Custom adds a positional term to Blocking: the average number of rows
// side's pieces still have to travel to reach the opponent's home row,
// scaled to [0, 1]. A side with no pieces left gets the number of board
// positions, which is larger than any other estimate.
type Custom struct{}

func (cu *Custom) Name() string { return CustomHeuristicName }

func (cu *Custom) Estimate(id state.StateID, side state.Side, c *board.Context) float64 {
	ours := side.Symbol()
	theirs := side.Opponent().Symbol()

	opponents := 0
	own := 0
	distance := 0
	lastRow := 0
	if c != nil {
		lastRow = c.RowCount() - 1
	}
	for pos := 0; pos < id.Len(); pos++ {
		switch id.At(pos) {
		case theirs:
			opponents++
		case ours:
			own++
			if c == nil {
				continue
			}
			row := c.RowOf(pos)
			if side == state.SideA {
				// side A starts at the top and heads for the bottom row.
				distance += lastRow - row
			} else {
				distance += row
			}
		}
	}
	if own == 0 {
		return float64(id.Len())
	}
	if lastRow == 0 {
		return float64(opponents)
	}
	return float64(opponents) + float64(distance)/float64(own*lastRow)
}
