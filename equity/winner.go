package equity

import "github.com/domino14/oska/state"

// Outcome is the verdict on a position.
type Outcome int

const (
	None Outcome = iota
	SideAWins
	SideBWins
)

func (o Outcome) String() string {
	switch o {
	case SideAWins:
		return "white wins"
	case SideBWins:
		return "black wins"
	}
	return "none"
}

// Winner returns the winning side, if there is one.
func (o Outcome) Winner() (state.Side, bool) {
	switch o {
	case SideAWins:
		return state.SideA, true
	case SideBWins:
		return state.SideB, true
	}
	return state.SideA, false
}

// EvaluateWinner decides a position by elimination: a side with no pieces
// left has lost. Side A's pieces are checked first, so a board with no
// pieces at all counts as a win for side B. Callers should not depend on
// that; correct move generation never removes both sides at once.
func EvaluateWinner(id state.StateID) Outcome {
	if !id.Contains(state.SideASymbol) {
		return SideBWins
	}
	if !id.Contains(state.SideBSymbol) {
		return SideAWins
	}
	return None
}
