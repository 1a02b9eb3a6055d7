package zobrist

import (
	"lukechampine.com/frand"

	"github.com/domino14/oska/state"
)

const bignum = 1<<63 - 2

// generate a zobrist hash for an Oska position.
// https://en.wikipedia.org/wiki/Zobrist_hashing
type Zobrist struct {
	// posTable[pos][0] is side A's key, posTable[pos][1] is side B's.
	posTable [][2]uint64

	numPositions int
}

func (z *Zobrist) Initialize(numPositions int) {
	z.numPositions = numPositions
	z.posTable = make([][2]uint64, numPositions)
	for i := 0; i < numPositions; i++ {
		for j := 0; j < 2; j++ {
			z.posTable[i][j] = frand.Uint64n(bignum) + 1
		}
	}
}

func (z *Zobrist) NumPositions() int {
	return z.numPositions
}

func symbolIdx(sym state.Symbol) int {
	switch sym {
	case state.SideASymbol:
		return 0
	case state.SideBSymbol:
		return 1
	}
	return -1
}

// Hash hashes every piece on the board. Empty and sentinel cells do not
// contribute.
func (z *Zobrist) Hash(id state.StateID) uint64 {
	key := uint64(0)
	for i := 0; i < id.Len(); i++ {
		if idx := symbolIdx(id.At(i)); idx >= 0 {
			key ^= z.posTable[i][idx]
		}
	}
	return key
}
