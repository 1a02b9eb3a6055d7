package search

import (
	"math"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"

	"github.com/domino14/oska/state"
	"github.com/domino14/oska/zobrist"
)

// A string header, a float64 and a flag, rounded up.
const cacheEntrySize = 32

const (
	minCacheSizePowerOf2 = 10
	maxCacheSizePowerOf2 = 20
)

type cacheEntry struct {
	id    state.StateID
	value float64
	valid bool
}

// HeuristicCache is a direct-mapped table of heuristic estimates indexed by
// the zobrist hash of a StateID. The full StateID is stored with each entry
// and compared on lookup, so a hash collision costs a recomputation but never
// returns a wrong estimate.
type HeuristicCache struct {
	table        []cacheEntry
	sizePowerOf2 int
	sizeMask     uint64

	lookups    uint64
	hits       uint64
	stores     uint64
	collisions uint64

	zobrist *zobrist.Zobrist
	owner   cacheOwner
}

// cacheOwner identifies what the cached estimates were computed for.
type cacheOwner struct {
	heuristic    string
	side         state.Side
	numPositions int
}

func (c *HeuristicCache) lookup(zval uint64, id state.StateID) (float64, bool) {
	c.lookups++
	e := &c.table[zval&c.sizeMask]
	if !e.valid {
		return 0, false
	}
	if e.id != id {
		c.collisions++
		return 0, false
	}
	c.hits++
	return e.value, true
}

func (c *HeuristicCache) store(zval uint64, id state.StateID, value float64) {
	// just overwrite whatever is there.
	c.table[zval&c.sizeMask] = cacheEntry{id: id, value: value, valid: true}
	c.stores++
}

// Reset sizes the table to the largest power of 2 that fits in the given
// fraction of system memory, within fixed bounds, and clears it. The zobrist
// keys are regenerated only when the board size changes.
//
// Estimates depend on the heuristic and the side being solved for, so the
// owner must Reset whenever either changes.
func (c *HeuristicCache) Reset(fractionOfMemory float64, numPositions int) {
	totalMem := memory.TotalMemory()
	desiredNElems := fractionOfMemory * (float64(totalMem) / float64(cacheEntrySize))
	sizePowerOf2 := minCacheSizePowerOf2
	if desiredNElems >= 1 {
		sizePowerOf2 = int(math.Log2(desiredNElems))
	}
	sizePowerOf2 = max(minCacheSizePowerOf2, min(maxCacheSizePowerOf2, sizePowerOf2))

	numElems := 1 << sizePowerOf2
	reset := false
	if c.table != nil && len(c.table) == numElems {
		reset = true
		clear(c.table)
	} else {
		c.table = make([]cacheEntry, numElems)
	}
	c.sizePowerOf2 = sizePowerOf2
	c.sizeMask = uint64(numElems - 1)

	if c.zobrist == nil || c.zobrist.NumPositions() != numPositions {
		c.zobrist = &zobrist.Zobrist{}
		c.zobrist.Initialize(numPositions)
	}

	log.Debug().Int("num-elems", numElems).
		Float64("desired-num-elems", desiredNElems).
		Int("estimated-total-memory-bytes", numElems*cacheEntrySize).
		Uint64("total-system-memory-bytes", totalMem).
		Bool("reset", reset).
		Msg("heuristic-cache-size")

	c.resetStats()
}

func (c *HeuristicCache) resetStats() {
	c.lookups, c.hits, c.stores, c.collisions = 0, 0, 0, 0
}

// Stats returns lookups, hits and collisions since the last Reset.
func (c *HeuristicCache) Stats() (lookups, hits, collisions uint64) {
	return c.lookups, c.hits, c.collisions
}
