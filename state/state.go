// Package state defines the value that identifies one board configuration,
// and the per-node metadata the search attaches to it.
package state

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cespare/xxhash"
)

// Symbol is the content of one board cell.
type Symbol byte

const (
	SideASymbol Symbol = 'w'
	SideBSymbol Symbol = 'b'
	EmptySymbol Symbol = '-'
	// SentinelSymbol is reserved for the engine and never produced by parsing.
	SentinelSymbol Symbol = 'X'
)

// StateID is a fixed-length sequence of Symbols, one per board position,
// in row-major order. Each byte of the underlying string is one Symbol.
// StateIDs are values: equal configurations compare equal and can be used
// as map keys. Never mutate one in place; With returns a new StateID.
type StateID string

// NoParent marks the start state in a visited table.
const NoParent StateID = ""

// Len is the number of positions.
func (s StateID) Len() int {
	return len(s)
}

// At returns the symbol at pos.
func (s StateID) At(pos int) Symbol {
	return Symbol(s[pos])
}

// Count returns how many positions hold sym.
func (s StateID) Count(sym Symbol) int {
	return strings.Count(string(s), string(rune(sym)))
}

// Contains reports whether any position holds sym.
func (s StateID) Contains(sym Symbol) bool {
	return strings.IndexByte(string(s), byte(sym)) != -1
}

// With returns a copy of s with the given positions overwritten.
func (s StateID) With(changes map[int]Symbol) StateID {
	b := []byte(s)
	for pos, sym := range changes {
		b[pos] = byte(sym)
	}
	return StateID(b)
}

// Fingerprint is a short hash of the configuration, handy in logs.
func (s StateID) Fingerprint() uint64 {
	return xxhash.Sum64String(string(s))
}

func (s StateID) String() string {
	return string(s)
}

// Side is one of the two players.
type Side int

const (
	SideA Side = iota
	SideB
)

// Symbol returns the piece symbol belonging to side.
func (s Side) Symbol() Symbol {
	if s == SideA {
		return SideASymbol
	}
	return SideBSymbol
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	return 1 - s
}

func (s Side) String() string {
	if s == SideA {
		return "white"
	}
	return "black"
}

var ErrUnknownSide = errors.New("unknown side")

// ParseSide accepts w/white and b/black.
func ParseSide(str string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "w", "white":
		return SideA, nil
	case "b", "black":
		return SideB, nil
	}
	return SideA, fmt.Errorf("%w: %q", ErrUnknownSide, str)
}

// Node pairs a StateID with its search cost so far (G, in plies from the
// start) and its heuristic estimate (H). Both are fixed when the StateID
// is first discovered.
type Node struct {
	ID StateID
	G  int
	H  float64
}

// F is the frontier priority.
func (n *Node) F() float64 {
	return float64(n.G) + n.H
}
