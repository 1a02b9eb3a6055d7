package state

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/oska/board"
)

func TestParseRows(t *testing.T) {
	is := is.New(t)
	id, c, err := ParseRows([]string{"wwww", "---", "--", "---", "bbbb"})
	is.NoErr(err)
	is.Equal(id, StateID("wwww--------bbbb"))
	is.Equal(c.Width(), 4)
	is.Equal(c.PositionTotal(), 16)
	is.Equal(id.Len(), 16)
	is.Equal(id.Rows(c), []string{"wwww", "---", "--", "---", "bbbb"})
}

func TestParseSlashes(t *testing.T) {
	is := is.New(t)
	id, c, err := Parse("WWWWW/----/---/--/---/----/BBBBB")
	is.NoErr(err)
	is.Equal(c.Width(), 5)
	is.Equal(id.Count(SideASymbol), 5)
	is.Equal(id.Count(SideBSymbol), 5)
	is.Equal(id.Count(EmptySymbol), 16)
}

func TestParseRowsInvalid(t *testing.T) {
	testcases := []struct {
		name string
		rows []string
	}{
		{"empty", nil},
		{"too narrow", []string{"www", "--", "bbb"}},
		{"missing row", []string{"wwww", "---", "--", "bbbb"}},
		{"extra row", []string{"wwww", "---", "--", "---", "bbbb", "--"}},
		{"wrong row width", []string{"wwww", "--", "---", "---", "bbbb"}},
		{"bad symbol", []string{"wwww", "-x-", "--", "---", "bbbb"}},
		{"sentinel not allowed", []string{"wwww", "-X-", "--", "---", "bbbb"}},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			is := is.New(t)
			_, _, err := ParseRows(tc.rows)
			is.True(errors.Is(err, board.ErrInvalidBoard))
		})
	}
}

func TestStateIDWith(t *testing.T) {
	is := is.New(t)
	id := StateID("wwww--------bbbb")
	moved := id.With(map[int]Symbol{0: EmptySymbol, 4: SideASymbol})
	is.Equal(moved, StateID("-wwww-------bbbb"))
	// the receiver is untouched
	is.Equal(id, StateID("wwww--------bbbb"))
	is.True(moved != id)
	is.True(moved.Fingerprint() != id.Fingerprint())
	is.True(!StateID("wwww------------").Contains(SideBSymbol))
	is.Equal(id.At(12), SideBSymbol)
}

func TestSide(t *testing.T) {
	is := is.New(t)
	s, err := ParseSide("w")
	is.NoErr(err)
	is.Equal(s, SideA)
	s, err = ParseSide("Black")
	is.NoErr(err)
	is.Equal(s, SideB)
	is.Equal(s.Opponent(), SideA)
	is.Equal(SideA.Symbol(), SideASymbol)
	is.Equal(SideB.String(), "black")
	_, err = ParseSide("red")
	is.True(errors.Is(err, ErrUnknownSide))
}

func TestNodeF(t *testing.T) {
	is := is.New(t)
	n := &Node{ID: "wwww--------bbbb", G: 3, H: 1.5}
	is.Equal(n.F(), 4.5)
}
