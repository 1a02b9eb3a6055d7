package state

import (
	"fmt"
	"strings"

	"github.com/domino14/oska/board"
)

// Parse reads a configuration written as rows separated by slashes, e.g.
// "wwww/---/--/---/bbbb".
func Parse(str string) (StateID, *board.Context, error) {
	return ParseRows(strings.Split(strings.TrimSpace(str), "/"))
}

// ParseRows concatenates the rows of a start configuration into a StateID
// and builds the board context for it. The first row's length fixes the
// board width; every other row must have the width the diamond requires.
func ParseRows(rows []string) (StateID, *board.Context, error) {
	if len(rows) == 0 {
		return NoParent, nil, &board.GeometryError{Reason: "no rows given"}
	}
	n := len(rows[0])
	c, err := board.ContextFor(n)
	if err != nil {
		return NoParent, nil, err
	}
	if len(rows) != c.RowCount() {
		return NoParent, nil, &board.GeometryError{Width: n,
			Reason: fmt.Sprintf("expected %d rows, but got %d", c.RowCount(), len(rows))}
	}

	var sb strings.Builder
	sb.Grow(c.PositionTotal())
	for i, row := range rows {
		if len(row) != c.RowWidth(i) {
			return NoParent, nil, &board.GeometryError{Width: n,
				Reason: fmt.Sprintf("row %d has %d cells, expected %d", i, len(row), c.RowWidth(i))}
		}
		for j := 0; j < len(row); j++ {
			sym, err := parseSymbol(row[j])
			if err != nil {
				return NoParent, nil, &board.GeometryError{Width: n,
					Reason: fmt.Sprintf("row %d: %v", i, err)}
			}
			sb.WriteByte(byte(sym))
		}
	}
	id := StateID(sb.String())
	if id.Len() != c.PositionTotal() {
		return NoParent, nil, &board.GeometryError{Width: n,
			Expected: c.PositionTotal(), Got: id.Len()}
	}
	return id, c, nil
}

func parseSymbol(ch byte) (Symbol, error) {
	switch ch {
	case 'w', 'W':
		return SideASymbol, nil
	case 'b', 'B':
		return SideBSymbol, nil
	case '-', '.':
		return EmptySymbol, nil
	}
	return EmptySymbol, fmt.Errorf("unexpected cell %q", ch)
}

// Rows splits the StateID back into its rows.
func (s StateID) Rows(c *board.Context) []string {
	return c.SplitRows(string(s))
}
