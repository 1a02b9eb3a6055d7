package board

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/oska/cache"
)

// ErrInvalidBoard is the root of every error caused by a malformed board or
// start configuration.
var ErrInvalidBoard = errors.New("invalid board")

// GeometryError describes why a board could not be built.
type GeometryError struct {
	Width    int
	Expected int
	Got      int
	Reason   string
}

func (e *GeometryError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid board (width %d): %s", e.Width, e.Reason)
	}
	return fmt.Sprintf("invalid board (width %d): expected %d positions, but got %d",
		e.Width, e.Expected, e.Got)
}

func (e *GeometryError) Unwrap() error {
	return ErrInvalidBoard
}

// Context is the precomputed geometry for one board width. It is read-only
// once built.
type Context struct {
	width    int
	total    int
	rowOf    []int
	rowStart []int
	rowWidth []int
}

var contexts = cache.New(NewContext)

// ContextFor returns the shared Context for width n, building it on first
// use.
func ContextFor(n int) (*Context, error) {
	return contexts.Get(n)
}

// NewContext sweeps the board row by row, widest to narrowest to widest,
// and records which row every position belongs to.
func NewContext(n int) (*Context, error) {
	if n < MinWidth {
		return nil, &GeometryError{Width: n,
			Reason: fmt.Sprintf("first row must be at least width %d", MinWidth)}
	}
	expected := WidthToPositionTotal(n)
	widths := RowWidths(n)

	c := &Context{
		width:    n,
		rowOf:    make([]int, 0, expected),
		rowStart: make([]int, len(widths)),
		rowWidth: widths,
	}
	position := 0
	for row, w := range widths {
		c.rowStart[row] = position
		for j := 0; j < w; j++ {
			c.rowOf = append(c.rowOf, row)
			position++
		}
	}
	if position != expected {
		return nil, &GeometryError{Width: n, Expected: expected, Got: position}
	}
	c.total = position
	log.Debug().Int("width", n).Int("positions", c.total).Int("rows", len(widths)).
		Msg("board-context-built")
	return c, nil
}

// Width is the first row's width.
func (c *Context) Width() int { return c.width }

// PositionTotal is the number of cells on the board.
func (c *Context) PositionTotal() int { return c.total }

// RowCount is the number of rows.
func (c *Context) RowCount() int { return len(c.rowWidth) }

// RowOf returns the row containing pos.
func (c *Context) RowOf(pos int) int { return c.rowOf[pos] }

// RowStart returns the position of the first cell in row.
func (c *Context) RowStart(row int) int { return c.rowStart[row] }

// RowWidth returns the number of cells in row.
func (c *Context) RowWidth(row int) int { return c.rowWidth[row] }

// Coords returns the row and offset-within-row of pos.
func (c *Context) Coords(pos int) (row, offset int) {
	row = c.rowOf[pos]
	return row, pos - c.rowStart[row]
}

// Pos returns the position at (row, offset), or false if it is off the board.
func (c *Context) Pos(row, offset int) (int, bool) {
	if row < 0 || row >= len(c.rowWidth) || offset < 0 || offset >= c.rowWidth[row] {
		return 0, false
	}
	return c.rowStart[row] + offset, true
}

// Diagonal returns the cell reached by moving dist rows in direction dRow
// (+1 down, -1 up), shifted dist half-cells left (dx = -1) or right (dx = +1).
// Rows are centred on each other, so a cell's horizontal position in
// half-cell units is 2*offset - (width-1).
func (c *Context) Diagonal(pos, dRow, dx, dist int) (int, bool) {
	row, offset := c.Coords(pos)
	x := 2*offset - (c.rowWidth[row] - 1)
	toRow := row + dRow*dist
	if toRow < 0 || toRow >= len(c.rowWidth) {
		return 0, false
	}
	toX := x + dx*dist
	w := c.rowWidth[toRow]
	// toX + w - 1 must be even to land on a cell centre.
	if (toX+w-1)%2 != 0 {
		return 0, false
	}
	return c.Pos(toRow, (toX+w-1)/2)
}
