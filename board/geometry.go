// Package board holds the geometry of the diamond-shaped Oska board. A board
// is identified by the width of its first row. Rows shrink one cell at a time
// down to a waist of width 2 and then grow back to the first row's width.
// Positions are numbered row-major from the top-left corner.
package board

import "math"

// MinWidth is the narrowest first row we allow.
const MinWidth = 4

// WaistWidth is the width of the narrowest row.
const WaistWidth = 2

// WidthToPositionTotal converts the first row width into the total number of
// positions on the board.
func WidthToPositionTotal(n int) int {
	return n*n + n - 4
}

// PositionTotalToWidth is the inverse of WidthToPositionTotal. For totals that
// are not produced by any width, it returns the floor of the real root.
func PositionTotalToWidth(p int) int {
	return (isqrt(17+4*p) - 1) / 2
}

// WidthToRowCount returns the number of rows on a board whose first row has
// n cells.
func WidthToRowCount(n int) int {
	return 2*n - 3
}

// RowWidths returns the width of every row, top to bottom.
func RowWidths(n int) []int {
	widths := make([]int, 0, WidthToRowCount(n))
	for w := n; w >= WaistWidth; w-- {
		widths = append(widths, w)
	}
	for w := WaistWidth + 1; w <= n; w++ {
		widths = append(widths, w)
	}
	return widths
}

// PositionToRowAndOffset finds the row containing pos, the offset of pos
// within that row, and that row's width, without walking the rows.
//
// The upper half (everything up to and including the waist row) is inverted
// by counting backwards from the last waist cell; the lower half by counting
// forwards from the first cell below the waist. With posMid = P/2 - 1 the
// waist row holds posMid and posMid+1, so the split is at pos <= posMid+1.
func PositionToRowAndOffset(pos, n int) (row, offset, rowWidth int) {
	total := WidthToPositionTotal(n)
	posMid := total/2 - 1
	waistRow := n - 2

	if pos <= posMid+1 {
		// q counts back from the last waist cell. The d rows nearest the
		// waist (widths 2..d+1) hold (d+1)(d+2)/2 - 1 cells.
		q := posMid + 1 - pos
		m := (isqrt(8*q+9) - 1) / 2
		d := m - 1
		rowWidth = d + WaistWidth
		before := (d+1)*(d+2)/2 - 1
		row = waistRow - d
		offset = rowWidth - 1 - (q - before)
		return row, offset, rowWidth
	}
	// r counts forward from the first cell below the waist. The rows e=1..k
	// below the waist (widths 3..k+2) hold (k+2)(k+3)/2 - 3 cells.
	r := pos - (posMid + 2)
	m := (isqrt(8*r+25) - 1) / 2
	e := m - 1
	rowWidth = e + WaistWidth
	before := (e+1)*(e+2)/2 - 3
	row = waistRow + e
	offset = r - before
	return row, offset, rowWidth
}

// isqrt is floor(sqrt(x)) for non-negative x.
func isqrt(x int) int {
	if x <= 0 {
		return 0
	}
	r := int(math.Sqrt(float64(x)))
	for r*r > x {
		r--
	}
	for (r+1)*(r+1) <= x {
		r++
	}
	return r
}
