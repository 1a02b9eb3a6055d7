package board

import (
	"strings"

	"github.com/samber/lo"
)

// SplitRows cuts a row-major cell string into one string per row.
func (c *Context) SplitRows(cells string) []string {
	return lo.Map(lo.Range(c.RowCount()), func(row, _ int) string {
		start := c.rowStart[row]
		return cells[start : start+c.rowWidth[row]]
	})
}

// ToDisplayText renders a row-major cell string as a diamond, one row per
// line, with narrower rows indented so diagonals line up.
func (c *Context) ToDisplayText(cells string) string {
	var sb strings.Builder
	for row, cellsInRow := range c.SplitRows(cells) {
		sb.WriteString(strings.Repeat(" ", c.width-c.rowWidth[row]))
		sb.WriteString(strings.Join(strings.Split(strings.ToUpper(cellsInRow), ""), " "))
		sb.WriteString("\n")
	}
	return sb.String()
}
