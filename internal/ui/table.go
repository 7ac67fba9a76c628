package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Column is a fixed-width table column.
type Column struct {
	Header string
	Width  int
}

// RenderTable renders rows under bold headers. Cells are padded or truncated
// to their column width in terminal cells.
func RenderTable(columns []Column, rows [][]string) string {
	var b strings.Builder

	writeRow := func(cell func(i int, col Column) string) {
		for i, col := range columns {
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(cell(i, col))
		}
		b.WriteString("\n")
	}

	writeRow(func(_ int, col Column) string {
		return HeaderStyle.Render(fit(col.Header, col.Width))
	})
	writeRow(func(_ int, col Column) string {
		return DimStyle.Render(strings.Repeat("─", col.Width))
	})
	for _, row := range rows {
		writeRow(func(i int, col Column) string {
			if i < len(row) {
				return fit(row[i], col.Width)
			}
			return fit("", col.Width)
		})
	}

	return b.String()
}

func fit(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, ""), width)
}
