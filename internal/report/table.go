package report

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	cellSep = " | "
	lineSep = "-+-"
)

// Ambiguous-width runes such as "°" are one cell regardless of the locale.
var width = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// FormatTable renders headers and rows as a fixed width text table. Widths
// are terminal cells, so wide CJK runes count twice.
func FormatTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = width.StringWidth(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			if w := width.StringWidth(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	writeLine(&b, headers, widths)

	b.WriteByte('\n')
	for i, w := range widths {
		if i > 0 {
			b.WriteString(lineSep)
		}
		b.WriteString(strings.Repeat("-", w))
	}

	for _, row := range rows {
		b.WriteByte('\n')
		writeLine(&b, row, widths)
	}
	return b.String()
}

func writeLine(b *strings.Builder, cells []string, widths []int) {
	for i, w := range widths {
		if i > 0 {
			b.WriteString(cellSep)
		}
		var cell string
		if i < len(cells) {
			cell = cells[i]
		}
		b.WriteString(width.FillRight(cell, w))
	}
}
