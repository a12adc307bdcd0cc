// Package tabular renders fixed-width text tables for CLI output.
package tabular

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Render lays out rows under a header as an aligned text table. Column
// widths follow display width, not byte length, so wide characters keep
// the columns straight.
func Render(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = runewidth.StringWidth(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	writeRow(&b, headers, widths)
	for i, width := range widths {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(strings.Repeat("-", width))
	}
	b.WriteByte('\n')
	for _, row := range rows {
		writeRow(&b, row, widths)
	}
	return b.String()
}

// Truncate shortens a value to at most width display columns, appending an
// ellipsis when it was cut.
func Truncate(value string, width int) string {
	return runewidth.Truncate(value, width, "…")
}

func writeRow(b *strings.Builder, cells []string, widths []int) {
	for i, width := range widths {
		if i > 0 {
			b.WriteString("  ")
		}
		var cell string
		if i < len(cells) {
			cell = cells[i]
		}
		b.WriteString(cell)
		if pad := width - runewidth.StringWidth(cell); pad > 0 && i < len(widths)-1 {
			b.WriteString(strings.Repeat(" ", pad))
		}
	}
	b.WriteByte('\n')
}
