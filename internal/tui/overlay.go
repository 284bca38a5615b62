package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// overlayCenter draws box on top of base, centered in a width x height grid.
// base is padded or cut to the grid first.
func overlayCenter(base, box string, width, height int) string {
	boxLines := splitLines(box)
	boxWidth := maxLineWidth(boxLines)
	x := max(0, (width-boxWidth)/2)
	y := max(0, (height-len(boxLines))/2)

	rows := splitLines(base)
	for len(rows) < height {
		rows = append(rows, "")
	}
	rows = rows[:height]

	for i, line := range boxLines {
		row := y + i
		if row >= len(rows) {
			break
		}
		target := padRight(rows[row], width)
		left := padRight(ansi.Truncate(target, x, ""), x)
		line = padRight(line, boxWidth)
		right := ansi.TruncateLeft(target, x+boxWidth, "")
		rows[row] = left + line + right
	}
	return strings.Join(rows, "\n")
}

func splitLines(s string) []string {
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}

func maxLineWidth(lines []string) int {
	w := 0
	for _, line := range lines {
		w = max(w, ansi.StringWidth(line))
	}
	return w
}

// padRight pads s with spaces to the visual width.
func padRight(s string, width int) string {
	if gap := width - ansi.StringWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// truncate cuts s to width cells with an ellipsis.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}
