// Package overlay stacks rendered blocks on top of each other.
package overlay

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Place draws block over base with its top-left corner at (x, y). The
// block is opaque: every cell it covers replaces the base cell. Parts
// that fall outside width or the base height are clipped. ANSI styling
// on both sides is preserved.
func Place(base, block string, x, y, width int) string {
	if block == "" || width <= 0 {
		return base
	}
	lines := strings.Split(base, "\n")
	for i, row := range strings.Split(block, "\n") {
		ly := y + i
		if ly < 0 || ly >= len(lines) {
			continue
		}
		lines[ly] = placeRow(lines[ly], row, x, width)
	}
	return strings.Join(lines, "\n")
}

func placeRow(line, row string, x, width int) string {
	rowWidth := ansi.StringWidth(row)
	start, end := x, x+rowWidth
	if start < 0 {
		row = ansi.Cut(row, -start, rowWidth)
		start = 0
	}
	if end > width {
		row = ansi.Cut(row, 0, rowWidth-(end-width))
		end = width
	}
	if start >= end {
		return line
	}

	if w := ansi.StringWidth(line); w < width {
		line += strings.Repeat(" ", width-w)
	}
	out := ansi.Cut(line, 0, start) + row
	if end < width {
		out += ansi.Cut(line, end, width)
	}
	return out
}

// Layer is one block to compose.
type Layer struct {
	Content string
	X, Y    int
	Z       int
}

// Compose places layers over base in ascending Z order. Layers with equal
// Z keep their given order.
func Compose(base string, width int, layers ...Layer) string {
	ordered := make([]Layer, len(layers))
	copy(ordered, layers)
	// insertion sort keeps equal Z stable
	for i := 1; i < len(ordered); i++ {
		for j := i; j > 0 && ordered[j].Z < ordered[j-1].Z; j-- {
			ordered[j], ordered[j-1] = ordered[j-1], ordered[j]
		}
	}
	for _, l := range ordered {
		base = Place(base, l.Content, l.X, l.Y, width)
	}
	return base
}
