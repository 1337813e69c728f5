// Package render provides text helpers for fixed-width terminal cells.
package render

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Sanitize drops control characters and invalid UTF-8 so API strings
// cannot break the terminal. Tabs and non-breaking spaces become spaces.
func Sanitize(s string) string {
	clean := true
	for _, r := range s {
		if r == utf8.RuneError || r == ' ' || unicode.IsControl(r) {
			clean = false
			break
		}
	}
	if clean {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		switch {
		case r == utf8.RuneError && size <= 1:
		case r == '\t' || r == ' ':
			b.WriteByte(' ')
		case unicode.IsControl(r):
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Truncate shortens s to width cells, ending with "…" when cut.
func Truncate(s string, width int) string {
	return runewidth.Truncate(Sanitize(s), width, "…")
}

// Cell truncates and pads s to exactly width cells.
func Cell(s string, width int) string {
	return runewidth.FillRight(Truncate(s, width), width)
}

// CellRight is Cell with the text aligned right.
func CellRight(s string, width int) string {
	return runewidth.FillLeft(Truncate(s, width), width)
}

// Row places left and right at the two ends of a width-wide line.
// Styled input is measured by its visible width.
func Row(left, right string, width int) string {
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

// Rule is a horizontal line of width cells.
func Rule(width int) string {
	if width <= 0 {
		return ""
	}
	return strings.Repeat("─", width)
}
