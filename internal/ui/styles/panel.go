package styles

import "github.com/charmbracelet/lipgloss"

// Frame returns the border style of a panel body. A raised panel uses a
// thick border so it reads as being on top.
func Frame(focused, raised bool) lipgloss.Style {
	t := T()
	border := lipgloss.RoundedBorder()
	if raised {
		border = lipgloss.ThickBorder()
	}
	color := t.Border
	if focused {
		color = t.BorderFocus
	}
	return lipgloss.NewStyle().
		BorderStyle(border).
		BorderForeground(color).
		Padding(0, 1)
}

// FrameWidth is the horizontal space Frame adds around content.
const FrameWidth = 4

// FrameHeight is the vertical space Frame adds around content.
const FrameHeight = 2
