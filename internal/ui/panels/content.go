// Package panels draws the panel containers in the terminal. It is the
// renderer behind the panel manager: it applies presentation directives,
// measures panel content and resolves which panel is under the pointer.
package panels

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/dctransit/internal/ui/layout"
)

// Content is the body of a panel.
type Content interface {
	// Natural renders the content at its preferred size. It is what the
	// layout resolver measures.
	Natural() string
	// View renders the content into at most width x height cells.
	View(width, height int) string
}

// Sectioned content reports its stacked sections for measurement.
type Sectioned interface {
	Sections() []string
}

// Static is fixed text content.
type Static string

func (s Static) Natural() string { return string(s) }

func (s Static) View(width, height int) string {
	return lipgloss.NewStyle().MaxWidth(width).MaxHeight(height).Render(string(s))
}

// measure turns content into the boxes the resolver sizes panels from.
func measure(c Content) (layout.Box, []layout.Box) {
	natural := c.Natural()
	box := layout.Box{Width: lipgloss.Width(natural), Height: lipgloss.Height(natural)}

	sc, ok := c.(Sectioned)
	if !ok {
		return box, nil
	}
	var children []layout.Box
	for _, s := range sc.Sections() {
		children = append(children, layout.Box{Width: lipgloss.Width(s), Height: lipgloss.Height(s)})
	}
	return box, children
}
