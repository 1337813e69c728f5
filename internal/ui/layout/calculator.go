// Package layout resolves panel geometry. It discovers panels from the
// layout document, measures their content and derives the sizes and offsets
// the renderer applies, plus a few pure screen calculations.
package layout

import "github.com/llehouerou/dctransit/internal/panel"

// NarrowThreshold is the terminal width below which an open side panel
// takes the whole content width.
const NarrowThreshold = 80

// ContentOpts contains the parameters needed to calculate content height.
type ContentOpts struct {
	HeaderHeight int
	FooterHeight int
}

// ContentHeight calculates the height left for panels: the terminal height
// minus header and footer.
func ContentHeight(windowHeight int, opts ContentOpts) int {
	height := windowHeight
	height -= opts.HeaderHeight
	height -= opts.FooterHeight
	return max(height, 0)
}

// IsNarrowMode returns true if the terminal width is below the narrow threshold.
func IsNarrowMode(width int) bool {
	return width < NarrowThreshold
}

// Rect is a screen rectangle in cells.
type Rect struct {
	X, Y, W, H int
}

// Placement returns where a panel container sits inside area. An open
// container is flush with its anchor edge; a closed one slides off screen
// by the rule's slide offset so only the tab remains visible. Panels
// without a rule (hover panels) use width + tab.
func Placement(e *panel.Entity, r Rule, hasRule bool, tabWidth int, area Rect) Rect {
	extent := r.Container
	slide := r.Slide
	if !hasRule {
		size := e.Width
		if e.Location == panel.EdgeTop || e.Location == panel.EdgeBottom {
			size = e.Height
		}
		extent = size + tabWidth
		slide = -size
	}
	if e.IsOpen {
		slide = 0
	}

	switch e.Location {
	case panel.EdgeRight:
		w := min(extent, area.W)
		return Rect{X: area.X + area.W - w - slide, Y: area.Y, W: w, H: area.H}
	case panel.EdgeTop:
		h := min(extent, area.H)
		return Rect{X: area.X, Y: area.Y + slide, W: area.W, H: h}
	case panel.EdgeBottom:
		h := min(extent, area.H)
		return Rect{X: area.X, Y: area.Y + area.H - h - slide, W: area.W, H: h}
	default:
		w := min(extent, area.W)
		return Rect{X: area.X + slide, Y: area.Y, W: w, H: area.H}
	}
}

// Clip intersects r with area.
func Clip(r, area Rect) Rect {
	x0, y0 := max(r.X, area.X), max(r.Y, area.Y)
	x1, y1 := min(r.X+r.W, area.X+area.W), min(r.Y+r.H, area.Y+area.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Contains reports whether cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}
