package layout

import (
	"fmt"
	"strings"

	"github.com/llehouerou/dctransit/internal/panel"
)

// Rule is the derived geometry of one click-opened panel.
type Rule struct {
	ID       string
	Location panel.Edge
	Margin   panel.Edge
	// Container is the full container extent: content, both paddings and tab.
	Container int
	// TabOffset is the tab's distance from the anchor edge.
	TabOffset int
	// Inner is the content extent.
	Inner int
	// Slide is the (negative) margin the container is shifted by on its
	// margin edge while closed.
	Slide int
}

// Axis is the CSS property the rule sizes: width for side panels and
// height for top and bottom ones.
func (r Rule) Axis() string {
	if r.Location == panel.EdgeTop || r.Location == panel.EdgeBottom {
		return "height"
	}
	return "width"
}

// Stylesheet is the single style block produced by ApplyGeometry.
type Stylesheet struct {
	Rules []Rule
}

// Rule returns the rule for id.
func (s Stylesheet) Rule(id string) (Rule, bool) {
	for _, r := range s.Rules {
		if r.ID == id {
			return r, true
		}
	}
	return Rule{}, false
}

// String renders the stylesheet as CSS text.
func (s Stylesheet) String() string {
	var b strings.Builder
	for _, r := range s.Rules {
		axis := r.Axis()
		fmt.Fprintf(&b, "#ui #%s.panel-container { %s: %dpx; }\n", r.ID, axis, r.Container)
		fmt.Fprintf(&b, "#ui #%s .tab.%s { %s: %dpx; }\n", r.ID, r.Location, r.Location, r.TabOffset)
		fmt.Fprintf(&b, "#ui #%s .panel { %s: %dpx; }\n", r.ID, axis, r.Inner)
		fmt.Fprintf(&b, "#ui #%s.panel-container.%s.open { margin-%s: %dpx; }\n", r.ID, r.Location, r.Margin, r.Slide)
	}
	return b.String()
}
