// Package headerbar renders the one-line status header.
package headerbar

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/dctransit/internal/ui/render"
	"github.com/llehouerou/dctransit/internal/ui/styles"
)

// Height is the fixed height of the header bar.
const Height = 1

// Info is what the header shows.
type Info struct {
	Station  string
	Position string
	Updated  time.Time
	Offline  bool
	Err      string
}

// Render returns the header line for width at time now.
func Render(info Info, width int, now time.Time) string {
	if width < 20 {
		return ""
	}
	s := styles.T().S()

	left := styles.Banner("dctransit")
	if info.Station != "" {
		left += s.Muted.Render(" │ ") + s.Title.Render(render.Sanitize(info.Station))
	}
	if info.Position != "" && width >= 70 {
		left += s.Subtle.Render(" @ " + info.Position)
	}

	var right string
	switch {
	case info.Err != "":
		right = s.Error.Render(info.Err)
	case info.Updated.IsZero():
		right = s.Muted.Render("waiting for arrivals")
	default:
		right = s.Muted.Render("updated " + humanize.RelTime(info.Updated, now, "ago", "from now"))
	}
	if info.Offline {
		right = s.Warning.Render("offline ") + right
	}

	if lipgloss.Width(left)+lipgloss.Width(right)+1 > width {
		return ansi.Truncate(left, width, "…")
	}
	return render.Row(left, right, width)
}

// Separator is a dim rule under the header.
func Separator(width int) string {
	return styles.T().S().Subtle.Render(render.Rule(width))
}
