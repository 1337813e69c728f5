package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/llehouerou/dctransit/internal/ui/headerbar"
	"github.com/llehouerou/dctransit/internal/ui/layout"
	"github.com/llehouerou/dctransit/internal/ui/render"
	"github.com/llehouerou/dctransit/internal/ui/styles"
)

const (
	separatorHeight = 1
	footerHeight    = 1
	hint            = "tab: focus  enter: open/close  ?: help  o: options  q: quit"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.Width == 0 || m.Height == 0 {
		return ""
	}

	header := headerbar.Render(m.headerInfo(), m.Width, m.now())
	content := layout.ContentHeight(m.Height, layout.ContentOpts{
		HeaderHeight: headerbar.Height + separatorHeight,
		FooterHeight: footerHeight,
	})

	base := make([]string, 0, m.Height)
	base = append(base, header, headerbar.Separator(m.Width))
	body := lipgloss.Place(m.Width, content, lipgloss.Center, lipgloss.Center,
		styles.T().S().Muted.Render("dctransit"))
	if content > 0 {
		base = append(base, strings.Split(body, "\n")...)
	}
	base = append(base, m.footer())

	area := layout.Rect{X: 0, Y: headerbar.Height + separatorHeight, W: m.Width, H: content}
	screen := strings.Join(base, "\n")
	out := screen
	err := m.engine.Supervise("render", func() error {
		out = m.renderer.View(m.engine.Registry(), screen, area, m.Width)
		return nil
	})
	if err != nil {
		m.log.Error().Err(err).Msg("render failed")
		out = screen
	}
	return zone.Scan(out)
}

func (m Model) headerInfo() headerbar.Info {
	snap := m.arrivals.Snapshot()
	info := headerbar.Info{
		Updated: snap.LastUpdated,
		Offline: snap.IsOffline(),
	}
	if snap.HasResult {
		info.Station = snap.Result.StationName
		info.Position = snap.Result.Position.String()
	}
	if snap.LastError != nil && !snap.HasResult {
		info.Err = snap.LastError.Error()
	}
	return info
}

func (m Model) footer() string {
	s := styles.T().S()
	if m.ErrorMsg != "" {
		return s.Error.Render(render.Truncate(m.ErrorMsg, m.Width))
	}
	return s.Subtle.Render(render.Truncate(hint, m.Width))
}
