// Package logconsole shows the in-memory log tail in a scrollable panel.
package logconsole

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/dctransit/internal/keymap"
	"github.com/llehouerou/dctransit/internal/ui/styles"
)

// Natural size of the console, in cells.
const (
	NaturalWidth  = 72
	NaturalHeight = 8
)

// Source is a log line buffer.
type Source interface {
	Lines() []string
	Version() uint64
}

// Model is the log console.
type Model struct {
	src      Source
	keys     *keymap.Resolver
	vp       viewport.Model
	rendered uint64
	follow   bool
}

// New creates a console reading src, following new lines.
func New(src Source) *Model {
	return &Model{
		src:    src,
		keys:   keymap.ForContexts(keymap.ContextLog),
		vp:     viewport.New(NaturalWidth, NaturalHeight),
		follow: true,
	}
}

// Following reports whether the console sticks to the newest line.
func (m *Model) Following() bool {
	return m.follow
}

// refresh reloads the viewport when the buffer changed.
func (m *Model) refresh() {
	v := m.src.Version()
	if v == m.rendered && v != 0 {
		return
	}
	lines := m.src.Lines()
	subtle := styles.T().S().Subtle
	for i, l := range lines {
		lines[i] = subtle.Render(ansi.Truncate(l, m.vp.Width, "…"))
	}
	m.vp.SetContent(strings.Join(lines, "\n"))
	m.rendered = v
	if m.follow {
		m.vp.GotoBottom()
	}
}

// HandleKey scrolls the console. It reports whether the key was used.
func (m *Model) HandleKey(msg tea.KeyMsg) bool {
	switch m.keys.Resolve(msg.String()) {
	case keymap.ActionScrollUp:
		m.vp.ScrollUp(1)
		m.follow = false
	case keymap.ActionScrollDown:
		m.vp.ScrollDown(1)
		m.follow = m.vp.AtBottom()
	case keymap.ActionFollow:
		m.follow = true
		m.vp.GotoBottom()
	default:
		return false
	}
	return true
}

// Natural implements panels.Content.
func (m *Model) Natural() string {
	return strings.Repeat(strings.Repeat(" ", NaturalWidth)+"\n", NaturalHeight-1) +
		strings.Repeat(" ", NaturalWidth)
}

// View implements panels.Content.
func (m *Model) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if m.vp.Width != width || m.vp.Height != height {
		m.vp.Width, m.vp.Height = width, height
		m.rendered = 0
	}
	m.refresh()
	return m.vp.View()
}
