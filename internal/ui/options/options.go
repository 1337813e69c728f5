// Package options is the form that enables and disables panels.
package options

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/llehouerou/dctransit/internal/app/panelctl"
	"github.com/llehouerou/dctransit/internal/keymap"
	"github.com/llehouerou/dctransit/internal/ui/render"
	"github.com/llehouerou/dctransit/internal/ui/styles"
)

// Source is the panel engine as seen by the form.
type Source interface {
	OptionsAvailable() bool
	OptionEntries() []panelctl.Option
	ApplyOptions(enabled map[string]bool)
}

// Model holds the edited form state.
type Model struct {
	src    Source
	keys   *keymap.Resolver
	rows   []panelctl.Option
	cursor int
}

// New creates a form backed by src.
func New(src Source) *Model {
	m := &Model{src: src, keys: keymap.ForContexts(keymap.ContextOptions)}
	m.Reload()
	return m
}

// Reload discards edits and reads the current panel states.
func (m *Model) Reload() {
	m.rows = m.src.OptionEntries()
	m.cursor = min(m.cursor, max(len(m.rows)-1, 0))
}

// Rows returns the form rows with pending edits.
func (m *Model) Rows() []panelctl.Option {
	return m.rows
}

// Toggle flips row i.
func (m *Model) Toggle(i int) {
	if i >= 0 && i < len(m.rows) {
		m.rows[i].Enabled = !m.rows[i].Enabled
	}
}

// Submit applies the edited rows to the engine.
func (m *Model) Submit() {
	enabled := make(map[string]bool, len(m.rows))
	for _, r := range m.rows {
		enabled[r.ID] = r.Enabled
	}
	m.src.ApplyOptions(enabled)
	m.Reload()
}

// Result of handling input.
type Result int

const (
	Ignored Result = iota
	Handled
	Submitted
	Cancelled
)

// HandleKey processes a key while the form has focus.
func (m *Model) HandleKey(msg tea.KeyMsg) Result {
	if !m.src.OptionsAvailable() {
		return Ignored
	}
	switch m.keys.Resolve(msg.String()) {
	case keymap.ActionMoveUp:
		m.cursor = max(m.cursor-1, 0)
	case keymap.ActionMoveDown:
		m.cursor = min(m.cursor+1, max(len(m.rows)-1, 0))
	case keymap.ActionToggleSelect:
		m.Toggle(m.cursor)
	case keymap.ActionApply:
		m.Submit()
		return Submitted
	case keymap.ActionCancel:
		m.Reload()
		return Cancelled
	default:
		return Ignored
	}
	return Handled
}

// HandleClick toggles the row under a left click, or submits when the
// apply button is clicked.
func (m *Model) HandleClick(msg tea.MouseMsg) Result {
	if !m.src.OptionsAvailable() || msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionRelease {
		return Ignored
	}
	if z := zone.Get(applyZone); z != nil && z.InBounds(msg) {
		m.Submit()
		return Submitted
	}
	for i, r := range m.rows {
		if z := zone.Get(rowZone(r.ID)); z != nil && z.InBounds(msg) {
			m.cursor = i
			m.Toggle(i)
			return Handled
		}
	}
	return Ignored
}

const applyZone = "options-apply"

func rowZone(id string) string { return "option-" + id }

func (m *Model) lines(width int) []string {
	s := styles.T().S()
	if !m.src.OptionsAvailable() {
		return []string{s.Muted.Render(render.Cell("Panel disabling is turned off", width))}
	}
	if len(m.rows) == 0 {
		return []string{s.Muted.Render(render.Cell("No panels can be disabled", width))}
	}

	out := make([]string, 0, len(m.rows)+2)
	for i, r := range m.rows {
		box := "[ ]"
		if r.Enabled {
			box = "[x]"
		}
		line := render.Cell(box+" "+r.Title, width)
		if i == m.cursor {
			line = s.Cursor.Render(line)
		} else {
			line = s.Base.Render(line)
		}
		out = append(out, zone.Mark(rowZone(r.ID), line))
	}
	out = append(out, "", zone.Mark(applyZone, s.Title.Render("[ apply ]")))
	return out
}

// Natural implements panels.Content.
func (m *Model) Natural() string {
	width := lipgloss.Width("Panel disabling is turned off")
	for _, r := range m.rows {
		width = max(width, lipgloss.Width("[x] "+r.Title))
	}
	return strings.Join(m.lines(width), "\n")
}

// View implements panels.Content.
func (m *Model) View(width, height int) string {
	lines := m.lines(width)
	if len(lines) > height {
		lines = lines[:max(height, 0)]
	}
	return strings.Join(lines, "\n")
}
