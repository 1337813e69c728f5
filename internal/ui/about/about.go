// Package about is the static about panel with the key reference.
package about

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/dctransit/internal/keymap"
	"github.com/llehouerou/dctransit/internal/ui/styles"
)

const blurb = "Live Metrorail arrivals for the station nearest to you."

// Model renders the about text.
type Model struct {
	help     help.Model
	contexts []string
}

// New creates the about panel listing the bindings of contexts.
func New(contexts ...string) *Model {
	h := help.New()
	h.ShowAll = true
	return &Model{help: h, contexts: contexts}
}

// groups turns keymap bindings into help columns, one per context.
func (m *Model) groups() [][]key.Binding {
	var out [][]key.Binding
	for _, ctx := range m.contexts {
		var col []key.Binding
		for _, b := range keymap.ByContext(ctx) {
			col = append(col, key.NewBinding(
				key.WithKeys(b.Keys...),
				key.WithHelp(strings.Join(displayKeys(b.Keys), "/"), b.Description),
			))
		}
		if len(col) > 0 {
			out = append(out, col)
		}
	}
	return out
}

func displayKeys(keys []string) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		if k == " " {
			k = "space"
		}
		out[i] = k
	}
	return out
}

func (m *Model) render(width int) string {
	s := styles.T().S()
	m.help.Width = width
	parts := []string{
		styles.Banner("dctransit"),
		s.Muted.Render(lipgloss.NewStyle().Width(max(width, 20)).Render(blurb)),
		"",
		m.help.FullHelpView(m.groups()),
	}
	return strings.Join(parts, "\n")
}

// Natural implements panels.Content.
func (m *Model) Natural() string {
	return m.render(0)
}

// View implements panels.Content.
func (m *Model) View(width, height int) string {
	return lipgloss.NewStyle().MaxWidth(width).MaxHeight(height).Render(m.render(width))
}
