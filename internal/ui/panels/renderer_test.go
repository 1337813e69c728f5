package panels

import (
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/dctransit/internal/app/panelctl"
	"github.com/llehouerou/dctransit/internal/panel"
	"github.com/llehouerou/dctransit/internal/ui/layout"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

func newRegistry(t *testing.T, entities ...panel.Entity) *panel.Registry {
	t.Helper()
	reg := panel.NewRegistry()
	for _, e := range entities {
		_, err := reg.Add(e)
		require.NoError(t, err)
	}
	return reg
}

func entity(id string, edge panel.Edge, method panel.OpenMethod, width int) panel.Entity {
	e := panel.NewEntity(id)
	e.SetLocation(edge)
	e.OpenMethod = method
	e.Width = width
	e.Height = 4
	return e
}

func blankScreen(w, h int) string {
	rows := make([]string, h)
	for i := range rows {
		rows[i] = strings.Repeat(" ", w)
	}
	return strings.Join(rows, "\n")
}

func TestApply_VisualState(t *testing.T) {
	r := New(3, zerolog.Nop())

	r.Apply(panelctl.Directive{Kind: panelctl.Show, ID: "metro"})
	r.Apply(panelctl.Directive{Kind: panelctl.AddOpenClass, ID: "metro"})
	r.Apply(panelctl.Directive{Kind: panelctl.SetStacking, ID: "metro", Value: 50})

	assert.True(t, r.Visible("metro"))
	assert.True(t, r.IsOpen("metro"))
	assert.Equal(t, 50, r.Stacking("metro"))
	assert.Nil(t, r.Pending(), "no settle without a delay")

	r.Apply(panelctl.Directive{Kind: panelctl.RemoveOpenClass, ID: "metro"})
	assert.False(t, r.IsOpen("metro"))
}

func TestHide_SettlesThenDisappears(t *testing.T) {
	r := New(3, zerolog.Nop())
	r.Apply(panelctl.Directive{Kind: panelctl.Show, ID: "metro"})

	r.Apply(panelctl.Directive{Kind: panelctl.Hide, ID: "metro", Settle: time.Millisecond})
	assert.True(t, r.Visible("metro"), "still drawn while settling")
	assert.True(t, r.Settling("metro"))

	cmd := r.Pending()
	require.NotNil(t, cmd)
	assert.Nil(t, r.Pending(), "pending commands are drained")

	msg := cmd()
	settled, ok := msg.(SettledMsg)
	require.True(t, ok, "got %T", msg)
	r.Settled(settled)

	assert.False(t, r.Visible("metro"))
	assert.False(t, r.Settling("metro"))
}

func TestSettled_StaleMessageIgnored(t *testing.T) {
	r := New(3, zerolog.Nop())
	r.Apply(panelctl.Directive{Kind: panelctl.Show, ID: "metro"})
	r.Apply(panelctl.Directive{Kind: panelctl.Hide, ID: "metro", Settle: time.Second})
	stale := SettledMsg{ID: "metro", Gen: r.visuals["metro"].gen}

	r.Apply(panelctl.Directive{Kind: panelctl.Show, ID: "metro", Settle: time.Second})
	r.Settled(stale)

	assert.True(t, r.Visible("metro"))
	assert.True(t, r.Settling("metro"), "the newer transition is still running")
}

func TestContents_Measures(t *testing.T) {
	r := New(3, zerolog.Nop())
	r.Register("about", "About", Static("line one\nthe second line"))

	box, children, ok := r.Contents("about")
	require.True(t, ok)
	assert.Equal(t, layout.Box{Width: 15, Height: 2}, box)
	assert.Nil(t, children)

	_, _, ok = r.Contents("ghost")
	assert.False(t, ok)
}

type sectioned struct{ Static }

func (sectioned) Sections() []string { return []string{"title", "a much wider row\nrow"} }

func TestContents_Sections(t *testing.T) {
	r := New(3, zerolog.Nop())
	r.Register("metro", "Metro", sectioned{Static("x")})
	_, children, ok := r.Contents("metro")
	require.True(t, ok)
	assert.Equal(t, []layout.Box{{Width: 5, Height: 1}, {Width: 16, Height: 2}}, children)
}

func show(r *Renderer, ids ...string) {
	for _, id := range ids {
		r.Apply(panelctl.Directive{Kind: panelctl.Show, ID: id})
	}
}

func TestView_ClosedPanelShowsOnlyTab(t *testing.T) {
	r := New(3, zerolog.Nop())
	r.Register("metro", "Metro", Static("RD  8  Glenmont  BRD"))
	reg := newRegistry(t, entity("metro", panel.EdgeLeft, panel.OpenClick, 20))
	r.Apply(panelctl.Directive{Kind: panelctl.ApplyStyle, Style: layout.Stylesheet{Rules: []layout.Rule{
		{ID: "metro", Location: panel.EdgeLeft, Margin: panel.EdgeRight, Container: 26, TabOffset: 23, Inner: 20, Slide: -23},
	}}})
	show(r, "metro")

	area := layout.Rect{W: 100, H: 12}
	out := ansi.Strip(r.View(reg, blankScreen(100, 12), area, 100))
	assert.NotContains(t, out, "Glenmont")
	assert.Contains(t, out, "M", "tab letters are drawn")

	id, ok := r.TabAt(tea.MouseMsg{X: 1, Y: 3})
	assert.True(t, ok)
	assert.Equal(t, "metro", id)

	r.Apply(panelctl.Directive{Kind: panelctl.AddOpenClass, ID: "metro"})
	out = ansi.Strip(r.View(reg, blankScreen(100, 12), area, 100))
	assert.Contains(t, out, "Glenmont")

	id, ok = r.PanelAt(tea.MouseMsg{X: 5, Y: 5})
	assert.True(t, ok)
	assert.Equal(t, "metro", id)
	_, ok = r.TabAt(tea.MouseMsg{X: 5, Y: 5})
	assert.False(t, ok, "body is not a tab")
}

func TestView_HiddenPanelNotDrawn(t *testing.T) {
	r := New(3, zerolog.Nop())
	r.Register("metro", "Metro", Static("x"))
	reg := newRegistry(t, entity("metro", panel.EdgeLeft, panel.OpenClick, 20))
	r.Apply(panelctl.Directive{Kind: panelctl.Hide, ID: "metro"})

	out := r.View(reg, blankScreen(40, 10), layout.Rect{W: 40, H: 10}, 40)
	assert.Equal(t, blankScreen(40, 10), out)
	_, ok := r.PanelAt(tea.MouseMsg{X: 1, Y: 2})
	assert.False(t, ok)
}

func TestView_StackingDecidesTopPanel(t *testing.T) {
	r := New(3, zerolog.Nop())
	reg := newRegistry(t,
		entity("metro", panel.EdgeLeft, panel.OpenClick, 40),
		entity("position", panel.EdgeRight, panel.OpenClick, 40),
	)
	r.Register("metro", "Metro", Static("left"))
	r.Register("position", "Position", Static("right"))
	show(r, "metro", "position")
	for _, id := range []string{"metro", "position"} {
		r.Apply(panelctl.Directive{Kind: panelctl.AddOpenClass, ID: id})
	}
	r.Apply(panelctl.Directive{Kind: panelctl.SetStacking, ID: "metro", Value: 3})
	r.Apply(panelctl.Directive{Kind: panelctl.SetStacking, ID: "position", Value: 2})

	area := layout.Rect{W: 80, H: 10}
	r.View(reg, blankScreen(80, 10), area, 80)
	id, _ := r.PanelAt(tea.MouseMsg{X: 40, Y: 5})
	assert.Equal(t, "metro", id)

	r.Apply(panelctl.Directive{Kind: panelctl.SetStacking, ID: "position", Value: panelctl.ElevatedZ})
	r.View(reg, blankScreen(80, 10), area, 80)
	id, _ = r.PanelAt(tea.MouseMsg{X: 40, Y: 5})
	assert.Equal(t, "position", id)
}

func TestView_HitAreasClippedToContentArea(t *testing.T) {
	r := New(3, zerolog.Nop())
	r.Register("metro", "Metro", Static("x"))
	reg := newRegistry(t, entity("metro", panel.EdgeLeft, panel.OpenClick, 20))
	r.Apply(panelctl.Directive{Kind: panelctl.ApplyStyle, Style: layout.Stylesheet{Rules: []layout.Rule{
		{ID: "metro", Location: panel.EdgeLeft, Margin: panel.EdgeRight, Container: 26, TabOffset: 23, Inner: 20, Slide: -23},
	}}})
	show(r, "metro")

	area := layout.Rect{X: 0, Y: 2, W: 100, H: 10}
	r.View(reg, blankScreen(100, 13), area, 100)

	require.Len(t, r.hits, 1)
	h := r.hits[0]
	assert.Zero(t, h.body.W, "closed body lies outside the area")
	assert.GreaterOrEqual(t, h.tab.Y, area.Y)
	assert.LessOrEqual(t, h.tab.Y+h.tab.H, area.Y+area.H)
}

func TestHover_OpensHoverPanels(t *testing.T) {
	r := New(3, zerolog.Nop())
	reg := newRegistry(t,
		entity("about", panel.EdgeLeft, panel.OpenHover, 20),
		entity("position", panel.EdgeRight, panel.OpenClick, 20),
	)
	show(r, "about", "position")
	area := layout.Rect{W: 80, H: 12}
	r.View(reg, blankScreen(80, 12), area, 80)

	assert.True(t, r.Hover(tea.MouseMsg{X: 1, Y: 3}))
	assert.True(t, r.IsOpen("about"))
	assert.False(t, r.Hover(tea.MouseMsg{X: 1, Y: 4}), "still on the same panel")

	assert.True(t, r.Hover(tea.MouseMsg{X: 78, Y: 3}), "click panels do not hover-open")
	assert.Empty(t, r.Hovered())
	assert.False(t, r.IsOpen("about"))
}
