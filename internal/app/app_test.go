package app

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/dctransit/internal/arrivals"
	"github.com/llehouerou/dctransit/internal/config"
	"github.com/llehouerou/dctransit/internal/logging"
	"github.com/llehouerou/dctransit/internal/state"
	"github.com/llehouerou/dctransit/internal/transit"
	"github.com/llehouerou/dctransit/internal/ui/layout"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

type testApp struct {
	m     Model
	store *state.Mock
	arr   *arrivals.Store
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	markup, err := layout.LoadMarkup("")
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.UI.DebugPanel = true
	sink := logging.NewMemory(50, false)
	store := state.NewMock()
	arr := &arrivals.Store{}

	m, err := New(Deps{
		Config:   cfg,
		Store:    store,
		Markup:   markup,
		Logs:     sink.Ring,
		Arrivals: arr,
		Logger:   sink.Logger,
	})
	require.NoError(t, err)
	ta := &testApp{m: m, store: store, arr: arr}
	ta.send(tea.WindowSizeMsg{Width: 120, Height: 30})
	return ta
}

func (a *testApp) send(msg tea.Msg) tea.Cmd {
	next, cmd := a.m.Update(msg)
	a.m = next.(Model)
	return cmd
}

func (a *testApp) key(s string) tea.Cmd {
	switch s {
	case "tab":
		return a.send(tea.KeyMsg{Type: tea.KeyTab})
	case "enter":
		return a.send(tea.KeyMsg{Type: tea.KeyEnter})
	case "esc":
		return a.send(tea.KeyMsg{Type: tea.KeyEsc})
	}
	return a.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func (a *testApp) open(t *testing.T, id string) bool {
	t.Helper()
	e, err := a.m.engine.Lookup(id)
	require.NoError(t, err)
	return e.IsOpen
}

// collect runs cmd and flattens batches into their messages. Commands that
// block, such as settle ticks, are skipped.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(50 * time.Millisecond):
		return nil
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestNew_RegistersAndFocusesFirstPanel(t *testing.T) {
	a := newTestApp(t)

	assert.Equal(t, []string{PanelMetro, PanelPosition, PanelOptions, PanelAbout, PanelLog},
		a.m.engine.Registry().IDs())
	assert.Equal(t, PanelMetro, a.m.renderer.Focused())
}

func TestView_FillsScreen(t *testing.T) {
	a := newTestApp(t)

	out := a.m.View()
	assert.Len(t, strings.Split(out, "\n"), 30)
	assert.Contains(t, out, "enter: open/close")
}

func TestView_EmptyBeforeWindowSize(t *testing.T) {
	a := newTestApp(t)
	a.m.Width, a.m.Height = 0, 0
	assert.Empty(t, a.m.View())
}

func TestKeys_ToggleFocusedPanel(t *testing.T) {
	a := newTestApp(t)

	a.key("enter")
	assert.True(t, a.open(t, PanelMetro))
	a.key("esc")
	assert.False(t, a.open(t, PanelMetro))
}

func TestKeys_CycleFocus(t *testing.T) {
	a := newTestApp(t)

	a.key("tab")
	assert.Equal(t, PanelPosition, a.m.renderer.Focused())
	a.send(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, PanelMetro, a.m.renderer.Focused())
	a.send(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, PanelLog, a.m.renderer.Focused(), "wraps around")
}

func TestKeys_OptionsFormDisablesPanel(t *testing.T) {
	a := newTestApp(t)

	a.key("o")
	require.True(t, a.open(t, PanelOptions))
	assert.Equal(t, PanelOptions, a.m.renderer.Focused())

	// first row is the metro board
	a.key("x")
	a.key("enter")

	e, err := a.m.engine.Lookup(PanelMetro)
	require.NoError(t, err)
	assert.True(t, e.IsDisabled)
	assert.False(t, a.open(t, PanelOptions), "submitting closes the form")
}

func TestKeys_HelpTogglesAbout(t *testing.T) {
	a := newTestApp(t)

	a.key("?")
	assert.True(t, a.open(t, PanelAbout))
	assert.Equal(t, PanelAbout, a.m.renderer.Focused())
	a.key("?")
	assert.False(t, a.open(t, PanelAbout))
}

func TestKeys_RaiseFocusedPanel(t *testing.T) {
	a := newTestApp(t)

	a.key("tab")
	a.key("f")
	assert.Equal(t, 50, a.m.renderer.Stacking(PanelPosition))
}

func TestKeys_SwipeOpensAndCloses(t *testing.T) {
	a := newTestApp(t)

	// metro is anchored left: swiping right pulls it out
	a.key("L")
	assert.True(t, a.open(t, PanelMetro))
	a.key("H")
	assert.False(t, a.open(t, PanelMetro))
}

func TestKeys_QuitFlushes(t *testing.T) {
	a := newTestApp(t)
	before := a.store.Saves()

	cmd := a.key("q")
	require.NotNil(t, cmd)
	assert.Greater(t, a.store.Saves(), before)
	assert.Contains(t, collect(cmd), tea.Msg(tea.QuitMsg{}))
}

func TestArrivalsUpdate_RefreshesBoard(t *testing.T) {
	a := newTestApp(t)
	a.key("enter")

	a.arr.Update(&arrivals.Result{
		StationCode: "A01",
		StationName: "Metro Center",
		Trains: []transit.Train{
			{Car: "8", DestinationName: "Glenmont", Line: "RD", Min: "BRD"},
		},
		FetchedAt: time.Now(),
	}, nil)
	a.send(arrivals.UpdatedMsg{})

	out := a.m.View()
	assert.Contains(t, out, "Metro Center")
	assert.Contains(t, out, "Glenmont")
}

func TestArrivalsUpdate_ErrorInHeader(t *testing.T) {
	a := newTestApp(t)

	a.arr.Update(nil, errors.New("no fix"))
	a.send(arrivals.UpdatedMsg{})

	assert.Contains(t, a.m.View(), "no fix")
}

func TestUnknownPanelErrorShownInFooter(t *testing.T) {
	a := newTestApp(t)
	a.m.renderer.SetFocus("ghost")

	a.key("enter")
	assert.Contains(t, a.m.ErrorMsg, "ghost")
	assert.Contains(t, a.m.View(), "ghost")
}
