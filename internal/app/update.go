package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/dctransit/internal/arrivals"
	"github.com/llehouerou/dctransit/internal/errmsg"
	"github.com/llehouerou/dctransit/internal/gesture"
	"github.com/llehouerou/dctransit/internal/keymap"
	"github.com/llehouerou/dctransit/internal/panel"
	"github.com/llehouerou/dctransit/internal/ui/options"
	"github.com/llehouerou/dctransit/internal/ui/panels"
)

// keyHandler handles a key when it applies and reports whether it did.
type keyHandler func(m *Model, msg tea.KeyMsg) (bool, tea.Cmd)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.relayout()
	case tea.KeyMsg:
		cmd = m.handleKey(msg)
	case tea.MouseMsg:
		cmd = m.handleMouse(msg)
	case arrivals.UpdatedMsg:
		m.setSnapshot(m.arrivals.Snapshot())
		m.relayout()
		cmd = m.waitForArrivals()
	case panels.SettledMsg:
		m.renderer.Settled(msg)
	case clockTickMsg:
		cmd = clockTick()
	}
	return m, tea.Batch(cmd, m.renderer.Pending())
}

func (m *Model) setSnapshot(s arrivals.Snapshot) {
	m.board.SetSnapshot(s)
	m.position.SetSnapshot(s)
}

func (m *Model) relayout() {
	if err := m.engine.Relayout(); err != nil {
		m.ErrorMsg = errmsg.Format(errmsg.OpPanelLayout, err)
	}
}

// report records err for the footer, or clears the footer on success.
func (m *Model) report(op errmsg.Op, id string, err error) {
	if err != nil {
		m.ErrorMsg = errmsg.FormatWith(op, id, err)
		return
	}
	m.ErrorMsg = ""
}

// --- Keys ---

var keyHandlers = []keyHandler{
	(*Model).handleOptionsKey,
	(*Model).handleLogKey,
	(*Model).handleGlobalKey,
	(*Model).handlePanelKey,
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	for _, h := range keyHandlers {
		if ok, cmd := h(m, msg); ok {
			return cmd
		}
	}
	return nil
}

func (m *Model) handleOptionsKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if m.renderer.Focused() != PanelOptions || !m.renderer.IsOpen(PanelOptions) {
		return false, nil
	}
	switch m.options.HandleKey(msg) {
	case options.Handled:
		return true, nil
	case options.Submitted, options.Cancelled:
		m.report(errmsg.OpPanelClose, PanelOptions, m.engine.Close(PanelOptions))
		m.relayout()
		return true, nil
	default:
		return false, nil
	}
}

func (m *Model) handleLogKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if m.console == nil || m.renderer.Focused() != PanelLog || !m.renderer.IsOpen(PanelLog) {
		return false, nil
	}
	return m.console.HandleKey(msg), nil
}

func (m *Model) handleGlobalKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch m.keys.Resolve(msg.String()) {
	case keymap.ActionQuit:
		m.engine.Flush()
		return true, tea.Quit
	case keymap.ActionRefresh:
		if m.poller != nil {
			m.poller.Refresh()
		}
		return true, nil
	case keymap.ActionOptions:
		m.options.Reload()
		m.togglePanel(PanelOptions)
		return true, nil
	case keymap.ActionLog:
		m.togglePanel(PanelLog)
		return true, nil
	case keymap.ActionHelp:
		m.togglePanel(PanelAbout)
		return true, nil
	}
	return false, nil
}

// togglePanel flips id and focuses it when it ends up open.
func (m *Model) togglePanel(id string) {
	err := m.engine.Toggle(id)
	m.report(errmsg.OpPanelOpen, id, err)
	if err == nil {
		if e, _ := m.engine.Lookup(id); e != nil && e.IsOpen {
			m.renderer.SetFocus(id)
		}
	}
}

func (m *Model) handlePanelKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	action := m.keys.Resolve(msg.String())
	focused := m.renderer.Focused()
	switch action {
	case keymap.ActionNextPanel:
		m.cycleFocus(1)
	case keymap.ActionPrevPanel:
		m.cycleFocus(-1)
	case keymap.ActionTogglePanel:
		m.report(errmsg.OpPanelOpen, focused, m.engine.Toggle(focused))
	case keymap.ActionClosePanel:
		m.report(errmsg.OpPanelClose, focused, m.engine.Close(focused))
	case keymap.ActionRaisePanel:
		m.engine.ResetStacking()
		m.report(errmsg.OpPanelOpen, focused, m.engine.BringForward(focused))
	case keymap.ActionSwipeLeft:
		m.router.Route(gesture.KeySwipe(focused, gesture.Left, msg))
	case keymap.ActionSwipeRight:
		m.router.Route(gesture.KeySwipe(focused, gesture.Right, msg))
	case keymap.ActionSwipeUp:
		m.router.Route(gesture.KeySwipe(focused, gesture.Up, msg))
	case keymap.ActionSwipeDown:
		m.router.Route(gesture.KeySwipe(focused, gesture.Down, msg))
	default:
		return false, nil
	}
	return true, nil
}

// --- Focus ---

// focusable returns the ids of panels that can take keyboard focus, in
// registry order.
func (m *Model) focusable() []string {
	var ids []string
	for _, e := range m.engine.Registry().All() {
		if !e.IsDisabled && e.Location.Valid() && m.renderer.Visible(e.ID) {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

func (m *Model) focusFirst() {
	if ids := m.focusable(); len(ids) > 0 {
		m.renderer.SetFocus(ids[0])
	}
}

func (m *Model) cycleFocus(step int) {
	ids := m.focusable()
	if len(ids) == 0 {
		return
	}
	cur := -1
	for i, id := range ids {
		if id == m.renderer.Focused() {
			cur = i
		}
	}
	next := (cur + step + len(ids)) % len(ids)
	if cur < 0 && step < 0 {
		next = len(ids) - 1
	}
	m.renderer.SetFocus(ids[next])
}

// --- Mouse ---

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action == tea.MouseActionMotion {
		// hover panels stay put while a drag is in progress
		if !m.recognizer.Pending() {
			m.renderer.Hover(msg)
		}
		return nil
	}

	if msg.Action == tea.MouseActionRelease && m.renderer.IsOpen(PanelOptions) {
		switch m.options.HandleClick(msg) {
		case options.Handled:
			return nil
		case options.Submitted:
			m.report(errmsg.OpPanelClose, PanelOptions, m.engine.Close(PanelOptions))
			m.relayout()
			return nil
		}
	}

	ev, ok := m.recognizer.Feed(msg)
	if !ok {
		return nil
	}
	m.renderer.SetFocus(ev.Target)
	if ev.Type == gesture.Tap {
		if id, onTab := m.renderer.TabAt(msg); onTab && id == ev.Target {
			if e, err := m.engine.Lookup(id); err == nil && e.OpenMethod == panel.OpenClick {
				m.report(errmsg.OpPanelOpen, id, m.engine.Toggle(id))
				return nil
			}
		}
	}
	m.router.Route(ev)
	return nil
}
