// internal/app/panelctl/transitions.go
package panelctl

import (
	"errors"
	"fmt"

	"github.com/llehouerou/dctransit/internal/panel"
)

// ErrCannotDisable is returned when disabling a protected panel.
var ErrCannotDisable = errors.New("panel cannot be disabled")

// entity resolves id, logging unknown panels.
func (m *Manager) entity(op, id string) (*panel.Entity, error) {
	e, err := m.reg.Lookup(id)
	if err != nil {
		m.log.Warn().Err(err).Str("op", op).Msg("ignoring transition")
		return nil, err
	}
	return e, nil
}

// Open marks the panel open and asks the renderer to slide it in.
func (m *Manager) Open(id string) error {
	return m.setOpen("open", id, true)
}

// Close marks the panel closed.
func (m *Manager) Close(id string) error {
	return m.setOpen("close", id, false)
}

// Toggle flips the panel between open and closed.
func (m *Manager) Toggle(id string) error {
	e, err := m.entity("toggle", id)
	if err != nil {
		return err
	}
	return m.setOpen("toggle", id, !e.IsOpen)
}

func (m *Manager) setOpen(op, id string, open bool) error {
	e, err := m.entity(op, id)
	if err != nil {
		return err
	}
	e.IsOpen = open

	kind := RemoveOpenClass
	if open {
		kind = AddOpenClass
	}
	m.renderer.Apply(Directive{Kind: kind, ID: id})
	m.log.Debug().Str("panel", id).Bool("open", open).Msg(op)
	m.persist()
	return nil
}

// Disable hides the panel. Protected panels are left alone and
// ErrCannotDisable is returned.
func (m *Manager) Disable(id string) error {
	e, err := m.entity("disable", id)
	if err != nil {
		return err
	}
	if !e.CanDisable {
		err := fmt.Errorf("disable %q: %w", id, ErrCannotDisable)
		m.log.Warn().Err(err).Msg("ignoring transition")
		return err
	}
	e.IsDisabled = true
	m.renderer.Apply(Directive{Kind: Hide, ID: id, Settle: SettleDelay})
	m.log.Debug().Str("panel", id).Msg("disable")
	m.persist()
	return nil
}

// Enable shows a disabled panel again.
func (m *Manager) Enable(id string) error {
	e, err := m.entity("enable", id)
	if err != nil {
		return err
	}
	e.IsDisabled = false
	m.renderer.Apply(Directive{Kind: Show, ID: id, Settle: SettleDelay})
	m.log.Debug().Str("panel", id).Msg("enable")
	m.persist()
	return nil
}

// BringForward raises the panel above the others until the next
// ResetStacking. The stored z index is not touched.
func (m *Manager) BringForward(id string) error {
	if _, err := m.entity("bring-forward", id); err != nil {
		return err
	}
	m.stacking[id] = ElevatedZ
	m.renderer.Apply(Directive{Kind: SetStacking, ID: id, Value: ElevatedZ})
	return nil
}

// ResetStacking puts every panel back at its stored z index.
func (m *Manager) ResetStacking() {
	for _, e := range m.reg.All() {
		m.stacking[e.ID] = e.ZIndex
		m.renderer.Apply(Directive{Kind: SetStacking, ID: e.ID, Value: e.ZIndex})
	}
}

// Rendered returns the stacking value the renderer currently shows for id.
func (m *Manager) Rendered(id string) (int, bool) {
	if z, ok := m.stacking[id]; ok {
		return z, true
	}
	e, err := m.reg.Lookup(id)
	if err != nil {
		return 0, false
	}
	return e.ZIndex, true
}

// ApplyPreferences pushes every panel's open state to the renderer.
func (m *Manager) ApplyPreferences() {
	for _, e := range m.reg.All() {
		kind := RemoveOpenClass
		if e.IsOpen {
			kind = AddOpenClass
		}
		m.renderer.Apply(Directive{Kind: kind, ID: e.ID})
	}
}

// DisplayAll shows enabled panels and hides disabled ones without a
// transition.
func (m *Manager) DisplayAll() {
	for _, e := range m.reg.All() {
		kind := Show
		if e.IsDisabled {
			kind = Hide
		}
		m.renderer.Apply(Directive{Kind: kind, ID: e.ID})
	}
}
