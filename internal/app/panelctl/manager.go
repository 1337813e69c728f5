// internal/app/panelctl/manager.go
package panelctl

import (
	"errors"
	"fmt"
	"maps"

	"github.com/rs/zerolog"

	"github.com/llehouerou/dctransit/internal/panel"
	"github.com/llehouerou/dctransit/internal/state"
	"github.com/llehouerou/dctransit/internal/ui/layout"
)

// Deps are the collaborators of a Manager.
type Deps struct {
	Store    state.Interface // nil disables persistence
	Resolver *layout.Resolver
	Markup   layout.Markup
	Content  layout.ContentSource
	Renderer Renderer
	Logger   zerolog.Logger

	// AllowDisable enables the options form.
	AllowDisable bool
}

// Manager owns the panel registry and applies every state transition.
// It runs on the UI goroutine only.
type Manager struct {
	reg          *panel.Registry
	store        state.Interface
	resolver     *layout.Resolver
	markup       layout.Markup
	content      layout.ContentSource
	renderer     Renderer
	log          zerolog.Logger
	allowDisable bool

	sheet    layout.Stylesheet
	stacking map[string]int
}

// New creates a Manager. Call Start before use.
func New(d Deps) *Manager {
	r := d.Renderer
	if r == nil {
		r = RendererFunc(func(Directive) {})
	}
	return &Manager{
		reg:          panel.NewRegistry(),
		store:        d.Store,
		resolver:     d.Resolver,
		markup:       d.Markup,
		content:      d.Content,
		renderer:     r,
		log:          d.Logger.With().Str("component", "panels").Logger(),
		allowDisable: d.AllowDisable,
		stacking:     make(map[string]int),
	}
}

// --- Lifecycle ---

// Start restores the stored layout or discovers panels from the markup,
// then pushes the full presentation to the renderer.
func (m *Manager) Start() error {
	return m.Supervise("start", func() error {
		m.restore()
		// after a restore this only adds containers that are new in the markup
		m.discover()
		m.present()
		m.flush()
		return nil
	})
}

// restore loads the stored layout into the registry. On any failure the
// registry is left empty.
func (m *Manager) restore() {
	if m.store == nil {
		return
	}

	s, err := m.store.Load()
	var corrupt *state.CorruptDataError
	switch {
	case err == nil:
	case errors.Is(err, state.ErrNotFound):
		m.log.Info().Msg("no stored panel layout, discovering")
		return
	case errors.As(err, &corrupt):
		m.log.Warn().Err(err).Msg("discarding stored panel layout")
		if err := m.store.Remove(); err != nil {
			m.log.Warn().Err(err).Msg("could not remove stored panel layout")
		}
		return
	default:
		m.log.Warn().Err(err).Msg("panel storage unavailable, continuing without persistence")
		m.store = nil
		return
	}

	if err := state.Restore(m.known(s), m.reg); err != nil {
		m.log.Warn().Err(err).Msg("restore failed, discovering")
		m.reg.Clear()
		return
	}
	m.log.Info().Int("panels", m.reg.Len()).Msg("panel layout restored")
}

// known drops stored panels the current markup no longer shows.
func (m *Manager) known(s state.Serialized) state.Serialized {
	var out state.Serialized
	for i, id := range s.IDs {
		if !m.resolver.Accepts(m.markup, id) {
			m.log.Debug().Str("panel", id).Msg("stored panel not in layout, dropped")
			continue
		}
		out.IDs = append(out.IDs, id)
		out.Panels = append(out.Panels, s.Panels[i])
	}
	return out
}

func (m *Manager) discover() {
	added, errs := m.resolver.Discover(m.markup, m.reg)
	if len(added) > 0 {
		m.log.Info().Strs("panels", added).Int("problems", len(errs)).Msg("panels discovered")
	}
}

// present measures every panel and pushes style, open state, visibility
// and stacking to the renderer.
func (m *Manager) present() {
	m.relayout()
	m.ApplyPreferences()
	m.DisplayAll()
	m.ResetStacking()
}

func (m *Manager) relayout() {
	if m.content != nil {
		m.resolver.MeasureAll(m.content, m.reg)
	}
	m.sheet = m.resolver.ApplyGeometry(m.reg)
	m.renderer.Apply(Directive{Kind: ApplyStyle, Style: m.sheet})
}

// Relayout re-measures panels after their content or the terminal size
// changed. The layout is saved only when a measured size changed.
func (m *Manager) Relayout() error {
	return m.Supervise("relayout", func() error {
		before := m.sizes()
		m.relayout()
		if !maps.Equal(before, m.sizes()) {
			m.persist()
		}
		return nil
	})
}

func (m *Manager) sizes() map[string]layout.Box {
	out := make(map[string]layout.Box, m.reg.Len())
	for _, e := range m.reg.All() {
		out[e.ID] = layout.Box{Width: e.Width, Height: e.Height}
	}
	return out
}

// Flush writes the current layout synchronously. Called when the program
// quits.
func (m *Manager) Flush() {
	m.flush()
}

func (m *Manager) flush() {
	if m.store == nil {
		return
	}
	if err := m.store.Save(state.Snapshot(m.reg)); err != nil {
		m.log.Warn().Err(err).Msg("panel layout not saved")
	}
}

// persist schedules a save after a state change.
func (m *Manager) persist() {
	if m.store == nil {
		return
	}
	m.store.SaveDebounced(state.Snapshot(m.reg))
}

// --- Recovery ---

// Supervise runs fn and turns a returned error or a panic into a full
// reset: the registry and the stored layout are wiped and panels are
// discovered again from the markup.
func (m *Manager) Supervise(op string, fn func() error) error {
	err := guard(fn)
	if err == nil {
		return nil
	}
	m.log.Error().Err(err).Str("op", op).Msg("panel fault, resetting layout")
	if rerr := guard(m.reset); rerr != nil {
		m.log.Error().Err(rerr).Msg("panel reset failed")
	}
	return err
}

func (m *Manager) reset() error {
	m.reg.Clear()
	m.stacking = make(map[string]int)
	if m.store != nil {
		if err := m.store.Remove(); err != nil {
			m.log.Warn().Err(err).Msg("could not remove stored panel layout")
		}
	}
	m.discover()
	m.present()
	m.flush()
	return nil
}

func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}

// --- Accessors ---

// Lookup returns the panel with id.
func (m *Manager) Lookup(id string) (*panel.Entity, error) {
	return m.reg.Lookup(id)
}

// Registry exposes the registry for read-only traversal by renderers.
func (m *Manager) Registry() *panel.Registry {
	return m.reg
}

// Stylesheet returns the last applied geometry.
func (m *Manager) Stylesheet() layout.Stylesheet {
	return m.sheet
}

// Persistent reports whether panel state is being saved.
func (m *Manager) Persistent() bool {
	return m.store != nil
}

// Title returns the display title of a panel from the markup.
func (m *Manager) Title(id string) string {
	if c, ok := m.markup.Container(id); ok && c.Title != "" {
		return c.Title
	}
	return id
}
