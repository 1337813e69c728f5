package panels

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/llehouerou/dctransit/internal/app/panelctl"
	"github.com/llehouerou/dctransit/internal/ui/layout"
)

// SettledMsg ends a show or hide transition.
type SettledMsg struct {
	ID  string
	Gen int
}

// visual is what the terminal currently shows for one panel.
type visual struct {
	hidden   bool
	settling bool
	hiding   bool // settling towards hidden
	open     bool
	z        int
	gen      int
}

// Renderer keeps per-panel visual state built from directives.
type Renderer struct {
	log      zerolog.Logger
	tabWidth int

	contents map[string]Content
	titles   map[string]string
	visuals  map[string]*visual
	sheet    layout.Stylesheet
	cmds     []tea.Cmd

	focused string
	hovered string

	// hit areas from the last View, bottom-most first
	hits []hit
}

// New creates a Renderer whose tabs are tabWidth cells deep.
func New(tabWidth int, log zerolog.Logger) *Renderer {
	return &Renderer{
		log:      log.With().Str("component", "renderer").Logger(),
		tabWidth: max(tabWidth, 1),
		contents: make(map[string]Content),
		titles:   make(map[string]string),
		visuals:  make(map[string]*visual),
	}
}

// Register sets the tab title and the content drawn inside panel id.
func (r *Renderer) Register(id, title string, c Content) {
	r.titles[id] = title
	r.contents[id] = c
}

// Contents implements layout.ContentSource.
func (r *Renderer) Contents(id string) (layout.Box, []layout.Box, bool) {
	c, ok := r.contents[id]
	if !ok {
		return layout.Box{}, nil, false
	}
	box, children := measure(c)
	return box, children, true
}

func (r *Renderer) visual(id string) *visual {
	v, ok := r.visuals[id]
	if !ok {
		v = &visual{}
		r.visuals[id] = v
	}
	return v
}

// Apply implements panelctl.Renderer.
func (r *Renderer) Apply(d panelctl.Directive) {
	switch d.Kind {
	case panelctl.ApplyStyle:
		r.sheet = d.Style
		r.log.Debug().Str("stylesheet", d.Style.String()).Msg("style applied")
	case panelctl.Show:
		v := r.visual(d.ID)
		v.hidden, v.hiding = false, false
		r.settle(d.ID, v, d.Settle)
	case panelctl.Hide:
		v := r.visual(d.ID)
		if d.Settle > 0 && !v.hidden {
			v.hiding = true
			r.settle(d.ID, v, d.Settle)
			return
		}
		v.hidden, v.hiding, v.settling = true, false, false
	case panelctl.AddOpenClass:
		r.visual(d.ID).open = true
	case panelctl.RemoveOpenClass:
		r.visual(d.ID).open = false
	case panelctl.SetStacking:
		r.visual(d.ID).z = d.Value
	default:
		r.log.Warn().Stringer("kind", d.Kind).Msg("unknown directive")
	}
}

// settle starts a transition that a SettledMsg completes after delay.
func (r *Renderer) settle(id string, v *visual, delay time.Duration) {
	v.gen++
	if delay <= 0 {
		v.settling = false
		return
	}
	v.settling = true
	gen := v.gen
	r.cmds = append(r.cmds, tea.Tick(delay, func(time.Time) tea.Msg {
		return SettledMsg{ID: id, Gen: gen}
	}))
}

// Pending returns the commands queued by directives since the last call.
func (r *Renderer) Pending() tea.Cmd {
	if len(r.cmds) == 0 {
		return nil
	}
	cmds := r.cmds
	r.cmds = nil
	if len(cmds) == 1 {
		return cmds[0]
	}
	return tea.Batch(cmds...)
}

// Settled finishes a transition. Stale messages from superseded
// transitions are ignored.
func (r *Renderer) Settled(msg SettledMsg) {
	v, ok := r.visuals[msg.ID]
	if !ok || v.gen != msg.Gen {
		return
	}
	v.settling = false
	if v.hiding {
		v.hidden, v.hiding = true, false
	}
}

// Visible reports whether panel id is drawn at all.
func (r *Renderer) Visible(id string) bool {
	v, ok := r.visuals[id]
	return ok && !v.hidden
}

// Settling reports whether panel id is mid-transition.
func (r *Renderer) Settling(id string) bool {
	v, ok := r.visuals[id]
	return ok && v.settling
}

// IsOpen reports whether panel id is drawn open, hover included.
func (r *Renderer) IsOpen(id string) bool {
	v, ok := r.visuals[id]
	return (ok && v.open) || r.hovered == id
}

// Stacking returns the stacking value of panel id.
func (r *Renderer) Stacking(id string) int {
	if v, ok := r.visuals[id]; ok {
		return v.z
	}
	return 0
}

// SetFocus highlights the tab of id.
func (r *Renderer) SetFocus(id string) {
	r.focused = id
}

// Focused returns the id of the highlighted tab.
func (r *Renderer) Focused() string {
	return r.focused
}
