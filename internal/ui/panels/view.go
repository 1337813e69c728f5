package panels

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/llehouerou/dctransit/internal/app/panelctl"
	"github.com/llehouerou/dctransit/internal/panel"
	"github.com/llehouerou/dctransit/internal/ui/layout"
	"github.com/llehouerou/dctransit/internal/ui/overlay"
	"github.com/llehouerou/dctransit/internal/ui/styles"
)

// hit is the screen area a panel occupied in the last View.
type hit struct {
	id     string
	method panel.OpenMethod
	body   layout.Rect
	tab    layout.Rect
	z      int
}

func tabZone(id string) string { return "tab-" + id }

func sideEdge(e panel.Edge) bool {
	return e == panel.EdgeLeft || e == panel.EdgeRight
}

// View draws every visible panel over base. Panels are placed inside area
// and composed in ascending stacking order; the output is clipped to
// screenWidth.
func (r *Renderer) View(reg *panel.Registry, base string, area layout.Rect, screenWidth int) string {
	var (
		hits    []hit
		layers  []overlay.Layer
		offsets = make(map[panel.Edge]int)
	)

	for _, e := range reg.All() {
		v, ok := r.visuals[e.ID]
		if !ok || v.hidden || !e.Location.Valid() {
			continue
		}
		title := r.title(e.ID)
		h := r.place(e, area, title, offsets)
		h.z = v.z

		if body := r.drawBody(e.ID, title, h.body, v); body != "" {
			layers = append(layers, overlay.Layer{Content: body, X: h.body.X, Y: h.body.Y, Z: v.z})
		}
		layers = append(layers, overlay.Layer{
			Content: zone.Mark(tabZone(e.ID), r.drawTab(e.ID, title, e.Location, h.tab)),
			X:       h.tab.X,
			Y:       h.tab.Y,
			Z:       v.z,
		})
		hits = append(hits, h)
	}

	slices.SortStableFunc(hits, func(a, b hit) int { return a.z - b.z })
	r.hits = hits
	return overlay.Compose(base, screenWidth, layers...)
}

func (r *Renderer) title(id string) string {
	if t := r.titles[id]; t != "" {
		return t
	}
	return id
}

// place computes the body and tab rectangles of one container. offsets
// tracks how far along each edge the tabs already drawn reach.
func (r *Renderer) place(e *panel.Entity, area layout.Rect, title string, offsets map[panel.Edge]int) hit {
	ent := *e
	ent.IsOpen = r.IsOpen(e.ID)
	rule, hasRule := r.sheet.Rule(e.ID)
	c := layout.Placement(&ent, rule, hasRule, r.tabWidth, area)
	if ent.IsOpen && sideEdge(e.Location) && layout.IsNarrowMode(area.W) {
		c.X, c.W = area.X, area.W
	}

	tw := r.tabWidth
	tabLen := len([]rune(title)) + 2
	off, seen := offsets[e.Location]
	if !seen {
		off = 1
	}
	offsets[e.Location] = off + tabLen + 1

	h := hit{id: e.ID, method: e.OpenMethod}
	switch e.Location {
	case panel.EdgeRight:
		h.tab = layout.Rect{X: c.X, Y: c.Y + off, W: tw, H: tabLen}
		h.body = layout.Rect{X: c.X + tw, Y: c.Y, W: c.W - tw, H: c.H}
	case panel.EdgeTop:
		h.body = layout.Rect{X: c.X, Y: c.Y, W: c.W, H: c.H - tw}
		h.tab = layout.Rect{X: c.X + off, Y: c.Y + c.H - tw, W: tabLen, H: tw}
	case panel.EdgeBottom:
		h.tab = layout.Rect{X: c.X + off, Y: c.Y, W: tabLen, H: tw}
		h.body = layout.Rect{X: c.X, Y: c.Y + tw, W: c.W, H: c.H - tw}
	default:
		h.body = layout.Rect{X: c.X, Y: c.Y, W: c.W - tw, H: c.H}
		h.tab = layout.Rect{X: c.X + c.W - tw, Y: c.Y + off, W: tw, H: tabLen}
	}
	h.body = layout.Clip(h.body, area)
	h.tab = layout.Clip(h.tab, area)
	return h
}

func (r *Renderer) drawBody(id, title string, rect layout.Rect, v *visual) string {
	if rect.W <= styles.FrameWidth || rect.H <= styles.FrameHeight+1 {
		return ""
	}
	w := rect.W - styles.FrameWidth
	h := rect.H - styles.FrameHeight - 1

	text := styles.T().S().Title.Render(title)
	if c, ok := r.contents[id]; ok {
		text += "\n" + c.View(w, h)
	}

	st := styles.Frame(r.focused == id, v.z >= panelctl.ElevatedZ).
		Width(rect.W - 2).
		Height(rect.H - 2).
		MaxWidth(rect.W).
		MaxHeight(rect.H)
	if r.Settling(id) {
		st = st.Faint(true)
	}
	return st.Render(text)
}

func (r *Renderer) drawTab(id, title string, edge panel.Edge, rect layout.Rect) string {
	st := styles.T().S().Tab
	if r.focused == id || r.Hovered() == id {
		st = styles.T().S().TabFocus
	}
	label := title
	if sideEdge(edge) {
		runes := []rune(strings.ToUpper(title))
		letters := make([]string, 0, len(runes)+2)
		letters = append(letters, "")
		for _, ch := range runes {
			letters = append(letters, string(ch))
		}
		letters = append(letters, "")
		label = strings.Join(letters, "\n")
	}
	return st.
		Width(rect.W).
		Height(rect.H).
		Align(lipgloss.Center, lipgloss.Center).
		Render(label)
}

// PanelAt implements gesture.Locator: the top-most panel whose body or tab
// contains the pointer.
func (r *Renderer) PanelAt(msg tea.MouseMsg) (string, bool) {
	for i := len(r.hits) - 1; i >= 0; i-- {
		h := r.hits[i]
		if h.body.Contains(msg.X, msg.Y) || h.tab.Contains(msg.X, msg.Y) {
			return h.id, true
		}
	}
	return "", false
}

// TabAt returns the panel whose tab is under the pointer, unless a panel
// drawn above covers that cell.
func (r *Renderer) TabAt(msg tea.MouseMsg) (string, bool) {
	for i := len(r.hits) - 1; i >= 0; i-- {
		h := r.hits[i]
		if z := zone.Get(tabZone(h.id)); z != nil && z.InBounds(msg) {
			return h.id, true
		}
		if h.tab.Contains(msg.X, msg.Y) {
			return h.id, true
		}
		if h.body.Contains(msg.X, msg.Y) {
			return "", false
		}
	}
	return "", false
}

// Hover opens hover panels while the pointer rests on them. It reports
// whether the hovered panel changed.
func (r *Renderer) Hover(msg tea.MouseMsg) bool {
	next := ""
	if id, ok := r.PanelAt(msg); ok {
		for _, h := range r.hits {
			if h.id == id && h.method == panel.OpenHover {
				next = id
			}
		}
	}
	if next == r.hovered {
		return false
	}
	r.hovered = next
	return true
}

// Hovered returns the hover panel under the pointer, if any.
func (r *Renderer) Hovered() string {
	return r.hovered
}
