package layout

import (
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/llehouerou/dctransit/internal/config"
	"github.com/llehouerou/dctransit/internal/panel"
)

var (
	ErrMissingLocationClass = errors.New("panel has no location class")
	ErrMissingOpenMethod    = errors.New("panel has no open method class")
	ErrNotContainer         = errors.New("entry is not a panel container")
)

var locationClasses = []panel.Edge{panel.EdgeLeft, panel.EdgeRight, panel.EdgeTop, panel.EdgeBottom}

// Box is a measured content size in cells.
type Box struct {
	Width, Height int
}

// ContentSource reports the measured content of a panel: the content box
// itself and its direct children, top to bottom.
type ContentSource interface {
	Contents(id string) (content Box, children []Box, ok bool)
}

// Resolver discovers panels and derives their geometry.
type Resolver struct {
	settings     config.PanelSettings
	includeDebug bool
	log          zerolog.Logger
}

func NewResolver(settings config.PanelSettings, includeDebug bool, log zerolog.Logger) *Resolver {
	return &Resolver{
		settings:     settings,
		includeDebug: includeDebug,
		log:          log.With().Str("component", "layout").Logger(),
	}
}

// Discover registers every container of m that is not registered yet and
// returns the ids it added. Problems with individual containers are logged
// and returned; they never stop discovery of the others.
func (r *Resolver) Discover(m Markup, reg *panel.Registry) ([]string, []error) {
	var (
		added []string
		errs  []error
		seen  = make(map[string]bool, len(m.Panels))
	)
	for _, c := range m.Panels {
		if c.ID == "" || !c.HasClass(classContainer) {
			err := fmt.Errorf("discover %q: %w", c.ID, ErrNotContainer)
			r.log.Warn().Err(err).Msg("skipping layout entry")
			errs = append(errs, err)
			continue
		}
		if c.HasClass(classDebug) && !r.includeDebug {
			continue
		}
		if reg.Has(c.ID) && !seen[c.ID] {
			continue
		}
		seen[c.ID] = true

		e, err := reg.Register(c.ID)
		if err != nil {
			r.log.Warn().Err(err).Msg("panel not registered")
			errs = append(errs, err)
			continue
		}
		for _, err := range r.describe(c, e) {
			r.log.Warn().Err(err).Str("panel", c.ID).Msg("incomplete panel markup")
			errs = append(errs, err)
		}
		r.log.Debug().
			Str("panel", e.ID).
			Str("location", string(e.Location)).
			Str("open", string(e.OpenMethod)).
			Int("z", e.ZIndex).
			Msg("panel discovered")
		added = append(added, c.ID)
	}
	return added, errs
}

func (r *Resolver) describe(c Container, e *panel.Entity) []error {
	var errs []error

	var found []panel.Edge
	for _, edge := range locationClasses {
		if c.HasClass(string(edge)) {
			found = append(found, edge)
		}
	}
	if len(found) == 1 {
		e.SetLocation(found[0])
	} else {
		errs = append(errs, fmt.Errorf("panel %q has %d location classes: %w", c.ID, len(found), ErrMissingLocationClass))
	}

	switch {
	case slices.Contains(c.TabClasses(), classOpenClick):
		e.OpenMethod = panel.OpenClick
	case c.HasClass(classOpenHover):
		e.OpenMethod = panel.OpenHover
	default:
		errs = append(errs, fmt.Errorf("panel %q: %w", c.ID, ErrMissingOpenMethod))
	}

	if c.ZIndex != nil {
		e.ZIndex = *c.ZIndex
	}
	e.CanDisable = !c.HasClass(classNoDisable)
	return errs
}

// Accepts reports whether m holds a container id that discovery would
// register.
func (r *Resolver) Accepts(m Markup, id string) bool {
	c, ok := m.Container(id)
	if !ok || !c.HasClass(classContainer) {
		return false
	}
	return r.includeDebug || !c.HasClass(classDebug)
}

// Measure sizes panel id from its content. Width is the widest of the
// content box and its children; height is the last child's height when it
// exceeds the content box, otherwise the content box height. Content laid
// out side by side is not supported.
func (r *Resolver) Measure(id string, src ContentSource, reg *panel.Registry) error {
	e, err := reg.Lookup(id)
	if err != nil {
		return err
	}
	content, children, ok := src.Contents(id)
	if !ok {
		r.log.Debug().Str("panel", id).Msg("no content to measure")
		return nil
	}

	width := content.Width
	for _, c := range children {
		width = max(width, c.Width)
	}
	height := content.Height
	if n := len(children); n > 0 && children[n-1].Height > height {
		height = children[n-1].Height
	}

	e.Width, e.Height = width, height
	return nil
}

// MeasureAll measures every registered panel.
func (r *Resolver) MeasureAll(src ContentSource, reg *panel.Registry) {
	for _, e := range reg.All() {
		if err := r.Measure(e.ID, src, reg); err != nil {
			r.log.Warn().Err(err).Msg("measure failed")
		}
	}
}

// ApplyGeometry derives the style rules for every click-opened panel.
// Side panels are sized by width, top and bottom panels by height.
func (r *Resolver) ApplyGeometry(reg *panel.Registry) Stylesheet {
	var sheet Stylesheet
	pad := r.settings.PaddingStrong + r.settings.PaddingWeak
	for _, e := range reg.All() {
		if e.OpenMethod != panel.OpenClick {
			continue
		}
		size := e.Width
		if e.Location == panel.EdgeTop || e.Location == panel.EdgeBottom {
			size = e.Height
		}
		sheet.Rules = append(sheet.Rules, Rule{
			ID:        e.ID,
			Location:  e.Location,
			Margin:    e.Margin,
			Container: size + pad + r.settings.TabWidth,
			TabOffset: pad + size,
			Inner:     size,
			Slide:     -(pad + size),
		})
	}
	return sheet
}
