package gesture

import (
	"github.com/rs/zerolog"

	"github.com/llehouerou/dctransit/internal/panel"
)

// Engine is the part of the panel manager the router drives.
type Engine interface {
	Lookup(id string) (*panel.Entity, error)
	Open(id string) error
	Close(id string) error
	ResetStacking()
	BringForward(id string) error
}

// Router maps gestures onto panel transitions using each panel's edges.
type Router struct {
	engine Engine
	log    zerolog.Logger
}

func NewRouter(engine Engine, log zerolog.Logger) *Router {
	return &Router{engine: engine, log: log.With().Str("component", "gesture").Logger()}
}

// Route applies ev. Swiping toward a panel's anchor edge closes it, toward
// the opposite edge opens it; a tap brings the panel to the front. Events
// that match nothing are logged and dropped.
func (r *Router) Route(ev Event) {
	e, err := r.engine.Lookup(ev.Target)
	if err != nil {
		r.log.Warn().Err(err).Str("type", string(ev.Type)).Msg("gesture on unknown panel")
		return
	}

	switch ev.Type {
	case Drag, Swipe:
		switch {
		case e.Location.Valid() && ev.Direction == e.Location:
			_ = r.engine.Close(e.ID)
		case e.Location.Valid() && ev.Direction == e.Margin:
			_ = r.engine.Open(e.ID)
		default:
			r.log.Warn().
				Str("panel", e.ID).
				Str("type", string(ev.Type)).
				Str("direction", string(ev.Direction)).
				Str("location", string(e.Location)).
				Interface("raw", ev.Raw).
				Msg("ambiguous gesture")
		}
	case Tap:
		r.engine.ResetStacking()
		_ = r.engine.BringForward(e.ID)
	default:
		r.log.Warn().Str("type", string(ev.Type)).Str("panel", e.ID).Msg("unknown gesture type")
	}
}
