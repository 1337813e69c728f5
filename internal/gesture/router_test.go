package gesture

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/dctransit/internal/panel"
)

type fakeEngine struct {
	reg   *panel.Registry
	calls []string
}

func newFakeEngine() *fakeEngine {
	reg := panel.NewRegistry()
	left, _ := reg.Register("metro")
	left.SetLocation(panel.EdgeLeft)
	right, _ := reg.Register("options")
	right.SetLocation(panel.EdgeRight)
	_, _ = reg.Register("broken") // no location class
	return &fakeEngine{reg: reg}
}

func (f *fakeEngine) Lookup(id string) (*panel.Entity, error) { return f.reg.Lookup(id) }

func (f *fakeEngine) Open(id string) error {
	f.calls = append(f.calls, "open "+id)
	e, err := f.reg.Lookup(id)
	if err == nil {
		e.IsOpen = true
	}
	return err
}

func (f *fakeEngine) Close(id string) error {
	f.calls = append(f.calls, "close "+id)
	e, err := f.reg.Lookup(id)
	if err == nil {
		e.IsOpen = false
	}
	return err
}

func (f *fakeEngine) ResetStacking() { f.calls = append(f.calls, "reset") }

func (f *fakeEngine) BringForward(id string) error {
	f.calls = append(f.calls, "forward "+id)
	return nil
}

func newTestRouter(engine Engine) (*Router, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewRouter(engine, zerolog.New(&buf)), &buf
}

func TestRoute_SwipeDirections(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		typ       Type
		dir       Direction
		startOpen bool
		wantOpen  bool
		wantCalls []string
	}{
		{"swipe toward anchor closes", "metro", Swipe, Left, true, false, []string{"close metro"}},
		{"swipe away from anchor opens", "metro", Swipe, Right, false, true, []string{"open metro"}},
		{"drag behaves like swipe", "options", Drag, Left, false, true, []string{"open options"}},
		{"right panel closes rightward", "options", Swipe, Right, true, false, []string{"close options"}},
		{"vertical swipe is ignored", "metro", Swipe, Up, false, false, nil},
		{"vertical swipe keeps open panel", "metro", Swipe, Down, true, true, nil},
		{"no direction is ignored", "metro", Drag, None, true, true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newFakeEngine()
			e, _ := engine.Lookup(tt.target)
			e.IsOpen = tt.startOpen

			r, _ := newTestRouter(engine)
			r.Route(Event{Type: tt.typ, Direction: tt.dir, Target: tt.target})

			assert.Equal(t, tt.wantOpen, e.IsOpen)
			assert.Equal(t, tt.wantCalls, engine.calls)
		})
	}
}

func TestRoute_AmbiguousGestureWarns(t *testing.T) {
	engine := newFakeEngine()
	r, buf := newTestRouter(engine)

	r.Route(Event{Type: Swipe, Direction: Up, Target: "metro", Raw: "k"})

	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), "ambiguous gesture")
}

func TestRoute_PanelWithoutLocationNeverMatches(t *testing.T) {
	engine := newFakeEngine()
	r, buf := newTestRouter(engine)

	for _, dir := range []Direction{Left, Right, Up, Down, None} {
		r.Route(Event{Type: Swipe, Direction: dir, Target: "broken"})
	}
	assert.Empty(t, engine.calls)
	assert.Contains(t, buf.String(), "ambiguous gesture")
}

func TestRoute_StaleMarginWithoutLocationNeverOpens(t *testing.T) {
	engine := newFakeEngine()
	broken, _ := engine.reg.Lookup("broken")
	broken.Margin = panel.EdgeRight
	r, _ := newTestRouter(engine)

	r.Route(Event{Type: Swipe, Direction: Right, Target: "broken"})
	assert.Empty(t, engine.calls)
}

func TestRoute_Tap(t *testing.T) {
	engine := newFakeEngine()
	r, _ := newTestRouter(engine)

	r.Route(Event{Type: Tap, Target: "options"})

	assert.Equal(t, []string{"reset", "forward options"}, engine.calls)
}

func TestRoute_UnknownTarget(t *testing.T) {
	engine := newFakeEngine()
	r, buf := newTestRouter(engine)

	r.Route(Event{Type: Tap, Target: "ghost"})

	assert.Empty(t, engine.calls)
	assert.Contains(t, buf.String(), "gesture on unknown panel")
}

func TestRoute_UnknownType(t *testing.T) {
	engine := newFakeEngine()
	r, buf := newTestRouter(engine)

	r.Route(Event{Type: "hold", Target: "metro"})

	assert.Empty(t, engine.calls)
	assert.Contains(t, buf.String(), "unknown gesture type")
}
