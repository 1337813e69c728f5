package gesture

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	// TapSlop is how far the pointer may wander, in cells, for a press and
	// release to still count as a tap.
	TapSlop = 2
	// SwipeWindow is the longest movement still classified as a swipe.
	SwipeWindow = 300 * time.Millisecond
)

// Locator resolves the panel under a mouse position.
type Locator interface {
	PanelAt(msg tea.MouseMsg) (id string, ok bool)
}

// LocatorFunc adapts a function to Locator.
type LocatorFunc func(msg tea.MouseMsg) (string, bool)

func (f LocatorFunc) PanelAt(msg tea.MouseMsg) (string, bool) { return f(msg) }

// Recognizer classifies left-button press, motion and release sequences
// into taps, swipes and drags.
type Recognizer struct {
	locator Locator
	now     func() time.Time

	active bool
	target string
	startX int
	startY int
	start  time.Time
}

func NewRecognizer(locator Locator) *Recognizer {
	return &Recognizer{locator: locator, now: time.Now}
}

// Feed consumes one mouse message and returns a gesture when a sequence
// completes.
func (r *Recognizer) Feed(msg tea.MouseMsg) (Event, bool) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return Event{}, false
		}
		id, ok := r.locator.PanelAt(msg)
		if !ok {
			r.active = false
			return Event{}, false
		}
		r.active = true
		r.target = id
		r.startX, r.startY = msg.X, msg.Y
		r.start = r.now()
		return Event{}, false

	case tea.MouseActionRelease:
		if !r.active {
			return Event{}, false
		}
		r.active = false
		return r.classify(msg), true
	}
	return Event{}, false
}

// Pending reports whether a press is waiting for its release, which is
// while a drag or swipe may be in progress.
func (r *Recognizer) Pending() bool {
	return r.active
}

func (r *Recognizer) classify(msg tea.MouseMsg) Event {
	dx, dy := msg.X-r.startX, msg.Y-r.startY
	ev := Event{Target: r.target, Raw: msg}

	if abs(dx) <= TapSlop && abs(dy) <= TapSlop/2 {
		ev.Type = Tap
		return ev
	}

	ev.Type = Drag
	if r.now().Sub(r.start) < SwipeWindow {
		ev.Type = Swipe
	}

	// Cells are about twice as tall as wide.
	if abs(dx) >= 2*abs(dy) {
		ev.Direction = Right
		if dx < 0 {
			ev.Direction = Left
		}
	} else {
		ev.Direction = Down
		if dy < 0 {
			ev.Direction = Up
		}
	}
	return ev
}

// KeySwipe builds the gesture for a directional key pressed while target
// has focus.
func KeySwipe(target string, dir Direction, raw tea.KeyMsg) Event {
	return Event{Type: Swipe, Direction: dir, Target: target, Raw: raw.String()}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
