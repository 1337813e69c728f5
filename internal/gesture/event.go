// Package gesture turns classified pointer gestures into panel transitions
// and classifies terminal mouse input into those gestures.
package gesture

import "github.com/llehouerou/dctransit/internal/panel"

// Type is the kind of gesture.
type Type string

const (
	Tap   Type = "tap"
	Drag  Type = "drag"
	Swipe Type = "swipe"
)

// Direction is the direction of a drag or swipe. It uses the same names as
// panel edges so the two compare directly.
type Direction = panel.Edge

const (
	Up    Direction = panel.EdgeTop
	Down  Direction = panel.EdgeBottom
	Left  Direction = panel.EdgeLeft
	Right Direction = panel.EdgeRight
	None  Direction = panel.EdgeNone
)

// Event is a classified gesture aimed at a panel. Raw is the input that
// produced it and is only used for logging.
type Event struct {
	Type      Type
	Direction Direction
	Target    string
	Raw       any
}
