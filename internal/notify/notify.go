// Package notify sends desktop notifications over the freedesktop D-Bus
// interface.
package notify

// Urgency is the freedesktop notification urgency level.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

const appName = "dctransit"

// Notification is one desktop notification.
type Notification struct {
	Title      string
	Body       string
	Icon       string // file path or icon name
	Timeout    int32  // ms, -1 = server default, 0 = never expire
	ReplacesID uint32 // 0 = new notification
	Urgency    Urgency
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify returns the notification id, or 0 when notifications are
	// unavailable.
	Notify(n Notification) (uint32, error)
	Close(id uint32) error
}

// Discard drops every notification.
var Discard Notifier = stubNotifier{}

type stubNotifier struct{}

func (stubNotifier) Notify(Notification) (uint32, error) { return 0, nil }

func (stubNotifier) Close(uint32) error { return nil }

// Open returns a D-Bus notifier when enabled is true and a session bus is
// reachable, Discard otherwise.
func Open(enabled bool) Notifier {
	if !enabled {
		return Discard
	}
	n, err := New()
	if err != nil {
		return Discard
	}
	return n
}
