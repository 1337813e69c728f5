package arrivals

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/llehouerou/dctransit/internal/notify"
	"github.com/llehouerou/dctransit/internal/transit"
)

// Announcer raises a desktop notification when a train starts boarding.
// Each train is announced once while it stays at the platform.
type Announcer struct {
	notifier notify.Notifier
	log      zerolog.Logger
	boarding map[string]bool
}

// NewAnnouncer creates an Announcer sending through n.
func NewAnnouncer(n notify.Notifier, log zerolog.Logger) *Announcer {
	return &Announcer{
		notifier: n,
		log:      log.With().Str("component", "announcer").Logger(),
		boarding: make(map[string]bool),
	}
}

// Observe implements Observer.
func (a *Announcer) Observe(res Result) {
	now := make(map[string]bool)
	for _, t := range res.Trains {
		if !t.Boarding() {
			continue
		}
		key := trainKey(res.StationCode, t)
		now[key] = true
		if a.boarding[key] {
			continue
		}
		if _, err := a.notifier.Notify(boardingNotification(res.StationName, t)); err != nil {
			a.log.Warn().Err(err).Str("train", key).Msg("boarding notification failed")
		}
	}
	a.boarding = now
}

func trainKey(station string, t transit.Train) string {
	return fmt.Sprintf("%s/%s/%s/%s", station, t.Group, t.Line, t.Destination)
}

func boardingNotification(station string, t transit.Train) notify.Notification {
	body := fmt.Sprintf("%s line to %s", t.Line, t.Destination)
	if t.Car != "" && t.Car != "-" {
		body += fmt.Sprintf(", %s cars", t.Car)
	}
	return notify.Notification{
		Title:   "Boarding at " + station,
		Body:    body,
		Timeout: 10000,
		Urgency: notify.UrgencyNormal,
	}
}
