package arrivals

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

const (
	// DefaultInterval is the refresh cadence when none is configured.
	DefaultInterval = 20 * time.Second
	maxBackoff      = 2 * time.Minute
)

// UpdatedMsg tells the UI that the store holds new data.
type UpdatedMsg struct{}

// Observer is told about every successful result.
type Observer interface {
	Observe(Result)
}

// Poller re-runs a Runner on a fixed cadence, backing off after failures.
type Poller struct {
	runner   Runner
	store    *Store
	interval time.Duration
	observer Observer
	log      zerolog.Logger
	updates  chan struct{}
	kick     chan struct{}
}

// NewPoller creates a Poller writing to store. observer may be nil.
func NewPoller(runner Runner, store *Store, interval time.Duration, observer Observer, log zerolog.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		runner:   runner,
		store:    store,
		interval: interval,
		observer: observer,
		log:      log.With().Str("component", "poller").Logger(),
		updates:  make(chan struct{}, 1),
		kick:     make(chan struct{}, 1),
	}
}

// Start launches the polling goroutine. It stops when ctx is cancelled.
func (p *Poller) Start(ctx context.Context) {
	go p.loop(ctx)
}

func (p *Poller) loop(ctx context.Context) {
	failures := 0
	for {
		if p.refresh(ctx) {
			failures = 0
		} else {
			failures++
		}
		if ctx.Err() != nil {
			return
		}

		wait := calculateBackoff(failures, p.interval)
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		case <-p.kick:
			timer.Stop()
		}
	}
}

// refresh runs the pipeline once and reports whether it succeeded.
func (p *Poller) refresh(ctx context.Context) bool {
	res, err := p.runner.Run(ctx)
	if ctx.Err() != nil {
		return false
	}
	if err != nil {
		p.log.Warn().Err(err).Msg("arrival poll failed")
		p.store.Update(nil, err)
		p.signal()
		return false
	}
	p.store.Update(&res, nil)
	if p.observer != nil {
		p.observer.Observe(res)
	}
	p.signal()
	return true
}

func (p *Poller) signal() {
	select {
	case p.updates <- struct{}{}:
	default:
	}
}

// Refresh asks for a poll now instead of at the next tick.
func (p *Poller) Refresh() {
	select {
	case p.kick <- struct{}{}:
	default:
	}
}

// WaitCmd blocks until the next store write and reports it as UpdatedMsg.
func (p *Poller) WaitCmd() tea.Cmd {
	return func() tea.Msg {
		<-p.updates
		return UpdatedMsg{}
	}
}

// calculateBackoff doubles base for each consecutive failure, up to
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for range failures {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}
