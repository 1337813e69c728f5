package arrivals

import (
	"fmt"
	"slices"
	"sync"
	"time"
)

// Snapshot is the latest arrival data available to the UI.
type Snapshot struct {
	Result              Result
	HasResult           bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline reports whether several polls in a row failed.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates the poller's writes with UI reads.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update records a poll outcome. On error the previous result is kept.
func (s *Store) Update(res *Result, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}
	if res != nil {
		r := *res
		r.Trains = slices.Clone(res.Trains)
		s.snapshot.Result = r
		s.snapshot.HasResult = true
	}
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Result.Trains = slices.Clone(s.snapshot.Result.Trains)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
