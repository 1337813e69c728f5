// Package arrivals finds the station nearest to the user and keeps its
// live arrival board fresh.
package arrivals

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/llehouerou/dctransit/internal/position"
	"github.com/llehouerou/dctransit/internal/transit"
)

// ErrOutOfRange is returned when no station entrance lies within the
// largest search radius.
var ErrOutOfRange = errors.New("more than 2 miles from a metro")

const (
	// MaxRadius bounds the entrance search, in metres.
	MaxRadius      = 3000
	attemptTimeout = 2 * time.Second
)

// DefaultRadii are the search radii tried in order, in metres.
var DefaultRadii = []int{500, 1500, 2500}

// Result is one completed run of the pipeline.
type Result struct {
	Position    transit.Position
	StationCode string
	StationName string
	Radius      int
	Trains      []transit.Train
	FetchedAt   time.Time
}

// Runner produces arrival results.
type Runner interface {
	Run(ctx context.Context) (Result, error)
}

// Pipeline runs position, nearest station, live arrivals and station
// name lookup in sequence.
type Pipeline struct {
	locator position.Provider
	api     transit.Fetcher
	log     zerolog.Logger

	radii   []int
	timeout time.Duration
	now     func() time.Time
}

// NewPipeline creates a Pipeline with the default radii.
func NewPipeline(locator position.Provider, api transit.Fetcher, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		locator: locator,
		api:     api,
		log:     log.With().Str("component", "arrivals").Logger(),
		radii:   DefaultRadii,
		timeout: attemptTimeout,
		now:     time.Now,
	}
}

// Run executes every stage once.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	pos, err := p.locator.Current(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("position: %w", err)
	}

	code, radius, err := p.nearestStation(ctx, pos)
	if err != nil {
		return Result{}, err
	}

	trains, err := p.api.Predictions(ctx, code)
	if err != nil {
		return Result{}, fmt.Errorf("predictions for %s: %w", code, err)
	}

	name, err := p.api.StationName(ctx, code)
	if err != nil {
		p.log.Warn().Err(err).Str("station", code).Msg("station name unavailable")
		name = code
	}

	p.log.Debug().
		Str("station", code).
		Int("radius", radius).
		Int("trains", len(trains)).
		Msg("arrivals fetched")

	return Result{
		Position:    pos,
		StationCode: code,
		StationName: name,
		Radius:      radius,
		Trains:      trains,
		FetchedAt:   p.now(),
	}, nil
}

// nearestStation widens the search radius until an entrance is found.
// Empty results and per-attempt timeouts move on to the next radius.
func (p *Pipeline) nearestStation(ctx context.Context, pos transit.Position) (string, int, error) {
	for _, radius := range p.radii {
		if radius > MaxRadius {
			break
		}
		attemptCtx, cancel := context.WithTimeout(ctx, p.timeout)
		entrances, err := p.api.Entrances(attemptCtx, pos, radius)
		cancel()

		if ctx.Err() != nil {
			return "", 0, ctx.Err()
		}
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			p.log.Debug().Int("radius", radius).Msg("entrance search timed out")
			continue
		case err != nil:
			return "", 0, fmt.Errorf("entrances within %dm: %w", radius, err)
		}

		for _, e := range entrances {
			if e.StationCode1 != "" {
				return e.StationCode1, radius, nil
			}
		}
		p.log.Debug().Int("radius", radius).Msg("no entrance in range")
	}
	return "", 0, ErrOutOfRange
}
