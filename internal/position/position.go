// Package position reports where the user is.
package position

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/llehouerou/dctransit/internal/config"
	"github.com/llehouerou/dctransit/internal/transit"
)

// ErrNoFix is returned when a provider has no usable position.
var ErrNoFix = errors.New("no position fix")

// Provider returns the current position.
type Provider interface {
	Current(ctx context.Context) (transit.Position, error)
}

// Static always reports the same position.
type Static transit.Position

func (s Static) Current(context.Context) (transit.Position, error) {
	return transit.Position(s), nil
}

// HTTP queries a JSON geolocation endpoint returning {"lat":..,"lon":..}.
type HTTP struct {
	url    string
	client *http.Client
}

// NewHTTP creates an HTTP provider for url.
func NewHTTP(url string) *HTTP {
	return &HTTP{
		url:    url,
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

func (h *HTTP) Current(ctx context.Context) (transit.Position, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, http.NoBody)
	if err != nil {
		return transit.Position{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return transit.Position{}, fmt.Errorf("locate: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return transit.Position{}, fmt.Errorf("locate: status %d", resp.StatusCode)
	}

	var fix struct {
		Lat *float64 `json:"lat"`
		Lon *float64 `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&fix); err != nil {
		return transit.Position{}, fmt.Errorf("decode response: %w", err)
	}
	if fix.Lat == nil || fix.Lon == nil {
		return transit.Position{}, ErrNoFix
	}
	return transit.Position{Lat: *fix.Lat, Lon: *fix.Lon}, nil
}

// FromConfig builds the provider selected in cfg.
func FromConfig(cfg config.PositionConfig) Provider {
	if cfg.Provider == "http" && cfg.URL != "" {
		return NewHTTP(cfg.URL)
	}
	return Static{Lat: cfg.Latitude, Lon: cfg.Longitude}
}
