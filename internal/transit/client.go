// Package transit is a client for the WMATA rail API: station entrances
// near a point, live arrival predictions and the station list.
package transit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

var (
	// ErrUnauthorized is returned when the API rejects the key.
	ErrUnauthorized = errors.New("transit api key rejected")
	// ErrUnknownStation is returned by StationName for unlisted codes.
	ErrUnknownStation = errors.New("unknown station")
)

// Fetcher is the API surface the arrival pipeline uses.
type Fetcher interface {
	Entrances(ctx context.Context, pos Position, radius int) ([]Entrance, error)
	Predictions(ctx context.Context, stationCode string) ([]Train, error)
	StationName(ctx context.Context, code string) (string, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

const (
	defaultBaseURL   = "https://api.wmata.com"
	defaultUserAgent = "dctransit/0.1"
	requestTimeout   = 10 * time.Second
)

// Client talks to the WMATA HTTP API.
type Client struct {
	baseURL   *url.URL
	apiKey    string
	http      *http.Client
	userAgent string

	stationsMu sync.Mutex
	stations   map[string]string
}

// NewClient builds a Client for baseURL (empty for the public API).
func NewClient(baseURL, apiKey string) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		apiKey:  apiKey,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// Entrances returns station entrances within radius metres of pos,
// nearest first.
func (c *Client) Entrances(ctx context.Context, pos Position, radius int) ([]Entrance, error) {
	values := url.Values{}
	values.Set("Lat", strconv.FormatFloat(pos.Lat, 'f', 6, 64))
	values.Set("Lon", strconv.FormatFloat(pos.Lon, 'f', 6, 64))
	values.Set("Radius", strconv.Itoa(radius))
	rel := &url.URL{Path: "/Rail.svc/json/jStationEntrances", RawQuery: values.Encode()}

	var payload entrancesResponse
	if err := c.doURL(ctx, rel, &payload); err != nil {
		return nil, err
	}
	return payload.Entrances, nil
}

// Predictions returns the live arrival board for a station.
func (c *Client) Predictions(ctx context.Context, stationCode string) ([]Train, error) {
	code := strings.TrimSpace(stationCode)
	if code == "" {
		return nil, fmt.Errorf("station code required")
	}
	var payload predictionsResponse
	if err := c.do(ctx, "/StationPrediction.svc/json/GetPrediction/"+url.PathEscape(code), &payload); err != nil {
		return nil, err
	}
	return payload.Trains, nil
}

// Stations returns every rail station.
func (c *Client) Stations(ctx context.Context) ([]Station, error) {
	var payload stationsResponse
	if err := c.do(ctx, "/Rail.svc/json/jStations", &payload); err != nil {
		return nil, err
	}
	return payload.Stations, nil
}

// StationName resolves a station code to its name. The station list is
// fetched once and cached.
func (c *Client) StationName(ctx context.Context, code string) (string, error) {
	c.stationsMu.Lock()
	defer c.stationsMu.Unlock()

	if c.stations == nil {
		list, err := c.Stations(ctx)
		if err != nil {
			return "", err
		}
		c.stations = make(map[string]string, len(list))
		for _, s := range list {
			c.stations[s.Code] = s.Name
		}
	}
	name, ok := c.stations[code]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownStation, code)
	}
	return name, nil
}

func (c *Client) do(ctx context.Context, path string, dest any) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, rel, dest)
}

func (c *Client) doURL(ctx context.Context, rel *url.URL, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("api_key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode >= 400:
		return fmt.Errorf("api %s returned status %d", rel.Path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
