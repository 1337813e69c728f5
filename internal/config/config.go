package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	appName = "dctransit"

	// APIKeyEnv is consulted when transit.api_key is not set.
	APIKeyEnv = "WMATA_API_KEY"
)

type Config struct {
	UI            UIConfig          `koanf:"ui"`
	PanelSettings PanelSettings     `koanf:"panel_settings"`
	Persistence   PersistenceConfig `koanf:"persistence"`
	Transit       TransitConfig     `koanf:"transit"`
	Position      PositionConfig    `koanf:"position"`
	Log           LogConfig         `koanf:"log"`
}

// UIConfig holds the panel feature flags.
type UIConfig struct {
	PanelStatePersistence *bool  `koanf:"panel_state_persistence"` // default: true
	PanelDisable          *bool  `koanf:"panel_disable"`           // options form can disable panels (default: true)
	Development           bool   `koanf:"development"`             // debug logging
	DebugPanel            bool   `koanf:"debug_panel"`             // show the log console panel
	LayoutFile            string `koanf:"layout_file"`             // panel layout document, empty for built-in
}

// PanelSettings are the fixed paddings used to derive panel geometry, in
// terminal cells.
type PanelSettings struct {
	TabWidth      int `koanf:"tab_width"`
	PaddingStrong int `koanf:"padding_strong"`
	PaddingWeak   int `koanf:"padding_weak"`
}

type PersistenceConfig struct {
	Namespace string `koanf:"namespace"` // key prefix, defaults to the host name
	DBPath    string `koanf:"db_path"`   // defaults to the XDG data dir
}

type TransitConfig struct {
	APIKey         string `koanf:"api_key"`
	BaseURL        string `koanf:"base_url"`
	PollSeconds    int    `koanf:"poll_seconds"`
	NotifyBoarding bool   `koanf:"notify_boarding"`
}

type PositionConfig struct {
	Provider  string  `koanf:"provider"` // "static" or "http"
	Latitude  float64 `koanf:"latitude"`
	Longitude float64 `koanf:"longitude"`
	URL       string  `koanf:"url"` // geolocation endpoint for the http provider
}

type LogConfig struct {
	File     string `koanf:"file"`      // defaults to the XDG state dir
	RingSize int    `koanf:"ring_size"` // lines kept for the log console
}

func Load() (*Config, error) {
	return LoadFiles(getConfigPaths()...)
}

// LoadFiles loads the given files in order; later files override earlier
// ones and missing files are skipped.
func LoadFiles(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.UI.LayoutFile = expandPath(cfg.UI.LayoutFile)
	cfg.Persistence.DBPath = expandPath(cfg.Persistence.DBPath)
	cfg.Log.File = expandPath(cfg.Log.File)

	// Normalize base URL (remove trailing slash)
	cfg.Transit.BaseURL = strings.TrimSuffix(cfg.Transit.BaseURL, "/")

	if cfg.Transit.APIKey == "" {
		cfg.Transit.APIKey = os.Getenv(APIKeyEnv)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/dctransit/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appName, "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// PersistenceEnabled reports whether panel state is saved across runs.
func (c *Config) PersistenceEnabled() bool {
	return c.UI.PanelStatePersistence == nil || *c.UI.PanelStatePersistence
}

// DisableEnabled reports whether the options form may disable panels.
func (c *Config) DisableEnabled() bool {
	return c.UI.PanelDisable == nil || *c.UI.PanelDisable
}

// HasTransitConfig returns true if an API key is available.
func (c *Config) HasTransitConfig() bool {
	return c.Transit.APIKey != ""
}

// Namespace returns the persistence key prefix.
func (c *Config) Namespace() string {
	if c.Persistence.Namespace != "" {
		return c.Persistence.Namespace
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "localhost"
}

// GetPanelSettings returns the panel settings with defaults applied.
func (c *Config) GetPanelSettings() PanelSettings {
	s := c.PanelSettings
	if s.TabWidth <= 0 {
		s.TabWidth = 3
	}
	if s.PaddingStrong <= 0 {
		s.PaddingStrong = 2
	}
	if s.PaddingWeak <= 0 {
		s.PaddingWeak = 1
	}
	return s
}

// GetTransitConfig returns the transit configuration with defaults applied.
func (c *Config) GetTransitConfig() TransitConfig {
	t := c.Transit
	if t.BaseURL == "" {
		t.BaseURL = "https://api.wmata.com"
	}
	if t.PollSeconds < 5 {
		t.PollSeconds = 20
	}
	return t
}

// GetPositionConfig returns the position configuration with defaults applied.
func (c *Config) GetPositionConfig() PositionConfig {
	p := c.Position
	if p.Provider != "http" {
		p.Provider = "static"
	}
	if p.Latitude == 0 && p.Longitude == 0 {
		// Metro Center
		p.Latitude, p.Longitude = 38.898303, -77.028099
	}
	return p
}

// GetLogConfig returns the log configuration with defaults applied.
func (c *Config) GetLogConfig() LogConfig {
	l := c.Log
	if l.RingSize <= 0 {
		l.RingSize = 500
	}
	return l
}
