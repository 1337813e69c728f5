// Package logging builds the program's zerolog logger. Output goes to a log
// file and to an in-memory ring read by the log console panel; nothing is
// written to the terminal while the UI owns it.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
)

const (
	appName     = "dctransit"
	logFileName = "dctransit.log"
)

// Options configures New.
type Options struct {
	File     string // empty selects the XDG state dir
	RingSize int
	Debug    bool
}

// Sink is the configured logger plus the resources behind it.
type Sink struct {
	Logger zerolog.Logger
	Ring   *Ring
	file   *os.File
}

// New opens the log file and returns a logger writing JSON lines to it and
// human readable lines to the ring.
func New(opts Options) (*Sink, error) {
	path := opts.File
	if path == "" {
		p, err := xdg.StateFile(filepath.Join(appName, logFileName))
		if err != nil {
			return nil, err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, err
	}

	ring := NewRing(opts.RingSize)
	return &Sink{
		Logger: newLogger(f, ring, opts.Debug),
		Ring:   ring,
		file:   f,
	}, nil
}

// NewMemory returns a sink that only writes to the ring. Used when the log
// file cannot be opened and in tests.
func NewMemory(ringSize int, debug bool) *Sink {
	ring := NewRing(ringSize)
	return &Sink{Logger: newLogger(io.Discard, ring, debug), Ring: ring}
}

func newLogger(out io.Writer, ring *Ring, debug bool) zerolog.Logger {
	console := zerolog.ConsoleWriter{
		Out:        ring,
		NoColor:    true,
		TimeFormat: time.TimeOnly,
	}
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.MultiLevelWriter(out, console)).
		Level(level).
		With().Timestamp().Logger()
}

func (s *Sink) Close() error {
	if s.file == nil {
		return nil
	}
	return s.file.Close()
}
