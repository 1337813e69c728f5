// Package app is the root terminal model: it wires the panel engine, the
// terminal renderer, gesture input and the arrival poller together.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/rs/zerolog"

	"github.com/llehouerou/dctransit/internal/app/panelctl"
	"github.com/llehouerou/dctransit/internal/arrivals"
	"github.com/llehouerou/dctransit/internal/config"
	"github.com/llehouerou/dctransit/internal/gesture"
	"github.com/llehouerou/dctransit/internal/keymap"
	"github.com/llehouerou/dctransit/internal/logging"
	"github.com/llehouerou/dctransit/internal/notify"
	"github.com/llehouerou/dctransit/internal/position"
	"github.com/llehouerou/dctransit/internal/state"
	"github.com/llehouerou/dctransit/internal/transit"
	"github.com/llehouerou/dctransit/internal/ui/about"
	"github.com/llehouerou/dctransit/internal/ui/board"
	"github.com/llehouerou/dctransit/internal/ui/layout"
	"github.com/llehouerou/dctransit/internal/ui/logconsole"
	"github.com/llehouerou/dctransit/internal/ui/options"
	"github.com/llehouerou/dctransit/internal/ui/panels"
)

// Panel ids the application fills with content.
const (
	PanelMetro    = "metro"
	PanelPosition = "position"
	PanelOptions  = "ui-options"
	PanelAbout    = "about"
	PanelLog      = "log"
)

// ErrNoAPIKey is shown on the board when no transit API key is configured.
var ErrNoAPIKey = errors.New("no WMATA API key configured (transit.api_key or WMATA_API_KEY)")

// Deps are the collaborators of the root model.
type Deps struct {
	Config   *config.Config
	Store    state.Interface // nil disables persistence
	Markup   layout.Markup
	Logs     logconsole.Source
	Arrivals *arrivals.Store
	Poller   *arrivals.Poller // nil when no API key is configured
	Logger   zerolog.Logger
}

// Model is the root application model.
type Model struct {
	engine     *panelctl.Manager
	renderer   *panels.Renderer
	recognizer *gesture.Recognizer
	router     *gesture.Router
	keys       *keymap.Resolver

	board    *board.Model
	position *board.Position
	options  *options.Model
	console  *logconsole.Model

	arrivals *arrivals.Store
	poller   *arrivals.Poller
	log      zerolog.Logger

	ErrorMsg string
	Width    int
	Height   int
	now      func() time.Time
}

// New builds the model and starts the panel engine.
func New(d Deps) (Model, error) {
	cfg := d.Config
	log := d.Logger
	settings := cfg.GetPanelSettings()

	renderer := panels.New(settings.TabWidth, log)
	engine := panelctl.New(panelctl.Deps{
		Store:        d.Store,
		Resolver:     layout.NewResolver(settings, cfg.UI.DebugPanel, log),
		Markup:       d.Markup,
		Content:      renderer,
		Renderer:     renderer,
		Logger:       log,
		AllowDisable: cfg.DisableEnabled(),
	})

	m := Model{
		engine:     engine,
		renderer:   renderer,
		recognizer: gesture.NewRecognizer(renderer),
		router:     gesture.NewRouter(engine, log),
		keys:       keymap.ForContexts(keymap.ContextGlobal, keymap.ContextPanel),
		board:      board.New(),
		position:   board.NewPosition(),
		options:    options.New(engine),
		arrivals:   d.Arrivals,
		poller:     d.Poller,
		log:        log.With().Str("component", "app").Logger(),
		now:        time.Now,
	}
	if m.arrivals == nil {
		m.arrivals = &arrivals.Store{}
	}

	renderer.Register(PanelMetro, engine.Title(PanelMetro), m.board)
	renderer.Register(PanelPosition, engine.Title(PanelPosition), m.position)
	renderer.Register(PanelOptions, engine.Title(PanelOptions), m.options)
	renderer.Register(PanelAbout, engine.Title(PanelAbout), about.New(keymap.ContextGlobal, keymap.ContextPanel))
	if d.Logs != nil {
		m.console = logconsole.New(d.Logs)
		renderer.Register(PanelLog, engine.Title(PanelLog), m.console)
	}
	m.setSnapshot(m.arrivals.Snapshot())

	if err := engine.Start(); err != nil {
		return Model{}, fmt.Errorf("start panels: %w", err)
	}
	m.options.Reload()
	m.focusFirst()
	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.renderer.Pending(), m.waitForArrivals(), clockTick())
}

func (m Model) waitForArrivals() tea.Cmd {
	if m.poller == nil {
		return nil
	}
	return m.poller.WaitCmd()
}

// Run builds every component from cfg and runs the program until the user
// quits or ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config, sink *logging.Sink) error {
	log := sink.Logger

	var store state.Interface
	if cfg.PersistenceEnabled() {
		mgr, err := state.Open(cfg.Persistence.DBPath, cfg.Namespace(), log)
		if err != nil {
			log.Warn().Err(err).Msg("panel storage unavailable, continuing without persistence")
		} else {
			defer func() { _ = mgr.Close() }()
			store = mgr
		}
	}

	markup, err := layout.LoadMarkup(cfg.UI.LayoutFile)
	if err != nil {
		return fmt.Errorf("load layout: %w", err)
	}

	arr := &arrivals.Store{}
	var poller *arrivals.Poller
	if cfg.HasTransitConfig() {
		tc := cfg.GetTransitConfig()
		client, err := transit.NewClient(tc.BaseURL, tc.APIKey)
		if err != nil {
			return fmt.Errorf("transit client: %w", err)
		}
		pipeline := arrivals.NewPipeline(position.FromConfig(cfg.GetPositionConfig()), client, log)

		var observer arrivals.Observer
		if tc.NotifyBoarding {
			observer = arrivals.NewAnnouncer(notify.Open(true), log)
		}
		poller = arrivals.NewPoller(pipeline, arr, time.Duration(tc.PollSeconds)*time.Second, observer, log)
		poller.Start(ctx)
	} else {
		arr.Update(nil, ErrNoAPIKey)
	}

	zone.NewGlobal()
	defer zone.Close()

	m, err := New(Deps{
		Config:   cfg,
		Store:    store,
		Markup:   markup,
		Logs:     sink.Ring,
		Arrivals: arr,
		Poller:   poller,
		Logger:   log,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.engine.Flush()
	}
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
