// Package board renders the live arrival board and the position summary.
package board

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/dctransit/internal/arrivals"
	"github.com/llehouerou/dctransit/internal/errmsg"
	"github.com/llehouerou/dctransit/internal/transit"
	"github.com/llehouerou/dctransit/internal/ui/render"
	"github.com/llehouerou/dctransit/internal/ui/styles"
)

// Column widths of the board, in cells.
const (
	colLine = 2
	colCar  = 3
	colDest = 18
	colMin  = 3

	// Width is the natural width of a board row.
	Width = colLine + 1 + colCar + 1 + colDest + 1 + colMin

	// MaxRows caps how many trains the natural size accounts for.
	MaxRows = 8
)

// Model is the arrival board.
type Model struct {
	snap arrivals.Snapshot
}

// New creates an empty board.
func New() *Model {
	return &Model{}
}

// SetSnapshot replaces the data shown.
func (m *Model) SetSnapshot(s arrivals.Snapshot) {
	m.snap = s
}

// Sections implements panels.Sectioned: the station line, then the table.
func (m *Model) Sections() []string {
	return []string{m.stationLine(Width), m.table(Width, MaxRows+1)}
}

// Natural implements panels.Content.
func (m *Model) Natural() string {
	return strings.Join(m.Sections(), "\n")
}

// View implements panels.Content.
func (m *Model) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	lines := []string{m.stationLine(width)}
	if height > 1 {
		lines = append(lines, m.table(width, height-1))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) stationLine(width int) string {
	s := styles.T().S()
	switch {
	case !m.snap.HasResult && m.snap.LastError != nil:
		return s.Error.Render(render.Truncate(errmsg.Format(errmsg.OpArrivalsFetch, m.snap.LastError), width))
	case !m.snap.HasResult:
		return s.Muted.Render(render.Cell("Locating nearest station…", width))
	}
	r := m.snap.Result
	name := fmt.Sprintf("%s (%s)", r.StationName, r.StationCode)
	return s.Title.Render(render.Cell(name, width))
}

// table renders the header and at most height-1 train rows.
func (m *Model) table(width, height int) string {
	s := styles.T().S()
	if height <= 0 {
		return ""
	}
	dest := max(width-(colLine+1+colCar+1+1+colMin), 4)

	header := render.Cell("LN", colLine) + " " +
		render.Cell("CAR", colCar) + " " +
		render.Cell("DEST", dest) + " " +
		render.CellRight("MIN", colMin)
	lines := []string{s.Subtle.Render(header)}

	trains := m.snap.Result.Trains
	if m.snap.HasResult && len(trains) == 0 {
		lines = append(lines, s.Muted.Render(render.Cell("No trains scheduled", width)))
	}
	for _, t := range trains {
		if len(lines) >= height {
			break
		}
		lines = append(lines, row(t, dest))
	}
	return strings.Join(lines, "\n")
}

func row(t transit.Train, dest int) string {
	th := styles.T()
	s := th.S()

	minutes := render.CellRight(t.Min, colMin)
	switch {
	case t.Boarding():
		minutes = s.Boarding.Render(minutes)
	case t.Arriving():
		minutes = s.Arriving.Render(minutes)
	default:
		minutes = s.Base.Render(minutes)
	}

	name := t.DestinationName
	if name == "" {
		name = t.Destination
	}
	return th.Line(t.Line).Render(render.Cell(t.Line, colLine)) + " " +
		s.Muted.Render(render.Cell(t.Car, colCar)) + " " +
		s.Base.Render(render.Cell(name, dest)) + " " +
		minutes
}

// Position summarizes where the board data comes from.
type Position struct {
	snap arrivals.Snapshot
}

// NewPosition creates the position summary.
func NewPosition() *Position {
	return &Position{}
}

// SetSnapshot replaces the data shown.
func (p *Position) SetSnapshot(s arrivals.Snapshot) {
	p.snap = s
}

func (p *Position) lines() []string {
	s := styles.T().S()
	if !p.snap.HasResult {
		if p.snap.LastError != nil {
			return []string{s.Error.Render(errmsg.Format(errmsg.OpLocate, p.snap.LastError))}
		}
		return []string{s.Muted.Render("No position yet")}
	}
	r := p.snap.Result
	out := []string{
		render.Row(s.Muted.Render("position"), r.Position.String(), 28),
		render.Row(s.Muted.Render("station"), r.StationCode, 28),
		render.Row(s.Muted.Render("search radius"), fmt.Sprintf("%d m", r.Radius), 28),
		render.Row(s.Muted.Render("fetched"), r.FetchedAt.Format(time.TimeOnly), 28),
	}
	if p.snap.ConsecutiveFailures > 0 {
		out = append(out, s.Warning.Render(fmt.Sprintf("%d failed polls", p.snap.ConsecutiveFailures)))
	}
	return out
}

// Natural implements panels.Content.
func (p *Position) Natural() string {
	return strings.Join(p.lines(), "\n")
}

// View implements panels.Content.
func (p *Position) View(width, height int) string {
	lines := p.lines()
	if len(lines) > height {
		lines = lines[:max(height, 0)]
	}
	for i, l := range lines {
		lines[i] = ansi.Truncate(l, width, "…")
	}
	return strings.Join(lines, "\n")
}
