// Package styles holds the color theme and shared lipgloss styles.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme is the color palette and the styles built from it.
type Theme struct {
	Primary   lipgloss.Color // focused tabs, titles
	Secondary lipgloss.Color

	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color

	BgBase   lipgloss.Color
	BgCursor lipgloss.Color

	Border      lipgloss.Color
	BorderFocus lipgloss.Color

	Success lipgloss.Color
	Error   lipgloss.Color
	Warning lipgloss.Color

	// Lines maps a rail line code to its signage color.
	Lines map[string]lipgloss.Color

	styles *Styles
}

// Styles are pre-built lipgloss styles.
type Styles struct {
	Base     lipgloss.Style
	Muted    lipgloss.Style
	Subtle   lipgloss.Style
	Title    lipgloss.Style
	Cursor   lipgloss.Style
	Boarding lipgloss.Style // BRD
	Arriving lipgloss.Style // ARR
	Tab      lipgloss.Style
	TabFocus lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
}

var defaultTheme = Theme{
	Primary:   lipgloss.Color("#a78bfa"),
	Secondary: lipgloss.Color("#f1a208"),

	FgBase:   lipgloss.Color("#c0c0c0"),
	FgMuted:  lipgloss.Color("#808080"),
	FgSubtle: lipgloss.Color("#585858"),

	BgBase:   lipgloss.Color("#1a1a1a"),
	BgCursor: lipgloss.Color("#303030"),

	Border:      lipgloss.Color("#585858"),
	BorderFocus: lipgloss.Color("#a78bfa"),

	Success: lipgloss.Color("#42b883"),
	Error:   lipgloss.Color("#ff5555"),
	Warning: lipgloss.Color("#f1a208"),

	Lines: map[string]lipgloss.Color{
		"RD": lipgloss.Color("#bf0d3e"),
		"OR": lipgloss.Color("#ed8b00"),
		"BL": lipgloss.Color("#009cde"),
		"GR": lipgloss.Color("#00b140"),
		"YL": lipgloss.Color("#ffd100"),
		"SV": lipgloss.Color("#919d9d"),
	},
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the styles of this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

// Line returns the style for a line code; unknown codes are muted.
func (t *Theme) Line(code string) lipgloss.Style {
	c, ok := t.Lines[code]
	if !ok {
		return t.S().Muted.Bold(true)
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true)
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)

	return &Styles{
		Base:   base,
		Muted:  lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle: lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title:  base.Bold(true),
		Cursor: lipgloss.NewStyle().
			Background(t.BgCursor).
			Foreground(t.FgBase),
		Boarding: lipgloss.NewStyle().
			Foreground(t.Success).
			Bold(true).
			Blink(true),
		Arriving: lipgloss.NewStyle().
			Foreground(t.Warning).
			Bold(true),
		Tab: lipgloss.NewStyle().
			Foreground(t.FgMuted).
			Background(t.BgCursor),
		TabFocus: lipgloss.NewStyle().
			Foreground(t.BgBase).
			Background(t.Primary).
			Bold(true),
		Success: lipgloss.NewStyle().Foreground(t.Success),
		Error:   lipgloss.NewStyle().Foreground(t.Error),
		Warning: lipgloss.NewStyle().Foreground(t.Warning),
	}
}
