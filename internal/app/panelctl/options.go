// internal/app/panelctl/options.go
package panelctl

// Option is one row of the enable/disable form.
type Option struct {
	ID      string
	Title   string
	Enabled bool
}

// OptionsAvailable reports whether panels may be disabled from the form.
func (m *Manager) OptionsAvailable() bool {
	return m.allowDisable
}

// OptionEntries lists the panels the form can toggle, in registry order.
// Protected panels are not listed.
func (m *Manager) OptionEntries() []Option {
	if !m.allowDisable {
		return nil
	}
	var out []Option
	for _, e := range m.reg.All() {
		if !e.CanDisable {
			continue
		}
		out = append(out, Option{ID: e.ID, Title: m.Title(e.ID), Enabled: !e.IsDisabled})
	}
	return out
}

// ApplyOptions enables or disables panels to match the submitted form.
// Panels whose state already matches are left alone.
func (m *Manager) ApplyOptions(enabled map[string]bool) {
	if !m.allowDisable {
		m.log.Warn().Msg("panel disabling is turned off")
		return
	}
	for _, opt := range m.OptionEntries() {
		want, ok := enabled[opt.ID]
		if !ok || want == opt.Enabled {
			continue
		}
		if want {
			_ = m.Enable(opt.ID)
		} else {
			_ = m.Disable(opt.ID)
		}
	}
}
