package keymap

// Context names where a binding applies.
const (
	ContextGlobal  = "global"
	ContextPanel   = "panel"
	ContextOptions = "options"
	ContextLog     = "log"
)

// Binding ties keys to an action.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string
}

// All contains every key binding, in help order.
var All = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", ContextGlobal},
	{ActionHelp, []string{"?"}, "Show help", ContextGlobal},
	{ActionRefresh, []string{"r"}, "Refresh arrivals", ContextGlobal},
	{ActionOptions, []string{"o"}, "Panel options", ContextGlobal},
	{ActionLog, []string{"`"}, "Log console", ContextGlobal},

	// Panels
	{ActionNextPanel, []string{"tab"}, "Focus next tab", ContextPanel},
	{ActionPrevPanel, []string{"shift+tab"}, "Focus previous tab", ContextPanel},
	{ActionTogglePanel, []string{"enter", " "}, "Open/close focused panel", ContextPanel},
	{ActionClosePanel, []string{"esc"}, "Close focused panel", ContextPanel},
	{ActionRaisePanel, []string{"f"}, "Bring focused panel forward", ContextPanel},
	{ActionSwipeLeft, []string{"shift+left", "H"}, "Swipe left", ContextPanel},
	{ActionSwipeRight, []string{"shift+right", "L"}, "Swipe right", ContextPanel},
	{ActionSwipeUp, []string{"shift+up", "K"}, "Swipe up", ContextPanel},
	{ActionSwipeDown, []string{"shift+down", "J"}, "Swipe down", ContextPanel},

	// Options form
	{ActionMoveUp, []string{"k", "up"}, "Move up", ContextOptions},
	{ActionMoveDown, []string{"j", "down"}, "Move down", ContextOptions},
	{ActionToggleSelect, []string{"x", " "}, "Toggle panel", ContextOptions},
	{ActionApply, []string{"enter"}, "Apply", ContextOptions},
	{ActionCancel, []string{"esc"}, "Cancel", ContextOptions},

	// Log console
	{ActionScrollUp, []string{"k", "up", "pgup"}, "Scroll up", ContextLog},
	{ActionScrollDown, []string{"j", "down", "pgdown"}, "Scroll down", ContextLog},
	{ActionFollow, []string{"G"}, "Follow new lines", ContextLog},
}

// ByContext returns the bindings of one context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range All {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}
