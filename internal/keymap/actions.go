// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action is a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit    Action = "quit"
	ActionHelp    Action = "help"
	ActionRefresh Action = "refresh"
	ActionOptions Action = "options"
	ActionLog     Action = "log"

	// Panel focus and state
	ActionNextPanel   Action = "next_panel"
	ActionPrevPanel   Action = "prev_panel"
	ActionTogglePanel Action = "toggle_panel"
	ActionClosePanel  Action = "close_panel"
	ActionRaisePanel  Action = "raise_panel"

	// Keyboard swipes on the focused panel
	ActionSwipeLeft  Action = "swipe_left"
	ActionSwipeRight Action = "swipe_right"
	ActionSwipeUp    Action = "swipe_up"
	ActionSwipeDown  Action = "swipe_down"

	// Options form
	ActionMoveUp       Action = "move_up"
	ActionMoveDown     Action = "move_down"
	ActionToggleSelect Action = "toggle_select"
	ActionApply        Action = "apply"
	ActionCancel       Action = "cancel"

	// Log console
	ActionScrollUp   Action = "scroll_up"
	ActionScrollDown Action = "scroll_down"
	ActionFollow     Action = "follow"
)
