// Package errmsg formats errors shown to the user.
package errmsg

import "fmt"

// Op names an operation that can fail.
type Op string

const (
	// Panel operations
	OpPanelOpen    Op = "open panel"
	OpPanelClose   Op = "close panel"
	OpPanelDisable Op = "disable panel"
	OpPanelEnable  Op = "enable panel"
	OpPanelLayout  Op = "lay out panels"

	// Persistence
	OpStateLoad Op = "load panel layout"
	OpStateSave Op = "save panel layout"

	// Transit
	OpArrivalsFetch Op = "fetch arrivals"
	OpLocate        Op = "determine position"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format builds a user-facing error line.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith adds the subject of the operation, such as a panel id.
func FormatWith(op Op, subject string, err error) string {
	if err == nil {
		return ""
	}
	if subject == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, subject, err)
}
