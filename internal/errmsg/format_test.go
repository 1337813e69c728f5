package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{"nil error", OpPanelOpen, nil, ""},
		{"panel", OpPanelDisable, errors.New("panel cannot be disabled"), "Failed to disable panel: panel cannot be disabled"},
		{"arrivals", OpArrivalsFetch, errors.New("more than 2 miles from a metro"), "Failed to fetch arrivals: more than 2 miles from a metro"},
		{"state", OpStateSave, errors.New("disk full"), "Failed to save panel layout: disk full"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.op, tt.err); got != tt.expected {
				t.Errorf("Format(%q, %v) = %q, want %q", tt.op, tt.err, got, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		subject  string
		err      error
		expected string
	}{
		{"nil error", "metro", nil, ""},
		{"with subject", "about", errors.New("protected"), "Failed to disable panel 'about': protected"},
		{"empty subject", "", errors.New("protected"), "Failed to disable panel: protected"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatWith(OpPanelDisable, tt.subject, tt.err); got != tt.expected {
				t.Errorf("FormatWith() = %q, want %q", got, tt.expected)
			}
		})
	}
}
