// Package panel holds the panel entity and the ordered registry that owns
// every panel's state for the lifetime of the program.
package panel

import (
	"encoding/json"
)

// Edge is the screen edge a panel is anchored to. The zero value means the
// edge is unknown (the layout document carried no usable class).
type Edge string

const (
	EdgeNone   Edge = ""
	EdgeLeft   Edge = "left"
	EdgeRight  Edge = "right"
	EdgeTop    Edge = "top"
	EdgeBottom Edge = "bottom"
)

// Opposite returns the edge facing e. EdgeNone maps to EdgeNone.
func (e Edge) Opposite() Edge {
	switch e {
	case EdgeLeft:
		return EdgeRight
	case EdgeRight:
		return EdgeLeft
	case EdgeTop:
		return EdgeBottom
	case EdgeBottom:
		return EdgeTop
	default:
		return EdgeNone
	}
}

// Valid reports whether e names a real edge.
func (e Edge) Valid() bool {
	return e.Opposite() != EdgeNone
}

// MarshalJSON encodes an unknown edge as null.
func (e Edge) MarshalJSON() ([]byte, error) {
	if e == EdgeNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(e))
}

// UnmarshalJSON accepts null for an unknown edge.
func (e *Edge) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == nil {
		*e = EdgeNone
		return nil
	}
	*e = Edge(*s)
	return nil
}

// OpenMethod is how a panel's tab triggers it.
type OpenMethod string

const (
	OpenUnknown OpenMethod = ""
	OpenClick   OpenMethod = "click"
	OpenHover   OpenMethod = "hover"
)

// Valid reports whether m is a known open method.
func (m OpenMethod) Valid() bool {
	return m == OpenClick || m == OpenHover
}

func (m OpenMethod) MarshalJSON() ([]byte, error) {
	if m == OpenUnknown {
		return []byte("null"), nil
	}
	return json.Marshal(string(m))
}

func (m *OpenMethod) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == nil {
		*m = OpenUnknown
		return nil
	}
	*m = OpenMethod(*s)
	return nil
}

// Entity is the state of a single panel.
type Entity struct {
	ID         string     `json:"id"`
	IsOpen     bool       `json:"isOpen"`
	IsDisabled bool       `json:"isDisabled"`
	CanDisable bool       `json:"canDisable"`
	Location   Edge       `json:"location"`
	Margin     Edge       `json:"margin"`
	Height     int        `json:"height"`
	Width      int        `json:"width"`
	OpenMethod OpenMethod `json:"openMethod"`
	ZIndex     int        `json:"zIndex"`
}

// NewEntity returns a closed, enabled, disableable panel with unknown
// geometry.
func NewEntity(id string) Entity {
	return Entity{ID: id, CanDisable: true}
}

// SetLocation anchors the panel to edge and keeps Margin on the facing edge.
func (e *Entity) SetLocation(edge Edge) {
	e.Location = edge
	e.Margin = edge.Opposite()
}
