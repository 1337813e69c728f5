package state

import (
	"encoding/json"
	"fmt"

	"github.com/llehouerou/dctransit/internal/panel"
)

// CorruptDataError reports a stored layout that cannot be used. Callers
// discard it and rediscover panels.
type CorruptDataError struct {
	Reason string
	Err    error
}

func (e *CorruptDataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("corrupt panel layout: %s: %v", e.Reason, e.Err)
	}
	return "corrupt panel layout: " + e.Reason
}

func (e *CorruptDataError) Unwrap() error {
	return e.Err
}

// Serialized is the stored form of a registry: the id list and the entity
// list, index-aligned.
type Serialized struct {
	IDs    []string
	Panels []panel.Entity
}

// Snapshot copies the registry into its stored form.
func Snapshot(reg *panel.Registry) Serialized {
	s := Serialized{
		IDs:    make([]string, 0, reg.Len()),
		Panels: make([]panel.Entity, 0, reg.Len()),
	}
	for _, e := range reg.All() {
		s.IDs = append(s.IDs, e.ID)
		s.Panels = append(s.Panels, *e)
	}
	return s
}

// Encode produces the two-element JSON array [ids, entities].
func (s Serialized) Encode() ([]byte, error) {
	ids := s.IDs
	if ids == nil {
		ids = []string{}
	}
	panels := s.Panels
	if panels == nil {
		panels = []panel.Entity{}
	}
	return json.Marshal([2]any{ids, panels})
}

// Decode parses and validates a stored value. Any failure, including ids
// that do not line up with their entities, yields a *CorruptDataError.
func Decode(data []byte) (Serialized, error) {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return Serialized{}, &CorruptDataError{Reason: "not a JSON array", Err: err}
	}
	if len(parts) != 2 {
		return Serialized{}, &CorruptDataError{Reason: fmt.Sprintf("expected 2 elements, got %d", len(parts))}
	}

	var s Serialized
	if err := json.Unmarshal(parts[0], &s.IDs); err != nil {
		return Serialized{}, &CorruptDataError{Reason: "id list", Err: err}
	}
	if err := json.Unmarshal(parts[1], &s.Panels); err != nil {
		return Serialized{}, &CorruptDataError{Reason: "entity list", Err: err}
	}
	if err := s.validate(); err != nil {
		return Serialized{}, err
	}
	return s, nil
}

func (s Serialized) validate() error {
	if len(s.IDs) != len(s.Panels) {
		return &CorruptDataError{
			Reason: fmt.Sprintf("%d ids for %d entities", len(s.IDs), len(s.Panels)),
		}
	}
	seen := make(map[string]bool, len(s.IDs))
	for i, id := range s.IDs {
		if s.Panels[i].ID != id {
			return &CorruptDataError{
				Reason: fmt.Sprintf("id %d is %q but entity is %q", i, id, s.Panels[i].ID),
			}
		}
		if seen[id] {
			return &CorruptDataError{Reason: fmt.Sprintf("id %q stored twice", id)}
		}
		seen[id] = true
	}
	return nil
}

// Restore replaces the registry content with s, in stored order. Unknown
// edges and open methods are cleared, margin is re-derived from location
// and protected panels are re-enabled.
func Restore(s Serialized, reg *panel.Registry) error {
	if err := s.validate(); err != nil {
		return err
	}
	reg.Clear()
	for _, e := range s.Panels {
		if !e.Location.Valid() {
			e.Location = panel.EdgeNone
		}
		e.SetLocation(e.Location)
		if !e.OpenMethod.Valid() {
			e.OpenMethod = panel.OpenUnknown
		}
		if !e.CanDisable {
			e.IsDisabled = false
		}
		if _, err := reg.Add(e); err != nil {
			return err
		}
	}
	return nil
}
