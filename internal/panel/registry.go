package panel

import (
	"errors"
	"fmt"
	"iter"
)

var (
	ErrNotFound    = errors.New("panel not found")
	ErrDuplicateID = errors.New("duplicate panel id")
)

// Registry is the ordered set of panels in discovery order. It is owned by
// the UI goroutine and is not safe for concurrent use.
type Registry struct {
	ids      []string
	entities []*Entity
	index    map[string]int
}

func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Register appends a panel with default state.
func (r *Registry) Register(id string) (*Entity, error) {
	e := NewEntity(id)
	return r.Add(e)
}

// Add appends e as-is. Used when restoring a stored snapshot.
func (r *Registry) Add(e Entity) (*Entity, error) {
	if _, ok := r.index[e.ID]; ok {
		return nil, fmt.Errorf("register %q: %w", e.ID, ErrDuplicateID)
	}
	ent := &e
	r.index[e.ID] = len(r.entities)
	r.ids = append(r.ids, e.ID)
	r.entities = append(r.entities, ent)
	return ent, nil
}

func (r *Registry) Lookup(id string) (*Entity, error) {
	i, ok := r.index[id]
	if !ok {
		return nil, fmt.Errorf("lookup %q: %w", id, ErrNotFound)
	}
	return r.entities[i], nil
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.index[id]
	return ok
}

// All yields panels in discovery order. The sequence can be ranged over
// any number of times.
func (r *Registry) All() iter.Seq2[int, *Entity] {
	return func(yield func(int, *Entity) bool) {
		for i, e := range r.entities {
			if !yield(i, e) {
				return
			}
		}
	}
}

// IDs returns a copy of the id list.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.ids))
	copy(out, r.ids)
	return out
}

func (r *Registry) Len() int {
	return len(r.entities)
}

func (r *Registry) Clear() {
	r.ids = nil
	r.entities = nil
	r.index = make(map[string]int)
}
