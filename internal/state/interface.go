// internal/state/interface.go
package state

// Interface defines the layout store contract for dependency injection and testing.
type Interface interface {
	Save(s Serialized) error
	SaveDebounced(s Serialized)
	Load() (Serialized, error)
	Remove() error
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
