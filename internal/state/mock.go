// internal/state/mock.go
package state

// Mock is an in-memory test double for Manager. It stores the encoded form
// so tests exercise the same codec as the real store.
type Mock struct {
	stored    []byte
	saves     int
	removed   int
	closed    bool
	SaveErr   error
	LoadErr   error
	RemoveErr error
}

// NewMock creates a new mock layout store for testing.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Save(s Serialized) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	data, err := s.Encode()
	if err != nil {
		return err
	}
	m.stored = data
	m.saves++
	return nil
}

func (m *Mock) SaveDebounced(s Serialized) {
	_ = m.Save(s)
}

func (m *Mock) Load() (Serialized, error) {
	if m.LoadErr != nil {
		return Serialized{}, m.LoadErr
	}
	if m.stored == nil {
		return Serialized{}, ErrNotFound
	}
	return Decode(m.stored)
}

func (m *Mock) Remove() error {
	if m.RemoveErr != nil {
		return m.RemoveErr
	}
	m.stored = nil
	m.removed++
	return nil
}

func (m *Mock) Close() error {
	m.closed = true
	return nil
}

// Test helpers

// SetRaw stores data verbatim, bypassing the encoder.
func (m *Mock) SetRaw(data []byte) { m.stored = data }

func (m *Mock) Raw() []byte { return m.stored }

func (m *Mock) Saves() int { return m.saves }

func (m *Mock) Removed() int { return m.removed }

func (m *Mock) IsClosed() bool { return m.closed }

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
