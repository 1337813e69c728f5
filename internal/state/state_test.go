package state

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbutil "github.com/llehouerou/dctransit/internal/db"
	"github.com/llehouerou/dctransit/internal/panel"
)

// setupTestDB creates an in-memory SQLite database with the schema initialized.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := dbutil.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		t.Fatalf("failed to init schema: %v", err)
	}

	return db
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	return New(setupTestDB(t), "example.test", zerolog.Nop())
}

func sampleRegistry(t *testing.T) *panel.Registry {
	t.Helper()
	reg := panel.NewRegistry()

	metro, err := reg.Register("metro")
	require.NoError(t, err)
	metro.SetLocation(panel.EdgeLeft)
	metro.OpenMethod = panel.OpenClick
	metro.Width, metro.Height = 42, 12
	metro.ZIndex = 3
	metro.IsOpen = true

	about, err := reg.Register("about")
	require.NoError(t, err)
	about.SetLocation(panel.EdgeRight)
	about.OpenMethod = panel.OpenHover
	about.CanDisable = false

	logs, err := reg.Register("log")
	require.NoError(t, err)
	logs.IsDisabled = true

	return reg
}

func TestKey(t *testing.T) {
	if got := Key("localhost"); got != "localhostuidata" {
		t.Errorf("Key() = %q, want %q", got, "localhostuidata")
	}
}

func TestManager_LoadEmpty(t *testing.T) {
	m := newTestManager(t)
	defer m.Close()

	_, err := m.Load()
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load() err = %v, want ErrNotFound", err)
	}
}

func TestManager_SaveLoadRestoreRoundTrip(t *testing.T) {
	m := newTestManager(t)
	defer m.Close()

	reg := sampleRegistry(t)
	require.NoError(t, m.Save(Snapshot(reg)))

	loaded, err := m.Load()
	require.NoError(t, err)

	restored := panel.NewRegistry()
	require.NoError(t, Restore(loaded, restored))

	require.Equal(t, reg.IDs(), restored.IDs())
	for i, want := range reg.All() {
		got, err := restored.Lookup(want.ID)
		require.NoError(t, err, "panel %d", i)
		assert.Equal(t, *want, *got)
	}
}

func TestManager_SaveOverwrites(t *testing.T) {
	m := newTestManager(t)
	defer m.Close()

	reg := sampleRegistry(t)
	require.NoError(t, m.Save(Snapshot(reg)))

	e, _ := reg.Lookup("metro")
	e.IsOpen = false
	require.NoError(t, m.Save(Snapshot(reg)))

	loaded, err := m.Load()
	require.NoError(t, err)
	assert.False(t, loaded.Panels[0].IsOpen)

	var rows int
	require.NoError(t, m.DB().QueryRow(`SELECT COUNT(*) FROM kv_store`).Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestManager_StoredFormat(t *testing.T) {
	m := newTestManager(t)
	defer m.Close()

	reg := panel.NewRegistry()
	e, _ := reg.Register("metro")
	e.SetLocation(panel.EdgeLeft)
	e.OpenMethod = panel.OpenClick
	require.NoError(t, m.Save(Snapshot(reg)))

	var value string
	require.NoError(t, m.DB().QueryRow(`SELECT value FROM kv_store WHERE key = ?`, "example.testuidata").Scan(&value))
	assert.JSONEq(t, `[["metro"],[{"id":"metro","isOpen":false,"isDisabled":false,"canDisable":true,
		"location":"left","margin":"right","height":0,"width":0,"openMethod":"click","zIndex":0}]]`, value)
}

func TestManager_LoadCorrupt(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"truncated json", `[["metro"],[{"id":"met`},
		{"not an array", `{"ids":[]}`},
		{"one element", `[["metro"]]`},
		{"three elements", `[[],[],[]]`},
		{"length mismatch", `[["metro","about"],[{"id":"metro"}]]`},
		{"misaligned ids", `[["about","metro"],[{"id":"metro"},{"id":"about"}]]`},
		{"duplicate ids", `[["a","a"],[{"id":"a"},{"id":"a"}]]`},
		{"wrong id type", `[[1],[{"id":"1"}]]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestManager(t)
			defer m.Close()

			_, err := m.DB().Exec(`INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, 0)`, m.Key(), tt.value)
			require.NoError(t, err)

			_, err = m.Load()
			var corrupt *CorruptDataError
			if !errors.As(err, &corrupt) {
				t.Fatalf("Load() err = %v, want *CorruptDataError", err)
			}
		})
	}
}

func TestManager_Remove(t *testing.T) {
	m := newTestManager(t)
	defer m.Close()

	require.NoError(t, m.Save(Snapshot(sampleRegistry(t))))
	require.NoError(t, m.Remove())

	_, err := m.Load()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManager_KeysAreNamespaced(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	a := New(db, "a.test", zerolog.Nop())
	b := New(db, "b.test", zerolog.Nop())

	require.NoError(t, a.Save(Snapshot(sampleRegistry(t))))
	_, err := b.Load()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManager_SaveDebouncedCoalesces(t *testing.T) {
	m := newTestManager(t)
	defer m.Close()

	reg := sampleRegistry(t)
	metro, _ := reg.Lookup("metro")
	for i := range 5 {
		metro.Width = i
		m.SaveDebounced(Snapshot(reg))
	}

	require.Eventually(t, func() bool {
		s, err := m.Load()
		return err == nil && s.Panels[0].Width == 4
	}, 2*time.Second, 20*time.Millisecond)
}

func TestManager_StaleDebouncedWriteIsSkipped(t *testing.T) {
	m := newTestManager(t)
	defer m.Close()

	reg := sampleRegistry(t)
	metro, _ := reg.Lookup("metro")

	metro.Width = 1
	m.SaveDebounced(Snapshot(reg))
	m.saveMu.Lock()
	stale := m.gen
	m.saveMu.Unlock()

	metro.Width = 2
	require.NoError(t, m.Save(Snapshot(reg)))

	// the timer of the first call firing late must not overwrite the save
	m.flushDebounced(stale)

	s, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, 2, s.Panels[0].Width)
}

func TestManager_CloseFlushesPending(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.db")

	m, err := Open(path, "host", zerolog.Nop())
	require.NoError(t, err)
	m.SaveDebounced(Snapshot(sampleRegistry(t)))
	require.NoError(t, m.Close())

	reopened, err := Open(path, "host", zerolog.Nop())
	require.NoError(t, err)
	defer reopened.Close()

	s, err := reopened.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"metro", "about", "log"}, s.IDs)
}

func TestManager_RemoveDropsPendingSave(t *testing.T) {
	m := newTestManager(t)

	m.SaveDebounced(Snapshot(sampleRegistry(t)))
	require.NoError(t, m.Remove())
	time.Sleep(2 * saveDebounce)

	_, err := m.Load()
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, m.Close())
}

func TestRestore_RepairsInvariants(t *testing.T) {
	s := Serialized{
		IDs: []string{"about"},
		Panels: []panel.Entity{{
			ID:         "about",
			IsDisabled: true,
			CanDisable: false,
			Location:   panel.EdgeLeft,
			Margin:     panel.EdgeLeft,
		}},
	}

	reg := panel.NewRegistry()
	require.NoError(t, Restore(s, reg))

	e, err := reg.Lookup("about")
	require.NoError(t, err)
	assert.False(t, e.IsDisabled, "protected panel must stay enabled")
	assert.Equal(t, panel.EdgeRight, e.Margin)
}

func TestRestore_ClearsUnknownEdgesAndMethods(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"null location keeps no margin", `[["metro"],[{"id":"metro","location":null,"margin":"right","openMethod":"click"}]]`},
		{"unknown location", `[["metro"],[{"id":"metro","location":"diagonal","margin":"right","openMethod":"click"}]]`},
		{"unknown open method", `[["metro"],[{"id":"metro","location":null,"margin":null,"openMethod":"teleport"}]]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Decode([]byte(tt.raw))
			require.NoError(t, err)

			reg := panel.NewRegistry()
			require.NoError(t, Restore(s, reg))

			e, err := reg.Lookup("metro")
			require.NoError(t, err)
			assert.Equal(t, panel.EdgeNone, e.Location)
			assert.Equal(t, panel.EdgeNone, e.Margin)
			assert.Equal(t, e.Location.Opposite(), e.Margin)
			assert.True(t, e.OpenMethod == panel.OpenClick || e.OpenMethod == panel.OpenUnknown)
		})
	}

	s, err := Decode([]byte(`[["metro"],[{"id":"metro","location":"left","openMethod":"teleport"}]]`))
	require.NoError(t, err)
	reg := panel.NewRegistry()
	require.NoError(t, Restore(s, reg))
	e, err := reg.Lookup("metro")
	require.NoError(t, err)
	assert.Equal(t, panel.OpenUnknown, e.OpenMethod)
	assert.Equal(t, panel.EdgeRight, e.Margin)
}

func TestRestore_ReplacesExistingContent(t *testing.T) {
	reg := sampleRegistry(t)
	s := Serialized{IDs: []string{"x"}, Panels: []panel.Entity{panel.NewEntity("x")}}

	require.NoError(t, Restore(s, reg))
	assert.Equal(t, []string{"x"}, reg.IDs())
}

func TestSerialized_EncodeEmpty(t *testing.T) {
	data, err := Serialized{}.Encode()
	require.NoError(t, err)
	assert.JSONEq(t, `[[],[]]`, string(data))

	s, err := Decode(data)
	require.NoError(t, err)
	assert.Empty(t, s.IDs)
}

func TestMock_UsesCodec(t *testing.T) {
	m := NewMock()
	_, err := m.Load()
	require.ErrorIs(t, err, ErrNotFound)

	m.SetRaw([]byte(`[["a"],[]]`))
	_, err = m.Load()
	var corrupt *CorruptDataError
	assert.ErrorAs(t, err, &corrupt)
}
