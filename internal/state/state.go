package state

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"

	dbutil "github.com/llehouerou/dctransit/internal/db"
)

const (
	appName      = "dctransit"
	dbFileName   = "dctransit.db"
	keySuffix    = "uidata"
	saveDebounce = 500 * time.Millisecond
)

// ErrNotFound is returned by Load when no layout has been stored under the
// manager's key.
var ErrNotFound = errors.New("no stored panel layout")

// Manager persists the panel layout in a SQLite key-value table. Saves can
// be debounced; Close flushes whatever is still pending.
//
// Lock order is writeMu, then saveMu. gen counts every Save, SaveDebounced
// and Remove so a debounced write never lands after a newer one.
type Manager struct {
	db        *sql.DB
	key       string
	log       zerolog.Logger
	writeMu   sync.Mutex
	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   *Serialized
	gen       uint64
}

// Key returns the storage key for a namespace (normally the host name).
func Key(namespace string) string {
	return namespace + keySuffix
}

// Open opens (or creates) the database at path. An empty path selects the
// XDG data location.
func Open(path, namespace string, log zerolog.Logger) (*Manager, error) {
	if path == "" {
		p, err := getDBPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := dbutil.Open(path)
	if err != nil {
		return nil, err
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return New(db, namespace, log), nil
}

// New wraps an already-initialised database.
func New(db *sql.DB, namespace string, log zerolog.Logger) *Manager {
	return &Manager{
		db:  db,
		key: Key(namespace),
		log: log.With().Str("component", "state").Logger(),
	}
}

func (m *Manager) Key() string {
	return m.key
}

func (m *Manager) DB() *sql.DB {
	return m.db
}

// Save writes s immediately, replacing any pending debounced save.
func (m *Manager) Save(s Serialized) error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	m.pending = nil
	m.gen++
	m.saveMu.Unlock()

	return m.write(s)
}

// SaveDebounced schedules s to be written after a short quiet period.
// Bursts of calls result in a single write of the latest snapshot.
func (m *Manager) SaveDebounced(s Serialized) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending = &s
	m.gen++
	gen := m.gen

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		m.flushDebounced(gen)
	})
}

// flushDebounced writes the pending snapshot scheduled as generation gen,
// unless something newer was saved, scheduled or removed since.
func (m *Manager) flushDebounced(gen uint64) {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	m.saveMu.Lock()
	if m.gen != gen || m.pending == nil {
		m.saveMu.Unlock()
		return
	}
	pending := m.pending
	m.pending = nil
	m.saveMu.Unlock()

	if err := m.write(*pending); err != nil {
		m.log.Warn().Err(err).Msg("panel layout not saved")
	}
}

// Load reads the stored layout. It returns ErrNotFound when nothing is stored
// and a *CorruptDataError when the stored value cannot be decoded.
func (m *Manager) Load() (Serialized, error) {
	var value sql.NullString
	err := m.db.QueryRow(`SELECT value FROM kv_store WHERE key = ?`, m.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && !value.Valid) {
		return Serialized{}, ErrNotFound
	}
	if err != nil {
		return Serialized{}, fmt.Errorf("read %s: %w", m.key, err)
	}
	return Decode([]byte(dbutil.NullStringValue(value)))
}

// Remove deletes the stored layout and drops any pending save.
func (m *Manager) Remove() error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	m.pending = nil
	m.gen++
	m.saveMu.Unlock()

	_, err := m.db.Exec(`DELETE FROM kv_store WHERE key = ?`, m.key)
	return err
}

func (m *Manager) Close() error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	pending := m.pending
	m.pending = nil
	m.saveMu.Unlock()

	// Flush pending state
	if pending != nil {
		if err := m.write(*pending); err != nil {
			m.log.Warn().Err(err).Msg("pending panel layout lost on close")
		}
	}

	return m.db.Close()
}

func (m *Manager) write(s Serialized) error {
	data, err := s.Encode()
	if err != nil {
		return err
	}
	return dbutil.WithTx(m.db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO kv_store (key, value, updated_at)
			VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET
				value = excluded.value,
				updated_at = excluded.updated_at
		`, m.key, string(data), time.Now().Unix())
		return err
	})
}

func getDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}
