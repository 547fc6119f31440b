package prefs

import (
	"database/sql"
	"encoding/json"
	"errors"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// prefsKey is the single well-known storage key the engine owns.
const prefsKey = "prefs:accessibility"

// Store persists preferences in a local sqlite database.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, err
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS preferences (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`

	_, err := s.db.Exec(schema)
	return err
}

// Load reads the stored record. A user that never saved anything gets
// Defaults back, not an error.
func (s *Store) Load() (Preferences, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var blob string
	err := s.db.QueryRow("SELECT value FROM preferences WHERE key = ?", prefsKey).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return Defaults(), nil
	}
	if err != nil {
		return Defaults(), err
	}

	p := Defaults()
	if err := json.Unmarshal([]byte(blob), &p); err != nil {
		return Defaults(), err
	}
	return p, nil
}

// Save replaces the stored record with p.
func (s *Store) Save(p Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := json.Marshal(p)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(
		"INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?) "+
			"ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at",
		prefsKey, string(blob), time.Now().UTC(),
	)
	return err
}

// Reset deletes the stored record so the next Load returns Defaults.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM preferences WHERE key = ?", prefsKey)
	return err
}

func (s *Store) Close() error {
	if _, err := s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		// Checkpoint failure is not critical - DB will close normally even if truncation fails
	}
	return s.db.Close()
}
