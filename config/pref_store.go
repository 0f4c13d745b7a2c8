package config

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // register sqlite driver

	"github.com/kastheco/codex/log"
)

const themeKey = "theme"

const prefSchema = `
CREATE TABLE IF NOT EXISTS preferences (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
`

// PrefStore persists small user preferences.
type PrefStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Close() error
}

// SQLitePrefStore is a PrefStore backed by a SQLite database.
type SQLitePrefStore struct {
	db *sql.DB
}

// NewSQLitePrefStore opens (or creates) a SQLite database at dbPath and
// runs schema migrations. Use ":memory:" for an in-memory database (useful in tests).
func NewSQLitePrefStore(dbPath string) (*SQLitePrefStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("set WAL mode: %w", err)
		}
	}

	if _, err := db.Exec(prefSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("run schema migrations: %w", err)
	}

	return &SQLitePrefStore{db: db}, nil
}

// Close releases the database connection.
func (s *SQLitePrefStore) Close() error {
	return s.db.Close()
}

// Get returns the value stored under key.
func (s *SQLitePrefStore) Get(key string) (string, bool, error) {
	const q = `SELECT value FROM preferences WHERE key = ?`
	var v string
	err := s.db.QueryRow(q, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read preference %s: %w", key, err)
	}
	return v, true, nil
}

// Set stores value under key, replacing any previous value.
func (s *SQLitePrefStore) Set(key, value string) error {
	const q = `INSERT OR REPLACE INTO preferences (key, value, updated_at) VALUES (?, ?, ?)`
	if _, err := s.db.Exec(q, key, value, time.Now().UTC().Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("write preference %s: %w", key, err)
	}
	return nil
}

// LoadTheme returns the stored theme, or DefaultTheme when nothing valid is
// stored.
func LoadTheme(store PrefStore) Theme {
	if store == nil {
		return DefaultTheme
	}
	v, ok, err := store.Get(themeKey)
	if err != nil {
		log.WarningLog.Printf("failed to load theme: %v", err)
		return DefaultTheme
	}
	if !ok {
		return DefaultTheme
	}
	t, ok := ParseTheme(v)
	if !ok {
		log.WarningLog.Printf("ignoring unknown theme %q", v)
		return DefaultTheme
	}
	return t
}

// SaveTheme persists t.
func SaveTheme(store PrefStore, t Theme) error {
	if store == nil {
		return nil
	}
	return store.Set(themeKey, string(t))
}
