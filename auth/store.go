package auth

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // register sqlite driver
)

// SessionStore persists the session between runs. Load returns (nil, nil)
// when nothing is stored.
type SessionStore interface {
	Load() (*Session, error)
	Save(s *Session) error
	Clear() error
}

const sessionSchema = `
CREATE TABLE IF NOT EXISTS auth_session (
	id            INTEGER PRIMARY KEY CHECK (id = 1),
	access_token  TEXT NOT NULL,
	refresh_token TEXT NOT NULL DEFAULT '',
	expires_at    TEXT NOT NULL DEFAULT '',
	user_id       TEXT NOT NULL,
	email         TEXT NOT NULL DEFAULT '',
	updated_at    TEXT NOT NULL
);
`

// SQLiteSessionStore keeps a single session row in a SQLite database.
type SQLiteSessionStore struct {
	db *sql.DB
}

// NewSQLiteSessionStore opens (or creates) the database at dbPath. Use
// ":memory:" for an in-memory database (useful in tests).
func NewSQLiteSessionStore(dbPath string) (*SQLiteSessionStore, error) {
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

	if _, err := db.Exec(sessionSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("run session schema: %w", err)
	}
	return &SQLiteSessionStore{db: db}, nil
}

// Load returns the stored session.
func (s *SQLiteSessionStore) Load() (*Session, error) {
	const q = `SELECT access_token, refresh_token, expires_at, user_id, email FROM auth_session WHERE id = 1`
	var sess Session
	var expires string
	err := s.db.QueryRow(q).Scan(&sess.AccessToken, &sess.RefreshToken, &expires, &sess.User.ID, &sess.User.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if expires != "" {
		t, err := time.Parse(time.RFC3339Nano, expires)
		if err != nil {
			return nil, fmt.Errorf("parse session expiry: %w", err)
		}
		sess.ExpiresAt = t
	}
	return &sess, nil
}

// Save replaces the stored session.
func (s *SQLiteSessionStore) Save(sess *Session) error {
	if !sess.Valid() {
		return errors.New("refusing to store a session without a user id")
	}
	const q = `INSERT OR REPLACE INTO auth_session
		(id, access_token, refresh_token, expires_at, user_id, email, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?)`
	expires := ""
	if !sess.ExpiresAt.IsZero() {
		expires = sess.ExpiresAt.UTC().Format(time.RFC3339Nano)
	}
	_, err := s.db.Exec(q,
		sess.AccessToken,
		sess.RefreshToken,
		expires,
		sess.User.ID,
		sess.User.Email,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Clear removes the stored session.
func (s *SQLiteSessionStore) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM auth_session`); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Close releases the database connection.
func (s *SQLiteSessionStore) Close() error {
	return s.db.Close()
}

// MemoryStore keeps the session in process memory only.
type MemoryStore struct {
	mu   sync.Mutex
	sess *Session
}

func (m *MemoryStore) Load() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sess == nil {
		return nil, nil
	}
	cp := *m.sess
	return &cp, nil
}

func (m *MemoryStore) Save(s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.sess = &cp
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = nil
	return nil
}
