// Package store persists whole JSON collections under string keys in an
// embedded SQLite database. It is deliberately forgiving: a missing or
// corrupt value loads as the caller's default, and a failed write is
// swallowed so the in-memory state stays authoritative for the session.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

// Open creates or opens the database at path and ensures the kv table
// exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating kv table: %w", err)
	}

	// Single-user tool; one connection avoids writer contention entirely.
	db.SetMaxOpenConns(1)

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}

	return s.db.Close()
}

// Load reads the value saved under key into dst. It returns false and
// leaves dst untouched when the key is absent or its value does not
// deserialize; corrupt data is treated as absence, never as an error.
// A nil store loads nothing.
func (s *Store) Load(key string, dst any) bool {
	if s == nil || s.db == nil {
		return false
	}

	var raw string

	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&raw)
	if err != nil {
		return false
	}

	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		slog.Debug("discarding corrupt value", "key", key, "error", err)
		return false
	}

	return true
}

// Save serializes v and upserts it under key. Failures are logged at
// debug level and otherwise swallowed.
func (s *Store) Save(key string, v any) {
	if s == nil || s.db == nil {
		return
	}

	raw, err := json.Marshal(v)
	if err != nil {
		slog.Debug("marshal failed", "key", key, "error", err)
		return
	}

	_, err = s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		key, string(raw),
	)
	if err != nil {
		slog.Debug("write failed", "key", key, "error", err)
	}
}
