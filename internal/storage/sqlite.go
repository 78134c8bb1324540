package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

type sqliteSlot struct {
	db *sqlx.DB
}

// OpenSQLite opens (creating if needed) the local SQLite file backing the
// persistence slots and bootstraps its schema.
func OpenSQLite(path string) (Slot, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open slot storage: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open slot storage: %w", err)
	}

	schema := `
CREATE TABLE IF NOT EXISTS slots(
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create slot schema: %w", err)
	}

	return &sqliteSlot{db: db}, nil
}

func (s *sqliteSlot) Read(key string) ([]byte, bool, error) {
	var value string
	err := s.db.Get(&value, `SELECT value FROM slots WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read slot %q: %w", key, err)
	}
	return []byte(value), true, nil
}

func (s *sqliteSlot) Write(key string, value []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO slots(key, value, updated_at) VALUES(?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, string(value), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to write slot %q: %w", key, err)
	}
	return nil
}

func (s *sqliteSlot) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM slots WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete slot %q: %w", key, err)
	}
	return nil
}

func (s *sqliteSlot) Close() error {
	return s.db.Close()
}
