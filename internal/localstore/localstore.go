// Package localstore keeps a SQLite snapshot of the profile so the app works
// offline and restarts instantly. The hosted store stays authoritative when
// reachable; this cache is the fallback and the only home of full day history.
package localstore

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// ErrNotFound indicates no snapshot exists for the requested user.
var ErrNotFound = errors.New("localstore: snapshot not found")

// Open opens the snapshot database at path, creating parent directories as
// needed. ":memory:" opens an in-memory database. Sets WAL mode and runs
// migrations.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	// Connection-level pragmas only apply to the connection that ran them;
	// the DSN form makes every pooled connection enforce foreign keys.
	dsn := path
	if path != ":memory:" {
		dsn = path + "?_pragma=foreign_keys(1)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == ":memory:" {
		// Each pooled connection would otherwise open its own empty database.
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE statements re-run on every open.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS profile_snapshots (
		id         TEXT PRIMARY KEY,
		data       TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS day_history (
		user_id    TEXT NOT NULL REFERENCES profile_snapshots(id) ON DELETE CASCADE,
		date       TEXT NOT NULL,
		day_number INTEGER NOT NULL,
		data       TEXT NOT NULL,
		PRIMARY KEY (user_id, date)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_day_history_user ON day_history(user_id)`,
}
