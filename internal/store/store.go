// Package store is the SQLite persistence collaborator. The planner core
// owns the in-memory state; this package only mirrors mutations to disk
// and hands the full snapshot back on startup.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

// Open opens the database at dbPath, recovering from an unreadable file by
// moving it aside once and starting fresh. A nil store means persistence
// is unavailable for this run; the non-empty warning says why. Open never
// fails hard.
func Open(dbPath string) (*Store, string) {
	s, err := New(dbPath)
	if err == nil {
		return s, ""
	}

	aside := fmt.Sprintf("%s.corrupt-%s", dbPath, time.Now().UTC().Format("20060102150405"))
	if mvErr := os.Rename(dbPath, aside); mvErr != nil {
		return nil, fmt.Sprintf("database unusable (%v); running without persistence", err)
	}
	s, retryErr := New(dbPath)
	if retryErr != nil {
		return nil, fmt.Sprintf("database unusable even after reset (%v); running without persistence", retryErr)
	}
	return s, fmt.Sprintf("database was unreadable (%v); moved aside to %s and started fresh", err, aside)
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS entries (
		id             TEXT PRIMARY KEY,
		title          TEXT NOT NULL,
		start_time     TEXT NOT NULL,
		end_time       TEXT NOT NULL,
		color          TEXT NOT NULL DEFAULT 'blue',
		notes          TEXT NOT NULL DEFAULT '',
		tag            TEXT NOT NULL DEFAULT '',
		project        TEXT NOT NULL DEFAULT '',
		status         TEXT NOT NULL DEFAULT 'todo',
		assignee       TEXT NOT NULL DEFAULT '',
		parent_id      TEXT NOT NULL DEFAULT '',
		recur_freq     TEXT NOT NULL DEFAULT '',
		recur_interval INTEGER NOT NULL DEFAULT 0,
		recur_weekdays TEXT NOT NULL DEFAULT '',
		recur_until    TEXT,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_entries_start ON entries(start_time);
	CREATE INDEX IF NOT EXISTS idx_entries_tag   ON entries(tag);

	CREATE TABLE IF NOT EXISTS sessions (
		id               TEXT PRIMARY KEY,
		start_time       TEXT NOT NULL,
		end_time         TEXT,
		mode             TEXT NOT NULL DEFAULT 'focus',
		duration_seconds INTEGER NOT NULL DEFAULT 0,
		linked_entry_id  TEXT NOT NULL DEFAULT '',
		notes            TEXT NOT NULL DEFAULT '',
		completed        INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_entry ON sessions(linked_entry_id);

	CREATE TABLE IF NOT EXISTS notes (
		id        TEXT PRIMARY KEY,
		note_date TEXT NOT NULL,
		title     TEXT NOT NULL,
		content   TEXT NOT NULL DEFAULT '',
		tags      TEXT NOT NULL DEFAULT '',
		project   TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS tags (
		name TEXT PRIMARY KEY
	);

	CREATE TABLE IF NOT EXISTS projects (
		name     TEXT PRIMARY KEY,
		hint_tag TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS health_metrics (
		day          TEXT PRIMARY KEY,
		steps        INTEGER NOT NULL DEFAULT 0,
		calories     INTEGER NOT NULL DEFAULT 0,
		sleep_start  TEXT,
		sleep_end    TEXT,
		weight_kg    REAL NOT NULL DEFAULT 0,
		body_fat_pct REAL NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	INSERT OR IGNORE INTO settings (key, value) VALUES
		('focus_seconds',   '1500'),
		('break_seconds',   '300'),
		('week_start',      'monday'),
		('daily_step_goal', '8000');
	`
	_, err := s.db.Exec(ddl)
	return err
}

// DefaultDBPath returns ~/.config/dayplan/dayplan.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "dayplan", "dayplan.db"), nil
}
