// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists the user's interests, liked papers, cached paper
// metadata, notes, reading lists and settings in a single SQLite database.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-sqlite3"
	log "github.com/sirupsen/logrus"

	"github.com/pdiddy/arxiv-explorer/pkg/types"
)

var (
	// ErrNotFound is returned when a looked-up record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when a record with the same unique key exists.
	ErrDuplicate = errors.New("already exists")
)

// DefaultPath is the database location used when none is configured.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "explorer.db"
	}
	return filepath.Join(home, ".config", "arxiv-explorer", "explorer.db")
}

// Store wraps the SQLite database. It is safe for concurrent use.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the database at cfg.Path and creates the schema if
// it does not exist.
func Open(cfg types.StoreConfig) (*Store, error) {
	path := cfg.Path
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	log.WithField("path", path).Debug("store opened")
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS preferred_categories (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			category TEXT UNIQUE NOT NULL,
			priority INTEGER NOT NULL DEFAULT 1,
			added_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS paper_interactions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			arxiv_id TEXT NOT NULL,
			interaction_type TEXT NOT NULL,
			created_at TEXT NOT NULL,
			UNIQUE(arxiv_id, interaction_type)
		)`,
		`CREATE TABLE IF NOT EXISTS keyword_interests (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			keyword TEXT UNIQUE NOT NULL,
			weight REAL NOT NULL DEFAULT 1.0,
			source TEXT NOT NULL DEFAULT 'explicit'
		)`,
		`CREATE TABLE IF NOT EXISTS papers (
			arxiv_id TEXT PRIMARY KEY NOT NULL,
			title TEXT NOT NULL,
			abstract TEXT NOT NULL,
			authors TEXT NOT NULL,
			categories TEXT NOT NULL,
			published TEXT NOT NULL,
			updated TEXT,
			pdf_url TEXT,
			cached_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS paper_notes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			arxiv_id TEXT NOT NULL,
			note_type TEXT NOT NULL DEFAULT 'general',
			content TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS reading_lists (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT UNIQUE NOT NULL,
			description TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS reading_list_papers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			list_id INTEGER NOT NULL REFERENCES reading_lists(id) ON DELETE CASCADE,
			arxiv_id TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'unread',
			position INTEGER NOT NULL DEFAULT 0,
			added_at TEXT NOT NULL,
			UNIQUE(list_id, arxiv_id)
		)`,
		`CREATE TABLE IF NOT EXISTS app_settings (
			key TEXT PRIMARY KEY NOT NULL,
			value TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_interactions_arxiv ON paper_interactions(arxiv_id)`,
		`CREATE INDEX IF NOT EXISTS idx_interactions_type ON paper_interactions(interaction_type)`,
		`CREATE INDEX IF NOT EXISTS idx_notes_arxiv ON paper_notes(arxiv_id)`,
		`CREATE INDEX IF NOT EXISTS idx_list_papers_list ON reading_list_papers(list_id)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_cached_at ON papers(cached_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

func (s *Store) timestamp() string {
	return formatTime(s.now())
}

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(v string) time.Time {
	if v == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}
	}
	return t
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
