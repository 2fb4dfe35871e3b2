package store

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

// KeyPrefix namespaces every entry the planner writes to the kv table.
const KeyPrefix = "studyplanner_"

// Collection key suffixes.
const (
	KeyAssignments   = "assignments"
	KeySubjects      = "subjects"
	KeyStudySessions = "studySessions"
	KeyStudyGoals    = "studyGoals"
	KeySettings      = "settings"
)

var allKeys = []string{KeyAssignments, KeySubjects, KeyStudySessions, KeyStudyGoals, KeySettings}

// Store owns every planner collection. Reads and writes never return
// substrate errors; failures are logged and kept in LastError.
type Store struct {
	db  *sql.DB
	now func() time.Time

	// mu guards lastErr and onError; reads may run on concurrent tea.Cmds.
	mu      sync.Mutex
	lastErr error
	onError func(error)
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, now: time.Now}
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

func (s *Store) Close() error {
	return s.db.Close()
}

// WithClock replaces the clock used to stamp updatedAt on saved assignments.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// OnError registers fn to be called with every swallowed storage error.
func (s *Store) OnError(fn func(error)) {
	s.mu.Lock()
	s.onError = fn
	s.mu.Unlock()
}

// LastError reports the most recent swallowed storage error, or nil.
func (s *Store) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Store) fail(err error) {
	log.Printf("store: %v", err)

	s.mu.Lock()
	s.lastErr = err
	fn := s.onError
	s.mu.Unlock()

	if fn != nil {
		fn(err)
	}
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
	CREATE TABLE IF NOT EXISTS kv (
		key         TEXT PRIMARY KEY,
		value       TEXT NOT NULL,
		updated_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);
	`
	_, err := s.db.Exec(ddl)
	return err
}

// DefaultDBPath returns ~/.config/studyplanner/studyplanner.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "studyplanner", "studyplanner.db"), nil
}
