// Package history keeps an append-only journal of rule preference changes
// in a local SQLite database.
//
// The journal is best-effort: the engine records into it after each
// mutation but never fails a mutation on a journal error.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/ruffctl/ruffctl/internal/engine"
)

// Store provides SQLite-based change history storage.
type Store struct {
	db    *sql.DB
	runID string
}

// StoreConfig configures the history store.
type StoreConfig struct {
	// Path is the SQLite database file path
	Path string
}

// NewStore creates a new history store. Each open store gets a fresh run id
// so changes from one invocation can be grouped together.
func NewStore(cfg StoreConfig) (*Store, error) {
	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	store := &Store{db: db, runID: uuid.New().String()}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return store, nil
}

// migrate runs database migrations.
func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS changes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			rule_code TEXT NOT NULL,
			enabled BOOLEAN NOT NULL,
			ignore_reason TEXT,
			changed_at DATETIME NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_changes_rule ON changes(rule_code)`,
		`CREATE INDEX IF NOT EXISTS idx_changes_run ON changes(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_changes_changed ON changes(changed_at)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

// Compile-time interface check.
var _ engine.Journal = (*Store)(nil)

// Record appends one change to the journal.
func (s *Store) Record(ctx context.Context, change engine.Change) error {
	query := `INSERT INTO changes (run_id, rule_code, enabled, ignore_reason, changed_at)
		VALUES (?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		s.runID, change.RuleCode, change.Enabled, change.IgnoreReason,
		change.ChangedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("inserting change: %w", err)
	}
	return nil
}

// Recent returns the most recent changes, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]ChangeRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT id, run_id, rule_code, enabled, ignore_reason, changed_at
		FROM changes ORDER BY id DESC LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying changes: %w", err)
	}
	defer rows.Close()

	return scanChanges(rows)
}

// ForRule returns the most recent changes for one rule, newest first.
func (s *Store) ForRule(ctx context.Context, code string, limit int) ([]ChangeRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT id, run_id, rule_code, enabled, ignore_reason, changed_at
		FROM changes WHERE rule_code = ? ORDER BY id DESC LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, code, limit)
	if err != nil {
		return nil, fmt.Errorf("querying changes for %s: %w", code, err)
	}
	defer rows.Close()

	return scanChanges(rows)
}

func scanChanges(rows *sql.Rows) ([]ChangeRecord, error) {
	var records []ChangeRecord
	for rows.Next() {
		var rec ChangeRecord
		var reason sql.NullString
		var changedAt string
		if err := rows.Scan(&rec.ID, &rec.RunID, &rec.RuleCode, &rec.Enabled, &reason, &changedAt); err != nil {
			return nil, fmt.Errorf("scanning change: %w", err)
		}
		rec.IgnoreReason = reason.String
		if ts, err := time.Parse(time.RFC3339Nano, changedAt); err == nil {
			rec.ChangedAt = ts
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// RunID returns this store's run identifier.
func (s *Store) RunID() string { return s.runID }

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}
