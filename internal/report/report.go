// Package report is the SQLite session log for rhythm reprocessing: one row
// per applied edit batch or score refinement, used for reporting and
// telemetry. The score model itself is never persisted here.
package report

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store is the SQLite data access layer for the session log.
type Store struct {
	db *sql.DB
}

// Open opens a SQLite database at dbPath with WAL mode enabled.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate creates the runs table. Idempotent.
func (s *Store) Migrate() error {
	if _, err := s.db.Exec(schemaDDL); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS runs (
  id           INTEGER PRIMARY KEY,
  batch_id     TEXT NOT NULL,
  mode         TEXT NOT NULL,
  whole_page   INTEGER NOT NULL,
  stack_count  INTEGER NOT NULL,
  swaps        INTEGER NOT NULL,
  duration_ms  INTEGER NOT NULL,
  created_at   TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_batch ON runs(batch_id);
`

// Run is one recorded reprocessing pass.
type Run struct {
	ID        int64
	BatchID   string
	Mode      string
	WholePage bool
	Stacks    int
	Swaps     int
	Duration  time.Duration
	CreatedAt time.Time
}

// InsertRun records a run and returns its row ID.
func (s *Store) InsertRun(r *Run) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO runs (batch_id, mode, whole_page, stack_count, swaps, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.BatchID, r.Mode, r.WholePage, r.Stacks, r.Swaps,
		r.Duration.Milliseconds(), r.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert run: last id: %w", err)
	}
	r.ID = id
	return id, nil
}

// Runs returns the most recent runs, newest first, up to limit.
func (s *Store) Runs(limit int) ([]*Run, error) {
	rows, err := s.db.Query(
		`SELECT id, batch_id, mode, whole_page, stack_count, swaps, duration_ms, created_at
		 FROM runs ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		r := &Run{}
		var ms int64
		if err := rows.Scan(&r.ID, &r.BatchID, &r.Mode, &r.WholePage,
			&r.Stacks, &r.Swaps, &ms, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("list runs: scan: %w", err)
		}
		r.Duration = time.Duration(ms) * time.Millisecond
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
