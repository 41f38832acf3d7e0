package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/baditaflorin/go_rtf_validation/internal/core/domain"
)

const defaultPath = "data/runs.db"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
	run_id     TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	model      TEXT NOT NULL,
	tolerance  REAL NOT NULL,
	passed     INTEGER NOT NULL,
	failed     INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS samples (
	run_id            TEXT NOT NULL REFERENCES runs(run_id),
	sample            TEXT NOT NULL,
	output_path       TEXT,
	valid             INTEGER NOT NULL,
	validation_reason TEXT NOT NULL,
	similarity        REAL NOT NULL,
	passed            INTEGER NOT NULL,
	error             TEXT,
	PRIMARY KEY (run_id, sample)
);
`

// Store wraps a SQLite DB holding harness run reports.
type Store struct {
	path string
	db   *sql.DB
}

// Open creates (if needed) and opens the SQLite database.
func Open(path string) (*Store, error) {
	if path == "" {
		path = defaultPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure data dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := ensureWAL(db); err != nil {
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	return &Store{path: path, db: db}, nil
}

func ensureWAL(db *sql.DB) error {
	const (
		maxAttempts = 5
		delay       = 200 * time.Millisecond
	)
	for i := 0; i < maxAttempts; i++ {
		if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			if strings.Contains(err.Error(), "database is locked") {
				time.Sleep(delay)
				continue
			}
			return err
		}
		return nil
	}
	return fmt.Errorf("database is locked after retries")
}

// Path returns the path backing the store.
func (s *Store) Path() string {
	return s.path
}

// Close closes the DB.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// CreateTables ensures the runs and samples tables exist.
func (s *Store) CreateTables(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, schemaSQL)
	return err
}

// SaveReport persists a run report and its per-sample rows in one
// transaction.
func (s *Store) SaveReport(ctx context.Context, report *domain.Report) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs(run_id, created_at, model, tolerance, passed, failed)
		 VALUES(?, ?, ?, ?, ?, ?)`,
		report.RunID,
		report.Timestamp.UTC().Format(time.RFC3339),
		report.Model,
		report.Tolerance,
		report.Passed,
		report.Failed,
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", report.RunID, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO samples(run_id, sample, output_path, valid, validation_reason, similarity, passed, error)
		 VALUES(?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare sample insert: %w", err)
	}
	defer stmt.Close()

	for _, sm := range report.Samples {
		if _, err := stmt.ExecContext(ctx,
			report.RunID, sm.Sample, sm.OutputPath,
			sm.Valid, sm.ValidationReason, sm.Similarity, sm.Passed, sm.Error,
		); err != nil {
			return fmt.Errorf("insert sample %s: %w", sm.Sample, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// RunSummary is one row of ListRuns.
type RunSummary struct {
	RunID     string
	CreatedAt time.Time
	Model     string
	Tolerance float64
	Passed    int
	Failed    int
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, created_at, model, tolerance, passed, failed
		 FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		var created string
		if err := rows.Scan(&r.RunID, &created, &r.Model, &r.Tolerance, &r.Passed, &r.Failed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, created); err == nil {
			r.CreatedAt = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Samples returns the per-sample rows of one run.
func (s *Store) Samples(ctx context.Context, runID string) ([]domain.SampleResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT sample, output_path, valid, validation_reason, similarity, passed, error
		 FROM samples WHERE run_id = ? ORDER BY sample`, runID)
	if err != nil {
		return nil, fmt.Errorf("query samples: %w", err)
	}
	defer rows.Close()

	var samples []domain.SampleResult
	for rows.Next() {
		var sm domain.SampleResult
		if err := rows.Scan(&sm.Sample, &sm.OutputPath, &sm.Valid, &sm.ValidationReason, &sm.Similarity, &sm.Passed, &sm.Error); err != nil {
			return nil, fmt.Errorf("scan sample: %w", err)
		}
		samples = append(samples, sm)
	}
	return samples, rows.Err()
}
