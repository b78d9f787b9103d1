// internal/history/history.go
//
// SQLite-backed record of finished solve runs and user accounts.
// Responsibilities:
//   - Opening the database with safe defaults (WAL, busy timeout,
//     foreign keys) and applying the idempotent schema.
//   - Recording solve runs (strategy, attempts, outcome) when a game
//     ends; live session state is never written here.
//   - User rows for the auth layer, plus per-user aggregates.
//
// Note: this assumes SQLite but keeps SQL portable where it can.

package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	username      TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	user_id     TEXT REFERENCES users(id),
	anonymous_id TEXT,
	language    TEXT NOT NULL,
	word_length INTEGER NOT NULL,
	strategy    TEXT NOT NULL DEFAULT 'max_info',
	attempts    INTEGER NOT NULL DEFAULT 0,
	solved      INTEGER NOT NULL DEFAULT 0,
	started_at  TEXT NOT NULL,
	finished_at TEXT
);

CREATE INDEX IF NOT EXISTS runs_user_idx ON runs(user_id, started_at);
`

// Store wraps the history database handle.
type Store struct {
	db *sql.DB
}

// Open opens (creating if missing) the SQLite database at dsn, sets
// pragmas, and applies the schema.
func Open(dsn string) (*Store, error) {
	// Ensure directory exists for ./data/solver.db, etc.
	if dir := filepath.Dir(dsn); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("history: mkdir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		return nil, fmt.Errorf("history: set pragmas: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("history: apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// Run is one recorded solve.
type Run struct {
	ID         string `json:"id"`
	UserID     string `json:"userId,omitempty"`
	AnonID     string `json:"-"`
	Language   string `json:"language"`
	WordLength int    `json:"wordLength"`
	Strategy   string `json:"strategy"`
	Attempts   int    `json:"attempts"`
	Solved     bool   `json:"solved"`
	StartedAt  string `json:"startedAt"`
	FinishedAt string `json:"finishedAt,omitempty"`
}

// StartRun inserts a run row for a fresh solve, owned either by a user
// or an anonymous cookie ID.
func (s *Store) StartRun(ctx context.Context, r Run) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, user_id, anonymous_id, language, word_length, strategy, attempts, solved, started_at)
		 VALUES (?,NULLIF(?,''),NULLIF(?,''),?,?,?,0,0,?)`,
		r.ID, r.UserID, r.AnonID, r.Language, r.WordLength, r.Strategy, now())
	return err
}

// BumpAttempts increments the attempt counter of a run.
func (s *Store) BumpAttempts(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE runs SET attempts = attempts + 1 WHERE id=?`, id)
	return err
}

// FinishRun marks a run finished with its outcome.
func (s *Store) FinishRun(ctx context.Context, id string, solved bool) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE runs SET solved=?, finished_at=? WHERE id=?`, boolInt(solved), now(), id)
	return err
}

// RunsForUser returns a user's most recent runs, newest first.
func (s *Store) RunsForUser(ctx context.Context, userID string, limit int) ([]Run, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, language, word_length, strategy, attempts, solved, started_at, COALESCE(finished_at,'')
		 FROM runs WHERE user_id=? ORDER BY started_at DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Run{}
	for rows.Next() {
		var r Run
		var solved int
		if err := rows.Scan(&r.ID, &r.Language, &r.WordLength, &r.Strategy,
			&r.Attempts, &solved, &r.StartedAt, &r.FinishedAt); err != nil {
			return nil, err
		}
		r.UserID = userID
		r.Solved = solved == 1
		out = append(out, r)
	}
	return out, rows.Err()
}

// Aggregate summarizes a user's finished runs.
type Aggregate struct {
	Runs        int     `json:"runs"`
	Solved      int     `json:"solved"`
	AvgAttempts float64 `json:"avgAttempts"`
}

// AggregateForUser computes run/solve counts and the average attempts
// over finished runs.
func (s *Store) AggregateForUser(ctx context.Context, userID string) (Aggregate, error) {
	var a Aggregate
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1),
		        COALESCE(SUM(solved),0),
		        COALESCE(AVG(attempts),0)
		 FROM runs WHERE user_id=? AND finished_at IS NOT NULL`, userID).
		Scan(&a.Runs, &a.Solved, &a.AvgAttempts)
	return a, err
}

// ClaimAnonRuns transfers anonymous runs to a user account after
// signup/login.
func (s *Store) ClaimAnonRuns(ctx context.Context, anonID, userID string) error {
	if anonID == "" || userID == "" {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE runs SET user_id=?, anonymous_id=NULL WHERE anonymous_id=?`, userID, anonID)
	return err
}

func now() string { return time.Now().UTC().Format(time.RFC3339) }

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
