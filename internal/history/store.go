// internal/history/store.go
//
// Journal of finished game sessions. One row per session, written when the
// connection ends. This is an outcome log for diagnostics; nothing here is
// ever used to resume a game.

package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Outcome values stored in the journal.
const (
	OutcomeWon       = "won"
	OutcomeLost      = "lost"
	OutcomeAbandoned = "abandoned"
)

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Result is one finished session.
type Result struct {
	SessionID  string    `json:"sessionId"`
	Remote     string    `json:"remote"`
	Answer     string    `json:"answer"`
	Attempts   int       `json:"attempts"`
	Outcome    string    `json:"outcome"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

// Store wraps the journal database.
type Store struct{ db *sql.DB }

// Open opens or creates the journal at path and applies migrations.
func Open(path string) (*Store, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// Insert records r. A second insert for the same session is ignored; any
// other constraint violation is an error.
func (s *Store) Insert(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO session_results
            (session_id, remote, answer, attempts, outcome, started_at, finished_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(session_id) DO NOTHING`,
		r.SessionID, r.Remote, r.Answer, r.Attempts, r.Outcome,
		r.StartedAt.UTC().Format(timeLayout), r.FinishedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert result %s: %w", r.SessionID, err)
	}
	return nil
}

// Recent returns up to limit results, newest first. Default limit is 20.
func (s *Store) Recent(ctx context.Context, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT session_id, remote, answer, attempts, outcome, started_at, finished_at
        FROM session_results
        ORDER BY finished_at DESC, session_id ASC
        LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Result, 0, limit)
	for rows.Next() {
		var r Result
		var started, finished string
		if err := rows.Scan(&r.SessionID, &r.Remote, &r.Answer, &r.Attempts, &r.Outcome, &started, &finished); err != nil {
			return nil, err
		}
		r.StartedAt = mustParse(started)
		r.FinishedAt = mustParse(finished)
		out = append(out, r)
	}
	return out, rows.Err()
}

// mustParse parses stored timestamps; on error returns zero time.
func mustParse(s string) time.Time {
	t, _ := time.Parse(timeLayout, s)
	return t
}
