// Package history handles SQLite persistence of completed sessions.
package history

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"wordquiz/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for the session history log.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS history (
			id INTEGER PRIMARY KEY,
			timestamp TEXT NOT NULL,
			mode TEXT NOT NULL,
			word_count INTEGER NOT NULL,
			correct INTEGER NOT NULL,
			incorrect INTEGER NOT NULL,
			accuracy INTEGER NOT NULL,
			with_hints INTEGER NOT NULL,
			total_hints_used INTEGER NOT NULL,
			timeout_count INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_history_timestamp ON history(timestamp);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// NewEntry builds a history entry for a completed session, stamped now.
func NewEntry(mode model.Mode, stats model.SessionStats) model.HistoryEntry {
	now := time.Now()
	return model.HistoryEntry{
		ID:             now.UnixMilli(),
		Timestamp:      now,
		Mode:           mode,
		WordCount:      stats.Total,
		Correct:        stats.Correct,
		Incorrect:      stats.Incorrect,
		Accuracy:       stats.Accuracy,
		WithHints:      stats.WithHints,
		TotalHintsUsed: stats.TotalHintsUsed,
		TimeoutCount:   stats.TimeoutCount,
	}
}

// Append stores one completed session.
func (s *Store) Append(ctx context.Context, entry model.HistoryEntry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO history (id, timestamp, mode, word_count, correct, incorrect, accuracy, with_hints, total_hints_used, timeout_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.Timestamp.Format(time.RFC3339Nano),
		string(entry.Mode),
		entry.WordCount,
		entry.Correct,
		entry.Incorrect,
		entry.Accuracy,
		entry.WithHints,
		entry.TotalHintsUsed,
		entry.TimeoutCount,
	)
	return err
}

// List returns all entries, newest first. Limit 0 returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]model.HistoryEntry, error) {
	query := `SELECT id, timestamp, mode, word_count, correct, incorrect, accuracy, with_hints, total_hints_used, timeout_count
		FROM history
		ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var entries []model.HistoryEntry
	for rows.Next() {
		var entry model.HistoryEntry
		var timestamp, mode string
		if err := rows.Scan(&entry.ID, &timestamp, &mode, &entry.WordCount, &entry.Correct, &entry.Incorrect,
			&entry.Accuracy, &entry.WithHints, &entry.TotalHintsUsed, &entry.TimeoutCount); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, timestamp)
		if err != nil {
			return nil, err
		}
		entry.Timestamp = parsed
		entry.Mode = model.Mode(mode)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Clear removes the whole history log.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM history`)
	return err
}
