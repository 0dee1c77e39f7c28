package storage

import (
	"fmt"
	"time"
)

// SessionEntry records one pet session, local or over SSH.
type SessionEntry struct {
	ID        int64
	Host      string // "terminal" or "ssh"
	User      string
	Duration  time.Duration
	Clicks    int
	Feedings  int
	CreatedAt time.Time
}

// SaveSession records a finished session.
// Returns the ID of the inserted record.
func (s *Store) SaveSession(e SessionEntry) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO sessions (host, user, duration_ms, clicks, feedings) VALUES (?, ?, ?, ?, ?)",
		e.Host, e.User, e.Duration.Milliseconds(), e.Clicks, e.Feedings,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentSessions retrieves the most recent sessions, newest first.
func (s *Store) RecentSessions(limit int) ([]SessionEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, host, user, duration_ms, clicks, feedings, created_at
		 FROM sessions
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var entries []SessionEntry
	for rows.Next() {
		var (
			e          SessionEntry
			durationMs int64
			createdAt  any
		)
		if err := rows.Scan(&e.ID, &e.Host, &e.User, &durationMs, &e.Clicks, &e.Feedings, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Duration = time.Duration(durationMs) * time.Millisecond
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}
