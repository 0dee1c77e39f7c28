// Package storage provides SQLite-based persistence for the snack ledger.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for ledger persistence.
type Store struct {
	db *sql.DB
}

// Stats are lifetime counters kept next to the snack balance.
type Stats struct {
	TotalClicks       int
	TotalFeedings     int
	PeakSnacks        int
	SessionPlaytimeMs int64
}

// SaveData is the full persisted ledger.
type SaveData struct {
	Snacks    int
	Stats     Stats
	UpdatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// One writer keeps the read-modify-write statements below serialized.
	db.SetMaxOpenConns(1)

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS ledger (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			snacks INTEGER NOT NULL DEFAULT 0 CHECK (snacks >= 0),
			total_clicks INTEGER NOT NULL DEFAULT 0,
			total_feedings INTEGER NOT NULL DEFAULT 0,
			peak_snacks INTEGER NOT NULL DEFAULT 0,
			session_playtime_ms INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		INSERT OR IGNORE INTO ledger (id) VALUES (1);

		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			host TEXT NOT NULL,
			user TEXT NOT NULL DEFAULT '',
			duration_ms INTEGER NOT NULL DEFAULT 0,
			clicks INTEGER NOT NULL DEFAULT 0,
			feedings INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_created ON sessions(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load returns the persisted ledger.
func (s *Store) Load() (SaveData, error) {
	var (
		data      SaveData
		updatedAt any
	)
	err := s.db.QueryRow(
		`SELECT snacks, total_clicks, total_feedings, peak_snacks, session_playtime_ms, updated_at
		 FROM ledger WHERE id = 1`,
	).Scan(
		&data.Snacks,
		&data.Stats.TotalClicks,
		&data.Stats.TotalFeedings,
		&data.Stats.PeakSnacks,
		&data.Stats.SessionPlaytimeMs,
		&updatedAt,
	)
	if err != nil {
		return SaveData{}, fmt.Errorf("storage: cannot load ledger: %w", err)
	}
	data.UpdatedAt = parseTime(updatedAt)
	return data, nil
}

// AddSnacks credits n snacks, counting one click, and returns the new balance.
func (s *Store) AddSnacks(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("storage: cannot add %d snacks", n)
	}

	var snacks int
	err := s.db.QueryRow(
		`UPDATE ledger SET
			snacks = snacks + ?1,
			total_clicks = total_clicks + 1,
			peak_snacks = MAX(peak_snacks, snacks + ?1),
			updated_at = CURRENT_TIMESTAMP
		 WHERE id = 1
		 RETURNING snacks`,
		n,
	).Scan(&snacks)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot add snacks: %w", err)
	}
	return snacks, nil
}

// SpendSnacks debits n snacks if the balance allows it, counting one feeding.
// ok is false and nothing changes when the balance is too low.
func (s *Store) SpendSnacks(n int) (snacks int, ok bool, err error) {
	if n <= 0 {
		return 0, false, fmt.Errorf("storage: cannot spend %d snacks", n)
	}

	err = s.db.QueryRow(
		`UPDATE ledger SET
			snacks = snacks - ?1,
			total_feedings = total_feedings + 1,
			updated_at = CURRENT_TIMESTAMP
		 WHERE id = 1 AND snacks >= ?1
		 RETURNING snacks`,
		n,
	).Scan(&snacks)

	if err == sql.ErrNoRows {
		data, lerr := s.Load()
		if lerr != nil {
			return 0, false, lerr
		}
		return data.Snacks, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot spend snacks: %w", err)
	}
	return snacks, true, nil
}

// AddPlaytime adds elapsed session time to the lifetime counter.
func (s *Store) AddPlaytime(d time.Duration) error {
	if d <= 0 {
		return nil
	}
	_, err := s.db.Exec(
		`UPDATE ledger SET session_playtime_ms = session_playtime_ms + ?, updated_at = CURRENT_TIMESTAMP WHERE id = 1`,
		d.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot add playtime: %w", err)
	}
	return nil
}

// ImportSave replaces the ledger with data, e.g. from a legacy save file.
func (s *Store) ImportSave(data SaveData) error {
	if err := data.Validate(); err != nil {
		return err
	}

	_, err := s.db.Exec(
		`UPDATE ledger SET
			snacks = ?, total_clicks = ?, total_feedings = ?, peak_snacks = ?,
			session_playtime_ms = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = 1`,
		data.Snacks,
		data.Stats.TotalClicks,
		data.Stats.TotalFeedings,
		data.Stats.PeakSnacks,
		data.Stats.SessionPlaytimeMs,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot import save: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetime columns.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
