// Package audit keeps a local history of trial changes in SQLite.
//
// The history is informational only. The settings file stays the single
// source of truth for the trial; nothing reads the history back into it.
package audit

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultRetentionDays is used when NewStore is given a non-positive value.
const DefaultRetentionDays = 365

// Record is one entry in the trial history.
type Record struct {
	ID              int64     `json:"id"`
	Timestamp       time.Time `json:"timestamp"`
	Action          string    `json:"action"`
	Source          string    `json:"source"`
	InstallDate     time.Time `json:"install_date,omitzero"`
	ExpirationDate  time.Time `json:"expiration_date,omitzero"`
	TrialPeriodDays int       `json:"trial_period_days"`
	Delta           int       `json:"delta,omitempty"`
	Detail          string    `json:"detail,omitempty"`
}

// Store provides persistent storage for history records.
type Store struct {
	mu            sync.RWMutex
	db            *sql.DB
	retentionDays int
}

// NewStore opens (creating if needed) the history database at dbPath.
func NewStore(dbPath string, retentionDays int) (*Store, error) {
	dsn := dbPath
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
		// Several apptrial processes may share the file.
		dsn = dbPath + "?_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	// One connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS trial_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			ts INTEGER NOT NULL,
			action TEXT NOT NULL,
			source TEXT NOT NULL DEFAULT '',
			install_date TEXT,
			expiration_date TEXT,
			period_days INTEGER NOT NULL DEFAULT 0,
			delta INTEGER NOT NULL DEFAULT 0,
			detail TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_trial_history_ts ON trial_history(ts);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create history table: %w", err)
	}

	if retentionDays <= 0 {
		retentionDays = DefaultRetentionDays
	}

	return &Store{
		db:            db,
		retentionDays: retentionDays,
	}, nil
}

func formatTime(t time.Time) sql.NullString {
	if t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(time.RFC3339Nano), Valid: true}
}

func parseTime(s sql.NullString) (time.Time, error) {
	if !s.Valid || s.String == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, s.String)
}

// Write persists a record. ID is assigned by the database.
func (s *Store) Write(r Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO trial_history (ts, action, source, install_date, expiration_date, period_days, delta, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, r.Timestamp.UnixNano(), r.Action, r.Source,
		formatTime(r.InstallDate), formatTime(r.ExpirationDate),
		r.TrialPeriodDays, r.Delta, r.Detail)
	if err != nil {
		return fmt.Errorf("insert history record: %w", err)
	}
	return nil
}

// Query returns up to limit records, newest first. limit <= 0 returns all.
func (s *Store) Query(limit int) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, ts, action, source, install_date, expiration_date, period_days, delta, detail
		FROM trial_history ORDER BY ts DESC, id DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			r                 Record
			ts                int64
			installed, expiry sql.NullString
			detail            sql.NullString
		)
		if err := rows.Scan(&r.ID, &ts, &r.Action, &r.Source, &installed, &expiry,
			&r.TrialPeriodDays, &r.Delta, &detail); err != nil {
			return nil, fmt.Errorf("scan history record: %w", err)
		}

		r.Timestamp = time.Unix(0, ts).UTC()
		if r.InstallDate, err = parseTime(installed); err != nil {
			return nil, fmt.Errorf("history record %d: %w", r.ID, err)
		}
		if r.ExpirationDate, err = parseTime(expiry); err != nil {
			return nil, fmt.Errorf("history record %d: %w", r.ID, err)
		}
		r.Detail = detail.String

		records = append(records, r)
	}

	return records, rows.Err()
}

// Prune removes records older than the retention period, measured from now.
func (s *Store) Prune(now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := now.AddDate(0, 0, -s.retentionDays)
	result, err := s.db.Exec("DELETE FROM trial_history WHERE ts < ?", cutoff.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("prune history: %w", err)
	}
	return result.RowsAffected()
}

// Count returns the total number of records in the store.
func (s *Store) Count() (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	err := s.db.QueryRow("SELECT COUNT(*) FROM trial_history").Scan(&count)
	return count, err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
