package genlog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"iconmill/internal/paths"
)

// SQLiteStore implements Store using a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (or creates) a SQLite database at path, creates
// the schema, and performs one-time migration from iconmill.log if it
// exists in the same directory.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), paths.DirPerm); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Set PRAGMAs before any DDL.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite pragma: %w", err)
	}

	ddl := `
CREATE TABLE IF NOT EXISTS runs (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    timestamp   TEXT    NOT NULL,
    source      TEXT    NOT NULL DEFAULT '',
    outputs     INTEGER NOT NULL DEFAULT 0,
    warnings    INTEGER NOT NULL DEFAULT 0,
    duration_ms INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp DESC);
`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}

	s := &SQLiteStore{db: db, path: path}

	// One-time migration from flat file.
	logPath := filepath.Join(filepath.Dir(path), paths.LogFileName)
	if _, err := os.Stat(logPath); err == nil {
		if err := s.migrateFromFile(logPath); err != nil {
			fmt.Fprintf(os.Stderr, "genlog: migration: %v\n", err)
		}
	}

	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Log(e Entry) error {
	ts := e.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := s.db.Exec(
		`INSERT INTO runs (timestamp, source, outputs, warnings, duration_ms) VALUES (?, ?, ?, ?, ?)`,
		ts.Format(time.RFC3339), e.Source, e.Outputs, e.Warnings, e.Duration.Milliseconds(),
	)
	return err
}

func (s *SQLiteStore) Entries(days int) ([]Entry, error) {
	query := `SELECT timestamp, source, outputs, warnings, duration_ms FROM runs`
	var args []any
	if days > 0 {
		query += ` WHERE timestamp >= ?`
		args = append(args, DayCutoff(days).Format(time.RFC3339))
	}
	query += ` ORDER BY id`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var tsStr, source string
		var outputs, warnings int
		var durationMS int64
		if err := rows.Scan(&tsStr, &source, &outputs, &warnings, &durationMS); err != nil {
			return nil, err
		}
		ts, err := time.Parse(time.RFC3339, tsStr)
		if err != nil {
			continue
		}
		entries = append(entries, Entry{
			Time:     ts,
			Source:   source,
			Outputs:  outputs,
			Warnings: warnings,
			Duration: time.Duration(durationMS) * time.Millisecond,
		})
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) Clean(days int) (int, error) {
	res, err := s.db.Exec(`DELETE FROM runs WHERE timestamp < ?`,
		DayCutoff(days).Format(time.RFC3339))
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (s *SQLiteStore) Clear() error {
	_, err := s.db.Exec(`DELETE FROM runs`)
	return err
}

func (s *SQLiteStore) Path() string {
	return s.path
}

// migrateFromFile imports entries from an existing flat log into the
// database. On success, renames the log to iconmill.log.migrated.
func (s *SQLiteStore) migrateFromFile(logPath string) error {
	fs := NewFileStore(logPath)
	entries, err := fs.Entries(0)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, e := range entries {
		if _, err := tx.Exec(
			`INSERT INTO runs (timestamp, source, outputs, warnings, duration_ms) VALUES (?, ?, ?, ?, ?)`,
			e.Time.Format(time.RFC3339), e.Source, e.Outputs, e.Warnings, e.Duration.Milliseconds(),
		); err != nil {
			return fmt.Errorf("migrate run: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	if len(entries) > 0 {
		fmt.Fprintf(os.Stderr, "genlog: migrated %d entries from %s\n", len(entries), filepath.Base(logPath))
	}
	return os.Rename(logPath, logPath+".migrated")
}
