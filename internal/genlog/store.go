// Package genlog records icon generation runs so past conversions can
// be listed and pruned. Logging is best-effort everywhere: a broken
// store never affects conversion results.
package genlog

import (
	"fmt"
	"path/filepath"
	"time"

	"iconmill/internal/config"
	"iconmill/internal/paths"
)

// Entry is one recorded generation run.
type Entry struct {
	Time     time.Time
	Source   string
	Outputs  int
	Warnings int
	Duration time.Duration
}

// Store abstracts history storage. SQLiteStore is the default backend;
// FileStore keeps a flat text log for setups where a database file is
// unwanted.
type Store interface {
	Log(e Entry) error
	Entries(days int) ([]Entry, error) // parsed entries, 0 = all
	Clean(days int) (int, error)       // remove old entries, return removed count
	Clear() error                      // delete all data
	Path() string
}

// Open returns the store for the configured backend, rooted at dir.
// The config.HistoryOff backend yields a nil Store: callers skip
// logging entirely.
func Open(backend, dir string) (Store, error) {
	switch backend {
	case config.HistorySQLite:
		return NewSQLiteStore(filepath.Join(dir, paths.DBFileName))
	case config.HistoryFile:
		return NewFileStore(filepath.Join(dir, paths.LogFileName)), nil
	case config.HistoryOff:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown history backend %q", backend)
	}
}

// DayCutoff returns midnight local time N-1 days ago, so days=1 keeps
// today's entries.
func DayCutoff(days int) time.Time {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return midnight.AddDate(0, 0, -(days - 1))
}
