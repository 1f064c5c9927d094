package genlog

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"iconmill/internal/paths"
)

// FileStore implements Store using a flat log file, one line per run:
//
//	2025-08-30T12:00:00+02:00  source=icons/app-icon.svg  outputs=16  warnings=0  duration=120ms
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore that reads and writes the given log file.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// openLog opens (or creates) the log file for appending, creating the
// parent directory if needed.
func (f *FileStore) openLog() (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(f.path), paths.DirPerm); err != nil {
		return nil, err
	}
	return os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, paths.FilePerm)
}

func (f *FileStore) Log(e Entry) error {
	file, err := f.openLog()
	if err != nil {
		return err
	}
	defer file.Close()

	ts := e.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err = fmt.Fprintf(file, "%s  source=%s  outputs=%d  warnings=%d  duration=%s\n",
		ts.Format(time.RFC3339), e.Source, e.Outputs, e.Warnings,
		e.Duration.Round(time.Millisecond))
	return err
}

func (f *FileStore) Entries(days int) ([]Entry, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var cutoff time.Time
	if days > 0 {
		cutoff = DayCutoff(days)
	}

	var entries []Entry
	for _, line := range strings.Split(string(data), "\n") {
		e, ok := parseLine(line)
		if !ok {
			continue
		}
		if days > 0 && e.Time.Before(cutoff) {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (f *FileStore) Clean(days int) (int, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	cutoff := DayCutoff(days)
	var kept []string
	removed := 0
	for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
		e, ok := parseLine(line)
		if ok && e.Time.Before(cutoff) {
			removed++
			continue
		}
		if line != "" {
			kept = append(kept, line)
		}
	}
	if removed == 0 {
		return 0, nil
	}

	content := strings.Join(kept, "\n")
	if content != "" {
		content += "\n"
	}
	return removed, paths.AtomicWrite(f.path, []byte(content))
}

func (f *FileStore) Clear() error {
	err := os.Remove(f.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (f *FileStore) Path() string {
	return f.path
}

// parseLine parses one log line. Malformed lines are skipped rather
// than reported: the log is advisory data.
func parseLine(line string) (Entry, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return Entry{}, false
	}
	ts, err := time.Parse(time.RFC3339, fields[0])
	if err != nil {
		return Entry{}, false
	}

	e := Entry{Time: ts}
	for _, f := range fields[1:] {
		key, val, ok := strings.Cut(f, "=")
		if !ok {
			continue
		}
		switch key {
		case "source":
			e.Source = val
		case "outputs":
			e.Outputs, _ = strconv.Atoi(val)
		case "warnings":
			e.Warnings, _ = strconv.Atoi(val)
		case "duration":
			e.Duration, _ = time.ParseDuration(val)
		}
	}
	return e, true
}
