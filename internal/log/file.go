package log

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"
)

const dayLayout = "2006-01-02"

// latestLink is the symlink in the debug directory that points at the
// current day's file.
const latestLink = "latest"

// DailyWriter appends to dir/YYYY-MM-DD.jsonl, switching files when the
// date changes.
type DailyWriter struct {
	dir string
	now func() time.Time

	mu   sync.Mutex
	file *os.File
	day  string
}

// NewDailyWriter creates dir if needed and opens today's file.
func NewDailyWriter(dir string) (*DailyWriter, error) {
	return newDailyWriter(dir, time.Now)
}

func newDailyWriter(dir string, now func() time.Time) (*DailyWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating debug log dir: %w", err)
	}

	w := &DailyWriter{dir: dir, now: now}
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.openLocked(now().Format(dayLayout)); err != nil {
		return nil, err
	}
	return w, nil
}

// Write implements io.Writer.
func (w *DailyWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return 0, os.ErrClosed
	}
	if day := w.now().Format(dayLayout); day != w.day {
		if err := w.openLocked(day); err != nil {
			return 0, err
		}
	}
	return w.file.Write(p)
}

// Close closes the current file. Later writes fail with os.ErrClosed.
func (w *DailyWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}

func (w *DailyWriter) openLocked(day string) error {
	name := day + ".jsonl"
	f, err := os.OpenFile(filepath.Join(w.dir, name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}

	if w.file != nil {
		w.file.Close()
	}
	w.file = f
	w.day = day
	w.relinkLatest(name)
	return nil
}

// relinkLatest points the latest symlink at name. Failures are ignored;
// the link is a convenience.
func (w *DailyWriter) relinkLatest(name string) {
	link := filepath.Join(w.dir, latestLink)
	tmp := link + ".tmp"

	os.Remove(tmp)
	if err := os.Symlink(name, tmp); err != nil {
		return
	}
	_ = os.Rename(tmp, link)
}

var dailyFilePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}\.jsonl$`)

// Cleanup removes daily log files in dir older than retentionDays and
// returns how many were removed.
func Cleanup(dir string, retentionDays int) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}

	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	removed := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !dailyFilePattern.MatchString(name) {
			continue
		}
		day, err := time.Parse(dayLayout, name[:len(dayLayout)])
		if err != nil {
			continue
		}
		if day.Before(cutoff) && os.Remove(filepath.Join(dir, name)) == nil {
			removed++
		}
	}
	return removed
}
