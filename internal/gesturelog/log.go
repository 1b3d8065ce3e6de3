// Package gesturelog appends detected gestures to a flat per-day text
// file. One file per calendar day; concurrent runs on the same day
// append to the same file.
package gesturelog

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileSuffix is appended to the ISO date to form the log file name.
const FileSuffix = "_gestures.txt"

// Writer appends one line per detected gesture to today's log file.
type Writer struct {
	mu   sync.Mutex
	f    *os.File
	path string
}

// FileName returns the log file name for the given day.
func FileName(day time.Time) string {
	return day.Format("2006-01-02") + FileSuffix
}

// Open opens (creating if needed) today's log file in dir for append.
func Open(dir string) (*Writer, error) {
	path := filepath.Join(dir, FileName(time.Now()))

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open gesture log: %w", err)
	}

	return &Writer{f: f, path: path}, nil
}

// Record appends one line: RFC 3339 timestamp, colon, gesture name.
func (w *Writer) Record(gesture string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.f == nil {
		return fmt.Errorf("gesture log is closed")
	}

	_, err := fmt.Fprintf(w.f, "%s: %s\n", time.Now().Format(time.RFC3339), gesture)
	return err
}

// Path returns the log file path.
func (w *Writer) Path() string {
	return w.path
}

// Close closes the underlying file. Safe to call more than once.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.f == nil {
		return nil
	}

	err := w.f.Close()
	w.f = nil
	return err
}
