package gesturelog

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestWriter_RecordFormat(t *testing.T) {
	dir := t.TempDir()

	w, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if err := w.Record("next slide"); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(w.Path())
	if err != nil {
		t.Fatalf("read log: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}

	stamp, gesture, ok := strings.Cut(lines[0], ": ")
	if !ok {
		t.Fatalf("line %q missing separator", lines[0])
	}
	if _, err := time.Parse(time.RFC3339, stamp); err != nil {
		t.Errorf("timestamp %q not RFC 3339: %v", stamp, err)
	}
	if gesture != "next slide" {
		t.Errorf("gesture = %q, want %q", gesture, "next slide")
	}
}

func TestWriter_FileNamedByDay(t *testing.T) {
	dir := t.TempDir()

	w, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer w.Close()

	want := FileName(time.Now())
	if got := w.Path(); !strings.HasSuffix(got, want) {
		t.Errorf("path = %q, want suffix %q", got, want)
	}
}

func TestWriter_AppendsAcrossSessions(t *testing.T) {
	dir := t.TempDir()

	for _, g := range []string{"next slide", "previous slide"} {
		w, err := Open(dir)
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		if err := w.Record(g); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
		w.Close()
	}

	w, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	w.Close()

	data, err := os.ReadFile(w.Path())
	if err != nil {
		t.Fatalf("read log: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2 (same-day sessions must append)", len(lines))
	}
}

func TestWriter_CloseTwice(t *testing.T) {
	w, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if err := w.Close(); err != nil {
		t.Fatalf("first Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}

	if err := w.Record("next slide"); err == nil {
		t.Error("Record() after Close should fail")
	}
}
