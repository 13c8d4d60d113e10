package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestLoggerFormatsLines verifies the time - LEVEL - message layout.
func TestLoggerFormatsLines(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf)
	logger.now = func() time.Time { return time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC) }

	logger.Infof("Asking Question ID %d", 3)
	logger.Warnf("retry\n")
	logger.Errorf("boom: %v", "x")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), buf.String())
	}
	if lines[0] != "2024-03-01 09:30:00,000 - INFO - Asking Question ID 3" {
		t.Fatalf("unexpected info line %q", lines[0])
	}
	if lines[1] != "2024-03-01 09:30:00,000 - WARNING - retry" {
		t.Fatalf("unexpected warning line %q", lines[1])
	}
	if !strings.HasSuffix(lines[2], "ERROR - boom: x") {
		t.Fatalf("unexpected error line %q", lines[2])
	}
}

// TestNewCreatesLogFile verifies the rotating file is created under its directory.
func TestNewCreatesLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "bot.log")
	logger, err := New(Options{Path: path})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Infof("Survey started.")
	if err := logger.Close(); err != nil {
		t.Fatalf("close logger: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "INFO - Survey started.") {
		t.Fatalf("unexpected log contents %q", string(data))
	}
}

// TestNilLoggerIsSafe verifies nil loggers drop messages.
func TestNilLoggerIsSafe(t *testing.T) {
	var logger *Logger
	logger.Infof("ignored")
	if err := logger.Close(); err != nil {
		t.Fatalf("close nil logger: %v", err)
	}
	Discard().Errorf("ignored")
}
