// Package logging writes the bot's activity log to a size-rotated file.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Default rotation settings.
const (
	DefaultPath       = "chatbot.log"
	DefaultMaxSizeMB  = 10
	DefaultMaxBackups = 3
	DefaultMaxAgeDays = 28
)

// Options configures the rotating log file.
type Options struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Logger appends "time - LEVEL - message" lines to a writer.
type Logger struct {
	mu     sync.Mutex
	logger *log.Logger
	closer io.Closer
	now    func() time.Time
}

// New opens a rotating log file.
func New(opts Options) (*Logger, error) {
	path := strings.TrimSpace(opts.Path)
	if path == "" {
		path = DefaultPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("logging: create log dir: %w", err)
		}
	}
	file := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    valueOr(opts.MaxSizeMB, DefaultMaxSizeMB),
		MaxBackups: valueOr(opts.MaxBackups, DefaultMaxBackups),
		MaxAge:     valueOr(opts.MaxAgeDays, DefaultMaxAgeDays),
	}
	logger := NewWriter(file)
	logger.closer = file
	return logger, nil
}

// NewWriter builds a logger over an arbitrary writer.
func NewWriter(w io.Writer) *Logger {
	return &Logger{logger: log.New(w, "", 0), now: time.Now}
}

// Discard returns a logger that drops every line.
func Discard() *Logger {
	return NewWriter(io.Discard)
}

// Infof logs an informational line.
func (l *Logger) Infof(format string, args ...any) {
	l.write("INFO", format, args...)
}

// Warnf logs a warning line.
func (l *Logger) Warnf(format string, args ...any) {
	l.write("WARNING", format, args...)
}

// Errorf logs an error line.
func (l *Logger) Errorf(format string, args ...any) {
	l.write("ERROR", format, args...)
}

// Close releases the log file.
func (l *Logger) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

func (l *Logger) write(level, format string, args ...any) {
	if l == nil || l.logger == nil {
		return
	}
	message := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger.Printf("%s - %s - %s", l.now().Format("2006-01-02 15:04:05,000"), level, message)
}

func valueOr(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}
