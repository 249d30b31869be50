// Package logging provides file-based structured logging for editflow.
// Entries are JSON lines written to <data dir>/logs/editflow.log.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/runoshun/editflow/internal/domain"
)

// Ensure Logger implements domain.Logger interface.
var _ domain.Logger = (*Logger)(nil)

// Logger writes zerolog entries tagged with a "mod" field naming the category.
// Fields are ordered to minimize memory padding.
type Logger struct {
	out *lazyFile
	zl  zerolog.Logger
}

// New creates a Logger that writes to the log file in dataDir.
// If dataDir is empty, logging is disabled. The file is created on the first entry.
func New(dataDir string, level zerolog.Level) *Logger {
	if dataDir == "" {
		return &Logger{zl: zerolog.Nop()}
	}
	out := &lazyFile{path: domain.LogPath(dataDir)}
	return &Logger{
		out: out,
		zl:  zerolog.New(out).Level(level).With().Timestamp().Logger(),
	}
}

// NewWriter creates a Logger that writes to w, e.g. stderr.
func NewWriter(w io.Writer, level zerolog.Level) *Logger {
	return &Logger{zl: zerolog.New(w).Level(level).With().Timestamp().Logger()}
}

// ParseLevel parses a log level string. Unknown values fall back to info.
func ParseLevel(levelStr string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Zerolog returns the underlying logger for components that log structured fields directly.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.zl
}

// Info logs an info message.
func (l *Logger) Info(category, msg string) {
	l.zl.Info().Str("mod", category).Msg(msg)
}

// Debug logs a debug message.
func (l *Logger) Debug(category, msg string) {
	l.zl.Debug().Str("mod", category).Msg(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(category, msg string) {
	l.zl.Warn().Str("mod", category).Msg(msg)
}

// Error logs an error message.
func (l *Logger) Error(category, msg string) {
	l.zl.Error().Str("mod", category).Msg(msg)
}

// Close closes the log file if it was opened.
func (l *Logger) Close() error {
	if l.out == nil {
		return nil
	}
	return l.out.Close()
}

// lazyFile opens its file on the first write.
type lazyFile struct {
	f    *os.File
	path string
	mu   sync.Mutex
}

func (w *lazyFile) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.f == nil {
		if err := os.MkdirAll(filepath.Dir(w.path), 0o750); err != nil {
			return 0, fmt.Errorf("create logs directory: %w", err)
		}
		f, err := os.OpenFile(w.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
		if err != nil {
			return 0, fmt.Errorf("open log file: %w", err)
		}
		w.f = f
	}
	return w.f.Write(p)
}

func (w *lazyFile) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.f == nil {
		return nil
	}
	err := w.f.Close()
	w.f = nil
	return err
}
