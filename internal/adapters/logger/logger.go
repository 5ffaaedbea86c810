// Package logger implements a logging adapter using log/slog.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/uifirst/internal/core/ports"
)

// messager is implemented by zerr errors, which can report their own message
// without the cause chain.
type messager interface {
	Message() string
	Metadata() map[string]any
}

// ErrorEntry is one link of an error chain.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// Logger implements ports.Logger using log/slog.
type Logger struct {
	mu       sync.RWMutex
	logger   *slog.Logger
	level    *slog.LevelVar
	jsonMode bool
	output   io.Writer
}

// New creates a new Logger writing pretty output to stderr.
func New() ports.Logger {
	l := &Logger{
		level:  &slog.LevelVar{},
		output: os.Stderr,
	}
	l.rebuild()
	return l
}

func (l *Logger) rebuild() {
	opts := &slog.HandlerOptions{Level: l.level}
	var handler slog.Handler
	if l.jsonMode {
		handler = slog.NewJSONHandler(l.output, opts)
	} else {
		handler = NewPrettyHandler(l.output, opts)
	}
	l.logger = slog.New(handler)
}

// SetOutput updates the output destination. A nil writer selects stderr.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.rebuild()
}

// SetJSON switches between JSON and pretty logging.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.jsonMode = enable
	l.rebuild()
}

// SetLevel changes the minimum level that is written.
func (l *Logger) SetLevel(level slog.Level) {
	l.level.Set(level)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs err with its cause chain. JSON mode keeps the chain in a single
// attribute; pretty mode prints one line per cause.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.jsonMode {
		l.logger.Error("operation failed", "error", err)
		return
	}
	l.logger.Error(formatErrorEntries(collectErrorEntries(err)))
}

// collectErrorEntries walks the zerr chain. The first standard error ends
// the walk with its full message.
func collectErrorEntries(err error) []ErrorEntry {
	var entries []ErrorEntry
	var carried map[string]any
	for current := err; current != nil; current = errors.Unwrap(current) {
		m, ok := current.(messager)
		if !ok {
			entries = append(entries, ErrorEntry{Message: current.Error(), Metadata: carried})
			break
		}
		// zerr.With on a standard error wraps it without a message; its
		// metadata belongs to the next link.
		if m.Message() == "" {
			if carried == nil {
				carried = make(map[string]any)
			}
			maps.Copy(carried, m.Metadata())
			continue
		}
		meta := m.Metadata()
		maps.Copy(meta, carried)
		carried = nil
		entries = append(entries, ErrorEntry{Message: m.Message(), Metadata: meta})
	}
	return entries
}

func formatErrorEntries(entries []ErrorEntry) string {
	var b strings.Builder
	for i, e := range entries {
		lines := strings.Split(e.Message, "\n")
		head, indent := "Error: ", "       "
		if i > 0 {
			if i == 1 {
				b.WriteString("\n\n  Caused by:")
			}
			head, indent = "\n    → ", "      "
		}

		b.WriteString(head + lines[0])
		for _, line := range lines[1:] {
			b.WriteString("\n" + indent + line)
		}
		for _, key := range slices.Sorted(maps.Keys(e.Metadata)) {
			fmt.Fprintf(&b, "\n%s%s: %v", indent, key, e.Metadata[key])
		}
	}
	return b.String()
}
