// Package log provides structured logging for Xylux.
// It wraps log/slog with a category field and stays silent until Init is
// called, so library code can log unconditionally.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// Category groups related log messages.
type Category string

const (
	CatEngine Category = "engine" // Editor facade: edits, undo/redo, groups
	CatConfig Category = "config" // Configuration loading/saving
	CatIO     Category = "io"     // File decode/encode and saves
	CatScript Category = "script" // Lua macros and YAML edit scripts
	CatCLI    Category = "cli"    // Command line front end
)

// Format selects the handler output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

var (
	mu      sync.RWMutex
	handler slog.Handler = discardHandler{}
)

// Init installs a handler writing to w at the given minimum level.
func Init(w io.Writer, level slog.Level, format Format) {
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if format == FormatJSON {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}

	mu.Lock()
	handler = h
	mu.Unlock()
}

// Disable silences all logging.
func Disable() {
	mu.Lock()
	handler = discardHandler{}
	mu.Unlock()
}

// ParseLevel converts a level name ("debug", "info", "warn", "error").
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}

// ParseFormat converts a format name ("text" or "json").
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatText, FormatJSON:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return FormatText, fmt.Errorf("invalid log format %q", name)
	}
}

// For returns a logger tagged with cat.
func For(cat Category) *slog.Logger {
	mu.RLock()
	h := handler
	mu.RUnlock()
	return slog.New(h).With("category", string(cat))
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	For(cat).Debug(msg, fields...)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	For(cat).Info(msg, fields...)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) {
	For(cat).Warn(msg, fields...)
}

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) {
	For(cat).Error(msg, fields...)
}

// ErrorErr logs an error with the error value.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	For(cat).Error(msg, fields...)
}

// discardHandler drops every record.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }
