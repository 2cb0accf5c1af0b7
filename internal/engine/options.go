package engine

import (
	"log/slog"

	"github.com/maubry-ortega/Xylux-sub000/internal/engine/buffer"
)

// Default configuration values.
const (
	DefaultTabWidth       = 4
	DefaultMaxUndoEntries = 1000
	DefaultPageSize       = 20
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithContent sets the initial content of the engine.
func WithContent(content string) Option {
	return func(e *Engine) {
		e.initContent = content
	}
}

// WithBuffer makes the engine edit an existing buffer, such as one decoded
// from disk. Content, path, encoding and line ending options are ignored.
func WithBuffer(buf *buffer.Buffer) Option {
	return func(e *Engine) {
		e.initBuffer = buf
	}
}

// WithPath sets the file path of the buffer.
func WithPath(path string) Option {
	return func(e *Engine) {
		e.bufferOpts = append(e.bufferOpts, buffer.WithPath(path))
	}
}

// WithEncoding sets the encoding label of the buffer.
func WithEncoding(name string) Option {
	return func(e *Engine) {
		e.bufferOpts = append(e.bufferOpts, buffer.WithEncoding(name))
	}
}

// WithLineEnding overrides the line ending detected from the content.
func WithLineEnding(ending buffer.LineEnding) Option {
	return func(e *Engine) {
		e.bufferOpts = append(e.bufferOpts, buffer.WithLineEnding(ending))
	}
}

// WithMaxUndoEntries sets the maximum number of undo history entries.
func WithMaxUndoEntries(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxUndoEntries = n
		}
	}
}

// WithMergeSimilar enables or disables coalescing of consecutive typing
// into one undo entry. Merging is on by default.
func WithMergeSimilar(enabled bool) Option {
	return func(e *Engine) {
		e.mergeSimilar = enabled
	}
}

// WithPageSize sets the number of lines a page motion moves.
func WithPageSize(lines int) Option {
	return func(e *Engine) {
		if lines > 0 {
			e.pageSize = lines
		}
	}
}

// WithTabWidth sets the tab width for the engine.
func WithTabWidth(width int) Option {
	return func(e *Engine) {
		if width > 0 {
			e.tabWidth = width
		}
	}
}

// WithReadOnly creates a read-only engine.
// Write operations will return ErrReadOnly.
func WithReadOnly() Option {
	return func(e *Engine) {
		e.readOnly = true
	}
}

// WithLogger sets the logger used for engine events.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}
