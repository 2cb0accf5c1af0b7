package buffer

import "time"

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithPath associates the buffer with a persisted location.
func WithPath(path string) Option {
	return func(b *Buffer) {
		b.path = path
	}
}

// WithEncoding records the encoding label of the buffer.
// The label is metadata only; content is always held as UTF-8.
func WithEncoding(name string) Option {
	return func(b *Buffer) {
		if name != "" {
			b.encoding = name
		}
	}
}

// WithLineEnding overrides the detected line ending style.
func WithLineEnding(le LineEnding) Option {
	return func(b *Buffer) {
		b.lineEnding = le
	}
}

// WithClock sets the time source used for modification timestamps.
func WithClock(now func() time.Time) Option {
	return func(b *Buffer) {
		if now != nil {
			b.now = now
		}
	}
}

// DetectLineEnding returns the style of the first line terminator in text.
// Returns LineEndingLF if text has no terminator.
func DetectLineEnding(text string) LineEnding {
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			return LineEndingLF
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				return LineEndingCRLF
			}
			return LineEndingCR
		}
	}
	return LineEndingLF
}
