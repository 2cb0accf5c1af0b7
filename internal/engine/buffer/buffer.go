package buffer

import (
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// DefaultEncoding is the encoding label given to new buffers.
const DefaultEncoding = "UTF-8"

// LineEnding specifies the line ending style.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns the short display name of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingCRLF:
		return "CRLF"
	case LineEndingCR:
		return "CR"
	default:
		return "LF"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// ParseLineEnding parses a display name ("LF", "CRLF", "CR") into a LineEnding.
func ParseLineEnding(name string) (LineEnding, bool) {
	switch strings.ToUpper(name) {
	case "LF", "UNIX":
		return LineEndingLF, true
	case "CRLF", "WINDOWS":
		return LineEndingCRLF, true
	case "CR", "MAC":
		return LineEndingCR, true
	}
	return LineEndingLF, false
}

// Buffer is an ordered collection of text lines plus the metadata needed to
// write them back out. It always holds at least one line.
// Buffer is not safe for concurrent mutation.
type Buffer struct {
	lines []string

	id           uuid.UUID
	path         string
	encoding     string
	lineEnding   LineEnding
	modified     bool
	lastModified time.Time
	baseline     string

	now func() time.Time
}

// New creates a buffer holding content. The line ending style is detected
// from the first terminator in content; every terminator style is accepted
// when splitting.
func New(content string, opts ...Option) *Buffer {
	b := &Buffer{
		id:         uuid.New(),
		encoding:   DefaultEncoding,
		lineEnding: DetectLineEnding(content),
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(b)
	}

	b.lines = splitLines(content)
	b.lastModified = b.now()
	b.baseline = b.Content()
	return b
}

// NewEmpty creates a buffer holding a single empty line.
func NewEmpty(opts ...Option) *Buffer {
	return New("", opts...)
}

// splitLines splits text on any terminator style. Never returns an empty slice.
func splitLines(text string) []string {
	return strings.Split(NormalizeNewlines(text), "\n")
}

// NormalizeNewlines converts CRLF and CR terminators to LF.
func NormalizeNewlines(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// Read Operations

// Content returns the document joined with the buffer's line ending.
func (b *Buffer) Content() string {
	return strings.Join(b.lines, b.lineEnding.Sequence())
}

// Line returns the text of a line without its terminator.
func (b *Buffer) Line(line int) (string, bool) {
	if !b.validLine(line) {
		return "", false
	}
	return b.lines[line], true
}

// LineCount returns the number of lines. Always at least 1.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// LineLength returns the length of a line in runes, or 0 for an invalid line.
func (b *Buffer) LineLength(line int) int {
	if !b.validLine(line) {
		return 0
	}
	return utf8.RuneCountInString(b.lines[line])
}

// LineLengths returns the rune length of every line.
func (b *Buffer) LineLengths() []int {
	lengths := make([]int, len(b.lines))
	for i, l := range b.lines {
		lengths[i] = utf8.RuneCountInString(l)
	}
	return lengths
}

// Lines returns a copy of lines [start, end). Bounds are clamped.
func (b *Buffer) Lines(start, end int) []string {
	start = max(start, 0)
	end = min(end, len(b.lines))
	if start >= end {
		return nil
	}
	return slices.Clone(b.lines[start:end])
}

// AllLines returns a copy of every line.
func (b *Buffer) AllLines() []string {
	return slices.Clone(b.lines)
}

// ID returns the identity assigned to the buffer at construction.
func (b *Buffer) ID() uuid.UUID {
	return b.id
}

// Path returns the associated path, or "" for an untitled buffer.
func (b *Buffer) Path() string {
	return b.path
}

// SetPath associates the buffer with a new path.
func (b *Buffer) SetPath(path string) {
	b.path = path
}

// TargetKey identifies the buffer to commands. It is the path when one is
// set and "untitled:<id>" otherwise.
func (b *Buffer) TargetKey() string {
	if b.path != "" {
		return b.path
	}
	return "untitled:" + b.id.String()
}

// Encoding returns the encoding label.
func (b *Buffer) Encoding() string {
	return b.encoding
}

// SetEncoding changes the encoding label.
func (b *Buffer) SetEncoding(name string) {
	if name != "" && name != b.encoding {
		b.encoding = name
		b.markModified()
	}
}

// LineEnding returns the line ending used by Content.
func (b *Buffer) LineEnding() LineEnding {
	return b.lineEnding
}

// SetLineEnding changes the line ending used by Content and marks the
// buffer modified.
func (b *Buffer) SetLineEnding(le LineEnding) {
	b.lineEnding = le
	b.markModified()
}

// IsModified reports whether the buffer changed since it was created or
// last marked saved.
func (b *Buffer) IsModified() bool {
	return b.modified
}

// LastModified returns the time of the most recent mutation.
func (b *Buffer) LastModified() time.Time {
	return b.lastModified
}

// MarkSaved clears the modified flag and records the current content as the
// new baseline.
func (b *Buffer) MarkSaved() {
	b.modified = false
	b.baseline = b.Content()
}

// IsNetUnchanged reports whether the content equals the saved baseline,
// even if edits were made in between.
func (b *Buffer) IsNetUnchanged() bool {
	return b.Content() == b.baseline
}

// Baseline returns the content recorded at construction or the last save.
func (b *Buffer) Baseline() string {
	return b.baseline
}

func (b *Buffer) markModified() {
	b.modified = true
	b.lastModified = b.now()
}

func (b *Buffer) validLine(line int) bool {
	return line >= 0 && line < len(b.lines)
}

// checkLine returns a PositionError when line is not a valid index.
func (b *Buffer) checkLine(op string, line int) error {
	if !b.validLine(line) {
		return &PositionError{Op: op, Line: line, Column: -1, Limit: len(b.lines)}
	}
	return nil
}

// checkPosition returns a PositionError when (line, column) is not a valid
// insertion point.
func (b *Buffer) checkPosition(op string, line, column int) error {
	if err := b.checkLine(op, line); err != nil {
		return err
	}
	n := utf8.RuneCountInString(b.lines[line])
	if column < 0 || column > n {
		return &PositionError{Op: op, Line: line, Column: column, Limit: n}
	}
	return nil
}
