package buffer

import (
	"strings"
	"unicode/utf8"
)

// Snapshot provides a read-only view of a buffer at a specific point in time.
// It is safe for concurrent access and will not change even if the original
// buffer is modified.
type Snapshot struct {
	lines      []string
	path       string
	lineEnding LineEnding
	modified   bool
}

// Snapshot returns a read-only copy of the buffer's current state.
func (b *Buffer) Snapshot() *Snapshot {
	return &Snapshot{
		lines:      b.AllLines(),
		path:       b.path,
		lineEnding: b.lineEnding,
		modified:   b.modified,
	}
}

// Content returns the snapshot joined with its line ending.
func (s *Snapshot) Content() string {
	return strings.Join(s.lines, s.lineEnding.Sequence())
}

// LineCount returns the number of lines.
func (s *Snapshot) LineCount() int {
	return len(s.lines)
}

// Line returns the text of a specific line.
func (s *Snapshot) Line(line int) (string, bool) {
	if line < 0 || line >= len(s.lines) {
		return "", false
	}
	return s.lines[line], true
}

// LineLengths returns the rune length of every line.
func (s *Snapshot) LineLengths() []int {
	lengths := make([]int, len(s.lines))
	for i, l := range s.lines {
		lengths[i] = utf8.RuneCountInString(l)
	}
	return lengths
}

// Lines returns the snapshot's lines. The slice must not be modified.
func (s *Snapshot) Lines() []string {
	return s.lines
}

// Path returns the buffer path at the time of the snapshot.
func (s *Snapshot) Path() string {
	return s.path
}

// IsModified returns the modified flag at the time of the snapshot.
func (s *Snapshot) IsModified() bool {
	return s.modified
}
