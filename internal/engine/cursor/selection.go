package cursor

import (
	"fmt"
	"math"
	"strings"
)

// WholeLine is the end column ColumnRangeForLine reports when a selection
// covers the rest of the line.
const WholeLine = math.MaxInt

// Mode controls how a Selection is interpreted.
type Mode uint8

const (
	ModeCharacter Mode = iota // a contiguous run of text
	ModeWord                  // a character range grown to word boundaries
	ModeLine                  // whole lines
	ModeBlock                 // a rectangular column band
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeWord:
		return "Word"
	case ModeLine:
		return "Line"
	case ModeBlock:
		return "Block"
	default:
		return "Character"
	}
}

// ParseMode converts a mode name such as "line" or "Block". "char" is
// accepted for ModeCharacter.
func ParseMode(name string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "char", "character":
		return ModeCharacter, true
	case "word":
		return ModeWord, true
	case "line":
		return ModeLine, true
	case "block":
		return ModeBlock, true
	}
	return ModeCharacter, false
}

// Selection is a range between two cursors. Start is where the selection
// began and End is where it currently extends to; End may come before Start.
// Queries work on the normalized view.
// Selection is an immutable value type.
type Selection struct {
	Start Cursor
	End   Cursor
	Mode  Mode
}

// NewSelection creates a character selection from start to end.
func NewSelection(start, end Cursor) Selection {
	return Selection{Start: start, End: end, Mode: ModeCharacter}
}

// NewSelectionWithMode creates a selection with an explicit mode.
func NewSelectionWithMode(start, end Cursor, mode Mode) Selection {
	return Selection{Start: start, End: end, Mode: mode}
}

// FromCursor creates an empty selection at c.
func FromCursor(c Cursor) Selection {
	return NewSelection(c, c)
}

// WithMode returns a copy with a different mode.
func (s Selection) WithMode(mode Mode) Selection {
	s.Mode = mode
	return s
}

// IsEmpty returns true if start and end are at the same position.
func (s Selection) IsEmpty() bool {
	return s.Start.Equals(s.End)
}

// IsForward returns true if the selection extends forward (end >= start).
func (s Selection) IsForward() bool {
	return !s.End.IsBefore(s.Start)
}

// Normalized returns a copy with Start at or before End.
func (s Selection) Normalized() Selection {
	if s.Start.IsAfter(s.End) {
		s.Start, s.End = s.End, s.Start
	}
	return s
}

// ActualStart returns the earlier endpoint.
func (s Selection) ActualStart() Cursor {
	return s.Normalized().Start
}

// ActualEnd returns the later endpoint.
func (s Selection) ActualEnd() Cursor {
	return s.Normalized().End
}

// ExtendTo returns a selection whose end moves to c.
func (s Selection) ExtendTo(c Cursor) Selection {
	s.End = c
	return s
}

// Contains reports whether c lies in the selection. Character and Word
// selections include both endpoints, Line selections test the line only and
// Block selections test the line and the column band.
func (s Selection) Contains(c Cursor) bool {
	n := s.Normalized()
	switch s.Mode {
	case ModeLine:
		return n.ContainsLine(c.Line)
	case ModeBlock:
		lo, hi := n.columnBand()
		return n.ContainsLine(c.Line) && c.Column >= lo && c.Column <= hi
	default:
		return !c.IsBefore(n.Start) && !c.IsAfter(n.End)
	}
}

// ContainsLine reports whether line is spanned by the selection.
func (s Selection) ContainsLine(line int) bool {
	first, last := s.LineRange()
	return line >= first && line <= last
}

// LineRange returns the first and last spanned lines.
func (s Selection) LineRange() (int, int) {
	n := s.Normalized()
	return n.Start.Line, n.End.Line
}

// CoveredLines returns the first and last lines an edit of the selection
// touches. In Line mode an end at column 0 of a later line is treated as
// the exclusive end produced by ExpandToLineBoundaries, so that line is
// left out. Text and Size still include it.
func (s Selection) CoveredLines() (int, int) {
	n := s.Normalized()
	last := n.End.Line
	if s.Mode == ModeLine && n.End.Column == 0 && last > n.Start.Line {
		last--
	}
	return n.Start.Line, last
}

// ColumnRangeForLine returns the selected column range [start, end) on line.
// An end of WholeLine means the rest of the line. ok is false if the line is
// outside the selection.
func (s Selection) ColumnRangeForLine(line int) (start, end int, ok bool) {
	if !s.ContainsLine(line) {
		return 0, 0, false
	}

	n := s.Normalized()
	switch s.Mode {
	case ModeBlock:
		lo, hi := n.columnBand()
		return lo, hi, true
	case ModeLine:
		return 0, WholeLine, true
	}

	switch {
	case line == n.Start.Line && line == n.End.Line:
		return n.Start.Column, n.End.Column, true
	case line == n.Start.Line:
		return n.Start.Column, WholeLine, true
	case line == n.End.Line:
		return 0, n.End.Column, true
	default:
		return 0, WholeLine, true
	}
}

// ExpandToWordBoundaries switches to Word mode and grows the normalized
// range outward until both ends sit on word boundaries.
func (s Selection) ExpandToWordBoundaries(lines []string) Selection {
	n := s.Normalized()
	n.Mode = ModeWord

	if n.Start.Line >= 0 && n.Start.Line < len(lines) {
		r := []rune(lines[n.Start.Line])
		col := min(n.Start.Column, len(r))
		for col > 0 && IsWordChar(r[col-1]) {
			col--
		}
		n.Start.Column = col
		n.Start.DesiredColumn = col
	}

	if n.End.Line >= 0 && n.End.Line < len(lines) {
		r := []rune(lines[n.End.Line])
		col := min(n.End.Column, len(r))
		for col < len(r) && IsWordChar(r[col]) {
			col++
		}
		n.End.Column = col
		n.End.DesiredColumn = col
	}
	return n
}

// ExpandToLineBoundaries switches to Line mode. Both columns become zero and
// the end moves to the start of the following line, so the end is exclusive.
func (s Selection) ExpandToLineBoundaries() Selection {
	n := s.Normalized()
	return Selection{
		Start: New(n.Start.Line, 0),
		End:   New(n.End.Line+1, 0),
		Mode:  ModeLine,
	}
}

// ConvertToMode returns the selection reinterpreted in mode. Word and Line
// modes expand the range to their boundaries.
func (s Selection) ConvertToMode(mode Mode, lines []string) Selection {
	switch mode {
	case ModeWord:
		return s.ExpandToWordBoundaries(lines)
	case ModeLine:
		return s.ExpandToLineBoundaries()
	default:
		return s.WithMode(mode)
	}
}

// Text extracts the selected text from lines, joining lines with "\n".
func (s Selection) Text(lines []string) string {
	if s.IsEmpty() {
		return ""
	}

	n := s.Normalized()
	var parts []string

	switch s.Mode {
	case ModeLine:
		for i := n.Start.Line; i <= n.End.Line && i < len(lines); i++ {
			parts = append(parts, lines[i])
		}

	case ModeBlock:
		lo, hi := n.columnBand()
		for i := n.Start.Line; i <= n.End.Line && i < len(lines); i++ {
			r := []rune(lines[i])
			from, to := min(lo, len(r)), min(hi, len(r))
			parts = append(parts, string(r[from:to]))
		}

	default:
		for i := n.Start.Line; i <= n.End.Line && i < len(lines); i++ {
			r := []rune(lines[i])
			from, to := 0, len(r)
			if i == n.Start.Line {
				from = min(n.Start.Column, len(r))
			}
			if i == n.End.Line {
				to = min(n.End.Column, len(r))
			}
			if from > to {
				from = to
			}
			parts = append(parts, string(r[from:to]))
		}
	}

	return strings.Join(parts, "\n")
}

// Size returns the number of characters covered, counting one per newline.
func (s Selection) Size(lineLengths []int) int {
	if s.IsEmpty() {
		return 0
	}

	n := s.Normalized()
	switch s.Mode {
	case ModeLine:
		size := 0
		for i := n.Start.Line; i <= n.End.Line && i < len(lineLengths); i++ {
			size += lineLengths[i] + 1
		}
		return max(size-1, 0)
	case ModeBlock:
		lo, hi := n.columnBand()
		return (hi - lo) * (n.End.Line - n.Start.Line + 1)
	default:
		return n.Start.DistanceTo(n.End, lineLengths)
	}
}

// OverlapsWith reports whether two selections overlap. They overlap unless
// one ends strictly before the other starts.
func (s Selection) OverlapsWith(other Selection) bool {
	a, b := s.Normalized(), other.Normalized()
	return !(a.End.IsBefore(b.Start) || b.End.IsBefore(a.Start))
}

// MergeWith returns the character selection spanning both selections.
// ok is false if they do not overlap.
func (s Selection) MergeWith(other Selection) (merged Selection, ok bool) {
	if !s.OverlapsWith(other) {
		return Selection{}, false
	}

	a, b := s.Normalized(), other.Normalized()
	start, end := a.Start, a.End
	if b.Start.IsBefore(start) {
		start = b.Start
	}
	if b.End.IsAfter(end) {
		end = b.End
	}
	return NewSelection(start, end), true
}

// String returns a human-readable representation of the selection.
func (s Selection) String() string {
	n := s.Normalized()
	return fmt.Sprintf("%s -> %s (%s)", n.Start, n.End, s.Mode)
}

// columnBand returns the block column band of a normalized selection.
func (s Selection) columnBand() (int, int) {
	return min(s.Start.Column, s.End.Column), max(s.Start.Column, s.End.Column)
}
