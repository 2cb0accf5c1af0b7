package buffer

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds is returned when a line or column index is structurally
// invalid for the requested operation.
var ErrOutOfBounds = errors.New("position out of bounds")

// PositionError describes an out of bounds position.
// It unwraps to ErrOutOfBounds.
type PositionError struct {
	Op     string // operation that failed
	Line   int
	Column int // -1 when only the line was checked
	Limit  int // the line count or line length that was exceeded
}

// Error implements the error interface.
func (e *PositionError) Error() string {
	if e.Column < 0 {
		return fmt.Sprintf("%s: line %d: %v (line count %d)", e.Op, e.Line, ErrOutOfBounds, e.Limit)
	}
	return fmt.Sprintf("%s: %d:%d: %v (line length %d)", e.Op, e.Line, e.Column, ErrOutOfBounds, e.Limit)
}

// Unwrap returns ErrOutOfBounds.
func (e *PositionError) Unwrap() error {
	return ErrOutOfBounds
}

// Point represents a line and column position.
// Both Line and Column are 0-indexed; Column counts runes.
type Point struct {
	Line   int
	Column int
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Point) Compare(other Point) int {
	if p.Line < other.Line {
		return -1
	}
	if p.Line > other.Line {
		return 1
	}
	if p.Column < other.Column {
		return -1
	}
	if p.Column > other.Column {
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Point) Before(other Point) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other.
func (p Point) After(other Point) bool {
	return p.Compare(other) > 0
}

// IsZero returns true if this is the zero point (0:0).
func (p Point) IsZero() bool {
	return p.Line == 0 && p.Column == 0
}

// PointRange is a range expressed in line/column positions.
// Start is inclusive, End is exclusive.
type PointRange struct {
	Start Point
	End   Point
}

// String returns a human-readable representation of the range.
func (r PointRange) String() string {
	return fmt.Sprintf("[%s-%s)", r.Start, r.End)
}

// Normalize returns the range with Start at or before End.
func (r PointRange) Normalize() PointRange {
	if r.End.Before(r.Start) {
		return PointRange{Start: r.End, End: r.Start}
	}
	return r
}

// IsEmpty returns true if the range has zero length.
func (r PointRange) IsEmpty() bool {
	return r.Start == r.End
}

// IsSingleLine returns true if the range starts and ends on the same line.
func (r PointRange) IsSingleLine() bool {
	return r.Start.Line == r.End.Line
}

// Contains returns true if p lies within [Start, End).
func (r PointRange) Contains(p Point) bool {
	n := r.Normalize()
	return !p.Before(n.Start) && p.Before(n.End)
}
