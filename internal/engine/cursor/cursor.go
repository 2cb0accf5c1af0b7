package cursor

import "fmt"

// Cursor represents an insertion point as a zero-based line and column.
// DesiredColumn is the column vertical movement aims for; it survives
// passing through lines that are too short to hold it.
// Cursor is an immutable value type: movement methods return a new Cursor.
type Cursor struct {
	Line          int
	Column        int
	DesiredColumn int
}

// New creates a cursor at (line, column).
func New(line, column int) Cursor {
	line = max(line, 0)
	column = max(column, 0)
	return Cursor{Line: line, Column: column, DesiredColumn: column}
}

// Origin returns a cursor at (0, 0).
func Origin() Cursor {
	return Cursor{}
}

// MoveTo returns a cursor at (line, column) with the desired column reset.
func (c Cursor) MoveTo(line, column int) Cursor {
	return New(line, column)
}

// MoveLeft moves one column left, wrapping to the end of the previous line.
func (c Cursor) MoveLeft(lineLengths []int) Cursor {
	switch {
	case c.Column > 0:
		c.Column = min(c.Column, lengthAt(lineLengths, c.Line)) - 1
		c.Column = max(c.Column, 0)
	case c.Line > 0:
		c.Line--
		c.Column = lengthAt(lineLengths, c.Line)
	}
	c.DesiredColumn = c.Column
	return c
}

// MoveRight moves one column right, wrapping to the start of the next line.
func (c Cursor) MoveRight(lineLengths []int) Cursor {
	switch {
	case c.Column < lengthAt(lineLengths, c.Line):
		c.Column++
	case c.Line+1 < len(lineLengths):
		c.Line++
		c.Column = 0
	}
	c.DesiredColumn = c.Column
	return c
}

// MoveUp moves one line up, keeping the desired column.
func (c Cursor) MoveUp(lineLengths []int) Cursor {
	if c.Line == 0 {
		return c
	}
	return c.toLine(c.Line-1, lineLengths)
}

// MoveDown moves one line down, keeping the desired column.
func (c Cursor) MoveDown(lineLengths []int) Cursor {
	if c.Line+1 >= len(lineLengths) {
		return c
	}
	return c.toLine(c.Line+1, lineLengths)
}

// MovePageUp moves pageSize lines up, stopping at the first line.
func (c Cursor) MovePageUp(pageSize int, lineLengths []int) Cursor {
	return c.toLine(max(c.Line-pageSize, 0), lineLengths)
}

// MovePageDown moves pageSize lines down, stopping at the last line.
func (c Cursor) MovePageDown(pageSize int, lineLengths []int) Cursor {
	if len(lineLengths) == 0 {
		return c
	}
	return c.toLine(min(c.Line+pageSize, len(lineLengths)-1), lineLengths)
}

// toLine is the vertical movement rule: the column follows DesiredColumn
// clamped to the new line, and DesiredColumn itself is left alone.
func (c Cursor) toLine(line int, lineLengths []int) Cursor {
	c.Line = line
	c.Column = min(c.DesiredColumn, lengthAt(lineLengths, line))
	return c
}

// MoveToLineStart moves to column 0.
func (c Cursor) MoveToLineStart() Cursor {
	c.Column = 0
	c.DesiredColumn = 0
	return c
}

// MoveToLineEnd moves past the last character of the line.
func (c Cursor) MoveToLineEnd(lineLengths []int) Cursor {
	if c.Line >= len(lineLengths) {
		return c
	}
	c.Column = lineLengths[c.Line]
	c.DesiredColumn = c.Column
	return c
}

// MoveToBufferStart moves to (0, 0).
func (c Cursor) MoveToBufferStart() Cursor {
	return Origin()
}

// MoveToBufferEnd moves past the last character of the last line.
func (c Cursor) MoveToBufferEnd(lineLengths []int) Cursor {
	if len(lineLengths) == 0 {
		return c
	}
	last := len(lineLengths) - 1
	return New(last, lineLengths[last])
}

// IsValid reports whether the cursor addresses an existing position.
func (c Cursor) IsValid(lineLengths []int) bool {
	if c.Line < 0 || c.Line >= len(lineLengths) {
		return false
	}
	return c.Column >= 0 && c.Column <= lineLengths[c.Line]
}

// Clamp forces the cursor into the valid range. An empty length list
// resets to the origin.
func (c Cursor) Clamp(lineLengths []int) Cursor {
	if len(lineLengths) == 0 {
		return Origin()
	}

	c.Line = min(max(c.Line, 0), len(lineLengths)-1)
	n := lineLengths[c.Line]
	c.Column = min(max(c.Column, 0), n)
	c.DesiredColumn = min(max(c.DesiredColumn, 0), n)
	return c
}

// Position returns (line, column).
func (c Cursor) Position() (int, int) {
	return c.Line, c.Column
}

// DisplayLine returns the 1-based line number.
func (c Cursor) DisplayLine() int {
	return c.Line + 1
}

// DisplayColumn returns the 1-based column number.
func (c Cursor) DisplayColumn() int {
	return c.Column + 1
}

// String returns the 1-based "line:column" form.
func (c Cursor) String() string {
	return fmt.Sprintf("%d:%d", c.DisplayLine(), c.DisplayColumn())
}

// Equals returns true if two cursors are at the same position.
// DesiredColumn is ignored.
func (c Cursor) Equals(other Cursor) bool {
	return c.Line == other.Line && c.Column == other.Column
}

// Compare returns -1 if c < other, 0 if c == other, 1 if c > other.
func (c Cursor) Compare(other Cursor) int {
	switch {
	case c.Line < other.Line:
		return -1
	case c.Line > other.Line:
		return 1
	case c.Column < other.Column:
		return -1
	case c.Column > other.Column:
		return 1
	}
	return 0
}

// IsBefore returns true if c is before other.
func (c Cursor) IsBefore(other Cursor) bool {
	return c.Compare(other) < 0
}

// IsAfter returns true if c is after other.
func (c Cursor) IsAfter(other Cursor) bool {
	return c.Compare(other) > 0
}

// DistanceTo returns the number of characters between c and other,
// counting one per newline crossed.
func (c Cursor) DistanceTo(other Cursor, lineLengths []int) int {
	if c.Line == other.Line {
		if c.Column > other.Column {
			return c.Column - other.Column
		}
		return other.Column - c.Column
	}

	start, end := c, other
	if end.IsBefore(start) {
		start, end = end, start
	}

	distance := max(lengthAt(lineLengths, start.Line)-start.Column, 0)
	for line := start.Line + 1; line < end.Line; line++ {
		distance += lengthAt(lineLengths, line) + 1
	}
	return distance + end.Column + 1
}

func lengthAt(lineLengths []int, line int) int {
	if line < 0 || line >= len(lineLengths) {
		return 0
	}
	return lineLengths[line]
}
