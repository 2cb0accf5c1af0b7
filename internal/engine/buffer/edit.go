package buffer

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// Write Operations

// InsertText inserts text at (line, column). Text containing line breaks
// splits the line at column: the first fragment joins the left part, interior
// fragments become whole lines, and the last fragment is prepended to the
// right part.
func (b *Buffer) InsertText(line, column int, text string) error {
	if err := b.checkPosition("insert text", line, column); err != nil {
		return err
	}
	if text == "" {
		return nil
	}

	b.splice(line, column, column, text)
	b.markModified()
	return nil
}

// splice replaces runes [from, to) of line with text, which may span lines.
// The caller validates the arguments.
func (b *Buffer) splice(line, from, to int, text string) {
	r := []rune(b.lines[line])
	left, right := string(r[:from]), string(r[to:])

	parts := strings.Split(NormalizeNewlines(text), "\n")
	if len(parts) == 1 {
		b.lines[line] = left + text + right
		return
	}

	parts[0] = left + parts[0]
	parts[len(parts)-1] += right
	b.lines = slices.Replace(b.lines, line, line+1, parts...)
}

// DeleteText removes up to count runes starting at (line, column) on a
// single line. Deleting past the end of the line, or on a line that does not
// exist, is a no-op.
func (b *Buffer) DeleteText(line, column, count int) error {
	if !b.validLine(line) || column < 0 || count <= 0 {
		return nil
	}
	r := []rune(b.lines[line])
	if column >= len(r) {
		return nil
	}

	end := min(column+count, len(r))
	b.lines[line] = string(r[:column]) + string(r[end:])
	b.markModified()
	return nil
}

// DeleteChar removes the single rune at (line, column).
func (b *Buffer) DeleteChar(line, column int) error {
	return b.DeleteText(line, column, 1)
}

// DeleteRange removes the text between two positions. Columns are clamped to
// their line lengths. A range spanning lines merges the prefix of the start
// line with the suffix of the end line.
func (b *Buffer) DeleteRange(startLine, startCol, endLine, endCol int) error {
	if err := b.checkLine("delete range", startLine); err != nil {
		return err
	}
	if err := b.checkLine("delete range", endLine); err != nil {
		return err
	}

	rng := PointRange{
		Start: Point{Line: startLine, Column: startCol},
		End:   Point{Line: endLine, Column: endCol},
	}.Normalize()
	startLine, startCol = rng.Start.Line, rng.Start.Column
	endLine, endCol = rng.End.Line, rng.End.Column

	startRunes := []rune(b.lines[startLine])
	startCol = clampColumn(startCol, len(startRunes))

	if startLine == endLine {
		endCol = clampColumn(endCol, len(startRunes))
		if startCol >= endCol {
			return nil
		}
		b.lines[startLine] = string(startRunes[:startCol]) + string(startRunes[endCol:])
		b.markModified()
		return nil
	}

	endRunes := []rune(b.lines[endLine])
	endCol = clampColumn(endCol, len(endRunes))

	merged := string(startRunes[:startCol]) + string(endRunes[endCol:])
	b.lines = slices.Replace(b.lines, startLine, endLine+1, merged)
	b.markModified()
	return nil
}

// InsertLine inserts content as a new line at index line. Inserting at
// LineCount appends.
func (b *Buffer) InsertLine(line int, content string) error {
	if line < 0 || line > len(b.lines) {
		return &PositionError{Op: "insert line", Line: line, Column: -1, Limit: len(b.lines)}
	}

	b.lines = slices.Insert(b.lines, line, content)
	b.markModified()
	return nil
}

// DeleteLine removes a line. Out of range lines are ignored. Deleting the
// only line leaves a single empty line.
func (b *Buffer) DeleteLine(line int) error {
	if !b.validLine(line) {
		return nil
	}

	if len(b.lines) == 1 {
		b.lines[0] = ""
	} else {
		b.lines = slices.Delete(b.lines, line, line+1)
	}
	b.markModified()
	return nil
}

// ReplaceLine replaces the content of an existing line.
func (b *Buffer) ReplaceLine(line int, content string) error {
	if err := b.checkLine("replace line", line); err != nil {
		return err
	}

	b.lines[line] = content
	b.markModified()
	return nil
}

// JoinLines appends line+1 to line. No-op on the last line.
func (b *Buffer) JoinLines(line int) error {
	if line < 0 || line+1 >= len(b.lines) {
		return nil
	}

	b.lines[line] += b.lines[line+1]
	b.lines = slices.Delete(b.lines, line+1, line+2)
	b.markModified()
	return nil
}

// InsertNewline splits a line in two at column. A column past the end of the
// line splits at the end.
func (b *Buffer) InsertNewline(line, column int) error {
	if err := b.checkLine("insert newline", line); err != nil {
		return err
	}

	r := []rune(b.lines[line])
	column = clampColumn(column, len(r))
	b.lines[line] = string(r[:column])
	b.lines = slices.Insert(b.lines, line+1, string(r[column:]))
	b.markModified()
	return nil
}

// GetTextRange returns the text between two positions. Line boundaries are
// always rendered as "\n" regardless of the buffer's line ending.
func (b *Buffer) GetTextRange(startLine, startCol, endLine, endCol int) (string, error) {
	if err := b.checkLine("get text range", startLine); err != nil {
		return "", err
	}
	if err := b.checkLine("get text range", endLine); err != nil {
		return "", err
	}

	rng := PointRange{
		Start: Point{Line: startLine, Column: startCol},
		End:   Point{Line: endLine, Column: endCol},
	}.Normalize()

	first := []rune(b.lines[rng.Start.Line])
	from := clampColumn(rng.Start.Column, len(first))

	if rng.IsSingleLine() {
		to := clampColumn(rng.End.Column, len(first))
		if from >= to {
			return "", nil
		}
		return string(first[from:to]), nil
	}

	var sb strings.Builder
	sb.WriteString(string(first[from:]))
	for i := rng.Start.Line + 1; i < rng.End.Line; i++ {
		sb.WriteByte('\n')
		sb.WriteString(b.lines[i])
	}
	last := []rune(b.lines[rng.End.Line])
	sb.WriteByte('\n')
	sb.WriteString(string(last[:clampColumn(rng.End.Column, len(last))]))
	return sb.String(), nil
}

// RuneCount returns the number of runes in s.
func RuneCount(s string) int {
	return utf8.RuneCountInString(s)
}

func clampColumn(col, length int) int {
	if col < 0 {
		return 0
	}
	if col > length {
		return length
	}
	return col
}
