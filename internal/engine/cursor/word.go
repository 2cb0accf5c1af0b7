package cursor

import (
	"unicode"
	"unicode/utf8"
)

// IsWordChar reports whether r belongs to a word: a letter, a digit or '_'.
func IsWordChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// class groups runes for word movement.
type class int

const (
	classSpace class = iota
	classWord
	classPunct
)

func classOf(r rune) class {
	switch {
	case unicode.IsSpace(r):
		return classSpace
	case IsWordChar(r):
		return classWord
	default:
		return classPunct
	}
}

// MoveWordLeft moves to the start of the previous word. Whitespace before
// the cursor is skipped first, then a run of word characters or a run of
// punctuation. At column 0 it wraps to the end of the previous line.
func (c Cursor) MoveWordLeft(lines []string) Cursor {
	if c.Line < 0 || c.Line >= len(lines) {
		return c
	}

	r := []rune(lines[c.Line])
	col := min(c.Column, len(r))
	if col == 0 {
		return c.MoveLeft(runeLengths(lines))
	}

	for col > 0 && classOf(r[col-1]) == classSpace {
		col--
	}
	if col > 0 {
		run := classOf(r[col-1])
		for col > 0 && classOf(r[col-1]) == run {
			col--
		}
	}

	c.Column = col
	c.DesiredColumn = col
	return c
}

// MoveWordRight moves to the start of the next word. The run under the
// cursor is skipped, then any whitespace. At the end of a line it wraps to
// the start of the next line.
func (c Cursor) MoveWordRight(lines []string) Cursor {
	if c.Line < 0 || c.Line >= len(lines) {
		return c
	}

	r := []rune(lines[c.Line])
	col := c.Column
	if col >= len(r) {
		return c.MoveRight(runeLengths(lines))
	}

	if run := classOf(r[col]); run != classSpace {
		for col < len(r) && classOf(r[col]) == run {
			col++
		}
	}
	for col < len(r) && classOf(r[col]) == classSpace {
		col++
	}

	c.Column = col
	c.DesiredColumn = col
	return c
}

// MoveToFirstNonBlank moves to the first non-whitespace character of the
// line, or the line end when the line is blank.
func (c Cursor) MoveToFirstNonBlank(lines []string) Cursor {
	if c.Line < 0 || c.Line >= len(lines) {
		return c
	}

	col := 0
	for _, r := range lines[c.Line] {
		if !unicode.IsSpace(r) {
			break
		}
		col++
	}

	c.Column = col
	c.DesiredColumn = col
	return c
}

// runeLengths returns the rune length of every line.
func runeLengths(lines []string) []int {
	lengths := make([]int, len(lines))
	for i, l := range lines {
		lengths[i] = utf8.RuneCountInString(l)
	}
	return lengths
}
