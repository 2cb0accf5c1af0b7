package buffer

import (
	"slices"
	"unicode"
)

// Find returns the start of every occurrence of query in document order.
// Scanning resumes one rune after each match start, so overlapping
// occurrences are all reported. An empty query matches nothing.
func (b *Buffer) Find(query string, caseSensitive bool) []Point {
	needle := foldRunes([]rune(query), caseSensitive)
	if len(needle) == 0 {
		return nil
	}

	var matches []Point
	for i, line := range b.lines {
		hay := foldRunes([]rune(line), caseSensitive)
		for col := 0; col+len(needle) <= len(hay); col++ {
			if runesEqualAt(hay, col, needle) {
				matches = append(matches, Point{Line: i, Column: col})
			}
		}
	}
	return matches
}

// FindAll returns every exact, case-sensitive occurrence of pattern.
func (b *Buffer) FindAll(pattern string) []Point {
	return b.Find(pattern, true)
}

// Replace substitutes replacement for every occurrence of query and returns
// the number of replacements. Overlapping occurrences are resolved leftmost
// first (see NonOverlapping). Matches are applied in reverse document order
// so earlier columns stay valid.
func (b *Buffer) Replace(query, replacement string, caseSensitive bool) int {
	width := RuneCount(query)
	matches := NonOverlapping(b.Find(query, caseSensitive), width)
	if len(matches) == 0 {
		return 0
	}

	for i := len(matches) - 1; i >= 0; i-- {
		m := matches[i]
		b.splice(m.Line, m.Column, m.Column+width, replacement)
	}

	b.markModified()
	return len(matches)
}

// NonOverlapping keeps the matches of a width-rune query that do not
// overlap an earlier kept match. matches must be in document order, as Find
// returns them.
func NonOverlapping(matches []Point, width int) []Point {
	kept := make([]Point, 0, len(matches))
	for _, m := range matches {
		if n := len(kept); n > 0 {
			last := kept[n-1]
			if last.Line == m.Line && m.Column < last.Column+width {
				continue
			}
		}
		kept = append(kept, m)
	}
	return kept
}

// MatchAt reports whether query occurs at p and returns the matched text as
// it appears in the buffer.
func (b *Buffer) MatchAt(p Point, query string, caseSensitive bool) (string, bool) {
	needle := foldRunes([]rune(query), caseSensitive)
	if len(needle) == 0 || !b.validLine(p.Line) || p.Column < 0 {
		return "", false
	}

	line := []rune(b.lines[p.Line])
	if p.Column+len(needle) > len(line) {
		return "", false
	}

	found := line[p.Column : p.Column+len(needle)]
	if !runesEqualAt(foldRunes(slices.Clone(found), caseSensitive), 0, needle) {
		return "", false
	}
	return string(found), true
}

// foldRunes lower-cases r in place unless caseSensitive is set. Simple
// per-rune case mapping keeps the rune count, so match columns index the
// original line.
func foldRunes(r []rune, caseSensitive bool) []rune {
	if caseSensitive {
		return r
	}
	for i, c := range r {
		r[i] = unicode.ToLower(c)
	}
	return r
}

func runesEqualAt(hay []rune, at int, needle []rune) bool {
	for j, c := range needle {
		if hay[at+j] != c {
			return false
		}
	}
	return true
}
