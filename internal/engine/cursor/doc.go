// Package cursor provides cursor and selection geometry for text editing.
//
// The cursor package handles:
//
//   - Single cursor positioning and movement with the Cursor type
//   - Word, line, page and buffer movement
//   - Selections in character, word, line and block modes
//   - Screen column computation for tabs and wide characters
//
// Cursor Model:
//
// A Cursor is a zero-based (line, column) position plus a desired column.
// Horizontal moves set the desired column; vertical moves leave it alone and
// clamp the column to each line they visit, so moving through a short line
// and back restores the intended column. Columns count runes.
//
// Movement never reads a buffer. Callers pass the current line lengths (or
// the lines, for word movement):
//
//	lengths := buf.LineLengths()
//	c := cursor.New(0, 8)
//	c = c.MoveDown(lengths) // column clamped, desired column still 8
//	c = c.MoveDown(lengths) // back to column 8 if the line is long enough
//
// Word Movement:
//
// A word is a run of letters, digits and underscores (IsWordChar). A run
// of other non-space characters, such as "->" or "();", also counts as a
// word, so word motions stop at punctuation instead of skipping over it.
// Whitespace separates words and is skipped.
//
// Selection Model:
//
// A Selection holds a Start and End cursor that need not be ordered plus a
// Mode. Normalized returns the ordered view, and all queries use it:
//
//	sel := cursor.NewSelection(cursor.New(0, 0), cursor.New(1, 4))
//	text := sel.Text(buf.AllLines())
//
// Thread Safety:
//
// Cursor and Selection are immutable value types and safe for concurrent
// use.
package cursor
