// Package buffer provides the line-oriented text buffer at the bottom of the
// editing engine. A Buffer holds an ordered list of lines together with the
// metadata needed to persist it again: path, encoding, line ending and a
// modified flag.
//
// The buffer package provides:
//
//   - Line and column addressed insert, delete and replace operations
//   - Multi-line splicing with the Enter-key split and join operations
//   - Case-sensitive and case-insensitive search and replace
//   - Line ending detection and re-joining on output
//   - Read-only snapshots and a line diff against the last saved content
//
// Basic usage:
//
//	buf := buffer.New("Hello World")
//
//	// Insert text
//	buf.InsertText(0, 5, ", Beautiful") // "Hello, Beautiful World"
//
//	// Delete text
//	buf.DeleteText(0, 5, 11) // "Hello World"
//
//	// Replace all matches
//	n := buf.Replace("world", "Go", false) // "Hello Go", n == 1
//
// # Positions
//
// Lines and columns are zero-based. Columns count Unicode scalar values
// (runes), never bytes, so a position can not land inside a multi-byte
// character. A buffer always has at least one line; an empty document is a
// single empty line.
//
// # Errors
//
// Operations handed a structurally invalid position return an error that
// matches ErrOutOfBounds under errors.Is. Deletes that have nothing to do are
// silent no-ops, so caret driven editing stays resilient to off-by-one
// callers.
//
// # Thread Safety
//
// Buffer carries no internal synchronization. Callers serialize mutations
// per buffer; read-only calls may run concurrently with each other. Use
// Snapshot to hand a consistent copy to another goroutine.
package buffer
