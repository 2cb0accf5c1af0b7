// Package engine provides the text editing engine for Xylux.
//
// The engine package serves as the main facade, combining one buffer, its
// cursor and selection, and the undo history into a single document with a
// thread-safe API.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - buffer: line-based text storage with rune columns
//   - cursor: immutable cursor and selection values
//   - history: command-based undo/redo system
//
// # Thread Safety
//
// All Engine operations are thread-safe. The engine uses a read-write mutex
// to allow concurrent reads while serializing writes. The sub-packages carry
// no locks of their own.
//
// # Basic Usage
//
//	e := engine.New(engine.WithContent("Hello"))
//
//	e.Move(engine.MotionLineEnd, false)
//	e.InsertText(", World!") // "Hello, World!"
//
//	e.Undo() // "Hello"
//	e.Redo() // "Hello, World!"
//
// # Undo/Redo
//
// Consecutive typing merges into one undo step. Group several operations
// into a single undo unit:
//
//	e.BeginUndoGroup("format code")
//	e.InsertText("fn ")
//	e.Move(engine.MotionLineEnd, false)
//	e.InsertText(" {}")
//	e.EndUndoGroup()
//
//	e.Undo() // Undoes both insertions at once
//
// ReplaceAll and edits that replace a selection are always a single step.
//
// # Error Handling
//
// Position errors from the buffer wrap buffer.ErrOutOfBounds and can be
// tested with errors.Is. Undo and Redo return ErrNothingToUndo and
// ErrNothingToRedo when the history has nothing to offer, and a read-only
// engine returns ErrReadOnly for every edit.
package engine
