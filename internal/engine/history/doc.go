// Package history provides undo/redo functionality for the editing engine.
//
// The history system uses the Command pattern to encapsulate edits so they
// can be executed, undone and redone. Key concepts:
//
// # Commands
//
// A Command is a tagged variant: Kind selects which payload fields apply,
// and Execute and Undo switch on it. Kinds:
//   - InsertText, DeleteText, ReplaceText: text edits at a line/column
//   - InsertLine, DeleteLine: whole line edits
//   - MoveCursor, ChangeSelection: navigation, recorded but not applied
//   - Composite: several commands as one undo unit
//
// Each command tracks whether it is executed. Execute on an executed command
// and Undo on an unexecuted one are no-ops, so re-application is safe.
//
// # History
//
// CommandHistory is a bounded linear log with a position separating applied
// commands from redoable ones:
//
//	h := history.New(1000) // Max 1000 entries
//
//	// Execute and record
//	h.Execute(history.InsertText(buf.TargetKey(), 0, 0, "Hello"), buf)
//
//	// Undo/redo
//	h.Undo(buf)
//	h.Redo(buf)
//
// Recording a new command abandons anything that was undone.
//
// # Merging
//
// With merging enabled, consecutive typing (an insert that starts where the
// previous insert ended) and repeated forward deletes at one position are
// folded into the previous entry, so a burst of keystrokes undoes at once.
//
// # Command Grouping
//
// Multiple commands can be grouped as a single undo unit:
//
//	h.BeginGroup("Replace All")
//	// ... multiple edits ...
//	h.EndGroup()
//
// Now all edits undo together.
package history
