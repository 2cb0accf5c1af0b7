package history

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/maubry-ortega/Xylux-sub000/internal/engine/buffer"
	"github.com/maubry-ortega/Xylux-sub000/internal/engine/cursor"
)

var (
	// ErrIncompatibleMerge is returned by MergeWith when two commands can not
	// be coalesced.
	ErrIncompatibleMerge = errors.New("incompatible merge")

	// ErrGroupOpen is returned by Undo and Redo while a group is open.
	ErrGroupOpen = errors.New("undo group is open")
)

// Kind identifies the mutation a Command describes.
type Kind uint8

const (
	KindInsertText Kind = iota
	KindDeleteText
	KindReplaceText
	KindInsertLine
	KindDeleteLine
	KindMoveCursor
	KindChangeSelection
	KindComposite
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindInsertText:
		return "InsertText"
	case KindDeleteText:
		return "DeleteText"
	case KindReplaceText:
		return "ReplaceText"
	case KindInsertLine:
		return "InsertLine"
	case KindDeleteLine:
		return "DeleteLine"
	case KindMoveCursor:
		return "MoveCursor"
	case KindChangeSelection:
		return "ChangeSelection"
	case KindComposite:
		return "Composite"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Command is a reversible description of one edit or navigation action.
// The set of kinds is closed; Execute and Undo switch on Kind.
//
// Which payload fields are meaningful depends on Kind:
//
//	InsertText      Line, Column, Text (inserted)
//	DeleteText      Line, Column, Text (deleted)
//	ReplaceText     Line, Column, EndLine, EndColumn, OldText, Text (new)
//	InsertLine      Line, Text (line content)
//	DeleteLine      Line, Text (line content)
//	MoveCursor      OldCursor, NewCursor
//	ChangeSelection OldSelection, NewSelection
//	Composite       Children, Label
type Command struct {
	Kind Kind

	// Target identifies the buffer the command applies to.
	Target string

	Line      int
	Column    int
	EndLine   int
	EndColumn int
	Text      string
	OldText   string

	OldCursor    cursor.Cursor
	NewCursor    cursor.Cursor
	OldSelection *cursor.Selection
	NewSelection *cursor.Selection

	Children []*Command
	Label    string

	Timestamp time.Time

	executed bool
	// onlyLine records that a DeleteLine emptied the last remaining line.
	onlyLine bool
	// skipped records that a DeleteLine had no line to remove.
	skipped bool
}

func newCommand(kind Kind, target string) *Command {
	return &Command{Kind: kind, Target: target, Timestamp: time.Now()}
}

// InsertText creates a command inserting text at (line, column).
func InsertText(target string, line, column int, text string) *Command {
	c := newCommand(KindInsertText, target)
	c.Line, c.Column, c.Text = line, column, buffer.NormalizeNewlines(text)
	return c
}

// DeleteText creates a command deleting text, which must be the content
// currently found at (line, column).
func DeleteText(target string, line, column int, text string) *Command {
	c := newCommand(KindDeleteText, target)
	c.Line, c.Column, c.Text = line, column, buffer.NormalizeNewlines(text)
	return c
}

// ReplaceText creates a command replacing the range holding oldText with
// newText.
func ReplaceText(target string, startLine, startCol, endLine, endCol int, oldText, newText string) *Command {
	c := newCommand(KindReplaceText, target)
	c.Line, c.Column = startLine, startCol
	c.EndLine, c.EndColumn = endLine, endCol
	c.OldText, c.Text = buffer.NormalizeNewlines(oldText), buffer.NormalizeNewlines(newText)
	return c
}

// InsertLine creates a command inserting a whole line at index line.
func InsertLine(target string, line int, content string) *Command {
	c := newCommand(KindInsertLine, target)
	c.Line, c.Text = line, content
	return c
}

// DeleteLine creates a command removing line, whose content is recorded for
// undo.
func DeleteLine(target string, line int, content string) *Command {
	c := newCommand(KindDeleteLine, target)
	c.Line, c.Text = line, content
	return c
}

// MoveCursor records a cursor movement. It does not touch the buffer.
func MoveCursor(target string, from, to cursor.Cursor) *Command {
	c := newCommand(KindMoveCursor, target)
	c.OldCursor, c.NewCursor = from, to
	return c
}

// ChangeSelection records a selection change. Either side may be nil for
// "no selection". It does not touch the buffer.
func ChangeSelection(target string, from, to *cursor.Selection) *Command {
	c := newCommand(KindChangeSelection, target)
	c.OldSelection, c.NewSelection = from, to
	return c
}

// Composite groups commands into a single undo unit.
func Composite(target, label string, children ...*Command) *Command {
	c := newCommand(KindComposite, target)
	c.Label = label
	c.Children = children
	return c
}

// IsExecuted reports whether the command is currently applied.
func (c *Command) IsExecuted() bool {
	return c.executed
}

// Execute applies the command to buf. It is a no-op if the command is
// already executed. A composite runs its children in order and stops at the
// first failure, leaving the children that already ran applied.
func (c *Command) Execute(buf *buffer.Buffer) error {
	if c.executed {
		return nil
	}

	switch c.Kind {
	case KindInsertText:
		if err := buf.InsertText(c.Line, c.Column, c.Text); err != nil {
			return fmt.Errorf("execute %s: %w", c.Kind, err)
		}

	case KindDeleteText:
		if err := deleteSpan(buf, c.Line, c.Column, c.Text); err != nil {
			return fmt.Errorf("execute %s: %w", c.Kind, err)
		}

	case KindReplaceText:
		if err := buf.DeleteRange(c.Line, c.Column, c.EndLine, c.EndColumn); err != nil {
			return fmt.Errorf("execute %s: %w", c.Kind, err)
		}
		if err := buf.InsertText(c.Line, c.Column, c.Text); err != nil {
			return fmt.Errorf("execute %s: %w", c.Kind, err)
		}

	case KindInsertLine:
		if err := buf.InsertLine(c.Line, c.Text); err != nil {
			return fmt.Errorf("execute %s: %w", c.Kind, err)
		}

	case KindDeleteLine:
		c.skipped = c.Line < 0 || c.Line >= buf.LineCount()
		c.onlyLine = !c.skipped && buf.LineCount() == 1
		if err := buf.DeleteLine(c.Line); err != nil {
			return fmt.Errorf("execute %s: %w", c.Kind, err)
		}

	case KindMoveCursor, KindChangeSelection:
		// Recorded for the caller; the buffer is untouched.

	case KindComposite:
		for i, child := range c.Children {
			if err := child.Execute(buf); err != nil {
				return fmt.Errorf("composite %q step %d: %w", c.Label, i, err)
			}
		}
	}

	c.executed = true
	return nil
}

// Undo reverses the command. It is a no-op if the command is not executed.
// A composite undoes its children in reverse order.
func (c *Command) Undo(buf *buffer.Buffer) error {
	if !c.executed {
		return nil
	}

	switch c.Kind {
	case KindInsertText:
		if err := deleteSpan(buf, c.Line, c.Column, c.Text); err != nil {
			return fmt.Errorf("undo %s: %w", c.Kind, err)
		}

	case KindDeleteText:
		if err := buf.InsertText(c.Line, c.Column, c.Text); err != nil {
			return fmt.Errorf("undo %s: %w", c.Kind, err)
		}

	case KindReplaceText:
		if err := deleteSpan(buf, c.Line, c.Column, c.Text); err != nil {
			return fmt.Errorf("undo %s: %w", c.Kind, err)
		}
		if err := buf.InsertText(c.Line, c.Column, c.OldText); err != nil {
			return fmt.Errorf("undo %s: %w", c.Kind, err)
		}

	case KindInsertLine:
		if err := buf.DeleteLine(c.Line); err != nil {
			return fmt.Errorf("undo %s: %w", c.Kind, err)
		}

	case KindDeleteLine:
		var err error
		switch {
		case c.skipped:
		case c.onlyLine:
			err = buf.ReplaceLine(0, c.Text)
		default:
			err = buf.InsertLine(c.Line, c.Text)
		}
		if err != nil {
			return fmt.Errorf("undo %s: %w", c.Kind, err)
		}

	case KindMoveCursor, KindChangeSelection:

	case KindComposite:
		for i := len(c.Children) - 1; i >= 0; i-- {
			if err := c.Children[i].Undo(buf); err != nil {
				return fmt.Errorf("undo composite %q step %d: %w", c.Label, i, err)
			}
		}
	}

	c.executed = false
	return nil
}

// deleteSpan removes text that starts at (line, column). Text spanning
// several lines is removed as a range.
func deleteSpan(buf *buffer.Buffer, line, column int, text string) error {
	text = buffer.NormalizeNewlines(text)
	if !strings.Contains(text, "\n") {
		return buf.DeleteText(line, column, buffer.RuneCount(text))
	}
	end := SpanEnd(buffer.Point{Line: line, Column: column}, text)
	return buf.DeleteRange(line, column, end.Line, end.Column)
}

// SpanEnd returns the position just after text when it is inserted at start.
// CRLF and lone CR count as line breaks, as they do in the buffer.
func SpanEnd(start buffer.Point, text string) buffer.Point {
	text = buffer.NormalizeNewlines(text)
	n := strings.Count(text, "\n")
	if n == 0 {
		return buffer.Point{Line: start.Line, Column: start.Column + buffer.RuneCount(text)}
	}
	last := text[strings.LastIndexByte(text, '\n')+1:]
	return buffer.Point{Line: start.Line + n, Column: buffer.RuneCount(last)}
}

// CanMergeWith reports whether other can be folded into c: consecutive
// typing (an insert starting where c's insert ended) or consecutive forward
// deletes at the same position, on the same buffer.
func (c *Command) CanMergeWith(other *Command) bool {
	if other == nil || c.Target != other.Target || c.Kind != other.Kind {
		return false
	}

	switch c.Kind {
	case KindInsertText:
		end := SpanEnd(buffer.Point{Line: c.Line, Column: c.Column}, c.Text)
		return end == buffer.Point{Line: other.Line, Column: other.Column}
	case KindDeleteText:
		return c.Line == other.Line && c.Column == other.Column
	default:
		return false
	}
}

// MergeWith folds other into c by concatenating their text payloads.
func (c *Command) MergeWith(other *Command) error {
	if !c.CanMergeWith(other) {
		if other == nil {
			return fmt.Errorf("%w: %s with nil", ErrIncompatibleMerge, c.Kind)
		}
		return fmt.Errorf("%w: %s with %s", ErrIncompatibleMerge, c.Kind, other.Kind)
	}

	c.Text += other.Text
	c.Timestamp = other.Timestamp
	return nil
}

// AffectsContent reports whether the command changes buffer content.
// Composites affect content if any child does.
func (c *Command) AffectsContent() bool {
	switch c.Kind {
	case KindMoveCursor, KindChangeSelection:
		return false
	case KindComposite:
		for _, child := range c.Children {
			if child.AffectsContent() {
				return true
			}
		}
		return false
	default:
		return true
	}
}

// Description returns a human-readable description of the command.
func (c *Command) Description() string {
	switch c.Kind {
	case KindInsertText:
		return fmt.Sprintf("Insert '%s'", truncate(c.Text, 20))
	case KindDeleteText:
		return fmt.Sprintf("Delete '%s'", truncate(c.Text, 20))
	case KindReplaceText:
		return fmt.Sprintf("Replace '%s' with '%s'", truncate(c.OldText, 10), truncate(c.Text, 10))
	case KindInsertLine:
		return "Insert line"
	case KindDeleteLine:
		return "Delete line"
	case KindMoveCursor:
		return "Move cursor"
	case KindChangeSelection:
		return "Change selection"
	case KindComposite:
		if c.Label != "" {
			return c.Label
		}
		if len(c.Children) == 1 {
			return c.Children[0].Description()
		}
		return fmt.Sprintf("%d operations", len(c.Children))
	default:
		return c.Kind.String()
	}
}

// Clone returns an unexecuted deep copy of the command.
func (c *Command) Clone() *Command {
	clone := *c
	clone.executed = false
	clone.onlyLine = false
	clone.skipped = false
	if c.OldSelection != nil {
		sel := *c.OldSelection
		clone.OldSelection = &sel
	}
	if c.NewSelection != nil {
		sel := *c.NewSelection
		clone.NewSelection = &sel
	}
	if c.Children != nil {
		clone.Children = make([]*Command, len(c.Children))
		for i, child := range c.Children {
			clone.Children[i] = child.Clone()
		}
	}
	return &clone
}

// truncate returns the first n runes of s.
func truncate(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
