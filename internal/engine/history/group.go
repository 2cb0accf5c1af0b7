package history

import (
	"github.com/maubry-ortega/Xylux-sub000/internal/engine/buffer"
)

// BeginGroup starts a command group.
// Commands added while grouping are combined into a single undo unit.
// Nested calls are ignored.
func (h *CommandHistory) BeginGroup(name string) {
	if h.grouping {
		return
	}

	h.grouping = true
	h.groupName = name
	h.groupCmds = nil
}

// EndGroup finishes a command group. All commands added since BeginGroup are
// recorded as one executed Composite. An empty group records nothing.
func (h *CommandHistory) EndGroup() {
	if !h.grouping {
		return
	}

	h.grouping = false
	cmds := h.groupCmds
	h.groupCmds = nil

	switch len(cmds) {
	case 0:
		return
	case 1:
		h.push(cmds[0])
		return
	}

	composite := Composite(cmds[0].Target, h.groupName, cmds...)
	composite.executed = true
	h.push(composite)
}

// CancelGroup cancels a command group without adding to history.
// Note: Commands already executed still affect the buffer!
func (h *CommandHistory) CancelGroup() {
	h.grouping = false
	h.groupCmds = nil
}

// AbortGroup cancels a command group and reverts the commands executed
// inside it, newest first.
func (h *CommandHistory) AbortGroup(buf *buffer.Buffer) {
	if !h.grouping {
		return
	}
	cmds := h.groupCmds
	h.CancelGroup()
	rollback(buf, cmds)
}

// IsGrouping returns true if currently in a command group.
func (h *CommandHistory) IsGrouping() bool {
	return h.grouping
}

// GroupScope provides a convenient way to group commands using defer.
// Usage:
//
//	func indentBlock(h *CommandHistory, buf *buffer.Buffer) {
//	    defer h.GroupScope("Indent").End()
//	    // ... multiple edits ...
//	}
type GroupScope struct {
	history *CommandHistory
	active  bool
}

// GroupScope starts a new group scope.
// Call End() or use with defer to properly close the group.
func (h *CommandHistory) GroupScope(name string) *GroupScope {
	h.BeginGroup(name)
	return &GroupScope{
		history: h,
		active:  true,
	}
}

// End ends the group scope.
// Safe to call multiple times; only the first call has effect.
func (g *GroupScope) End() {
	if g.active {
		g.history.EndGroup()
		g.active = false
	}
}

// Cancel cancels the group scope without creating a composite.
// Note: Commands already executed still affect the buffer.
func (g *GroupScope) Cancel() {
	if g.active {
		g.history.CancelGroup()
		g.active = false
	}
}

// Transaction runs fn inside a group. If fn fails, the commands it
// executed are undone in reverse order and nothing is recorded.
// Inside an open group the transaction joins it and rolls back only its
// own commands.
func (h *CommandHistory) Transaction(name string, buf *buffer.Buffer, fn func() error) error {
	if h.grouping {
		mark := len(h.groupCmds)
		if err := fn(); err != nil {
			rollback(buf, h.groupCmds[mark:])
			h.groupCmds = h.groupCmds[:mark]
			return err
		}
		return nil
	}

	h.BeginGroup(name)

	err := fn()
	if err != nil {
		cmds := h.groupCmds
		h.CancelGroup()
		rollback(buf, cmds)
		return err
	}

	h.EndGroup()
	return nil
}

func rollback(buf *buffer.Buffer, cmds []*Command) {
	for i := len(cmds) - 1; i >= 0; i-- {
		_ = cmds[i].Undo(buf)
	}
}

// ExecuteGrouped executes multiple commands as a single undo unit.
// On failure the commands that ran are rolled back.
func (h *CommandHistory) ExecuteGrouped(name string, buf *buffer.Buffer, cmds ...*Command) error {
	if len(cmds) == 0 {
		return nil
	}

	if len(cmds) == 1 {
		return h.Execute(cmds[0], buf)
	}

	return h.Transaction(name, buf, func() error {
		for _, cmd := range cmds {
			if err := h.Execute(cmd, buf); err != nil {
				return err
			}
		}
		return nil
	})
}

// Checkpoint represents a point in history that can be returned to.
type Checkpoint struct {
	position int
}

// CreateCheckpoint creates a checkpoint at the current history position.
func (h *CommandHistory) CreateCheckpoint() Checkpoint {
	return Checkpoint{position: h.position}
}

// UndoToCheckpoint undoes all operations since the checkpoint.
func (h *CommandHistory) UndoToCheckpoint(cp Checkpoint, buf *buffer.Buffer) error {
	for h.position > cp.position {
		if _, err := h.Undo(buf); err != nil {
			return err
		}
	}
	return nil
}

// RedoToCheckpoint redoes operations until the checkpoint position is
// reached or nothing is left to redo.
func (h *CommandHistory) RedoToCheckpoint(cp Checkpoint, buf *buffer.Buffer) error {
	for h.position < cp.position && h.CanRedo() {
		if _, err := h.Redo(buf); err != nil {
			return err
		}
	}
	return nil
}
