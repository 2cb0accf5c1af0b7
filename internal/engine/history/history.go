package history

import (
	"time"

	"github.com/maubry-ortega/Xylux-sub000/internal/engine/buffer"
)

// DefaultMaxSize is the history bound used when none is given.
const DefaultMaxSize = 1000

// OperationInfo describes a history entry for display.
type OperationInfo struct {
	Description string
	Timestamp   time.Time
}

// CommandHistory is a bounded linear undo/redo log. Commands before the
// position are applied and can be undone; commands at or after it were
// undone and can be redone.
// CommandHistory is not safe for concurrent use.
type CommandHistory struct {
	commands []*Command
	position int

	maxSize      int
	mergeSimilar bool

	// Grouping state
	grouping  bool
	groupName string
	groupCmds []*Command
}

// New creates a history holding at most maxSize commands. A non-positive
// maxSize selects DefaultMaxSize. Merging of similar commands is enabled.
func New(maxSize int) *CommandHistory {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &CommandHistory{
		maxSize:      maxSize,
		mergeSimilar: true,
	}
}

// Execute runs cmd against buf and records it. The history is left
// untouched if execution fails.
func (h *CommandHistory) Execute(cmd *Command, buf *buffer.Buffer) error {
	if err := cmd.Execute(buf); err != nil {
		return err
	}

	h.AddCommand(cmd)
	return nil
}

// AddCommand records an already executed command. When merging is enabled,
// nothing is left to redo and the newest entry can absorb cmd, the two
// merge and the length is unchanged. Otherwise the redo branch is
// discarded, cmd is appended and the oldest entry is evicted if the bound
// is exceeded.
func (h *CommandHistory) AddCommand(cmd *Command) {
	if h.grouping {
		h.groupCmds = append(h.groupCmds, cmd)
		return
	}

	h.push(cmd)
}

func (h *CommandHistory) push(cmd *Command) {
	// Only the newest entry merges; with a redo branch cmd is appended.
	if h.mergeSimilar && h.position > 0 && h.position == len(h.commands) {
		prev := h.commands[h.position-1]
		if prev.CanMergeWith(cmd) && prev.MergeWith(cmd) == nil {
			return
		}
	}

	h.truncate()
	h.commands = append(h.commands, cmd)
	h.position = len(h.commands)
	h.evict()
}

// truncate discards the redo branch.
func (h *CommandHistory) truncate() {
	for i := h.position; i < len(h.commands); i++ {
		h.commands[i] = nil
	}
	h.commands = h.commands[:h.position]
}

// evict drops the oldest entries beyond maxSize.
func (h *CommandHistory) evict() {
	if excess := len(h.commands) - h.maxSize; excess > 0 {
		h.commands = append(h.commands[:0:0], h.commands[excess:]...)
		h.position = max(h.position-excess, 0)
	}
}

// Undo reverts the command before the position and returns it. Returns nil
// and no error when there is nothing to undo. On failure the position is
// restored. Undo is refused with ErrGroupOpen while a group is open, since
// the group's edits would shift the recorded positions.
func (h *CommandHistory) Undo(buf *buffer.Buffer) (*Command, error) {
	if h.grouping {
		return nil, ErrGroupOpen
	}
	if h.position == 0 {
		return nil, nil
	}

	h.position--
	cmd := h.commands[h.position]
	if err := cmd.Undo(buf); err != nil {
		h.position++
		return nil, err
	}
	return cmd, nil
}

// Redo re-applies the command at the position and returns it. Returns nil
// and no error when there is nothing to redo. On failure the position is
// left unchanged. Like Undo it returns ErrGroupOpen while grouping.
func (h *CommandHistory) Redo(buf *buffer.Buffer) (*Command, error) {
	if h.grouping {
		return nil, ErrGroupOpen
	}
	if h.position == len(h.commands) {
		return nil, nil
	}

	cmd := h.commands[h.position]
	if err := cmd.Execute(buf); err != nil {
		return nil, err
	}
	h.position++
	return cmd, nil
}

// CanUndo returns true if undo is available.
func (h *CommandHistory) CanUndo() bool {
	return h.position > 0
}

// CanRedo returns true if redo is available.
func (h *CommandHistory) CanRedo() bool {
	return h.position < len(h.commands)
}

// Position returns the index of the next command to redo.
func (h *CommandHistory) Position() int {
	return h.position
}

// Len returns the number of recorded commands.
func (h *CommandHistory) Len() int {
	return len(h.commands)
}

// IsEmpty returns true if no commands are recorded.
func (h *CommandHistory) IsEmpty() bool {
	return len(h.commands) == 0
}

// UndoCount returns the number of undo operations available.
func (h *CommandHistory) UndoCount() int {
	return h.position
}

// RedoCount returns the number of redo operations available.
func (h *CommandHistory) RedoCount() int {
	return len(h.commands) - h.position
}

// Clear removes all history, including any open group.
func (h *CommandHistory) Clear() {
	h.commands = nil
	h.position = 0
	h.grouping = false
	h.groupCmds = nil
}

// Commands returns a copy of the recorded commands, oldest first.
func (h *CommandHistory) Commands() []*Command {
	out := make([]*Command, len(h.commands))
	copy(out, h.commands)
	return out
}

// LastUndoableDescription describes the command Undo would revert.
func (h *CommandHistory) LastUndoableDescription() (string, bool) {
	if h.position == 0 {
		return "", false
	}
	return h.commands[h.position-1].Description(), true
}

// NextRedoableDescription describes the command Redo would re-apply.
func (h *CommandHistory) NextRedoableDescription() (string, bool) {
	if h.position == len(h.commands) {
		return "", false
	}
	return h.commands[h.position].Description(), true
}

// UndoInfo returns info about available undo operations, oldest first.
func (h *CommandHistory) UndoInfo() []OperationInfo {
	return info(h.commands[:h.position])
}

// RedoInfo returns info about available redo operations, next first.
func (h *CommandHistory) RedoInfo() []OperationInfo {
	return info(h.commands[h.position:])
}

func info(cmds []*Command) []OperationInfo {
	result := make([]OperationInfo, len(cmds))
	for i, cmd := range cmds {
		result[i] = OperationInfo{
			Description: cmd.Description(),
			Timestamp:   cmd.Timestamp,
		}
	}
	return result
}

// SetMergeSimilar enables or disables coalescing of adjacent commands.
func (h *CommandHistory) SetMergeSimilar(enabled bool) {
	h.mergeSimilar = enabled
}

// MergeSimilar reports whether adjacent commands are coalesced.
func (h *CommandHistory) MergeSimilar() bool {
	return h.mergeSimilar
}

// SetMaxSize changes the bound. If the log is larger, oldest entries are
// removed.
func (h *CommandHistory) SetMaxSize(size int) {
	if size <= 0 {
		size = DefaultMaxSize
	}
	h.maxSize = size
	h.evict()
}

// MaxSize returns the maximum number of recorded commands.
func (h *CommandHistory) MaxSize() int {
	return h.maxSize
}
