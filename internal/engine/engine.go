package engine

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/maubry-ortega/Xylux-sub000/internal/engine/buffer"
	"github.com/maubry-ortega/Xylux-sub000/internal/engine/cursor"
	"github.com/maubry-ortega/Xylux-sub000/internal/engine/history"
	"github.com/maubry-ortega/Xylux-sub000/internal/log"
)

// Re-export commonly used types for convenience.
type (
	// Point represents a line/column position.
	Point = buffer.Point

	// LineEnding specifies the line ending style.
	LineEnding = buffer.LineEnding

	// Cursor is an insertion point.
	Cursor = cursor.Cursor

	// Selection represents a cursor selection.
	Selection = cursor.Selection

	// Command is an undoable edit command.
	Command = history.Command
)

// Re-export constants.
const (
	LineEndingLF   = buffer.LineEndingLF
	LineEndingCRLF = buffer.LineEndingCRLF
	LineEndingCR   = buffer.LineEndingCR
)

// Status summarizes the editing state for a status line.
// Line and Column are 1-based; VisualColumn expands tabs.
type Status struct {
	Line         int
	Column       int
	VisualColumn int
	LineCount    int
	Selected     int
	Modified     bool
	LineEnding   LineEnding
	Encoding     string
	Path         string
}

// Engine is the main facade for the editing engine. It combines one
// buffer, its cursor and selection, and the undo history into a single
// document behind a read-write mutex.
//
// All operations are safe to call from multiple goroutines.
type Engine struct {
	mu sync.RWMutex

	// Core components
	buf  *buffer.Buffer
	cur  cursor.Cursor
	sel  *cursor.Selection
	hist *history.CommandHistory

	// Configuration
	tabWidth       int
	pageSize       int
	maxUndoEntries int
	mergeSimilar   bool
	readOnly       bool
	logger         *slog.Logger

	// Initialization
	initContent string
	initBuffer  *buffer.Buffer
	bufferOpts  []buffer.Option
}

// New creates a new engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{
		tabWidth:       DefaultTabWidth,
		pageSize:       DefaultPageSize,
		maxUndoEntries: DefaultMaxUndoEntries,
		mergeSimilar:   true,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = log.For(log.CatEngine)
	}

	if e.initBuffer != nil {
		e.buf = e.initBuffer
	} else {
		e.buf = buffer.New(e.initContent, e.bufferOpts...)
	}
	e.initBuffer = nil
	e.initContent = ""
	e.bufferOpts = nil

	e.hist = history.New(e.maxUndoEntries)
	e.hist.SetMergeSimilar(e.mergeSimilar)

	return e
}

// ============================================================================
// Read Operations
// ============================================================================

// Content returns the full text using the buffer's line ending.
func (e *Engine) Content() string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.buf.Content()
}

// Line returns the text of a line without its terminator.
func (e *Engine) Line(line int) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.buf.Line(line)
}

// LineCount returns the number of lines. It is always at least 1.
func (e *Engine) LineCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.buf.LineCount()
}

// Lines returns a copy of every line.
func (e *Engine) Lines() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.buf.AllLines()
}

// Snapshot returns a read-only copy of the buffer.
func (e *Engine) Snapshot() *buffer.Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.buf.Snapshot()
}

// Find returns the start of every occurrence of query.
func (e *Engine) Find(query string, caseSensitive bool) []Point {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.buf.Find(query, caseSensitive)
}

// Path returns the file path of the buffer.
func (e *Engine) Path() string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.buf.Path()
}

// SetPath changes the file path of the buffer.
func (e *Engine) SetPath(path string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.buf.SetPath(path)
}

// Encoding returns the encoding label of the buffer.
func (e *Engine) Encoding() string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.buf.Encoding()
}

// LineEnding returns the line ending used by Content.
func (e *Engine) LineEnding() LineEnding {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.buf.LineEnding()
}

// SetLineEnding changes the line ending. The change is not undoable.
func (e *Engine) SetLineEnding(ending LineEnding) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}

	e.buf.SetLineEnding(ending)
	return nil
}

// IsModified returns true if the buffer changed since it was last saved.
func (e *Engine) IsModified() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.buf.IsModified()
}

// IsReadOnly returns true if the engine rejects edits.
func (e *Engine) IsReadOnly() bool {
	return e.readOnly
}

// TabWidth returns the tab width used for visual columns.
func (e *Engine) TabWidth() int {
	return e.tabWidth
}

// UnifiedDiff returns the changes since the last save as a unified diff.
func (e *Engine) UnifiedDiff() string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.buf.UnifiedDiff()
}

// Status returns the current cursor position and document state.
func (e *Engine) Status() Status {
	e.mu.RLock()
	defer e.mu.RUnlock()

	line, _ := e.buf.Line(e.cur.Line)
	st := Status{
		Line:         e.cur.DisplayLine(),
		Column:       e.cur.DisplayColumn(),
		VisualColumn: e.cur.VisualColumn(line, e.tabWidth) + 1,
		LineCount:    e.buf.LineCount(),
		Modified:     e.buf.IsModified(),
		LineEnding:   e.buf.LineEnding(),
		Encoding:     e.buf.Encoding(),
		Path:         e.buf.Path(),
	}
	if e.sel != nil {
		st.Selected = e.sel.Size(e.buf.LineLengths())
	}
	return st
}

// ============================================================================
// Cursor and Selection
// ============================================================================

// Cursor returns the current cursor.
func (e *Engine) Cursor() Cursor {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.cur
}

// SetCursor moves the cursor, clamped to the buffer, and drops the
// selection.
func (e *Engine) SetCursor(line, column int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cur = cursor.New(line, column).Clamp(e.buf.LineLengths())
	e.sel = nil
}

// Move moves the cursor. With extend set the selection grows from its
// anchor (or from the old cursor) to the new position; otherwise the
// selection is dropped.
func (e *Engine) Move(m Motion, extend bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	next := m.apply(e.cur, e.buf.AllLines(), e.buf.LineLengths(), e.pageSize)

	if extend {
		sel := cursor.FromCursor(e.cur)
		if e.sel != nil {
			sel = *e.sel
		}
		sel = sel.ExtendTo(next)
		e.sel = &sel
	} else {
		e.sel = nil
	}
	e.cur = next
}

// Selection returns the current selection. ok is false if nothing is
// selected.
func (e *Engine) Selection() (sel Selection, ok bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.sel == nil {
		return Selection{}, false
	}
	return *e.sel, true
}

// SetSelection selects a range. The cursor moves to the selection end.
func (e *Engine) SetSelection(sel Selection) {
	e.mu.Lock()
	defer e.mu.Unlock()

	lengths := e.buf.LineLengths()
	sel = clampSelection(sel, lengths)
	e.sel = &sel
	e.cur = sel.End.Clamp(lengths)
}

// SetSelectionMode reinterprets the current selection in mode.
func (e *Engine) SetSelectionMode(mode cursor.Mode) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.sel == nil {
		return
	}
	sel := e.sel.ConvertToMode(mode, e.buf.AllLines())
	e.sel = &sel
}

// ClearSelection drops the selection, leaving the cursor in place.
func (e *Engine) ClearSelection() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.sel = nil
}

// SelectAll selects the whole buffer.
func (e *Engine) SelectAll() {
	e.mu.Lock()
	defer e.mu.Unlock()

	lengths := e.buf.LineLengths()
	sel := cursor.NewSelection(cursor.Origin(), cursor.Origin().MoveToBufferEnd(lengths))
	e.sel = &sel
	e.cur = sel.End
}

// SelectedText returns the selected text, or "" without a selection.
func (e *Engine) SelectedText() string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.sel == nil {
		return ""
	}
	return e.sel.Text(e.buf.AllLines())
}

// FindNext selects the next occurrence of query from the cursor,
// wrapping to the top of the buffer. ok is false if there is none.
func (e *Engine) FindNext(query string, caseSensitive bool) (Point, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	matches := e.buf.Find(query, caseSensitive)
	if len(matches) == 0 {
		return Point{}, false
	}

	// A match at the cursor counts only when nothing is selected yet, so
	// repeated calls step through the matches.
	at := Point{Line: e.cur.Line, Column: e.cur.Column}
	match := matches[0]
	for _, m := range matches {
		if m.After(at) || (e.sel == nil && m == at) {
			match = m
			break
		}
	}

	end := history.SpanEnd(match, query)
	sel := cursor.NewSelection(cursor.New(match.Line, match.Column), cursor.New(end.Line, end.Column))
	e.sel = &sel
	e.cur = sel.End
	return match, true
}

// ============================================================================
// Edit Operations
// ============================================================================

// InsertText inserts text at the cursor, replacing a non-empty selection.
// The cursor ends up after the inserted text.
func (e *Engine) InsertText(text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	if text == "" {
		return nil
	}

	target := e.buf.TargetKey()
	at := e.cur
	var cmds []*history.Command
	if e.sel != nil && !e.sel.IsEmpty() {
		cmds, at = e.selectionDeletes(*e.sel, true)
	}
	cmds = append(cmds, history.InsertText(target, at.Line, at.Column, text))

	if err := e.exec("Replace selection", cmds...); err != nil {
		return err
	}

	end := history.SpanEnd(Point{Line: at.Line, Column: at.Column}, text)
	e.placeCursor(cursor.New(end.Line, end.Column))
	return nil
}

// InsertNewline splits the line at the cursor.
func (e *Engine) InsertNewline() error {
	return e.InsertText("\n")
}

// Backspace deletes the selection, or the character before the cursor.
// At the start of a line it joins the line onto the previous one.
func (e *Engine) Backspace() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	if e.sel != nil && !e.sel.IsEmpty() {
		return e.deleteSelection()
	}

	target := e.buf.TargetKey()
	line, _ := e.buf.Line(e.cur.Line)
	r := []rune(line)

	var cmd *history.Command
	var to cursor.Cursor
	switch col := min(e.cur.Column, len(r)); {
	case col > 0:
		cmd = history.DeleteText(target, e.cur.Line, col-1, string(r[col-1]))
		to = cursor.New(e.cur.Line, col-1)
	case e.cur.Line > 0:
		prev := e.buf.LineLength(e.cur.Line - 1)
		cmd = history.DeleteText(target, e.cur.Line-1, prev, "\n")
		to = cursor.New(e.cur.Line-1, prev)
	default:
		return nil
	}

	if err := e.exec("", cmd); err != nil {
		return err
	}
	e.placeCursor(to)
	return nil
}

// DeleteForward deletes the selection, or the character under the cursor.
// At the end of a line it joins the next line onto this one.
func (e *Engine) DeleteForward() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	if e.sel != nil && !e.sel.IsEmpty() {
		return e.deleteSelection()
	}

	target := e.buf.TargetKey()
	line, _ := e.buf.Line(e.cur.Line)
	r := []rune(line)

	var cmd *history.Command
	switch col := min(e.cur.Column, len(r)); {
	case col < len(r):
		cmd = history.DeleteText(target, e.cur.Line, col, string(r[col]))
	case e.cur.Line+1 < e.buf.LineCount():
		cmd = history.DeleteText(target, e.cur.Line, col, "\n")
	default:
		return nil
	}

	if err := e.exec("", cmd); err != nil {
		return err
	}
	e.placeCursor(cursor.New(cmd.Line, cmd.Column))
	return nil
}

// DeleteSelection removes the selected text. Line selections remove whole
// lines and block selections remove the column band on every line.
func (e *Engine) DeleteSelection() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	if e.sel == nil || e.sel.IsEmpty() {
		return nil
	}
	return e.deleteSelection()
}

// DeleteLine removes the cursor line.
func (e *Engine) DeleteLine() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}

	line, _ := e.buf.Line(e.cur.Line)
	cmd := history.DeleteLine(e.buf.TargetKey(), e.cur.Line, line)
	if err := e.exec("", cmd); err != nil {
		return err
	}
	e.placeCursor(cursor.New(e.cur.Line, e.cur.Column))
	return nil
}

// ReplaceAll substitutes replacement for every occurrence of query as a
// single undo step and returns the number of replacements. Overlapping
// matches are resolved leftmost first and the rest are replaced last to
// first.
func (e *Engine) ReplaceAll(query, replacement string, caseSensitive bool) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return 0, ErrReadOnly
	}

	width := buffer.RuneCount(query)
	matches := buffer.NonOverlapping(e.buf.Find(query, caseSensitive), width)
	if len(matches) == 0 {
		return 0, nil
	}

	target := e.buf.TargetKey()
	count := 0
	err := e.hist.Transaction("Replace all", e.buf, func() error {
		for i := len(matches) - 1; i >= 0; i-- {
			m := matches[i]
			old, ok := e.buf.MatchAt(m, query, caseSensitive)
			if !ok {
				continue
			}
			cmd := history.ReplaceText(target, m.Line, m.Column, m.Line, m.Column+width, old, replacement)
			if err := e.hist.Execute(cmd, e.buf); err != nil {
				return err
			}
			count++
		}
		return nil
	})
	if err != nil {
		e.logger.Warn("replace all failed", "query", query, "error", err)
		return 0, fmt.Errorf("replace all: %w", err)
	}

	e.logger.Debug("replace all", "query", query, "count", count)
	e.placeCursor(e.cur)
	return count, nil
}

// ============================================================================
// Undo/Redo Operations
// ============================================================================

// Undo undoes the last operation and moves the cursor to where it happened.
func (e *Engine) Undo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}

	cmd, err := e.hist.Undo(e.buf)
	if err != nil {
		e.logger.Warn("undo failed", "error", err)
		return fmt.Errorf("undo: %w", err)
	}
	if cmd == nil {
		return ErrNothingToUndo
	}

	e.logger.Debug("undo", "command", cmd.Description())
	e.restore(cmd, true)
	return nil
}

// Redo redoes the last undone operation.
func (e *Engine) Redo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}

	cmd, err := e.hist.Redo(e.buf)
	if err != nil {
		e.logger.Warn("redo failed", "error", err)
		return fmt.Errorf("redo: %w", err)
	}
	if cmd == nil {
		return ErrNothingToRedo
	}

	e.logger.Debug("redo", "command", cmd.Description())
	e.restore(cmd, false)
	return nil
}

// CanUndo returns true if undo is available.
func (e *Engine) CanUndo() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.hist.CanUndo()
}

// CanRedo returns true if redo is available.
func (e *Engine) CanRedo() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.hist.CanRedo()
}

// UndoCount returns the number of available undo operations.
func (e *Engine) UndoCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.hist.UndoCount()
}

// RedoCount returns the number of available redo operations.
func (e *Engine) RedoCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.hist.RedoCount()
}

// UndoDescription describes the operation Undo would revert.
func (e *Engine) UndoDescription() (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.hist.LastUndoableDescription()
}

// RedoDescription describes the operation Redo would re-apply.
func (e *Engine) RedoDescription() (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.hist.NextRedoableDescription()
}

// History returns display info for the undoable operations, oldest first.
func (e *Engine) History() []history.OperationInfo {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.hist.UndoInfo()
}

// BeginUndoGroup starts a new undo group.
// All operations until EndUndoGroup will be undone as a single unit.
func (e *Engine) BeginUndoGroup(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.logger.Debug("begin group", "name", name)
	e.hist.BeginGroup(name)
}

// EndUndoGroup ends the current undo group.
func (e *Engine) EndUndoGroup() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.hist.EndGroup()
}

// CancelUndoGroup cancels the current undo group without recording.
// Edits made inside the group stay applied.
func (e *Engine) CancelUndoGroup() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.hist.CancelGroup()
}

// AbortUndoGroup cancels the current undo group and reverts the edits
// made inside it.
func (e *Engine) AbortUndoGroup() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.hist.IsGrouping() {
		return
	}
	e.logger.Debug("abort group")
	e.hist.AbortGroup(e.buf)
	e.placeCursor(e.cur)
}

// ClearHistory removes all undo/redo history.
func (e *Engine) ClearHistory() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.hist.Clear()
}

// ============================================================================
// Command Execution
// ============================================================================

// Execute runs a command and adds it to undo history. Commands without a
// target are bound to this engine's buffer.
func (e *Engine) Execute(cmd *Command) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}

	bindTarget(cmd, e.buf.TargetKey())
	if err := e.hist.Execute(cmd, e.buf); err != nil {
		e.logger.Warn("execute failed", "command", cmd.Description(), "error", err)
		return err
	}
	e.restore(cmd, false)
	return nil
}

// ============================================================================
// Persistence
// ============================================================================

// Save passes the content and encoding to write and marks the buffer saved
// when write succeeds.
func (e *Engine) Save(write func(content, encoding string) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := write(e.buf.Content(), e.buf.Encoding()); err != nil {
		return err
	}
	e.buf.MarkSaved()
	e.logger.Debug("saved", "path", e.buf.Path())
	return nil
}

// MarkSaved records the current content as the saved state.
func (e *Engine) MarkSaved() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.buf.MarkSaved()
}

// ============================================================================
// Internal helpers (must hold e.mu)
// ============================================================================

// exec records cmds as one undo step.
func (e *Engine) exec(label string, cmds ...*history.Command) error {
	if err := e.hist.ExecuteGrouped(label, e.buf, cmds...); err != nil {
		e.logger.Warn("edit failed", "error", err)
		return err
	}
	return nil
}

// placeCursor moves the cursor after an edit and drops the selection.
func (e *Engine) placeCursor(c cursor.Cursor) {
	e.cur = c.Clamp(e.buf.LineLengths())
	e.sel = nil
}

func (e *Engine) deleteSelection() error {
	cmds, at := e.selectionDeletes(*e.sel, false)
	if len(cmds) == 0 {
		e.sel = nil
		return nil
	}
	if err := e.exec("Delete selection", cmds...); err != nil {
		return err
	}
	e.placeCursor(at)
	return nil
}

// selectionDeletes returns the commands that remove sel and the cursor
// position once they ran. With asText set, a line selection removes the
// text of its lines but keeps one line in their place.
func (e *Engine) selectionDeletes(sel cursor.Selection, asText bool) ([]*history.Command, cursor.Cursor) {
	target := e.buf.TargetKey()
	lines := e.buf.AllLines()
	n := sel.Normalized()
	first, last := sel.CoveredLines()
	last = min(last, len(lines)-1)

	switch {
	case sel.Mode == cursor.ModeLine && !asText:
		var cmds []*history.Command
		for i := last; i >= first; i-- {
			cmds = append(cmds, history.DeleteLine(target, i, lines[i]))
		}
		remaining := max(len(lines)-(last-first+1), 1)
		return cmds, cursor.New(min(first, remaining-1), 0)

	case sel.Mode == cursor.ModeBlock:
		lo, hi, _ := n.ColumnRangeForLine(first)
		var cmds []*history.Command
		for i := last; i >= first; i-- {
			r := []rune(lines[i])
			from, to := min(lo, len(r)), min(hi, len(r))
			if to > from {
				cmds = append(cmds, history.DeleteText(target, i, from, string(r[from:to])))
			}
		}
		return cmds, cursor.New(first, min(lo, buffer.RuneCount(lines[first])))
	}

	start, end := n.Start, n.End
	if sel.Mode == cursor.ModeLine {
		start = cursor.New(first, 0)
		end = cursor.New(last, buffer.RuneCount(lines[last]))
	}
	lengths := e.buf.LineLengths()
	start, end = start.Clamp(lengths), end.Clamp(lengths)

	text, err := e.buf.GetTextRange(start.Line, start.Column, end.Line, end.Column)
	if err != nil || text == "" {
		return nil, start
	}
	return []*history.Command{history.DeleteText(target, start.Line, start.Column, text)}, start
}

// restore repositions the cursor after cmd was undone (undo set) or
// applied. Selection commands restore the recorded selection.
func (e *Engine) restore(cmd *history.Command, undo bool) {
	c, ok := cursorFor(cmd, undo)
	if !ok {
		c = e.cur
	}
	e.placeCursor(c)

	if cmd.Kind != history.KindChangeSelection {
		return
	}
	sel := cmd.NewSelection
	if undo {
		sel = cmd.OldSelection
	}
	if sel != nil {
		s := clampSelection(*sel, e.buf.LineLengths())
		e.sel = &s
	}
}

// cursorFor returns where the cursor belongs once cmd was undone or
// applied: the start of the change, or the end of inserted text.
func cursorFor(cmd *history.Command, undo bool) (cursor.Cursor, bool) {
	start := buffer.Point{Line: cmd.Line, Column: cmd.Column}

	switch cmd.Kind {
	case history.KindInsertText, history.KindReplaceText:
		if undo {
			return cursor.New(start.Line, start.Column), true
		}
		end := history.SpanEnd(start, cmd.Text)
		return cursor.New(end.Line, end.Column), true
	case history.KindDeleteText:
		return cursor.New(start.Line, start.Column), true
	case history.KindInsertLine, history.KindDeleteLine:
		return cursor.New(cmd.Line, 0), true
	case history.KindMoveCursor:
		if undo {
			return cmd.OldCursor, true
		}
		return cmd.NewCursor, true
	case history.KindComposite:
		if len(cmd.Children) == 0 {
			return cursor.Cursor{}, false
		}
		if undo {
			return cursorFor(cmd.Children[0], true)
		}
		return cursorFor(cmd.Children[len(cmd.Children)-1], false)
	default:
		return cursor.Cursor{}, false
	}
}

// bindTarget sets the target of cmd and its children where it is empty.
func bindTarget(cmd *history.Command, target string) {
	if cmd.Target == "" {
		cmd.Target = target
	}
	for _, child := range cmd.Children {
		bindTarget(child, target)
	}
}

// clampSelection keeps sel inside the buffer. Line selections keep their
// exclusive end at column 0 of the line after the last covered one.
func clampSelection(sel cursor.Selection, lengths []int) cursor.Selection {
	if sel.Mode != cursor.ModeLine {
		sel.Start = sel.Start.Clamp(lengths)
		sel.End = sel.End.Clamp(lengths)
		return sel
	}

	first, last := sel.CoveredLines()
	last = min(max(last, 0), len(lengths)-1)
	first = min(max(first, 0), last)
	return cursor.NewSelectionWithMode(cursor.New(first, 0), cursor.New(last+1, 0), cursor.ModeLine)
}
