package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/maubry-ortega/Xylux-sub000/internal/engine"
	"github.com/maubry-ortega/Xylux-sub000/internal/engine/cursor"
)

// editorModule binds an engine to Lua. Lines and columns cross the
// boundary 1-based.
type editorModule struct {
	e             *engine.Engine
	sandbox       *Sandbox
	caseSensitive bool
}

// OpenEditor exposes e to scripts as the "editor" module.
func (s *State) OpenEditor(e *engine.Engine) {
	m := &editorModule{e: e, sandbox: s.sandbox, caseSensitive: s.caseSensitive}
	s.RegisterModule("editor", m.funcs())
}

func (m *editorModule) funcs() map[string]lua.LGFunction {
	fns := map[string]lua.LGFunction{
		// Editing
		"insert":           m.insert,
		"newline":          m.newline,
		"backspace":        m.backspace,
		"delete":           m.deleteForward,
		"delete_line":      m.deleteLine,
		"delete_selection": m.deleteSelection,
		"replace_all":      m.replaceAll,

		// Cursor and selection
		"move":            m.move,
		"set_cursor":      m.setCursor,
		"cursor":          m.cursor,
		"select":          m.selectRange,
		"select_all":      m.selectAll,
		"clear_selection": m.clearSelection,
		"selection":       m.selection,

		// Queries
		"find":       m.find,
		"find_next":  m.findNext,
		"content":    m.content,
		"line":       m.line,
		"line_count": m.lineCount,
		"modified":   m.modified,
	}
	for name, fn := range fns {
		fns[name] = m.metered(fn)
	}
	return fns
}

func (m *editorModule) metered(fn lua.LGFunction) lua.LGFunction {
	return func(L *lua.LState) int {
		m.sandbox.charge(L)
		return fn(L)
	}
}

// check raises err as a Lua error.
func check(L *lua.LState, err error) {
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
}

func (m *editorModule) insert(L *lua.LState) int {
	check(L, m.e.InsertText(L.CheckString(1)))
	return 0
}

func (m *editorModule) newline(L *lua.LState) int {
	check(L, m.e.InsertNewline())
	return 0
}

func (m *editorModule) backspace(L *lua.LState) int {
	for range max(L.OptInt(1, 1), 0) {
		check(L, m.e.Backspace())
	}
	return 0
}

func (m *editorModule) deleteForward(L *lua.LState) int {
	for range max(L.OptInt(1, 1), 0) {
		check(L, m.e.DeleteForward())
	}
	return 0
}

func (m *editorModule) deleteLine(L *lua.LState) int {
	check(L, m.e.DeleteLine())
	return 0
}

func (m *editorModule) deleteSelection(L *lua.LState) int {
	check(L, m.e.DeleteSelection())
	return 0
}

func (m *editorModule) replaceAll(L *lua.LState) int {
	query := L.CheckString(1)
	replacement := L.CheckString(2)
	n, err := m.e.ReplaceAll(query, replacement, L.OptBool(3, m.caseSensitive))
	check(L, err)
	L.Push(lua.LNumber(n))
	return 1
}

func (m *editorModule) move(L *lua.LState) int {
	motion, err := engine.ParseMotion(L.CheckString(1))
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	extend := L.OptBool(2, false)
	for range max(L.OptInt(3, 1), 0) {
		m.e.Move(motion, extend)
	}
	return 0
}

func (m *editorModule) setCursor(L *lua.LState) int {
	m.e.SetCursor(L.CheckInt(1)-1, L.CheckInt(2)-1)
	return 0
}

func (m *editorModule) cursor(L *lua.LState) int {
	c := m.e.Cursor()
	L.Push(lua.LNumber(c.Line + 1))
	L.Push(lua.LNumber(c.Column + 1))
	return 2
}

// selectRange takes start line, start column, end line, end column and an
// optional mode name.
func (m *editorModule) selectRange(L *lua.LState) int {
	start := cursor.New(L.CheckInt(1)-1, L.CheckInt(2)-1)
	end := cursor.New(L.CheckInt(3)-1, L.CheckInt(4)-1)
	mode, ok := cursor.ParseMode(L.OptString(5, ""))
	if !ok {
		L.ArgError(5, "unknown selection mode")
		return 0
	}
	m.e.SetSelection(cursor.NewSelectionWithMode(start, end, mode))
	return 0
}

func (m *editorModule) selectAll(L *lua.LState) int {
	m.e.SelectAll()
	return 0
}

func (m *editorModule) clearSelection(L *lua.LState) int {
	m.e.ClearSelection()
	return 0
}

func (m *editorModule) selection(L *lua.LState) int {
	if _, ok := m.e.Selection(); !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(m.e.SelectedText()))
	return 1
}

func (m *editorModule) find(L *lua.LState) int {
	matches := m.e.Find(L.CheckString(1), L.OptBool(2, m.caseSensitive))
	result := L.CreateTable(len(matches), 0)
	for _, p := range matches {
		result.Append(pointTable(L, p))
	}
	L.Push(result)
	return 1
}

func (m *editorModule) findNext(L *lua.LState) int {
	p, ok := m.e.FindNext(L.CheckString(1), L.OptBool(2, m.caseSensitive))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(p.Line + 1))
	L.Push(lua.LNumber(p.Column + 1))
	return 2
}

func (m *editorModule) content(L *lua.LState) int {
	L.Push(lua.LString(m.e.Content()))
	return 1
}

func (m *editorModule) line(L *lua.LState) int {
	text, ok := m.e.Line(L.CheckInt(1) - 1)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(text))
	return 1
}

func (m *editorModule) lineCount(L *lua.LState) int {
	L.Push(lua.LNumber(m.e.LineCount()))
	return 1
}

func (m *editorModule) modified(L *lua.LState) int {
	L.Push(lua.LBool(m.e.IsModified()))
	return 1
}

func pointTable(L *lua.LState, p engine.Point) *lua.LTable {
	t := L.CreateTable(0, 2)
	t.RawSetString("line", lua.LNumber(p.Line+1))
	t.RawSetString("col", lua.LNumber(p.Column+1))
	return t
}
