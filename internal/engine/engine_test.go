package engine

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/maubry-ortega/Xylux-sub000/internal/engine/buffer"
	"github.com/maubry-ortega/Xylux-sub000/internal/engine/cursor"
	"github.com/maubry-ortega/Xylux-sub000/internal/engine/history"
)

func TestNewEngine(t *testing.T) {
	e := New()

	assert.Equal(t, "", e.Content())
	assert.Equal(t, 1, e.LineCount())
	assert.Equal(t, cursor.Origin(), e.Cursor())
	assert.False(t, e.IsModified())
	assert.False(t, e.CanUndo())
	assert.False(t, e.CanRedo())
	assert.Equal(t, DefaultTabWidth, e.TabWidth())
	assert.False(t, e.IsReadOnly())

	_, ok := e.Selection()
	assert.False(t, ok)
}

func TestNewWithOptions(t *testing.T) {
	e := New(
		WithContent("a\r\nb"),
		WithPath("/tmp/a.txt"),
		WithEncoding("windows-1252"),
		WithTabWidth(8),
	)

	assert.Equal(t, "a\r\nb", e.Content())
	assert.Equal(t, LineEndingCRLF, e.LineEnding())
	assert.Equal(t, "/tmp/a.txt", e.Path())
	assert.Equal(t, "windows-1252", e.Encoding())
	assert.Equal(t, 8, e.TabWidth())

	buf := buffer.New("shared")
	e = New(WithBuffer(buf), WithContent("ignored"))
	assert.Equal(t, "shared", e.Content())
}

func TestTypingMergesIntoOneUndo(t *testing.T) {
	e := New()

	for _, ch := range []string{"H", "e", "l", "l", "o"} {
		require.NoError(t, e.InsertText(ch))
	}
	assert.Equal(t, "Hello", e.Content())
	assert.Equal(t, 1, e.UndoCount())

	desc, ok := e.UndoDescription()
	assert.True(t, ok)
	assert.Equal(t, "Insert 'Hello'", desc)

	require.NoError(t, e.Undo())
	assert.Equal(t, "", e.Content())
	assert.Equal(t, cursor.New(0, 0), e.Cursor())

	require.NoError(t, e.Redo())
	assert.Equal(t, "Hello", e.Content())
	assert.Equal(t, cursor.New(0, 5), e.Cursor())
}

func TestTypingWithoutMerge(t *testing.T) {
	e := New(WithMergeSimilar(false), WithMaxUndoEntries(2))

	for _, ch := range []string{"a", "b", "c"} {
		require.NoError(t, e.InsertText(ch))
	}
	assert.Equal(t, 2, e.UndoCount())

	require.NoError(t, e.Undo())
	require.NoError(t, e.Undo())
	assert.Equal(t, "a", e.Content())
	assert.ErrorIs(t, e.Undo(), ErrNothingToUndo)
}

func TestNothingToUndoOrRedo(t *testing.T) {
	e := New(WithContent("x"))

	assert.ErrorIs(t, e.Undo(), ErrNothingToUndo)
	assert.ErrorIs(t, e.Redo(), ErrNothingToRedo)
}

func TestInsertNewline(t *testing.T) {
	e := New(WithContent("abcd"))
	e.SetCursor(0, 2)

	require.NoError(t, e.InsertNewline())
	assert.Equal(t, "ab\ncd", e.Content())
	assert.Equal(t, cursor.New(1, 0), e.Cursor())

	require.NoError(t, e.Undo())
	assert.Equal(t, "abcd", e.Content())
	assert.Equal(t, cursor.New(0, 2), e.Cursor())
}

func TestBackspace(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		line, col  int
		want       string
		wantCursor cursor.Cursor
	}{
		{"middle", "abc", 0, 2, "ac", cursor.New(0, 1)},
		{"join lines", "ab\ncd", 1, 0, "abcd", cursor.New(0, 2)},
		{"start of buffer", "abc", 0, 0, "abc", cursor.New(0, 0)},
		{"multibyte", "añb", 0, 2, "ab", cursor.New(0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(WithContent(tt.content))
			e.SetCursor(tt.line, tt.col)

			require.NoError(t, e.Backspace())
			assert.Equal(t, tt.want, e.Content())
			assert.Equal(t, tt.wantCursor, e.Cursor())

			if tt.want == tt.content {
				assert.False(t, e.CanUndo())
				return
			}
			require.NoError(t, e.Undo())
			assert.Equal(t, tt.content, e.Content())
		})
	}
}

func TestDeleteForward(t *testing.T) {
	e := New(WithContent("abcd\nef"))
	e.SetCursor(0, 1)

	require.NoError(t, e.DeleteForward())
	require.NoError(t, e.DeleteForward())
	assert.Equal(t, "ad\nef", e.Content())
	assert.Equal(t, cursor.New(0, 1), e.Cursor())

	// Repeated deletes at one position undo together.
	assert.Equal(t, 1, e.UndoCount())

	e.SetCursor(0, 2)
	require.NoError(t, e.DeleteForward())
	assert.Equal(t, "adef", e.Content())

	e.SetCursor(0, 4)
	require.NoError(t, e.DeleteForward())
	assert.Equal(t, "adef", e.Content())

	require.NoError(t, e.Undo())
	require.NoError(t, e.Undo())
	assert.Equal(t, "abcd\nef", e.Content())
}

func TestReplaceSelection(t *testing.T) {
	e := New(WithContent("hello world"))
	e.SetSelection(cursor.NewSelection(cursor.New(0, 0), cursor.New(0, 5)))
	assert.Equal(t, "hello", e.SelectedText())

	require.NoError(t, e.InsertText("bye"))
	assert.Equal(t, "bye world", e.Content())
	assert.Equal(t, cursor.New(0, 3), e.Cursor())
	assert.Equal(t, 1, e.UndoCount())

	_, ok := e.Selection()
	assert.False(t, ok)

	require.NoError(t, e.Undo())
	assert.Equal(t, "hello world", e.Content())
	assert.Equal(t, cursor.New(0, 0), e.Cursor())

	require.NoError(t, e.Redo())
	assert.Equal(t, "bye world", e.Content())
	assert.Equal(t, cursor.New(0, 3), e.Cursor())
}

func TestReplaceMultilineSelection(t *testing.T) {
	e := New(WithContent("one\ntwo\nthree"))
	e.SetSelection(cursor.NewSelection(cursor.New(2, 2), cursor.New(0, 1)))

	require.NoError(t, e.InsertText("X"))
	assert.Equal(t, "oXree", e.Content())

	require.NoError(t, e.Undo())
	assert.Equal(t, "one\ntwo\nthree", e.Content())
}

func TestExtendSelectionAndDelete(t *testing.T) {
	e := New(WithContent("hello world\nsecond"))

	e.Move(MotionLineEnd, true)
	assert.Equal(t, "hello world", e.SelectedText())

	e.Move(MotionDown, true)
	assert.Equal(t, "hello world\nsecond", e.SelectedText())

	require.NoError(t, e.DeleteSelection())
	assert.Equal(t, "", e.Content())
	assert.Equal(t, cursor.New(0, 0), e.Cursor())

	require.NoError(t, e.Undo())
	assert.Equal(t, "hello world\nsecond", e.Content())
}

func TestBackspaceDeletesSelection(t *testing.T) {
	e := New(WithContent("abcdef"))
	e.SetCursor(0, 1)
	e.Move(MotionRight, true)
	e.Move(MotionRight, true)

	require.NoError(t, e.Backspace())
	assert.Equal(t, "adef", e.Content())
	assert.Equal(t, cursor.New(0, 1), e.Cursor())
}

func TestDeleteLineSelection(t *testing.T) {
	e := New(WithContent("a\nb\nc\nd"))
	sel := cursor.NewSelection(cursor.New(1, 0), cursor.New(2, 1)).ExpandToLineBoundaries()
	e.SetSelection(sel)
	assert.Equal(t, "b\nc\nd", e.SelectedText())

	require.NoError(t, e.DeleteSelection())
	assert.Equal(t, "a\nd", e.Content())
	assert.Equal(t, cursor.New(1, 0), e.Cursor())
	assert.Equal(t, 1, e.UndoCount())

	require.NoError(t, e.Undo())
	assert.Equal(t, "a\nb\nc\nd", e.Content())
}

func TestDeleteAllLines(t *testing.T) {
	e := New(WithContent("a\nb"))
	e.SelectAll()
	e.SetSelectionMode(cursor.ModeLine)

	require.NoError(t, e.DeleteSelection())
	assert.Equal(t, "", e.Content())
	assert.Equal(t, 1, e.LineCount())

	require.NoError(t, e.Undo())
	assert.Equal(t, "a\nb", e.Content())
}

func TestDeleteBlockSelection(t *testing.T) {
	e := New(WithContent("abcd\nefgh\nij"))
	e.SetSelection(cursor.NewSelectionWithMode(cursor.New(0, 1), cursor.New(2, 3), cursor.ModeBlock))
	assert.Equal(t, "bc\nfg\nj", e.SelectedText())

	require.NoError(t, e.DeleteSelection())
	assert.Equal(t, "ad\neh\ni", e.Content())
	assert.Equal(t, cursor.New(0, 1), e.Cursor())

	require.NoError(t, e.Undo())
	assert.Equal(t, "abcd\nefgh\nij", e.Content())
}

func TestDeleteLine(t *testing.T) {
	e := New(WithContent("one\ntwo\nthree"))
	e.SetCursor(2, 4)

	require.NoError(t, e.DeleteLine())
	assert.Equal(t, "one\ntwo", e.Content())
	assert.Equal(t, cursor.New(1, 3), e.Cursor())

	require.NoError(t, e.Undo())
	assert.Equal(t, "one\ntwo\nthree", e.Content())
	assert.Equal(t, cursor.New(2, 0), e.Cursor())
}

func TestReplaceAll(t *testing.T) {
	e := New(WithContent("foo bar foo\nFOO"))

	n, err := e.ReplaceAll("foo", "x", false)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "x bar x\nx", e.Content())
	assert.Equal(t, 1, e.UndoCount())

	require.NoError(t, e.Undo())
	assert.Equal(t, "foo bar foo\nFOO", e.Content())

	n, err = e.ReplaceAll("foo", "x", true)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "x bar x\nFOO", e.Content())

	n, err = e.ReplaceAll("missing", "x", true)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 1, e.UndoCount())
}

func TestReplaceAllWithNewline(t *testing.T) {
	e := New(WithContent("a,b,c"))

	n, err := e.ReplaceAll(",", "\n", true)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "a\nb\nc", e.Content())

	require.NoError(t, e.Undo())
	assert.Equal(t, "a,b,c", e.Content())
}

func TestReplaceAllOverlapping(t *testing.T) {
	e := New(WithContent("aaa"))

	n, err := e.ReplaceAll("aa", "b", true)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "ba", e.Content())

	e = New(WithContent("aaa"))
	n, err = e.ReplaceAll("aa", "aa", true)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "aaa", e.Content())
	assert.Equal(t, 1, e.UndoCount())
}

func TestReadOnly(t *testing.T) {
	e := New(WithContent("abc"), WithReadOnly())

	assert.True(t, e.IsReadOnly())
	assert.ErrorIs(t, e.InsertText("x"), ErrReadOnly)
	assert.ErrorIs(t, e.Backspace(), ErrReadOnly)
	assert.ErrorIs(t, e.DeleteForward(), ErrReadOnly)
	assert.ErrorIs(t, e.DeleteLine(), ErrReadOnly)
	assert.ErrorIs(t, e.Undo(), ErrReadOnly)
	assert.ErrorIs(t, e.Redo(), ErrReadOnly)
	assert.ErrorIs(t, e.SetLineEnding(LineEndingCRLF), ErrReadOnly)
	assert.ErrorIs(t, e.Execute(history.InsertLine("", 0, "x")), ErrReadOnly)

	_, err := e.ReplaceAll("a", "b", true)
	assert.ErrorIs(t, err, ErrReadOnly)

	// Navigation still works.
	e.Move(MotionLineEnd, false)
	assert.Equal(t, cursor.New(0, 3), e.Cursor())
	assert.Equal(t, "abc", e.Content())
}

func TestUndoGroup(t *testing.T) {
	e := New(WithContent("x"))

	e.BeginUndoGroup("Wrap")
	require.NoError(t, e.InsertText("("))
	e.Move(MotionLineEnd, false)
	require.NoError(t, e.InsertText(")"))
	e.EndUndoGroup()

	assert.Equal(t, "(x)", e.Content())
	assert.Equal(t, 1, e.UndoCount())

	desc, _ := e.UndoDescription()
	assert.Equal(t, "Wrap", desc)

	require.NoError(t, e.Undo())
	assert.Equal(t, "x", e.Content())
	assert.Equal(t, cursor.New(0, 0), e.Cursor())

	desc, ok := e.RedoDescription()
	assert.True(t, ok)
	assert.Equal(t, "Wrap", desc)

	require.NoError(t, e.Redo())
	assert.Equal(t, "(x)", e.Content())
	assert.Equal(t, cursor.New(0, 3), e.Cursor())
}

func TestUndoGroupWithReplaceAll(t *testing.T) {
	e := New(WithContent("a a"))

	e.BeginUndoGroup("Edit")
	_, err := e.ReplaceAll("a", "b", true)
	require.NoError(t, err)
	e.SetCursor(0, 0)
	require.NoError(t, e.InsertText(">"))
	e.EndUndoGroup()

	assert.Equal(t, ">b b", e.Content())
	assert.Equal(t, 1, e.UndoCount())

	require.NoError(t, e.Undo())
	assert.Equal(t, "a a", e.Content())
}

func TestCancelUndoGroup(t *testing.T) {
	e := New()

	e.BeginUndoGroup("scratch")
	require.NoError(t, e.InsertText("abc"))
	e.CancelUndoGroup()

	assert.Equal(t, "abc", e.Content())
	assert.False(t, e.CanUndo())
}

func TestAbortUndoGroup(t *testing.T) {
	e := New(WithContent("keep"))
	require.NoError(t, e.InsertText(">"))

	e.BeginUndoGroup("macro")
	e.Move(MotionLineEnd, false)
	require.NoError(t, e.InsertText("!"))
	require.NoError(t, e.InsertNewline())
	e.AbortUndoGroup()

	assert.Equal(t, ">keep", e.Content())
	assert.Equal(t, 1, e.UndoCount())
	assert.Equal(t, 0, e.Cursor().Line)
}

func TestUndoRefusedInsideGroup(t *testing.T) {
	e := New(WithContent("ab"))
	e.SetCursor(0, 2)
	require.NoError(t, e.InsertText("X"))

	e.BeginUndoGroup("edit")
	e.SetCursor(0, 0)
	require.NoError(t, e.InsertText("Y"))

	assert.ErrorIs(t, e.Undo(), ErrGroupOpen)
	assert.ErrorIs(t, e.Redo(), ErrGroupOpen)
	assert.Equal(t, "YabX", e.Content())

	e.EndUndoGroup()
	require.NoError(t, e.Undo())
	assert.Equal(t, "abX", e.Content())
	require.NoError(t, e.Undo())
	assert.Equal(t, "ab", e.Content())
}

func TestExecute(t *testing.T) {
	e := New(WithContent("body"))

	require.NoError(t, e.Execute(history.InsertLine("", 0, "header")))
	assert.Equal(t, "header\nbody", e.Content())
	assert.Equal(t, cursor.New(0, 0), e.Cursor())

	err := e.Execute(history.InsertText("", 9, 0, "x"))
	assert.True(t, errors.Is(err, buffer.ErrOutOfBounds))
	assert.Equal(t, 1, e.UndoCount())

	from := cursor.New(0, 0)
	to := cursor.New(1, 2)
	require.NoError(t, e.Execute(history.MoveCursor("", from, to)))
	assert.Equal(t, to, e.Cursor())
	assert.Equal(t, "header\nbody", e.Content())

	require.NoError(t, e.Undo())
	assert.Equal(t, from, e.Cursor())
}

func TestExecuteChangeSelection(t *testing.T) {
	e := New(WithContent("hello"))
	sel := cursor.NewSelection(cursor.New(0, 1), cursor.New(0, 4))

	require.NoError(t, e.Execute(history.ChangeSelection("", nil, &sel)))
	got, ok := e.Selection()
	require.True(t, ok)
	assert.Equal(t, sel, got)
	assert.Equal(t, "ell", e.SelectedText())

	require.NoError(t, e.Undo())
	_, ok = e.Selection()
	assert.False(t, ok)
}

func TestUndoRestoresCursor(t *testing.T) {
	e := New(WithContent("abc"))
	e.SetCursor(0, 3)

	require.NoError(t, e.InsertText("\nxyz"))
	assert.Equal(t, cursor.New(1, 3), e.Cursor())

	require.NoError(t, e.Undo())
	assert.Equal(t, "abc", e.Content())
	assert.Equal(t, cursor.New(0, 3), e.Cursor())
}

func TestMotions(t *testing.T) {
	e := New(WithContent("hello\nworld wide\n  x"), WithPageSize(2))

	steps := []struct {
		motion Motion
		want   cursor.Cursor
	}{
		{MotionDown, cursor.Cursor{Line: 1}},
		{MotionLineEnd, cursor.New(1, 10)},
		{MotionUp, cursor.Cursor{Line: 0, Column: 5, DesiredColumn: 10}},
		{MotionBufferEnd, cursor.New(2, 3)},
		{MotionFirstNonBlank, cursor.New(2, 2)},
		{MotionLineStart, cursor.New(2, 0)},
		{MotionPageUp, cursor.New(0, 0)},
		{MotionPageDown, cursor.New(2, 0)},
		{MotionBufferStart, cursor.New(0, 0)},
		{MotionRight, cursor.New(0, 1)},
		{MotionLeft, cursor.New(0, 0)},
	}

	for _, step := range steps {
		e.Move(step.motion, false)
		assert.Equal(t, step.want, e.Cursor(), "after %s", step.motion)
	}
}

func TestParseMotion(t *testing.T) {
	tests := []struct {
		name    string
		want    Motion
		wantErr bool
	}{
		{"left", MotionLeft, false},
		{"word-left", MotionWordLeft, false},
		{"LINE_END", MotionLineEnd, false},
		{" page_down ", MotionPageDown, false},
		{"sideways", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseMotion(tt.name)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrUnknownMotion)
			continue
		}
		require.NoError(t, err)
		if got != tt.want {
			t.Errorf("ParseMotion(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}

	for m := MotionLeft; m <= MotionPageDown; m++ {
		got, err := ParseMotion(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
}

func TestFindNext(t *testing.T) {
	e := New(WithContent("foo foo\nfoo"))

	p, ok := e.FindNext("foo", true)
	require.True(t, ok)
	assert.Equal(t, Point{Line: 0, Column: 0}, p)
	assert.Equal(t, "foo", e.SelectedText())

	p, _ = e.FindNext("foo", true)
	assert.Equal(t, Point{Line: 0, Column: 4}, p)

	p, _ = e.FindNext("foo", true)
	assert.Equal(t, Point{Line: 1, Column: 0}, p)

	p, _ = e.FindNext("foo", true)
	assert.Equal(t, Point{Line: 0, Column: 0}, p)

	_, ok = e.FindNext("bar", true)
	assert.False(t, ok)

	assert.Len(t, e.Find("FOO", false), 3)
}

func TestStatus(t *testing.T) {
	e := New(WithContent("\tab\nc"), WithPath("notes.txt"))
	e.SetCursor(0, 1)

	st := e.Status()
	assert.Equal(t, 1, st.Line)
	assert.Equal(t, 2, st.Column)
	assert.Equal(t, 5, st.VisualColumn)
	assert.Equal(t, 2, st.LineCount)
	assert.False(t, st.Modified)
	assert.Equal(t, LineEndingLF, st.LineEnding)
	assert.Equal(t, buffer.DefaultEncoding, st.Encoding)
	assert.Equal(t, "notes.txt", st.Path)

	e.SelectAll()
	assert.Equal(t, 5, e.Status().Selected)

	require.NoError(t, e.InsertText("z"))
	assert.True(t, e.Status().Modified)
}

func TestSave(t *testing.T) {
	e := New(WithContent("a"))
	require.NoError(t, e.InsertText("b"))
	assert.NotEmpty(t, e.UnifiedDiff())

	boom := errors.New("disk full")
	err := e.Save(func(string, string) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.True(t, e.IsModified())

	var saved string
	require.NoError(t, e.Save(func(content, encoding string) error {
		saved = content
		return nil
	}))
	assert.Equal(t, "ba", saved)
	assert.False(t, e.IsModified())
	assert.Empty(t, e.UnifiedDiff())

	// Save does not touch history.
	assert.True(t, e.CanUndo())
}

func TestConcurrentReads(t *testing.T) {
	e := New(WithContent("start"))

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = e.Content()
				_ = e.Status()
				_ = e.Cursor()
			}
		}()
	}
	for j := 0; j < 100; j++ {
		require.NoError(t, e.InsertText("x"))
	}
	wg.Wait()

	assert.Equal(t, 105, len(e.Content()))
}

func TestEditSequenceUndoesToOriginal(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		original := rapid.StringMatching(`[ab ]{0,6}(\n[ab ]{0,6}){0,3}`).Draw(t, "content")
		e := New(WithContent(original), WithMergeSimilar(rapid.Bool().Draw(t, "merge")))

		steps := rapid.IntRange(1, 15).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			var err error
			switch rapid.IntRange(0, 7).Draw(t, "op") {
			case 0:
				err = e.InsertText(rapid.StringMatching(`[ab\n]{1,3}`).Draw(t, "text"))
			case 1:
				err = e.Backspace()
			case 2:
				err = e.DeleteForward()
			case 3:
				err = e.InsertNewline()
			case 4:
				err = e.DeleteLine()
			case 5:
				_, err = e.ReplaceAll("a", "ba", rapid.Bool().Draw(t, "case"))
			case 6:
				m := Motion(rapid.IntRange(int(MotionLeft), int(MotionPageDown)).Draw(t, "motion"))
				e.Move(m, rapid.Bool().Draw(t, "extend"))
			case 7:
				err = e.DeleteSelection()
			}
			if err != nil {
				t.Fatalf("step %d: %v", i, err)
			}

			c := e.Cursor()
			if !c.IsValid(e.Snapshot().LineLengths()) {
				t.Fatalf("cursor %v invalid for %q", c, e.Content())
			}
		}

		for e.CanUndo() {
			if err := e.Undo(); err != nil {
				t.Fatalf("Undo: %v", err)
			}
		}
		if got := e.Content(); got != original {
			t.Fatalf("undo all = %q, want %q", got, original)
		}
	})
}
