package history

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/maubry-ortega/Xylux-sub000/internal/engine/buffer"
)

func TestNewHistory(t *testing.T) {
	h := New(0)

	assert.Equal(t, DefaultMaxSize, h.MaxSize())
	assert.True(t, h.IsEmpty())
	assert.True(t, h.MergeSimilar())
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
}

func TestUndoRedoScenario(t *testing.T) {
	buf := buffer.NewEmpty()
	h := New(100)

	require.NoError(t, h.Execute(InsertText(target, 0, 0, "Hello"), buf))
	require.NoError(t, h.Execute(InsertText(target, 0, 5, " World"), buf))
	assert.Equal(t, "Hello World", buf.Content())

	// Consecutive typing merges into one entry.
	assert.Equal(t, 1, h.Len())

	buf = buffer.NewEmpty()
	h = New(100)
	h.SetMergeSimilar(false)

	require.NoError(t, h.Execute(InsertText(target, 0, 0, "Hello"), buf))
	require.NoError(t, h.Execute(InsertText(target, 0, 5, " World"), buf))
	assert.Equal(t, "Hello World", buf.Content())
	assert.Equal(t, 2, h.Len())

	cmd, err := h.Undo(buf)
	require.NoError(t, err)
	require.NotNil(t, cmd)
	assert.Equal(t, "Hello", buf.Content())
	assert.Equal(t, 1, h.Position())

	cmd, err = h.Redo(buf)
	require.NoError(t, err)
	require.NotNil(t, cmd)
	assert.Equal(t, "Hello World", buf.Content())
	assert.Equal(t, 2, h.Position())
}

func TestUndoMergedTyping(t *testing.T) {
	buf := buffer.NewEmpty()
	h := New(100)

	for i, ch := range []string{"a", "b", "c"} {
		require.NoError(t, h.Execute(InsertText(target, 0, i, ch), buf))
	}
	require.Equal(t, 1, h.Len())

	_, err := h.Undo(buf)
	require.NoError(t, err)
	assert.Equal(t, "", buf.Content())
}

func TestMergeSkippedWithRedoBranch(t *testing.T) {
	buf := buffer.New("")
	h := New(10)

	require.NoError(t, h.Execute(InsertText(target, 0, 0, "a"), buf))
	require.NoError(t, h.Execute(InsertLine(target, 1, "x"), buf))
	_, err := h.Undo(buf)
	require.NoError(t, err)
	require.True(t, h.CanRedo())

	require.NoError(t, h.Execute(InsertText(target, 0, 1, "b"), buf))
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, 2, h.Position())
	assert.False(t, h.CanRedo())
	assert.Equal(t, "ab", buf.Content())

	require.NoError(t, h.Execute(InsertText(target, 0, 2, "c"), buf))
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, "abc", buf.Content())

	_, err = h.Undo(buf)
	require.NoError(t, err)
	assert.Equal(t, "a", buf.Content())
}

func TestNothingToUndoOrRedo(t *testing.T) {
	buf := buffer.New("x")
	h := New(10)

	cmd, err := h.Undo(buf)
	assert.NoError(t, err)
	assert.Nil(t, cmd)

	cmd, err = h.Redo(buf)
	assert.NoError(t, err)
	assert.Nil(t, cmd)
}

func TestNewCommandDiscardsRedo(t *testing.T) {
	buf := buffer.New("")
	h := New(10)
	h.SetMergeSimilar(false)

	require.NoError(t, h.Execute(InsertText(target, 0, 0, "a"), buf))
	require.NoError(t, h.Execute(InsertText(target, 0, 1, "b"), buf))
	_, err := h.Undo(buf)
	require.NoError(t, err)
	assert.True(t, h.CanRedo())

	require.NoError(t, h.Execute(InsertText(target, 0, 1, "c"), buf))
	assert.False(t, h.CanRedo())
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, "ac", buf.Content())
}

func TestEviction(t *testing.T) {
	buf := buffer.New("")
	h := New(3)
	h.SetMergeSimilar(false)

	for i := 0; i < 5; i++ {
		require.NoError(t, h.Execute(InsertLine(target, 0, "x"), buf))
	}
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, 3, h.Position())

	for h.CanUndo() {
		_, err := h.Undo(buf)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, buf.LineCount())

	h.SetMaxSize(1)
	assert.Equal(t, 1, h.Len())
	assert.Equal(t, 0, h.Position())
	assert.True(t, h.CanRedo())
}

func TestFailedUndoRestoresPosition(t *testing.T) {
	buf := buffer.New("abc")
	h := New(10)

	require.NoError(t, h.Execute(InsertText(target, 0, 3, "\nd"), buf))

	// Remove the line the recorded insert created.
	require.NoError(t, buf.DeleteLine(1))

	_, err := h.Undo(buf)
	assert.ErrorIs(t, err, buffer.ErrOutOfBounds)
	assert.Equal(t, 1, h.Position())
	assert.True(t, h.Commands()[0].IsExecuted())
}

func TestExecuteFailureLeavesHistory(t *testing.T) {
	buf := buffer.New("abc")
	h := New(10)

	err := h.Execute(InsertText(target, 9, 0, "x"), buf)
	assert.True(t, errors.Is(err, buffer.ErrOutOfBounds))
	assert.True(t, h.IsEmpty())
}

func TestDescriptions(t *testing.T) {
	buf := buffer.New("")
	h := New(10)

	_, ok := h.LastUndoableDescription()
	assert.False(t, ok)

	require.NoError(t, h.Execute(InsertText(target, 0, 0, "abc"), buf))
	desc, ok := h.LastUndoableDescription()
	assert.True(t, ok)
	assert.Equal(t, "Insert 'abc'", desc)

	_, err := h.Undo(buf)
	require.NoError(t, err)
	desc, ok = h.NextRedoableDescription()
	assert.True(t, ok)
	assert.Equal(t, "Insert 'abc'", desc)

	assert.Empty(t, h.UndoInfo())
	require.Len(t, h.RedoInfo(), 1)
	assert.Equal(t, "Insert 'abc'", h.RedoInfo()[0].Description)
	assert.Equal(t, 0, h.UndoCount())
	assert.Equal(t, 1, h.RedoCount())
}

func TestGrouping(t *testing.T) {
	buf := buffer.New("abc")
	h := New(10)

	h.BeginGroup("Wrap")
	assert.True(t, h.IsGrouping())
	require.NoError(t, h.Execute(InsertText(target, 0, 0, "("), buf))
	require.NoError(t, h.Execute(InsertText(target, 0, 4, ")"), buf))
	h.EndGroup()

	assert.False(t, h.IsGrouping())
	require.Equal(t, 1, h.Len())
	assert.Equal(t, KindComposite, h.Commands()[0].Kind)
	assert.Equal(t, "(abc)", buf.Content())

	desc, _ := h.LastUndoableDescription()
	assert.Equal(t, "Wrap", desc)

	_, err := h.Undo(buf)
	require.NoError(t, err)
	assert.Equal(t, "abc", buf.Content())

	_, err = h.Redo(buf)
	require.NoError(t, err)
	assert.Equal(t, "(abc)", buf.Content())
}

func TestGroupScopeAndCancel(t *testing.T) {
	buf := buffer.New("")
	h := New(10)

	func() {
		defer h.GroupScope("empty").End()
	}()
	assert.True(t, h.IsEmpty())

	scope := h.GroupScope("cancelled")
	require.NoError(t, h.Execute(InsertText(target, 0, 0, "x"), buf))
	scope.Cancel()
	scope.End()
	assert.True(t, h.IsEmpty())
	assert.Equal(t, "x", buf.Content())
}

func TestAbortGroup(t *testing.T) {
	buf := buffer.New("abc")
	h := New(10)

	h.BeginGroup("macro")
	require.NoError(t, h.Execute(InsertText(target, 0, 3, "d"), buf))
	require.NoError(t, h.Execute(InsertLine(target, 1, "e"), buf))
	assert.Equal(t, "abcd\ne", buf.Content())

	h.AbortGroup(buf)
	assert.Equal(t, "abc", buf.Content())
	assert.False(t, h.IsGrouping())
	assert.True(t, h.IsEmpty())

	h.AbortGroup(buf)
	assert.Equal(t, "abc", buf.Content())
}

func TestUndoRedoRefusedWhileGrouping(t *testing.T) {
	buf := buffer.New("ab")
	h := New(10)
	require.NoError(t, h.Execute(InsertText(target, 0, 2, "X"), buf))

	h.BeginGroup("edit")
	require.NoError(t, h.Execute(InsertText(target, 0, 0, "Y"), buf))

	cmd, err := h.Undo(buf)
	assert.Nil(t, cmd)
	assert.ErrorIs(t, err, ErrGroupOpen)
	_, err = h.Redo(buf)
	assert.ErrorIs(t, err, ErrGroupOpen)
	assert.ErrorIs(t, h.UndoToCheckpoint(Checkpoint{}, buf), ErrGroupOpen)
	assert.Equal(t, "YabX", buf.Content())
	assert.Equal(t, 1, h.Position())

	h.EndGroup()
	require.NoError(t, h.UndoToCheckpoint(Checkpoint{}, buf))
	assert.Equal(t, "ab", buf.Content())
}

func TestTransactionRollsBack(t *testing.T) {
	buf := buffer.New("abc")
	h := New(10)
	boom := errors.New("boom")

	err := h.Transaction("fail", buf, func() error {
		if err := h.Execute(InsertText(target, 0, 0, "1"), buf); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "abc", buf.Content())
	assert.True(t, h.IsEmpty())

	err = h.ExecuteGrouped("pair", buf,
		InsertText(target, 0, 3, "d"),
		InsertLine(target, 1, "e"),
	)
	require.NoError(t, err)
	assert.Equal(t, "abcd\ne", buf.Content())
	assert.Equal(t, 1, h.Len())

	err = h.ExecuteGrouped("bad", buf,
		InsertText(target, 0, 0, "z"),
		InsertText(target, 7, 0, "z"),
	)
	assert.ErrorIs(t, err, buffer.ErrOutOfBounds)
	assert.Equal(t, "abcd\ne", buf.Content())
	assert.Equal(t, 1, h.Len())
}

func TestTransactionInsideGroup(t *testing.T) {
	buf := buffer.New("abc")
	h := New(10)

	h.BeginGroup("outer")
	require.NoError(t, h.Execute(InsertText(target, 0, 3, "d"), buf))

	err := h.Transaction("inner", buf, func() error {
		if err := h.Execute(InsertText(target, 0, 0, "x"), buf); err != nil {
			return err
		}
		return errors.New("stop")
	})
	assert.Error(t, err)
	assert.True(t, h.IsGrouping())
	assert.Equal(t, "abcd", buf.Content())

	require.NoError(t, h.Transaction("inner", buf, func() error {
		return h.Execute(InsertText(target, 0, 0, "y"), buf)
	}))
	h.EndGroup()

	assert.Equal(t, "yabcd", buf.Content())
	require.Equal(t, 1, h.Len())

	_, err = h.Undo(buf)
	require.NoError(t, err)
	assert.Equal(t, "abc", buf.Content())
}

func TestCheckpoints(t *testing.T) {
	buf := buffer.New("")
	h := New(10)
	h.SetMergeSimilar(false)

	cp := h.CreateCheckpoint()
	for i := 0; i < 3; i++ {
		require.NoError(t, h.Execute(InsertLine(target, 0, "x"), buf))
	}
	end := h.CreateCheckpoint()

	require.NoError(t, h.UndoToCheckpoint(cp, buf))
	assert.Equal(t, "", buf.Content())

	require.NoError(t, h.RedoToCheckpoint(end, buf))
	assert.Equal(t, 4, buf.LineCount())
}

func TestUndoAllRestoresOriginal(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.StringMatching(`[a-z]{0,5}(\n[a-z]{0,5}){0,2}`).Draw(t, "text")
		buf := buffer.New(text)
		h := New(rapid.IntRange(50, 100).Draw(t, "max"))
		h.SetMergeSimilar(rapid.Bool().Draw(t, "merge"))

		var states []string
		steps := rapid.IntRange(1, 12).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			cmd := genCommand(buf).Draw(t, "cmd")
			if err := h.Execute(cmd, buf); err != nil {
				t.Fatalf("Execute %s: %v", cmd.Description(), err)
			}
			states = append(states, buf.Content())
		}
		final := buf.Content()

		for h.CanUndo() {
			if _, err := h.Undo(buf); err != nil {
				t.Fatalf("Undo: %v", err)
			}
		}
		if got := buf.Content(); got != text {
			t.Fatalf("undo all = %q, want %q", got, text)
		}

		for h.CanRedo() {
			if _, err := h.Redo(buf); err != nil {
				t.Fatalf("Redo: %v", err)
			}
		}
		if got := buf.Content(); got != final {
			t.Fatalf("redo all = %q, want %q (states %q)", got, final, states)
		}
	})
}
