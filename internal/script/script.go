package script

import (
	"context"
	"path/filepath"

	"github.com/maubry-ortega/Xylux-sub000/internal/engine"
	"github.com/maubry-ortega/Xylux-sub000/internal/log"
)

// Run executes code against e. The edits are recorded as one undo step;
// on failure they are reverted and a *ScriptError is returned.
func Run(ctx context.Context, e *engine.Engine, name, code string, opts ...StateOption) error {
	return run(e, name, opts, func(s *State) error {
		return s.DoString(ctx, name, code)
	})
}

// RunFile executes the Lua file at path against e, like Run.
func RunFile(ctx context.Context, e *engine.Engine, path string, opts ...StateOption) error {
	return run(e, filepath.Base(path), opts, func(s *State) error {
		return s.DoFile(ctx, path)
	})
}

func run(e *engine.Engine, name string, opts []StateOption, exec func(*State) error) error {
	logger := log.For(log.CatScript)

	s, err := NewState(opts...)
	if err != nil {
		return &ScriptError{Name: name, Err: err}
	}
	defer s.Close()
	s.OpenEditor(e)

	e.BeginUndoGroup("Script " + name)
	if err := exec(s); err != nil {
		e.AbortUndoGroup()
		logger.Warn("script failed", "name", name, "error", err)
		return &ScriptError{Name: name, Err: err}
	}
	e.EndUndoGroup()

	logger.Debug("script finished", "name", name, "calls", s.Sandbox().InstructionCount())
	return nil
}
