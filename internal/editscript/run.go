package editscript

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/maubry-ortega/Xylux-sub000/internal/engine"
	"github.com/maubry-ortega/Xylux-sub000/internal/engine/cursor"
	"github.com/maubry-ortega/Xylux-sub000/internal/log"
)

// ErrExpectationFailed is returned when an expect step does not match the
// buffer content.
var ErrExpectationFailed = errors.New("content does not match")

// Report summarizes a run.
type Report struct {
	Steps    int // steps executed, counting each repetition once
	Replaced int // replacements made by replace_all
	Missed   int // find_next steps without a match
}

// Option configures a run.
type Option func(*runner)

// WithCaseSensitive sets the default for steps without case_sensitive.
func WithCaseSensitive(enabled bool) Option {
	return func(r *runner) {
		r.caseSensitive = enabled
	}
}

// WithLogger sets the logger. The default is the script category logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *runner) {
		r.logger = logger
	}
}

type runner struct {
	e             *engine.Engine
	caseSensitive bool
	logger        *slog.Logger
	grouping      bool
	report        Report
}

// Run applies the steps to e in order. On failure it stops, aborts a group
// the script left open and returns a *StepError; edits from earlier steps
// stay applied. A group still open at the end is closed.
func (s *Script) Run(e *engine.Engine, opts ...Option) (Report, error) {
	r := &runner{
		e:             e,
		caseSensitive: true,
		logger:        log.For(log.CatScript),
	}
	for _, opt := range opts {
		opt(r)
	}

	for i, st := range s.Steps {
		if err := r.step(st); err != nil {
			if r.grouping {
				e.AbortUndoGroup()
			}
			r.logger.Warn("edit script failed", "name", s.Name, "step", i+1, "op", st.Op, "error", err)
			return r.report, &StepError{Index: i + 1, Op: st.Op, Err: err}
		}
	}
	if r.grouping {
		e.EndUndoGroup()
	}

	r.logger.Debug("edit script finished", "name", s.Name, "steps", r.report.Steps, "replaced", r.report.Replaced)
	return r.report, nil
}

func (r *runner) step(st Step) error {
	switch st.Op {
	case OpInsert:
		return r.repeat(st, func() error { return r.e.InsertText(st.Text) })
	case OpNewline:
		return r.repeat(st, r.e.InsertNewline)
	case OpBackspace:
		return r.repeat(st, r.e.Backspace)
	case OpDelete:
		return r.repeat(st, r.e.DeleteForward)
	case OpDeleteLine:
		return r.repeat(st, r.e.DeleteLine)
	case OpDeleteSelection:
		return r.once(r.e.DeleteSelection)
	case OpMove:
		m, err := engine.ParseMotion(st.Motion)
		if err != nil {
			return err
		}
		return r.repeat(st, func() error {
			r.e.Move(m, st.Extend)
			return nil
		})
	case OpGoto:
		return r.once(func() error {
			r.e.SetCursor(st.Line-1, st.Column-1)
			return nil
		})
	case OpSelect:
		mode, _ := cursor.ParseMode(st.Mode)
		sel := cursor.NewSelectionWithMode(
			cursor.New(st.Line-1, st.Column-1),
			cursor.New(st.EndLine-1, st.EndColumn-1),
			mode,
		)
		return r.once(func() error {
			r.e.SetSelection(sel)
			return nil
		})
	case OpSelectAll:
		return r.once(func() error {
			r.e.SelectAll()
			return nil
		})
	case OpClearSelection:
		return r.once(func() error {
			r.e.ClearSelection()
			return nil
		})
	case OpFindNext:
		return r.once(func() error {
			if _, ok := r.e.FindNext(st.Query, r.caseFor(st)); !ok {
				r.report.Missed++
			}
			return nil
		})
	case OpReplaceAll:
		return r.once(func() error {
			n, err := r.e.ReplaceAll(st.Query, st.Replacement, r.caseFor(st))
			r.report.Replaced += n
			return err
		})
	case OpUndo:
		return r.repeat(st, r.e.Undo)
	case OpRedo:
		return r.repeat(st, r.e.Redo)
	case OpGroupBegin:
		if r.grouping {
			return errors.New("group already open")
		}
		name := st.Name
		if name == "" {
			name = "Edit script"
		}
		return r.once(func() error {
			r.e.BeginUndoGroup(name)
			r.grouping = true
			return nil
		})
	case OpGroupEnd:
		if !r.grouping {
			return errors.New("no open group")
		}
		return r.once(func() error {
			r.e.EndUndoGroup()
			r.grouping = false
			return nil
		})
	case OpExpect:
		return r.once(func() error {
			if got := r.e.Content(); got != st.Text {
				return fmt.Errorf("%w: got %q, want %q", ErrExpectationFailed, got, st.Text)
			}
			return nil
		})
	}
	return fmt.Errorf("unknown op %q", st.Op)
}

func (r *runner) once(fn func() error) error {
	if err := fn(); err != nil {
		return err
	}
	r.report.Steps++
	return nil
}

func (r *runner) repeat(st Step, fn func() error) error {
	for range st.times() {
		if err := r.once(fn); err != nil {
			return err
		}
	}
	return nil
}

func (r *runner) caseFor(st Step) bool {
	if st.CaseSensitive != nil {
		return *st.CaseSensitive
	}
	return r.caseSensitive
}
