package editscript

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/maubry-ortega/Xylux-sub000/internal/engine"
	"github.com/maubry-ortega/Xylux-sub000/internal/engine/cursor"
)

// Operation names.
const (
	OpInsert          = "insert"
	OpNewline         = "newline"
	OpBackspace       = "backspace"
	OpDelete          = "delete"
	OpDeleteLine      = "delete_line"
	OpDeleteSelection = "delete_selection"
	OpMove            = "move"
	OpGoto            = "goto"
	OpSelect          = "select"
	OpSelectAll       = "select_all"
	OpClearSelection  = "clear_selection"
	OpFindNext        = "find_next"
	OpReplaceAll      = "replace_all"
	OpUndo            = "undo"
	OpRedo            = "redo"
	OpGroupBegin      = "group_begin"
	OpGroupEnd        = "group_end"
	OpExpect          = "expect"
)

// ErrInvalidScript wraps every parse and validation failure.
var ErrInvalidScript = errors.New("invalid edit script")

// Script is a named sequence of edit steps.
type Script struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Step is one operation. Only the fields the operation uses are read.
type Step struct {
	Op string `yaml:"op"`

	// Text to insert, or the expected content for expect.
	Text string `yaml:"text,omitempty"`

	// Cursor position for goto, selection start for select.
	Line   int `yaml:"line,omitempty"`
	Column int `yaml:"column,omitempty"`

	// Selection end and mode for select.
	EndLine   int    `yaml:"end_line,omitempty"`
	EndColumn int    `yaml:"end_column,omitempty"`
	Mode      string `yaml:"mode,omitempty"`

	Motion string `yaml:"motion,omitempty"`
	Extend bool   `yaml:"extend,omitempty"`

	// Times repeats insert, backspace, delete, move, undo and redo.
	Times int `yaml:"times,omitempty"`

	Query         string `yaml:"query,omitempty"`
	Replacement   string `yaml:"replacement,omitempty"`
	CaseSensitive *bool  `yaml:"case_sensitive,omitempty"`

	// Name labels a group_begin.
	Name string `yaml:"name,omitempty"`
}

// StepError reports a step that failed validation or execution.
type StepError struct {
	Index int // 1-based
	Op    string
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index, e.Op, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Parse decodes and validates a YAML edit script. Unknown fields are
// rejected.
func Parse(data []byte) (*Script, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var s Script
	if err := decoder.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidScript)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads and parses the edit script at path. A script without a name
// is named after its file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading edit script: %w", err)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Validate checks that every step names a known operation with the fields
// it requires. Undo and redo are rejected between group_begin and
// group_end.
func (s *Script) Validate() error {
	var errs []error
	grouping := false
	for i, step := range s.Steps {
		err := step.validate()
		switch step.Op {
		case OpGroupBegin:
			grouping = true
		case OpGroupEnd:
			grouping = false
		case OpUndo, OpRedo:
			if grouping && err == nil {
				err = fmt.Errorf("%s inside an open group", step.Op)
			}
		}
		if err != nil {
			errs = append(errs, &StepError{Index: i + 1, Op: step.Op, Err: err})
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidScript, errors.Join(errs...))
	}
	return nil
}

func (st Step) validate() error {
	if st.Times < 0 {
		return errors.New("times must not be negative")
	}

	switch st.Op {
	case OpInsert:
		if st.Text == "" {
			return errors.New("text is required")
		}
	case OpMove:
		if st.Motion == "" {
			return errors.New("motion is required")
		}
		if _, err := engine.ParseMotion(st.Motion); err != nil {
			return err
		}
	case OpGoto:
		if st.Line < 1 || st.Column < 1 {
			return errors.New("line and column must be at least 1")
		}
	case OpSelect:
		if st.Line < 1 || st.Column < 1 || st.EndLine < 1 || st.EndColumn < 1 {
			return errors.New("line, column, end_line and end_column must be at least 1")
		}
		if _, ok := cursor.ParseMode(st.Mode); !ok {
			return fmt.Errorf("unknown selection mode %q", st.Mode)
		}
	case OpFindNext:
		if st.Query == "" {
			return errors.New("query is required")
		}
	case OpReplaceAll:
		if st.Query == "" {
			return errors.New("query is required")
		}
	case OpNewline, OpBackspace, OpDelete, OpDeleteLine, OpDeleteSelection,
		OpSelectAll, OpClearSelection, OpUndo, OpRedo, OpGroupBegin, OpGroupEnd, OpExpect:
	case "":
		return errors.New("op is required")
	default:
		return fmt.Errorf("unknown op %q", st.Op)
	}
	return nil
}

// times returns how often the step repeats.
func (st Step) times() int {
	if st.Times == 0 {
		return 1
	}
	return st.Times
}
