package config

import (
	"errors"
	"time"

	"github.com/maubry-ortega/Xylux-sub000/internal/engine"
	"github.com/maubry-ortega/Xylux-sub000/internal/engine/buffer"
	"github.com/maubry-ortega/Xylux-sub000/internal/log"
)

// Config holds all Xylux settings.
type Config struct {
	History HistoryConfig `mapstructure:"history" toml:"history"`
	Editor  EditorConfig  `mapstructure:"editor" toml:"editor"`
	Search  SearchConfig  `mapstructure:"search" toml:"search"`
	Log     LogConfig     `mapstructure:"log" toml:"log"`
	Script  ScriptConfig  `mapstructure:"script" toml:"script"`
}

// HistoryConfig controls the undo log.
type HistoryConfig struct {
	MaxEntries   int  `mapstructure:"max_entries" toml:"max_entries"`
	MergeSimilar bool `mapstructure:"merge_similar" toml:"merge_similar"`
}

// EditorConfig controls buffer defaults and cursor movement.
type EditorConfig struct {
	PageSize   int    `mapstructure:"page_size" toml:"page_size"`
	TabWidth   int    `mapstructure:"tab_width" toml:"tab_width"`
	Encoding   string `mapstructure:"encoding" toml:"encoding"`
	LineEnding string `mapstructure:"line_ending" toml:"line_ending"` // "" keeps the detected style
}

// SearchConfig controls find and replace.
type SearchConfig struct {
	CaseSensitive bool `mapstructure:"case_sensitive" toml:"case_sensitive"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string `mapstructure:"level" toml:"level"`
	Format string `mapstructure:"format" toml:"format"` // "text" or "json"
}

// ScriptConfig bounds Lua macro execution.
type ScriptConfig struct {
	InstructionLimit int64 `mapstructure:"instruction_limit" toml:"instruction_limit"`
	TimeoutMS        int   `mapstructure:"timeout_ms" toml:"timeout_ms"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		History: HistoryConfig{
			MaxEntries:   engine.DefaultMaxUndoEntries,
			MergeSimilar: true,
		},
		Editor: EditorConfig{
			PageSize: engine.DefaultPageSize,
			TabWidth: engine.DefaultTabWidth,
			Encoding: "utf-8",
		},
		Search: SearchConfig{
			CaseSensitive: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: string(log.FormatText),
		},
		Script: ScriptConfig{
			InstructionLimit: 10_000_000,
			TimeoutMS:        5000,
		},
	}
}

// Validate checks every setting and returns all problems joined.
func (c Config) Validate() error {
	var errs []error
	fail := func(path, msg string, value any) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: value})
	}

	if c.History.MaxEntries <= 0 {
		fail("history.max_entries", "must be positive", c.History.MaxEntries)
	}
	if c.Editor.PageSize <= 0 {
		fail("editor.page_size", "must be positive", c.Editor.PageSize)
	}
	if c.Editor.TabWidth < 1 || c.Editor.TabWidth > 16 {
		fail("editor.tab_width", "must be between 1 and 16", c.Editor.TabWidth)
	}
	if c.Editor.Encoding == "" {
		fail("editor.encoding", "must not be empty", c.Editor.Encoding)
	}
	if c.Editor.LineEnding != "" {
		if _, ok := buffer.ParseLineEnding(c.Editor.LineEnding); !ok {
			fail("editor.line_ending", "must be lf, crlf or cr", c.Editor.LineEnding)
		}
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		fail("log.level", "unknown level", c.Log.Level)
	}
	if _, err := log.ParseFormat(c.Log.Format); err != nil {
		fail("log.format", "must be text or json", c.Log.Format)
	}
	if c.Script.InstructionLimit < 0 {
		fail("script.instruction_limit", "must not be negative", c.Script.InstructionLimit)
	}
	if c.Script.TimeoutMS < 0 {
		fail("script.timeout_ms", "must not be negative", c.Script.TimeoutMS)
	}

	return errors.Join(errs...)
}

// LineEnding returns the configured line ending override. ok is false when
// files keep their detected style.
func (c Config) LineEnding() (le buffer.LineEnding, ok bool) {
	if c.Editor.LineEnding == "" {
		return buffer.LineEndingLF, false
	}
	return buffer.ParseLineEnding(c.Editor.LineEnding)
}

// ScriptTimeout returns the Lua execution timeout. Zero means none.
func (c Config) ScriptTimeout() time.Duration {
	return time.Duration(c.Script.TimeoutMS) * time.Millisecond
}

// EngineOptions converts the settings into engine options.
func (c Config) EngineOptions() []engine.Option {
	opts := []engine.Option{
		engine.WithMaxUndoEntries(c.History.MaxEntries),
		engine.WithMergeSimilar(c.History.MergeSimilar),
		engine.WithPageSize(c.Editor.PageSize),
		engine.WithTabWidth(c.Editor.TabWidth),
	}
	if le, ok := c.LineEnding(); ok {
		opts = append(opts, engine.WithLineEnding(le))
	}
	return opts
}
