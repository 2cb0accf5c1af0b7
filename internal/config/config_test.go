package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maubry-ortega/Xylux-sub000/internal/engine"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultsValid(t *testing.T) {
	cfg := Defaults()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, engine.DefaultMaxUndoEntries, cfg.History.MaxEntries)
	assert.True(t, cfg.History.MergeSimilar)
	assert.Equal(t, 5*time.Second, cfg.ScriptTimeout())

	_, ok := cfg.LineEnding()
	assert.False(t, ok)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))

	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
[history]
merge_similar = false

[editor]
tab_width = 8
line_ending = "crlf"

[log]
format = "json"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.False(t, cfg.History.MergeSimilar)
	assert.Equal(t, engine.DefaultMaxUndoEntries, cfg.History.MaxEntries)
	assert.Equal(t, 8, cfg.Editor.TabWidth)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "utf-8", cfg.Editor.Encoding)

	le, ok := cfg.LineEnding()
	assert.True(t, ok)
	assert.Equal(t, engine.LineEndingCRLF, le)
}

func TestLoadParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantLine int
		wantMsg  string
	}{
		{"unknown key", "[editor]\ntab_wdth = 8\n", 2, "editor.tab_wdth"},
		{"syntax", "[editor\n", 1, ""},
		{"wrong type", "[editor]\ntab_width = \"wide\"\n", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)

			var perr *ParseError
			require.True(t, errors.As(err, &perr), "got %T: %v", err, err)
			if tt.wantLine > 0 {
				assert.Equal(t, tt.wantLine, perr.Line)
			}
			assert.Contains(t, perr.Error(), FileName)
			if tt.wantMsg != "" {
				assert.Contains(t, perr.Message, tt.wantMsg)
			}
		})
	}
}

func TestLoadInvalidValue(t *testing.T) {
	_, err := Load(writeConfig(t, "[editor]\ntab_width = 0\n"))

	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.Contains(t, err.Error(), "editor.tab_width")
}

func TestValidateCollectsAll(t *testing.T) {
	cfg := Defaults()
	cfg.History.MaxEntries = 0
	cfg.Editor.PageSize = -1
	cfg.Editor.LineEnding = "vms"
	cfg.Log.Level = "loud"
	cfg.Log.Format = "xml"
	cfg.Script.TimeoutMS = -5

	err := cfg.Validate()
	require.Error(t, err)
	for _, key := range []string{
		"history.max_entries",
		"editor.page_size",
		"editor.line_ending",
		"log.level",
		"log.format",
		"script.timeout_ms",
	} {
		assert.Contains(t, err.Error(), key)
	}
}

func TestWriteDefaultRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	require.NoError(t, WriteDefault(path))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)

	err = WriteDefault(path)
	assert.Error(t, err)
}

func TestLoadFromReader(t *testing.T) {
	cfg, err := LoadFromReader(strings.NewReader("[search]\ncase_sensitive = false\n"))

	require.NoError(t, err)
	assert.False(t, cfg.Search.CaseSensitive)
}

func TestNewViperFileAndEnv(t *testing.T) {
	path := writeConfig(t, "[editor]\ntab_width = 8\npage_size = 5\n")
	t.Setenv("XYLUX_EDITOR_TAB_WIDTH", "2")

	v, err := NewViper(path)
	require.NoError(t, err)

	cfg, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Editor.TabWidth)
	assert.Equal(t, 5, cfg.Editor.PageSize)
	assert.Equal(t, engine.DefaultMaxUndoEntries, cfg.History.MaxEntries)
}

func TestNewViperMissingFile(t *testing.T) {
	v, err := NewViper(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	cfg, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestNewViperRejectsBadFile(t *testing.T) {
	_, err := NewViper(writeConfig(t, "[editor\n"))

	var perr *ParseError
	assert.True(t, errors.As(err, &perr))
}

func TestEngineOptions(t *testing.T) {
	cfg := Defaults()
	cfg.Editor.TabWidth = 2
	cfg.Editor.LineEnding = "crlf"
	cfg.History.MergeSimilar = false

	opts := append(cfg.EngineOptions(), engine.WithContent("a\nb"))
	e := engine.New(opts...)

	assert.Equal(t, 2, e.TabWidth())
	assert.Equal(t, engine.LineEndingCRLF, e.LineEnding())

	require.NoError(t, e.InsertText("x"))
	require.NoError(t, e.InsertText("y"))
	assert.Equal(t, 2, e.UndoCount())
}
