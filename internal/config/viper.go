package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/maubry-ortega/Xylux-sub000/internal/log"
)

// EnvPrefix prefixes environment overrides: XYLUX_HISTORY_MAX_ENTRIES sets
// history.max_entries.
const EnvPrefix = "XYLUX"

// NewViper returns a viper instance seeded with the defaults and reading
// environment overrides. If path is empty the first existing file from
// DefaultPaths is used; finding none is not an error.
func NewViper(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType("toml")
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		for _, p := range DefaultPaths() {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}
	if path == "" {
		return v, nil
	}

	log.Debug(log.CatConfig, "reading config", "path", path)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return v, nil
		}
		return nil, &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	return v, nil
}

// SetDefaults registers every setting with its default value so that
// environment overrides and Unmarshal see the full key set.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("history.max_entries", d.History.MaxEntries)
	v.SetDefault("history.merge_similar", d.History.MergeSimilar)
	v.SetDefault("editor.page_size", d.Editor.PageSize)
	v.SetDefault("editor.tab_width", d.Editor.TabWidth)
	v.SetDefault("editor.encoding", d.Editor.Encoding)
	v.SetDefault("editor.line_ending", d.Editor.LineEnding)
	v.SetDefault("search.case_sensitive", d.Search.CaseSensitive)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("script.instruction_limit", d.Script.InstructionLimit)
	v.SetDefault("script.timeout_ms", d.Script.TimeoutMS)
}

// FromViper decodes and validates the configuration held by v.
func FromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
