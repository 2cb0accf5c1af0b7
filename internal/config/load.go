package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/maubry-ortega/Xylux-sub000/internal/log"
)

// FileName is the configuration file name looked up by DefaultPaths.
const FileName = "config.toml"

// DefaultPaths returns the configuration files searched when none is given,
// highest priority first: the project file, then the user file.
func DefaultPaths() []string {
	paths := []string{filepath.Join(".xylux", FileName)}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "xylux", FileName))
	}
	return paths
}

// Load reads the TOML file at path over the defaults. A missing file is not
// an error. The result is validated.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Defaults(), nil // File doesn't exist, not an error
		}
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg, err := parse(path, bytes.NewReader(data))
	if err != nil {
		log.Warn(log.CatConfig, "config rejected", "path", path, "error", err)
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader reads TOML from r over the defaults without validating.
func LoadFromReader(r io.Reader) (Config, error) {
	return parse("<reader>", r)
}

// parse decodes strictly: unknown keys are reported as parse errors.
func parse(source string, r io.Reader) (Config, error) {
	cfg := Defaults()

	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}

		var derr *toml.DecodeError
		var serr *toml.StrictMissingError
		switch {
		case errors.As(err, &serr) && len(serr.Errors) > 0:
			first := &serr.Errors[0]
			perr.Line, perr.Column = first.Position()
			perr.Message = fmt.Sprintf("unknown key %s", strings.Join(first.Key(), "."))
		case errors.As(err, &derr):
			perr.Line, perr.Column = derr.Position()
			perr.Message = derr.Error()
		}
		return Config{}, perr
	}

	return cfg, nil
}

// Marshal encodes cfg as TOML.
func Marshal(cfg Config) ([]byte, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return data, nil
}

// WriteDefault writes the default configuration to path, creating parent
// directories. An existing file is left alone and reported as an error.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file %s already exists", path)
	}

	data, err := Marshal(Defaults())
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}
