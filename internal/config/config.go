// Package config loads the client configuration file.
//
// Configuration lives in a single TOML file, by default
// os.UserConfigDir()/neophyte/config.toml. A missing file is not an error;
// every field has a default so the client runs unconfigured. A few settings
// can be overridden per invocation through environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
)

// Config is the root of the configuration file.
type Config struct {
	Editor Editor `toml:"editor"`
	UI     UI     `toml:"ui"`
	Log    Log    `toml:"log"`
}

// Editor selects the binary the client embeds.
type Editor struct {
	// Command is the editor executable, resolved through PATH.
	Command string `toml:"command"`

	// Args are extra arguments placed before any files to open.
	Args []string `toml:"args"`
}

// UI holds terminal front end settings.
type UI struct {
	// Mouse enables terminal mouse reporting. The editor still decides
	// whether it wants mouse input; this only gates the terminal side.
	Mouse bool `toml:"mouse"`
}

// Log holds logging settings.
type Log struct {
	// Level is a zerolog level name: trace, debug, info, warn, error.
	Level string `toml:"level"`

	// File receives log output when set. The terminal front end owns
	// stderr once it starts, so interactive runs want a file here.
	File string `toml:"file"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Editor: Editor{Command: "nvim"},
		UI:     UI{Mouse: true},
		Log:    Log{Level: "info"},
	}
}

// DefaultPath returns the conventional configuration file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config dir: %w", err)
	}
	return filepath.Join(dir, "neophyte", "config.toml"), nil
}

// Load reads the file at path over the defaults. A missing file yields the
// defaults. Environment overrides apply after the file.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Run unconfigured.
	case err != nil:
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overlays the settings that make sense per invocation.
func applyEnv(cfg *Config) {
	if v := os.Getenv("NEOPHYTE_COMMAND"); v != "" {
		cfg.Editor.Command = v
	}
	if v := os.Getenv("NEOPHYTE_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("NEOPHYTE_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	if c.Editor.Command == "" {
		return errors.New("editor.command must not be empty")
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level %q: %w", c.Log.Level, err)
	}
	return nil
}
