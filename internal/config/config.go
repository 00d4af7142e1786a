package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultAutosaveInterval matches the desktop app's save timer.
const DefaultAutosaveInterval = 30 * time.Second

// Log levels accepted in config.yaml and $EASYWORK_LOG_LEVEL.
var logLevels = []string{"debug", "info", "warn", "error"}

// Config is the resolved configuration.
type Config struct {
	DataDir          string
	AutosaveInterval time.Duration
	LogLevel         string
	Editor           string
	// Source is the config file that was read, empty when none existed.
	Source string
}

// Settings is the config.yaml layout. Every field is optional.
type Settings struct {
	DataDir          string `yaml:"data_dir,omitempty"`
	AutosaveInterval string `yaml:"autosave_interval,omitempty"`
	LogLevel         string `yaml:"log_level,omitempty"`
	Editor           string `yaml:"editor,omitempty"`
}

// Flags holds command-line overrides. Empty fields are ignored.
type Flags struct {
	DataDir string
}

// Default returns the configuration used when no file, env var or flag
// sets anything.
func Default() *Config {
	return &Config{
		DataDir:          DefaultDataDir(),
		AutosaveInterval: DefaultAutosaveInterval,
		LogLevel:         "warn",
		Editor:           defaultEditor(),
	}
}

// Load resolves configuration with priority: flags > env vars > config file > defaults.
// An empty path means FilePath(). A missing file is not an error; a file that
// cannot be parsed is.
func Load(path string, flags Flags) (*Config, error) {
	if path == "" {
		path = FilePath()
	}
	cfg := Default()

	settings, err := readSettings(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		cfg.Source = path
		if err := cfg.apply(settings, path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if flags.DataDir != "" {
		cfg.DataDir = expandHome(flags.DataDir)
	}
	return cfg, nil
}

func readSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &settings, nil
}

func (c *Config) apply(settings *Settings, source string) error {
	if settings.DataDir != "" {
		c.DataDir = expandHome(settings.DataDir)
	}
	if settings.AutosaveInterval != "" {
		interval, err := parseInterval(settings.AutosaveInterval)
		if err != nil {
			return fmt.Errorf("%s: %w", source, err)
		}
		c.AutosaveInterval = interval
	}
	if settings.LogLevel != "" {
		level, err := parseLogLevel(settings.LogLevel)
		if err != nil {
			return fmt.Errorf("%s: %w", source, err)
		}
		c.LogLevel = level
	}
	if settings.Editor != "" {
		c.Editor = settings.Editor
	}
	return nil
}

func (c *Config) applyEnv() error {
	if dir := os.Getenv("EASYWORK_DATA_DIR"); dir != "" {
		c.DataDir = expandHome(dir)
	}
	if raw := os.Getenv("EASYWORK_AUTOSAVE_INTERVAL"); raw != "" {
		interval, err := parseInterval(raw)
		if err != nil {
			return fmt.Errorf("EASYWORK_AUTOSAVE_INTERVAL: %w", err)
		}
		c.AutosaveInterval = interval
	}
	if raw := os.Getenv("EASYWORK_LOG_LEVEL"); raw != "" {
		level, err := parseLogLevel(raw)
		if err != nil {
			return fmt.Errorf("EASYWORK_LOG_LEVEL: %w", err)
		}
		c.LogLevel = level
	}
	if editor := os.Getenv("EASYWORK_EDITOR"); editor != "" {
		c.Editor = editor
	}
	return nil
}

func parseInterval(raw string) (time.Duration, error) {
	interval, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid autosave_interval %q: %w", raw, err)
	}
	if interval < time.Second {
		return 0, fmt.Errorf("autosave_interval %s is shorter than one second", interval)
	}
	return interval, nil
}

func parseLogLevel(raw string) (string, error) {
	level := strings.ToLower(strings.TrimSpace(raw))
	for _, known := range logLevels {
		if level == known {
			return level, nil
		}
	}
	return "", fmt.Errorf("invalid log_level %q (want one of %s)", raw, strings.Join(logLevels, ", "))
}

func defaultEditor() string {
	if editor := os.Getenv("VISUAL"); editor != "" {
		return editor
	}
	return os.Getenv("EDITOR")
}

// expandHome replaces a leading ~/ with the user's home directory.
func expandHome(path string) string {
	rest, ok := strings.CutPrefix(path, "~/")
	if !ok {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rest)
}
