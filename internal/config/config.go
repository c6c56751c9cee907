// Package config loads the habit tracker's YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the configuration file.
const ConfigFileName = "config.yaml"

// ConfigDirName is the directory under $HOME holding config and database.
const ConfigDirName = ".habits"

// Config holds all habit tracker configuration.
type Config struct {
	Database string        `yaml:"database" json:"database"`
	Log      LogConfig     `yaml:"log" json:"log"`
	Output   OutputConfig  `yaml:"output" json:"output"`
	Metrics  MetricsConfig `yaml:"metrics" json:"metrics"`
}

// LogConfig controls the slog handler the CLI installs.
type LogConfig struct {
	Level string `yaml:"level" json:"level"` // debug | info | warn | error
}

// OutputConfig controls rendering.
type OutputConfig struct {
	Format string `yaml:"format" json:"format"` // text | json

	// RecentCompletions caps the completion dates listed per habit in the
	// statistics overview.
	RecentCompletions int `yaml:"recent_completions" json:"recent_completions"`
}

// MetricsConfig controls metric export.
type MetricsConfig struct {
	// Textfile is written in Prometheus text format after each command.
	// Empty disables export.
	Textfile string `yaml:"textfile" json:"textfile"`
}

// ValidFormats lists the accepted output formats.
var ValidFormats = []string{"text", "json"}

// ValidLogLevels lists the accepted log levels.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// ErrConfigNotFound is returned when an explicitly named config file is missing.
var ErrConfigNotFound = errors.New("config file not found")

// ErrInvalidConfig is returned when config validation fails.
var ErrInvalidConfig = errors.New("invalid configuration")

// DefaultDir returns $HOME/.habits, or .habits in the working directory if
// the home directory cannot be determined.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ConfigDirName
	}
	return filepath.Join(home, ConfigDirName)
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), ConfigFileName)
}

// Load reads config from path. An empty path means DefaultPath, and a
// missing default file yields the defaults. A missing explicit path is an
// error wrapping ErrConfigNotFound.
func Load(path string) (*Config, error) {
	if path == "" {
		return LoadFromPath(DefaultPath())
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	}
	return LoadFromPath(path)
}

// LoadFromPath reads config from a specific path.
// Merges loaded config with defaults and validates the result.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	loaded := &Config{}
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	merged := Merge(loaded, DefaultConfig())

	if err := Validate(merged); err != nil {
		return nil, err
	}

	return merged, nil
}

// Validate checks that config values are valid.
func Validate(cfg *Config) error {
	if cfg.Database == "" {
		return fmt.Errorf("%w: database must not be empty", ErrInvalidConfig)
	}

	if !contains(ValidFormats, cfg.Output.Format) {
		return fmt.Errorf("%w: output.format must be one of %v, got %q",
			ErrInvalidConfig, ValidFormats, cfg.Output.Format)
	}

	if cfg.Output.RecentCompletions < 0 {
		return fmt.Errorf("%w: output.recent_completions must be non-negative, got %d",
			ErrInvalidConfig, cfg.Output.RecentCompletions)
	}

	if !contains(ValidLogLevels, strings.ToLower(cfg.Log.Level)) {
		return fmt.Errorf("%w: log.level must be one of %v, got %q",
			ErrInvalidConfig, ValidLogLevels, cfg.Log.Level)
	}

	return nil
}

// SlogLevel maps Log.Level to a slog.Level. Unknown values map to Info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SaveDefault writes the default configuration to path, creating parent
// directories. Refuses to overwrite an existing file.
func SaveDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	header := "# habits configuration\n\n"
	data = append([]byte(header), data...)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
