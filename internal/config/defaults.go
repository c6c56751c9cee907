package config

import "path/filepath"

// DefaultConfig returns configuration with sensible defaults.
// These defaults are used when no config file exists or when
// config file is missing specific fields.
func DefaultConfig() *Config {
	return &Config{
		Database: filepath.Join(DefaultDir(), "habits.db"),
		Log: LogConfig{
			Level: "info",
		},
		Output: OutputConfig{
			Format:            "text",
			RecentCompletions: 7,
		},
	}
}

// Merge merges loaded config with defaults.
// Values from loaded config take precedence over defaults.
// Returns a new Config with merged values.
func Merge(loaded, defaults *Config) *Config {
	result := &Config{}

	result.Database = loaded.Database
	if result.Database == "" {
		result.Database = defaults.Database
	}

	result.Log.Level = loaded.Log.Level
	if result.Log.Level == "" {
		result.Log.Level = defaults.Log.Level
	}

	result.Output = mergeOutputConfig(loaded.Output, defaults.Output)

	result.Metrics.Textfile = loaded.Metrics.Textfile
	if result.Metrics.Textfile == "" {
		result.Metrics.Textfile = defaults.Metrics.Textfile
	}

	return result
}

func mergeOutputConfig(loaded, defaults OutputConfig) OutputConfig {
	result := OutputConfig{}

	if loaded.Format != "" {
		result.Format = loaded.Format
	} else {
		result.Format = defaults.Format
	}

	// Zero means "not set"; negative values are kept so Validate rejects them.
	if loaded.RecentCompletions != 0 {
		result.RecentCompletions = loaded.RecentCompletions
	} else {
		result.RecentCompletions = defaults.RecentCompletions
	}

	return result
}
