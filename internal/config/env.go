package config

import (
	"os"

	"github.com/nibzard/tudu/internal/utils"
)

// loadFromEnv overrides config from TUDU_* environment variables. If sources
// is non-nil, it records the environment as the source of each value set.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	set := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}

	if v := os.Getenv("TUDU_TODO"); v != "" {
		cfg.TodoFile = v
		set("todo_file")
	}
	if v := os.Getenv("TUDU_SCHEMA"); v != "" {
		cfg.SchemaFile = v
		set("schema_file")
	}
	if v := os.Getenv("TUDU_LOG_DIR"); v != "" {
		cfg.LogDir = v
		set("log_dir")
	}

	// Logging configuration
	if v := os.Getenv("TUDU_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
		set("log_level")
	}
	if v := os.Getenv("TUDU_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
		set("log_format")
	}
	if v := os.Getenv("TUDU_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = utils.BoolFromString(v)
		set("log_timestamps")
	}
	if v := os.Getenv("TUDU_LOG_CALLER"); v != "" {
		cfg.LogCaller = utils.BoolFromString(v)
		set("log_caller")
	}
}
