package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# tudu configuration file
# Values can be overridden by TUDU_* environment variables or CLI flags.

# Task file (relative to the directory tudu runs in)
todo_file = "todos.json"

# Optional JSON schema for the task file; empty uses the built-in schema
# schema_file = "todos.schema.json"

# Log directory (supports ~ expansion and %VAR% on Windows)
log_dir = "~/.tudu"

# Log level: debug, info, warn, error
log_level = "info"

# Log format: text, json, logfmt
log_format = "text"

log_timestamps = true
log_caller = false
`
}

// ErrConfigExists is returned by WriteExample when the target already exists.
var ErrConfigExists = errors.New("config file already exists")

// WriteExample writes ExampleConfig to dir/tudu.toml and returns its path.
// An existing file is only replaced when force is set.
func WriteExample(dir string, force bool) (string, error) {
	path := filepath.Join(dir, ProjectConfigName)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return path, fmt.Errorf("%s: %w", path, ErrConfigExists)
		}
	}
	if err := os.WriteFile(path, []byte(ExampleConfig()), 0644); err != nil {
		return path, fmt.Errorf("write config: %w", err)
	}
	return path, nil
}
