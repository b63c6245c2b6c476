package config

import (
	"path/filepath"

	"github.com/nibzard/tudu/internal/todo"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// Default values.
const (
	DefaultTodoFile  = todo.DefaultFile
	DefaultLogDir    = "~/.tudu"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// ProjectConfigName is the preferred project config file name.
const ProjectConfigName = "tudu.toml"

// Config holds the full configuration for tudu.
type Config struct {
	// Paths
	TodoFile   string `toml:"todo_file"`
	SchemaFile string `toml:"schema_file"`
	LogDir     string `toml:"log_dir"`

	// Logging
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// ProjectRoot is the working directory at load time.
	ProjectRoot string `toml:"-"`
}

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, lowest priority first.
	Files []string
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"todo_file",
		"schema_file",
		"log_dir",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.TodoFile = DefaultTodoFile
	cfg.SchemaFile = ""
	cfg.LogDir = DefaultLogDir
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = true
	cfg.LogCaller = false
}

// ResolvePath makes p absolute against the project root after expanding ~
// and environment variables. An empty p stays empty.
func (c *Config) ResolvePath(p string) string {
	p = expandPath(p)
	if p == "" || filepath.IsAbs(p) || c.ProjectRoot == "" {
		return p
	}
	return filepath.Join(c.ProjectRoot, p)
}
