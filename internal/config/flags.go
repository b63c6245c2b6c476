package config

import "flag"

// flagFields maps flag names to source field names.
var flagFields = map[string]string{
	"todo":           "todo_file",
	"schema":         "schema_file",
	"log-dir":        "log_dir",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-timestamps": "log_timestamps",
	"log-caller":     "log_caller",
}

// parseFlags defines the global flags on fs, parses args, and applies only
// the flags that were explicitly set. If sources is non-nil, those flags are
// recorded as the source of their field.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("tudu", flag.ContinueOnError)
	}

	var (
		todoFile, schemaFile, logDir string
		logLevel, logFormat          string
		logTimestamps, logCaller     bool
	)

	// Path flags
	fs.StringVar(&todoFile, "todo", cfg.TodoFile, "Path to task file")
	fs.StringVar(&schemaFile, "schema", cfg.SchemaFile, "Path to a JSON schema for the task file (default: built-in)")
	fs.StringVar(&logDir, "log-dir", cfg.LogDir, "Log directory")

	// Logging
	fs.StringVar(&logLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&logFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&logTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&logCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		field, ok := flagFields[f.Name]
		if !ok {
			return
		}
		switch f.Name {
		case "todo":
			cfg.TodoFile = todoFile
		case "schema":
			cfg.SchemaFile = schemaFile
		case "log-dir":
			cfg.LogDir = logDir
		case "log-level":
			cfg.LogLevel = logLevel
		case "log-format":
			cfg.LogFormat = logFormat
		case "log-timestamps":
			cfg.LogTimestamps = logTimestamps
		case "log-caller":
			cfg.LogCaller = logCaller
		}
		if sources != nil {
			sources[field] = SourceFlag
		}
	})

	return nil
}
