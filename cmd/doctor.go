package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/nibzard/tudu/internal/config"
	"github.com/nibzard/tudu/internal/logging"
	"github.com/nibzard/tudu/internal/todo"
)

var (
	knownLogLevels  = []string{"debug", "info", "warn", "warning", "error", "fatal"}
	knownLogFormats = []string{"text", "json", "logfmt"}
)

// doctorCommand checks config, task file validity, schema and log directory.
func (c *cli) doctorCommand(args []string) error {
	fs := flag.NewFlagSet("tudu doctor", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	verbose := fs.Bool("v", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	todoPath, err := c.todoPathArg(fs.Args())
	if err != nil {
		return err
	}

	w := c.stdout
	fmt.Fprintln(w, "Tudu Doctor")
	fmt.Fprintln(w, "===========")
	fmt.Fprintln(w)

	allOK := true
	for _, check := range []func(io.Writer, bool) bool{
		c.checkProjectRoot,
		c.checkConfig,
		func(w io.Writer, verbose bool) bool { return c.checkTodoFile(w, todoPath, verbose) },
		c.checkSchema,
		c.checkLogDir,
	} {
		if !check(w, *verbose) {
			allOK = false
		}
		fmt.Fprintln(w)
	}

	if allOK {
		fmt.Fprintln(w, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(w, "⚠️  Some checks failed. tudu may not function correctly.")
	return fmt.Errorf("doctor checks failed")
}

func (c *cli) checkProjectRoot(w io.Writer, _ bool) bool {
	fmt.Fprintf(w, "Project root: %s\n", c.cfg.ProjectRoot)
	if _, err := os.Stat(c.cfg.ProjectRoot); err != nil {
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		return false
	}
	fmt.Fprintln(w, "  ✅ OK")
	return true
}

func (c *cli) checkConfig(w io.Writer, verbose bool) bool {
	fmt.Fprintln(w, "Config:")
	if len(c.sources.Files) == 0 {
		fmt.Fprintln(w, "  ✅ No config file (using defaults)")
	}
	for _, f := range c.sources.Files {
		fmt.Fprintf(w, "  ✅ Loaded %s\n", f)
	}

	if !contains(knownLogLevels, c.cfg.LogLevel) {
		fmt.Fprintf(w, "  ⚠️  Log level: %q is unknown, using info\n", c.cfg.LogLevel)
	}
	if !contains(knownLogFormats, c.cfg.LogFormat) {
		fmt.Fprintf(w, "  ⚠️  Log format: %q is unknown, using text\n", c.cfg.LogFormat)
	}

	if verbose {
		values := map[string]string{
			"todo_file":      c.cfg.TodoFile,
			"schema_file":    c.cfg.SchemaFile,
			"log_dir":        c.cfg.LogDir,
			"log_level":      c.cfg.LogLevel,
			"log_format":     c.cfg.LogFormat,
			"log_timestamps": fmt.Sprint(c.cfg.LogTimestamps),
			"log_caller":     fmt.Sprint(c.cfg.LogCaller),
		}
		fields := make([]string, 0, len(values))
		for field := range values {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			fmt.Fprintf(w, "    %s = %q (%s)\n", field, values[field], sourceOf(c.sources, field))
		}
	}
	return true
}

func (c *cli) checkTodoFile(w io.Writer, todoPath string, verbose bool) bool {
	fmt.Fprintf(w, "Todo file: %s\n", todoPath)
	info, err := os.Stat(todoPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		fmt.Fprintln(w, "  ⚠️  Not found (created on the first change)")
		return true
	case err != nil:
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		return false
	case info.IsDir():
		fmt.Fprintln(w, "  ❌ Error: path is a directory")
		return false
	}

	data, err := os.ReadFile(todoPath)
	if err != nil {
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		return false
	}
	fmt.Fprintln(w, "  ✅ OK")

	schema, err := todo.CompileSchema(c.cfg.SchemaFile)
	if err != nil {
		fmt.Fprintf(w, "  ❌ Cannot validate (the editor would refuse to start): %v\n", err)
		return false
	}
	result := todo.Validate(data, todo.ValidationOptions{SchemaPath: c.cfg.SchemaFile})
	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "  ⚠️  %s\n", warning)
	}
	if !result.Valid {
		fmt.Fprintln(w, "  ❌ Validation failed (the editor would start with an empty list):")
		for _, e := range result.Errors {
			fmt.Fprintf(w, "     - %v\n", e)
		}
		return false
	}
	fmt.Fprintln(w, "  ✅ Valid")

	if verbose {
		tasks, err := todo.Decode(data, schema)
		if err == nil {
			fmt.Fprintf(w, "  Tasks: %d\n", len(tasks))
			for _, t := range tasks {
				fmt.Fprintf(w, "    - %s\n", formatTask(t))
			}
		}
	}
	return true
}

func (c *cli) checkSchema(w io.Writer, _ bool) bool {
	if c.cfg.SchemaFile == "" {
		fmt.Fprintln(w, "Schema: built-in")
		fmt.Fprintln(w, "  ✅ OK")
		return true
	}
	fmt.Fprintf(w, "Schema file: %s\n", c.cfg.SchemaFile)
	if _, err := todo.CompileSchema(c.cfg.SchemaFile); err != nil {
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		return false
	}
	fmt.Fprintln(w, "  ✅ OK")
	return true
}

func (c *cli) checkLogDir(w io.Writer, verbose bool) bool {
	logDir, err := logging.FindLogDir(c.cfg.LogDir, c.cfg.ProjectRoot)
	if err != nil {
		fmt.Fprintf(w, "Log directory: %s\n", c.cfg.LogDir)
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		return false
	}
	fmt.Fprintf(w, "Log directory: %s\n", logDir)

	info, err := os.Stat(logDir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		fmt.Fprintln(w, "  ⚠️  Not found (created on the next tui run)")
		return true
	case err != nil:
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		return false
	case !info.IsDir():
		fmt.Fprintln(w, "  ❌ Error: path is not a directory")
		return false
	}
	fmt.Fprintln(w, "  ✅ OK")

	if verbose {
		if latest, err := logging.FindLatestLog(logDir); err == nil && latest != "" {
			fmt.Fprintf(w, "  Latest log: %s\n", latest)
		}
	}
	return true
}

func sourceOf(cws *config.ConfigWithSources, field string) config.ConfigSource {
	if src, ok := cws.Sources[field]; ok {
		return src
	}
	return config.SourceDefault
}

func contains(values []string, v string) bool {
	return slices.Contains(values, strings.ToLower(strings.TrimSpace(v)))
}
