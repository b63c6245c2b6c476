// Package cmd implements the CLI command structure for tudu.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nibzard/tudu/internal/config"
	"github.com/nibzard/tudu/internal/logging"
	"github.com/nibzard/tudu/internal/todo"
	"github.com/nibzard/tudu/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// cli carries the loaded configuration and output streams to subcommands.
type cli struct {
	cfg     *config.Config
	sources *config.ConfigWithSources
	stdout  io.Writer
	stderr  io.Writer
}

// Run executes the tudu CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("tudu", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	c := &cli{cfg: cws.Config, sources: cws, stdout: stdout, stderr: stderr}

	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return c.versionCommand()
	}

	// Determine the subcommand; with no args or a leading flag, use "tui"
	subcommand := "tui"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "tui":
		return c.tuiCommand(ctx, remainingArgs)
	case "ls":
		return c.lsCommand(remainingArgs)
	case "doctor":
		return c.doctorCommand(remainingArgs)
	case "tail":
		return c.tailCommand(ctx, remainingArgs)
	case "init":
		return c.initCommand(remainingArgs)
	case "version":
		return c.versionCommand()
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		// An existing file is edited directly: tudu path/to/todos.json
		if fi, err := os.Stat(subcommand); err == nil && !fi.IsDir() {
			return c.tuiCommand(ctx, append([]string{subcommand}, remainingArgs...))
		}
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// todoPathArg returns the task file named by the only positional argument,
// or the configured one when there is none.
func (c *cli) todoPathArg(args []string) (string, error) {
	if len(args) > 1 {
		return "", fmt.Errorf("unexpected arguments: %v", args[1:])
	}
	if len(args) == 1 {
		return c.cfg.ResolvePath(args[0]), nil
	}
	return c.cfg.TodoFile, nil
}

func (c *cli) logOptions() logging.Options {
	return logging.Options{
		Dir:        c.cfg.LogDir,
		WorkDir:    c.cfg.ProjectRoot,
		Level:      c.cfg.LogLevel,
		Format:     c.cfg.LogFormat,
		Timestamps: c.cfg.LogTimestamps,
		Caller:     c.cfg.LogCaller,
	}
}

// tuiCommand launches the interactive editor.
func (c *cli) tuiCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tudu tui", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	todoPath, err := c.todoPathArg(fs.Args())
	if err != nil {
		return err
	}

	schema, err := todo.CompileSchema(c.cfg.SchemaFile)
	if err != nil {
		return fmt.Errorf("loading schema: %w", err)
	}

	logger, err := logging.Open(c.logOptions())
	if err != nil {
		fmt.Fprintf(c.stderr, "Warning: logging disabled: %v\n", err)
		logger = &logging.Logger{Logger: logging.Discard()}
	}
	defer logger.Close()

	store := todo.NewStore(todoPath, todo.WithSchema(schema), todo.WithLogger(logger.Logger))
	return ui.Run(ctx, store, ui.WithLogger(logger.Logger))
}

// lsCommand prints the list without entering the editor.
func (c *cli) lsCommand(args []string) error {
	fs := flag.NewFlagSet("tudu ls", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	doneOnly := fs.Bool("done", false, "Only show completed tasks")
	pendingOnly := fs.Bool("pending", false, "Only show pending tasks")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *doneOnly && *pendingOnly {
		return fmt.Errorf("-done and -pending are mutually exclusive")
	}
	todoPath, err := c.todoPathArg(fs.Args())
	if err != nil {
		return err
	}

	schema, err := todo.CompileSchema(c.cfg.SchemaFile)
	if err != nil {
		return fmt.Errorf("loading schema: %w", err)
	}
	tasks, err := todo.NewStore(todoPath, todo.WithSchema(schema)).LoadStrict()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading todo file: %w", err)
	}

	printed := 0
	for i, t := range tasks {
		if (*doneOnly && !t.Completed) || (*pendingOnly && t.Completed) {
			continue
		}
		fmt.Fprintf(c.stdout, "%3d %s\n", i+1, formatTask(t))
		printed++
	}
	if printed == 0 {
		fmt.Fprintln(c.stdout, "No tasks found.")
	}
	return nil
}

// tailCommand tails the latest log file.
func (c *cli) tailCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tudu tail", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	follow := fs.Bool("f", false, "Follow the log (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the log (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logDir, err := logging.FindLogDir(c.cfg.LogDir, c.cfg.ProjectRoot)
	if err != nil {
		return fmt.Errorf("finding log directory: %w", err)
	}
	logPath, err := logging.FindLatestLog(logDir)
	if err != nil {
		return fmt.Errorf("finding latest log: %w", err)
	}
	if logPath == "" {
		fmt.Fprintln(c.stdout, "No log files found.")
		return nil
	}

	fmt.Fprintf(c.stdout, "Tailing: %s\n", logPath)
	if *follow {
		fmt.Fprintln(c.stdout, "(Ctrl+C to stop)")
	}
	fmt.Fprintln(c.stdout)

	return logging.TailLog(ctx, c.stdout, logPath, *n, *follow)
}

// initCommand writes an example config into the project root.
func (c *cli) initCommand(args []string) error {
	fs := flag.NewFlagSet("tudu init", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	force := fs.Bool("force", false, "Overwrite an existing tudu.toml")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	path, err := config.WriteExample(c.cfg.ProjectRoot, *force)
	if errors.Is(err, config.ErrConfigExists) {
		fmt.Fprintf(c.stdout, "⚠️  %s already exists (use -force to overwrite)\n", path)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "✅ Wrote %s\n", path)
	return nil
}

// versionCommand prints version information.
func (c *cli) versionCommand() error {
	fmt.Fprintf(c.stdout, "tudu version %s\n", Version)
	return nil
}

func formatTask(t todo.Task) string {
	mark := " "
	if t.Completed {
		mark = "x"
	}
	return fmt.Sprintf("[%s] %s", mark, t.Title)
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "tudu - a terminal todo list")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tudu [options] [command] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui [file]           Edit the list interactively (default command)")
	fmt.Fprintln(w, "  ls [file]            Print the list")
	fmt.Fprintln(w, "  doctor [file]        Check config, task file, schema, and log directory")
	fmt.Fprintln(w, "  tail                 Print the latest log file")
	fmt.Fprintln(w, "  init                 Write an example tudu.toml")
	fmt.Fprintln(w, "  version              Show version information")
	fmt.Fprintln(w, "  help                 Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ls Options:")
	fmt.Fprintln(w, "  -done     Only show completed tasks")
	fmt.Fprintln(w, "  -pending  Only show pending tasks")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Doctor Options:")
	fmt.Fprintln(w, "  -v        Show config sources and tasks")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tail Options:")
	fmt.Fprintln(w, "  -f, -follow  Follow the log (like tail -f)")
	fmt.Fprintln(w, "  -n int       Number of lines to show (0 = all)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Init Options:")
	fmt.Fprintln(w, "  -force    Overwrite an existing tudu.toml")
}
