// Package cmd provides tests for CLI command handlers.
package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nibzard/tudu/internal/config"
	"github.com/nibzard/tudu/internal/logging"
	"github.com/nibzard/tudu/internal/todo"
)

// setupProject runs the test inside an empty project directory with no user
// config and returns that directory.
func setupProject(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("APPDATA", filepath.Join(home, "AppData"))
	for _, name := range []string{"TUDU_TODO", "TUDU_SCHEMA", "TUDU_LOG_DIR", "TUDU_LOG_LEVEL", "TUDU_LOG_FORMAT"} {
		t.Setenv(name, "")
	}
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func writeTodos(t *testing.T, path string, tasks []todo.Task) {
	t.Helper()
	if err := todo.NewStore(path).Save(tasks); err != nil {
		t.Fatalf("save: %v", err)
	}
}

// TestRun tests the main Run entry point.
func TestRun(t *testing.T) {
	setupProject(t)

	t.Run("shows help with --help flag", func(t *testing.T) {
		out, _, err := runCLI(t, "--help")
		if err != nil {
			t.Errorf("expected no error with --help, got %v", err)
		}
		if !strings.Contains(out, "Commands:") || !strings.Contains(out, "-log-dir") {
			t.Errorf("usage missing sections:\n%s", out)
		}
	})

	t.Run("shows help with -h flag", func(t *testing.T) {
		if _, _, err := runCLI(t, "-h"); err != nil {
			t.Errorf("expected no error with -h, got %v", err)
		}
	})

	t.Run("shows help with help command", func(t *testing.T) {
		out, _, err := runCLI(t, "help")
		if err != nil {
			t.Errorf("expected no error with help command, got %v", err)
		}
		if !strings.Contains(out, "Usage:") {
			t.Errorf("expected usage, got %q", out)
		}
	})

	t.Run("shows version", func(t *testing.T) {
		for _, args := range [][]string{{"--version"}, {"-v"}, {"version"}} {
			out, _, err := runCLI(t, args...)
			if err != nil {
				t.Errorf("%v: unexpected error %v", args, err)
			}
			if out != "tudu version "+Version+"\n" {
				t.Errorf("%v: got %q", args, out)
			}
		}
	})

	t.Run("unknown command returns error", func(t *testing.T) {
		_, stderr, err := runCLI(t, "unknown-command")
		if err == nil || !strings.Contains(err.Error(), "unknown command") {
			t.Fatalf("expected 'unknown command' error, got %v", err)
		}
		if !strings.Contains(stderr, "Unknown command: unknown-command") {
			t.Errorf("stderr: got %q", stderr)
		}
	})

	t.Run("unknown flag returns error", func(t *testing.T) {
		if _, _, err := runCLI(t, "--no-such-flag"); err == nil {
			t.Error("expected error for unknown flag")
		}
	})

	t.Run("bad schema fails before the terminal is touched", func(t *testing.T) {
		_, _, err := runCLI(t, "-schema", "missing.schema.json", "tui")
		if err == nil || !strings.Contains(err.Error(), "loading schema") {
			t.Errorf("expected schema error, got %v", err)
		}
	})
}

func TestLsCommand(t *testing.T) {
	dir := setupProject(t)
	writeTodos(t, filepath.Join(dir, "todos.json"), []todo.Task{
		{Title: "Buy milk", Completed: true},
		{Title: "Walk dog"},
		{Title: "Write report", Completed: true},
	})

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"all tasks", []string{"ls"}, "  1 [x] Buy milk\n  2 [ ] Walk dog\n  3 [x] Write report\n"},
		{"done only", []string{"ls", "-done"}, "  1 [x] Buy milk\n  3 [x] Write report\n"},
		{"pending only", []string{"ls", "-pending"}, "  2 [ ] Walk dog\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := runCLI(t, tt.args...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out != tt.want {
				t.Errorf("got %q, want %q", out, tt.want)
			}
		})
	}

	t.Run("explicit file argument", func(t *testing.T) {
		writeTodos(t, filepath.Join(dir, "other.json"), []todo.Task{{Title: "Elsewhere"}})
		out, _, err := runCLI(t, "ls", "other.json")
		if err != nil {
			t.Fatal(err)
		}
		if out != "  1 [ ] Elsewhere\n" {
			t.Errorf("got %q", out)
		}
	})

	t.Run("todo flag selects file", func(t *testing.T) {
		out, _, err := runCLI(t, "-todo", "other.json", "ls")
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(out, "Elsewhere") {
			t.Errorf("got %q", out)
		}
	})

	t.Run("missing file lists nothing", func(t *testing.T) {
		out, _, err := runCLI(t, "ls", "absent.json")
		if err != nil {
			t.Fatal(err)
		}
		if out != "No tasks found.\n" {
			t.Errorf("got %q", out)
		}
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{nope"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, _, err := runCLI(t, "ls", "broken.json"); err == nil {
			t.Error("expected error for malformed file")
		}
	})

	t.Run("conflicting filters", func(t *testing.T) {
		if _, _, err := runCLI(t, "ls", "-done", "-pending"); err == nil {
			t.Error("expected error for -done with -pending")
		}
	})

	t.Run("too many arguments", func(t *testing.T) {
		if _, _, err := runCLI(t, "ls", "a.json", "b.json"); err == nil {
			t.Error("expected error for extra arguments")
		}
	})
}

func TestDoctorCommand(t *testing.T) {
	dir := setupProject(t)
	logDir := filepath.Join(t.TempDir(), "logs")

	t.Run("missing todo file passes with warning", func(t *testing.T) {
		out, _, err := runCLI(t, "-log-dir", logDir, "doctor")
		if err != nil {
			t.Fatalf("doctor failed: %v\n%s", err, out)
		}
		if !strings.Contains(out, "Not found (created on the first change)") {
			t.Errorf("expected missing file warning:\n%s", out)
		}
		if !strings.Contains(out, "All checks passed") {
			t.Errorf("expected success summary:\n%s", out)
		}
	})

	t.Run("valid file with verbose output", func(t *testing.T) {
		writeTodos(t, filepath.Join(dir, "todos.json"), []todo.Task{{Title: "Buy milk"}})
		out, _, err := runCLI(t, "-log-dir", logDir, "doctor", "-v")
		if err != nil {
			t.Fatalf("doctor failed: %v\n%s", err, out)
		}
		for _, want := range []string{
			"✅ Valid",
			"Tasks: 1",
			"- [ ] Buy milk",
			`log_dir = "` + logDir + `" (flag)`,
			`log_level = "info" (default)`,
			"Schema: built-in",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("invalid file fails", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		if err := os.WriteFile(path, []byte(`[{"title": 1, "completed": false}]`), 0644); err != nil {
			t.Fatal(err)
		}
		out, _, err := runCLI(t, "-log-dir", logDir, "doctor", "bad.json")
		if err == nil || !strings.Contains(err.Error(), "doctor checks failed") {
			t.Fatalf("expected doctor failure, got %v", err)
		}
		if !strings.Contains(out, "Validation failed") || !strings.Contains(out, "[0].title") {
			t.Errorf("expected validation details:\n%s", out)
		}
	})

	t.Run("todo file fails when schema does not compile", func(t *testing.T) {
		writeTodos(t, filepath.Join(dir, "todos.json"), []todo.Task{{Title: "Buy milk"}})
		schemaPath := filepath.Join(dir, "broken.schema.json")
		if err := os.WriteFile(schemaPath, []byte(`{"type": 7}`), 0644); err != nil {
			t.Fatal(err)
		}
		out, _, err := runCLI(t, "-log-dir", logDir, "-schema", schemaPath, "doctor")
		if err == nil {
			t.Fatalf("expected failure for broken schema:\n%s", out)
		}
		if strings.Contains(out, "✅ Valid") {
			t.Errorf("todo file should not be reported valid:\n%s", out)
		}
		if !strings.Contains(out, "Cannot validate") {
			t.Errorf("expected validation to be refused:\n%s", out)
		}
	})

	t.Run("missing schema override fails", func(t *testing.T) {
		out, _, err := runCLI(t, "-log-dir", logDir, "-schema", "nope.json", "doctor")
		if err == nil {
			t.Fatalf("expected failure for missing schema:\n%s", out)
		}
		if !strings.Contains(out, "Schema file:") {
			t.Errorf("expected schema section:\n%s", out)
		}
	})

	t.Run("reports loaded config file and unknown log level", func(t *testing.T) {
		if err := os.WriteFile(filepath.Join(dir, config.ProjectConfigName), []byte("log_level = \"loud\"\n"), 0644); err != nil {
			t.Fatal(err)
		}
		defer os.Remove(filepath.Join(dir, config.ProjectConfigName))

		out, _, _ := runCLI(t, "-log-dir", logDir, "doctor")
		if !strings.Contains(out, "Loaded ") || !strings.Contains(out, config.ProjectConfigName) {
			t.Errorf("expected loaded config file:\n%s", out)
		}
		if !strings.Contains(out, `"loud" is unknown`) {
			t.Errorf("expected log level warning:\n%s", out)
		}
	})
}

func TestInitCommand(t *testing.T) {
	dir := setupProject(t)
	path := filepath.Join(dir, config.ProjectConfigName)

	out, _, err := runCLI(t, "init")
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if !strings.Contains(out, "Wrote") {
		t.Errorf("got %q", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if string(data) != config.ExampleConfig() {
		t.Error("written config should match the example")
	}

	if err := os.WriteFile(path, []byte("log_level = \"debug\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	out, _, err = runCLI(t, "init")
	if err != nil {
		t.Fatalf("init on existing file: %v", err)
	}
	if !strings.Contains(out, "already exists") {
		t.Errorf("got %q", out)
	}

	if _, _, err := runCLI(t, "init", "-force"); err != nil {
		t.Fatalf("init -force: %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != config.ExampleConfig() {
		t.Error("-force should overwrite the config")
	}

	if _, _, err := runCLI(t, "init", "extra"); err == nil {
		t.Error("expected error for extra arguments")
	}
}

func TestTailCommand(t *testing.T) {
	dir := setupProject(t)
	logBase := t.TempDir()

	out, _, err := runCLI(t, "-log-dir", logBase, "tail")
	if err != nil {
		t.Fatalf("tail with no logs: %v", err)
	}
	if !strings.Contains(out, "No log files found.") {
		t.Errorf("got %q", out)
	}

	logger, err := logging.Open(logging.Options{Dir: logBase, WorkDir: dir})
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("session started", "tasks", 2)
	if err := logger.Close(); err != nil {
		t.Fatal(err)
	}

	out, _, err = runCLI(t, "-log-dir", logBase, "tail", "-n", "5")
	if err != nil {
		t.Fatalf("tail: %v", err)
	}
	if !strings.Contains(out, "Tailing: "+logger.Path) {
		t.Errorf("expected tailing header, got %q", out)
	}
	if !strings.Contains(out, "session started") {
		t.Errorf("expected log content, got %q", out)
	}
}

func TestFormatTask(t *testing.T) {
	tests := []struct {
		task todo.Task
		want string
	}{
		{todo.Task{Title: "a"}, "[ ] a"},
		{todo.Task{Title: "b", Completed: true}, "[x] b"},
	}
	for _, tt := range tests {
		if got := formatTask(tt.task); got != tt.want {
			t.Errorf("formatTask(%+v) = %q, want %q", tt.task, got, tt.want)
		}
	}
}

func TestContains(t *testing.T) {
	tests := []struct {
		v    string
		want bool
	}{
		{"info", true},
		{" WARN ", true},
		{"Json", false},
		{"", false},
		{"verbose", false},
	}
	for _, tt := range tests {
		if got := contains(knownLogLevels, tt.v); got != tt.want {
			t.Errorf("contains(levels, %q) = %v, want %v", tt.v, got, tt.want)
		}
	}
}
