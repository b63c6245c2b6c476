// Package ui runs the interactive task list editor in the terminal.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/nibzard/tudu/internal/session"
	"github.com/nibzard/tudu/internal/todo"
)

// Option configures Run.
type Option func(*runConfig)

type runConfig struct {
	logger  *log.Logger
	program []tea.ProgramOption
}

// WithLogger sets the logger shared by the UI and the session.
func WithLogger(logger *log.Logger) Option {
	return func(c *runConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithProgramOptions appends bubbletea options, such as custom input and
// output, to the defaults.
func WithProgramOptions(opts ...tea.ProgramOption) Option {
	return func(c *runConfig) {
		c.program = append(c.program, opts...)
	}
}

// Run loads the list from store and edits it until the user quits. A save
// failure ends the program and is returned after the terminal is restored.
func Run(ctx context.Context, store *todo.Store, opts ...Option) error {
	c := &runConfig{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(c)
	}

	if len(c.program) == 0 && !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	tasks := store.Load()
	sess := session.New(tasks, store, session.WithLogger(c.logger))
	c.logger.Info("session started", "path", store.Path(), "tasks", len(tasks))

	m := newModel(sess, store.Path(), store.Recovered(), c.logger)
	err := runProgram(ctx, m, c.program...)
	if err != nil {
		c.logger.Error("session ended", "err", err)
		return err
	}
	c.logger.Info("session ended", "tasks", sess.Len())
	return nil
}

func runProgram(ctx context.Context, m *model, extra ...tea.ProgramOption) error {
	opts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	}
	opts = append(opts, extra...)

	program := tea.NewProgram(m, opts...)
	finalModel, err := program.Run()
	if err != nil {
		return err
	}
	if fm, ok := finalModel.(*model); ok {
		if err := fm.Err(); err != nil {
			return err
		}
	}
	return nil
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
