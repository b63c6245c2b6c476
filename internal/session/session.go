// Package session implements the interaction state machine of the task
// list editor.
//
// A Session owns the in-memory task list, the selection cursor, and the
// current Mode. Handle applies one key event as at most one transition and,
// for transitions that change the list, saves the whole list synchronously
// before returning. A failed save is returned to the caller; the in-memory
// change is kept, so the list may be ahead of the file until the next
// successful save.
package session

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tudu/internal/todo"
)

// Saver persists the full task list.
type Saver interface {
	Save(tasks []todo.Task) error
}

// Result tells the run loop whether to keep reading keys.
type Result int

const (
	Continue Result = iota
	Quit
)

// Session holds the live editor state. It is not safe for concurrent use;
// the run loop that owns it is its only caller.
type Session struct {
	tasks    []todo.Task
	mode     Mode
	selected int
	hasSel   bool
	saver    Saver
	logger   *log.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used to record persisted transitions.
func WithLogger(logger *log.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New returns a session in Normal mode over a copy of tasks. The first task
// is selected when the list is non-empty.
func New(tasks []todo.Task, saver Saver, opts ...Option) *Session {
	s := &Session{
		tasks:  append([]todo.Task(nil), tasks...),
		mode:   Normal{},
		saver:  saver,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	if len(s.tasks) > 0 {
		s.selected, s.hasSel = 0, true
	}
	return s
}

// Tasks returns a copy of the task list in display order.
func (s *Session) Tasks() []todo.Task {
	return append([]todo.Task(nil), s.tasks...)
}

// Len returns the number of tasks.
func (s *Session) Len() int {
	return len(s.tasks)
}

// Mode returns the active mode.
func (s *Session) Mode() Mode {
	return s.mode
}

// Selected returns the selected index and whether there is a selection.
func (s *Session) Selected() (int, bool) {
	return s.selected, s.hasSel
}

// Handle applies k to the session. The returned error comes from the Saver
// and means the transition was applied in memory but not written.
func (s *Session) Handle(k Key) (Result, error) {
	switch m := s.mode.(type) {
	case Normal:
		return s.handleNormal(k)
	case Creating:
		return Continue, s.handleCreating(m, k)
	case Editing:
		return Continue, s.handleEditing(m, k)
	}
	return Continue, nil
}

func (s *Session) handleNormal(k Key) (Result, error) {
	switch k.Type {
	case KeyRune:
		switch k.Rune {
		case 'q':
			return Quit, nil
		case 'e':
			s.mode = Creating{}
		case 'j':
			s.moveDown()
		case 'k':
			s.moveUp()
		case ' ':
			return Continue, s.toggleSelected()
		}
	case KeyDown:
		s.moveDown()
	case KeyUp:
		s.moveUp()
	case KeyEnter:
		s.beginEdit()
	case KeyDelete, KeyBackspace:
		return Continue, s.deleteSelected()
	}
	return Continue, nil
}

func (s *Session) handleCreating(m Creating, k Key) error {
	switch {
	case k.Printable():
		m.Buffer += string(k.Rune)
		s.mode = m
	case k.Type == KeyBackspace:
		m.Buffer = dropLastRune(m.Buffer)
		s.mode = m
	case k.Type == KeyEsc:
		s.mode = Normal{}
	case k.Type == KeyEnter:
		s.mode = Normal{}
		if m.Buffer == "" {
			return nil
		}
		s.tasks = append(s.tasks, todo.Task{Title: m.Buffer})
		if !s.hasSel {
			s.selected, s.hasSel = 0, true
		}
		return s.persist("add", len(s.tasks)-1)
	}
	return nil
}

func (s *Session) handleEditing(m Editing, k Key) error {
	switch {
	case k.Printable():
		m.Buffer += string(k.Rune)
		s.mode = m
	case k.Type == KeyBackspace:
		m.Buffer = dropLastRune(m.Buffer)
		s.mode = m
	case k.Type == KeyEsc:
		s.mode = Normal{}
	case k.Type == KeyEnter:
		s.mode = Normal{}
		if m.Buffer == "" || !s.inRange(m.Index) {
			return nil
		}
		s.tasks[m.Index].Title = m.Buffer
		return s.persist("rename", m.Index)
	}
	return nil
}

func (s *Session) moveDown() {
	if len(s.tasks) == 0 {
		return
	}
	last := len(s.tasks) - 1
	switch {
	case !s.hasSel:
		s.selected, s.hasSel = 0, true
	case s.selected < last:
		s.selected++
	case s.selected > last:
		s.selected = last
	}
}

func (s *Session) moveUp() {
	if s.hasSel && s.selected > 0 {
		s.selected--
	}
}

func (s *Session) beginEdit() {
	idx, ok := s.validSelection()
	if !ok {
		return
	}
	s.mode = Editing{Buffer: s.tasks[idx].Title, Index: idx}
}

func (s *Session) toggleSelected() error {
	idx, ok := s.validSelection()
	if !ok {
		return nil
	}
	s.tasks[idx].Toggle()
	return s.persist("toggle", idx)
}

func (s *Session) deleteSelected() error {
	idx, ok := s.validSelection()
	if !ok {
		return nil
	}
	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	switch {
	case len(s.tasks) == 0:
		s.selected, s.hasSel = 0, false
	case idx >= len(s.tasks):
		s.selected = len(s.tasks) - 1
	}
	return s.persist("delete", idx)
}

// validSelection rechecks the selection against the current list length.
func (s *Session) validSelection() (int, bool) {
	if !s.hasSel || !s.inRange(s.selected) {
		return 0, false
	}
	return s.selected, true
}

func (s *Session) inRange(idx int) bool {
	return idx >= 0 && idx < len(s.tasks)
}

func (s *Session) persist(action string, idx int) error {
	if err := s.saver.Save(s.tasks); err != nil {
		s.logger.Error("save failed", "action", action, "index", idx, "err", err)
		return fmt.Errorf("%s task: %w", action, err)
	}
	s.logger.Debug("saved", "action", action, "index", idx, "tasks", len(s.tasks))
	return nil
}

func dropLastRune(s string) string {
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}
