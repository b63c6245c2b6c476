// Package todo loads, validates, and saves the task list file.
package todo

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// DefaultFile is the task file name used when none is configured.
const DefaultFile = "todos.json"

// Task represents a single entry in the task list.
type Task struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Toggle flips the completed flag.
func (t *Task) Toggle() {
	t.Completed = !t.Completed
}

// Store persists the task list to a single JSON file.
type Store struct {
	path      string
	schema    *jsonschema.Schema
	logger    *log.Logger
	recovered error
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithSchema validates loaded files against schema instead of the built-in one.
func WithSchema(schema *jsonschema.Schema) StoreOption {
	return func(s *Store) {
		s.schema = schema
	}
}

// WithLogger sets the logger used for recovery warnings.
func WithLogger(logger *log.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore returns a store backed by the file at path.
func NewStore(path string, opts ...StoreOption) *Store {
	s := &Store{
		path:   path,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.schema == nil {
		s.schema = builtinSchema()
	}
	return s
}

// Path returns the file the store reads and writes.
func (s *Store) Path() string {
	return s.path
}

// LoadStrict reads and validates the task file.
// A missing file is reported as an error wrapping fs.ErrNotExist.
func (s *Store) LoadStrict() ([]Task, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read todo file: %w", err)
	}
	return Decode(data, s.schema)
}

// Load reads the task file, substituting an empty list when the file is
// missing or cannot be parsed. The swallowed parse error, if any, is
// available from Recovered until the next Load.
func (s *Store) Load() []Task {
	s.recovered = nil
	tasks, err := s.LoadStrict()
	if err == nil {
		return tasks
	}
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("todo file not found, starting empty", "path", s.path)
		return []Task{}
	}
	s.recovered = err
	s.logger.Warn("todo file unreadable, starting empty", "path", s.path, "err", err)
	return []Task{}
}

// Recovered returns the error that the last Load replaced with an empty list.
func (s *Store) Recovered() error {
	return s.recovered
}

// Save writes the full list to the task file, replacing it atomically.
func (s *Store) Save(tasks []Task) error {
	data, err := Encode(tasks)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write todo file: %w", err)
	}
	return nil
}

// Encode renders tasks in the on-disk format.
func Encode(tasks []Task) ([]byte, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal todo file: %w", err)
	}

	// Add trailing newline
	data = append(data, '\n')
	return data, nil
}

// Decode parses and validates task file contents. A nil schema selects the
// minimal structural checks.
func Decode(data []byte, schema *jsonschema.Schema) ([]Task, error) {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse todo file: %w", err)
	}

	result := validateValue(raw, schema)
	if !result.Valid {
		return nil, fmt.Errorf("invalid todo file: %w", errors.Join(result.Errors...))
	}

	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("parse todo file: %w", err)
	}
	if tasks == nil {
		tasks = []Task{}
	}
	return tasks, nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	cleanup := func(err error) error {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(err)
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
