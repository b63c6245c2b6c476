package session

// Mode is the active interaction state. Its concrete type determines which
// key bindings are live; text-entry modes carry their own buffer.
type Mode interface {
	// Name returns a short label for the mode.
	Name() string
	mode()
}

// Normal is the navigation mode.
type Normal struct{}

// Creating collects the title of a new task.
type Creating struct {
	Buffer string
}

// Editing collects a replacement title for the task at Index.
type Editing struct {
	Buffer string
	Index  int
}

func (Normal) Name() string   { return "normal" }
func (Creating) Name() string { return "creating" }
func (Editing) Name() string  { return "editing" }

func (Normal) mode()   {}
func (Creating) mode() {}
func (Editing) mode()  {}

// Buffer returns the text entry buffer of m, or "" in Normal mode.
func Buffer(m Mode) string {
	switch m := m.(type) {
	case Creating:
		return m.Buffer
	case Editing:
		return m.Buffer
	default:
		return ""
	}
}
