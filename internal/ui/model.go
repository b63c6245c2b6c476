package ui

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nibzard/tudu/internal/session"
)

// Layout used before the first WindowSizeMsg arrives.
const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Fixed pane heights, borders included.
const (
	helpPaneHeight  = 3
	inputPaneHeight = 3
)

type model struct {
	session *session.Session
	path    string
	logger  *log.Logger

	keys   keyMap
	help   help.Model
	styles styles

	width  int
	height int
	offset int

	notice   string
	err      error
	quitting bool
}

func newModel(sess *session.Session, path string, recovered error, logger *log.Logger) *model {
	m := &model{
		session: sess,
		path:    path,
		logger:  logger,
		keys:    defaultKeyMap(),
		help:    help.New(),
		styles:  defaultStyles(),
		width:   defaultWidth,
		height:  defaultHeight,
	}
	if recovered != nil {
		m.notice = fmt.Sprintf("%s could not be read; starting with an empty list", filepath.Base(path))
	}
	m.help.Width = m.width - 2
	return m
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = m.width - 2
		m.syncOffset()
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		// Mouse input is captured but has no bindings.
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Interrupt) {
		m.logger.Debug("interrupt")
		return m.quit()
	}
	// Pasted text is only meaningful as input; in Normal mode every rune
	// would run as a command.
	if _, normal := m.session.Mode().(session.Normal); msg.Paste && normal {
		return m, nil
	}

	m.notice = ""
	for _, k := range translateKey(msg) {
		res, err := m.session.Handle(k)
		if err != nil {
			m.err = err
			m.notice = "Error: " + err.Error()
			m.syncOffset()
			return m.quit()
		}
		if res == session.Quit {
			return m.quit()
		}
	}
	m.syncOffset()
	return m, nil
}

func (m *model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

// Err returns the save error that ended the program, if any.
func (m *model) Err() error {
	return m.err
}

// listRows is the number of task rows the list pane can show.
func (m *model) listRows() int {
	rows := m.height - helpPaneHeight - inputPaneHeight - 2
	if m.notice != "" {
		rows--
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

// syncOffset scrolls the list so the selected row stays visible.
func (m *model) syncOffset() {
	rows := m.listRows()
	n := m.session.Len()
	sel, ok := m.session.Selected()
	if !ok {
		m.offset = 0
		return
	}
	if sel < m.offset {
		m.offset = sel
	}
	if sel >= m.offset+rows {
		m.offset = sel - rows + 1
	}
	if maxOffset := n - rows; m.offset > maxOffset {
		m.offset = maxOffset
	}
	if m.offset < 0 {
		m.offset = 0
	}
}
