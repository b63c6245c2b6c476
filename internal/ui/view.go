package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/nibzard/tudu/internal/session"
)

const (
	glyphDone    = "▣ "
	glyphPending = "□ "
	ellipsis     = "…"
)

// View draws the three panes. A clean quit clears the screen; a quit caused
// by a failed save keeps the last state and the error on screen.
func (m *model) View() string {
	if m.quitting && m.err == nil {
		return ""
	}

	mode := m.session.Mode()
	sections := []string{
		m.helpView(mode),
		m.listView(),
	}
	if m.notice != "" {
		sections = append(sections, m.styles.Notice.Render(runewidth.Truncate(m.notice, m.width, ellipsis)))
	}
	sections = append(sections, m.inputView(mode))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *model) helpView(mode session.Mode) string {
	body := m.help.View(m.keys.helpFor(mode, m.session.Len() > 0))
	return m.styles.pane("Help", body, m.width, helpPaneHeight, nil)
}

func (m *model) listView() string {
	rows := m.listRows()
	inner := m.width - 2
	tasks := m.session.Tasks()
	sel, hasSel := m.session.Selected()

	var b strings.Builder
	if len(tasks) == 0 {
		b.WriteString(m.styles.Empty.Render(runewidth.Truncate("No tasks. Press e to add one.", inner, ellipsis)))
	}

	end := m.offset + rows
	if end > len(tasks) {
		end = len(tasks)
	}
	for i := m.offset; i < end; i++ {
		if i > m.offset {
			b.WriteByte('\n')
		}
		b.WriteString(m.renderTask(tasks[i].Title, tasks[i].Completed, hasSel && i == sel, inner))
	}

	return m.styles.pane("To-Do List", b.String(), m.width, rows+2, nil)
}

func (m *model) renderTask(title string, done, selected bool, width int) string {
	glyph := glyphPending
	if done {
		glyph = glyphDone
	}
	avail := width - runewidth.StringWidth(glyph)
	if avail < 1 {
		avail = 1
	}
	line := glyph + runewidth.Truncate(title, avail, ellipsis)

	switch {
	case selected:
		return m.styles.Selected.Render(line)
	case done:
		return m.styles.Done.Render(line)
	default:
		return line
	}
}

func (m *model) inputView(mode session.Mode) string {
	var color lipgloss.TerminalColor
	var style lipgloss.Style
	switch mode.(type) {
	case session.Creating:
		color, style = colorYellow, m.styles.Creating
	case session.Editing:
		color, style = colorGreen, m.styles.Editing
	default:
		return m.styles.pane("Input", "", m.width, inputPaneHeight, nil)
	}

	buf := fitTail(session.Buffer(mode), m.width-3)
	text := style.Render(buf) + m.styles.Cursor.Render(" ")
	return m.styles.pane("Input", text, m.width, inputPaneHeight, color)
}

// fitTail keeps the end of s within width cells, marking the cut with an
// ellipsis, so the cursor end of a long buffer stays visible.
func fitTail(s string, width int) string {
	if width < 1 {
		return ""
	}
	w := runewidth.StringWidth(s)
	if w <= width {
		return s
	}
	return runewidth.TruncateLeft(s, w-width+runewidth.StringWidth(ellipsis), ellipsis)
}
