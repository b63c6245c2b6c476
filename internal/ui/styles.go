package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorYellow = lipgloss.Color("3")
	colorGreen  = lipgloss.Color("2")
	colorRed    = lipgloss.Color("1")
	colorFaint  = lipgloss.Color("8")
)

type styles struct {
	Title    lipgloss.Style
	Selected lipgloss.Style
	Done     lipgloss.Style
	Empty    lipgloss.Style
	Notice   lipgloss.Style
	Cursor   lipgloss.Style
	Creating lipgloss.Style
	Editing  lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Title:    lipgloss.NewStyle().Bold(true),
		Selected: lipgloss.NewStyle().Foreground(colorYellow).Bold(true),
		Done:     lipgloss.NewStyle().Foreground(colorGreen),
		Empty:    lipgloss.NewStyle().Foreground(colorFaint).Italic(true),
		Notice:   lipgloss.NewStyle().Foreground(colorRed),
		Cursor:   lipgloss.NewStyle().Reverse(true),
		Creating: lipgloss.NewStyle().Foreground(colorYellow),
		Editing:  lipgloss.NewStyle().Foreground(colorGreen),
	}
}

// pane draws body inside a rounded border of the given outer size with the
// title set into the top edge. A zero color keeps the terminal default.
func (s styles) pane(title, body string, width, height int, color lipgloss.TerminalColor) string {
	border := lipgloss.RoundedBorder()
	if width < 4 {
		width = 4
	}
	if height < 3 {
		height = 3
	}

	edge := lipgloss.NewStyle()
	if color != nil {
		edge = edge.Foreground(color)
	}

	label := " " + title + " "
	fill := width - 2 - lipgloss.Width(label) - 1
	if fill < 0 {
		label, fill = "", width-3
	}
	top := edge.Render(border.TopLeft+border.Top) +
		s.Title.Render(label) +
		edge.Render(strings.Repeat(border.Top, fill)+border.TopRight)

	box := lipgloss.NewStyle().
		Border(border, false, true, true, true).
		Width(width - 2).
		Height(height - 2).
		MaxHeight(height - 1)
	if color != nil {
		box = box.BorderForeground(color)
	}

	return lipgloss.JoinVertical(lipgloss.Left, top, box.Render(body))
}
