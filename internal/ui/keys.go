package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/tudu/internal/session"
)

// keyMap holds the bindings shown in the help pane. The session decides what
// a key does; these bindings only describe it.
type keyMap struct {
	New    key.Binding
	Edit   key.Binding
	Toggle key.Binding
	Up     key.Binding
	Down   key.Binding
	Delete key.Binding
	Quit   key.Binding

	Submit key.Binding
	Save   key.Binding
	Cancel key.Binding
	Erase  key.Binding

	Interrupt key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		New: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "new task"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "edit"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Delete: key.NewBinding(
			key.WithKeys("delete", "backspace"),
			key.WithHelp("del", "delete"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "add"),
		),
		Save: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Erase: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("backspace", "erase"),
		),
		Interrupt: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// modeHelp implements help.KeyMap for the bindings live in one mode.
type modeHelp []key.Binding

func (h modeHelp) ShortHelp() []key.Binding  { return h }
func (h modeHelp) FullHelp() [][]key.Binding { return [][]key.Binding{h} }

// helpFor returns the bindings for mode. Bindings that need a selection are
// disabled, and so hidden, when the list is empty.
func (k keyMap) helpFor(mode session.Mode, hasTasks bool) modeHelp {
	switch mode.(type) {
	case session.Creating:
		return modeHelp{k.Submit, k.Cancel, k.Erase}
	case session.Editing:
		return modeHelp{k.Save, k.Cancel, k.Erase}
	}

	edit, toggle, del := k.Edit, k.Toggle, k.Delete
	edit.SetEnabled(hasTasks)
	toggle.SetEnabled(hasTasks)
	del.SetEnabled(hasTasks)
	return modeHelp{k.New, edit, toggle, k.Down, k.Up, del, k.Quit}
}

// translateKey converts a terminal key event into the session's key events.
// Pasted text arrives as one message with many runes. Alt-modified keys have
// no binding in any mode and are dropped.
func translateKey(msg tea.KeyMsg) []session.Key {
	if msg.Alt {
		return nil
	}
	switch msg.Type {
	case tea.KeyRunes:
		keys := make([]session.Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			keys = append(keys, session.Rune(r))
		}
		return keys
	case tea.KeySpace:
		return []session.Key{session.Rune(' ')}
	case tea.KeyEnter:
		return []session.Key{{Type: session.KeyEnter}}
	case tea.KeyBackspace:
		return []session.Key{{Type: session.KeyBackspace}}
	case tea.KeyDelete:
		return []session.Key{{Type: session.KeyDelete}}
	case tea.KeyEsc:
		return []session.Key{{Type: session.KeyEsc}}
	case tea.KeyUp:
		return []session.Key{{Type: session.KeyUp}}
	case tea.KeyDown:
		return []session.Key{{Type: session.KeyDown}}
	default:
		return []session.Key{{Type: session.KeyOther}}
	}
}
