package session

import "unicode"

// KeyType identifies the kind of key event delivered to a Session.
type KeyType int

const (
	KeyOther KeyType = iota
	KeyRune
	KeyEnter
	KeyBackspace
	KeyDelete
	KeyEsc
	KeyUp
	KeyDown
)

// Key is a single key press. Rune is set only for KeyRune.
type Key struct {
	Type KeyType
	Rune rune
}

// Rune returns the key event for a character key.
func Rune(r rune) Key {
	return Key{Type: KeyRune, Rune: r}
}

// Printable reports whether k is a character that text entry accepts.
func (k Key) Printable() bool {
	return k.Type == KeyRune && unicode.IsPrint(k.Rune)
}

func (t KeyType) String() string {
	switch t {
	case KeyRune:
		return "rune"
	case KeyEnter:
		return "enter"
	case KeyBackspace:
		return "backspace"
	case KeyDelete:
		return "delete"
	case KeyEsc:
		return "esc"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	default:
		return "other"
	}
}
