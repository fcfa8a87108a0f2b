package key

import "strings"

// Event represents a single key press.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// RuneEvent creates an event for an unmodified character key.
func RuneEvent(r rune) Event {
	return Event{Key: KeyRune, Rune: r}
}

// SpecialEvent creates an event for a special key.
func SpecialEvent(k Key) Event {
	return Event{Key: k}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsModified returns true if Ctrl or Alt is held. Shift alone is not
// considered a modifier for character events since it changes the
// character itself.
func (e Event) IsModified() bool {
	if e.IsRune() {
		return e.Modifiers&(ModCtrl|ModAlt) != 0
	}
	return e.Modifiers != ModNone
}

// IsEscape returns true if this is the Escape key with no modifiers.
func (e Event) IsEscape() bool {
	return e.Key == KeyEscape && e.Modifiers == ModNone
}

// IsEnter returns true if this is the Enter key with no modifiers.
func (e Event) IsEnter() bool {
	return e.Key == KeyEnter && e.Modifiers == ModNone
}

// IsBackspace returns true if this is Backspace with no modifiers.
func (e Event) IsBackspace() bool {
	return e.Key == KeyBackspace && e.Modifiers == ModNone
}

// Equals returns true if two events represent the same key press.
func (e Event) Equals(other Event) bool {
	return e.Key == other.Key &&
		e.Rune == other.Rune &&
		e.Modifiers == other.Modifiers
}

// String returns the Vim-notation form of the event.
// Examples: "a", "<Space>", "<Esc>", "<C-v>", "<C-S-Left>".
func (e Event) String() string {
	if e.IsRune() && !e.IsModified() {
		if e.Rune == '<' {
			return "<lt>"
		}
		if e.Rune == ' ' {
			return "<Space>"
		}
		return string(e.Rune)
	}

	var parts []string
	if e.Modifiers.HasCtrl() {
		parts = append(parts, "C")
	}
	if e.Modifiers.HasAlt() {
		parts = append(parts, "A")
	}
	if e.Modifiers.HasShift() && !e.IsRune() {
		parts = append(parts, "S")
	}

	var name string
	switch e.Key {
	case KeyRune:
		name = string(e.Rune)
	case KeyEscape:
		name = "Esc"
	case KeyEnter:
		name = "CR"
	case KeyTab:
		name = "Tab"
	case KeyBackspace:
		name = "BS"
	case KeyDelete:
		name = "Del"
	case KeySpace:
		name = "Space"
	case KeyHome:
		name = "Home"
	case KeyEnd:
		name = "End"
	case KeyPageUp:
		name = "PageUp"
	case KeyPageDown:
		name = "PageDown"
	case KeyUp:
		name = "Up"
	case KeyDown:
		name = "Down"
	case KeyLeft:
		name = "Left"
	case KeyRight:
		name = "Right"
	default:
		name = e.Key.String()
	}
	parts = append(parts, name)

	return "<" + strings.Join(parts, "-") + ">"
}
