package key

import (
	"errors"
	"fmt"
	"strings"
)

// Parse errors.
var (
	ErrEmptySpec        = errors.New("empty key specification")
	ErrInvalidSpec      = errors.New("invalid key specification")
	ErrUnmatchedBracket = errors.New("unmatched bracket in key specification")
)

// specialNames maps Vim-notation key names (lowercased) to keys.
var specialNames = map[string]Key{
	"esc":       KeyEscape,
	"escape":    KeyEscape,
	"cr":        KeyEnter,
	"enter":     KeyEnter,
	"return":    KeyEnter,
	"tab":       KeyTab,
	"bs":        KeyBackspace,
	"backspace": KeyBackspace,
	"del":       KeyDelete,
	"delete":    KeyDelete,
	"space":     KeySpace,
	"home":      KeyHome,
	"end":       KeyEnd,
	"pageup":    KeyPageUp,
	"pagedown":  KeyPageDown,
	"up":        KeyUp,
	"down":      KeyDown,
	"left":      KeyLeft,
	"right":     KeyRight,
	"lt":        KeyRune, // special-cased below, carries '<'
}

// Parse converts a single key specification into an Event.
// Plain characters parse as themselves; bracketed forms use Vim
// notation: "<Esc>", "<C-x>", "<C-S-Left>", "<Space>", "<lt>".
func Parse(spec string) (Event, error) {
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	// Plain single character
	runes := []rune(spec)
	if len(runes) == 1 && runes[0] != '<' {
		return RuneEvent(runes[0]), nil
	}

	if runes[0] != '<' {
		return Event{}, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
	}
	if runes[len(runes)-1] != '>' {
		return Event{}, fmt.Errorf("%w: %q", ErrUnmatchedBracket, spec)
	}

	inner := string(runes[1 : len(runes)-1])
	if inner == "" {
		return Event{}, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
	}

	parts := strings.Split(inner, "-")
	var mods Modifier
	for len(parts) > 1 {
		switch strings.ToLower(parts[0]) {
		case "c":
			mods = mods.With(ModCtrl)
		case "a", "m":
			mods = mods.With(ModAlt)
		case "s":
			mods = mods.With(ModShift)
		default:
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, parts[0])
		}
		parts = parts[1:]
	}

	keyPart := parts[0]
	if k, ok := specialNames[strings.ToLower(keyPart)]; ok {
		if strings.EqualFold(keyPart, "lt") {
			return Event{Key: KeyRune, Rune: '<', Modifiers: mods}, nil
		}
		return Event{Key: k, Modifiers: mods}, nil
	}

	keyRunes := []rune(keyPart)
	if len(keyRunes) == 1 {
		return Event{Key: KeyRune, Rune: keyRunes[0], Modifiers: mods}, nil
	}

	return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
}

// ParseSequence converts a string of key specifications into events.
// Bracketed forms are detected inline: "d2w<Esc>" yields five events.
func ParseSequence(s string) ([]Event, error) {
	var events []Event
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '<' {
			events = append(events, RuneEvent(runes[i]))
			continue
		}
		end := -1
		for j := i + 1; j < len(runes); j++ {
			if runes[j] == '>' {
				end = j
				break
			}
		}
		if end < 0 {
			return nil, fmt.Errorf("%w: %q", ErrUnmatchedBracket, s)
		}
		ev, err := Parse(string(runes[i : end+1]))
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
		i = end
	}
	return events, nil
}

// FormatSequence renders events back into a parseable string.
func FormatSequence(events []Event) string {
	var b strings.Builder
	for _, ev := range events {
		b.WriteString(ev.String())
	}
	return b.String()
}
