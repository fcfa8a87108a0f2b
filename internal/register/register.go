package register

import (
	"sync"
	"unicode"

	"github.com/dshills/modal/internal/text"
)

// Type categorizes registers by their behavior.
type Type uint8

const (
	// TypeNamed is a named register (a-z, addressed A-Z for append).
	TypeNamed Type = iota

	// TypeNumbered is a delete-history register (1-9).
	TypeNumbered

	// TypeLastYank is register 0, holding the most recent yank.
	TypeLastYank

	// TypeUnnamed is the default register (").
	TypeUnnamed

	// TypeSmallDelete is the small-delete register (-).
	TypeSmallDelete

	// TypeBlackHole is the black hole register (_).
	TypeBlackHole

	// TypeLastInserted is the last inserted text register (.).
	TypeLastInserted

	// TypeCommand is the last command-line register (:).
	TypeCommand

	// TypeClipboard is a system clipboard register (+ or *).
	TypeClipboard
)

// historyDepth is the number of numbered delete-history registers.
const historyDepth = 9

// Entry is the content of one register.
type Entry struct {
	// Content holds the register text.
	Content string

	// Shape tags how Content pastes (charwise, linewise, blockwise).
	Shape text.Shape
}

// ClipboardProvider abstracts system clipboard access for the + and *
// registers. Hosts may leave it unset, in which case those registers
// behave as ordinary internal slots.
type ClipboardProvider interface {
	// Get returns the current clipboard content.
	Get() (string, error)

	// Set sets the clipboard content.
	Set(content string) error
}

// Store manages all registers.
type Store struct {
	mu        sync.RWMutex
	slots     map[rune]*Entry
	history   [historyDepth]*Entry
	clipboard ClipboardProvider
}

// NewStore creates a register store with all registers empty.
func NewStore() *Store {
	s := &Store{slots: make(map[rune]*Entry)}

	s.slots['"'] = &Entry{}
	for r := 'a'; r <= 'z'; r++ {
		s.slots[r] = &Entry{}
	}
	for i := 0; i <= 9; i++ {
		s.slots[rune('0'+i)] = &Entry{}
	}
	for i := 1; i <= historyDepth; i++ {
		s.history[i-1] = s.slots[rune('0'+i)]
	}
	for _, r := range "-_.:+*" {
		s.slots[r] = &Entry{}
	}
	return s
}

// SetClipboard installs a system clipboard provider for + and *.
func (s *Store) SetClipboard(clipboard ClipboardProvider) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clipboard = clipboard
}

// Get returns the content of a register. Uppercase names read the
// corresponding lowercase register. Unknown registers read empty.
func (s *Store) Get(name rune) Entry {
	if unicode.IsUpper(name) {
		name = unicode.ToLower(name)
	}

	if name == '+' || name == '*' {
		s.mu.RLock()
		clip := s.clipboard
		s.mu.RUnlock()
		if clip != nil {
			content, err := clip.Get()
			if err != nil {
				return Entry{}
			}
			return Entry{Content: content, Shape: text.ShapeCharwise}
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.slots[name]
	if !ok {
		return Entry{}
	}
	return *e
}

// Set stores content in a register. Uppercase names append to the
// lowercase register instead of replacing it; appending to a linewise
// register joins with a newline. The black hole register discards
// everything.
func (s *Store) Set(name rune, e Entry) {
	if name == '_' {
		return
	}

	if name == '+' || name == '*' {
		s.mu.RLock()
		clip := s.clipboard
		s.mu.RUnlock()
		if clip != nil {
			_ = clip.Set(e.Content)
			return
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	appendMode := false
	if unicode.IsUpper(name) {
		name = unicode.ToLower(name)
		appendMode = true
	}

	slot, ok := s.slots[name]
	if !ok {
		return
	}

	if appendMode && TypeOf(name) == TypeNamed {
		// Linewise content always carries its trailing newline, so
		// plain concatenation keeps line boundaries intact.
		if slot.Content == "" {
			slot.Shape = e.Shape
		}
		slot.Content += e.Content
		return
	}

	*slot = e
}

// RecordYank stores a yank in register 0 and the unnamed register.
// Yanks never shift the numbered history.
func (s *Store) RecordYank(e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	*s.slots['0'] = e
	*s.slots['"'] = e
}

// RecordDelete stores a delete in the unnamed register and in the
// numbered history: register 1 receives the new entry after 1-8 shift
// to 2-9, with the oldest entry falling off. Small (less than one
// line, charwise) deletes go to the - register instead of shifting.
func (s *Store) RecordDelete(e Entry, small bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if small {
		*s.slots['-'] = e
		*s.slots['"'] = e
		return
	}

	for i := historyDepth - 1; i > 0; i-- {
		*s.history[i] = *s.history[i-1]
	}
	*s.history[0] = e
	*s.slots['"'] = e
}

// RecordInserted updates the last-inserted register (.).
func (s *Store) RecordInserted(content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	*s.slots['.'] = Entry{Content: content, Shape: text.ShapeCharwise}
}

// RecordCommand updates the last command-line register (:).
func (s *Store) RecordCommand(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	*s.slots[':'] = Entry{Content: line, Shape: text.ShapeCharwise}
}

// TypeOf returns the register type for a name.
func TypeOf(name rune) Type {
	switch {
	case name >= 'a' && name <= 'z', name >= 'A' && name <= 'Z':
		return TypeNamed
	case name == '0':
		return TypeLastYank
	case name >= '1' && name <= '9':
		return TypeNumbered
	case name == '-':
		return TypeSmallDelete
	case name == '_':
		return TypeBlackHole
	case name == '.':
		return TypeLastInserted
	case name == ':':
		return TypeCommand
	case name == '+', name == '*':
		return TypeClipboard
	default:
		return TypeUnnamed
	}
}

// IsValid returns true if name addresses a register.
func IsValid(name rune) bool {
	switch {
	case name == '"':
		return true
	case name >= 'a' && name <= 'z', name >= 'A' && name <= 'Z':
		return true
	case name >= '0' && name <= '9':
		return true
	case name == '-', name == '_', name == '.', name == ':':
		return true
	case name == '+', name == '*':
		return true
	default:
		return false
	}
}
