package macro

import (
	"errors"
	"fmt"
	"sync"
	"unicode"

	"github.com/dshills/modal/internal/key"
)

// Recorder errors.
var (
	ErrInvalidRegister  = errors.New("invalid macro register")
	ErrAlreadyRecording = errors.New("already recording")
	ErrNotRecording     = errors.New("not recording")
)

// IsValidRegister returns true if r can hold a macro: a-z, their
// uppercase append forms, and 0-9.
func IsValidRegister(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	default:
		return false
	}
}

// Recorder captures key sequences into register-addressed macro slots.
// It is process-wide shared state, guarded for concurrent contexts.
type Recorder struct {
	mu         sync.Mutex
	recording  bool
	register   rune
	appending  bool
	events     []key.Event
	registers  map[rune][]key.Event
	lastPlayed rune
}

// NewRecorder creates a recorder with empty registers.
func NewRecorder() *Recorder {
	return &Recorder{registers: make(map[rune][]key.Event)}
}

// StartRecording begins capturing into the given register. Uppercase
// names append to the existing macro when recording stops.
func (r *Recorder) StartRecording(register rune) error {
	if !IsValidRegister(register) {
		return fmt.Errorf("%w: %c", ErrInvalidRegister, register)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.recording {
		return fmt.Errorf("%w: register %c", ErrAlreadyRecording, r.register)
	}

	r.recording = true
	r.appending = unicode.IsUpper(register)
	r.register = unicode.ToLower(register)
	r.events = nil
	return nil
}

// StopRecording finalizes the capture into the register. Stopping when
// no recording is active is an invalid-state no-op reported as an
// error the caller may ignore.
func (r *Recorder) StopRecording() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.recording {
		return ErrNotRecording
	}

	r.recording = false
	saved := make([]key.Event, len(r.events))
	copy(saved, r.events)
	if r.appending {
		r.registers[r.register] = append(r.registers[r.register], saved...)
	} else {
		r.registers[r.register] = saved
	}
	r.events = nil
	return nil
}

// IsRecording returns true while a capture is active.
func (r *Recorder) IsRecording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

// RecordingRegister returns the register being recorded, or 0.
func (r *Recorder) RecordingRegister() rune {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.recording {
		return 0
	}
	return r.register
}

// Record appends an event to the active capture. No-op when idle.
func (r *Recorder) Record(event key.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.recording {
		r.events = append(r.events, event)
	}
}

// DropLast removes the most recently recorded event. The composer uses
// this to keep the q that stops a recording out of the macro body.
func (r *Recorder) DropLast() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.recording && len(r.events) > 0 {
		r.events = r.events[:len(r.events)-1]
	}
}

// Get returns a copy of the macro stored in a register.
func (r *Recorder) Get(register rune) []key.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	events := r.registers[unicode.ToLower(register)]
	out := make([]key.Event, len(events))
	copy(out, events)
	return out
}

// SetLastPlayed tracks the register for @@ replay.
func (r *Recorder) SetLastPlayed(register rune) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastPlayed = register
}

// LastPlayed returns the register of the most recent playback, or 0.
func (r *Recorder) LastPlayed() rune {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastPlayed
}
