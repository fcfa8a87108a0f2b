package macro

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/dshills/modal/internal/key"
)

// Player errors.
var (
	ErrEmptyRegister  = errors.New("empty macro register")
	ErrSelfReference  = errors.New("macro is still recording")
	ErrNothingPlayed  = errors.New("no macro has been played")
	ErrPlaybackFailed = errors.New("macro playback failed")
)

// Handler consumes one replayed event. Returning an error aborts the
// remaining repetitions; edits already applied stay applied.
type Handler func(event key.Event) error

// Player replays recorded macros synchronously. Playback runs to
// completion or first failure within the triggering call; it never
// yields between events.
type Player struct {
	recorder *Recorder

	// depth counts nested playback for the self-reference guard.
	// Nesting distinct finished macros has no limit.
	depth int
}

// NewPlayer creates a player backed by the given recorder.
func NewPlayer(recorder *Recorder) *Player {
	return &Player{recorder: recorder}
}

// Play replays the macro in register count times through handler.
// Playing the register currently being recorded is rejected to prevent
// unbounded self-recursion. A failure partway aborts the remaining
// repetitions without rolling back completed ones.
func (p *Player) Play(register rune, count int, handler Handler) error {
	if !IsValidRegister(register) {
		return fmt.Errorf("%w: %c", ErrInvalidRegister, register)
	}
	if p.recorder.IsRecording() && p.recorder.RecordingRegister() == unicode.ToLower(register) {
		return fmt.Errorf("%w: %c", ErrSelfReference, register)
	}

	events := p.recorder.Get(register)
	if len(events) == 0 {
		return fmt.Errorf("%w: %c", ErrEmptyRegister, register)
	}
	if count < 1 {
		count = 1
	}

	p.depth++
	defer func() { p.depth-- }()

	for i := 0; i < count; i++ {
		for _, event := range events {
			if err := handler(event); err != nil {
				return fmt.Errorf("%w: repetition %d: %v", ErrPlaybackFailed, i+1, err)
			}
		}
	}

	p.recorder.SetLastPlayed(unicode.ToLower(register))
	return nil
}

// PlayLast replays the most recently played macro (@@).
func (p *Player) PlayLast(count int, handler Handler) error {
	register := p.recorder.LastPlayed()
	if register == 0 {
		return ErrNothingPlayed
	}
	return p.Play(register, count, handler)
}

// Depth returns the current playback nesting depth.
func (p *Player) Depth() int {
	return p.depth
}
