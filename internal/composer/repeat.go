package composer

import (
	"strconv"

	"github.com/dshills/modal/internal/key"
)

// repeatLastChange replays the last buffer-changing command. A nonzero
// count replaces the count the original command was typed with.
func (c *Composer) repeatLastChange(count int) Outcome {
	c.discardChange()
	if len(c.lastChange) == 0 {
		return Outcome{Kind: OutcomeCancelled, Mode: c.mode}
	}

	events := c.lastChange
	if count > 0 {
		events = withCount(events, count)
	}

	// Repeat is not itself recorded as a change; the replayed events
	// re-resolve against the current buffer like macro playback does.
	c.dotReplay = true
	defer func() { c.dotReplay = false }()

	out := Outcome{Kind: OutcomeDispatched, Mode: c.mode}
	for _, ev := range events {
		out = c.feed(ev)
		if out.Err != nil {
			break
		}
	}
	return out
}

// withCount substitutes a new leading count into a recorded command
// sequence. The original count, if any, is the leading run of digits
// starting with 1-9.
func withCount(events []key.Event, count int) []key.Event {
	i := 0
	if len(events) > 0 && events[0].IsRune() && events[0].Rune >= '1' && events[0].Rune <= '9' {
		i = 1
		for i < len(events) && events[i].IsRune() && events[i].Rune >= '0' && events[i].Rune <= '9' {
			i++
		}
	}

	digits := strconv.Itoa(count)
	out := make([]key.Event, 0, len(digits)+len(events)-i)
	for _, d := range digits {
		out = append(out, key.RuneEvent(d))
	}
	return append(out, events[i:]...)
}
