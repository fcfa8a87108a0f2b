package composer

import (
	"errors"

	"github.com/dshills/modal/internal/mode"
)

// ErrNoMatch marks a motion or text object that could not resolve.
// Macro playback aborts when it surfaces in an Outcome.
var ErrNoMatch = errors.New("no match")

// OutcomeKind classifies the result of feeding one key event.
type OutcomeKind uint8

const (
	// OutcomeConsumed means the key was absorbed and more input is
	// needed before anything visible happens.
	OutcomeConsumed OutcomeKind = iota

	// OutcomeDispatched means one or more requests were submitted to
	// the host, or the mode changed.
	OutcomeDispatched

	// OutcomeCancelled means the pending command was cleared without
	// dispatching, either by Escape or by a failed resolution.
	OutcomeCancelled
)

// String returns a string representation of the kind.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeConsumed:
		return "consumed"
	case OutcomeDispatched:
		return "dispatched"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Outcome reports what one key event produced.
type Outcome struct {
	// Kind classifies the result.
	Kind OutcomeKind

	// Mode is the mode after processing the event.
	Mode mode.Mode

	// Pending shows the keys accumulated so far, for a status line.
	Pending string

	// Message is user-facing feedback (substitution counts, errors).
	Message string

	// Actions name host operations the command requested (write,
	// quit). The host decides what they mean.
	Actions []string

	// Err carries the failure behind a cancelled outcome: ErrNoMatch,
	// a wrapped host.ErrRejected, or an ex command error.
	Err error
}

func consumed(m mode.Mode, pending string) Outcome {
	return Outcome{Kind: OutcomeConsumed, Mode: m, Pending: pending}
}

func dispatched(m mode.Mode) Outcome {
	return Outcome{Kind: OutcomeDispatched, Mode: m}
}

func cancelled(m mode.Mode, err error) Outcome {
	return Outcome{Kind: OutcomeCancelled, Mode: m, Err: err}
}
