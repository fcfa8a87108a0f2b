package composer

import (
	"sync"

	"github.com/dshills/modal/internal/key"
	"github.com/dshills/modal/internal/mode"
)

// maxExpandDepth bounds recursive mapping expansion.
const maxExpandDepth = 16

// ExpandStatus reports how the mapping table handled an event.
type ExpandStatus uint8

const (
	// ExpandNone means the event is not part of any mapping and should
	// be interpreted directly.
	ExpandNone ExpandStatus = iota

	// ExpandPending means the event may begin a longer mapping; it is
	// held until the sequence resolves.
	ExpandPending

	// ExpandMatched means a mapping fired; its right-hand side is
	// returned for replay.
	ExpandMatched

	// ExpandFlush means held events turned out not to form a mapping
	// and are returned for literal interpretation.
	ExpandFlush
)

// mapping is one configured key mapping.
type mapping struct {
	lhs []key.Event
	rhs []key.Event
}

// Keymap holds user key mappings per mode and the disambiguation
// buffer for multi-key left-hand sides. A mapping whose left-hand side
// exactly matches fires immediately even when a longer mapping shares
// the prefix.
type Keymap struct {
	mu       sync.Mutex
	mappings map[mode.Mode][]mapping
	held     []key.Event
	heldMode mode.Mode
}

// NewKeymap creates an empty mapping table.
func NewKeymap() *Keymap {
	return &Keymap{mappings: make(map[mode.Mode][]mapping)}
}

// Map installs a mapping; an existing mapping with the same left-hand
// side is replaced.
func (k *Keymap) Map(m mode.Mode, lhs, rhs []key.Event) {
	if len(lhs) == 0 {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()

	list := k.mappings[m]
	for i := range list {
		if eventsEqual(list[i].lhs, lhs) {
			list[i].rhs = rhs
			return
		}
	}
	k.mappings[m] = append(list, mapping{lhs: lhs, rhs: rhs})
}

// Unmap removes a mapping.
func (k *Keymap) Unmap(m mode.Mode, lhs []key.Event) {
	k.mu.Lock()
	defer k.mu.Unlock()

	list := k.mappings[m]
	for i := range list {
		if eventsEqual(list[i].lhs, lhs) {
			k.mappings[m] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

// Expand feeds one event through the mapping table. The returned
// events depend on the status: the mapping's right-hand side for
// ExpandMatched, the flushed literal events for ExpandFlush, nil
// otherwise.
func (k *Keymap) Expand(m mode.Mode, event key.Event) ([]key.Event, ExpandStatus) {
	k.mu.Lock()
	defer k.mu.Unlock()

	// A mode change invalidates held events.
	if len(k.held) > 0 && k.heldMode != m {
		flush := append(k.held, event)
		k.held = nil
		return flush, ExpandFlush
	}

	seq := append(k.held, event)
	exact, prefix := k.match(m, seq)

	switch {
	case exact != nil:
		k.held = nil
		return exact.rhs, ExpandMatched

	case prefix:
		k.held = append([]key.Event{}, seq...)
		k.heldMode = m
		return nil, ExpandPending

	case len(k.held) > 0:
		k.held = nil
		return seq, ExpandFlush

	default:
		return nil, ExpandNone
	}
}

// match looks for an exact mapping and whether seq prefixes a longer
// one.
func (k *Keymap) match(m mode.Mode, seq []key.Event) (*mapping, bool) {
	var exact *mapping
	prefix := false
	for i := range k.mappings[m] {
		mp := &k.mappings[m][i]
		if eventsEqual(mp.lhs, seq) {
			exact = mp
			continue
		}
		if len(mp.lhs) > len(seq) && eventsEqual(mp.lhs[:len(seq)], seq) {
			prefix = true
		}
	}
	return exact, prefix
}

func eventsEqual(a, b []key.Event) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equals(b[i]) {
			return false
		}
	}
	return true
}
