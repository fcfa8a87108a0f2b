package composer

import (
	"errors"
	"fmt"

	"github.com/dshills/modal/internal/config"
	"github.com/dshills/modal/internal/excmd"
	"github.com/dshills/modal/internal/host"
	"github.com/dshills/modal/internal/key"
	"github.com/dshills/modal/internal/macro"
	"github.com/dshills/modal/internal/mode"
	"github.com/dshills/modal/internal/motion"
	"github.com/dshills/modal/internal/register"
	"github.com/dshills/modal/internal/text"
)

// Composer interprets key events for one editing context. The host
// calls Feed once per discrete key event; each event is processed to
// completion before the next.
type Composer struct {
	adapter   host.Adapter
	contextID string
	opts      *config.Options

	mode    mode.Mode
	pending *pending

	registers *register.Store
	recorder  *macro.Recorder
	player    *macro.Player
	motionSt  *motion.State
	keymap    *Keymap

	// Visual state. anchor is the selection origin; lastVisual feeds
	// the '< and '> ex addresses.
	anchor     text.Position
	lastVisual *text.Span

	// Insert session state for the . register and dot repeat.
	insertBuf    []rune
	pendingCurs  text.Position
	changePend   bool // current command should commit to lastChange
	capturingIns bool // insert session belongs to the change

	cmdline *excmd.LineBuffer

	// Dot repeat: the literal events of the last buffer-changing
	// command.
	dotBuf     []key.Event
	lastChange []key.Event
	dotReplay  bool

	expandDepth int
}

// New creates a composer for one editing context. The register store
// and macro recorder may be shared across contexts; opts may be nil
// for defaults.
func New(adapter host.Adapter, contextID string, registers *register.Store, recorder *macro.Recorder, opts *config.Options) *Composer {
	if registers == nil {
		registers = register.NewStore()
	}
	if recorder == nil {
		recorder = macro.NewRecorder()
	}
	if opts == nil {
		opts = config.Defaults()
	}
	c := &Composer{
		adapter:   adapter,
		contextID: contextID,
		opts:      opts,
		mode:      mode.Normal,
		pending:   newPending(),
		registers: registers,
		recorder:  recorder,
		motionSt:  motion.NewState(),
		keymap:    NewKeymap(),
		cmdline:   excmd.NewLineBuffer(),
	}
	c.player = macro.NewPlayer(recorder)
	c.registerActions()
	return c
}

// Mode returns the active mode.
func (c *Composer) Mode() mode.Mode {
	return c.mode
}

// PendingKeys returns the accumulated pending keys for display.
func (c *Composer) PendingKeys() string {
	return c.pending.display()
}

// CommandLine returns the in-progress command line text, valid in
// CommandLine mode.
func (c *Composer) CommandLine() string {
	return c.cmdline.String()
}

// Recording returns the register a macro is recording into, or 0.
func (c *Composer) Recording() rune {
	return c.recorder.RecordingRegister()
}

// Keymap returns the mapping table for configuration.
func (c *Composer) Keymap() *Keymap {
	return c.keymap
}

// registerActions exposes composer operations to the host's action
// facility.
func (c *Composer) registerActions() {
	if c.adapter == nil {
		return
	}
	c.adapter.RegisterAction("repeat-last-change", func() error {
		out := c.repeatLastChange(0)
		return out.Err
	})
	c.adapter.RegisterAction("normal-mode", func() error {
		c.setMode(mode.Normal)
		c.pending.reset()
		return nil
	})
}

// Feed processes one key event and returns what it produced. Events
// are normalized (Space becomes the ' ' rune) and run through the
// mapping table before interpretation.
func (c *Composer) Feed(event key.Event) Outcome {
	event = normalize(event)

	events, status := c.keymap.Expand(c.mode, event)
	switch status {
	case ExpandPending:
		return consumed(c.mode, c.pending.display())
	case ExpandMatched:
		return c.feedExpansion(events)
	case ExpandFlush:
		out := consumed(c.mode, c.pending.display())
		for _, ev := range events {
			out = c.feed(ev)
		}
		return out
	default:
		return c.feed(event)
	}
}

// feedExpansion replays a mapping's right-hand side with a depth guard
// against mutually recursive mappings.
func (c *Composer) feedExpansion(events []key.Event) Outcome {
	if c.expandDepth >= maxExpandDepth {
		return cancelled(c.mode, fmt.Errorf("mapping expansion too deep"))
	}
	c.expandDepth++
	defer func() { c.expandDepth-- }()

	out := consumed(c.mode, c.pending.display())
	for _, ev := range events {
		out = c.Feed(ev)
	}
	return out
}

// feed interprets one normalized event.
func (c *Composer) feed(event key.Event) Outcome {
	// Live and macro-replayed events fold into an active recording;
	// dot-replayed events do not, because the '.' that triggered them
	// was already recorded.
	if c.recorder.IsRecording() && !c.dotReplay {
		c.recorder.Record(event)
	}
	if c.changeCapturable() {
		c.dotBuf = append(c.dotBuf, event)
	}

	switch c.mode {
	case mode.CommandLine:
		return c.feedCommandLine(event)
	case mode.Insert, mode.Replace:
		return c.feedInsert(event)
	case mode.VisualChar, mode.VisualLine, mode.VisualBlock:
		return c.feedVisual(event)
	default:
		return c.feedNormal(event)
	}
}

// changeCapturable reports whether events should accumulate into the
// dot buffer.
func (c *Composer) changeCapturable() bool {
	if c.dotReplay {
		return false
	}
	switch c.mode {
	case mode.CommandLine:
		return false
	case mode.Insert, mode.Replace:
		return c.capturingIns
	default:
		return true
	}
}

// commitChange finalizes the dot buffer as the repeatable last change.
func (c *Composer) commitChange() {
	if c.dotReplay || len(c.dotBuf) == 0 {
		return
	}
	c.lastChange = append(c.lastChange[:0:0], c.dotBuf...)
	c.dotBuf = c.dotBuf[:0]
	c.changePend = false
}

// discardChange drops the dot buffer after a non-mutating command.
func (c *Composer) discardChange() {
	c.dotBuf = c.dotBuf[:0]
	c.changePend = false
	c.capturingIns = false
}

// setMode transitions modes and notifies the host.
func (c *Composer) setMode(m mode.Mode) {
	if c.mode == m {
		return
	}
	c.mode = m
	if c.adapter != nil {
		c.adapter.NotifyModeChanged(c.contextID, m)
	}
}

// snapshot reads the current editor state.
func (c *Composer) snapshot() (host.Snapshot, error) {
	return c.adapter.ReadSnapshot(c.contextID)
}

// submitEdit sends a mutation, translating host rejection into a
// cancelled outcome upstream.
func (c *Composer) submitEdit(req host.EditRequest) (host.EditResult, error) {
	res, err := c.adapter.SubmitEdit(c.contextID, req)
	if err != nil {
		return res, fmt.Errorf("submit edit: %w", err)
	}
	return res, nil
}

// moveCursor collapses the selection onto a single cursor position.
func (c *Composer) moveCursor(p text.Position) error {
	return c.adapter.SubmitSelection(c.contextID, host.SelectionRequest{Cursor: p})
}

// hostRejected reports whether err is a host-declined edit.
func hostRejected(err error) bool {
	return errors.Is(err, host.ErrRejected)
}

// normalize canonicalizes events: the dedicated Space key becomes the
// ' ' rune so the grammar sees one token.
func normalize(event key.Event) key.Event {
	if event.Key == key.KeySpace {
		return key.Event{Key: key.KeyRune, Rune: ' ', Modifiers: event.Modifiers}
	}
	return event
}
