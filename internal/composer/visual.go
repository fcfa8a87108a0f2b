package composer

import (
	"strings"

	"github.com/dshills/modal/internal/host"
	"github.com/dshills/modal/internal/key"
	"github.com/dshills/modal/internal/mode"
	"github.com/dshills/modal/internal/motion"
	"github.com/dshills/modal/internal/operator"
	"github.com/dshills/modal/internal/register"
	"github.com/dshills/modal/internal/text"
	"github.com/dshills/modal/internal/textobj"
)

// feedVisual handles input in the three Visual modes: motions and text
// objects reshape the selection, operators consume it.
func (c *Composer) feedVisual(event key.Event) Outcome {
	if event.IsEscape() {
		c.pending.reset()
		c.rememberSelection()
		c.exitVisual()
		return Outcome{Kind: OutcomeCancelled, Mode: c.mode}
	}

	if event.IsRune() && event.Modifiers.HasCtrl() {
		if event.Rune == 'v' && c.pending.isEmpty() {
			return c.switchVisual(mode.VisualBlock)
		}
		return consumed(c.mode, c.pending.display())
	}
	if !event.IsRune() {
		return consumed(c.mode, c.pending.display())
	}

	status, cmd := c.pending.feed(event.Rune)
	switch status {
	case pendMore:
		return consumed(c.mode, c.pending.display())
	case pendInvalid:
		return Outcome{Kind: OutcomeCancelled, Mode: c.mode}
	default:
		return c.dispatchVisual(cmd)
	}
}

// dispatchVisual executes a completed command against the selection.
func (c *Composer) dispatchVisual(cmd parsed) Outcome {
	snap, err := c.snapshot()
	if err != nil {
		return cancelled(c.mode, err)
	}

	switch {
	case cmd.simple == 'v':
		return c.switchVisual(mode.VisualChar)
	case cmd.simple == 'V':
		return c.switchVisual(mode.VisualLine)

	case cmd.simple == 'o':
		// Swap the anchor and the cursor end of the selection.
		cur := snap.Cursor
		a := c.anchor
		c.anchor = cur
		if err := c.submitVisualSelection(a); err != nil {
			return cancelled(c.mode, err)
		}
		return dispatched(c.mode)

	case cmd.simple == ':':
		c.rememberSelection()
		c.exitVisual()
		c.cmdline.Reset(':')
		for _, r := range "'<,'>" {
			c.cmdline.Insert(r)
		}
		c.setMode(mode.CommandLine)
		return dispatched(c.mode)

	case cmd.simple == 'x':
		return c.visualOperator(snap, &operator.OpDelete, cmd.reg)
	case cmd.simple == 's':
		return c.visualOperator(snap, &operator.OpChange, cmd.reg)
	case cmd.simple == '~':
		return c.visualOperator(snap, &operator.OpToggleCase, cmd.reg)
	case cmd.simple == 'u':
		return c.visualOperator(snap, &operator.OpLower, cmd.reg)
	case cmd.simple == 'U':
		return c.visualOperator(snap, &operator.OpUpper, cmd.reg)

	case cmd.simple == 'p' || cmd.simple == 'P':
		return c.visualPut(snap, cmd.reg)

	case cmd.op != nil:
		return c.visualOperator(snap, cmd.op, cmd.reg)

	case cmd.object != nil:
		span, ok := textobj.Resolve(snap.View, snap.Cursor, cmd.object, cmd.scope)
		if !ok {
			return cancelled(c.mode, ErrNoMatch)
		}
		c.anchor = span.Start
		end := span.End
		if span.Class == text.CharExclusive && end.Col > span.Start.Col {
			end.Col--
		}
		if err := c.submitVisualSelection(end); err != nil {
			return cancelled(c.mode, err)
		}
		return dispatched(c.mode)

	case cmd.mot != nil:
		dst, _, ok := motion.Resolve(snap.View, snap.Cursor, cmd.mot, cmd.count, cmd.charArg, c.motionSt)
		if !ok {
			return cancelled(c.mode, ErrNoMatch)
		}
		if err := c.submitVisualSelection(dst); err != nil {
			return cancelled(c.mode, err)
		}
		return dispatched(c.mode)
	}

	return Outcome{Kind: OutcomeCancelled, Mode: c.mode}
}

// visualOperator applies an operator to the selection and leaves
// Visual mode.
func (c *Composer) visualOperator(snap host.Snapshot, op *operator.Operator, reg rune) Outcome {
	span := c.visualSpan(snap)
	c.rememberSelection()
	c.exitVisual()
	return c.applyOperator(snap, op, span, reg)
}

// visualPut replaces the selection with a register's content. The
// replaced text goes through the delete history.
func (c *Composer) visualPut(snap host.Snapshot, reg rune) Outcome {
	name := reg
	if name == 0 {
		name = '"'
	}
	entry := c.registers.Get(name)
	if entry.Content == "" {
		return Outcome{Kind: OutcomeCancelled, Mode: c.mode}
	}

	span := c.visualSpan(snap)
	replaced := register.Entry{
		Content: text.Extract(snap.View, span),
		Shape:   span.Class.Shape(),
	}

	content := entry.Content
	if entry.Shape == text.ShapeLinewise && span.Class != text.Linewise {
		// Linewise content spliced into a charwise selection keeps its
		// line breaks but drops the trailing one.
		content = strings.TrimSuffix(content, "\n")
	}

	c.rememberSelection()
	c.exitVisual()

	req := host.EditRequest{
		Spans: []text.Span{span},
		Text:  content,
		Shape: span.Class.Shape(),
	}
	if _, err := c.submitEdit(req); err != nil {
		c.discardChange()
		return cancelled(c.mode, err)
	}
	c.registers.RecordDelete(replaced, false)
	if err := c.moveCursor(span.Start); err != nil {
		return cancelled(c.mode, err)
	}
	c.commitChange()
	return dispatched(c.mode)
}

// visualSpan builds the selection span for the active Visual mode.
func (c *Composer) visualSpan(snap host.Snapshot) text.Span {
	var class text.Class
	switch c.mode {
	case mode.VisualLine:
		class = text.Linewise
	case mode.VisualBlock:
		class = text.Blockwise
	default:
		class = text.CharInclusive
	}
	return text.NewSpan(c.anchor, snap.Cursor, class)
}

// submitVisualSelection moves the cursor end of the selection and
// publishes the selection to the host.
func (c *Composer) submitVisualSelection(cursor text.Position) error {
	span := text.NewSpan(c.anchor, cursor, c.visualClass())
	return c.adapter.SubmitSelection(c.contextID, host.SelectionRequest{
		Cursor:    cursor,
		Selection: &span,
	})
}

func (c *Composer) visualClass() text.Class {
	switch c.mode {
	case mode.VisualLine:
		return text.Linewise
	case mode.VisualBlock:
		return text.Blockwise
	default:
		return text.CharInclusive
	}
}

// switchVisual toggles between Visual variants; selecting the active
// variant leaves Visual mode.
func (c *Composer) switchVisual(m mode.Mode) Outcome {
	if c.mode == m {
		c.rememberSelection()
		c.exitVisual()
		return dispatched(c.mode)
	}
	c.setMode(m)
	snap, err := c.snapshot()
	if err != nil {
		return cancelled(c.mode, err)
	}
	if err := c.submitVisualSelection(snap.Cursor); err != nil {
		return cancelled(c.mode, err)
	}
	return dispatched(c.mode)
}

// rememberSelection saves the selection bounds for the '< and '> ex
// addresses.
func (c *Composer) rememberSelection() {
	snap, err := c.snapshot()
	if err != nil {
		return
	}
	span := c.visualSpan(snap)
	c.lastVisual = &span
}

// exitVisual returns to Normal mode and collapses the selection.
func (c *Composer) exitVisual() {
	c.pending.visual = false
	c.setMode(mode.Normal)
	if snap, err := c.snapshot(); err == nil {
		_ = c.moveCursor(snap.Cursor)
	}
}
