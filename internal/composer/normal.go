package composer

import (
	"fmt"
	"unicode"

	"github.com/dshills/modal/internal/host"
	"github.com/dshills/modal/internal/key"
	"github.com/dshills/modal/internal/macro"
	"github.com/dshills/modal/internal/mode"
	"github.com/dshills/modal/internal/motion"
	"github.com/dshills/modal/internal/operator"
	"github.com/dshills/modal/internal/register"
	"github.com/dshills/modal/internal/text"
	"github.com/dshills/modal/internal/textobj"
)

// feedNormal handles Normal and OperatorPending input.
func (c *Composer) feedNormal(event key.Event) Outcome {
	if event.IsEscape() {
		c.pending.reset()
		c.discardChange()
		c.setMode(mode.Normal)
		return Outcome{Kind: OutcomeCancelled, Mode: c.mode}
	}

	if event.IsRune() && event.Modifiers.HasCtrl() {
		if event.Rune == 'v' && c.pending.isEmpty() {
			return c.enterVisual(mode.VisualBlock)
		}
		if event.Rune == 'r' && c.pending.isEmpty() {
			c.discardChange()
			return Outcome{Kind: OutcomeDispatched, Mode: c.mode, Actions: []string{"redo"}}
		}
		return consumed(c.mode, c.pending.display())
	}
	if !event.IsRune() {
		return consumed(c.mode, c.pending.display())
	}

	r := event.Rune

	// A bare q while recording stops the recording; the q itself is
	// dropped from the captured sequence.
	if r == 'q' && c.pending.isEmpty() && c.recorder.IsRecording() {
		c.recorder.DropLast()
		if err := c.recorder.StopRecording(); err != nil {
			return cancelled(c.mode, err)
		}
		c.discardChange()
		return Outcome{Kind: OutcomeDispatched, Mode: c.mode, Message: "recorded"}
	}

	status, cmd := c.pending.feed(r)
	switch status {
	case pendMore:
		if c.pending.op != nil {
			c.setMode(mode.OperatorPending)
		}
		return consumed(c.mode, c.pending.display())

	case pendInvalid:
		c.discardChange()
		c.setMode(mode.Normal)
		return Outcome{Kind: OutcomeCancelled, Mode: c.mode}

	default:
		c.setMode(mode.Normal)
		return c.dispatchNormal(cmd)
	}
}

// dispatchNormal executes a completed Normal mode command.
func (c *Composer) dispatchNormal(cmd parsed) Outcome {
	if cmd.simple != 0 {
		return c.dispatchSimple(cmd)
	}

	snap, err := c.snapshot()
	if err != nil {
		c.discardChange()
		return cancelled(c.mode, err)
	}

	switch {
	case cmd.linewise:
		span := lineSpan(snap.View, snap.Cursor.Line, cmd.effCount())
		return c.applyOperator(snap, cmd.op, span, cmd.reg)

	case cmd.object != nil:
		if cmd.op == nil {
			// Text objects only mean something as operator targets or
			// Visual expanders.
			c.discardChange()
			return Outcome{Kind: OutcomeCancelled, Mode: c.mode}
		}
		span, ok := textobj.Resolve(snap.View, snap.Cursor, cmd.object, cmd.scope)
		if !ok {
			c.discardChange()
			return cancelled(c.mode, ErrNoMatch)
		}
		return c.applyOperator(snap, cmd.op, span, cmd.reg)

	case cmd.mot != nil:
		if cmd.op == nil {
			return c.dispatchMotion(snap, cmd)
		}
		span, ok := c.operatorSpan(snap, cmd)
		if !ok {
			c.discardChange()
			return cancelled(c.mode, ErrNoMatch)
		}
		return c.applyOperator(snap, cmd.op, span, cmd.reg)
	}

	c.discardChange()
	return Outcome{Kind: OutcomeCancelled, Mode: c.mode}
}

// dispatchMotion moves the cursor for a bare motion.
func (c *Composer) dispatchMotion(snap host.Snapshot, cmd parsed) Outcome {
	dst, _, ok := motion.Resolve(snap.View, snap.Cursor, cmd.mot, cmd.count, cmd.charArg, c.motionSt)
	if !ok {
		c.discardChange()
		return cancelled(c.mode, ErrNoMatch)
	}
	c.discardChange()
	if err := c.moveCursor(dst); err != nil {
		return cancelled(c.mode, err)
	}
	return dispatched(c.mode)
}

// operatorSpan resolves an operator's motion target into a span.
func (c *Composer) operatorSpan(snap host.Snapshot, cmd parsed) (text.Span, bool) {
	m := cmd.mot
	start := snap.Cursor

	// cw on a non-blank behaves like ce: the trailing whitespace
	// survives the change.
	if cmd.op.Kind == operator.Change && onWord(snap.View, start) {
		switch m.Kind {
		case motion.KindWordForward:
			m = &motion.WordEnd
		case motion.KindWORDForward:
			m = &motion.WORDEnd
		}
	}

	dst, class, ok := motion.Resolve(snap.View, start, m, cmd.count, cmd.charArg, c.motionSt)
	if !ok {
		return text.Span{}, false
	}

	// dw at the end of a line stops at the line break instead of
	// pulling the next line up.
	if class == text.CharExclusive && dst.Line > start.Line {
		switch m.Kind {
		case motion.KindWordForward, motion.KindWORDForward:
			dst = text.Position{Line: start.Line, Col: text.LineLen(snap.View, start.Line)}
		}
	}

	if class == text.Linewise {
		lo, hi := start.Line, dst.Line
		if lo > hi {
			lo, hi = hi, lo
		}
		return text.NewSpan(
			text.Position{Line: lo, Col: 0},
			text.Position{Line: hi, Col: 0},
			text.Linewise,
		), true
	}

	span := text.NewSpan(start, dst, class)
	if span.IsEmpty() {
		return text.Span{}, false
	}
	return span, true
}

// applyOperator builds and submits the edit for an operator over a
// resolved span, routing captured text into registers.
func (c *Composer) applyOperator(snap host.Snapshot, op *operator.Operator, span text.Span, reg rune) Outcome {
	edit := operator.Build(snap.View, op, span, c.opts.ShiftWidth)

	if op.WritesRegister {
		c.routeCapture(op.Kind, reg, edit.Capture, edit.Small)
	}

	if edit.Mutates {
		if _, err := c.submitEdit(edit.Request); err != nil {
			c.discardChange()
			c.pending.reset()
			out := cancelled(c.mode, err)
			if hostRejected(err) {
				out.Message = err.Error()
			}
			return out
		}
	}
	// Insert mode first, so the host accepts the one-past-end column a
	// change at end of line needs.
	if op.EntersInsert {
		out := c.enterInsert(true)
		if err := c.moveCursor(edit.Cursor); err != nil {
			return cancelled(c.mode, err)
		}
		return out
	}
	if err := c.moveCursor(edit.Cursor); err != nil {
		return cancelled(c.mode, err)
	}
	if edit.Mutates {
		c.commitChange()
	} else {
		c.discardChange()
	}
	return dispatched(c.mode)
}

// routeCapture stores operator-captured text following the register
// rules: a named register bypasses the numbered history, the black
// hole discards, and the default routes through yank/delete history.
func (c *Composer) routeCapture(kind operator.EditKind, reg rune, e register.Entry, small bool) {
	switch {
	case reg == '_':
	case reg != 0:
		c.registers.Set(reg, e)
		c.registers.Set('"', e)
	case kind == operator.Yank:
		c.registers.RecordYank(e)
	default:
		c.registers.RecordDelete(e, small)
	}
}

// enterInsert switches to Insert mode. capture marks the session as
// part of the repeatable change in progress.
func (c *Composer) enterInsert(capture bool) Outcome {
	c.insertBuf = c.insertBuf[:0]
	c.capturingIns = capture && !c.dotReplay
	c.setMode(mode.Insert)
	return dispatched(c.mode)
}

// enterVisual starts a visual selection anchored at the cursor.
func (c *Composer) enterVisual(m mode.Mode) Outcome {
	snap, err := c.snapshot()
	if err != nil {
		return cancelled(c.mode, err)
	}
	c.anchor = snap.Cursor
	c.pending.visual = true
	c.setMode(m)
	if err := c.submitVisualSelection(snap.Cursor); err != nil {
		return cancelled(c.mode, err)
	}
	return dispatched(c.mode)
}

// lineSpan builds a linewise span of count lines starting at line.
func lineSpan(v text.View, line, count int) text.Span {
	last := line + count - 1
	if max := v.LineCount() - 1; last > max {
		last = max
	}
	return text.NewSpan(
		text.Position{Line: line, Col: 0},
		text.Position{Line: last, Col: 0},
		text.Linewise,
	)
}

// onWord reports whether the cursor sits on a non-blank character.
func onWord(v text.View, p text.Position) bool {
	r := text.RuneAt(v, p)
	return r != 0 && !unicode.IsSpace(r)
}

// startRecording begins macro capture into a register.
func (c *Composer) startRecording(reg rune) Outcome {
	if !macro.IsValidRegister(reg) {
		return cancelled(c.mode, fmt.Errorf("invalid macro register %q", string(reg)))
	}
	if err := c.recorder.StartRecording(reg); err != nil {
		return cancelled(c.mode, err)
	}
	c.discardChange()
	return Outcome{Kind: OutcomeDispatched, Mode: c.mode, Message: "recording @" + string(unicode.ToLower(reg))}
}
