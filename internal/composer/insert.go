package composer

import (
	"github.com/dshills/modal/internal/host"
	"github.com/dshills/modal/internal/key"
	"github.com/dshills/modal/internal/mode"
	"github.com/dshills/modal/internal/text"
)

// feedInsert handles Insert and Replace mode input. Every keystroke is
// submitted as its own edit; grouping for undo is the host's concern.
func (c *Composer) feedInsert(event key.Event) Outcome {
	if event.IsEscape() {
		return c.leaveInsert()
	}

	snap, err := c.snapshot()
	if err != nil {
		return cancelled(c.mode, err)
	}
	cur := snap.Cursor
	lineLen := text.LineLen(snap.View, cur.Line)

	switch {
	case event.IsEnter():
		at := cur
		if at.Col > lineLen {
			at.Col = lineLen
		}
		if out, ok := c.insertText(at, "\n", text.Position{Line: cur.Line + 1, Col: 0}); !ok {
			return out
		}
		c.insertBuf = append(c.insertBuf, '\n')
		return dispatched(c.mode)

	case event.IsBackspace():
		return c.insertBackspace(snap, cur)

	case event.IsRune() && !event.Modifiers.HasCtrl() && !event.Modifiers.HasAlt():
		r := event.Rune
		span := text.Span{Start: cur, End: cur, Class: text.CharExclusive}
		if c.mode == mode.Replace && cur.Col < lineLen {
			// Replace mode overwrites until the line runs out, then
			// extends like Insert.
			span.End = text.Position{Line: cur.Line, Col: cur.Col + 1}
		}
		req := host.EditRequest{
			Spans: []text.Span{span},
			Text:  string(r),
			Shape: text.ShapeCharwise,
		}
		if _, err := c.submitEdit(req); err != nil {
			return cancelled(c.mode, err)
		}
		if err := c.moveCursor(text.Position{Line: cur.Line, Col: cur.Col + 1}); err != nil {
			return cancelled(c.mode, err)
		}
		c.insertBuf = append(c.insertBuf, r)
		return dispatched(c.mode)
	}

	return consumed(c.mode, "")
}

// insertBackspace deletes backward, joining onto the previous line at
// column zero.
func (c *Composer) insertBackspace(snap host.Snapshot, cur text.Position) Outcome {
	if len(c.insertBuf) > 0 {
		c.insertBuf = c.insertBuf[:len(c.insertBuf)-1]
	}

	var span text.Span
	var at text.Position
	switch {
	case cur.Col > 0:
		span = text.NewSpan(
			text.Position{Line: cur.Line, Col: cur.Col - 1},
			cur,
			text.CharExclusive,
		)
		at = text.Position{Line: cur.Line, Col: cur.Col - 1}
	case cur.Line > 0:
		prevLen := text.LineLen(snap.View, cur.Line-1)
		span = text.NewSpan(
			text.Position{Line: cur.Line - 1, Col: prevLen},
			text.Position{Line: cur.Line, Col: 0},
			text.CharExclusive,
		)
		at = text.Position{Line: cur.Line - 1, Col: prevLen}
	default:
		return consumed(c.mode, "")
	}

	req := host.EditRequest{Spans: []text.Span{span}, Shape: text.ShapeCharwise}
	if _, err := c.submitEdit(req); err != nil {
		return cancelled(c.mode, err)
	}
	if err := c.moveCursor(at); err != nil {
		return cancelled(c.mode, err)
	}
	return dispatched(c.mode)
}

// insertText submits a plain insertion and moves the cursor.
func (c *Composer) insertText(at text.Position, s string, after text.Position) (Outcome, bool) {
	req := host.EditRequest{
		Spans: []text.Span{{Start: at, End: at, Class: text.CharExclusive}},
		Text:  s,
		Shape: text.ShapeCharwise,
	}
	if _, err := c.submitEdit(req); err != nil {
		return cancelled(c.mode, err), false
	}
	if err := c.moveCursor(after); err != nil {
		return cancelled(c.mode, err), false
	}
	return dispatched(c.mode), true
}

// leaveInsert finishes the insert session: the typed text lands in the
// . register, the cursor steps left, and a change in progress becomes
// repeatable.
func (c *Composer) leaveInsert() Outcome {
	c.registers.RecordInserted(string(c.insertBuf))

	if snap, err := c.snapshot(); err == nil && snap.Cursor.Col > 0 {
		_ = c.moveCursor(text.Position{Line: snap.Cursor.Line, Col: snap.Cursor.Col - 1})
	}

	c.setMode(mode.Normal)
	if c.capturingIns {
		c.capturingIns = false
		c.commitChange()
	}
	return dispatched(c.mode)
}
