package composer

import (
	"strings"

	"github.com/dshills/modal/internal/host"
	"github.com/dshills/modal/internal/key"
	"github.com/dshills/modal/internal/mode"
	"github.com/dshills/modal/internal/operator"
	"github.com/dshills/modal/internal/text"
)

// dispatchSimple executes a single-key Normal mode command.
func (c *Composer) dispatchSimple(cmd parsed) Outcome {
	switch cmd.simple {
	case 'i', 'a', 'I', 'A', 'o', 'O', 'R', 'v', 'V', ':':
		return c.dispatchModeSwitch(cmd.simple)
	case '.':
		return c.repeatLastChange(cmd.count)
	case 'u':
		c.discardChange()
		return Outcome{Kind: OutcomeDispatched, Mode: c.mode, Actions: []string{"undo"}}
	case 'q':
		return c.startRecording(cmd.charArg)
	case '@':
		return c.playMacro(cmd)
	}

	snap, err := c.snapshot()
	if err != nil {
		c.discardChange()
		return cancelled(c.mode, err)
	}
	cur := snap.Cursor
	count := cmd.effCount()
	lineLen := text.LineLen(snap.View, cur.Line)

	switch cmd.simple {
	case 'x':
		end := cur.Col + count
		if end > lineLen {
			end = lineLen
		}
		if end <= cur.Col {
			c.discardChange()
			return Outcome{Kind: OutcomeCancelled, Mode: c.mode}
		}
		span := text.NewSpan(cur, text.Position{Line: cur.Line, Col: end}, text.CharExclusive)
		return c.applyOperator(snap, &operator.OpDelete, span, cmd.reg)

	case 'X':
		start := cur.Col - count
		if start < 0 {
			start = 0
		}
		if start >= cur.Col {
			c.discardChange()
			return Outcome{Kind: OutcomeCancelled, Mode: c.mode}
		}
		span := text.NewSpan(text.Position{Line: cur.Line, Col: start}, cur, text.CharExclusive)
		return c.applyOperator(snap, &operator.OpDelete, span, cmd.reg)

	case 's':
		end := cur.Col + count
		if end > lineLen {
			end = lineLen
		}
		span := text.NewSpan(cur, text.Position{Line: cur.Line, Col: end}, text.CharExclusive)
		return c.applyOperator(snap, &operator.OpChange, span, cmd.reg)

	case 'S':
		return c.applyOperator(snap, &operator.OpChange, lineSpan(snap.View, cur.Line, count), cmd.reg)

	case 'D':
		span := text.NewSpan(cur, text.Position{Line: cur.Line, Col: lineLen}, text.CharExclusive)
		if span.IsEmpty() {
			c.discardChange()
			return Outcome{Kind: OutcomeCancelled, Mode: c.mode}
		}
		return c.applyOperator(snap, &operator.OpDelete, span, cmd.reg)

	case 'C':
		span := text.NewSpan(cur, text.Position{Line: cur.Line, Col: lineLen}, text.CharExclusive)
		return c.applyOperator(snap, &operator.OpChange, span, cmd.reg)

	case 'Y':
		return c.applyOperator(snap, &operator.OpYank, lineSpan(snap.View, cur.Line, count), cmd.reg)

	case '~':
		end := cur.Col + count
		if end > lineLen {
			end = lineLen
		}
		if end <= cur.Col {
			c.discardChange()
			return Outcome{Kind: OutcomeCancelled, Mode: c.mode}
		}
		span := text.NewSpan(cur, text.Position{Line: cur.Line, Col: end}, text.CharExclusive)
		out := c.applyOperator(snap, &operator.OpToggleCase, span, cmd.reg)
		if out.Kind == OutcomeDispatched {
			// The cursor advances past the toggled characters.
			after := end
			if after > lineLen-1 {
				after = lineLen - 1
			}
			if after < 0 {
				after = 0
			}
			if err := c.moveCursor(text.Position{Line: cur.Line, Col: after}); err != nil {
				return cancelled(c.mode, err)
			}
		}
		return out

	case 'r':
		return c.replaceChars(snap, cmd.charArg, count)

	case 'J':
		return c.joinLines(snap, count)

	case 'p':
		return c.put(snap, cmd.reg, count, false)

	case 'P':
		return c.put(snap, cmd.reg, count, true)
	}

	c.discardChange()
	return Outcome{Kind: OutcomeCancelled, Mode: c.mode}
}

// dispatchModeSwitch handles keys that leave Normal mode.
func (c *Composer) dispatchModeSwitch(r rune) Outcome {
	switch r {
	case 'v':
		c.discardChange()
		return c.enterVisual(mode.VisualChar)
	case 'V':
		c.discardChange()
		return c.enterVisual(mode.VisualLine)
	case ':':
		c.discardChange()
		c.cmdline.Reset(':')
		c.setMode(mode.CommandLine)
		return dispatched(c.mode)
	case 'R':
		c.insertBuf = c.insertBuf[:0]
		c.capturingIns = !c.dotReplay
		c.setMode(mode.Replace)
		return dispatched(c.mode)
	}

	snap, err := c.snapshot()
	if err != nil {
		c.discardChange()
		return cancelled(c.mode, err)
	}
	cur := snap.Cursor
	lineLen := text.LineLen(snap.View, cur.Line)

	switch r {
	case 'i':
		return c.enterInsert(true)

	case 'a':
		at := cur
		if at.Col < lineLen {
			at.Col++
		}
		// Insert mode first, so the host accepts the one-past-end column.
		out := c.enterInsert(true)
		if err := c.moveCursor(at); err != nil {
			return cancelled(c.mode, err)
		}
		return out

	case 'I':
		at := text.Position{Line: cur.Line, Col: firstNonBlankCol(snap.View.Line(cur.Line))}
		if err := c.moveCursor(at); err != nil {
			return cancelled(c.mode, err)
		}
		return c.enterInsert(true)

	case 'A':
		at := text.Position{Line: cur.Line, Col: lineLen}
		out := c.enterInsert(true)
		if err := c.moveCursor(at); err != nil {
			return cancelled(c.mode, err)
		}
		return out

	case 'o':
		return c.openLine(snap, false)

	case 'O':
		return c.openLine(snap, true)
	}

	c.discardChange()
	return Outcome{Kind: OutcomeCancelled, Mode: c.mode}
}

// openLine inserts an empty line below (or above) the cursor line and
// enters Insert mode on it.
func (c *Composer) openLine(snap host.Snapshot, above bool) Outcome {
	cur := snap.Cursor
	var req host.EditRequest
	var at text.Position
	if above {
		anchorPos := text.Position{Line: cur.Line, Col: 0}
		req = host.EditRequest{
			Spans: []text.Span{{Start: anchorPos, End: anchorPos, Class: text.CharExclusive}},
			Text:  "\n",
			Shape: text.ShapeCharwise,
		}
		at = anchorPos
	} else {
		endPos := text.Position{Line: cur.Line, Col: text.LineLen(snap.View, cur.Line)}
		req = host.EditRequest{
			Spans: []text.Span{{Start: endPos, End: endPos, Class: text.CharExclusive}},
			Text:  "\n",
			Shape: text.ShapeCharwise,
		}
		at = text.Position{Line: cur.Line + 1, Col: 0}
	}
	if _, err := c.submitEdit(req); err != nil {
		c.discardChange()
		return cancelled(c.mode, err)
	}
	if err := c.moveCursor(at); err != nil {
		return cancelled(c.mode, err)
	}
	return c.enterInsert(true)
}

// replaceChars overwrites count characters at the cursor with the
// given character. Fails without mutation when the line is too short.
func (c *Composer) replaceChars(snap host.Snapshot, ch rune, count int) Outcome {
	cur := snap.Cursor
	lineLen := text.LineLen(snap.View, cur.Line)
	if cur.Col+count > lineLen {
		c.discardChange()
		return Outcome{Kind: OutcomeCancelled, Mode: c.mode}
	}
	req := host.EditRequest{
		Spans: []text.Span{text.NewSpan(
			cur,
			text.Position{Line: cur.Line, Col: cur.Col + count},
			text.CharExclusive,
		)},
		Text:  strings.Repeat(string(ch), count),
		Shape: text.ShapeCharwise,
	}
	if _, err := c.submitEdit(req); err != nil {
		c.discardChange()
		return cancelled(c.mode, err)
	}
	if err := c.moveCursor(text.Position{Line: cur.Line, Col: cur.Col + count - 1}); err != nil {
		return cancelled(c.mode, err)
	}
	c.commitChange()
	return dispatched(c.mode)
}

// joinLines merges count lines (minimum two) into one, collapsing the
// line breaks and surrounding whitespace into single spaces.
func (c *Composer) joinLines(snap host.Snapshot, count int) Outcome {
	if count < 2 {
		count = 2
	}
	cur := snap.Cursor
	last := cur.Line + count - 1
	if max := snap.View.LineCount() - 1; last > max {
		last = max
	}
	if last <= cur.Line {
		c.discardChange()
		return Outcome{Kind: OutcomeCancelled, Mode: c.mode}
	}

	joined := strings.TrimRight(snap.View.Line(cur.Line), " \t")
	joinCol := len([]rune(joined))
	for n := cur.Line + 1; n <= last; n++ {
		piece := strings.TrimSpace(snap.View.Line(n))
		if piece == "" {
			continue
		}
		if joined != "" {
			joined += " "
		}
		joined += piece
	}

	req := host.EditRequest{
		Spans: []text.Span{text.NewSpan(
			text.Position{Line: cur.Line, Col: 0},
			text.Position{Line: last, Col: 0},
			text.Linewise,
		)},
		Text:  joined + "\n",
		Shape: text.ShapeLinewise,
	}
	if _, err := c.submitEdit(req); err != nil {
		c.discardChange()
		return cancelled(c.mode, err)
	}
	if err := c.moveCursor(text.Position{Line: cur.Line, Col: joinCol}); err != nil {
		return cancelled(c.mode, err)
	}
	c.commitChange()
	return dispatched(c.mode)
}

// playMacro replays a recorded macro, or the last-played one for @@.
func (c *Composer) playMacro(cmd parsed) Outcome {
	// The trigger keys were already captured into an active recording;
	// the replayed events fold in instead, so remove the trigger.
	if c.recorder.IsRecording() {
		for i := 0; i < cmd.keylen; i++ {
			c.recorder.DropLast()
		}
	}
	c.discardChange()

	handler := func(ev key.Event) error {
		out := c.Feed(ev)
		return out.Err
	}

	var err error
	if cmd.charArg == '@' {
		err = c.player.PlayLast(cmd.effCount(), handler)
	} else {
		err = c.player.Play(cmd.charArg, cmd.effCount(), handler)
	}
	if err != nil {
		return cancelled(c.mode, err)
	}
	return dispatched(c.mode)
}

// firstNonBlankCol returns the column of the first non-blank rune.
func firstNonBlankCol(line string) int {
	for i, r := range []rune(line) {
		if r != ' ' && r != '\t' {
			return i
		}
	}
	return 0
}
