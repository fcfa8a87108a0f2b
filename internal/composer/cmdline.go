package composer

import (
	"github.com/dshills/modal/internal/excmd"
	"github.com/dshills/modal/internal/key"
	"github.com/dshills/modal/internal/mode"
	"github.com/dshills/modal/internal/text"
)

// feedCommandLine edits the colon command line until it is submitted
// or abandoned.
func (c *Composer) feedCommandLine(event key.Event) Outcome {
	switch {
	case event.IsEscape():
		c.setMode(mode.Normal)
		return Outcome{Kind: OutcomeCancelled, Mode: c.mode}

	case event.IsEnter():
		line := c.cmdline.Submit()
		c.setMode(mode.Normal)
		return c.execCommandLine(line)

	case event.IsBackspace():
		if !c.cmdline.Backspace() {
			// Backspace over the prompt leaves command-line mode.
			c.setMode(mode.Normal)
			return Outcome{Kind: OutcomeCancelled, Mode: c.mode}
		}
		return consumed(c.mode, "")

	case event.Key == key.KeyUp:
		c.cmdline.HistoryPrev()
		return consumed(c.mode, "")

	case event.Key == key.KeyDown:
		c.cmdline.HistoryNext()
		return consumed(c.mode, "")

	case event.Key == key.KeyLeft:
		c.cmdline.MoveLeft()
		return consumed(c.mode, "")

	case event.Key == key.KeyRight:
		c.cmdline.MoveRight()
		return consumed(c.mode, "")

	case event.IsRune() && !event.Modifiers.HasCtrl():
		c.cmdline.Insert(event.Rune)
		return consumed(c.mode, "")
	}

	return consumed(c.mode, "")
}

// execCommandLine parses and executes a submitted ex command line.
// Parse failures surface as messages with zero mutation.
func (c *Composer) execCommandLine(line string) Outcome {
	if line == "" {
		return Outcome{Kind: OutcomeCancelled, Mode: c.mode}
	}
	c.registers.RecordCommand(line)

	cmd, err := excmd.Parse(line)
	if err != nil {
		return Outcome{Kind: OutcomeCancelled, Mode: c.mode, Err: err, Message: err.Error()}
	}

	snap, err := c.snapshot()
	if err != nil {
		return cancelled(c.mode, err)
	}
	env := excmd.Env{
		View:       snap.View,
		Cursor:     snap.Cursor,
		Visual:     c.lastVisual,
		IgnoreCase: c.opts.IgnoreCase,
	}

	res, err := excmd.Execute(cmd, env)
	if err != nil {
		return Outcome{Kind: OutcomeCancelled, Mode: c.mode, Err: err, Message: err.Error()}
	}

	// Edits arrive bottom-up so earlier submissions keep later
	// coordinates valid.
	for _, req := range res.Edits {
		if _, err := c.submitEdit(req); err != nil {
			out := cancelled(c.mode, err)
			if hostRejected(err) {
				out.Message = err.Error()
			}
			return out
		}
	}

	if res.Capture != nil {
		c.routeExCapture(cmd, res)
	}
	if res.Cursor != nil {
		if err := c.moveCursor(*res.Cursor); err != nil {
			return cancelled(c.mode, err)
		}
	}
	if len(res.Keys) > 0 {
		if out := c.runNormalKeys(res.Keys); out.Err != nil {
			return out
		}
	}

	return Outcome{
		Kind:    OutcomeDispatched,
		Mode:    c.mode,
		Message: res.Message,
		Actions: res.Actions,
	}
}

// routeExCapture stores text captured by an ex command: yanks through
// the yank path, deletions through the numbered history.
func (c *Composer) routeExCapture(cmd *excmd.Command, res *excmd.Result) {
	e := *res.Capture
	if cmd.Name == excmd.CmdYank {
		if res.Register != 0 {
			c.registers.Set(res.Register, e)
			c.registers.Set('"', e)
			return
		}
		c.registers.RecordYank(e)
		return
	}
	c.registers.RecordDelete(e, false)
}

// runNormalKeys replays :normal key scripts, one matched line at a
// time, forcing a return to Normal mode between lines.
func (c *Composer) runNormalKeys(runs []excmd.NormalRun) Outcome {
	out := Outcome{Kind: OutcomeDispatched, Mode: c.mode}
	for _, run := range runs {
		if err := c.moveCursor(text.Position{Line: run.Line, Col: 0}); err != nil {
			return cancelled(c.mode, err)
		}
		for _, r := range run.Keys {
			out = c.feed(key.RuneEvent(r))
			if out.Err != nil {
				return out
			}
		}
		c.feed(key.SpecialEvent(key.KeyEscape))
	}
	return out
}
