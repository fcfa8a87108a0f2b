package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/modal/internal/key"
	"github.com/dshills/modal/internal/mode"
	"github.com/dshills/modal/internal/text"
)

// draw renders the buffer and a status line.
func draw(s tcell.Screen, buf *Buffer, pending, message, cmdline string, recording rune) {
	s.Clear()
	width, height := s.Size()
	if height < 2 {
		return
	}

	lines := buf.Lines()
	sel := buf.Selection()
	for y := 0; y < height-1 && y < len(lines); y++ {
		x := 0
		for col, r := range []rune(lines[y]) {
			if x >= width {
				break
			}
			style := tcell.StyleDefault
			if selected(sel, y, col) {
				style = style.Reverse(true)
			}
			s.SetContent(x, y, r, nil, style)
			x += runewidth.RuneWidth(r)
		}
	}

	status := statusLine(buf.Mode(), pending, message, cmdline, recording)
	style := tcell.StyleDefault.Reverse(true)
	x := 0
	for _, r := range status {
		if x >= width {
			break
		}
		s.SetContent(x, height-1, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
	for ; x < width; x++ {
		s.SetContent(x, height-1, ' ', nil, style)
	}

	cur := buf.Cursor()
	s.ShowCursor(cellCol(lines, cur), cur.Line)
	s.Show()
}

// statusLine formats the bottom row.
func statusLine(m mode.Mode, pending, message, cmdline string, recording rune) string {
	if m == mode.CommandLine {
		return ":" + cmdline
	}
	status := fmt.Sprintf(" %s ", m.DisplayName())
	if recording != 0 {
		status += fmt.Sprintf("recording @%c ", recording)
	}
	if pending != "" {
		status += pending + " "
	}
	if message != "" {
		status += "| " + message
	}
	return status
}

// selected reports whether a cell falls inside the selection.
func selected(sel *text.Span, line, col int) bool {
	if sel == nil {
		return false
	}
	p := text.Position{Line: line, Col: col}
	switch sel.Class {
	case text.Linewise:
		return line >= sel.Start.Line && line <= sel.End.Line
	case text.Blockwise:
		return line >= sel.Start.Line && line <= sel.End.Line &&
			col >= sel.Start.Col && col <= sel.End.Col
	default:
		if p.Before(sel.Start) || p.After(sel.End) {
			return false
		}
		return true
	}
}

// cellCol converts a rune column to a screen cell column.
func cellCol(lines []string, p text.Position) int {
	if p.Line < 0 || p.Line >= len(lines) {
		return 0
	}
	x := 0
	for i, r := range []rune(lines[p.Line]) {
		if i >= p.Col {
			break
		}
		x += runewidth.RuneWidth(r)
	}
	return x
}

// convertKey translates a tcell key event into an interpreter event.
// Returns false for events the interpreter does not consume.
func convertKey(ev *tcell.EventKey) (key.Event, bool) {
	switch ev.Key() {
	case tcell.KeyEscape:
		return key.SpecialEvent(key.KeyEscape), true
	case tcell.KeyEnter:
		return key.SpecialEvent(key.KeyEnter), true
	case tcell.KeyTab:
		return key.SpecialEvent(key.KeyTab), true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return key.SpecialEvent(key.KeyBackspace), true
	case tcell.KeyDelete:
		return key.SpecialEvent(key.KeyDelete), true
	case tcell.KeyUp:
		return key.SpecialEvent(key.KeyUp), true
	case tcell.KeyDown:
		return key.SpecialEvent(key.KeyDown), true
	case tcell.KeyLeft:
		return key.SpecialEvent(key.KeyLeft), true
	case tcell.KeyRight:
		return key.SpecialEvent(key.KeyRight), true
	case tcell.KeyRune:
		e := key.RuneEvent(ev.Rune())
		if ev.Modifiers()&tcell.ModAlt != 0 {
			e.Modifiers = e.Modifiers.With(key.ModAlt)
		}
		return e, true
	}

	// Control characters arrive as dedicated tcell keys.
	if ev.Key() >= tcell.KeyCtrlA && ev.Key() <= tcell.KeyCtrlZ {
		r := rune('a' + ev.Key() - tcell.KeyCtrlA)
		return key.Event{Key: key.KeyRune, Rune: r, Modifiers: key.ModCtrl}, true
	}
	return key.Event{}, false
}
