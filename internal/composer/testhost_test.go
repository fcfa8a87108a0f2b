package composer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dshills/modal/internal/host"
	"github.com/dshills/modal/internal/key"
	"github.com/dshills/modal/internal/mode"
	"github.com/dshills/modal/internal/text"
)

// editor is an in-memory host adapter for composer tests. It applies
// edits the way a real host would: spans bottom-up against the
// snapshot coordinates.
type editor struct {
	lines   []string
	cursor  text.Position
	sel     *text.Span
	mode    mode.Mode
	actions map[string]host.ActionFunc

	// reject makes SubmitEdit decline with host.ErrRejected.
	reject bool

	edits int
}

type sliceView []string

func (v sliceView) LineCount() int { return len(v) }

func (v sliceView) Line(n int) string {
	if n < 0 || n >= len(v) {
		return ""
	}
	return v[n]
}

func newEditor(lines ...string) *editor {
	if len(lines) == 0 {
		lines = []string{""}
	}
	return &editor{lines: lines, actions: make(map[string]host.ActionFunc)}
}

func (e *editor) ReadSnapshot(string) (host.Snapshot, error) {
	view := make(sliceView, len(e.lines))
	copy(view, e.lines)
	return host.Snapshot{View: view, Cursor: e.cursor, Selection: e.sel}, nil
}

func (e *editor) SubmitEdit(_ string, req host.EditRequest) (host.EditResult, error) {
	if e.reject {
		return host.EditResult{}, fmt.Errorf("%w: read-only", host.ErrRejected)
	}
	e.edits++

	pieces := []string{req.Text}
	if req.Shape == text.ShapeBlockwise {
		pieces = strings.Split(req.Text, "\n")
	}
	for i := len(req.Spans) - 1; i >= 0; i-- {
		piece := req.Text
		if req.Shape == text.ShapeBlockwise {
			piece = ""
			if i < len(pieces) {
				piece = pieces[i]
			}
		}
		e.applySpan(req.Spans[i], piece)
	}
	if len(e.lines) == 0 {
		e.lines = []string{""}
	}
	e.cursor = e.clamp(e.cursor)
	e.sel = nil
	return host.EditResult{Cursor: e.cursor}, nil
}

func (e *editor) applySpan(span text.Span, piece string) {
	if span.Class == text.Linewise {
		start, end := span.Start.Line, span.End.Line
		if start < 0 {
			start = 0
		}
		if end >= len(e.lines) {
			end = len(e.lines) - 1
		}
		if start > end {
			return
		}
		var repl []string
		if piece != "" {
			repl = strings.Split(strings.TrimSuffix(piece, "\n"), "\n")
		}
		e.lines = append(e.lines[:start], append(repl, e.lines[end+1:]...)...)
		return
	}

	startCol := span.Start.Col
	endLine, endCol := span.End.Line, span.End.Col
	if span.Class == text.CharInclusive {
		endCol++
	}
	if span.Start.Line >= len(e.lines) {
		return
	}
	if endLine >= len(e.lines) {
		endLine = len(e.lines) - 1
		endCol = len([]rune(e.lines[endLine]))
	}

	startRunes := []rune(e.lines[span.Start.Line])
	endRunes := []rune(e.lines[endLine])
	if startCol > len(startRunes) {
		startCol = len(startRunes)
	}
	if endCol > len(endRunes) {
		endCol = len(endRunes)
	}
	merged := string(startRunes[:startCol]) + piece + string(endRunes[endCol:])
	e.lines = append(e.lines[:span.Start.Line],
		append(strings.Split(merged, "\n"), e.lines[endLine+1:]...)...)
}

func (e *editor) SubmitSelection(_ string, req host.SelectionRequest) error {
	e.cursor = e.clamp(req.Cursor)
	e.sel = req.Selection
	return nil
}

func (e *editor) NotifyModeChanged(_ string, m mode.Mode) {
	e.mode = m
}

func (e *editor) RegisterAction(name string, fn host.ActionFunc) {
	e.actions[name] = fn
}

func (e *editor) clamp(p text.Position) text.Position {
	if p.Line < 0 {
		p.Line = 0
	}
	if p.Line >= len(e.lines) {
		p.Line = len(e.lines) - 1
	}
	max := len([]rune(e.lines[p.Line]))
	if e.mode != mode.Insert && e.mode != mode.Replace && max > 0 {
		max--
	}
	if p.Col > max {
		p.Col = max
	}
	if p.Col < 0 {
		p.Col = 0
	}
	return p
}

func (e *editor) text() string {
	return strings.Join(e.lines, "\n")
}

// newTestComposer wires a composer to a fresh editor.
func newTestComposer(lines ...string) (*Composer, *editor) {
	ed := newEditor(lines...)
	c := New(ed, "test", nil, nil, nil)
	return c, ed
}

// feedString replays a key notation string through the composer and
// returns the last outcome.
func feedString(t *testing.T, c *Composer, s string) Outcome {
	t.Helper()
	events, err := key.ParseSequence(s)
	if err != nil {
		t.Fatalf("ParseSequence(%q): %v", s, err)
	}
	var out Outcome
	for _, ev := range events {
		out = c.Feed(ev)
	}
	return out
}
