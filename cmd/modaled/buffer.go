package main

import (
	"os"
	"strings"
	"sync"

	"github.com/dshills/modal/internal/host"
	"github.com/dshills/modal/internal/mode"
	"github.com/dshills/modal/internal/text"
)

// Buffer is an in-memory slice-of-lines document implementing the host
// adapter. It owns the editor-side state the interpreter never
// touches: content, cursor, selection, and the action table.
type Buffer struct {
	mu      sync.Mutex
	path    string
	lines   []string
	cursor  text.Position
	sel     *text.Span
	mode    mode.Mode
	actions map[string]host.ActionFunc
}

// NewBuffer creates a buffer from lines; an empty document gets one
// empty line.
func NewBuffer(path string, lines []string) *Buffer {
	if len(lines) == 0 {
		lines = []string{""}
	}
	return &Buffer{
		path:    path,
		lines:   lines,
		mode:    mode.Normal,
		actions: make(map[string]host.ActionFunc),
	}
}

// sliceView is an immutable line snapshot satisfying text.View.
type sliceView []string

func (v sliceView) LineCount() int { return len(v) }

func (v sliceView) Line(n int) string {
	if n < 0 || n >= len(v) {
		return ""
	}
	return v[n]
}

// ReadSnapshot returns the current state. The view is a copy so the
// interpreter's reads stay stable if the buffer mutates mid-event.
func (b *Buffer) ReadSnapshot(string) (host.Snapshot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	view := make(sliceView, len(b.lines))
	copy(view, b.lines)
	return host.Snapshot{View: view, Cursor: b.cursor, Selection: b.sel}, nil
}

// SubmitEdit applies an edit request. Spans are applied bottom-up so
// earlier replacements cannot shift later coordinates.
func (b *Buffer) SubmitEdit(_ string, req host.EditRequest) (host.EditResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	pieces := []string{req.Text}
	if req.Shape == text.ShapeBlockwise {
		pieces = strings.Split(req.Text, "\n")
	}

	for i := len(req.Spans) - 1; i >= 0; i-- {
		piece := req.Text
		if req.Shape == text.ShapeBlockwise {
			if i < len(pieces) {
				piece = pieces[i]
			} else {
				piece = ""
			}
		}
		b.applySpan(req.Spans[i], piece)
	}
	if len(b.lines) == 0 {
		b.lines = []string{""}
	}

	b.cursor = b.clamp(b.cursor)
	b.sel = nil
	return host.EditResult{Cursor: b.cursor}, nil
}

// applySpan replaces one span with replacement text.
func (b *Buffer) applySpan(span text.Span, piece string) {
	if span.Class == text.Linewise {
		start, end := span.Start.Line, span.End.Line
		if start < 0 {
			start = 0
		}
		if end >= len(b.lines) {
			end = len(b.lines) - 1
		}
		if start > end {
			return
		}
		b.lines = splice(b.lines, start, end+1, splitLines(piece))
		return
	}

	startCol := span.Start.Col
	endLine, endCol := span.End.Line, span.End.Col
	if span.Class == text.CharInclusive {
		endCol++
	}
	if span.Start.Line >= len(b.lines) {
		return
	}
	if endLine >= len(b.lines) {
		endLine = len(b.lines) - 1
		endCol = len([]rune(b.lines[endLine]))
	}

	startRunes := []rune(b.lines[span.Start.Line])
	endRunes := []rune(b.lines[endLine])
	if startCol > len(startRunes) {
		startCol = len(startRunes)
	}
	if endCol > len(endRunes) {
		endCol = len(endRunes)
	}

	merged := string(startRunes[:startCol]) + piece + string(endRunes[endCol:])
	b.lines = splice(b.lines, span.Start.Line, endLine+1, strings.Split(merged, "\n"))
}

// SubmitSelection moves the cursor and selection.
func (b *Buffer) SubmitSelection(_ string, req host.SelectionRequest) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursor = b.clamp(req.Cursor)
	b.sel = req.Selection
	return nil
}

// NotifyModeChanged records the mode for the status line.
func (b *Buffer) NotifyModeChanged(_ string, m mode.Mode) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mode = m
}

// RegisterAction stores a named interpreter operation.
func (b *Buffer) RegisterAction(name string, fn host.ActionFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.actions[name] = fn
}

// Mode returns the last notified mode.
func (b *Buffer) Mode() mode.Mode {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mode
}

// Cursor returns the cursor position.
func (b *Buffer) Cursor() text.Position {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursor
}

// Selection returns the active selection, or nil.
func (b *Buffer) Selection() *text.Span {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sel
}

// Lines returns a copy of the content.
func (b *Buffer) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// Save writes the content back to the file.
func (b *Buffer) Save() error {
	b.mu.Lock()
	content := strings.Join(b.lines, "\n") + "\n"
	path := b.path
	b.mu.Unlock()
	if path == "" {
		return nil
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

// clamp keeps the cursor inside the document. Insert and Replace
// allow the one-past-end-of-line column.
func (b *Buffer) clamp(p text.Position) text.Position {
	if p.Line < 0 {
		p.Line = 0
	}
	if p.Line >= len(b.lines) {
		p.Line = len(b.lines) - 1
	}
	max := len([]rune(b.lines[p.Line]))
	if b.mode != mode.Insert && b.mode != mode.Replace && max > 0 {
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

// splice replaces lines[from:to] with repl.
func splice(lines []string, from, to int, repl []string) []string {
	out := make([]string, 0, len(lines)-(to-from)+len(repl))
	out = append(out, lines[:from]...)
	out = append(out, repl...)
	out = append(out, lines[to:]...)
	return out
}

// splitLines splits linewise replacement text into lines; empty text
// means pure deletion.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
