package composer

import (
	"strings"

	"github.com/dshills/modal/internal/host"
	"github.com/dshills/modal/internal/text"
)

// put pastes a register at the cursor. before selects P placement.
// The register's shape decides how the content lands: charwise splices
// into the line, linewise opens whole lines, blockwise inserts one
// piece per covered line at the same column.
func (c *Composer) put(snap host.Snapshot, reg rune, count int, before bool) Outcome {
	name := reg
	if name == 0 {
		name = '"'
	}
	entry := c.registers.Get(name)
	if entry.Content == "" {
		c.discardChange()
		return Outcome{Kind: OutcomeCancelled, Mode: c.mode}
	}

	cur := snap.Cursor
	lineLen := text.LineLen(snap.View, cur.Line)

	var req host.EditRequest
	var after text.Position

	switch entry.Shape {
	case text.ShapeLinewise:
		content := strings.Repeat(entry.Content, count)
		if before {
			at := text.Position{Line: cur.Line, Col: 0}
			req = host.EditRequest{
				Spans: []text.Span{{Start: at, End: at, Class: text.CharExclusive}},
				Text:  content,
				Shape: text.ShapeLinewise,
			}
			after = text.Position{Line: cur.Line, Col: firstNonBlankCol(firstLine(content))}
		} else if cur.Line+1 < snap.View.LineCount() {
			at := text.Position{Line: cur.Line + 1, Col: 0}
			req = host.EditRequest{
				Spans: []text.Span{{Start: at, End: at, Class: text.CharExclusive}},
				Text:  content,
				Shape: text.ShapeLinewise,
			}
			after = text.Position{Line: cur.Line + 1, Col: firstNonBlankCol(firstLine(content))}
		} else {
			// Below the last line there is no line start to splice at;
			// open the lines with a leading break instead.
			at := text.Position{Line: cur.Line, Col: lineLen}
			req = host.EditRequest{
				Spans: []text.Span{{Start: at, End: at, Class: text.CharExclusive}},
				Text:  "\n" + strings.TrimSuffix(content, "\n"),
				Shape: text.ShapeLinewise,
			}
			after = text.Position{Line: cur.Line + 1, Col: firstNonBlankCol(firstLine(content))}
		}

	case text.ShapeBlockwise:
		pieces := strings.Split(entry.Content, "\n")
		col := cur.Col
		if !before && lineLen > 0 {
			col++
		}
		var spans []text.Span
		var used []string
		for i, piece := range pieces {
			line := cur.Line + i
			if line >= snap.View.LineCount() {
				break
			}
			at := col
			if l := text.LineLen(snap.View, line); at > l {
				at = l
			}
			p := text.Position{Line: line, Col: at}
			spans = append(spans, text.Span{Start: p, End: p, Class: text.CharExclusive})
			used = append(used, strings.Repeat(piece, count))
		}
		if len(spans) == 0 {
			c.discardChange()
			return Outcome{Kind: OutcomeCancelled, Mode: c.mode}
		}
		req = host.EditRequest{
			Spans: spans,
			Text:  strings.Join(used, "\n"),
			Shape: text.ShapeBlockwise,
		}
		after = text.Position{Line: cur.Line, Col: spans[0].Start.Col}

	default:
		txt := strings.Repeat(entry.Content, count)
		at := cur
		if !before && lineLen > 0 {
			at.Col++
		}
		if at.Col > lineLen {
			at.Col = lineLen
		}
		req = host.EditRequest{
			Spans: []text.Span{{Start: at, End: at, Class: text.CharExclusive}},
			Text:  txt,
			Shape: text.ShapeCharwise,
		}
		after = putCharCursor(at, txt)
	}

	if _, err := c.submitEdit(req); err != nil {
		c.discardChange()
		out := cancelled(c.mode, err)
		if hostRejected(err) {
			out.Message = err.Error()
		}
		return out
	}
	if err := c.moveCursor(after); err != nil {
		return cancelled(c.mode, err)
	}
	c.commitChange()
	return dispatched(c.mode)
}

// putCharCursor places the cursor on the last pasted character for a
// single-line charwise put, or at the paste point otherwise.
func putCharCursor(at text.Position, txt string) text.Position {
	if strings.Contains(txt, "\n") {
		return at
	}
	n := len([]rune(txt))
	if n == 0 {
		return at
	}
	return text.Position{Line: at.Line, Col: at.Col + n - 1}
}

// firstLine returns the content up to the first line break.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
