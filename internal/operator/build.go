package operator

import (
	"strings"
	"unicode"

	"github.com/dshills/modal/internal/host"
	"github.com/dshills/modal/internal/register"
	"github.com/dshills/modal/internal/text"
)

// Edit is the concrete result of combining an operator with a span.
type Edit struct {
	// Request is the mutation to submit, empty for yank.
	Request host.EditRequest

	// Mutates indicates Request should be submitted.
	Mutates bool

	// Cursor is the proposed post-edit cursor position.
	Cursor text.Position

	// Capture is the register content produced by the span, valid when
	// the operator writes registers.
	Capture register.Entry

	// Small marks a charwise, single-line delete for the - register.
	Small bool
}

// Build combines an operator with a resolved span against a view.
// shiftWidth configures indent and outdent.
func Build(v text.View, op *Operator, span text.Span, shiftWidth int) Edit {
	e := Edit{Cursor: span.Start}

	if op.WritesRegister {
		e.Capture = register.Entry{
			Content: text.Extract(v, span),
			Shape:   span.Class.Shape(),
		}
	}

	switch op.Kind {
	case Yank:
		if span.Class == text.Linewise {
			e.Cursor = text.Position{Line: span.Start.Line, Col: 0}
		}
		return e

	case Delete, Change:
		e.Mutates = true
		e.Small = span.Class != text.Linewise && span.Start.Line == span.End.Line
		e.Request = host.EditRequest{
			Spans: requestSpans(v, span),
			Shape: span.Class.Shape(),
		}
		if op.Kind == Change && span.Class == text.Linewise {
			// Change keeps one empty line for the insert to land on.
			e.Request.Text = "\n"
			e.Cursor = text.Position{Line: span.Start.Line, Col: 0}
		}
		if op.Kind == Delete && span.Class == text.Linewise {
			line := span.Start.Line
			if last := v.LineCount() - 1 - (span.End.Line - span.Start.Line + 1); line > last && last >= 0 {
				line = last
			}
			if line < 0 {
				line = 0
			}
			e.Cursor = text.Position{Line: line, Col: 0}
		}
		return e

	case Indent, Outdent:
		lines := coveredLines(span)
		out := make([]string, 0, lines.end-lines.start+1)
		for n := lines.start; n <= lines.end && n < v.LineCount(); n++ {
			out = append(out, shiftLine(v.Line(n), shiftWidth, op.Kind == Indent))
		}
		e.Mutates = true
		e.Request = host.EditRequest{
			Spans: []text.Span{{
				Start: text.Position{Line: lines.start},
				End:   text.Position{Line: lines.end},
				Class: text.Linewise,
			}},
			Text:  strings.Join(out, "\n") + "\n",
			Shape: text.ShapeLinewise,
		}
		e.Cursor = text.Position{Line: lines.start, Col: firstNonBlank(out[0])}
		return e

	case Lower, Upper, ToggleCase:
		e.Mutates = true
		e.Request = host.EditRequest{
			Spans: requestSpans(v, span),
			Text:  transformCase(text.Extract(v, span), op.Kind),
			Shape: span.Class.Shape(),
		}
		return e

	default:
		return Edit{Cursor: span.Start}
	}
}

// requestSpans converts a span into the spans of an EditRequest:
// blockwise splits per line, everything else travels whole.
func requestSpans(v text.View, span text.Span) []text.Span {
	if span.Class != text.Blockwise {
		return []text.Span{span}
	}
	spans := make([]text.Span, 0, span.End.Line-span.Start.Line+1)
	for n := span.Start.Line; n <= span.End.Line && n < v.LineCount(); n++ {
		spans = append(spans, text.Span{
			Start: text.Position{Line: n, Col: span.Start.Col},
			End:   text.Position{Line: n, Col: span.End.Col},
			Class: text.CharInclusive,
		})
	}
	return spans
}

type lineRange struct {
	start, end int
}

// coveredLines returns the whole-line range a span touches.
func coveredLines(span text.Span) lineRange {
	return lineRange{start: span.Start.Line, end: span.End.Line}
}

// shiftLine indents or outdents a single line by width spaces.
// Blank lines are left untouched on indent.
func shiftLine(line string, width int, in bool) string {
	if width <= 0 {
		width = 4
	}
	if in {
		if strings.TrimSpace(line) == "" {
			return line
		}
		return strings.Repeat(" ", width) + line
	}
	removed := 0
	for removed < width && removed < len(line) {
		c := line[removed]
		if c == '\t' {
			removed++
			break
		}
		if c != ' ' {
			break
		}
		removed++
	}
	return line[removed:]
}

// transformCase applies a case operator to captured text.
func transformCase(s string, kind EditKind) string {
	switch kind {
	case Lower:
		return strings.ToLower(s)
	case Upper:
		return strings.ToUpper(s)
	case ToggleCase:
		return strings.Map(func(r rune) rune {
			switch {
			case unicode.IsUpper(r):
				return unicode.ToLower(r)
			case unicode.IsLower(r):
				return unicode.ToUpper(r)
			default:
				return r
			}
		}, s)
	default:
		return s
	}
}

// firstNonBlank returns the column of the first non-blank rune, or 0.
func firstNonBlank(line string) int {
	for i, r := range []rune(line) {
		if !unicode.IsSpace(r) {
			return i
		}
	}
	return 0
}
