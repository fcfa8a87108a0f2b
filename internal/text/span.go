package text

import (
	"fmt"
	"strings"
)

// Class categorizes a resolved span and determines how operators
// interpret its boundaries.
type Class uint8

const (
	// CharExclusive covers [Start, End): the end position is not part
	// of the span.
	CharExclusive Class = iota

	// CharInclusive covers [Start, End]: the rune under End is part of
	// the span.
	CharInclusive

	// Linewise covers whole lines from Start.Line through End.Line,
	// including trailing newline semantics.
	Linewise

	// Blockwise covers the rectangular column range
	// [Start.Col, End.Col] on every line from Start.Line to End.Line.
	Blockwise
)

// String returns a human-readable class name.
func (c Class) String() string {
	switch c {
	case CharExclusive:
		return "char-exclusive"
	case CharInclusive:
		return "char-inclusive"
	case Linewise:
		return "linewise"
	case Blockwise:
		return "blockwise"
	default:
		return "unknown"
	}
}

// Shape returns the register shape for content produced from a span of
// this class.
func (c Class) Shape() Shape {
	switch c {
	case Linewise:
		return ShapeLinewise
	case Blockwise:
		return ShapeBlockwise
	default:
		return ShapeCharwise
	}
}

// Shape tags register content with its paste semantics.
type Shape uint8

const (
	// ShapeCharwise content is inserted at the cursor position.
	ShapeCharwise Shape = iota

	// ShapeLinewise content is inserted as whole lines.
	ShapeLinewise

	// ShapeBlockwise content is inserted as a column block, one piece
	// per line.
	ShapeBlockwise
)

// String returns a human-readable shape name.
func (s Shape) String() string {
	switch s {
	case ShapeCharwise:
		return "charwise"
	case ShapeLinewise:
		return "linewise"
	case ShapeBlockwise:
		return "blockwise"
	default:
		return "unknown"
	}
}

// Span is a resolved region of the buffer.
// Spans are normalized: Start is never after End in document order.
type Span struct {
	Start Position
	End   Position
	Class Class
}

// NewSpan creates a normalized span from two positions in either order.
func NewSpan(a, b Position, class Class) Span {
	if a.After(b) {
		a, b = b, a
	}
	// Blockwise spans additionally order columns independent of lines.
	if class == Blockwise && a.Col > b.Col {
		a.Col, b.Col = b.Col, a.Col
	}
	return Span{Start: a, End: b, Class: class}
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	return fmt.Sprintf("%s..%s %s", s.Start, s.End, s.Class)
}

// IsEmpty returns true if the span covers no content.
func (s Span) IsEmpty() bool {
	switch s.Class {
	case CharExclusive:
		return s.Start == s.End
	default:
		return false
	}
}

// Extract returns the text the span covers in v, in register form:
// charwise spans yield the exact rune range, linewise spans yield the
// covered lines each followed by a newline, and blockwise spans yield
// one column slice per line joined by newlines.
func Extract(v View, s Span) string {
	switch s.Class {
	case Linewise:
		var b strings.Builder
		for n := s.Start.Line; n <= s.End.Line && n < v.LineCount(); n++ {
			b.WriteString(v.Line(n))
			b.WriteByte('\n')
		}
		return b.String()

	case Blockwise:
		pieces := make([]string, 0, s.End.Line-s.Start.Line+1)
		for n := s.Start.Line; n <= s.End.Line && n < v.LineCount(); n++ {
			pieces = append(pieces, sliceCols(v.Line(n), s.Start.Col, s.End.Col))
		}
		return strings.Join(pieces, "\n")

	default:
		end := s.End
		if s.Class == CharInclusive {
			end.Col++
		}
		return extractCharwise(v, s.Start, end)
	}
}

// extractCharwise returns the text between start (inclusive) and end
// (exclusive) in rune coordinates, with newlines between lines.
func extractCharwise(v View, start, end Position) string {
	if start.Line == end.Line {
		runes := LineRunes(v, start.Line)
		lo, hi := clampRange(start.Col, end.Col, len(runes))
		return string(runes[lo:hi])
	}

	var b strings.Builder
	first := LineRunes(v, start.Line)
	lo := start.Col
	if lo > len(first) {
		lo = len(first)
	}
	b.WriteString(string(first[lo:]))
	b.WriteByte('\n')
	for n := start.Line + 1; n < end.Line && n < v.LineCount(); n++ {
		b.WriteString(v.Line(n))
		b.WriteByte('\n')
	}
	if end.Line < v.LineCount() {
		last := LineRunes(v, end.Line)
		hi := end.Col
		if hi > len(last) {
			hi = len(last)
		}
		b.WriteString(string(last[:hi]))
	}
	return b.String()
}

// sliceCols returns the rune range [lo, hi] of a line, tolerating lines
// shorter than the block.
func sliceCols(line string, lo, hi int) string {
	runes := []rune(line)
	if lo >= len(runes) {
		return ""
	}
	end := hi + 1
	if end > len(runes) {
		end = len(runes)
	}
	return string(runes[lo:end])
}

func clampRange(lo, hi, n int) (int, int) {
	if lo < 0 {
		lo = 0
	}
	if hi > n {
		hi = n
	}
	if lo > hi {
		lo = hi
	}
	return lo, hi
}
