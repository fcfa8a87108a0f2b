package text

import "fmt"

// Position represents a line and column in a buffer.
// Both are 0-indexed; Col is measured in runes from the line start.
type Position struct {
	Line int
	Col  int
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Col)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other in
// document order.
func (p Position) Compare(other Position) int {
	if p.Line != other.Line {
		if p.Line < other.Line {
			return -1
		}
		return 1
	}
	if p.Col != other.Col {
		if p.Col < other.Col {
			return -1
		}
		return 1
	}
	return 0
}

// Before returns true if p comes before other in document order.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other in document order.
func (p Position) After(other Position) bool {
	return p.Compare(other) > 0
}

// View provides read-only access to buffer content.
// Implementations must be stable for the duration of a single event;
// the interpreter re-reads a fresh view on every event.
type View interface {
	// LineCount returns the number of lines in the buffer.
	// An empty buffer has one empty line.
	LineCount() int

	// Line returns the text of line n without its trailing newline.
	// Out-of-range lines return the empty string.
	Line(n int) string
}

// Clamp constrains a position to valid buffer coordinates.
// The column may rest one past the last rune (the insert position at
// end of line) when onePast is true; otherwise it is clamped onto the
// last rune as Normal-mode cursors require.
func Clamp(v View, p Position, onePast bool) Position {
	last := v.LineCount() - 1
	if last < 0 {
		return Position{}
	}
	if p.Line < 0 {
		p.Line = 0
	}
	if p.Line > last {
		p.Line = last
	}
	n := LineLen(v, p.Line)
	max := n
	if !onePast {
		max = n - 1
	}
	if max < 0 {
		max = 0
	}
	if p.Col < 0 {
		p.Col = 0
	}
	if p.Col > max {
		p.Col = max
	}
	return p
}

// LineLen returns the rune length of line n.
func LineLen(v View, n int) int {
	return len([]rune(v.Line(n)))
}

// LineRunes returns line n as a rune slice.
func LineRunes(v View, n int) []rune {
	return []rune(v.Line(n))
}

// RuneAt returns the rune under the position, or 0 when the position
// is past the end of its line.
func RuneAt(v View, p Position) rune {
	runes := LineRunes(v, p.Line)
	if p.Col < 0 || p.Col >= len(runes) {
		return 0
	}
	return runes[p.Col]
}
