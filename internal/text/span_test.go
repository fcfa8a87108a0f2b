package text

import "testing"

// fakeView is a line-slice View for tests.
type fakeView []string

func (v fakeView) LineCount() int { return len(v) }

func (v fakeView) Line(n int) string {
	if n < 0 || n >= len(v) {
		return ""
	}
	return v[n]
}

func TestPositionCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b Position
		want int
	}{
		{"equal", Position{1, 2}, Position{1, 2}, 0},
		{"earlier line", Position{0, 9}, Position{1, 0}, -1},
		{"later line", Position{2, 0}, Position{1, 9}, 1},
		{"same line earlier col", Position{1, 1}, Position{1, 2}, -1},
		{"same line later col", Position{1, 3}, Position{1, 2}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Compare(tt.b); got != tt.want {
				t.Errorf("Compare = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNewSpanNormalizes(t *testing.T) {
	s := NewSpan(Position{3, 1}, Position{1, 5}, CharExclusive)
	if s.Start != (Position{1, 5}) || s.End != (Position{3, 1}) {
		t.Errorf("span not normalized: %v", s)
	}

	// Blockwise spans order columns independently of lines.
	b := NewSpan(Position{1, 7}, Position{3, 2}, Blockwise)
	if b.Start != (Position{1, 2}) || b.End != (Position{3, 7}) {
		t.Errorf("blockwise span not normalized: %v", b)
	}
}

func TestClamp(t *testing.T) {
	v := fakeView{"hello", "", "ab"}

	tests := []struct {
		name    string
		pos     Position
		onePast bool
		want    Position
	}{
		{"in range", Position{0, 2}, false, Position{0, 2}},
		{"col past end", Position{0, 99}, false, Position{0, 4}},
		{"col one past allowed", Position{0, 99}, true, Position{0, 5}},
		{"empty line", Position{1, 3}, false, Position{1, 0}},
		{"line past end", Position{9, 0}, false, Position{2, 0}},
		{"negative", Position{-1, -1}, false, Position{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(v, tt.pos, tt.onePast); got != tt.want {
				t.Errorf("Clamp(%v) = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}
}

func TestExtract(t *testing.T) {
	v := fakeView{"one two", "three four", "five"}

	tests := []struct {
		name string
		span Span
		want string
	}{
		{
			"charwise exclusive same line",
			Span{Position{0, 0}, Position{0, 3}, CharExclusive},
			"one",
		},
		{
			"charwise inclusive same line",
			Span{Position{0, 4}, Position{0, 6}, CharInclusive},
			"two",
		},
		{
			"charwise across lines",
			Span{Position{0, 4}, Position{1, 5}, CharExclusive},
			"two\nthree",
		},
		{
			"linewise single",
			Span{Position{1, 0}, Position{1, 0}, Linewise},
			"three four\n",
		},
		{
			"linewise multiple",
			Span{Position{0, 0}, Position{1, 0}, Linewise},
			"one two\nthree four\n",
		},
		{
			"blockwise",
			Span{Position{0, 0}, Position{2, 2}, Blockwise},
			"one\nthr\nfiv",
		},
		{
			"blockwise short line",
			Span{Position{0, 5}, Position{2, 6}, Blockwise},
			"wo\n f\n",
		},
		{
			"empty exclusive",
			Span{Position{0, 3}, Position{0, 3}, CharExclusive},
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Extract(v, tt.span); got != tt.want {
				t.Errorf("Extract = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassShape(t *testing.T) {
	tests := []struct {
		class Class
		want  Shape
	}{
		{CharExclusive, ShapeCharwise},
		{CharInclusive, ShapeCharwise},
		{Linewise, ShapeLinewise},
		{Blockwise, ShapeBlockwise},
	}
	for _, tt := range tests {
		if got := tt.class.Shape(); got != tt.want {
			t.Errorf("%v.Shape() = %v, want %v", tt.class, got, tt.want)
		}
	}
}

func TestRuneAt(t *testing.T) {
	v := fakeView{"héllo"}
	if got := RuneAt(v, Position{0, 1}); got != 'é' {
		t.Errorf("RuneAt = %q, want é", got)
	}
	if got := RuneAt(v, Position{0, 9}); got != 0 {
		t.Errorf("RuneAt past end = %q, want 0", got)
	}
	if got := LineLen(v, 0); got != 5 {
		t.Errorf("LineLen = %d, want 5", got)
	}
}
