package textobj

import (
	"testing"

	"github.com/dshills/modal/internal/text"
)

// fakeView is a line-slice View for tests.
type fakeView []string

func (v fakeView) LineCount() int { return len(v) }

func (v fakeView) Line(n int) string {
	if n < 0 || n >= len(v) {
		return ""
	}
	return v[n]
}

func span(t *testing.T, v text.View, pos text.Position, obj *Object, scope Scope) text.Span {
	t.Helper()
	s, ok := Resolve(v, pos, obj, scope)
	if !ok {
		t.Fatalf("%s %s did not resolve at %v", scope, obj.Name, pos)
	}
	return s
}

func TestWordObject(t *testing.T) {
	v := fakeView{"one  two-three"}

	tests := []struct {
		name       string
		pos        int
		obj        *Object
		scope      Scope
		start, end int
	}{
		{"iw mid word", 1, &Word, Inner, 0, 2},
		{"iw on whitespace", 3, &Word, Inner, 3, 4},
		{"iw on punctuation", 8, &Word, Inner, 8, 8},
		{"aw takes trailing space", 0, &Word, Around, 0, 4},
		{"aw takes leading space when no trailing", 6, &Word, Around, 3, 7},
		{"iW over punctuation", 6, &WORD, Inner, 5, 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := span(t, v, text.Position{Line: 0, Col: tt.pos}, tt.obj, tt.scope)
			if s.Start.Col != tt.start || s.End.Col != tt.end {
				t.Errorf("cols = %d..%d, want %d..%d", s.Start.Col, s.End.Col, tt.start, tt.end)
			}
			if s.Class != text.CharInclusive {
				t.Errorf("class = %v, want char-inclusive", s.Class)
			}
		})
	}
}

func TestQuoteObject(t *testing.T) {
	v := fakeView{`say "hello world" end`}

	s := span(t, v, text.Position{Line: 0, Col: 8}, &DoubleQuote, Inner)
	if got := text.Extract(v, s); got != "hello world" {
		t.Errorf("i\" = %q", got)
	}

	s = span(t, v, text.Position{Line: 0, Col: 8}, &DoubleQuote, Around)
	if got := text.Extract(v, s); got != `"hello world" ` {
		t.Errorf("a\" = %q", got)
	}

	// Cursor before the opening quote still selects the first pair.
	s = span(t, v, text.Position{Line: 0, Col: 0}, &DoubleQuote, Inner)
	if got := text.Extract(v, s); got != "hello world" {
		t.Errorf("i\" before quote = %q", got)
	}

	// A lone quote is no object.
	if _, ok := Resolve(fakeView{`just one " here`}, text.Position{Line: 0, Col: 0}, &DoubleQuote, Inner); ok {
		t.Error("unpaired quote resolved")
	}
}

func TestEmptyQuoteInner(t *testing.T) {
	v := fakeView{`x "" y`}
	s := span(t, v, text.Position{Line: 0, Col: 2}, &DoubleQuote, Inner)
	if !s.IsEmpty() {
		t.Errorf("inner of empty quotes = %v, want empty span", s)
	}
}

func TestPairObject(t *testing.T) {
	v := fakeView{"f(a, (b), c)"}

	s := span(t, v, text.Position{Line: 0, Col: 6}, &Paren, Inner)
	if got := text.Extract(v, s); got != "b" {
		t.Errorf("inner nested = %q", got)
	}

	s = span(t, v, text.Position{Line: 0, Col: 3}, &Paren, Inner)
	if got := text.Extract(v, s); got != "a, (b), c" {
		t.Errorf("inner outer = %q", got)
	}

	s = span(t, v, text.Position{Line: 0, Col: 3}, &Paren, Around)
	if got := text.Extract(v, s); got != "(a, (b), c)" {
		t.Errorf("around outer = %q", got)
	}

	if _, ok := Resolve(v, text.Position{Line: 0, Col: 0}, &Brace, Inner); ok {
		t.Error("missing pair resolved")
	}
}

func TestPairObjectMultiline(t *testing.T) {
	v := fakeView{"if x {", "\tbody", "}"}

	s := span(t, v, text.Position{Line: 1, Col: 2}, &Brace, Inner)
	if got := text.Extract(v, s); got != "\tbody" {
		t.Errorf("i{ = %q", got)
	}

	s = span(t, v, text.Position{Line: 1, Col: 2}, &Brace, Around)
	if s.Start != (text.Position{Line: 0, Col: 5}) || s.End != (text.Position{Line: 2, Col: 0}) {
		t.Errorf("a{ = %v", s)
	}
}

func TestParagraphObject(t *testing.T) {
	v := fakeView{"one", "two", "", "", "three"}

	s := span(t, v, text.Position{Line: 0, Col: 0}, &Paragraph, Inner)
	if s.Class != text.Linewise || s.Start.Line != 0 || s.End.Line != 1 {
		t.Errorf("ip = %v", s)
	}

	// ap swallows the trailing blank run.
	s = span(t, v, text.Position{Line: 0, Col: 0}, &Paragraph, Around)
	if s.Start.Line != 0 || s.End.Line != 3 {
		t.Errorf("ap = %v", s)
	}

	// On a blank run, inner selects the run itself.
	s = span(t, v, text.Position{Line: 2, Col: 0}, &Paragraph, Inner)
	if s.Start.Line != 2 || s.End.Line != 3 {
		t.Errorf("ip on blank = %v", s)
	}
}

func TestSentenceObject(t *testing.T) {
	v := fakeView{"First one. Second two. Third."}

	s := span(t, v, text.Position{Line: 0, Col: 13}, &Sentence, Inner)
	if got := text.Extract(v, s); got != "Second two." {
		t.Errorf("is = %q", got)
	}

	s = span(t, v, text.Position{Line: 0, Col: 13}, &Sentence, Around)
	if got := text.Extract(v, s); got != "Second two. " {
		t.Errorf("as = %q", got)
	}
}

func TestTagObject(t *testing.T) {
	v := fakeView{`<div class="x">inner text</div>`}

	s := span(t, v, text.Position{Line: 0, Col: 18}, &Tag, Inner)
	if got := text.Extract(v, s); got != "inner text" {
		t.Errorf("it = %q", got)
	}

	s = span(t, v, text.Position{Line: 0, Col: 18}, &Tag, Around)
	if got := text.Extract(v, s); got != `<div class="x">inner text</div>` {
		t.Errorf("at = %q", got)
	}

	if _, ok := Resolve(fakeView{"no tags"}, text.Position{Line: 0, Col: 0}, &Tag, Inner); ok {
		t.Error("tagless line resolved")
	}
}

func TestGetLookups(t *testing.T) {
	tests := []struct {
		key  rune
		want *Object
	}{
		{'w', &Word},
		{'(', &Paren},
		{')', &Paren},
		{'b', &Paren},
		{'B', &Brace},
		{'"', &DoubleQuote},
		{'t', &Tag},
	}
	for _, tt := range tests {
		if got := Get(tt.key); got != tt.want {
			t.Errorf("Get(%c) = %v, want %v", tt.key, got, tt.want)
		}
	}
	if Get('z') != nil {
		t.Error("Get(z) should be nil")
	}

	if !IsPrefix('i') || !IsPrefix('a') || IsPrefix('x') {
		t.Error("IsPrefix misclassifies")
	}
	if ScopeFor('i') != Inner || ScopeFor('a') != Around {
		t.Error("ScopeFor misclassifies")
	}
}
