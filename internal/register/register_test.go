package register

import (
	"testing"

	"github.com/dshills/modal/internal/text"
)

func charwise(s string) Entry {
	return Entry{Content: s, Shape: text.ShapeCharwise}
}

func linewise(s string) Entry {
	return Entry{Content: s, Shape: text.ShapeLinewise}
}

func TestSetGet(t *testing.T) {
	s := NewStore()

	s.Set('a', charwise("alpha"))
	if got := s.Get('a'); got.Content != "alpha" {
		t.Errorf("Get(a) = %q, want alpha", got.Content)
	}
	// Uppercase reads the lowercase register.
	if got := s.Get('A'); got.Content != "alpha" {
		t.Errorf("Get(A) = %q, want alpha", got.Content)
	}
}

func TestUppercaseAppend(t *testing.T) {
	s := NewStore()

	s.Set('a', charwise("one"))
	s.Set('A', charwise(" two"))
	if got := s.Get('a'); got.Content != "one two" {
		t.Errorf("append = %q, want %q", got.Content, "one two")
	}

	// Linewise content carries its newline, so appends stay line-shaped.
	s.Set('b', linewise("first\n"))
	s.Set('B', linewise("second\n"))
	got := s.Get('b')
	if got.Content != "first\nsecond\n" {
		t.Errorf("linewise append = %q", got.Content)
	}
	if got.Shape != text.ShapeLinewise {
		t.Errorf("shape = %v, want linewise", got.Shape)
	}

	// Appending to an empty register adopts the incoming shape.
	s.Set('C', linewise("only\n"))
	if got := s.Get('c'); got.Shape != text.ShapeLinewise {
		t.Errorf("shape after append to empty = %v", got.Shape)
	}
}

func TestBlackHole(t *testing.T) {
	s := NewStore()
	s.Set('_', charwise("gone"))
	if got := s.Get('_'); got.Content != "" {
		t.Errorf("black hole kept %q", got.Content)
	}
}

func TestRecordYank(t *testing.T) {
	s := NewStore()
	s.RecordDelete(linewise("old\n"), false)

	s.RecordYank(charwise("yanked"))
	if got := s.Get('0'); got.Content != "yanked" {
		t.Errorf("register 0 = %q", got.Content)
	}
	if got := s.Get('"'); got.Content != "yanked" {
		t.Errorf("unnamed = %q", got.Content)
	}
	// Yanks never touch the numbered history.
	if got := s.Get('1'); got.Content != "old\n" {
		t.Errorf("register 1 = %q, want old delete", got.Content)
	}
}

func TestRecordDeleteShiftsHistory(t *testing.T) {
	s := NewStore()
	s.RecordDelete(linewise("first\n"), false)
	s.RecordDelete(linewise("second\n"), false)
	s.RecordDelete(linewise("third\n"), false)

	wants := map[rune]string{
		'1': "third\n",
		'2': "second\n",
		'3': "first\n",
		'"': "third\n",
	}
	for name, want := range wants {
		if got := s.Get(name); got.Content != want {
			t.Errorf("register %c = %q, want %q", name, got.Content, want)
		}
	}
}

func TestRecordDeleteHistoryDepth(t *testing.T) {
	s := NewStore()
	for i := 0; i < 12; i++ {
		s.RecordDelete(linewise(string(rune('a'+i))+"\n"), false)
	}
	// Newest in 1, the three oldest fell off the end.
	if got := s.Get('1'); got.Content != "l\n" {
		t.Errorf("register 1 = %q", got.Content)
	}
	if got := s.Get('9'); got.Content != "d\n" {
		t.Errorf("register 9 = %q", got.Content)
	}
}

func TestSmallDelete(t *testing.T) {
	s := NewStore()
	s.RecordDelete(linewise("big\n"), false)

	s.RecordDelete(charwise("x"), true)
	if got := s.Get('-'); got.Content != "x" {
		t.Errorf("small delete register = %q", got.Content)
	}
	if got := s.Get('"'); got.Content != "x" {
		t.Errorf("unnamed = %q", got.Content)
	}
	// Small deletes leave the numbered history alone.
	if got := s.Get('1'); got.Content != "big\n" {
		t.Errorf("register 1 = %q, want big delete", got.Content)
	}
}

func TestRecordInsertedAndCommand(t *testing.T) {
	s := NewStore()
	s.RecordInserted("typed")
	if got := s.Get('.'); got.Content != "typed" {
		t.Errorf("dot register = %q", got.Content)
	}
	s.RecordCommand("%s/a/b/g")
	if got := s.Get(':'); got.Content != "%s/a/b/g" {
		t.Errorf("colon register = %q", got.Content)
	}
}

func TestTypeOf(t *testing.T) {
	tests := []struct {
		name rune
		want Type
	}{
		{'a', TypeNamed},
		{'Z', TypeNamed},
		{'0', TypeLastYank},
		{'5', TypeNumbered},
		{'-', TypeSmallDelete},
		{'_', TypeBlackHole},
		{'.', TypeLastInserted},
		{':', TypeCommand},
		{'+', TypeClipboard},
		{'"', TypeUnnamed},
	}
	for _, tt := range tests {
		if got := TypeOf(tt.name); got != tt.want {
			t.Errorf("TypeOf(%c) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIsValid(t *testing.T) {
	for _, r := range `"abz059-_.:+*` {
		if !IsValid(r) {
			t.Errorf("IsValid(%c) = false", r)
		}
	}
	for _, r := range "!@#\x00 " {
		if IsValid(r) {
			t.Errorf("IsValid(%c) = true", r)
		}
	}
}

type fakeClipboard struct {
	content string
}

func (c *fakeClipboard) Get() (string, error) { return c.content, nil }
func (c *fakeClipboard) Set(s string) error   { c.content = s; return nil }

func TestClipboardProvider(t *testing.T) {
	s := NewStore()
	clip := &fakeClipboard{}
	s.SetClipboard(clip)

	s.Set('+', charwise("shared"))
	if clip.content != "shared" {
		t.Errorf("clipboard = %q", clip.content)
	}
	if got := s.Get('*'); got.Content != "shared" {
		t.Errorf("Get(*) = %q", got.Content)
	}
}
