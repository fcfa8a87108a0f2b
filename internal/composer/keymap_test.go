package composer

import (
	"testing"

	"github.com/dshills/modal/internal/key"
	"github.com/dshills/modal/internal/mode"
)

func seq(t *testing.T, s string) []key.Event {
	t.Helper()
	events, err := key.ParseSequence(s)
	if err != nil {
		t.Fatalf("ParseSequence(%q): %v", s, err)
	}
	return events
}

func TestKeymapExactMatch(t *testing.T) {
	km := NewKeymap()
	km.Map(mode.Normal, seq(t, "Q"), seq(t, "dd"))

	rhs, status := km.Expand(mode.Normal, key.RuneEvent('Q'))
	if status != ExpandMatched {
		t.Fatalf("status = %v, want matched", status)
	}
	if key.FormatSequence(rhs) != "dd" {
		t.Errorf("rhs = %q", key.FormatSequence(rhs))
	}

	_, status = km.Expand(mode.Normal, key.RuneEvent('x'))
	if status != ExpandNone {
		t.Errorf("unmapped key status = %v, want none", status)
	}
}

func TestKeymapPrefixHoldAndFlush(t *testing.T) {
	km := NewKeymap()
	km.Map(mode.Insert, seq(t, "jk"), seq(t, "<Esc>"))

	_, status := km.Expand(mode.Insert, key.RuneEvent('j'))
	if status != ExpandPending {
		t.Fatalf("status = %v, want pending", status)
	}

	rhs, status := km.Expand(mode.Insert, key.RuneEvent('k'))
	if status != ExpandMatched {
		t.Fatalf("status = %v, want matched", status)
	}
	if len(rhs) != 1 || !rhs[0].IsEscape() {
		t.Errorf("rhs = %q", key.FormatSequence(rhs))
	}

	// A non-matching continuation flushes the held events literally.
	_, status = km.Expand(mode.Insert, key.RuneEvent('j'))
	if status != ExpandPending {
		t.Fatalf("status = %v, want pending", status)
	}
	flushed, status := km.Expand(mode.Insert, key.RuneEvent('x'))
	if status != ExpandFlush {
		t.Fatalf("status = %v, want flush", status)
	}
	if key.FormatSequence(flushed) != "jx" {
		t.Errorf("flushed = %q", key.FormatSequence(flushed))
	}
}

func TestKeymapExactWinsOverPrefix(t *testing.T) {
	km := NewKeymap()
	km.Map(mode.Normal, seq(t, "j"), seq(t, "gg"))
	km.Map(mode.Normal, seq(t, "jk"), seq(t, "G"))

	rhs, status := km.Expand(mode.Normal, key.RuneEvent('j'))
	if status != ExpandMatched {
		t.Fatalf("status = %v, want matched", status)
	}
	if key.FormatSequence(rhs) != "gg" {
		t.Errorf("rhs = %q", key.FormatSequence(rhs))
	}
}

func TestKeymapModeChangeFlushes(t *testing.T) {
	km := NewKeymap()
	km.Map(mode.Insert, seq(t, "jk"), seq(t, "<Esc>"))

	_, status := km.Expand(mode.Insert, key.RuneEvent('j'))
	if status != ExpandPending {
		t.Fatalf("status = %v, want pending", status)
	}
	flushed, status := km.Expand(mode.Normal, key.RuneEvent('x'))
	if status != ExpandFlush {
		t.Fatalf("status = %v, want flush", status)
	}
	if key.FormatSequence(flushed) != "jx" {
		t.Errorf("flushed = %q", key.FormatSequence(flushed))
	}
}

func TestKeymapModeIsolation(t *testing.T) {
	km := NewKeymap()
	km.Map(mode.Insert, seq(t, "Q"), seq(t, "<Esc>"))

	_, status := km.Expand(mode.Normal, key.RuneEvent('Q'))
	if status != ExpandNone {
		t.Errorf("status = %v, want none", status)
	}
}

func TestKeymapUnmapAndReplace(t *testing.T) {
	km := NewKeymap()
	km.Map(mode.Normal, seq(t, "Q"), seq(t, "dd"))
	km.Map(mode.Normal, seq(t, "Q"), seq(t, "yy"))

	rhs, status := km.Expand(mode.Normal, key.RuneEvent('Q'))
	if status != ExpandMatched || key.FormatSequence(rhs) != "yy" {
		t.Errorf("replaced mapping: status %v rhs %q", status, key.FormatSequence(rhs))
	}

	km.Unmap(mode.Normal, seq(t, "Q"))
	_, status = km.Expand(mode.Normal, key.RuneEvent('Q'))
	if status != ExpandNone {
		t.Errorf("status after unmap = %v, want none", status)
	}
}

func TestMappingDispatch(t *testing.T) {
	c, ed := newTestComposer("one", "two")
	c.Keymap().Map(mode.Normal, seq(t, "Q"), seq(t, "dd"))

	feedString(t, c, "Q")
	wantText(t, ed, "two")
}

func TestMappingInsertEscape(t *testing.T) {
	c, ed := newTestComposer("abc")
	c.Keymap().Map(mode.Insert, seq(t, "jk"), seq(t, "<Esc>"))

	feedString(t, c, "ix")
	out := feedString(t, c, "j")
	if out.Kind != OutcomeConsumed {
		t.Fatalf("held key outcome = %v, want consumed", out.Kind)
	}
	feedString(t, c, "k")
	if c.Mode() != mode.Normal {
		t.Errorf("mode = %v, want Normal", c.Mode())
	}
	wantText(t, ed, "xabc")
}

func TestMappingInsertFlush(t *testing.T) {
	c, ed := newTestComposer("abc")
	c.Keymap().Map(mode.Insert, seq(t, "jk"), seq(t, "<Esc>"))

	feedString(t, c, "ijo<Esc>")
	wantText(t, ed, "joabc")
}

func TestMappingRecursionGuard(t *testing.T) {
	c, _ := newTestComposer("abc")
	c.Keymap().Map(mode.Normal, seq(t, "Q"), seq(t, "Q"))

	out := feedString(t, c, "Q")
	if out.Kind != OutcomeCancelled {
		t.Errorf("outcome = %v, want cancelled", out.Kind)
	}
	if out.Err == nil {
		t.Errorf("recursive mapping produced no error")
	}
}
