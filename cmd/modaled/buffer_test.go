package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/modal/internal/host"
	"github.com/dshills/modal/internal/mode"
	"github.com/dshills/modal/internal/text"
)

func span(sl, sc, el, ec int, class text.Class) text.Span {
	return text.NewSpan(
		text.Position{Line: sl, Col: sc},
		text.Position{Line: el, Col: ec},
		class,
	)
}

func bufText(b *Buffer) string {
	return strings.Join(b.Lines(), "\n")
}

func TestSubmitEditCharwise(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		req  host.EditRequest
		want string
	}{
		{
			name: "delete exclusive",
			in:   []string{"hello world"},
			req: host.EditRequest{
				Spans: []text.Span{span(0, 0, 0, 6, text.CharExclusive)},
				Shape: text.ShapeCharwise,
			},
			want: "world",
		},
		{
			name: "delete inclusive",
			in:   []string{"hello"},
			req: host.EditRequest{
				Spans: []text.Span{span(0, 1, 0, 3, text.CharInclusive)},
				Shape: text.ShapeCharwise,
			},
			want: "ho",
		},
		{
			name: "insert at point",
			in:   []string{"ab"},
			req: host.EditRequest{
				Spans: []text.Span{span(0, 1, 0, 1, text.CharExclusive)},
				Text:  "X",
				Shape: text.ShapeCharwise,
			},
			want: "aXb",
		},
		{
			name: "replacement with newline splits lines",
			in:   []string{"ab"},
			req: host.EditRequest{
				Spans: []text.Span{span(0, 1, 0, 1, text.CharExclusive)},
				Text:  "\n",
				Shape: text.ShapeCharwise,
			},
			want: "a\nb",
		},
		{
			name: "multi-line span joins lines",
			in:   []string{"foo", "bar", "baz"},
			req: host.EditRequest{
				Spans: []text.Span{span(0, 2, 2, 1, text.CharExclusive)},
				Shape: text.ShapeCharwise,
			},
			want: "foaz",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuffer("", tt.in)
			if _, err := b.SubmitEdit("main", tt.req); err != nil {
				t.Fatalf("SubmitEdit: %v", err)
			}
			if got := bufText(b); got != tt.want {
				t.Errorf("buffer = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSubmitEditLinewise(t *testing.T) {
	b := NewBuffer("", []string{"one", "two", "three"})

	req := host.EditRequest{
		Spans: []text.Span{span(0, 0, 1, 0, text.Linewise)},
		Shape: text.ShapeLinewise,
	}
	if _, err := b.SubmitEdit("main", req); err != nil {
		t.Fatalf("SubmitEdit: %v", err)
	}
	if got := bufText(b); got != "three" {
		t.Errorf("buffer = %q", got)
	}

	// Replacement text opens new lines in place.
	req = host.EditRequest{
		Spans: []text.Span{span(0, 0, 0, 0, text.Linewise)},
		Text:  "a\nb\n",
		Shape: text.ShapeLinewise,
	}
	if _, err := b.SubmitEdit("main", req); err != nil {
		t.Fatalf("SubmitEdit: %v", err)
	}
	if got := bufText(b); got != "a\nb" {
		t.Errorf("buffer = %q", got)
	}
}

func TestSubmitEditDeleteAllLines(t *testing.T) {
	b := NewBuffer("", []string{"only"})

	req := host.EditRequest{
		Spans: []text.Span{span(0, 0, 0, 0, text.Linewise)},
		Shape: text.ShapeLinewise,
	}
	if _, err := b.SubmitEdit("main", req); err != nil {
		t.Fatalf("SubmitEdit: %v", err)
	}
	if got := b.Lines(); len(got) != 1 || got[0] != "" {
		t.Errorf("lines = %q, want one empty line", got)
	}
}

func TestSubmitEditBlockwise(t *testing.T) {
	b := NewBuffer("", []string{"abcd", "efgh", "ijkl"})

	// One piece per span, paired by index.
	req := host.EditRequest{
		Spans: []text.Span{
			span(0, 1, 0, 2, text.CharInclusive),
			span(1, 1, 1, 2, text.CharInclusive),
			span(2, 1, 2, 2, text.CharInclusive),
		},
		Text:  "XX\nYY\nZZ",
		Shape: text.ShapeBlockwise,
	}
	if _, err := b.SubmitEdit("main", req); err != nil {
		t.Fatalf("SubmitEdit: %v", err)
	}
	if got := bufText(b); got != "aXXd\neYYh\niZZl" {
		t.Errorf("buffer = %q", got)
	}
}

func TestSubmitEditBottomUp(t *testing.T) {
	b := NewBuffer("", []string{"foo", "foo", "foo"})

	// Spans arrive in document order; the earlier edits must not shift
	// the later coordinates.
	req := host.EditRequest{
		Spans: []text.Span{
			span(0, 0, 0, 0, text.Linewise),
			span(2, 0, 2, 0, text.Linewise),
		},
		Shape: text.ShapeLinewise,
	}
	if _, err := b.SubmitEdit("main", req); err != nil {
		t.Fatalf("SubmitEdit: %v", err)
	}
	if got := bufText(b); got != "foo" {
		t.Errorf("buffer = %q", got)
	}
}

func TestClampByMode(t *testing.T) {
	b := NewBuffer("", []string{"abc"})

	if err := b.SubmitSelection("main", host.SelectionRequest{Cursor: text.Position{Line: 0, Col: 10}}); err != nil {
		t.Fatal(err)
	}
	if got := b.Cursor(); got.Col != 2 {
		t.Errorf("normal clamp col = %d, want 2", got.Col)
	}

	b.NotifyModeChanged("main", mode.Insert)
	if err := b.SubmitSelection("main", host.SelectionRequest{Cursor: text.Position{Line: 0, Col: 10}}); err != nil {
		t.Fatal(err)
	}
	if got := b.Cursor(); got.Col != 3 {
		t.Errorf("insert clamp col = %d, want 3", got.Col)
	}

	if err := b.SubmitSelection("main", host.SelectionRequest{Cursor: text.Position{Line: 5, Col: -1}}); err != nil {
		t.Fatal(err)
	}
	if got := b.Cursor(); got.Line != 0 || got.Col != 0 {
		t.Errorf("out-of-range clamp = %v", got)
	}
}

func TestSnapshotIsStable(t *testing.T) {
	b := NewBuffer("", []string{"before"})

	snap, err := b.ReadSnapshot("main")
	if err != nil {
		t.Fatal(err)
	}
	req := host.EditRequest{
		Spans: []text.Span{span(0, 0, 0, 0, text.Linewise)},
		Text:  "after\n",
		Shape: text.ShapeLinewise,
	}
	if _, err := b.SubmitEdit("main", req); err != nil {
		t.Fatal(err)
	}
	if got := snap.View.Line(0); got != "before" {
		t.Errorf("snapshot line = %q, want %q", got, "before")
	}
	if got := bufText(b); got != "after" {
		t.Errorf("buffer = %q", got)
	}
}

func TestSelectionClearedByEdit(t *testing.T) {
	b := NewBuffer("", []string{"abc"})

	sel := span(0, 0, 0, 1, text.CharInclusive)
	if err := b.SubmitSelection("main", host.SelectionRequest{Selection: &sel}); err != nil {
		t.Fatal(err)
	}
	if b.Selection() == nil {
		t.Fatal("selection not recorded")
	}

	req := host.EditRequest{
		Spans: []text.Span{span(0, 0, 0, 1, text.CharExclusive)},
		Shape: text.ShapeCharwise,
	}
	if _, err := b.SubmitEdit("main", req); err != nil {
		t.Fatal(err)
	}
	if b.Selection() != nil {
		t.Errorf("selection survived an edit")
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	b := NewBuffer(path, []string{"one", "two"})

	if err := b.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "one\ntwo\n" {
		t.Errorf("file = %q", data)
	}
}

func TestRegisterAction(t *testing.T) {
	b := NewBuffer("", nil)

	called := false
	b.RegisterAction("ping", func() error {
		called = true
		return nil
	})
	if fn := b.actions["ping"]; fn == nil {
		t.Fatal("action not stored")
	} else if err := fn(); err != nil || !called {
		t.Errorf("action call: err %v called %v", err, called)
	}
}
