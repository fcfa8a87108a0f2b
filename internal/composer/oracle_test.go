package composer

import (
	"context"
	"strings"
	"testing"

	"github.com/dshills/modal/internal/oracle"
)

// TestAgainstOracle replays key scripts through both the composer and
// a headless Neovim and compares the resulting buffers. Opt in with
// the MODAL_ORACLE environment variable.
func TestAgainstOracle(t *testing.T) {
	if !oracle.Available() {
		t.Skipf("set %s and install nvim to run oracle tests", oracle.EnvVar)
	}
	o, err := oracle.New()
	if err != nil {
		t.Fatalf("oracle.New: %v", err)
	}

	tests := []struct {
		name  string
		lines []string
		keys  string
		// nvim carries the Vim keycode spelling when the script
		// contains specials; empty means keys works for both.
		nvim string
	}{
		{name: "dw", lines: []string{"hello world"}, keys: "dw"},
		{name: "de", lines: []string{"hello world"}, keys: "de"},
		{name: "x", lines: []string{"abcdef"}, keys: "3x"},
		{name: "dd", lines: []string{"one", "two", "three"}, keys: "dd"},
		{name: "count multiplication", lines: []string{"a b c d e f g h"}, keys: "2d3w"},
		{name: "join", lines: []string{"foo ", "  bar"}, keys: "J"},
		{name: "delete put", lines: []string{"one", "two"}, keys: "ddp"},
		{name: "inner quotes", lines: []string{`say "hi there" end`}, keys: `fhdi"`},
		{name: "around word", lines: []string{"one two three"}, keys: "wdaw"},
		{name: "toggle case", lines: []string{"aBc"}, keys: "~~"},
		{
			name:  "change word",
			lines: []string{"hello world"},
			keys:  "cwbye<Esc>",
			nvim:  `cwbye\<Esc>`,
		},
		{
			name:  "dot repeat",
			lines: []string{"aa bb cc dd"},
			keys:  "dw.",
			nvim:  "dw.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ed := newTestComposer(tt.lines...)
			feedString(t, c, tt.keys)

			nvimKeys := tt.nvim
			if nvimKeys == "" {
				nvimKeys = tt.keys
			}
			want, err := o.Run(context.Background(), tt.lines, nvimKeys)
			if err != nil {
				t.Fatalf("oracle run: %v", err)
			}
			if got := ed.text(); got != strings.Join(want, "\n") {
				t.Errorf("buffer = %q, nvim says %q", got, strings.Join(want, "\n"))
			}
		})
	}
}
