package excmd

import (
	"errors"
	"testing"
)

func parse(t *testing.T, line string) *Command {
	t.Helper()
	cmd, err := Parse(line)
	if err != nil {
		t.Fatalf("Parse(%q): %v", line, err)
	}
	return cmd
}

func TestParseSubstitute(t *testing.T) {
	tests := []struct {
		name        string
		line        string
		pattern     string
		replacement string
		global      bool
		ignoreCase  bool
	}{
		{"plain", "s/foo/bar/", "foo", "bar", false, false},
		{"no trailing delim", "s/foo/bar", "foo", "bar", false, false},
		{"global flag", "s/foo/bar/g", "foo", "bar", true, false},
		{"both flags", "s/foo/bar/gi", "foo", "bar", true, true},
		{"alternate delimiter", "s#a/b#c#g", "a/b", "c", true, false},
		{"escaped delimiter", `s/a\/b/c/`, "a/b", "c", false, false},
		{"empty replacement", "s/foo//g", "foo", "", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := parse(t, tt.line)
			if cmd.Name != CmdSubstitute {
				t.Fatalf("name = %v", cmd.Name)
			}
			if cmd.Pattern != tt.pattern {
				t.Errorf("pattern = %q, want %q", cmd.Pattern, tt.pattern)
			}
			if cmd.Replacement != tt.replacement {
				t.Errorf("replacement = %q, want %q", cmd.Replacement, tt.replacement)
			}
			if cmd.Global != tt.global || cmd.IgnoreCase != tt.ignoreCase {
				t.Errorf("flags = g:%v i:%v", cmd.Global, cmd.IgnoreCase)
			}
		})
	}
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Range
	}{
		{"whole file", "%s/a/b/", Range{Whole: true}},
		{"absolute pair", "1,3s/a/b/", Range{
			Start: Addr{Kind: AddrLine, Line: 1},
			End:   Addr{Kind: AddrLine, Line: 3},
		}},
		{"single line", "5d", Range{Start: Addr{Kind: AddrLine, Line: 5}}},
		{"dot to last", ".,$d", Range{
			Start: Addr{Kind: AddrCurrent},
			End:   Addr{Kind: AddrLast},
		}},
		{"visual marks", "'<,'>d", Range{
			Start: Addr{Kind: AddrVisualStart},
			End:   Addr{Kind: AddrVisualEnd},
		}},
		{"offsets", ".+1,$-2d", Range{
			Start: Addr{Kind: AddrCurrent, Offset: 1},
			End:   Addr{Kind: AddrLast, Offset: -2},
		}},
		{"bare offset sign", ".+,$d", Range{
			Start: Addr{Kind: AddrCurrent, Offset: 1},
			End:   Addr{Kind: AddrLast},
		}},
		{"no range", "d", Range{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := parse(t, tt.line)
			if cmd.Range != tt.want {
				t.Errorf("range = %+v, want %+v", cmd.Range, tt.want)
			}
		})
	}
}

func TestParseVerbs(t *testing.T) {
	tests := []struct {
		name string
		line string
		verb Name
		bang bool
	}{
		{"delete short", "d", CmdDelete, false},
		{"delete long", "delete", CmdDelete, false},
		{"yank", "y", CmdYank, false},
		{"write", "w", CmdWrite, false},
		{"write long", "write", CmdWrite, false},
		{"quit", "q", CmdQuit, false},
		{"quit bang", "q!", CmdQuit, true},
		{"write quit", "wq", CmdWriteQuit, false},
		{"x", "x", CmdWriteQuit, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := parse(t, tt.line)
			if cmd.Name != tt.verb {
				t.Errorf("name = %v, want %v", cmd.Name, tt.verb)
			}
			if cmd.Bang != tt.bang {
				t.Errorf("bang = %v, want %v", cmd.Bang, tt.bang)
			}
		})
	}
}

func TestParseYankRegister(t *testing.T) {
	cmd := parse(t, "y a")
	if cmd.Name != CmdYank || cmd.Register != 'a' {
		t.Errorf("cmd = %+v", cmd)
	}
	if cmd := parse(t, "y"); cmd.Register != 0 {
		t.Errorf("default register = %c", cmd.Register)
	}
}

func TestParseNormal(t *testing.T) {
	cmd := parse(t, "normal dw")
	if cmd.Name != CmdNormal || cmd.Keys != "dw" {
		t.Errorf("cmd = %+v", cmd)
	}
	if cmd := parse(t, "norm 0x"); cmd.Keys != "0x" {
		t.Errorf("keys = %q", cmd.Keys)
	}
}

func TestParseGlobal(t *testing.T) {
	cmd := parse(t, "g/TODO/d")
	if cmd.Name != CmdGlobal || cmd.Pattern != "TODO" {
		t.Fatalf("cmd = %+v", cmd)
	}
	if cmd.Sub == nil || cmd.Sub.Name != CmdDelete {
		t.Errorf("sub = %+v", cmd.Sub)
	}

	cmd = parse(t, "g/foo/s/a/b/g")
	if cmd.Sub == nil || cmd.Sub.Name != CmdSubstitute || !cmd.Sub.Global {
		t.Errorf("sub = %+v", cmd.Sub)
	}

	cmd = parse(t, "g/x/normal dw")
	if cmd.Sub == nil || cmd.Sub.Name != CmdNormal || cmd.Sub.Keys != "dw" {
		t.Errorf("sub = %+v", cmd.Sub)
	}
}

func TestParseErrors(t *testing.T) {
	lines := []string{
		"",
		"   ",
		"1,",
		"zz",
		"s/foo",
		"s//bar/",
		"s/a/b/q",
		"g/pat",
		"g//d",
		"g/pat/w",
		"g/pat/1d",
		"normal",
		"'x,'yd",
	}

	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			if _, err := Parse(line); !errors.Is(err, ErrSyntax) {
				t.Errorf("Parse(%q) error = %v, want ErrSyntax", line, err)
			}
		})
	}
}
