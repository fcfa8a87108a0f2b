package excmd

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrSyntax is the sentinel for malformed command lines. Parse
// failures never partially apply.
var ErrSyntax = errors.New("syntax error")

// AddrKind identifies one range address form.
type AddrKind uint8

const (
	// AddrNone means the address was not written.
	AddrNone AddrKind = iota

	// AddrLine is an absolute 1-indexed line number.
	AddrLine

	// AddrCurrent is the . address.
	AddrCurrent

	// AddrLast is the $ address.
	AddrLast

	// AddrVisualStart is the '< address.
	AddrVisualStart

	// AddrVisualEnd is the '> address.
	AddrVisualEnd
)

// Addr is one parsed range address with an optional +N/-N offset.
type Addr struct {
	Kind   AddrKind
	Line   int // 1-indexed, for AddrLine
	Offset int
}

// Range is a parsed [range] prefix. Whole selects the entire document
// (%); otherwise Start/End hold the addresses, with End absent for a
// single-address range.
type Range struct {
	Whole bool
	Start Addr
	End   Addr
}

// IsEmpty returns true when no range was written.
func (r Range) IsEmpty() bool {
	return !r.Whole && r.Start.Kind == AddrNone
}

// Name identifies a supported command verb.
type Name uint8

const (
	// CmdSubstitute is :s/pattern/replacement/flags.
	CmdSubstitute Name = iota

	// CmdGlobal is :g/pattern/command.
	CmdGlobal

	// CmdDelete is :d.
	CmdDelete

	// CmdYank is :y [register].
	CmdYank

	// CmdNormal is :normal {keys}.
	CmdNormal

	// CmdWrite is :w.
	CmdWrite

	// CmdQuit is :q.
	CmdQuit

	// CmdWriteQuit is :wq or :x.
	CmdWriteQuit
)

// Command is a parsed ex command line.
type Command struct {
	Range Range
	Name  Name

	// Bang is the ! suffix (:q!).
	Bang bool

	// Pattern and Replacement carry substitute arguments; Pattern also
	// carries the global pattern.
	Pattern     string
	Replacement string

	// Global substitutes every occurrence per line (flag g).
	Global bool

	// IgnoreCase compiles the pattern case-insensitively (flag i).
	IgnoreCase bool

	// Sub is the commanded verb of :g, nil otherwise.
	Sub *Command

	// Register is the target register for :y, 0 for default.
	Register rune

	// Keys is the literal argument of :normal.
	Keys string
}

// Parse parses a full command line (without the leading colon).
func Parse(line string) (*Command, error) {
	runes := []rune(strings.TrimLeft(line, " \t"))
	if len(runes) == 0 {
		return nil, fmt.Errorf("%w: empty command", ErrSyntax)
	}

	rng, rest, err := parseRange(runes)
	if err != nil {
		return nil, err
	}
	rest = trimLeft(rest)
	if len(rest) == 0 {
		return nil, fmt.Errorf("%w: missing command", ErrSyntax)
	}

	cmd, err := parseVerb(rest)
	if err != nil {
		return nil, err
	}
	cmd.Range = rng
	return cmd, nil
}

// parseRange consumes the optional [range] prefix.
func parseRange(runes []rune) (Range, []rune, error) {
	if len(runes) > 0 && runes[0] == '%' {
		return Range{Whole: true}, runes[1:], nil
	}

	start, rest, ok, err := parseAddr(runes)
	if err != nil {
		return Range{}, nil, err
	}
	if !ok {
		return Range{}, runes, nil
	}

	r := Range{Start: start}
	if len(rest) > 0 && rest[0] == ',' {
		end, rest2, ok, err := parseAddr(rest[1:])
		if err != nil {
			return Range{}, nil, err
		}
		if !ok {
			return Range{}, nil, fmt.Errorf("%w: missing address after comma", ErrSyntax)
		}
		r.End = end
		rest = rest2
	}
	return r, rest, nil
}

// parseAddr consumes one address, reporting ok=false when none is
// present.
func parseAddr(runes []rune) (Addr, []rune, bool, error) {
	runes = trimLeft(runes)
	if len(runes) == 0 {
		return Addr{}, runes, false, nil
	}

	var a Addr
	switch {
	case runes[0] >= '0' && runes[0] <= '9':
		n := 0
		i := 0
		for i < len(runes) && runes[i] >= '0' && runes[i] <= '9' {
			n = n*10 + int(runes[i]-'0')
			i++
		}
		a = Addr{Kind: AddrLine, Line: n}
		runes = runes[i:]

	case runes[0] == '.':
		a = Addr{Kind: AddrCurrent}
		runes = runes[1:]

	case runes[0] == '$':
		a = Addr{Kind: AddrLast}
		runes = runes[1:]

	case runes[0] == '\'':
		if len(runes) < 2 {
			return Addr{}, nil, false, fmt.Errorf("%w: incomplete mark address", ErrSyntax)
		}
		switch runes[1] {
		case '<':
			a = Addr{Kind: AddrVisualStart}
		case '>':
			a = Addr{Kind: AddrVisualEnd}
		default:
			return Addr{}, nil, false, fmt.Errorf("%w: unknown mark %q", ErrSyntax, string(runes[1]))
		}
		runes = runes[2:]

	default:
		return Addr{}, runes, false, nil
	}

	// Optional +N / -N offset.
	runes = trimLeft(runes)
	if len(runes) > 0 && (runes[0] == '+' || runes[0] == '-') {
		sign := 1
		if runes[0] == '-' {
			sign = -1
		}
		i := 1
		n := 0
		for i < len(runes) && runes[i] >= '0' && runes[i] <= '9' {
			n = n*10 + int(runes[i]-'0')
			i++
		}
		if i == 1 {
			n = 1
		}
		a.Offset = sign * n
		runes = runes[i:]
	}

	return a, runes, true, nil
}

// parseVerb consumes the command name and its arguments.
func parseVerb(runes []rune) (*Command, error) {
	// Single-letter substitute and global forms take their delimiter
	// immediately; check them before the word commands.
	if runes[0] == 's' && len(runes) > 1 && isDelimiter(runes[1]) {
		return parseSubstitute(runes[1:])
	}
	if runes[0] == 'g' && len(runes) > 1 && isDelimiter(runes[1]) {
		return parseGlobal(runes[1:])
	}

	word := ""
	i := 0
	for i < len(runes) && unicode.IsLetter(runes[i]) {
		word += string(runes[i])
		i++
	}
	bang := false
	if i < len(runes) && runes[i] == '!' {
		bang = true
		i++
	}
	args := strings.TrimSpace(string(runes[i:]))

	switch word {
	case "d", "delete":
		return &Command{Name: CmdDelete, Bang: bang}, nil
	case "y", "yank":
		cmd := &Command{Name: CmdYank, Bang: bang}
		if args != "" {
			reg := []rune(args)
			if len(reg) != 1 {
				return nil, fmt.Errorf("%w: invalid register %q", ErrSyntax, args)
			}
			cmd.Register = reg[0]
		}
		return cmd, nil
	case "normal", "norm":
		if args == "" {
			return nil, fmt.Errorf("%w: normal requires keys", ErrSyntax)
		}
		return &Command{Name: CmdNormal, Bang: bang, Keys: args}, nil
	case "w", "write":
		return &Command{Name: CmdWrite, Bang: bang}, nil
	case "q", "quit":
		return &Command{Name: CmdQuit, Bang: bang}, nil
	case "wq", "x", "xit":
		return &Command{Name: CmdWriteQuit, Bang: bang}, nil
	case "s", "substitute":
		// Substitute with no delimiter repeats the last pattern; not
		// supported without one here.
		return nil, fmt.Errorf("%w: substitute requires /pattern/replacement/", ErrSyntax)
	default:
		return nil, fmt.Errorf("%w: unknown command %q", ErrSyntax, word)
	}
}

// parseSubstitute parses pattern/replacement/flags after :s. The first
// rune is the delimiter.
func parseSubstitute(runes []rune) (*Command, error) {
	delim := runes[0]
	fields, err := splitDelimited(runes, delim)
	if err != nil {
		return nil, err
	}
	if len(fields) < 2 {
		return nil, fmt.Errorf("%w: substitute requires a replacement", ErrSyntax)
	}

	cmd := &Command{
		Name:        CmdSubstitute,
		Pattern:     fields[0],
		Replacement: fields[1],
	}
	if cmd.Pattern == "" {
		return nil, fmt.Errorf("%w: empty pattern", ErrSyntax)
	}
	if len(fields) > 2 {
		for _, f := range fields[2] {
			switch f {
			case 'g':
				cmd.Global = true
			case 'i':
				cmd.IgnoreCase = true
			default:
				return nil, fmt.Errorf("%w: unknown flag %q", ErrSyntax, string(f))
			}
		}
	}
	return cmd, nil
}

// parseGlobal parses pattern/command after :g. The first rune is the
// delimiter.
func parseGlobal(runes []rune) (*Command, error) {
	delim := runes[0]
	rest := runes[1:]
	pattern := ""
	i := 0
	for i < len(rest) {
		if rest[i] == '\\' && i+1 < len(rest) {
			pattern += string(rest[i : i+2])
			i += 2
			continue
		}
		if rest[i] == delim {
			break
		}
		pattern += string(rest[i])
		i++
	}
	if i >= len(rest) {
		return nil, fmt.Errorf("%w: global requires a command", ErrSyntax)
	}
	if pattern == "" {
		return nil, fmt.Errorf("%w: empty pattern", ErrSyntax)
	}

	subLine := strings.TrimSpace(string(rest[i+1:]))
	if subLine == "" {
		return nil, fmt.Errorf("%w: global requires a command", ErrSyntax)
	}
	sub, err := Parse(subLine)
	if err != nil {
		return nil, err
	}
	switch sub.Name {
	case CmdDelete, CmdSubstitute, CmdNormal:
	default:
		return nil, fmt.Errorf("%w: unsupported global command", ErrSyntax)
	}
	if !sub.Range.IsEmpty() {
		return nil, fmt.Errorf("%w: global command takes no range", ErrSyntax)
	}

	return &Command{Name: CmdGlobal, Pattern: pattern, Sub: sub}, nil
}

// splitDelimited splits delimiter-separated fields honoring backslash
// escapes of the delimiter. The leading delimiter is runes[0].
func splitDelimited(runes []rune, delim rune) ([]string, error) {
	var fields []string
	var cur strings.Builder
	for i := 1; i < len(runes); i++ {
		r := runes[i]
		if r == '\\' && i+1 < len(runes) && runes[i+1] == delim {
			cur.WriteRune(delim)
			i++
			continue
		}
		if r == delim {
			fields = append(fields, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteRune(r)
	}
	fields = append(fields, cur.String())
	return fields, nil
}

// isDelimiter reports whether r can delimit substitute fields.
func isDelimiter(r rune) bool {
	switch r {
	case '/', '#', '|', ',', ';':
		return true
	default:
		return false
	}
}

func trimLeft(runes []rune) []rune {
	for len(runes) > 0 && (runes[0] == ' ' || runes[0] == '\t') {
		runes = runes[1:]
	}
	return runes
}
