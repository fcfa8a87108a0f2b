package excmd

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/dshills/modal/internal/host"
	"github.com/dshills/modal/internal/register"
	"github.com/dshills/modal/internal/text"
)

// Exec errors.
var (
	ErrBadRange   = errors.New("invalid range")
	ErrBadPattern = errors.New("invalid pattern")
)

// Env supplies the document state addresses resolve against.
type Env struct {
	View   text.View
	Cursor text.Position

	// Visual holds the last visual selection for '< and '>, nil when
	// none exists.
	Visual *text.Span

	// IgnoreCase compiles patterns case-insensitively unless the
	// command carries its own i flag.
	IgnoreCase bool
}

// Result is the outcome of executing one command.
type Result struct {
	// Edits are the mutations to submit, ordered from the bottom of
	// the document up so earlier submissions never invalidate the
	// coordinates of later ones.
	Edits []host.EditRequest

	// Capture holds yanked text for the register layer.
	Capture *register.Entry

	// Register is the target register for Capture, 0 for unnamed.
	Register rune

	// Actions name host actions to invoke in order (write, quit).
	Actions []string

	// Keys holds :normal input for the caller to replay per line, one
	// entry per matched line in ascending order.
	Keys []NormalRun

	// Cursor is the position to move to, nil to leave it.
	Cursor *text.Position

	// Message is status-line feedback.
	Message string
}

// NormalRun is one :normal replay on a specific line.
type NormalRun struct {
	Line int // 0-indexed
	Keys string
}

// Resolve maps a parsed range to 0-indexed [start, end] lines. An
// empty range yields the cursor line.
func (r Range) Resolve(env Env) (int, int, error) {
	last := env.View.LineCount() - 1
	if r.Whole {
		return 0, last, nil
	}
	if r.Start.Kind == AddrNone {
		return env.Cursor.Line, env.Cursor.Line, nil
	}

	start, err := resolveAddr(r.Start, env)
	if err != nil {
		return 0, 0, err
	}
	end := start
	if r.End.Kind != AddrNone {
		end, err = resolveAddr(r.End, env)
		if err != nil {
			return 0, 0, err
		}
	}
	if start > end {
		start, end = end, start
	}
	if start < 0 || end > last {
		return 0, 0, fmt.Errorf("%w: lines %d-%d outside document", ErrBadRange, start+1, end+1)
	}
	return start, end, nil
}

func resolveAddr(a Addr, env Env) (int, error) {
	var line int
	switch a.Kind {
	case AddrLine:
		line = a.Line - 1
	case AddrCurrent:
		line = env.Cursor.Line
	case AddrLast:
		line = env.View.LineCount() - 1
	case AddrVisualStart:
		if env.Visual == nil {
			return 0, fmt.Errorf("%w: no visual selection", ErrBadRange)
		}
		line = env.Visual.Start.Line
	case AddrVisualEnd:
		if env.Visual == nil {
			return 0, fmt.Errorf("%w: no visual selection", ErrBadRange)
		}
		line = env.Visual.End.Line
	default:
		return 0, fmt.Errorf("%w: unresolvable address", ErrBadRange)
	}
	return line + a.Offset, nil
}

// Execute runs a parsed command against the environment. Mutations are
// returned as edit requests, never applied directly.
func Execute(cmd *Command, env Env) (*Result, error) {
	switch cmd.Name {
	case CmdSubstitute:
		return execSubstitute(cmd, env)
	case CmdGlobal:
		return execGlobal(cmd, env)
	case CmdDelete:
		return execDelete(cmd, env)
	case CmdYank:
		return execYank(cmd, env)
	case CmdNormal:
		return execNormal(cmd, env)
	case CmdWrite:
		return &Result{Actions: []string{"write"}}, nil
	case CmdQuit:
		if cmd.Bang {
			return &Result{Actions: []string{"quit!"}}, nil
		}
		return &Result{Actions: []string{"quit"}}, nil
	case CmdWriteQuit:
		return &Result{Actions: []string{"write", "quit"}}, nil
	default:
		return nil, fmt.Errorf("%w: unknown command", ErrSyntax)
	}
}

// compilePattern builds the RE2 matcher for a command pattern.
func compilePattern(cmd *Command, env Env) (*regexp.Regexp, error) {
	pat := cmd.Pattern
	if cmd.IgnoreCase || env.IgnoreCase {
		pat = "(?i)" + pat
	}
	re, err := regexp.Compile(pat)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPattern, err)
	}
	return re, nil
}

// translateReplacement maps vim replacement syntax onto RE2 templates:
// \N becomes ${N}, & becomes ${0}, \& is a literal ampersand and $ is
// escaped so Expand treats it literally.
func translateReplacement(repl string) string {
	var b strings.Builder
	runes := []rune(repl)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '\\' && i+1 < len(runes):
			next := runes[i+1]
			switch {
			case next >= '0' && next <= '9':
				fmt.Fprintf(&b, "${%c}", next)
			case next == '&':
				b.WriteRune('&')
			case next == '\\':
				b.WriteRune('\\')
			case next == 'n':
				b.WriteRune('\n')
			case next == 't':
				b.WriteRune('\t')
			default:
				b.WriteRune(next)
			}
			i++
		case r == '&':
			b.WriteString("${0}")
		case r == '$':
			b.WriteString("$$")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// substituteLine applies the pattern once (or everywhere with all) to
// one line, reporting the match count. Submatch templates need manual
// expansion, so it walks the match indexes itself.
func substituteLine(re *regexp.Regexp, template, line string, all bool) (string, int) {
	var b strings.Builder
	last := 0
	count := 0
	for _, loc := range re.FindAllStringSubmatchIndex(line, -1) {
		if !all && count > 0 {
			break
		}
		b.WriteString(line[last:loc[0]])
		b.Write(re.ExpandString(nil, template, line, loc))
		last = loc[1]
		count++

		// Zero-width matches must still advance.
		if loc[0] == loc[1] && last < len(line) {
			b.WriteString(line[last : last+1])
			last++
		}
	}
	b.WriteString(line[last:])
	return b.String(), count
}

func execSubstitute(cmd *Command, env Env) (*Result, error) {
	start, end, err := cmd.Range.Resolve(env)
	if err != nil {
		return nil, err
	}
	re, err := compilePattern(cmd, env)
	if err != nil {
		return nil, err
	}
	template := translateReplacement(cmd.Replacement)

	res := &Result{}
	total := 0
	lines := 0
	lastLine := -1
	// Walk bottom-up so emitted edit coordinates stay valid as the
	// host applies them in order.
	for n := end; n >= start; n-- {
		line := env.View.Line(n)
		replaced, count := substituteLine(re, template, line, cmd.Global)
		if count == 0 {
			continue
		}
		total += count
		lines++
		if n > lastLine {
			lastLine = n
		}
		span := text.Span{
			Start: text.Position{Line: n, Col: 0},
			End:   text.Position{Line: n, Col: len([]rune(line))},
			Class: text.CharExclusive,
		}
		res.Edits = append(res.Edits, host.EditRequest{
			Spans: []text.Span{span},
			Text:  replaced,
			Shape: text.ShapeCharwise,
		})
	}

	if total == 0 {
		res.Message = fmt.Sprintf("pattern not found: %s", cmd.Pattern)
		return res, nil
	}
	res.Message = fmt.Sprintf("%d substitution(s) on %d line(s)", total, lines)
	return res, nil
}

func execDelete(cmd *Command, env Env) (*Result, error) {
	start, end, err := cmd.Range.Resolve(env)
	if err != nil {
		return nil, err
	}
	span := text.NewSpan(
		text.Position{Line: start, Col: 0},
		text.Position{Line: end, Col: 0},
		text.Linewise,
	)
	content := text.Extract(env.View, span)

	cursor := text.Position{Line: start, Col: 0}
	remaining := env.View.LineCount() - (end - start + 1)
	if remaining > 0 && cursor.Line >= remaining {
		cursor.Line = remaining - 1
	}

	return &Result{
		Edits: []host.EditRequest{{
			Spans: []text.Span{span},
			Text:  "",
			Shape: text.ShapeLinewise,
		}},
		Capture: &register.Entry{Content: content, Shape: text.ShapeLinewise},
		Cursor:  &cursor,
		Message: fmt.Sprintf("%d fewer line(s)", end-start+1),
	}, nil
}

func execYank(cmd *Command, env Env) (*Result, error) {
	start, end, err := cmd.Range.Resolve(env)
	if err != nil {
		return nil, err
	}
	span := text.NewSpan(
		text.Position{Line: start, Col: 0},
		text.Position{Line: end, Col: 0},
		text.Linewise,
	)
	return &Result{
		Capture:  &register.Entry{Content: text.Extract(env.View, span), Shape: text.ShapeLinewise},
		Register: cmd.Register,
		Message:  fmt.Sprintf("%d line(s) yanked", end-start+1),
	}, nil

}

func execNormal(cmd *Command, env Env) (*Result, error) {
	start, end, err := cmd.Range.Resolve(env)
	if err != nil {
		return nil, err
	}
	res := &Result{}
	for n := start; n <= end; n++ {
		res.Keys = append(res.Keys, NormalRun{Line: n, Keys: cmd.Keys})
	}
	return res, nil
}

// execGlobal evaluates the pattern against every line of the range
// first, then applies the sub-command to the surviving lines. Matching
// up front keeps later mutations from shifting which lines qualify.
func execGlobal(cmd *Command, env Env) (*Result, error) {
	start, end := 0, env.View.LineCount()-1
	if !cmd.Range.IsEmpty() {
		var err error
		start, end, err = cmd.Range.Resolve(env)
		if err != nil {
			return nil, err
		}
	}
	re, err := compilePattern(cmd, env)
	if err != nil {
		return nil, err
	}

	var matched []int
	for n := start; n <= end; n++ {
		if re.MatchString(env.View.Line(n)) {
			matched = append(matched, n)
		}
	}
	if len(matched) == 0 {
		return &Result{Message: fmt.Sprintf("pattern not found: %s", cmd.Pattern)}, nil
	}

	res := &Result{}
	switch cmd.Sub.Name {
	case CmdDelete:
		// One linewise edit per matched line, bottom-up.
		var captured []string
		for _, n := range matched {
			captured = append(captured, env.View.Line(n)+"\n")
		}
		for i := len(matched) - 1; i >= 0; i-- {
			n := matched[i]
			res.Edits = append(res.Edits, host.EditRequest{
				Spans: []text.Span{text.NewSpan(
					text.Position{Line: n, Col: 0},
					text.Position{Line: n, Col: 0},
					text.Linewise,
				)},
				Text:  "",
				Shape: text.ShapeLinewise,
			})
		}
		res.Capture = &register.Entry{Content: strings.Join(captured, ""), Shape: text.ShapeLinewise}
		res.Message = fmt.Sprintf("%d fewer line(s)", len(matched))

	case CmdSubstitute:
		subRE, err := compilePattern(cmd.Sub, env)
		if err != nil {
			return nil, err
		}
		template := translateReplacement(cmd.Sub.Replacement)
		total := 0
		for i := len(matched) - 1; i >= 0; i-- {
			n := matched[i]
			line := env.View.Line(n)
			replaced, count := substituteLine(subRE, template, line, cmd.Sub.Global)
			if count == 0 {
				continue
			}
			total += count
			res.Edits = append(res.Edits, host.EditRequest{
				Spans: []text.Span{{
					Start: text.Position{Line: n, Col: 0},
					End:   text.Position{Line: n, Col: len([]rune(line))},
					Class: text.CharExclusive,
				}},
				Text:  replaced,
				Shape: text.ShapeCharwise,
			})
		}
		res.Message = fmt.Sprintf("%d substitution(s)", total)

	case CmdNormal:
		for _, n := range matched {
			res.Keys = append(res.Keys, NormalRun{Line: n, Keys: cmd.Sub.Keys})
		}

	default:
		return nil, fmt.Errorf("%w: unsupported global command", ErrSyntax)
	}
	return res, nil
}
