package motion

import (
	"unicode"

	"github.com/dshills/modal/internal/text"
)

// NoGoal marks the goal column as unset.
const NoGoal = -1

// EndGoal pins vertical movement to the end of each line, set by $.
const EndGoal = 1 << 30

// State carries the two pieces of motion memory that survive between
// events: the goal column for vertical movement and the last
// find-character request for ;/, repeats.
type State struct {
	// GoalCol is the remembered target column for j/k across lines
	// shorter than it. NoGoal means the next vertical motion adopts
	// the current column.
	GoalCol int

	// LastFindKind is the kind of the last f/F/t/T motion, or zero
	// value when none has run.
	LastFindKind Kind

	// LastFindChar is the character argument of the last find.
	LastFindChar rune

	// HasFind reports whether a find has been recorded.
	HasFind bool
}

// NewState returns motion state with no goal column and no find memory.
func NewState() *State {
	return &State{GoalCol: NoGoal}
}

// Resolve computes the destination of a motion from pos against v.
// The arg carries the character for f/F/t/T. Count multiplies
// repeatable motions; absolute motions treat it as a target (count 0
// means "no explicit count"). The returned class tells an operator how
// to span from pos to the destination. ok is false when the motion
// cannot resolve (find character absent, no matching pair); callers
// treat that as NoMatch.
func Resolve(v text.View, pos text.Position, m *Motion, count int, arg rune, st *State) (text.Position, text.Class, bool) {
	if st == nil {
		st = NewState()
	}
	reps := count
	if reps <= 0 {
		reps = 1
	}

	dst := pos
	ok := true

	switch m.Kind {
	case KindLeft:
		dst.Col -= reps
		if dst.Col < 0 {
			dst.Col = 0
		}

	case KindRight:
		dst.Col += reps
		dst = text.Clamp(v, dst, false)

	case KindUp:
		dst.Line -= reps
		dst = vertical(v, dst, st)

	case KindDown:
		dst.Line += reps
		dst = vertical(v, dst, st)

	case KindWordForward:
		for i := 0; i < reps; i++ {
			dst = wordForward(v, dst, false)
		}

	case KindWORDForward:
		for i := 0; i < reps; i++ {
			dst = wordForward(v, dst, true)
		}

	case KindWordBackward:
		for i := 0; i < reps; i++ {
			dst = wordBackward(v, dst, false)
		}

	case KindWORDBackward:
		for i := 0; i < reps; i++ {
			dst = wordBackward(v, dst, true)
		}

	case KindWordEnd:
		for i := 0; i < reps; i++ {
			dst = wordEnd(v, dst, false)
		}

	case KindWORDEnd:
		for i := 0; i < reps; i++ {
			dst = wordEnd(v, dst, true)
		}

	case KindLineStart:
		dst.Col = 0

	case KindFirstNonBlank:
		dst.Col = firstNonBlank(v.Line(dst.Line))

	case KindLineEnd:
		n := text.LineLen(v, dst.Line)
		if n > 0 {
			dst.Col = n - 1
		} else {
			dst.Col = 0
		}
		st.GoalCol = EndGoal

	case KindColumn:
		dst.Col = reps - 1
		dst = text.Clamp(v, dst, false)

	case KindDocumentStart:
		dst = gotoLine(v, count, 0)

	case KindDocumentEnd:
		dst = gotoLine(v, count, v.LineCount()-1)

	case KindFindChar, KindFindCharBack, KindTillChar, KindTillCharBack:
		st.LastFindKind = m.Kind
		st.LastFindChar = arg
		st.HasFind = true
		dst, ok = findOnLine(v, dst, m.Kind, arg, reps)

	case KindRepeatFind:
		if !st.HasFind {
			return pos, m.Class, false
		}
		dst, ok = findOnLine(v, dst, st.LastFindKind, st.LastFindChar, reps)

	case KindRepeatFindReverse:
		if !st.HasFind {
			return pos, m.Class, false
		}
		dst, ok = findOnLine(v, dst, reverseFind(st.LastFindKind), st.LastFindChar, reps)

	case KindParagraphForward:
		for i := 0; i < reps; i++ {
			dst = paragraphForward(v, dst)
		}

	case KindParagraphBackward:
		for i := 0; i < reps; i++ {
			dst = paragraphBackward(v, dst)
		}

	case KindSentenceForward:
		for i := 0; i < reps; i++ {
			dst = sentenceForward(v, dst)
		}

	case KindSentenceBackward:
		for i := 0; i < reps; i++ {
			dst = sentenceBackward(v, dst)
		}

	case KindMatchPair:
		dst, ok = matchPair(v, dst)

	default:
		return pos, m.Class, false
	}

	if !ok {
		return pos, m.Class, false
	}

	// Horizontal movement resets the vertical goal column; $ pinned it
	// above and vertical motions maintain it themselves.
	switch m.Kind {
	case KindUp, KindDown, KindLineEnd:
	default:
		st.GoalCol = NoGoal
	}

	return text.Clamp(v, dst, false), m.Class, true
}

// vertical clamps a vertical move and applies the goal column.
func vertical(v text.View, p text.Position, st *State) text.Position {
	if st.GoalCol == NoGoal {
		st.GoalCol = p.Col
	}
	last := v.LineCount() - 1
	if p.Line < 0 {
		p.Line = 0
	}
	if p.Line > last {
		p.Line = last
	}
	p.Col = st.GoalCol
	return text.Clamp(v, p, false)
}

// gotoLine resolves gg/G: count is a 1-indexed target line when
// present, otherwise fallback. The column lands on the first non-blank.
func gotoLine(v text.View, count, fallback int) text.Position {
	line := fallback
	if count > 0 {
		line = count - 1
	}
	last := v.LineCount() - 1
	if line > last {
		line = last
	}
	if line < 0 {
		line = 0
	}
	return text.Position{Line: line, Col: firstNonBlank(v.Line(line))}
}

// charClass partitions runes the way word motions do: 0 whitespace,
// 1 keyword characters (letters, digits, underscore), 2 other
// punctuation. WORD motions collapse classes 1 and 2.
func charClass(r rune, big bool) int {
	switch {
	case unicode.IsSpace(r):
		return 0
	case big:
		return 1
	case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
		return 1
	default:
		return 2
	}
}

// wordForward moves to the start of the next word.
func wordForward(v text.View, p text.Position, big bool) text.Position {
	runes := text.LineRunes(v, p.Line)
	last := v.LineCount() - 1

	// Leave the current run.
	if p.Col < len(runes) {
		cls := charClass(runes[p.Col], big)
		for p.Col < len(runes) && charClass(runes[p.Col], big) == cls && cls != 0 {
			p.Col++
		}
	}

	// Skip whitespace, crossing line boundaries. An empty line is a
	// word of its own.
	for {
		if p.Col >= len(runes) {
			if p.Line >= last {
				return text.Clamp(v, p, false)
			}
			p.Line++
			p.Col = 0
			runes = text.LineRunes(v, p.Line)
			if len(runes) == 0 {
				return p
			}
			continue
		}
		if charClass(runes[p.Col], big) != 0 {
			return p
		}
		p.Col++
	}
}

// wordBackward moves to the start of the previous word.
func wordBackward(v text.View, p text.Position, big bool) text.Position {
	runes := text.LineRunes(v, p.Line)

	step := func() bool {
		if p.Col > 0 {
			p.Col--
			return true
		}
		if p.Line == 0 {
			return false
		}
		p.Line--
		runes = text.LineRunes(v, p.Line)
		p.Col = len(runes) - 1
		if p.Col < 0 {
			p.Col = 0
		}
		return true
	}

	if !step() {
		return p
	}

	// Skip whitespace backwards; an empty line stops the scan.
	for p.Col < len(runes) || len(runes) == 0 {
		if len(runes) == 0 {
			return p
		}
		if charClass(runes[p.Col], big) != 0 {
			break
		}
		if !step() {
			return p
		}
	}

	// Walk to the start of the run.
	cls := charClass(runes[p.Col], big)
	for p.Col > 0 && charClass(runes[p.Col-1], big) == cls {
		p.Col--
	}
	return p
}

// wordEnd moves to the last character of the current or next word.
func wordEnd(v text.View, p text.Position, big bool) text.Position {
	runes := text.LineRunes(v, p.Line)
	last := v.LineCount() - 1

	step := func() bool {
		if p.Col+1 < len(runes) {
			p.Col++
			return true
		}
		if p.Line >= last {
			return false
		}
		p.Line++
		p.Col = 0
		runes = text.LineRunes(v, p.Line)
		return true
	}

	if !step() {
		return p
	}

	// Skip whitespace and empty lines forward.
	for len(runes) == 0 || charClass(runes[p.Col], big) == 0 {
		if !step() {
			return p
		}
	}

	// Walk to the end of the run.
	cls := charClass(runes[p.Col], big)
	for p.Col+1 < len(runes) && charClass(runes[p.Col+1], big) == cls {
		p.Col++
	}
	return p
}

// firstNonBlank returns the column of the first non-blank rune, or 0.
func firstNonBlank(line string) int {
	for i, r := range []rune(line) {
		if !unicode.IsSpace(r) {
			return i
		}
	}
	return 0
}

// findOnLine resolves f/F/t/T on the current line. reps selects the
// nth occurrence; failure leaves the cursor unmoved.
func findOnLine(v text.View, p text.Position, kind Kind, arg rune, reps int) (text.Position, bool) {
	runes := text.LineRunes(v, p.Line)
	col := p.Col

	forward := kind == KindFindChar || kind == KindTillChar
	till := kind == KindTillChar || kind == KindTillCharBack

	for n := 0; n < reps; n++ {
		found := -1
		if forward {
			start := col + 1
			if till && n > 0 {
				// Repeating t skips the adjacent occurrence.
				start++
			}
			for i := start; i < len(runes); i++ {
				if runes[i] == arg {
					found = i
					break
				}
			}
		} else {
			start := col - 1
			if till && n > 0 {
				start--
			}
			for i := start; i >= 0; i-- {
				if runes[i] == arg {
					found = i
					break
				}
			}
		}
		if found < 0 {
			return p, false
		}
		col = found
	}

	if till {
		if forward {
			col--
		} else {
			col++
		}
	}
	p.Col = col
	return p, true
}

// reverseFind flips the direction of a find kind for the , motion.
func reverseFind(kind Kind) Kind {
	switch kind {
	case KindFindChar:
		return KindFindCharBack
	case KindFindCharBack:
		return KindFindChar
	case KindTillChar:
		return KindTillCharBack
	case KindTillCharBack:
		return KindTillChar
	default:
		return kind
	}
}

// paragraphForward moves to the next blank line after the current
// paragraph, or document end.
func paragraphForward(v text.View, p text.Position) text.Position {
	last := v.LineCount() - 1
	n := p.Line
	// Leave any blank run under the cursor first.
	for n <= last && isBlankLine(v.Line(n)) {
		n++
	}
	for n <= last && !isBlankLine(v.Line(n)) {
		n++
	}
	if n > last {
		n = last
		return text.Position{Line: n, Col: maxCol(v, n)}
	}
	return text.Position{Line: n, Col: 0}
}

// paragraphBackward moves to the blank line before the current
// paragraph, or document start.
func paragraphBackward(v text.View, p text.Position) text.Position {
	n := p.Line
	for n > 0 && isBlankLine(v.Line(n)) {
		n--
	}
	for n > 0 && !isBlankLine(v.Line(n)) {
		n--
	}
	return text.Position{Line: n, Col: 0}
}

// sentenceForward moves to the start of the next sentence: past
// ., ! or ? followed by whitespace or line end.
func sentenceForward(v text.View, p text.Position) text.Position {
	last := v.LineCount() - 1
	runes := text.LineRunes(v, p.Line)
	line := p.Line
	col := p.Col

	for {
		col++
		if col >= len(runes) {
			if line >= last {
				return text.Position{Line: line, Col: maxCol(v, line)}
			}
			line++
			col = 0
			runes = text.LineRunes(v, line)
			if len(runes) == 0 {
				return text.Position{Line: line, Col: 0}
			}
			continue
		}
		if isSentenceEnd(runes, col-1) {
			// Skip the whitespace run to the sentence start.
			for col < len(runes) && unicode.IsSpace(runes[col]) {
				col++
			}
			if col < len(runes) {
				return text.Position{Line: line, Col: col}
			}
		}
	}
}

// sentenceBackward moves to the start of the current sentence, or the
// previous one when already at a sentence start.
func sentenceBackward(v text.View, p text.Position) text.Position {
	// Walk back collecting sentence starts until one is before p.
	start := text.Position{}
	cur := start
	for {
		next := sentenceForward(v, cur)
		if !next.Before(p) || next == cur {
			break
		}
		start = next
		cur = next
	}
	if start.Before(p) {
		return start
	}
	return text.Position{}
}

// isSentenceEnd reports whether the rune at i closes a sentence and is
// followed by whitespace.
func isSentenceEnd(runes []rune, i int) bool {
	if i < 0 || i >= len(runes) {
		return false
	}
	r := runes[i]
	if r != '.' && r != '!' && r != '?' {
		return false
	}
	return i+1 >= len(runes) || unicode.IsSpace(runes[i+1])
}

// pairs maps bracket characters for % matching.
var pairs = map[rune]struct {
	match   rune
	forward bool
}{
	'(': {')', true},
	')': {'(', false},
	'[': {']', true},
	']': {'[', false},
	'{': {'}', true},
	'}': {'{', false},
}

// matchPair jumps to the bracket matching the first bracket at or
// after the cursor on the current line.
func matchPair(v text.View, p text.Position) (text.Position, bool) {
	runes := text.LineRunes(v, p.Line)
	col := -1
	var open rune
	for i := p.Col; i < len(runes); i++ {
		if _, ok := pairs[runes[i]]; ok {
			col = i
			open = runes[i]
			break
		}
	}
	if col < 0 {
		return p, false
	}

	pair := pairs[open]
	depth := 0
	pos := text.Position{Line: p.Line, Col: col}
	for {
		r := text.RuneAt(v, pos)
		if r == open {
			depth++
		} else if r == pair.match {
			depth--
			if depth == 0 {
				return pos, true
			}
		}
		if pair.forward {
			if !advance(v, &pos) {
				return p, false
			}
		} else {
			if !retreat(v, &pos) {
				return p, false
			}
		}
	}
}

// advance moves pos one rune forward in document order.
func advance(v text.View, pos *text.Position) bool {
	if pos.Col+1 < text.LineLen(v, pos.Line) {
		pos.Col++
		return true
	}
	if pos.Line+1 >= v.LineCount() {
		return false
	}
	pos.Line++
	pos.Col = 0
	return true
}

// retreat moves pos one rune backward in document order.
func retreat(v text.View, pos *text.Position) bool {
	if pos.Col > 0 {
		pos.Col--
		return true
	}
	if pos.Line == 0 {
		return false
	}
	pos.Line--
	pos.Col = text.LineLen(v, pos.Line) - 1
	if pos.Col < 0 {
		pos.Col = 0
	}
	return true
}

// isBlankLine reports whether a line is empty or whitespace-only.
func isBlankLine(line string) bool {
	for _, r := range line {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// maxCol returns the last valid Normal-mode column of line n.
func maxCol(v text.View, n int) int {
	c := text.LineLen(v, n) - 1
	if c < 0 {
		c = 0
	}
	return c
}
