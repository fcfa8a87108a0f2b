package textobj

import (
	"unicode"

	"github.com/dshills/modal/internal/text"
)

// Resolve computes the span of an object at pos against v.
// ok is false when pos is not inside any instance of the object.
// Returned spans are charwise-inclusive except paragraphs, which are
// linewise.
func Resolve(v text.View, pos text.Position, obj *Object, scope Scope) (text.Span, bool) {
	switch obj.Kind {
	case KindWord:
		return wordSpan(v, pos, scope, false)
	case KindWORD:
		return wordSpan(v, pos, scope, true)
	case KindSentence:
		return sentenceSpan(v, pos, scope)
	case KindParagraph:
		return paragraphSpan(v, pos, scope)
	case KindPair:
		return pairSpan(v, pos, obj.Open, obj.Close, scope)
	case KindQuote:
		return quoteSpan(v, pos, obj.Open, scope)
	case KindTag:
		return tagSpan(v, pos, scope)
	default:
		return text.Span{}, false
	}
}

// classAt partitions runes as word motions do; whitespace under the
// cursor selects the whitespace run itself.
func classAt(runes []rune, col int, big bool) int {
	r := runes[col]
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

// wordSpan resolves iw/aw/iW/aW on the cursor line.
func wordSpan(v text.View, pos text.Position, scope Scope, big bool) (text.Span, bool) {
	runes := text.LineRunes(v, pos.Line)
	if len(runes) == 0 {
		return text.Span{}, false
	}
	col := pos.Col
	if col >= len(runes) {
		col = len(runes) - 1
	}

	cls := classAt(runes, col, big)
	start, end := col, col
	for start > 0 && classAt(runes, start-1, big) == cls {
		start--
	}
	for end+1 < len(runes) && classAt(runes, end+1, big) == cls {
		end++
	}

	if scope == Around && cls != 0 {
		// Prefer the trailing whitespace run; fall back to leading.
		// With neither, around degrades to inner.
		if end+1 < len(runes) && unicode.IsSpace(runes[end+1]) {
			for end+1 < len(runes) && unicode.IsSpace(runes[end+1]) {
				end++
			}
		} else if start > 0 && unicode.IsSpace(runes[start-1]) {
			for start > 0 && unicode.IsSpace(runes[start-1]) {
				start--
			}
		}
	}

	return text.NewSpan(
		text.Position{Line: pos.Line, Col: start},
		text.Position{Line: pos.Line, Col: end},
		text.CharInclusive,
	), true
}

// sentenceSpan resolves is/as on the cursor line.
func sentenceSpan(v text.View, pos text.Position, scope Scope) (text.Span, bool) {
	runes := text.LineRunes(v, pos.Line)
	if len(runes) == 0 {
		return text.Span{}, false
	}
	col := pos.Col
	if col >= len(runes) {
		col = len(runes) - 1
	}

	// Sentence boundaries: after . ! ? followed by whitespace.
	isEnd := func(i int) bool {
		r := runes[i]
		if r != '.' && r != '!' && r != '?' {
			return false
		}
		return i+1 >= len(runes) || unicode.IsSpace(runes[i+1])
	}

	start := 0
	for i := col - 1; i >= 0; i-- {
		if isEnd(i) {
			start = i + 1
			for start < len(runes) && unicode.IsSpace(runes[start]) {
				start++
			}
			break
		}
	}

	end := len(runes) - 1
	for i := col; i < len(runes); i++ {
		if isEnd(i) {
			end = i
			break
		}
	}

	if scope == Around {
		oldEnd := end
		for end+1 < len(runes) && unicode.IsSpace(runes[end+1]) {
			end++
		}
		if end == oldEnd {
			for start > 0 && unicode.IsSpace(runes[start-1]) {
				start--
			}
		}
	}

	return text.NewSpan(
		text.Position{Line: pos.Line, Col: start},
		text.Position{Line: pos.Line, Col: end},
		text.CharInclusive,
	), true
}

// paragraphSpan resolves ip/ap as a linewise span.
func paragraphSpan(v text.View, pos text.Position, scope Scope) (text.Span, bool) {
	last := v.LineCount() - 1
	blank := isBlank(v.Line(pos.Line))

	start, end := pos.Line, pos.Line
	same := func(n int) bool { return isBlank(v.Line(n)) == blank }
	for start > 0 && same(start-1) {
		start--
	}
	for end < last && same(end+1) {
		end++
	}

	if scope == Around && !blank {
		oldEnd := end
		for end < last && isBlank(v.Line(end+1)) {
			end++
		}
		if end == oldEnd {
			for start > 0 && isBlank(v.Line(start-1)) {
				start--
			}
		}
	}

	return text.NewSpan(
		text.Position{Line: start},
		text.Position{Line: end},
		text.Linewise,
	), true
}

// pairSpan resolves i(/a( and friends by scanning outward from pos for
// the nearest enclosing unmatched pair.
func pairSpan(v text.View, pos text.Position, open, close rune, scope Scope) (text.Span, bool) {
	openPos, ok := scanBack(v, pos, open, close)
	if !ok {
		return text.Span{}, false
	}
	closePos, ok := scanForward(v, pos, open, close)
	if !ok {
		return text.Span{}, false
	}

	if scope == Around {
		return text.NewSpan(openPos, closePos, text.CharInclusive), true
	}

	inStart := openPos
	if !advance(v, &inStart) {
		return text.Span{}, false
	}
	inEnd := closePos
	if !retreat(v, &inEnd) {
		return text.Span{}, false
	}
	if inStart.After(inEnd) {
		// Empty pair: inner resolves to the zero-width span at the
		// closing delimiter, which operators treat as empty.
		return text.Span{Start: inStart, End: inStart, Class: text.CharExclusive}, true
	}
	return text.NewSpan(inStart, inEnd, text.CharInclusive), true
}

// scanBack finds the nearest unmatched open delimiter at or before pos.
func scanBack(v text.View, pos text.Position, open, close rune) (text.Position, bool) {
	p := pos
	depth := 0
	for {
		r := text.RuneAt(v, p)
		if r == close && !(p == pos) {
			depth++
		} else if r == open {
			if depth == 0 {
				return p, true
			}
			depth--
		}
		if !retreat(v, &p) {
			return text.Position{}, false
		}
	}
}

// scanForward finds the nearest unmatched close delimiter at or after
// pos.
func scanForward(v text.View, pos text.Position, open, close rune) (text.Position, bool) {
	p := pos
	depth := 0
	for {
		r := text.RuneAt(v, p)
		if r == open && !(p == pos) {
			depth++
		} else if r == close {
			if depth == 0 {
				return p, true
			}
			depth--
		}
		if !advance(v, &p) {
			return text.Position{}, false
		}
	}
}

// quoteSpan resolves i"/a" on the cursor line. Quote pairing is
// line-local: quotes alternate open/close from the line start.
func quoteSpan(v text.View, pos text.Position, quote rune, scope Scope) (text.Span, bool) {
	runes := text.LineRunes(v, pos.Line)
	col := pos.Col

	// Collect quote columns; pair them in order.
	var cols []int
	for i, r := range runes {
		if r == quote {
			cols = append(cols, i)
		}
	}
	if len(cols) < 2 {
		return text.Span{}, false
	}

	openCol, closeCol := -1, -1
	for i := 0; i+1 < len(cols); i += 2 {
		if col <= cols[i+1] {
			openCol, closeCol = cols[i], cols[i+1]
			break
		}
	}
	if openCol < 0 {
		return text.Span{}, false
	}

	start, end := openCol, closeCol
	if scope == Inner {
		start++
		end--
		if start > end {
			p := text.Position{Line: pos.Line, Col: start}
			return text.Span{Start: p, End: p, Class: text.CharExclusive}, true
		}
	} else {
		// Around quotes also consumes one adjacent whitespace run,
		// trailing preferred.
		oldEnd := end
		for end+1 < len(runes) && unicode.IsSpace(runes[end+1]) {
			end++
		}
		if end == oldEnd {
			for start > 0 && unicode.IsSpace(runes[start-1]) {
				start--
			}
		}
	}

	return text.NewSpan(
		text.Position{Line: pos.Line, Col: start},
		text.Position{Line: pos.Line, Col: end},
		text.CharInclusive,
	), true
}

// tagSpan resolves it/at against the nearest enclosing XML-style tag
// pair on surrounding lines.
func tagSpan(v text.View, pos text.Position, scope Scope) (text.Span, bool) {
	// Find the closing tag at or after pos, then match its opener
	// scanning backward.
	closeStart, closeEnd, name, ok := findCloseTag(v, pos)
	if !ok {
		return text.Span{}, false
	}
	openStart, openEnd, ok := findOpenTag(v, pos, name)
	if !ok {
		return text.Span{}, false
	}

	if scope == Around {
		return text.NewSpan(openStart, closeEnd, text.CharInclusive), true
	}

	inStart := openEnd
	if !advance(v, &inStart) {
		return text.Span{}, false
	}
	inEnd := closeStart
	if !retreat(v, &inEnd) {
		return text.Span{}, false
	}
	if inStart.After(inEnd) {
		return text.Span{Start: inStart, End: inStart, Class: text.CharExclusive}, true
	}
	return text.NewSpan(inStart, inEnd, text.CharInclusive), true
}

// findCloseTag locates the first </name> ending at or after pos.
// Returns the positions of '<' and '>' and the tag name.
func findCloseTag(v text.View, pos text.Position) (start, end text.Position, name string, ok bool) {
	for line := pos.Line; line < v.LineCount(); line++ {
		runes := text.LineRunes(v, line)
		for i := 0; i+1 < len(runes); i++ {
			if runes[i] != '<' || runes[i+1] != '/' {
				continue
			}
			j := i + 2
			k := j
			for k < len(runes) && runes[k] != '>' {
				k++
			}
			if k >= len(runes) {
				continue
			}
			// On the cursor line, a closing tag entirely before the
			// cursor does not enclose it.
			if line == pos.Line && k < pos.Col {
				continue
			}
			return text.Position{Line: line, Col: i},
				text.Position{Line: line, Col: k},
				string(runes[j:k]), true
		}
	}
	return text.Position{}, text.Position{}, "", false
}

// findOpenTag locates the nearest <name ...> at or before pos.
func findOpenTag(v text.View, pos text.Position, name string) (start, end text.Position, ok bool) {
	open := "<" + name
	for line := pos.Line; line >= 0; line-- {
		runes := text.LineRunes(v, line)
		limit := len(runes)
		for i := limit - len(open); i >= 0; i-- {
			if string(runes[i:i+len(open)]) != open {
				continue
			}
			// Next rune must terminate the name.
			if i+len(open) < len(runes) {
				r := runes[i+len(open)]
				if r != '>' && r != ' ' && r != '\t' {
					continue
				}
			}
			k := i + len(open)
			for k < len(runes) && runes[k] != '>' {
				k++
			}
			if k >= len(runes) {
				continue
			}
			startPos := text.Position{Line: line, Col: i}
			if line == pos.Line && startPos.After(pos) {
				continue
			}
			return startPos, text.Position{Line: line, Col: k}, true
		}
	}
	return text.Position{}, text.Position{}, false
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

// isBlank reports whether a line is empty or whitespace-only.
func isBlank(line string) bool {
	for _, r := range line {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
