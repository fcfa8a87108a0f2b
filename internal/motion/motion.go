package motion

import "github.com/dshills/modal/internal/text"

// Kind identifies a motion operation.
type Kind uint8

const (
	KindLeft Kind = iota
	KindRight
	KindUp
	KindDown
	KindWordForward
	KindWordBackward
	KindWordEnd
	KindWORDForward
	KindWORDBackward
	KindWORDEnd
	KindLineStart
	KindFirstNonBlank
	KindLineEnd
	KindColumn
	KindDocumentStart
	KindDocumentEnd
	KindFindChar
	KindFindCharBack
	KindTillChar
	KindTillCharBack
	KindRepeatFind
	KindRepeatFindReverse
	KindParagraphForward
	KindParagraphBackward
	KindSentenceForward
	KindSentenceBackward
	KindMatchPair
)

// Motion describes one motion token.
type Motion struct {
	// Name is the motion identifier (e.g., "wordForward").
	Name string

	// Kind selects the resolution algorithm.
	Kind Kind

	// Class is the span class an operator over this motion uses.
	Class text.Class

	// Repeatable motions multiply with a count; non-repeatable motions
	// either ignore it or treat it as an absolute target.
	Repeatable bool

	// Absolute motions interpret a count as a target (G, |) rather
	// than a repetition.
	Absolute bool

	// NeedsChar motions (f/F/t/T) require a character argument.
	NeedsChar bool
}

// Standard motions.
var (
	Left          = Motion{Name: "left", Kind: KindLeft, Class: text.CharExclusive, Repeatable: true}
	Right         = Motion{Name: "right", Kind: KindRight, Class: text.CharExclusive, Repeatable: true}
	Up            = Motion{Name: "up", Kind: KindUp, Class: text.Linewise, Repeatable: true}
	Down          = Motion{Name: "down", Kind: KindDown, Class: text.Linewise, Repeatable: true}
	WordForward   = Motion{Name: "wordForward", Kind: KindWordForward, Class: text.CharExclusive, Repeatable: true}
	WordBackward  = Motion{Name: "wordBackward", Kind: KindWordBackward, Class: text.CharExclusive, Repeatable: true}
	WordEnd       = Motion{Name: "wordEnd", Kind: KindWordEnd, Class: text.CharInclusive, Repeatable: true}
	WORDForward   = Motion{Name: "WORDForward", Kind: KindWORDForward, Class: text.CharExclusive, Repeatable: true}
	WORDBackward  = Motion{Name: "WORDBackward", Kind: KindWORDBackward, Class: text.CharExclusive, Repeatable: true}
	WORDEnd       = Motion{Name: "WORDEnd", Kind: KindWORDEnd, Class: text.CharInclusive, Repeatable: true}
	LineStart     = Motion{Name: "lineStart", Kind: KindLineStart, Class: text.CharExclusive}
	FirstNonBlank = Motion{Name: "firstNonBlank", Kind: KindFirstNonBlank, Class: text.CharExclusive}
	LineEnd       = Motion{Name: "lineEnd", Kind: KindLineEnd, Class: text.CharInclusive}
	Column        = Motion{Name: "column", Kind: KindColumn, Class: text.CharExclusive, Absolute: true}
	DocumentStart = Motion{Name: "documentStart", Kind: KindDocumentStart, Class: text.Linewise, Absolute: true}
	DocumentEnd   = Motion{Name: "documentEnd", Kind: KindDocumentEnd, Class: text.Linewise, Absolute: true}

	FindChar          = Motion{Name: "findChar", Kind: KindFindChar, Class: text.CharInclusive, Repeatable: true, NeedsChar: true}
	FindCharBack      = Motion{Name: "findCharBack", Kind: KindFindCharBack, Class: text.CharExclusive, Repeatable: true, NeedsChar: true}
	TillChar          = Motion{Name: "tillChar", Kind: KindTillChar, Class: text.CharInclusive, Repeatable: true, NeedsChar: true}
	TillCharBack      = Motion{Name: "tillCharBack", Kind: KindTillCharBack, Class: text.CharExclusive, Repeatable: true, NeedsChar: true}
	RepeatFind        = Motion{Name: "repeatFind", Kind: KindRepeatFind, Class: text.CharInclusive, Repeatable: true}
	RepeatFindReverse = Motion{Name: "repeatFindReverse", Kind: KindRepeatFindReverse, Class: text.CharInclusive, Repeatable: true}

	ParagraphForward  = Motion{Name: "paragraphForward", Kind: KindParagraphForward, Class: text.CharExclusive, Repeatable: true}
	ParagraphBackward = Motion{Name: "paragraphBackward", Kind: KindParagraphBackward, Class: text.CharExclusive, Repeatable: true}
	SentenceForward   = Motion{Name: "sentenceForward", Kind: KindSentenceForward, Class: text.CharExclusive, Repeatable: true}
	SentenceBackward  = Motion{Name: "sentenceBackward", Kind: KindSentenceBackward, Class: text.CharExclusive, Repeatable: true}
	MatchPair         = Motion{Name: "matchPair", Kind: KindMatchPair, Class: text.CharInclusive}
)

// motions maps single-key motion tokens to their definitions.
var motions = map[rune]*Motion{
	'h': &Left,
	'l': &Right,
	'k': &Up,
	'j': &Down,
	'w': &WordForward,
	'b': &WordBackward,
	'e': &WordEnd,
	'W': &WORDForward,
	'B': &WORDBackward,
	'E': &WORDEnd,
	'0': &LineStart,
	'^': &FirstNonBlank,
	'$': &LineEnd,
	'|': &Column,
	'G': &DocumentEnd,
	'f': &FindChar,
	'F': &FindCharBack,
	't': &TillChar,
	'T': &TillCharBack,
	';': &RepeatFind,
	',': &RepeatFindReverse,
	'}': &ParagraphForward,
	'{': &ParagraphBackward,
	')': &SentenceForward,
	'(': &SentenceBackward,
	'%': &MatchPair,
}

// gMotions maps g-prefixed motion tokens to their definitions.
var gMotions = map[rune]*Motion{
	'g': &DocumentStart, // gg
}

// Get returns the motion for the given key, or nil.
func Get(key rune) *Motion {
	return motions[key]
}

// GetG returns the g-prefixed motion for the given key, or nil.
func GetG(key rune) *Motion {
	return gMotions[key]
}

// IsCharSearch returns true if the key is a motion that requires a
// character argument.
func IsCharSearch(key rune) bool {
	m, ok := motions[key]
	return ok && m.NeedsChar
}
