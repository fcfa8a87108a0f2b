package textobj

// Scope selects the inner or around variant of a text object.
type Scope uint8

const (
	// Inner selects the minimal unit: delimiters and surrounding
	// whitespace excluded.
	Inner Scope = iota

	// Around includes delimiters and, where the object defines it, one
	// adjacent whitespace run.
	Around
)

// String returns a human-readable scope name.
func (s Scope) String() string {
	switch s {
	case Inner:
		return "inner"
	case Around:
		return "around"
	default:
		return "unknown"
	}
}

// Kind identifies the object resolution algorithm.
type Kind uint8

const (
	KindWord Kind = iota
	KindWORD
	KindSentence
	KindParagraph
	KindPair
	KindQuote
	KindTag
)

// Object describes one text object token.
type Object struct {
	// Name is the object identifier (e.g., "word", "paren").
	Name string

	// Kind selects the resolution algorithm.
	Kind Kind

	// Open and Close are the delimiters for pair objects; Open doubles
	// as the quote character for quote objects.
	Open  rune
	Close rune
}

// Standard text objects.
var (
	Word      = Object{Name: "word", Kind: KindWord}
	WORD      = Object{Name: "WORD", Kind: KindWORD}
	Sentence  = Object{Name: "sentence", Kind: KindSentence}
	Paragraph = Object{Name: "paragraph", Kind: KindParagraph}

	Paren   = Object{Name: "paren", Kind: KindPair, Open: '(', Close: ')'}
	Bracket = Object{Name: "bracket", Kind: KindPair, Open: '[', Close: ']'}
	Brace   = Object{Name: "brace", Kind: KindPair, Open: '{', Close: '}'}
	Angle   = Object{Name: "angle", Kind: KindPair, Open: '<', Close: '>'}

	DoubleQuote = Object{Name: "doubleQuote", Kind: KindQuote, Open: '"'}
	SingleQuote = Object{Name: "singleQuote", Kind: KindQuote, Open: '\''}
	Backtick    = Object{Name: "backtick", Kind: KindQuote, Open: '`'}

	Tag = Object{Name: "tag", Kind: KindTag}
)

// objects maps object keys to their definitions. Open and close
// bracket characters address the same pair object.
var objects = map[rune]*Object{
	'w':  &Word,
	'W':  &WORD,
	's':  &Sentence,
	'p':  &Paragraph,
	'(':  &Paren,
	')':  &Paren,
	'b':  &Paren,
	'[':  &Bracket,
	']':  &Bracket,
	'{':  &Brace,
	'}':  &Brace,
	'B':  &Brace,
	'<':  &Angle,
	'>':  &Angle,
	'"':  &DoubleQuote,
	'\'': &SingleQuote,
	'`':  &Backtick,
	't':  &Tag,
}

// Get returns the text object for the given key, or nil.
func Get(key rune) *Object {
	return objects[key]
}

// IsPrefix returns true if the key introduces a text object scope
// ('i' for inner, 'a' for around).
func IsPrefix(key rune) bool {
	return key == 'i' || key == 'a'
}

// ScopeFor returns the scope selected by a prefix key.
func ScopeFor(key rune) Scope {
	if key == 'a' {
		return Around
	}
	return Inner
}
