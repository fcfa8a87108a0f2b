package operator

// EditKind identifies what an operator does to its span.
type EditKind uint8

const (
	// Delete removes the spanned text.
	Delete EditKind = iota

	// Change removes the spanned text and enters Insert mode.
	Change

	// Yank captures the spanned text without mutating the buffer.
	Yank

	// Indent shifts covered lines right by the configured width.
	Indent

	// Outdent shifts covered lines left by the configured width.
	Outdent

	// Lower converts the spanned text to lowercase.
	Lower

	// Upper converts the spanned text to uppercase.
	Upper

	// ToggleCase swaps the case of every cased rune in the span.
	ToggleCase
)

// String returns a human-readable kind name.
func (k EditKind) String() string {
	switch k {
	case Delete:
		return "delete"
	case Change:
		return "change"
	case Yank:
		return "yank"
	case Indent:
		return "indent"
	case Outdent:
		return "outdent"
	case Lower:
		return "lower"
	case Upper:
		return "upper"
	case ToggleCase:
		return "toggle-case"
	default:
		return "unknown"
	}
}

// Operator describes one operator token.
type Operator struct {
	// Name is the operator identifier (e.g., "delete").
	Name string

	// Key is the token that triggers the operator.
	Key rune

	// Kind selects the edit behavior.
	Kind EditKind

	// ChangesText indicates the operator mutates the buffer.
	ChangesText bool

	// EntersInsert indicates the operator ends in Insert mode.
	EntersInsert bool

	// WritesRegister indicates the captured text goes to a register.
	WritesRegister bool
}

// Standard operators.
var (
	OpDelete = Operator{Name: "delete", Key: 'd', Kind: Delete, ChangesText: true, WritesRegister: true}
	OpChange = Operator{Name: "change", Key: 'c', Kind: Change, ChangesText: true, EntersInsert: true, WritesRegister: true}
	OpYank   = Operator{Name: "yank", Key: 'y', Kind: Yank, WritesRegister: true}

	OpIndent  = Operator{Name: "indent", Key: '>', Kind: Indent, ChangesText: true}
	OpOutdent = Operator{Name: "outdent", Key: '<', Kind: Outdent, ChangesText: true}

	OpLower      = Operator{Name: "lower", Key: 'u', Kind: Lower, ChangesText: true}
	OpUpper      = Operator{Name: "upper", Key: 'U', Kind: Upper, ChangesText: true}
	OpToggleCase = Operator{Name: "toggleCase", Key: '~', Kind: ToggleCase, ChangesText: true}
)

// operators maps operator tokens to their definitions.
var operators = map[rune]*Operator{
	'd': &OpDelete,
	'c': &OpChange,
	'y': &OpYank,
	'>': &OpIndent,
	'<': &OpOutdent,
}

// gOperators maps g-prefixed operator tokens to their definitions.
var gOperators = map[rune]*Operator{
	'u': &OpLower,
	'U': &OpUpper,
	'~': &OpToggleCase,
}

// Get returns the operator for the given key, or nil.
func Get(key rune) *Operator {
	return operators[key]
}

// GetG returns the g-prefixed operator for the given key, or nil.
func GetG(key rune) *Operator {
	return gOperators[key]
}
