// Package mode defines the editing modes the interpreter can be in.
//
// Exactly one mode is active per editing context. Normal is both the
// initial mode and the default return state; transitions happen only
// through completed commands, explicit mode-switch keys, or Escape.
package mode

// Mode identifies an editing mode.
type Mode uint8

const (
	// Normal is the command mode and the default return state.
	Normal Mode = iota

	// Insert accepts text input at the cursor.
	Insert

	// Replace overwrites the character under the cursor per keystroke.
	Replace

	// VisualChar extends a character-wise selection.
	VisualChar

	// VisualLine extends a line-wise selection.
	VisualLine

	// VisualBlock extends a rectangular selection.
	VisualBlock

	// OperatorPending is the transient state between an operator key
	// and its motion or text object.
	OperatorPending

	// CommandLine composes a colon-prefixed ex command.
	CommandLine
)

// String returns the mode identifier used in host notifications.
func (m Mode) String() string {
	switch m {
	case Normal:
		return "normal"
	case Insert:
		return "insert"
	case Replace:
		return "replace"
	case VisualChar:
		return "visual"
	case VisualLine:
		return "visual-line"
	case VisualBlock:
		return "visual-block"
	case OperatorPending:
		return "operator-pending"
	case CommandLine:
		return "command"
	default:
		return "unknown"
	}
}

// DisplayName returns a status-line form of the mode name.
func (m Mode) DisplayName() string {
	switch m {
	case Normal:
		return "NORMAL"
	case Insert:
		return "INSERT"
	case Replace:
		return "REPLACE"
	case VisualChar:
		return "VISUAL"
	case VisualLine:
		return "V-LINE"
	case VisualBlock:
		return "V-BLOCK"
	case OperatorPending:
		return "O-PENDING"
	case CommandLine:
		return "COMMAND"
	default:
		return "UNKNOWN"
	}
}

// IsVisual returns true for the three visual variants.
func (m Mode) IsVisual() bool {
	return m == VisualChar || m == VisualLine || m == VisualBlock
}
