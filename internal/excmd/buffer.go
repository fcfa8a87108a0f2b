package excmd

// LineBuffer is the in-progress text of a command line, with a cursor
// offset and a navigable history of submitted lines (newest last).
type LineBuffer struct {
	buffer       []rune
	cursorPos    int
	history      []string
	historyIndex int
	savedBuffer  []rune
	prompt       rune
}

// NewLineBuffer creates an empty command-line buffer.
func NewLineBuffer() *LineBuffer {
	return &LineBuffer{
		buffer:       make([]rune, 0, 64),
		history:      make([]string, 0, 100),
		historyIndex: -1,
		prompt:       ':',
	}
}

// Reset clears the buffer for a fresh command line.
func (b *LineBuffer) Reset(prompt rune) {
	b.buffer = b.buffer[:0]
	b.cursorPos = 0
	b.historyIndex = -1
	b.savedBuffer = nil
	b.prompt = prompt
}

// Insert places a character at the cursor position.
func (b *LineBuffer) Insert(r rune) {
	if b.cursorPos >= len(b.buffer) {
		b.buffer = append(b.buffer, r)
	} else {
		b.buffer = append(b.buffer[:b.cursorPos+1], b.buffer[b.cursorPos:]...)
		b.buffer[b.cursorPos] = r
	}
	b.cursorPos++
}

// Backspace deletes the character before the cursor. Returns false at
// the start of the line, which callers treat as "leave command mode".
func (b *LineBuffer) Backspace() bool {
	if b.cursorPos == 0 {
		return false
	}
	b.buffer = append(b.buffer[:b.cursorPos-1], b.buffer[b.cursorPos:]...)
	b.cursorPos--
	return true
}

// MoveLeft moves the cursor left when possible.
func (b *LineBuffer) MoveLeft() {
	if b.cursorPos > 0 {
		b.cursorPos--
	}
}

// MoveRight moves the cursor right when possible.
func (b *LineBuffer) MoveRight() {
	if b.cursorPos < len(b.buffer) {
		b.cursorPos++
	}
}

// String returns the current line content.
func (b *LineBuffer) String() string {
	return string(b.buffer)
}

// CursorPos returns the cursor offset within the line.
func (b *LineBuffer) CursorPos() int {
	return b.cursorPos
}

// Prompt returns the prompt character the line was opened with.
func (b *LineBuffer) Prompt() rune {
	return b.prompt
}

// Submit records the line in history and returns it.
func (b *LineBuffer) Submit() string {
	line := string(b.buffer)
	if line != "" {
		if n := len(b.history); n == 0 || b.history[n-1] != line {
			b.history = append(b.history, line)
		}
	}
	return line
}

// HistoryPrev replaces the buffer with the previous history entry.
func (b *LineBuffer) HistoryPrev() bool {
	if len(b.history) == 0 {
		return false
	}
	if b.historyIndex == -1 {
		b.savedBuffer = append([]rune(nil), b.buffer...)
		b.historyIndex = len(b.history) - 1
	} else if b.historyIndex > 0 {
		b.historyIndex--
	} else {
		return false
	}
	b.buffer = []rune(b.history[b.historyIndex])
	b.cursorPos = len(b.buffer)
	return true
}

// HistoryNext replaces the buffer with the next history entry, or
// restores the saved in-progress line past the newest entry.
func (b *LineBuffer) HistoryNext() bool {
	if b.historyIndex == -1 {
		return false
	}
	b.historyIndex++
	if b.historyIndex >= len(b.history) {
		b.historyIndex = -1
		b.buffer = b.savedBuffer
		if b.buffer == nil {
			b.buffer = []rune{}
		}
		b.savedBuffer = nil
	} else {
		b.buffer = []rune(b.history[b.historyIndex])
	}
	b.cursorPos = len(b.buffer)
	return true
}

// History returns the submitted-line history, newest last.
func (b *LineBuffer) History() []string {
	return b.history
}
