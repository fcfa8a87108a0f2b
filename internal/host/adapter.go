package host

import (
	"errors"

	"github.com/dshills/modal/internal/mode"
	"github.com/dshills/modal/internal/text"
)

// ErrRejected is the sentinel hosts wrap when declining an edit, for
// example on a read-only buffer. The interpreter surfaces the message
// and clears the pending command without assuming partial application.
var ErrRejected = errors.New("edit rejected by host")

// Snapshot is the read-only editor state for one event.
type Snapshot struct {
	// View exposes buffer content.
	View text.View

	// Cursor is the primary cursor position.
	Cursor text.Position

	// Selection is the active selection, if any.
	Selection *text.Span
}

// EditRequest proposes a buffer mutation.
// Spans has one element for charwise and linewise edits and one
// element per covered line for blockwise edits; all spans refer to the
// snapshot the request was resolved against.
type EditRequest struct {
	// Spans are the regions to replace.
	Spans []text.Span

	// Text replaces the spanned content; empty means deletion. For
	// blockwise requests Text holds one piece per span separated by
	// newlines.
	Text string

	// Shape tags how Text is structured.
	Shape text.Shape
}

// EditResult reports the outcome of an applied edit.
type EditResult struct {
	// Cursor is the host's resulting cursor position.
	Cursor text.Position
}

// SelectionRequest moves the cursor or extends the selection without
// mutating content.
type SelectionRequest struct {
	// Cursor is the new cursor position.
	Cursor text.Position

	// Selection is the new selection, or nil to collapse it.
	Selection *text.Span
}

// ActionFunc is a named operation exposed to the host's action or
// palette facility.
type ActionFunc func() error

// Adapter is the contract a host implements to embed the interpreter.
// All methods are called synchronously from the event being processed.
type Adapter interface {
	// ReadSnapshot returns the current editor state for a context.
	ReadSnapshot(contextID string) (Snapshot, error)

	// SubmitEdit applies an edit through the host's undo-aware
	// mutation path and returns the resulting cursor. Errors wrapping
	// ErrRejected surface to the user as a declined edit.
	SubmitEdit(contextID string, req EditRequest) (EditResult, error)

	// SubmitSelection moves the cursor or selection.
	SubmitSelection(contextID string, req SelectionRequest) error

	// NotifyModeChanged informs the host of a mode transition so it
	// can update indicators and cursor shape.
	NotifyModeChanged(contextID string, m mode.Mode)

	// RegisterAction exposes a named interpreter operation to the
	// host's action-invocation facility.
	RegisterAction(name string, fn ActionFunc)
}
