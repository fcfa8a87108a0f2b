// Package host defines the boundary between the interpreter and the
// application that owns the text buffer.
//
// The interpreter never mutates buffer storage. It reads a Snapshot at
// the start of each event, resolves the command against it, and
// proposes mutations as EditRequests through the Adapter. The host
// applies them on its own undo-aware mutation path and reports the
// resulting cursor. Selection changes that do not touch content travel
// as SelectionRequests.
package host
