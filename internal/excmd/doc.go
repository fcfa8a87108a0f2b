// Package excmd parses and executes colon-prefixed ex commands.
//
// A line has the form [range]command[args]. Parsing never mutates
// anything; execution resolves the command against a buffer view and
// produces edit requests plus an optional named host action. Multiple
// per-line edits are emitted in descending document order so each
// request's coordinates stay valid while the host applies them
// sequentially against the same snapshot.
package excmd
