// Package macro records raw key-event sequences into register slots
// and replays them through the composer.
//
// Recording stores literal events, not resolved commands, so replay
// re-resolves motions and text objects against the buffer state at
// replay time. At most one recording is active at a time. Playing the
// register currently being recorded is rejected; playing a different,
// finished macro from within a recording is permitted and its events
// fold into the outer recording.
package macro
