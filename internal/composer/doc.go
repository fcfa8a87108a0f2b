// Package composer implements the modal command interpreter: the state
// machine that turns a stream of key events into edit and selection
// requests against a host adapter.
//
// # Grammar
//
// Normal mode commands follow the Vim grammar:
//
//	[count][register][operator][count][motion|text-object]
//	[count][register][operator][operator]  (line-wise: dd, yy, cc)
//	[count][motion]
//	[count][register][simple-command]
//
// Counts multiply across the operator ("2d3w" deletes six words). A
// leading zero is the line-start motion, not a count digit. Repeating
// the operator key resolves to the whole current line.
//
// # Modes
//
// The composer owns the mode for its editing context: Normal, Insert,
// Replace, the three Visual variants, OperatorPending, and CommandLine.
// Escape cancels any pending command and returns to Normal without
// side effects. Mode-switch keys are only honored when no command is
// pending.
//
// # Usage
//
//	c := composer.New(adapter, "ctx", registers, recorder, opts)
//	out := c.Feed(event)
//	switch out.Kind {
//	case composer.OutcomeDispatched:
//	    // requests were submitted to the adapter
//	case composer.OutcomeConsumed:
//	    // more keys needed
//	case composer.OutcomeCancelled:
//	    // pending command cleared
//	}
//
// Each editing context owns one Composer. The register store and the
// macro recorder may be shared across contexts.
package composer
