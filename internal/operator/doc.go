// Package operator maps operator tokens to concrete edits.
//
// Given a resolved span, the table produces the EditRequest the host
// should apply, the post-edit cursor placement, and the text captured
// for the register store. Linewise spans always cover whole lines with
// their trailing newline; charwise spans respect exact rune bounds;
// blockwise spans apply per covered line across the column rectangle.
package operator
