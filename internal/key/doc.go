// Package key defines the key event vocabulary consumed by the
// interpreter.
//
// Hosts translate their native input events into key.Event values and
// feed them to a composer. Events can also be written in Vim notation
// ("a", "<Esc>", "<C-v>") and parsed back, which is how keymap
// configuration and recorded macros name keys.
package key
