// Package config holds interpreter options and loads them from a Lua
// rc script.
//
// The rc script runs in a sandboxed Lua state exposing three
// functions:
//
//	set(name, value)     -- set an option (shiftwidth, tabstop, ignorecase)
//	map(mode, lhs, rhs)  -- install a key mapping
//	unmap(mode, lhs)     -- remove a key mapping
//
// Key sequences use Vim notation ("<Esc>", "<C-x>", "dd"). Mode names
// are "normal", "insert", and "visual".
package config
