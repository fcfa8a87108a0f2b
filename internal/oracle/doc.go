// Package oracle drives an external Neovim process as a test oracle:
// the same key script is applied to the same starting buffer and the
// resulting content is diffed against the interpreter's own result.
//
// The oracle is strictly a test mechanism. Runs are skipped unless the
// nvim binary is present and MODAL_ORACLE is set in the environment.
package oracle
