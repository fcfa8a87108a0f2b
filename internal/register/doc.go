// Package register implements the register store: named slots holding
// shape-tagged text produced by yank and delete operations.
//
// The store is process-wide and shared by every editing context.
// Access is mutex-guarded with last-writer-wins semantics; contexts are
// not otherwise coordinated.
package register
