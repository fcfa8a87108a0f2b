// Package motion defines the motion table and resolves motion tokens
// against a read-only buffer view.
//
// Resolution is a pure function of the supplied view: given a start
// position, a motion, and a count it computes the destination position
// and the span class an operator over the motion would use. The only
// state carried between events is the goal column for vertical
// movement and the last find-character request, both owned by the
// caller and passed in explicitly.
package motion
