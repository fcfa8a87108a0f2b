// Package textobj resolves text objects: structural spans (words,
// sentences, paragraphs, delimiter pairs, quoted strings, tags)
// addressed independently of exact cursor position.
//
// Objects resolve in an inner or around scope. Resolution failure is a
// NoMatch, reported as ok=false rather than an error; the composer
// cancels the pending command when a target does not resolve.
package textobj
