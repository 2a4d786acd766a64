// Package suggest finds the closest known identifier to a misspelled one.
//
// It backs the "did you mean" hints printed for document nodes that no
// constructor parameter is bound to, and for bindings that reference a
// function the loaded package does not declare.
//
// Identifiers are compared after normalization: CamelCase is split into
// tokens, separators (_, -, space) are dropped and everything is
// lower-cased, so "first-name", "firstName" and "FIRST_NAME" are equal.
package suggest
