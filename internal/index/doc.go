// Package index maps stable string identifiers to dense positions.
//
// A Space is ordered: position i holds the i-th identifier given to New. An
// active set, backed by a bit set, records which positions take part in an
// analysis; Compact turns the active positions into a new dense Space.
package index
