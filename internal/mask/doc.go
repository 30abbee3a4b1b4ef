// Package mask partitions individuals into cases and controls.
//
// Select builds an immutable Snapshot: two disjoint word-aligned bit-vectors
// over the columns of a genotype store, the case and control planes of every
// loaded row gathered into dense vectors, and each row's case/control
// genotype distribution. Snapshots are published with an atomic pointer, so
// a scan that pinned one keeps a consistent view while a new selection is
// built.
package mask
