// Package genotype defines the value types exchanged with callers: the
// per-cell Genotype role, per-marker Distribution and the 3×3 joint
// contingency Table between two markers.
//
// All types are plain values. They own no backing store and are safe to copy.
package genotype
