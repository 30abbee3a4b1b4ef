// Package testutil provides testing utilities for episcan.
//
// This package is intended for use in tests and benchmarks only.
// It generates random biallelic genotype matrices and computes reference
// distributions and contingency tables one cell at a time.
//
// # Random Matrices
//
//	rng := testutil.NewRNG(seed)
//	m := rng.Matrix(markers, individuals, 0.05) // 5% missing calls
//	for r, calls := range m.Calls { ... }
//
// # Reference Counts
//
//	want := testutil.NaiveContingency(m.Roles[a], m.Roles[b], nil)
package testutil
