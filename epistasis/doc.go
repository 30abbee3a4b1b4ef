// Package epistasis implements the pairwise case/control interaction test.
//
// The saturated model fits the 18 cells of a case table and a control table
// directly. The reduced model is the Kirkwood superposition approximation
//
//	p(a, b, s) ∝ P(a|b) · P(b|s) · P(s|a)
//
// built from the three two-way margins and renormalised over the 18 cells.
// Twice the log-likelihood difference is referred to a chi-square
// distribution with 4 degrees of freedom.
//
// Empty cells contribute nothing: 0 · log 0 is taken as 0, and a cell whose
// reduced-model probability is 0 is skipped.
package epistasis
