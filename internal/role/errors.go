package role

import "errors"

var (
	// ErrTooManyCodes is returned for a fourth distinct non-missing code.
	ErrTooManyCodes = errors.New("more than three distinct genotype codes")

	// ErrThirdHomozygote is returned when both homozygous slots are filled and
	// another homozygous code appears.
	ErrThirdHomozygote = errors.New("third distinct homozygous code")

	// ErrSecondHeterozygote is returned when a heterozygous code appears while
	// the Aa slot already holds a different one.
	ErrSecondHeterozygote = errors.New("second distinct heterozygous code")

	// ErrInconsistentAlleles is returned in strict mode when a code shares no
	// allele with the codes already assigned.
	ErrInconsistentAlleles = errors.New("code is not biallelic with previously seen codes")

	// ErrInvalidHeader is returned for a header with an out-of-range state.
	ErrInvalidHeader = errors.New("invalid role header")
)
