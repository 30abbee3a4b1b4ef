package role

import (
	"fmt"

	"github.com/hupe1980/episcan/genotype"
	"github.com/hupe1980/episcan/internal/allele"
)

// Assigner runs the role state machine for one row at a time.
// It is not safe for concurrent use; use one Assigner per loading goroutine.
type Assigner struct {
	table  *allele.Table
	strict bool
	header Header
	lut    [allele.MaxCodes]genotype.Genotype
	known  [allele.MaxCodes]bool
}

// NewAssigner returns an Assigner over t. In strict mode a heterozygous code
// must share an allele with every homozygote already assigned, and vice versa.
func NewAssigner(t *allele.Table, strict bool) *Assigner {
	return &Assigner{table: t, strict: strict}
}

// Reset prepares the Assigner for a new row.
func (a *Assigner) Reset() {
	a.header = 0
	a.lut = [allele.MaxCodes]genotype.Genotype{}
	a.known = [allele.MaxCodes]bool{}
}

// Assign returns the role of code c, assigning a slot on first occurrence.
// allele.Unknown always resolves to Missing.
func (a *Assigner) Assign(c allele.Code) (genotype.Genotype, error) {
	if c == allele.Unknown {
		return genotype.Missing, nil
	}
	if a.known[c] {
		return a.lut[c], nil
	}

	ev := NewHeterozygote
	if a.table.IsHomozygous(c) {
		ev = NewHomozygote
	}

	state := a.header.State()
	next, slot, err := Next(state, ev)
	if err != nil {
		return genotype.Missing, fmt.Errorf("%w: %s in state %s (%s)",
			err, a.table.Alleles(c), state, a.header.Describe(a.table))
	}

	if a.strict {
		for _, g := range genotype.Called {
			prev := a.header.Slot(g)
			if prev == allele.Unknown || (ev == NewHomozygote && g != genotype.Het) {
				continue
			}
			if !a.table.Shares(prev, c) {
				return genotype.Missing, fmt.Errorf("%w: %s vs %s",
					ErrInconsistentAlleles, a.table.Alleles(c), a.table.Alleles(prev))
			}
		}
	}

	a.header = a.header.withSlot(slot, c).withState(next)
	a.lut[c] = slot
	a.known[c] = true
	return slot, nil
}

// Header returns the header built so far.
func (a *Assigner) Header() Header {
	return a.header
}
