package role

import (
	"fmt"

	"github.com/hupe1980/episcan/genotype"
	"github.com/hupe1980/episcan/internal/allele"
)

// Header is the packed 16-bit per-marker role record.
type Header uint16

const (
	slotBits   = 4
	slotMask   = 1<<slotBits - 1
	stateShift = 12
	stateMask  = 0b111
)

func slotShift(g genotype.Genotype) uint {
	return uint(g.Index() * slotBits)
}

// State returns the assignment state recorded in h.
func (h Header) State() State {
	return State(h >> stateShift & stateMask)
}

// Slot returns the code assigned to role g, or allele.Unknown when unfilled.
func (h Header) Slot(g genotype.Genotype) allele.Code {
	return allele.Code(h >> slotShift(g) & slotMask)
}

func (h Header) withSlot(g genotype.Genotype, c allele.Code) Header {
	sh := slotShift(g)
	return h&^(slotMask<<sh) | Header(c)<<sh
}

func (h Header) withState(s State) Header {
	return h&^(stateMask<<stateShift) | Header(s)<<stateShift
}

// Lookup expands h into a code→role table. Codes not in h map to Missing.
func (h Header) Lookup() [allele.MaxCodes]genotype.Genotype {
	var lut [allele.MaxCodes]genotype.Genotype
	for _, g := range genotype.Called {
		if c := h.Slot(g); c != allele.Unknown {
			lut[c] = g
		}
	}
	return lut
}

// Describe renders h with the allele letters of t, e.g. "AA=AA Aa=AC aa=CC".
func (h Header) Describe(t *allele.Table) string {
	return fmt.Sprintf("AA=%s Aa=%s aa=%s (%s)",
		t.Alleles(h.Slot(genotype.HomMajor)),
		t.Alleles(h.Slot(genotype.Het)),
		t.Alleles(h.Slot(genotype.HomMinor)),
		h.State())
}
