package genotype

// Genotype is the role of one call within its marker.
//
// The numeric value is the 2-bit role code written into the bit-planes:
// bit 0 is plane α and bit 1 is plane β.
type Genotype uint8

const (
	// Missing is an uncalled cell (α=0, β=0).
	Missing Genotype = iota
	// HomMajor is the first homozygote observed for the marker, AA (α=1, β=0).
	HomMajor
	// Het is the heterozygote, Aa (α=0, β=1).
	Het
	// HomMinor is the second homozygote observed for the marker, aa (α=1, β=1).
	HomMinor
)

// Called lists the three non-missing roles in table order.
var Called = [3]Genotype{HomMajor, Het, HomMinor}

// String returns the symbolic role name.
func (g Genotype) String() string {
	switch g {
	case Missing:
		return "--"
	case HomMajor:
		return "AA"
	case Het:
		return "Aa"
	case HomMinor:
		return "aa"
	default:
		return "??"
	}
}

// IsCalled reports whether g is one of AA, Aa, aa.
func (g Genotype) IsCalled() bool {
	return g >= HomMajor && g <= HomMinor
}

// Index returns the table index (0..2) of a called genotype.
// It panics for Missing.
func (g Genotype) Index() int {
	if !g.IsCalled() {
		panic("genotype: Index of uncalled genotype " + g.String())
	}
	return int(g) - 1
}

// Parse parses the symbolic names produced by String.
func Parse(s string) (Genotype, bool) {
	switch s {
	case "AA":
		return HomMajor, true
	case "Aa":
		return Het, true
	case "aa":
		return HomMinor, true
	case "--", "", "NA":
		return Missing, true
	default:
		return Missing, false
	}
}
