package genotype

import "fmt"

// Distribution holds the genotype counts of one marker over a column subset.
// The four counts sum to the cardinality of that subset.
type Distribution struct {
	HomMajor int `json:"AA"`
	Het      int `json:"Aa"`
	HomMinor int `json:"aa"`
	Missing  int `json:"missing"`
}

// Count returns the count for g.
func (d Distribution) Count(g Genotype) int {
	switch g {
	case HomMajor:
		return d.HomMajor
	case Het:
		return d.Het
	case HomMinor:
		return d.HomMinor
	default:
		return d.Missing
	}
}

// Add increments the count for g by n.
func (d *Distribution) Add(g Genotype, n int) {
	switch g {
	case HomMajor:
		d.HomMajor += n
	case Het:
		d.Het += n
	case HomMinor:
		d.HomMinor += n
	default:
		d.Missing += n
	}
}

// Called returns the number of non-missing calls.
func (d Distribution) Called() int {
	return d.HomMajor + d.Het + d.HomMinor
}

// Total returns the size of the column subset.
func (d Distribution) Total() int {
	return d.Called() + d.Missing
}

// Plus returns the cell-wise sum of d and o.
func (d Distribution) Plus(o Distribution) Distribution {
	return Distribution{
		HomMajor: d.HomMajor + o.HomMajor,
		Het:      d.Het + o.Het,
		HomMinor: d.HomMinor + o.HomMinor,
		Missing:  d.Missing + o.Missing,
	}
}

// MinorAlleleFrequency returns the frequency of the allele carried by aa
// among called individuals, folded to at most 0.5. It returns 0 when nothing
// is called.
func (d Distribution) MinorAlleleFrequency() float64 {
	n := d.Called()
	if n == 0 {
		return 0
	}
	f := float64(2*d.HomMinor+d.Het) / float64(2*n)
	if f > 0.5 {
		f = 1 - f
	}
	return f
}

func (d Distribution) String() string {
	return fmt.Sprintf("{AA:%d Aa:%d aa:%d missing:%d}", d.HomMajor, d.Het, d.HomMinor, d.Missing)
}

// CaseControlDistribution is a marker's distribution split by group.
type CaseControlDistribution struct {
	Case    Distribution `json:"case"`
	Control Distribution `json:"control"`
}

// Combined returns the sum of the case and control distributions.
func (c CaseControlDistribution) Combined() Distribution {
	return c.Case.Plus(c.Control)
}
