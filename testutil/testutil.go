package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/episcan/genotype"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Intn returns, as an int, a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Matrix is a random genotype matrix with its expected roles.
type Matrix struct {
	// Calls holds one allele-pair string per individual for every marker.
	Calls [][]string
	// Roles holds the role each call must decode to.
	Roles [][]genotype.Genotype
}

const nucleotides = "ACGT"

// Matrix generates markers × individuals biallelic calls. Each marker draws
// two distinct nucleotides and a minor allele frequency; calls follow
// Hardy-Weinberg proportions and are missing with probability missingRate.
func (r *RNG) Matrix(markers, individuals int, missingRate float64) Matrix {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := Matrix{
		Calls: make([][]string, markers),
		Roles: make([][]genotype.Genotype, markers),
	}
	for i := range markers {
		perm := r.rand.Perm(len(nucleotides))
		a, b := nucleotides[perm[0]], nucleotides[perm[1]]
		maf := 0.05 + 0.45*r.rand.Float64()

		calls := make([]string, individuals)
		for j := range calls {
			if r.rand.Float64() < missingRate {
				calls[j] = "00"
				continue
			}
			x, y := a, a
			if r.rand.Float64() < maf {
				x = b
			}
			if r.rand.Float64() < maf {
				y = b
			}
			calls[j] = string([]byte{x, y})
		}
		m.Calls[i] = calls
		m.Roles[i] = Roles(calls)
	}
	return m
}

// Split assigns every column to cases with probability caseRate, to controls
// with probability controlRate, and to neither otherwise. Empty groups are
// returned as empty, non-nil slices.
func (r *RNG) Split(columns int, caseRate, controlRate float64) (cases, controls []int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cases, controls = []int{}, []int{}
	for c := range columns {
		switch u := r.rand.Float64(); {
		case u < caseRate:
			cases = append(cases, c)
		case u < caseRate+controlRate:
			controls = append(controls, c)
		}
	}
	return cases, controls
}

// Roles assigns roles to the calls of one biallelic marker by first
// occurrence: the first homozygote is AA, the second aa. Calls containing
// '0' are missing.
func Roles(calls []string) []genotype.Genotype {
	roles := make([]genotype.Genotype, len(calls))
	var homs []string
	for i, c := range calls {
		switch {
		case c[0] == '0' || c[1] == '0':
			roles[i] = genotype.Missing
		case c[0] != c[1]:
			roles[i] = genotype.Het
		default:
			idx := -1
			for k, h := range homs {
				if h == c {
					idx = k
				}
			}
			if idx < 0 {
				homs = append(homs, c)
				idx = len(homs) - 1
			}
			roles[i] = genotype.HomMajor
			if idx == 1 {
				roles[i] = genotype.HomMinor
			}
		}
	}
	return roles
}

// All returns the columns 0..n-1.
func All(n int) []int {
	cols := make([]int, n)
	for i := range cols {
		cols[i] = i
	}
	return cols
}

// NaiveDistribution counts roles one cell at a time over the include
// columns. An empty include counts nothing; use All for every column.
func NaiveDistribution(roles []genotype.Genotype, include []int) genotype.Distribution {
	var d genotype.Distribution
	each(include, func(c int) {
		d.Add(roles[c], 1)
	})
	return d
}

// NaiveContingency counts the joint table of two role rows one cell at a time.
func NaiveContingency(a, b []genotype.Genotype, include []int) [3][3]int {
	var cells [3][3]int
	each(include, func(c int) {
		if a[c].IsCalled() && b[c].IsCalled() {
			cells[a[c].Index()][b[c].Index()]++
		}
	})
	return cells
}

func each(include []int, fn func(int)) {
	for _, c := range include {
		fn(c)
	}
}
