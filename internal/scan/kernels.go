package scan

import (
	"github.com/hupe1980/episcan/genotype"
	"github.com/hupe1980/episcan/internal/bitword"
	"github.com/hupe1980/episcan/internal/store"
)

func roles(alpha, beta bitword.Word) [3]bitword.Word {
	return [3]bitword.Word{alpha &^ beta, beta &^ alpha, alpha & beta}
}

// distribution counts the roles of p restricted to mask over n columns.
// A nil mask selects all columns.
func distribution(p store.Planes, mask []bitword.Word, n int) genotype.Distribution {
	if mask == nil {
		return p.Distribution(n)
	}

	var d genotype.Distribution
	for i, m := range mask {
		if m == 0 {
			continue
		}
		r := roles(p.Alpha[i]&m, p.Beta[i]&m)
		d.HomMajor += bitword.PopCount(r[0])
		d.Het += bitword.PopCount(r[1])
		d.HomMinor += bitword.PopCount(r[2])
	}
	d.Missing = n - d.Called()
	return d
}

// contingency9 counts all nine cells of a and b. A nil mask selects all
// columns.
func contingency9(a, b store.Planes, mask []bitword.Word, cells *[3][3]int) {
	for i := range a.Alpha {
		aα, aβ := a.Alpha[i], a.Beta[i]
		if mask != nil {
			aα &= mask[i]
			aβ &= mask[i]
		}
		if aα|aβ == 0 {
			continue
		}
		ra := roles(aα, aβ)
		rb := roles(b.Alpha[i], b.Beta[i])
		for x := range 3 {
			if ra[x] == 0 {
				continue
			}
			for y := range 3 {
				cells[x][y] += bitword.PopCount(ra[x] & rb[y])
			}
		}
	}
}

// contingency4 counts only the AA/Aa × AA/Aa cells.
func contingency4(a, b store.Planes, cells *[3][3]int) {
	for i := range a.Alpha {
		aα, aβ := a.Alpha[i], a.Beta[i]
		bα, bβ := b.Alpha[i], b.Beta[i]
		aHom, aHet := aα&^aβ, aβ&^aα
		bHom, bHet := bα&^bβ, bβ&^bα
		cells[0][0] += bitword.PopCount(aHom & bHom)
		cells[0][1] += bitword.PopCount(aHom & bHet)
		cells[1][0] += bitword.PopCount(aHet & bHom)
		cells[1][1] += bitword.PopCount(aHet & bHet)
	}
}

// complete derives the five remaining cells from four counted ones and the
// marginals of markers without missing calls.
func complete(cells *[3][3]int, a, b genotype.Distribution) {
	cells[0][2] = a.HomMajor - cells[0][0] - cells[0][1]
	cells[1][2] = a.Het - cells[1][0] - cells[1][1]
	cells[2][0] = b.HomMajor - cells[0][0] - cells[1][0]
	cells[2][1] = b.Het - cells[0][1] - cells[1][1]
	cells[2][2] = b.HomMinor - cells[0][2] - cells[1][2]
}
