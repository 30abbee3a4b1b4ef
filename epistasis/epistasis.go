package epistasis

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/hupe1980/episcan/genotype"
)

// DegreesOfFreedom of the interaction test.
const DegreesOfFreedom = 4

// Result is the outcome of PairwiseTest.
type Result struct {
	// Statistic is 2·(saturated − reduced) log-likelihood. It is never negative.
	Statistic float64 `json:"statistic"`
	// PValue is the chi-square survival probability of Statistic.
	PValue float64 `json:"p_value"`
}

// Significant reports whether the p-value is at most alpha.
func (r Result) Significant(alpha float64) bool {
	return r.PValue <= alpha
}

var chi2 = distuv.ChiSquared{K: DegreesOfFreedom}

// PairwiseTest runs the interaction test on the case and control tables of
// one marker pair.
func PairwiseTest(cases, controls genotype.Table) Result {
	saturated, reduced := LogLikelihoods(cases, controls)
	stat := 2 * (saturated - reduced)
	// Rounding can leave a tiny negative value for tables the reduced model
	// fits exactly.
	if stat <= 0 || math.IsNaN(stat) {
		return Result{Statistic: 0, PValue: 1}
	}
	return Result{Statistic: stat, PValue: chi2.Survival(stat)}
}

// Survival returns the chi-square (4 df) survival probability of stat.
func Survival(stat float64) float64 {
	if stat <= 0 {
		return 1
	}
	return chi2.Survival(stat)
}

// LogLikelihoods returns the saturated and Kirkwood-reduced log-likelihoods
// of the 18 cells. Both are 0 for empty tables.
func LogLikelihoods(cases, controls genotype.Table) (saturated, reduced float64) {
	var n [3][3][2]float64
	for a := range 3 {
		for b := range 3 {
			n[a][b][0] = float64(cases.Cells[a][b])
			n[a][b][1] = float64(controls.Cells[a][b])
		}
	}

	var (
		total float64
		ab    [3][3]float64
		bs    [3][2]float64
		as    [3][2]float64
		pa    [3]float64
		pb    [3]float64
		ps    [2]float64
	)
	for a := range 3 {
		for b := range 3 {
			for s := range 2 {
				v := n[a][b][s]
				total += v
				ab[a][b] += v
				bs[b][s] += v
				as[a][s] += v
				pa[a] += v
				pb[b] += v
				ps[s] += v
			}
		}
	}
	if total == 0 {
		return 0, 0
	}

	// Reduced-model weights P(a|b)·P(b|s)·P(s|a), unnormalised.
	var (
		w   [3][3][2]float64
		eta float64
	)
	for a := range 3 {
		for b := range 3 {
			for s := range 2 {
				if ab[a][b] == 0 || bs[b][s] == 0 || as[a][s] == 0 {
					continue
				}
				w[a][b][s] = (ab[a][b] / pb[b]) * (bs[b][s] / ps[s]) * (as[a][s] / pa[a])
				eta += w[a][b][s]
			}
		}
	}

	for a := range 3 {
		for b := range 3 {
			for s := range 2 {
				v := n[a][b][s]
				if v == 0 {
					continue
				}
				saturated += v * math.Log(v/total)
				if w[a][b][s] > 0 {
					reduced += v * math.Log(w[a][b][s]/eta)
				}
			}
		}
	}
	return saturated, reduced
}
