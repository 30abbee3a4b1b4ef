package epistasis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/episcan/genotype"
)

func table(cells [3][3]int) genotype.Table {
	return genotype.Table{Cells: cells}
}

func scale(t genotype.Table, k int) genotype.Table {
	for a := range 3 {
		for b := range 3 {
			t.Cells[a][b] *= k
		}
	}
	return t
}

func TestPairwiseTest_ProportionalTables(t *testing.T) {
	cases := table([3][3]int{{30, 12, 4}, {15, 20, 6}, {3, 7, 9}})
	controls := scale(cases, 2)

	r := PairwiseTest(cases, controls)
	assert.InDelta(t, 0, r.Statistic, 1e-9)
	assert.InDelta(t, 1, r.PValue, 1e-9)
}

func TestPairwiseTest_ProportionalWithZeroCells(t *testing.T) {
	cases := table([3][3]int{{10, 0, 0}, {0, 5, 0}, {2, 0, 0}})
	controls := scale(cases, 3)

	r := PairwiseTest(cases, controls)
	assert.False(t, math.IsNaN(r.Statistic))
	assert.InDelta(t, 0, r.Statistic, 1e-9)
}

func TestPairwiseTest_Interaction(t *testing.T) {
	// Cases concentrate on the (aa,aa) cell while controls are balanced.
	cases := table([3][3]int{{20, 20, 20}, {20, 20, 20}, {20, 20, 140}})
	controls := table([3][3]int{{40, 40, 40}, {40, 40, 40}, {40, 40, 40}})

	r := PairwiseTest(cases, controls)
	assert.Greater(t, r.Statistic, 10.0)
	assert.Less(t, r.PValue, 0.05)
	assert.True(t, r.Significant(0.05))
}

func TestPairwiseTest_Empty(t *testing.T) {
	r := PairwiseTest(genotype.Table{}, genotype.Table{})
	assert.Equal(t, Result{Statistic: 0, PValue: 1}, r)

	sat, red := LogLikelihoods(genotype.Table{}, genotype.Table{})
	assert.Zero(t, sat)
	assert.Zero(t, red)
}

func TestPairwiseTest_OneGroupEmpty(t *testing.T) {
	cases := table([3][3]int{{5, 1, 0}, {2, 9, 1}, {0, 0, 4}})

	r := PairwiseTest(cases, genotype.Table{})
	assert.False(t, math.IsNaN(r.Statistic))
	assert.False(t, math.IsNaN(r.PValue))
	assert.GreaterOrEqual(t, r.PValue, 0.0)
	assert.LessOrEqual(t, r.PValue, 1.0)
}

func transpose(t genotype.Table) genotype.Table {
	r := genotype.Table{MarkerA: t.MarkerB, MarkerB: t.MarkerA}
	for i := range t.Cells {
		for j := range t.Cells[i] {
			r.Cells[j][i] = t.Cells[i][j]
		}
	}
	return r
}

func TestPairwiseTest_Symmetric(t *testing.T) {
	cases := table([3][3]int{{12, 3, 8}, {4, 15, 2}, {9, 1, 6}})
	controls := table([3][3]int{{7, 9, 3}, {11, 2, 5}, {4, 8, 10}})

	r := PairwiseTest(cases, controls)
	rt := PairwiseTest(transpose(cases), transpose(controls))
	assert.InDelta(t, r.Statistic, rt.Statistic, 1e-9)

	swapped := PairwiseTest(controls, cases)
	assert.InDelta(t, r.Statistic, swapped.Statistic, 1e-9)
}

func TestLogLikelihoods_SaturatedBound(t *testing.T) {
	cases := table([3][3]int{{12, 3, 8}, {4, 15, 2}, {9, 1, 6}})
	controls := table([3][3]int{{7, 9, 3}, {11, 2, 5}, {4, 8, 10}})

	sat, red := LogLikelihoods(cases, controls)
	assert.Less(t, sat, 0.0)
	assert.GreaterOrEqual(t, sat, red)
}

func TestSurvival(t *testing.T) {
	assert.Equal(t, 1.0, Survival(0))
	assert.Equal(t, 1.0, Survival(-3))
	// Upper 5% point of chi-square with 4 df.
	assert.InDelta(t, 0.05, Survival(9.487729), 1e-6)
}
