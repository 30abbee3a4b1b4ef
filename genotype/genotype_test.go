package genotype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenotype_String(t *testing.T) {
	assert.Equal(t, "AA", HomMajor.String())
	assert.Equal(t, "Aa", Het.String())
	assert.Equal(t, "aa", HomMinor.String())
	assert.Equal(t, "--", Missing.String())

	for _, g := range []Genotype{Missing, HomMajor, Het, HomMinor} {
		parsed, ok := Parse(g.String())
		assert.True(t, ok)
		assert.Equal(t, g, parsed)
	}
}

func TestGenotype_Index(t *testing.T) {
	assert.Equal(t, 0, HomMajor.Index())
	assert.Equal(t, 2, HomMinor.Index())
	assert.Panics(t, func() { Missing.Index() })
}

func TestDistribution(t *testing.T) {
	var d Distribution
	d.Add(HomMajor, 2)
	d.Add(Het, 1)
	d.Add(HomMinor, 1)

	assert.Equal(t, 4, d.Total())
	assert.Equal(t, 4, d.Called())
	assert.Equal(t, 2, d.Count(HomMajor))
	assert.InDelta(t, 3.0/8.0, d.MinorAlleleFrequency(), 1e-12)
	assert.Equal(t, 0.0, Distribution{Missing: 3}.MinorAlleleFrequency())
}

func TestTable_Sums(t *testing.T) {
	tab := Table{MarkerA: 1, MarkerB: 2}
	tab.Cells[0][0] = 1
	tab.Cells[1][0] = 1
	tab.Cells[2][1] = 1
	tab.Cells[0][2] = 1

	assert.Equal(t, 4, tab.Total())
	assert.Equal(t, Distribution{HomMajor: 2, Het: 1, HomMinor: 1}, tab.RowSums())
	assert.Equal(t, Distribution{HomMajor: 2, Het: 1, HomMinor: 1}, tab.ColSums())
	assert.Equal(t, 1, tab.Cell(HomMinor, Het))
}
