package genotype

import (
	"fmt"
	"strings"
)

// Table is the 3×3 joint genotype count table of a marker pair.
// Cells are indexed by [role of A][role of B] using Genotype.Index.
// The nine cells sum to the number of scanned columns where both markers
// are called.
type Table struct {
	MarkerA int       `json:"marker_a"`
	MarkerB int       `json:"marker_b"`
	Cells   [3][3]int `json:"cells"`
}

// Cell returns the count for (a, b). Both must be called genotypes.
func (t Table) Cell(a, b Genotype) int {
	return t.Cells[a.Index()][b.Index()]
}

// Total returns the sum of all nine cells.
func (t Table) Total() int {
	n := 0
	for i := range t.Cells {
		for j := range t.Cells[i] {
			n += t.Cells[i][j]
		}
	}
	return n
}

// RowSums returns marker A's distribution over columns where both markers
// are called. Missing is always 0.
func (t Table) RowSums() Distribution {
	var d Distribution
	for i, g := range Called {
		d.Add(g, t.Cells[i][0]+t.Cells[i][1]+t.Cells[i][2])
	}
	return d
}

// ColSums returns marker B's distribution over columns where both markers
// are called. Missing is always 0.
func (t Table) ColSums() Distribution {
	var d Distribution
	for j, g := range Called {
		d.Add(g, t.Cells[0][j]+t.Cells[1][j]+t.Cells[2][j])
	}
	return d
}

// Plus returns the cell-wise sum of t and o, keeping t's marker indices.
func (t Table) Plus(o Table) Table {
	r := t
	for i := range r.Cells {
		for j := range r.Cells[i] {
			r.Cells[i][j] += o.Cells[i][j]
		}
	}
	return r
}

func (t Table) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d×%d", t.MarkerA, t.MarkerB)
	for i := range t.Cells {
		fmt.Fprintf(&sb, " [%d %d %d]", t.Cells[i][0], t.Cells[i][1], t.Cells[i][2])
	}
	return sb.String()
}

// CaseControlTable is a pair's contingency table split by group. Both tables
// share the same marker indices.
type CaseControlTable struct {
	MarkerA int   `json:"marker_a"`
	MarkerB int   `json:"marker_b"`
	Case    Table `json:"case"`
	Control Table `json:"control"`
}

// Combined returns the cell-wise sum of the case and control tables.
func (c CaseControlTable) Combined() Table {
	return c.Case.Plus(c.Control)
}
