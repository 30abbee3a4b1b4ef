package mask

import (
	"fmt"

	"github.com/hupe1980/episcan/genotype"
	"github.com/hupe1980/episcan/internal/bitword"
	"github.com/hupe1980/episcan/internal/store"
)

// Group names one side of the partition.
type Group uint8

const (
	Case Group = iota
	Control
)

// Groups lists both groups in order.
var Groups = [2]Group{Case, Control}

func (g Group) String() string {
	switch g {
	case Case:
		return "case"
	case Control:
		return "control"
	default:
		return fmt.Sprintf("Group(%d)", uint8(g))
	}
}

type groupMask struct {
	words []bitword.Word
	count int
}

// rowView is the per-row state derived at Select time.
type rowView struct {
	ready     bool
	compact   [2]store.Planes
	marginals genotype.CaseControlDistribution
}

// Snapshot is one immutable case/control selection.
type Snapshot struct {
	version uint64
	columns int
	groups  [2]groupMask
	rows    []rowView
	skipped []int
	bytes   int64
}

// Version increases by one with every successful Select.
func (s *Snapshot) Version() uint64 { return s.version }

// Columns returns the number of individuals the masks span.
func (s *Snapshot) Columns() int { return s.columns }

// Count returns the number of individuals in g.
func (s *Snapshot) Count(g Group) int { return s.groups[g].count }

// Words returns the bit-vector of g. The result must not be modified.
func (s *Snapshot) Words(g Group) []bitword.Word { return s.groups[g].words }

// IsCase reports whether col is a case.
func (s *Snapshot) IsCase(col int) bool { return s.Contains(Case, col) }

// IsControl reports whether col is a control.
func (s *Snapshot) IsControl(col int) bool { return s.Contains(Control, col) }

// Contains reports whether col belongs to g. Out-of-range columns belong to
// no group.
func (s *Snapshot) Contains(g Group, col int) bool {
	if col < 0 || col >= s.columns {
		return false
	}
	return bitword.Test(s.groups[g].words, col)
}

// Compacted returns the planes of row restricted to g, packed densely over
// Count(g) bits. ok is false for rows that were not loaded when the snapshot
// was built or when compaction is disabled.
func (s *Snapshot) Compacted(row int, g Group) (p store.Planes, ok bool) {
	if row < 0 || row >= len(s.rows) || s.rows[row].compact[g].Alpha == nil {
		return store.Planes{}, false
	}
	return s.rows[row].compact[g], true
}

// Marginals returns the case/control distribution of row computed at Select
// time. ok is false for rows loaded afterwards.
func (s *Snapshot) Marginals(row int) (d genotype.CaseControlDistribution, ok bool) {
	if row < 0 || row >= len(s.rows) || !s.rows[row].ready {
		return d, false
	}
	return s.rows[row].marginals, true
}

// Skipped returns the out-of-range columns that were ignored.
func (s *Snapshot) Skipped() []int { return s.skipped }

// Bytes returns the memory held by the compacted planes.
func (s *Snapshot) Bytes() int64 { return s.bytes }

// Overlap returns the number of columns in both groups. It is zero for every
// published snapshot.
func (s *Snapshot) Overlap() int {
	return bitword.AndCount(s.groups[Case].words, s.groups[Control].words)
}
