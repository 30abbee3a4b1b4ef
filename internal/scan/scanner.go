package scan

import (
	"sync/atomic"

	"github.com/hupe1980/episcan/genotype"
	"github.com/hupe1980/episcan/internal/mask"
	"github.com/hupe1980/episcan/internal/pool"
	"github.com/hupe1980/episcan/internal/store"
)

// Stats counts how case/control group tables were produced.
type Stats struct {
	// Shortcut tables were completed from marginals.
	Shortcut uint64
	// Direct tables counted all nine cells over compacted planes.
	Direct uint64
	// Fallback tables ANDed full planes with the group mask.
	Fallback uint64
}

// Scanner computes distributions and contingency tables over a store.
// It is safe for concurrent use.
type Scanner struct {
	gs       *store.Store
	masks    *mask.Store
	shortcut bool
	scratch  *pool.Pool

	shortcuts atomic.Uint64
	direct    atomic.Uint64
	fallback  atomic.Uint64
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithShortcut enables or disables the marginal shortcut. It is on by default.
func WithShortcut(enabled bool) Option {
	return func(s *Scanner) {
		s.shortcut = enabled
	}
}

// New returns a Scanner over gs. masks may be nil when only unmasked scans
// are needed.
func New(gs *store.Store, masks *mask.Store, opts ...Option) *Scanner {
	s := &Scanner{
		gs:       gs,
		masks:    masks,
		shortcut: true,
		scratch:  pool.New(gs.Words()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Distribution returns the distribution of row over all columns.
// It panics if the row is not loaded.
func (s *Scanner) Distribution(row int) genotype.Distribution {
	sc := s.scratch.Get()
	defer s.scratch.Put(sc)
	return s.gs.Planes(row, sc.A).Distribution(s.gs.Columns())
}

// Contingency returns the joint table of rows a and b over all columns.
// It panics if either row is not loaded.
func (s *Scanner) Contingency(a, b int) genotype.Table {
	sc := s.scratch.Get()
	defer s.scratch.Put(sc)

	t := genotype.Table{MarkerA: a, MarkerB: b}
	contingency9(s.gs.Planes(a, sc.A), s.gs.Planes(b, sc.B), nil, &t.Cells)
	return t
}

// View pins the current case/control snapshot. It panics before the first
// selection.
func (s *Scanner) View() *View {
	if s.masks == nil {
		panic("scan: scanner has no mask store")
	}
	return &View{s: s, snap: s.masks.MustSnapshot()}
}

// Stats returns the table production counters.
func (s *Scanner) Stats() Stats {
	return Stats{
		Shortcut: s.shortcuts.Load(),
		Direct:   s.direct.Load(),
		Fallback: s.fallback.Load(),
	}
}

// View answers case/control queries against one snapshot. It is safe for
// concurrent use.
type View struct {
	s    *Scanner
	snap *mask.Snapshot
}

// Snapshot returns the pinned snapshot.
func (v *View) Snapshot() *mask.Snapshot { return v.snap }

// Distribution returns the distribution of row within g.
func (v *View) Distribution(row int, g mask.Group) genotype.Distribution {
	n := v.snap.Count(g)
	if p, ok := v.snap.Compacted(row, g); ok {
		return p.Distribution(n)
	}

	sc := v.s.scratch.Get()
	defer v.s.scratch.Put(sc)
	return distribution(v.s.gs.Planes(row, sc.A), v.snap.Words(g), n)
}

// CaseControlDistribution returns the distribution of row split by group.
func (v *View) CaseControlDistribution(row int) genotype.CaseControlDistribution {
	return genotype.CaseControlDistribution{
		Case:    v.Distribution(row, mask.Case),
		Control: v.Distribution(row, mask.Control),
	}
}

// Contingency returns the joint table of rows a and b within g.
func (v *View) Contingency(a, b int, g mask.Group) genotype.Table {
	t := genotype.Table{MarkerA: a, MarkerB: b}

	pa, okA := v.snap.Compacted(a, g)
	pb, okB := v.snap.Compacted(b, g)
	if !okA || !okB {
		v.s.fallback.Add(1)
		sc := v.s.scratch.Get()
		defer v.s.scratch.Put(sc)
		contingency9(v.s.gs.Planes(a, sc.A), v.s.gs.Planes(b, sc.B), v.snap.Words(g), &t.Cells)
		return t
	}

	if v.s.shortcut {
		if ma, mb, ok := v.complete(a, b, g); ok {
			v.s.shortcuts.Add(1)
			contingency4(pa, pb, &t.Cells)
			complete(&t.Cells, ma, mb)
			return t
		}
	}

	v.s.direct.Add(1)
	contingency9(pa, pb, nil, &t.Cells)
	return t
}

// CaseControlContingency returns the case and control tables of rows a and b.
func (v *View) CaseControlContingency(a, b int) genotype.CaseControlTable {
	return genotype.CaseControlTable{
		MarkerA: a,
		MarkerB: b,
		Case:    v.Contingency(a, b, mask.Case),
		Control: v.Contingency(a, b, mask.Control),
	}
}

// complete returns the group marginals of a and b when neither has a missing
// call in g.
func (v *View) complete(a, b int, g mask.Group) (genotype.Distribution, genotype.Distribution, bool) {
	ma, okA := v.snap.Marginals(a)
	mb, okB := v.snap.Marginals(b)
	if !okA || !okB {
		return genotype.Distribution{}, genotype.Distribution{}, false
	}

	da, db := ma.Case, mb.Case
	if g == mask.Control {
		da, db = ma.Control, mb.Control
	}
	if da.Missing != 0 || db.Missing != 0 {
		return genotype.Distribution{}, genotype.Distribution{}, false
	}
	return da, db, true
}
