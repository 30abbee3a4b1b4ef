package mask

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/episcan/genotype"
	"github.com/hupe1980/episcan/internal/bitword"
	"github.com/hupe1980/episcan/internal/resource"
	"github.com/hupe1980/episcan/internal/store"
)

// ErrOverlap is returned when an individual is both a case and a control.
var ErrOverlap = errors.New("individual in both case and control sets")

// OverlapError lists every column present in both sets.
type OverlapError struct {
	Columns []int
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("%v: %d columns %v", ErrOverlap, len(e.Columns), e.Columns)
}

func (e *OverlapError) Unwrap() error { return ErrOverlap }

// Store owns the current Snapshot of a genotype store.
type Store struct {
	gs      *store.Store
	current atomic.Pointer[Snapshot]
	mu      sync.Mutex // serializes Select

	workers int
	compact bool
	rc      *resource.Controller
	logger  *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithWorkers bounds the goroutines used to build a snapshot.
func WithWorkers(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithCompaction controls whether snapshots keep gathered case and control
// planes. Without them scans AND the full planes with the masks.
func WithCompaction(enabled bool) Option {
	return func(s *Store) {
		s.compact = enabled
	}
}

// WithResourceController charges compacted planes and build workers against rc.
func WithResourceController(rc *resource.Controller) Option {
	return func(s *Store) {
		s.rc = rc
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New returns a Store without a selection.
func New(gs *store.Store, opts ...Option) *Store {
	s := &Store{
		gs:      gs,
		workers: runtime.GOMAXPROCS(0),
		compact: true,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the current selection, or nil before the first Select.
func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

// MustSnapshot returns the current selection and panics before the first
// Select.
func (s *Store) MustSnapshot() *Snapshot {
	snap := s.current.Load()
	if snap == nil {
		panic("mask: no case/control selection; call Select first")
	}
	return snap
}

// Select builds and publishes a new snapshot from case and control column
// indices. Duplicates within a set are ignored and out-of-range columns are
// skipped and reported by Snapshot.Skipped. Columns present in both sets
// fail the selection with an *OverlapError and the previous snapshot stays
// current.
func (s *Store) Select(ctx context.Context, cases, controls []int) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cols := s.gs.Columns()

	var skipped []int
	sets := [2]*roaring.Bitmap{roaring.New(), roaring.New()}
	for g, ids := range [2][]int{cases, controls} {
		for _, c := range ids {
			if c < 0 || c >= cols {
				skipped = append(skipped, c)
				continue
			}
			sets[g].Add(uint32(c))
		}
	}

	if both := roaring.And(sets[Case], sets[Control]); !both.IsEmpty() {
		overlap := make([]int, 0, both.GetCardinality())
		both.Iterate(func(x uint32) bool {
			overlap = append(overlap, int(x))
			return true
		})
		return nil, &OverlapError{Columns: overlap}
	}

	prev := s.current.Load()
	snap := &Snapshot{
		version: 1,
		columns: cols,
		rows:    make([]rowView, s.gs.Rows()),
		skipped: skipped,
	}
	if prev != nil {
		snap.version = prev.version + 1
	}

	words := bitword.WordsFor(cols)
	for g, set := range sets {
		w := make([]bitword.Word, words)
		set.Iterate(func(x uint32) bool {
			bitword.Set(w, int(x))
			return true
		})
		snap.groups[g] = groupMask{words: w, count: int(set.GetCardinality())}
	}

	if err := s.build(ctx, snap); err != nil {
		return nil, err
	}

	s.current.Store(snap)
	if prev != nil {
		s.rc.ReleaseMemory(prev.bytes)
	}

	s.logger.Info("case/control selection published",
		"version", snap.version,
		"cases", snap.Count(Case),
		"controls", snap.Count(Control),
		"skipped", len(skipped),
		"bytes", snap.bytes,
	)
	return snap, nil
}

// build gathers the planes and marginals of every row loaded at call time.
func (s *Store) build(ctx context.Context, snap *Snapshot) error {
	var loaded []int
	for r := range s.gs.Rows() {
		if s.gs.Loaded(r) {
			loaded = append(loaded, r)
		}
	}
	if len(loaded) == 0 {
		return nil
	}

	groupWords := [2]int{
		bitword.WordsFor(snap.groups[Case].count),
		bitword.WordsFor(snap.groups[Control].count),
	}
	if s.compact {
		perRow := int64(2*(groupWords[Case]+groupWords[Control])) * bitword.Bits / 8
		snap.bytes = perRow * int64(len(loaded))
		if err := s.rc.AcquireMemory(snap.bytes); err != nil {
			return fmt.Errorf("compact %d rows: %w", len(loaded), err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	chunk := max(1, len(loaded)/(4*s.workers))
	for lo := 0; lo < len(loaded); lo += chunk {
		batch := loaded[lo:min(lo+chunk, len(loaded))]
		g.Go(func() error {
			if err := s.rc.AcquireWorker(gctx); err != nil {
				return err
			}
			defer s.rc.ReleaseWorker()
			return s.buildRows(gctx, snap, batch, groupWords)
		})
	}

	if err := g.Wait(); err != nil {
		s.rc.ReleaseMemory(snap.bytes)
		return err
	}
	return nil
}

func (s *Store) buildRows(ctx context.Context, snap *Snapshot, rows []int, groupWords [2]int) error {
	var buf *store.Planes
	if s.gs.Kind() != store.BitPlane {
		buf = store.NewPlanes(s.gs.Words())
	}

	var scratch [2]*store.Planes
	if !s.compact {
		for _, grp := range Groups {
			scratch[grp] = store.NewPlanes(groupWords[grp])
		}
	}

	for _, r := range rows {
		if err := ctx.Err(); err != nil {
			return err
		}

		p := s.gs.Planes(r, buf)
		view := &snap.rows[r]
		for _, grp := range Groups {
			dst := scratch[grp]
			if s.compact {
				dst = store.NewPlanes(groupWords[grp])
			} else {
				clear(dst.Alpha)
				clear(dst.Beta)
			}

			mk := snap.groups[grp].words
			bitword.Gather(dst.Alpha, p.Alpha, mk)
			bitword.Gather(dst.Beta, p.Beta, mk)

			setMarginal(&view.marginals, grp, dst.Distribution(snap.groups[grp].count))
			if s.compact {
				view.compact[grp] = *dst
			}
		}
		view.ready = true
	}
	return nil
}

func setMarginal(m *genotype.CaseControlDistribution, g Group, d genotype.Distribution) {
	if g == Case {
		m.Case = d
	} else {
		m.Control = d
	}
}

// Close releases the memory of the current snapshot.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if snap := s.current.Swap(nil); snap != nil {
		s.rc.ReleaseMemory(snap.bytes)
	}
	return nil
}
