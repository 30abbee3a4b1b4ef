package episcan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hupe1980/episcan/epistasis"
	"github.com/hupe1980/episcan/genotype"
	"github.com/hupe1980/episcan/internal/allele"
	"github.com/hupe1980/episcan/internal/bitword"
	"github.com/hupe1980/episcan/internal/index"
	"github.com/hupe1980/episcan/internal/mask"
	"github.com/hupe1980/episcan/internal/resource"
	"github.com/hupe1980/episcan/internal/scan"
	"github.com/hupe1980/episcan/internal/store"
)

// Study holds the genotypes of one set of markers and individuals together
// with its current case/control selection.
//
// AddRow may be called concurrently for distinct markers. Queries may run
// concurrently with each other and with Select; each query sees one
// complete selection.
type Study struct {
	opts options

	markers     *index.Space
	individuals *index.Space

	rc      *resource.Controller
	store   *store.Store
	masks   *mask.Store
	scanner *scan.Scanner
}

// New creates a Study for the given marker and individual identifiers, in
// matrix order. Identifiers must be unique and non-empty.
func New(markerIDs, individualIDs []string, opts ...Option) (*Study, error) {
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	markers, err := index.New(markerIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: markers: %w", ErrInvalidOptions, err)
	}
	individuals, err := index.New(individualIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: individuals: %w", ErrInvalidOptions, err)
	}

	table, err := allele.NewTable(o.alphabet, o.unknown)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}

	rc := resource.NewController(resource.Config{
		MemoryLimitBytes: o.memoryLimit,
		MaxWorkers:       int64(o.workers),
	})

	gs, err := store.New(markers.Len(), individuals.Len(), o.encoding.kind(), table,
		store.WithStrictAlleles(o.strict),
		store.WithResourceController(rc),
		store.WithLogger(o.logger.Logger),
	)
	if err != nil {
		if errors.Is(err, store.ErrInvalidDimensions) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
		}
		return nil, translateError(err)
	}

	masks := mask.New(gs,
		mask.WithWorkers(o.workers),
		mask.WithCompaction(o.compaction),
		mask.WithResourceController(rc),
		mask.WithLogger(o.logger.Logger),
	)

	o.logger.Info("study created",
		"markers", markers.Len(),
		"individuals", individuals.Len(),
		"encoding", o.encoding.String(),
		"word_bits", bitword.Bits,
		"popcount", bitword.ActiveKernel().String(),
	)

	return &Study{
		opts:        o,
		markers:     markers,
		individuals: individuals,
		rc:          rc,
		store:       gs,
		masks:       masks,
		scanner:     scan.New(gs, masks, scan.WithShortcut(o.shortcut)),
	}, nil
}

// Markers returns the marker identifiers in row order.
func (s *Study) Markers() []string { return s.markers.IDs() }

// Individuals returns the individual identifiers in column order.
func (s *Study) Individuals() []string { return s.individuals.IDs() }

// MarkerIndex returns the row of a marker.
func (s *Study) MarkerIndex(id string) (int, bool) { return s.markers.Index(id) }

// IndividualIndex returns the column of an individual.
func (s *Study) IndividualIndex(id string) (int, bool) { return s.individuals.Index(id) }

// AddRow loads the calls of one marker, one per individual in column order.
// A marker that fails to load is left empty and may be loaded again.
// The returned error is a *LoadError.
func (s *Study) AddRow(marker string, calls []string) error {
	row, ok := s.markers.Index(marker)
	if !ok {
		err := &LoadError{Row: -1, Marker: marker, Column: -1, cause: ErrUnknownMarker}
		s.opts.logger.LogLoad(context.Background(), marker, err)
		s.opts.metrics.OnLoad(0, err)
		return err
	}
	return s.AddRowAt(row, calls)
}

// AddRowAt loads the calls of the marker at row.
func (s *Study) AddRowAt(row int, calls []string) error {
	start := time.Now()
	err := s.store.AddRow(row, calls)

	var lerr error
	if err != nil {
		lerr = s.loadError(row, err)
	}
	s.opts.metrics.OnLoad(time.Since(start), lerr)
	s.opts.logger.LogLoad(context.Background(), s.markerID(row), lerr)
	return lerr
}

func (s *Study) loadError(row int, err error) error {
	le := &LoadError{Row: row, Marker: s.markerID(row), Column: -1, cause: translateError(err)}

	var re *store.RowError
	if errors.As(err, &re) {
		le.Column = re.Column
		le.Call = re.Call
		le.cause = translateError(re.Unwrap())
		if re.Column >= 0 {
			le.Individual = s.individuals.ID(re.Column)
		}
	}
	return le
}

func (s *Study) markerID(row int) string {
	if row < 0 || row >= s.markers.Len() {
		return fmt.Sprintf("#%d", row)
	}
	return s.markers.ID(row)
}

// Loaded reports whether a marker has been loaded.
func (s *Study) Loaded(marker string) bool {
	row, ok := s.markers.Index(marker)
	return ok && s.store.Loaded(row)
}

// ExcludeMarkers removes markers from future pair scans and returns the
// identifiers that are not part of the study. A scan already running keeps
// the marker set it started with.
func (s *Study) ExcludeMarkers(ids []string) []string {
	return s.markers.Exclude(ids)
}

// ExcludeIndividuals removes individuals from future selections and returns
// the identifiers that are not part of the study. The current selection is
// not changed.
func (s *Study) ExcludeIndividuals(ids []string) []string {
	return s.individuals.Exclude(ids)
}

// Alleles describes which allele pairs a marker's roles stand for.
type Alleles struct {
	HomMajor string `json:"AA"`
	Het      string `json:"Aa"`
	HomMinor string `json:"aa"`
	// Distinct is the number of distinct calls seen.
	Distinct int `json:"distinct"`
}

// Alleles returns the allele pairs assigned to the roles of a loaded marker.
// Unfilled roles are reported as "00".
func (s *Study) Alleles(marker string) (Alleles, error) {
	row, err := s.row(marker)
	if err != nil {
		return Alleles{}, err
	}
	h := s.store.Header(row)
	t := s.store.Table()
	return Alleles{
		HomMajor: t.Alleles(h.Slot(genotype.HomMajor)),
		Het:      t.Alleles(h.Slot(genotype.Het)),
		HomMinor: t.Alleles(h.Slot(genotype.HomMinor)),
		Distinct: h.State().Distinct(),
	}, nil
}

// Genotype returns the role of one call. It panics if the marker is not
// loaded.
func (s *Study) Genotype(marker, individual string) (genotype.Genotype, error) {
	row, err := s.row(marker)
	if err != nil {
		return genotype.Missing, err
	}
	col, ok := s.individuals.Index(individual)
	if !ok {
		return genotype.Missing, fmt.Errorf("%w: %q", ErrUnknownIndividual, individual)
	}
	return s.store.Get(row, col), nil
}

// Distribution returns the genotype counts of a marker over all individuals.
// It panics if the marker is not loaded.
func (s *Study) Distribution(marker string) (genotype.Distribution, error) {
	row, err := s.row(marker)
	if err != nil {
		return genotype.Distribution{}, err
	}
	return s.scanner.Distribution(row), nil
}

// CaseControlDistribution returns the genotype counts of a marker among
// cases and controls. It panics before the first Select or if the marker is
// not loaded.
func (s *Study) CaseControlDistribution(marker string) (genotype.CaseControlDistribution, error) {
	row, err := s.row(marker)
	if err != nil {
		return genotype.CaseControlDistribution{}, err
	}
	return s.scanner.View().CaseControlDistribution(row), nil
}

// Contingency returns the joint genotype table of two markers over all
// individuals. It panics if either marker is not loaded.
func (s *Study) Contingency(a, b string) (genotype.Table, error) {
	ra, rb, err := s.pair(a, b)
	if err != nil {
		return genotype.Table{}, err
	}
	return s.scanner.Contingency(ra, rb), nil
}

// CaseControlContingency returns the case and control tables of two markers.
// It panics before the first Select or if either marker is not loaded.
func (s *Study) CaseControlContingency(a, b string) (genotype.CaseControlTable, error) {
	ra, rb, err := s.pair(a, b)
	if err != nil {
		return genotype.CaseControlTable{}, err
	}
	return s.scanner.View().CaseControlContingency(ra, rb), nil
}

// Test runs the interaction test on two markers. It panics before the first
// Select or if either marker is not loaded.
func (s *Study) Test(a, b string) (epistasis.Result, error) {
	t, err := s.CaseControlContingency(a, b)
	if err != nil {
		return epistasis.Result{}, err
	}
	return epistasis.PairwiseTest(t.Case, t.Control), nil
}

func (s *Study) row(marker string) (int, error) {
	row, ok := s.markers.Index(marker)
	if !ok {
		return -1, fmt.Errorf("%w: %q", ErrUnknownMarker, marker)
	}
	return row, nil
}

func (s *Study) pair(a, b string) (int, int, error) {
	ra, err := s.row(a)
	if err != nil {
		return 0, 0, err
	}
	rb, err := s.row(b)
	if err != nil {
		return 0, 0, err
	}
	return ra, rb, nil
}

// Stats describes the state of a Study.
type Stats struct {
	Markers        int    `json:"markers"`
	Individuals    int    `json:"individuals"`
	LoadedMarkers  int    `json:"loaded_markers"`
	Encoding       string `json:"encoding"`
	WordBits       int    `json:"word_bits"`
	PopCount       string `json:"popcount"`
	MaskVersion    uint64 `json:"mask_version"`
	Cases          int    `json:"cases"`
	Controls       int    `json:"controls"`
	MemoryBytes    int64  `json:"memory_bytes"`
	ShortcutTables uint64 `json:"shortcut_tables"`
	DirectTables   uint64 `json:"direct_tables"`
	FallbackTables uint64 `json:"fallback_tables"`
}

// Stats returns a snapshot of the study's counters.
func (s *Study) Stats() Stats {
	st := Stats{
		Markers:       s.markers.Len(),
		Individuals:   s.individuals.Len(),
		LoadedMarkers: s.store.LoadedRows(),
		Encoding:      s.opts.encoding.String(),
		WordBits:      bitword.Bits,
		PopCount:      bitword.ActiveKernel().String(),
		MemoryBytes:   s.rc.MemoryUsage(),
	}
	if snap := s.masks.Snapshot(); snap != nil {
		st.MaskVersion = snap.Version()
		st.Cases = snap.Count(mask.Case)
		st.Controls = snap.Count(mask.Control)
	}
	sc := s.scanner.Stats()
	st.ShortcutTables = sc.Shortcut
	st.DirectTables = sc.Direct
	st.FallbackTables = sc.Fallback
	return st
}

// Close releases the memory reserved by the study.
func (s *Study) Close() error {
	if s == nil {
		return nil
	}
	return errors.Join(s.masks.Close(), s.store.Close())
}
