package store

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/hupe1980/episcan/genotype"
	"github.com/hupe1980/episcan/internal/allele"
	"github.com/hupe1980/episcan/internal/bitword"
	"github.com/hupe1980/episcan/internal/resource"
	"github.com/hupe1980/episcan/internal/role"
)

const (
	rowEmpty uint32 = iota
	rowLoading
	rowLoaded
)

// Store is a write-once genotype matrix of Rows markers × Columns individuals.
//
// AddRow may be called concurrently for distinct rows. A loaded row is
// immutable and may be read by any number of goroutines.
type Store struct {
	rows  int
	cols  int
	words int
	kind  Kind
	table *allele.Table

	enc     encoding
	headers []role.Header
	state   []atomic.Uint32
	loaded  atomic.Int64

	strict    bool
	rc        *resource.Controller
	logger    *slog.Logger
	reserved  int64
	closed    atomic.Bool
	assigners sync.Pool
}

// Option configures a Store.
type Option func(*Store)

// WithStrictAlleles rejects rows whose heterozygote does not share an allele
// with the homozygotes of the same row.
func WithStrictAlleles(strict bool) Option {
	return func(s *Store) {
		s.strict = strict
	}
}

// WithResourceController charges the encoding's memory against rc.
func WithResourceController(rc *resource.Controller) Option {
	return func(s *Store) {
		s.rc = rc
	}
}

// WithLogger sets the logger for rejected rows.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New allocates a zeroed store. table decodes the raw calls; nil selects
// allele.NewDefaultTable.
func New(rows, cols int, kind Kind, table *allele.Table, opts ...Option) (*Store, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %d rows × %d columns", ErrInvalidDimensions, rows, cols)
	}
	if kind > Packed4 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	if table == nil {
		table = allele.NewDefaultTable()
	}

	s := &Store{
		rows:   rows,
		cols:   cols,
		words:  bitword.WordsFor(cols),
		kind:   kind,
		table:  table,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.reserved = footprint(kind, rows, cols) + int64(rows)*2
	if err := s.rc.AcquireMemory(s.reserved); err != nil {
		return nil, fmt.Errorf("allocate %s store %d×%d: %w", kind, rows, cols, err)
	}

	s.enc = newEncoding(kind, rows, cols)
	s.headers = make([]role.Header, rows)
	s.state = make([]atomic.Uint32, rows)
	s.assigners.New = func() any {
		return role.NewAssigner(s.table, s.strict)
	}

	return s, nil
}

// AddRow loads the calls of one marker, one per column, left to right.
//
// On error the row is cleared and may be loaded again; other rows are not
// affected. The returned error is a *RowError.
func (s *Store) AddRow(row int, calls []string) error {
	if s.closed.Load() {
		return rowError(row, ErrClosed)
	}
	if row < 0 || row >= s.rows {
		return rowError(row, fmt.Errorf("%w: %d not in [0,%d)", ErrRowOutOfRange, row, s.rows))
	}
	if len(calls) != s.cols {
		return rowError(row, fmt.Errorf("%w: got %d, want %d", ErrCallCount, len(calls), s.cols))
	}
	if !s.state[row].CompareAndSwap(rowEmpty, rowLoading) {
		return rowError(row, ErrRowLoaded)
	}

	asg := s.assigners.Get().(*role.Assigner)
	defer s.assigners.Put(asg)
	asg.Reset()

	for col, call := range calls {
		code, err := s.table.Parse(call)
		if err == nil {
			var g genotype.Genotype
			g, err = asg.Assign(code)
			if err == nil {
				if g != genotype.Missing {
					s.enc.set(row, col, g, code)
				}
				continue
			}
		}

		s.enc.clearRow(row)
		s.state[row].Store(rowEmpty)
		s.logger.Debug("row rejected", "row", row, "column", col, "error", err)
		return &RowError{Row: row, Column: col, Call: call, cause: err}
	}

	s.headers[row] = asg.Header()
	s.state[row].Store(rowLoaded)
	s.loaded.Add(1)
	return nil
}

// Get decodes a single cell. It panics if the row is not loaded.
func (s *Store) Get(row, col int) genotype.Genotype {
	s.mustLoaded(row)
	if col < 0 || col >= s.cols {
		panic(fmt.Sprintf("store: column %d out of range [0,%d)", col, s.cols))
	}
	return s.enc.get(row, col, s.headers[row])
}

// Planes returns the α and β planes of a loaded row. BitPlane stores return
// views into the matrix and ignore buf; the packed kinds decode into buf,
// which must hold Words() words. The result must not be modified.
// It panics if the row is not loaded.
func (s *Store) Planes(row int, buf *Planes) Planes {
	s.mustLoaded(row)
	if buf == nil && s.kind != BitPlane {
		buf = NewPlanes(s.words)
	}
	return s.enc.planes(row, s.headers[row], buf)
}

// Header returns the role header of a row. Rows that are not loaded report
// the zero header.
func (s *Store) Header(row int) role.Header {
	if !s.Loaded(row) {
		return 0
	}
	return s.headers[row]
}

// Loaded reports whether row has been loaded successfully.
func (s *Store) Loaded(row int) bool {
	return row >= 0 && row < s.rows && s.state[row].Load() == rowLoaded
}

// LoadedRows returns the number of loaded rows.
func (s *Store) LoadedRows() int { return int(s.loaded.Load()) }

// Rows returns the number of markers.
func (s *Store) Rows() int { return s.rows }

// Columns returns the number of individuals.
func (s *Store) Columns() int { return s.cols }

// Words returns the number of words per plane.
func (s *Store) Words() int { return s.words }

// Kind returns the encoding.
func (s *Store) Kind() Kind { return s.kind }

// Table returns the allele table used to decode calls.
func (s *Store) Table() *allele.Table { return s.table }

// Bytes returns the memory reserved for the matrix and headers.
func (s *Store) Bytes() int64 { return s.reserved }

// Close releases the reserved memory. Further AddRow calls fail with ErrClosed.
func (s *Store) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	s.rc.ReleaseMemory(s.reserved)
	return nil
}

func (s *Store) mustLoaded(row int) {
	if row < 0 || row >= s.rows {
		panic(fmt.Sprintf("store: row %d out of range [0,%d)", row, s.rows))
	}
	if s.state[row].Load() != rowLoaded {
		panic(fmt.Sprintf("store: row %d is not loaded", row))
	}
}
