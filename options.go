package episcan

import (
	"fmt"
	"runtime"

	"github.com/hupe1980/episcan/internal/allele"
	"github.com/hupe1980/episcan/internal/store"
)

// Encoding selects the in-memory genotype layout. Results do not depend on
// it; it trades memory against decode work per scan.
type Encoding int

const (
	// EncodingBitPlane keeps two one-bit planes per marker (default).
	EncodingBitPlane Encoding = iota
	// EncodingPacked2 keeps a 2-bit role per call.
	EncodingPacked2
	// EncodingPacked4 keeps the raw 4-bit allele code per call.
	EncodingPacked4
)

func (e Encoding) String() string { return e.kind().String() }

func (e Encoding) kind() store.Kind {
	switch e {
	case EncodingPacked2:
		return store.Packed2
	case EncodingPacked4:
		return store.Packed4
	default:
		return store.BitPlane
	}
}

// ParseEncoding parses "bitplane", "packed2" or "packed4".
func ParseEncoding(s string) (Encoding, error) {
	k, err := store.ParseKind(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}
	switch k {
	case store.Packed2:
		return EncodingPacked2, nil
	case store.Packed4:
		return EncodingPacked4, nil
	default:
		return EncodingBitPlane, nil
	}
}

type options struct {
	encoding    Encoding
	alphabet    string
	unknown     string
	strict      bool
	shortcut    bool
	compaction  bool
	workers     int
	memoryLimit int64
	logger      *Logger
	metrics     MetricsObserver
}

func defaultOptions() options {
	return options{
		encoding:   EncodingBitPlane,
		alphabet:   allele.DefaultAlphabet,
		unknown:    allele.DefaultUnknown,
		shortcut:   true,
		compaction: true,
		workers:    runtime.GOMAXPROCS(0),
		logger:     NoopLogger(),
		metrics:    NoopMetricsObserver{},
	}
}

// Option configures a Study.
type Option func(*options)

// WithEncoding selects the genotype layout.
func WithEncoding(e Encoding) Option {
	return func(o *options) {
		o.encoding = e
	}
}

// WithAlphabet sets the allele letters (at most five) and the characters
// that mark an unknown allele. Letters match case-insensitively.
//
// Defaults are "ACGT" and "0N-?.".
func WithAlphabet(letters, unknown string) Option {
	return func(o *options) {
		o.alphabet = letters
		o.unknown = unknown
	}
}

// WithStrictAlleles rejects markers whose heterozygote shares no allele with
// one of its homozygotes.
func WithStrictAlleles(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// WithShortcut enables deriving five of the nine cells of a group table from
// the markers' marginals when neither marker has a missing call in that
// group. Enabled by default; disable it to verify results.
func WithShortcut(enabled bool) Option {
	return func(o *options) {
		o.shortcut = enabled
	}
}

// WithCompaction controls whether each selection keeps the case and control
// calls of every marker packed densely. Compaction speeds up scans and costs
// roughly one extra copy of the genotype planes. Enabled by default.
func WithCompaction(enabled bool) Option {
	return func(o *options) {
		o.compaction = enabled
	}
}

// WithWorkers bounds the goroutines of selections and pair scans.
// Defaults to runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithMemoryLimit caps the bytes held by genotype planes and selections.
// Zero means unlimited.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.memoryLimit = bytes
	}
}

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsObserver sets the metrics observer. If nil is passed, metrics
// are discarded.
func WithMetricsObserver(m MetricsObserver) Option {
	return func(o *options) {
		if m == nil {
			m = NoopMetricsObserver{}
		}
		o.metrics = m
	}
}

func applyOptions(opts []Option) (options, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if o.workers <= 0 {
		return o, fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidOptions, o.workers)
	}
	if o.memoryLimit < 0 {
		return o, fmt.Errorf("%w: negative memory limit", ErrInvalidOptions)
	}
	if o.encoding < EncodingBitPlane || o.encoding > EncodingPacked4 {
		return o, fmt.Errorf("%w: encoding %d", ErrInvalidOptions, int(o.encoding))
	}
	return o, nil
}
