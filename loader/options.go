package loader

import (
	"log/slog"

	"github.com/hupe1980/episcan/internal/resource"
)

// DefaultMaxErrors is the default number of rejected rows tolerated per file.
const DefaultMaxErrors = 100

type options struct {
	maxErrors int
	logger    *slog.Logger
	rc        *resource.Controller
	progress  func(rows int)
	workers   int
}

// Option configures a loader call.
type Option func(*options)

// WithMaxErrors sets how many rejected rows are tolerated before loading
// stops with ErrTooManyErrors. A negative value tolerates any number.
func WithMaxErrors(n int) Option {
	return func(o *options) { o.maxErrors = n }
}

// WithLogger sets the logger for load diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithIORateLimit caps the read throughput in bytes per second of
// compressed input. Zero means unlimited.
func WithIORateLimit(bytesPerSec int64) Option {
	return func(o *options) {
		if bytesPerSec > 0 {
			o.rc = resource.NewController(resource.Config{IOLimitBytesPerSec: bytesPerSec})
		}
	}
}

// WithProgress registers a callback invoked with the number of data rows
// read so far.
func WithProgress(fn func(rows int)) Option {
	return func(o *options) { o.progress = fn }
}

func applyOptions(opts []Option) options {
	o := options{
		maxErrors: DefaultMaxErrors,
		workers:   1,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// WithWorkers sets how many rows are loaded concurrently. Default: 1.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}
