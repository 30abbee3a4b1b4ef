package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// RowSink receives the rows of a matrix. *episcan.Study implements it.
type RowSink interface {
	Individuals() []string
	AddRow(marker string, calls []string) error
}

// Row is one marker read from an input file. A row with Err set is
// rejected without reaching the sink.
type Row struct {
	Line   int
	Marker string
	Calls  []string
	Err    error
}

// Report describes one pass that loaded rows.
type Report struct {
	File     string        `json:"file"`
	Rows     int           `json:"rows"`
	Loaded   int           `json:"loaded"`
	Rejected []error       `json:"-"`
	Duration time.Duration `json:"duration"`
}

// Feed loads the rows returned by next into sink until next returns io.EOF.
// Rows are added by the configured number of workers. A rejected row is
// recorded in the report and loading continues until the error budget is
// spent; rejections are reported in line order.
//
// Any other error from next stops loading.
func Feed(ctx context.Context, name string, sink RowSink, next func() (Row, error), opts ...Option) (Report, error) {
	o := applyOptions(opts)
	start := time.Now()
	rep := Report{File: name}

	var (
		mu       sync.Mutex
		rejected []*LineError
		loaded   int
	)
	// reject reports whether the budget is still intact.
	reject := func(le *LineError) bool {
		mu.Lock()
		defer mu.Unlock()
		rejected = append(rejected, le)
		o.logger.Debug("row rejected", "file", name, "line", le.Line, "marker", le.Marker, "error", le.cause)
		return o.maxErrors < 0 || len(rejected) <= o.maxErrors
	}

	g, gctx := errgroup.WithContext(ctx)
	rows := make(chan Row, 4*o.workers)
	for w := 0; w < o.workers; w++ {
		g.Go(func() error {
			for r := range rows {
				if err := sink.AddRow(r.Marker, r.Calls); err != nil {
					if !reject(&LineError{File: name, Line: r.Line, Marker: r.Marker, cause: err}) {
						return ErrTooManyErrors
					}
					continue
				}
				mu.Lock()
				loaded++
				mu.Unlock()
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(rows)
		for {
			r, err := next()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}

			rep.Rows++
			if rep.Rows%checkInterval == 0 {
				if err := gctx.Err(); err != nil {
					return err
				}
			}
			if o.progress != nil && rep.Rows%progressEvery == 0 {
				o.progress(rep.Rows)
			}
			if r.Err != nil {
				if !reject(&LineError{File: name, Line: r.Line, Marker: r.Marker, cause: r.Err}) {
					return ErrTooManyErrors
				}
				continue
			}
			select {
			case rows <- r:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
	})

	err := g.Wait()

	sort.Slice(rejected, func(i, j int) bool { return rejected[i].Line < rejected[j].Line })
	rep.Rejected = make([]error, len(rejected))
	for i, le := range rejected {
		rep.Rejected[i] = le
	}
	rep.Loaded = loaded
	rep.Duration = time.Since(start)
	if o.progress != nil {
		o.progress(rep.Rows)
	}

	if err != nil {
		if errors.Is(err, ErrTooManyErrors) {
			err = fmt.Errorf("%s: %w (%d)", name, ErrTooManyErrors, len(rejected))
		}
		return rep, err
	}
	o.logger.Info("rows loaded",
		"file", name,
		"rows", rep.Rows,
		"loaded", rep.Loaded,
		"rejected", len(rep.Rejected),
		"duration", rep.Duration,
	)
	return rep, nil
}
