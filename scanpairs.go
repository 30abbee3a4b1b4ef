package episcan

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/hupe1980/episcan/epistasis"
	"github.com/hupe1980/episcan/genotype"
	"github.com/hupe1980/episcan/internal/pairs"
)

// ScanOptions configures ScanPairs.
type ScanOptions struct {
	// Markers restricts the scan to these markers. Nil scans every active
	// loaded marker.
	Markers []string

	// MaxPValue drops pairs with a larger p-value. Zero keeps every pair.
	MaxPValue float64

	// Workers overrides the study's worker count when positive.
	Workers int

	// ProgressInterval is the minimum time between progress reports.
	// Zero selects 10 seconds.
	ProgressInterval time.Duration

	// Progress, if set, is called with the number of pairs tested so far.
	// It may be called from several goroutines.
	Progress func(done, total int)
}

// PairResult is the outcome for one marker pair.
type PairResult struct {
	MarkerA string                    `json:"marker_a"`
	MarkerB string                    `json:"marker_b"`
	Tables  genotype.CaseControlTable `json:"tables"`
	epistasis.Result
}

// ScanSummary describes a completed ScanPairs call.
type ScanSummary struct {
	Markers  int           `json:"markers"`
	Pairs    int           `json:"pairs"`
	Emitted  int           `json:"emitted"`
	Skipped  []string      `json:"skipped,omitempty"`
	Version  uint64        `json:"mask_version"`
	Duration time.Duration `json:"duration"`
}

// ScanPairs tests every pair of markers against the current selection and
// passes the results to fn in row-major order.
//
// The pairs are split into blocks of similar size that run in parallel.
// Cancellation is checked between pairs. Results are handed to fn only after
// every pair has been tested, so a cancelled or failed scan reports nothing.
// Markers that are not loaded are skipped and listed in the summary.
//
// It panics if no selection has been made.
func (s *Study) ScanPairs(ctx context.Context, opts ScanOptions, fn func(PairResult) error) (ScanSummary, error) {
	start := time.Now()
	view := s.scanner.View()

	rows, skipped, err := s.scanRows(opts.Markers)
	if err != nil {
		return ScanSummary{}, err
	}

	sum := ScanSummary{
		Markers: len(rows),
		Pairs:   pairs.Count(len(rows)),
		Skipped: skipped,
		Version: view.Snapshot().Version(),
	}
	logger := s.opts.logger.WithVersion(sum.Version)
	if len(skipped) > 0 {
		logger.Warn("markers not loaded, skipped from scan", "count", len(skipped))
	}

	workers := s.opts.workers
	if opts.Workers > 0 {
		workers = opts.Workers
	}
	interval := opts.ProgressInterval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	progress := rate.Sometimes{Interval: interval}

	blocks := pairs.Partition(len(rows), 4*workers)
	results := make([][]PairResult, len(blocks))

	var done atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for bi, blk := range blocks {
		g.Go(func() error {
			if err := s.rc.AcquireWorker(gctx); err != nil {
				return err
			}
			defer s.rc.ReleaseWorker()

			var out []PairResult
			var cerr error
			blk.Each(len(rows), func(i, j int) bool {
				if cerr = gctx.Err(); cerr != nil {
					return false
				}
				a, b := rows[i], rows[j]
				t := view.CaseControlContingency(a, b)
				r := epistasis.PairwiseTest(t.Case, t.Control)
				if opts.MaxPValue <= 0 || r.PValue <= opts.MaxPValue {
					out = append(out, PairResult{
						MarkerA: s.markers.ID(a),
						MarkerB: s.markers.ID(b),
						Tables:  t,
						Result:  r,
					})
				}

				n := int(done.Add(1))
				progress.Do(func() {
					logger.LogProgress(gctx, n, sum.Pairs)
					if opts.Progress != nil {
						opts.Progress(n, sum.Pairs)
					}
				})
				return true
			})
			if cerr != nil {
				return cerr
			}
			results[bi] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		sum.Duration = time.Since(start)
		logger.LogScan(ctx, int(done.Load()), 0, err)
		s.opts.metrics.OnScan(int(done.Load()), 0, sum.Duration, err)
		return ScanSummary{}, err
	}
	if opts.Progress != nil {
		opts.Progress(sum.Pairs, sum.Pairs)
	}

	var emitErr error
	for _, out := range results {
		for _, r := range out {
			if emitErr = fn(r); emitErr != nil {
				break
			}
			sum.Emitted++
		}
		if emitErr != nil {
			break
		}
	}

	sum.Duration = time.Since(start)
	logger.LogScan(ctx, sum.Pairs, sum.Emitted, emitErr)
	s.opts.metrics.OnScan(sum.Pairs, sum.Emitted, sum.Duration, emitErr)
	if emitErr != nil {
		return sum, fmt.Errorf("emit result: %w", emitErr)
	}
	return sum, nil
}

// scanRows resolves the markers of a scan. Unloaded markers are returned as
// skipped. Unknown markers are an error.
func (s *Study) scanRows(ids []string) (rows []int, skipped []string, err error) {
	if ids == nil {
		for _, r := range s.markers.Active() {
			if s.store.Loaded(r) {
				rows = append(rows, r)
			} else {
				skipped = append(skipped, s.markers.ID(r))
			}
		}
		return rows, skipped, nil
	}

	pos, unknown := s.markers.Resolve(ids)
	if len(unknown) > 0 {
		return nil, nil, fmt.Errorf("%w: %d markers %v", ErrUnknownMarker, len(unknown), unknown)
	}
	seen := make(map[int]bool, len(pos))
	for _, r := range pos {
		if seen[r] {
			continue
		}
		seen[r] = true
		if s.store.Loaded(r) {
			rows = append(rows, r)
		} else {
			skipped = append(skipped, s.markers.ID(r))
		}
	}
	return rows, skipped, nil
}
