package episcan

import (
	"sync/atomic"
	"time"
)

// MetricsObserver receives operational events of a Study.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusObserver struct {
//	    pairs prometheus.Counter
//	}
//
//	func (p *PrometheusObserver) OnScan(pairs, emitted int, d time.Duration, err error) {
//	    p.pairs.Add(float64(pairs))
//	}
type MetricsObserver interface {
	// OnLoad is called after each AddRow. err is nil if the marker loaded.
	OnLoad(duration time.Duration, err error)

	// OnSelect is called after each Select.
	OnSelect(cases, controls, unknown int, duration time.Duration, err error)

	// OnScan is called when ScanPairs returns. pairs is the number of pairs
	// tested, emitted the number passed to the callback.
	OnScan(pairs, emitted int, duration time.Duration, err error)
}

// NoopMetricsObserver is a no-op implementation of MetricsObserver.
// Use this when metrics collection is not needed.
type NoopMetricsObserver struct{}

func (NoopMetricsObserver) OnLoad(time.Duration, error)                  {}
func (NoopMetricsObserver) OnSelect(int, int, int, time.Duration, error) {}
func (NoopMetricsObserver) OnScan(int, int, time.Duration, error)        {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	LoadCount      atomic.Int64
	LoadErrors     atomic.Int64
	LoadTotalNanos atomic.Int64
	SelectCount    atomic.Int64
	SelectErrors   atomic.Int64
	UnknownIDs     atomic.Int64
	ScanCount      atomic.Int64
	ScanErrors     atomic.Int64
	PairsTested    atomic.Int64
	PairsEmitted   atomic.Int64
	ScanTotalNanos atomic.Int64
}

// OnLoad implements MetricsObserver.
func (b *BasicMetricsCollector) OnLoad(duration time.Duration, err error) {
	b.LoadCount.Add(1)
	b.LoadTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.LoadErrors.Add(1)
	}
}

// OnSelect implements MetricsObserver.
func (b *BasicMetricsCollector) OnSelect(_, _, unknown int, _ time.Duration, err error) {
	b.SelectCount.Add(1)
	b.UnknownIDs.Add(int64(unknown))
	if err != nil {
		b.SelectErrors.Add(1)
	}
}

// OnScan implements MetricsObserver.
func (b *BasicMetricsCollector) OnScan(pairs, emitted int, duration time.Duration, err error) {
	b.ScanCount.Add(1)
	b.PairsTested.Add(int64(pairs))
	b.PairsEmitted.Add(int64(emitted))
	b.ScanTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ScanErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		LoadCount:    b.LoadCount.Load(),
		LoadErrors:   b.LoadErrors.Load(),
		LoadAvgNanos: avg(b.LoadTotalNanos.Load(), b.LoadCount.Load()),
		SelectCount:  b.SelectCount.Load(),
		SelectErrors: b.SelectErrors.Load(),
		UnknownIDs:   b.UnknownIDs.Load(),
		ScanCount:    b.ScanCount.Load(),
		ScanErrors:   b.ScanErrors.Load(),
		PairsTested:  b.PairsTested.Load(),
		PairsEmitted: b.PairsEmitted.Load(),
		ScanAvgNanos: avg(b.ScanTotalNanos.Load(), b.ScanCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	LoadCount    int64
	LoadErrors   int64
	LoadAvgNanos int64
	SelectCount  int64
	SelectErrors int64
	UnknownIDs   int64
	ScanCount    int64
	ScanErrors   int64
	PairsTested  int64
	PairsEmitted int64
	ScanAvgNanos int64
}
