package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hupe1980/episcan"
)

// PrometheusObserver exports study metrics.
type PrometheusObserver struct {
	opLatency *prometheus.HistogramVec
	loads     *prometheus.CounterVec
	pairs     prometheus.Counter
	emitted   prometheus.Counter
	cases     prometheus.Gauge
	controls  prometheus.Gauge
	unknown   prometheus.Gauge
}

var _ episcan.MetricsObserver = (*PrometheusObserver)(nil)

// NewPrometheusObserver creates the collectors and registers them with reg.
func NewPrometheusObserver(reg prometheus.Registerer) *PrometheusObserver {
	o := &PrometheusObserver{
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "episcan_operation_duration_seconds",
			Help:    "Duration of study operations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"op", "status"}),
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "episcan_markers_loaded_total",
			Help: "Markers offered for loading, by outcome.",
		}, []string{"status"}),
		pairs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "episcan_pairs_tested_total",
			Help: "Marker pairs tested.",
		}),
		emitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "episcan_pairs_emitted_total",
			Help: "Marker pairs reported.",
		}),
		cases: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "episcan_selection_cases",
			Help: "Cases requested by the last selection.",
		}),
		controls: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "episcan_selection_controls",
			Help: "Controls requested by the last selection.",
		}),
		unknown: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "episcan_selection_unknown",
			Help: "Unknown individuals in the last selection.",
		}),
	}
	reg.MustRegister(o.opLatency, o.loads, o.pairs, o.emitted, o.cases, o.controls, o.unknown)
	return o
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func (o *PrometheusObserver) OnLoad(d time.Duration, err error) {
	o.opLatency.WithLabelValues("load", status(err)).Observe(d.Seconds())
	o.loads.WithLabelValues(status(err)).Inc()
}

func (o *PrometheusObserver) OnSelect(cases, controls, unknown int, d time.Duration, err error) {
	o.opLatency.WithLabelValues("select", status(err)).Observe(d.Seconds())
	if err == nil {
		o.cases.Set(float64(cases))
		o.controls.Set(float64(controls))
		o.unknown.Set(float64(unknown))
	}
}

func (o *PrometheusObserver) OnScan(pairs, emitted int, d time.Duration, err error) {
	o.opLatency.WithLabelValues("scan", status(err)).Observe(d.Seconds())
	o.pairs.Add(float64(pairs))
	o.emitted.Add(float64(emitted))
}

// serveMetrics exposes reg on addr under /metrics until the returned
// function is called.
func serveMetrics(addr string, reg *prometheus.Registry, logger *episcan.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logger.Info("metrics available", "addr", addr, "path", "/metrics")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
