package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder receives pipeline measurements.
type Recorder interface {
	RecordSymbol(status string)
	RecordError(source string)
	RecordLatency(op string, seconds float64)
	RecordCache(hit bool)
	RecordRun(finished time.Time, duration time.Duration)
}

// Symbol statuses.
const (
	StatusOK     = "ok"
	StatusNoData = "no_data"
	StatusPanic  = "panic"
)

// Prometheus implements Recorder on a private registry so a run can be
// exported to a node-exporter textfile without global state.
type Prometheus struct {
	reg          *prometheus.Registry
	symbolsTotal *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
	latency      *prometheus.HistogramVec
	cacheTotal   *prometheus.CounterVec
	lastRun      prometheus.Gauge
	runDuration  prometheus.Gauge
}

// New creates a new Prometheus metrics recorder.
func New() *Prometheus {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Prometheus{
		reg: reg,
		symbolsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sentinel_symbols_analysed_total",
				Help: "Total number of symbols analysed, by outcome",
			},
			[]string{"status"},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sentinel_fetch_errors_total",
				Help: "Total number of upstream fetch errors",
			},
			[]string{"source"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sentinel_operation_duration_seconds",
				Help:    "Duration of upstream operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		cacheTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sentinel_cache_lookups_total",
				Help: "Price cache lookups, by result",
			},
			[]string{"result"},
		),
		lastRun: f.NewGauge(prometheus.GaugeOpts{
			Name: "sentinel_last_run_timestamp_seconds",
			Help: "Unix time of the last completed report run",
		}),
		runDuration: f.NewGauge(prometheus.GaugeOpts{
			Name: "sentinel_last_run_duration_seconds",
			Help: "Wall time of the last completed report run",
		}),
	}
}

func (r *Prometheus) RecordSymbol(status string) {
	r.symbolsTotal.WithLabelValues(status).Inc()
}

func (r *Prometheus) RecordError(source string) {
	r.errorsTotal.WithLabelValues(source).Inc()
}

func (r *Prometheus) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

func (r *Prometheus) RecordCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheTotal.WithLabelValues(result).Inc()
}

func (r *Prometheus) RecordRun(finished time.Time, duration time.Duration) {
	r.lastRun.Set(float64(finished.Unix()))
	r.runDuration.Set(duration.Seconds())
}

// Registry exposes the underlying registry, mainly for tests.
func (r *Prometheus) Registry() *prometheus.Registry { return r.reg }

// WriteTextfile writes all metrics in the text exposition format. The write
// is atomic so a collector never reads a partial file.
func (r *Prometheus) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return fmt.Errorf("write metrics %s: %w", path, err)
	}
	return nil
}

// Noop discards every measurement.
type Noop struct{}

func (Noop) RecordSymbol(string) {}
func (Noop) RecordError(string) {}
func (Noop) RecordLatency(string, float64) {}
func (Noop) RecordCache(bool) {}
func (Noop) RecordRun(time.Time, time.Duration) {}
