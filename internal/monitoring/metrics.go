package monitoring

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kinetic-table/pkg/hal"
)

// Metrics holds the table's Prometheus collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	ticks         prometheus.Counter
	stepSeconds   prometheus.Histogram
	pinsMoving    prometheus.Gauge
	maxError      prometheus.Gauge
	meanHeight    prometheus.Gauge
	targetUpdates prometheus.Counter
	targetErrors  *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kinetic_ticks_total",
			Help: "Total number of simulation ticks applied to the table",
		}),
		stepSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "kinetic_step_seconds",
			Help:    "Wall time spent in a single grid step",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
		pinsMoving: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "kinetic_pins_moving",
			Help: "Pins that have not reached their target",
		}),
		maxError: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "kinetic_max_error_mm",
			Help: "Largest distance between a pin and its target",
		}),
		meanHeight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "kinetic_mean_height_mm",
			Help: "Mean current pin height",
		}),
		targetUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kinetic_target_updates_total",
			Help: "Accepted target updates",
		}),
		targetErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kinetic_target_errors_total",
			Help: "Rejected table calls by error kind",
		}, []string{"kind"}),
	}
	m.registry.MustRegister(
		m.ticks,
		m.stepSeconds,
		m.pinsMoving,
		m.maxError,
		m.meanHeight,
		m.targetUpdates,
		m.targetErrors,
	)
	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveStep records one applied tick and how long it took.
func (m *Metrics) ObserveStep(d time.Duration) {
	if m == nil {
		return
	}
	m.ticks.Inc()
	m.stepSeconds.Observe(d.Seconds())
}

// ObserveStats publishes a grid summary.
func (m *Metrics) ObserveStats(s hal.Stats) {
	if m == nil {
		return
	}
	m.pinsMoving.Set(float64(s.Moving))
	m.maxError.Set(s.MaxError)
	m.meanHeight.Set(s.MeanHeight)
}

// TargetAccepted counts a successful target update.
func (m *Metrics) TargetAccepted() {
	if m == nil {
		return
	}
	m.targetUpdates.Inc()
}

// CallRejected counts a failed grid call, labelled by its error kind.
func (m *Metrics) CallRejected(err error) {
	if m == nil || err == nil {
		return
	}
	m.targetErrors.WithLabelValues(ErrorKind(err)).Inc()
}

// ErrorKind maps a grid error to a short label.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, hal.ErrDimensionMismatch):
		return "dimension_mismatch"
	case errors.Is(err, hal.ErrIndexOutOfRange):
		return "index_out_of_range"
	case errors.Is(err, hal.ErrInvalidArgument):
		return "invalid_argument"
	default:
		return "other"
	}
}
