// Package metrics holds the Prometheus collectors describing a batch of
// calculations. Collectors are registered on their own registry and written
// to a text file after a run; nothing is served over HTTP.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/optimization"
)

// Status label values.
const (
	StatusSuccess     = "success"
	StatusInvalid     = "invalid_input"
	StatusUnreachable = "unreachable"
	StatusError       = "error"
)

// Collectors groups the metrics recorded by the calculator runner.
type Collectors struct {
	Registry *prometheus.Registry

	// Calculations counts finished calculations by kind and status.
	Calculations *prometheus.CounterVec

	// SolverIterations records bisection iterations per solved quantity.
	SolverIterations *prometheus.HistogramVec

	// Saturations counts searches that hit their upper bound.
	Saturations *prometheus.CounterVec

	// Duration records wall time per calculation kind.
	Duration *prometheus.HistogramVec
}

// New creates a registry and the collectors registered on it. An empty
// namespace falls back to the default.
func New(namespace string) *Collectors {
	if namespace == "" {
		namespace = constants.MetricsNamespace
	}

	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collectors{
		Registry: reg,
		Calculations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "calculations_total",
				Help:      "Number of calculations run, by kind and status.",
			},
			[]string{"kind", "status"},
		),
		SolverIterations: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "solver_iterations",
				Help:      "Bisection iterations used by a solve.",
				Buckets:   prometheus.LinearBuckets(0, 5, 10),
			},
			[]string{"field"},
		),
		Saturations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "solver_saturations_total",
				Help:      "Searches whose target was not reached at the upper bound.",
			},
			[]string{"field"},
		),
		Duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "calculation_duration_seconds",
				Help:      "Time spent on a single calculation.",
				Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 10),
			},
			[]string{"kind"},
		),
	}
}

// ObserveCalculation records one finished calculation. A nil receiver is a no-op.
func (c *Collectors) ObserveCalculation(kind, status string, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.Calculations.WithLabelValues(kind, status).Inc()
	c.Duration.WithLabelValues(kind).Observe(elapsed.Seconds())
}

// ObserveSearch records the outcome of a bisection. A nil receiver is a no-op.
func (c *Collectors) ObserveSearch(summary optimization.Summary) {
	if c == nil {
		return
	}
	c.SolverIterations.WithLabelValues(summary.Name).Observe(float64(summary.Iterations))
	if summary.Saturated {
		c.Saturations.WithLabelValues(summary.Name).Inc()
	}
}

// ObserveSaturation records a search that failed at its upper bound.
func (c *Collectors) ObserveSaturation(field string) {
	if c == nil {
		return
	}
	c.Saturations.WithLabelValues(field).Inc()
}

// WriteToTextfile writes every collected metric in the Prometheus text
// format, suitable for the node exporter textfile collector.
func (c *Collectors) WriteToTextfile(path string) error {
	if c == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, c.Registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
