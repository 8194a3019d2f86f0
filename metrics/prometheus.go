package metrics

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/arloliu/bucketeer/types"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	assignments       *prometheus.CounterVec
	assignmentReuse   *prometheus.CounterVec
	exposures         *prometheus.CounterVec
	exposuresDeduped  *prometheus.CounterVec
	guardrailBreaches *prometheus.CounterVec
	catalogReloads    prometheus.Counter
	catalogFailures   prometheus.Counter
	catalogSize       prometheus.Gauge
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer interface (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Prometheus metrics namespace (defaults to "bucketeer" if empty)
//
// Returns:
//   - *PrometheusCollector: A MetricsCollector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "bucketeer"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.assignments = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "engine",
			Name:      "assignments_total",
			Help:      "Total newly computed assignments by experiment, variant and store.",
		}, []string{"experiment", "variant", "store"})

		p.assignmentReuse = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "engine",
			Name:      "assignment_reuse_total",
			Help:      "Total assignments served from the sticky cache.",
		}, []string{"experiment", "variant"})

		p.exposures = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "engine",
			Name:      "exposures_total",
			Help:      "Total recorded exposures by experiment, variant, surface and store.",
		}, []string{"experiment", "variant", "surface", "store"})

		p.exposuresDeduped = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "engine",
			Name:      "exposures_deduplicated_total",
			Help:      "Total exposures suppressed by the dedup ledger.",
		}, []string{"experiment", "surface"})

		p.guardrailBreaches = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "engine",
			Name:      "guardrail_breaches_total",
			Help:      "Total guardrail threshold breaches by experiment, metric and threshold.",
		}, []string{"experiment", "metric", "threshold"})

		p.catalogReloads = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "catalog",
			Name:      "reloads_total",
			Help:      "Total successful catalog snapshot swaps.",
		})

		p.catalogFailures = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "catalog",
			Name:      "reload_failures_total",
			Help:      "Total rejected catalog loads (prior snapshot kept).",
		})

		p.catalogSize = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "catalog",
			Name:      "experiments",
			Help:      "Number of experiments in the current catalog snapshot.",
		})

		p.reg.MustRegister(p.assignments)
		p.reg.MustRegister(p.assignmentReuse)
		p.reg.MustRegister(p.exposures)
		p.reg.MustRegister(p.exposuresDeduped)
		p.reg.MustRegister(p.guardrailBreaches)
		p.reg.MustRegister(p.catalogReloads)
		p.reg.MustRegister(p.catalogFailures)
		p.reg.MustRegister(p.catalogSize)
	})
}

// AssignmentMetrics implementation

// IncrementAssignment increments the new-assignment counter.
func (p *PrometheusCollector) IncrementAssignment(experimentKey, variantKey, storeID string) {
	p.ensureRegistered()
	p.assignments.WithLabelValues(experimentKey, variantKey, storeID).Inc()
}

// IncrementAssignmentReuse increments the cache-hit counter.
func (p *PrometheusCollector) IncrementAssignmentReuse(experimentKey, variantKey string) {
	p.ensureRegistered()
	p.assignmentReuse.WithLabelValues(experimentKey, variantKey).Inc()
}

// ExposureMetrics implementation

// IncrementExposure increments the exposure counter.
func (p *PrometheusCollector) IncrementExposure(experimentKey, variantKey, surface, storeID string) {
	p.ensureRegistered()
	p.exposures.WithLabelValues(experimentKey, variantKey, surface, storeID).Inc()
}

// IncrementExposureDeduplicated increments the deduplicated-exposure counter.
func (p *PrometheusCollector) IncrementExposureDeduplicated(experimentKey, surface string) {
	p.ensureRegistered()
	p.exposuresDeduped.WithLabelValues(experimentKey, surface).Inc()
}

// GuardrailMetrics implementation

// IncrementGuardrailBreach increments the guardrail breach counter.
func (p *PrometheusCollector) IncrementGuardrailBreach(experimentKey, metric string, threshold float64) {
	p.ensureRegistered()
	p.guardrailBreaches.WithLabelValues(experimentKey, metric, fmt.Sprintf("%g", threshold)).Inc()
}

// CatalogMetrics implementation

// RecordCatalogReload increments the reload counter and sets the size gauge.
func (p *PrometheusCollector) RecordCatalogReload(experiments int) {
	p.ensureRegistered()
	p.catalogReloads.Inc()
	p.catalogSize.Set(float64(experiments))
}

// IncrementCatalogReloadFailure increments the reload failure counter.
func (p *PrometheusCollector) IncrementCatalogReloadFailure() {
	p.ensureRegistered()
	p.catalogFailures.Inc()
}
