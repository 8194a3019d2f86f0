package testing

import (
	"sync"

	"github.com/arloliu/bucketeer/types"
)

// RecordingMetrics implements types.MetricsCollector by counting every
// emission, so tests can assert exactly which metrics the engine produced.
//
// Safe for concurrent use.
type RecordingMetrics struct {
	mu sync.Mutex

	assignments       map[string]int
	assignmentReuse   map[string]int
	exposures         map[string]int
	exposuresDeduped  map[string]int
	guardrailBreaches map[string]int
	catalogReloads    int
	catalogFailures   int
	catalogSize       int
}

var _ types.MetricsCollector = (*RecordingMetrics)(nil)

// NewRecordingMetrics creates an empty recording collector.
func NewRecordingMetrics() *RecordingMetrics {
	return &RecordingMetrics{
		assignments:       make(map[string]int),
		assignmentReuse:   make(map[string]int),
		exposures:         make(map[string]int),
		exposuresDeduped:  make(map[string]int),
		guardrailBreaches: make(map[string]int),
	}
}

// IncrementAssignment counts a new assignment keyed "experiment/variant".
func (r *RecordingMetrics) IncrementAssignment(experimentKey, variantKey, _ string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assignments[experimentKey+"/"+variantKey]++
}

// IncrementAssignmentReuse counts a cache hit keyed "experiment/variant".
func (r *RecordingMetrics) IncrementAssignmentReuse(experimentKey, variantKey string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assignmentReuse[experimentKey+"/"+variantKey]++
}

// IncrementExposure counts an exposure keyed "experiment/variant/surface".
func (r *RecordingMetrics) IncrementExposure(experimentKey, variantKey, surface, _ string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exposures[experimentKey+"/"+variantKey+"/"+surface]++
}

// IncrementExposureDeduplicated counts a suppressed exposure keyed
// "experiment/surface".
func (r *RecordingMetrics) IncrementExposureDeduplicated(experimentKey, surface string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exposuresDeduped[experimentKey+"/"+surface]++
}

// IncrementGuardrailBreach counts a breach keyed "experiment/metric".
func (r *RecordingMetrics) IncrementGuardrailBreach(experimentKey, metric string, _ float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.guardrailBreaches[experimentKey+"/"+metric]++
}

// RecordCatalogReload counts a successful reload and remembers the size.
func (r *RecordingMetrics) RecordCatalogReload(experiments int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.catalogReloads++
	r.catalogSize = experiments
}

// IncrementCatalogReloadFailure counts a rejected catalog load.
func (r *RecordingMetrics) IncrementCatalogReloadFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.catalogFailures++
}

// Assignments returns the new-assignment count for "experiment/variant".
func (r *RecordingMetrics) Assignments(experimentKey, variantKey string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.assignments[experimentKey+"/"+variantKey]
}

// AssignmentReuse returns the cache-hit count for "experiment/variant".
func (r *RecordingMetrics) AssignmentReuse(experimentKey, variantKey string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.assignmentReuse[experimentKey+"/"+variantKey]
}

// Exposures returns the exposure count for "experiment/variant/surface".
func (r *RecordingMetrics) Exposures(experimentKey, variantKey, surface string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.exposures[experimentKey+"/"+variantKey+"/"+surface]
}

// TotalExposures returns the exposure count across all labels.
func (r *RecordingMetrics) TotalExposures() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	total := 0
	for _, count := range r.exposures {
		total += count
	}

	return total
}

// ExposuresDeduplicated returns the suppressed-exposure count for
// "experiment/surface".
func (r *RecordingMetrics) ExposuresDeduplicated(experimentKey, surface string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.exposuresDeduped[experimentKey+"/"+surface]
}

// GuardrailBreaches returns the breach count for "experiment/metric".
func (r *RecordingMetrics) GuardrailBreaches(experimentKey, metric string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.guardrailBreaches[experimentKey+"/"+metric]
}

// CatalogReloads returns the successful reload count.
func (r *RecordingMetrics) CatalogReloads() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.catalogReloads
}

// CatalogReloadFailures returns the rejected reload count.
func (r *RecordingMetrics) CatalogReloadFailures() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.catalogFailures
}

// CatalogSize returns the size recorded by the latest successful reload.
func (r *RecordingMetrics) CatalogSize() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.catalogSize
}
