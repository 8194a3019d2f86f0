// Package metrics provides built-in types.MetricsCollector implementations.
package metrics

import "github.com/arloliu/bucketeer/types"

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. Useful for testing or when external metrics
// collection is used.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
//
// Returns:
//   - *NopMetrics: A new no-op metrics collector instance
//
// Example:
//
//	eng, err := bucketeer.New(&cfg, bucketeer.WithMetrics(metrics.NewNop()))
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// AssignmentMetrics implementation

// IncrementAssignment discards the new-assignment counter.
func (n *NopMetrics) IncrementAssignment(_ /* experimentKey */, _ /* variantKey */, _ /* storeID */ string) {
	// No-op
}

// IncrementAssignmentReuse discards the cache-hit counter.
func (n *NopMetrics) IncrementAssignmentReuse(_ /* experimentKey */, _ /* variantKey */ string) {
	// No-op
}

// ExposureMetrics implementation

// IncrementExposure discards the exposure counter.
func (n *NopMetrics) IncrementExposure(_ /* experimentKey */, _ /* variantKey */, _ /* surface */, _ /* storeID */ string) {
	// No-op
}

// IncrementExposureDeduplicated discards the deduplicated-exposure counter.
func (n *NopMetrics) IncrementExposureDeduplicated(_ /* experimentKey */, _ /* surface */ string) {
	// No-op
}

// GuardrailMetrics implementation

// IncrementGuardrailBreach discards the guardrail breach counter.
func (n *NopMetrics) IncrementGuardrailBreach(_ /* experimentKey */, _ /* metric */ string, _ /* threshold */ float64) {
	// No-op
}

// CatalogMetrics implementation

// RecordCatalogReload discards the catalog reload event.
func (n *NopMetrics) RecordCatalogReload(_ /* experiments */ int) {
	// No-op
}

// IncrementCatalogReloadFailure discards the reload failure counter.
func (n *NopMetrics) IncrementCatalogReloadFailure() {
	// No-op
}
