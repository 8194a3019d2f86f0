package types

// MetricsCollector defines methods for recording operational metrics.
//
// Implementations must be non-blocking and thread-safe: metric emission sits
// on the assignment decision path and must never stall it. A failing
// implementation should swallow errors rather than surface them.
//
// This interface composes smaller, domain-focused interfaces for better
// modularity.
type MetricsCollector interface {
	AssignmentMetrics
	ExposureMetrics
	GuardrailMetrics
	CatalogMetrics
}

// AssignmentMetrics defines metrics for assignment decisions.
type AssignmentMetrics interface {
	// IncrementAssignment records a newly computed assignment.
	//
	// Parameters:
	//   - experimentKey: Experiment the subject was bucketed into
	//   - variantKey: Selected variant
	//   - storeID: Requesting store ("" if none)
	IncrementAssignment(experimentKey, variantKey, storeID string)

	// IncrementAssignmentReuse records an assignment served from the cache.
	IncrementAssignmentReuse(experimentKey, variantKey string)
}

// ExposureMetrics defines metrics for exposure recording.
type ExposureMetrics interface {
	// IncrementExposure records an exposure that resolved to a variant.
	//
	// Parameters:
	//   - experimentKey: Experiment the subject is assigned to
	//   - variantKey: Assigned variant
	//   - surface: Where the subject observed the variant
	//   - storeID: Requesting store ("" if none)
	IncrementExposure(experimentKey, variantKey, surface, storeID string)

	// IncrementExposureDeduplicated records an exposure suppressed by the
	// configured ledger because the tuple was already seen.
	IncrementExposureDeduplicated(experimentKey, surface string)
}

// GuardrailMetrics defines metrics for guardrail evaluation.
type GuardrailMetrics interface {
	// IncrementGuardrailBreach records an observed metric value crossing the
	// configured threshold.
	//
	// Parameters:
	//   - experimentKey: Experiment watching the metric
	//   - metric: Name of the breached metric
	//   - threshold: Configured safety threshold
	IncrementGuardrailBreach(experimentKey, metric string, threshold float64)
}

// CatalogMetrics defines metrics for catalog snapshot management.
type CatalogMetrics interface {
	// RecordCatalogReload records a successful catalog swap.
	//
	// Parameters:
	//   - experiments: Number of experiments in the new snapshot
	RecordCatalogReload(experiments int)

	// IncrementCatalogReloadFailure records a rejected catalog load; the
	// prior snapshot remains authoritative.
	IncrementCatalogReloadFailure()
}
