package types

import "encoding/json"

// Assignment records the variant a subject landed in for one experiment.
//
// Assignments are sticky: once computed for a subject, the engine returns the
// identical variant for the lifetime of the cache entry while the experiment
// keeps the same ID, regardless of later weight changes in the catalog.
type Assignment struct {
	// ExperimentID is the identity the assignment is pinned to. A catalog
	// reload that reuses the experiment Key under a new ID invalidates the
	// entry and the subject is re-bucketed.
	ExperimentID string `json:"experimentId"`

	// ExperimentKey is the experiment's human-readable name.
	ExperimentKey string `json:"experimentKey"`

	// VariantID and VariantKey identify the selected treatment arm.
	VariantID  string `json:"variantId"`
	VariantKey string `json:"variantKey"`

	// Config is the selected variant's opaque payload, passed through
	// unparsed.
	Config json.RawMessage `json:"config,omitempty"`

	// IsNew is true when this call computed and cached the assignment, false
	// when it was served from the cache.
	IsNew bool `json:"isNew"`
}

// ExposureResult confirms that a subject's assignment was resolved on a
// surface and an exposure was (or had already been) recorded.
type ExposureResult struct {
	Assignment

	// Surface is where the subject encountered the variant (e.g.,
	// "checkout-page").
	Surface string `json:"surface"`

	// Deduplicated is true when a configured exposure ledger had already seen
	// this (experiment, subject, surface) tuple; no metric was emitted for
	// this call.
	Deduplicated bool `json:"deduplicated"`
}
