package types

import "context"

// CatalogSource supplies the full list of experiment definitions.
//
// Sources are external collaborators: the engine never owns catalog storage.
// ListExperiments must return the complete catalog each call; the engine
// replaces its lookup table wholesale rather than merging deltas.
type CatalogSource interface {
	// ListExperiments returns the current full catalog.
	//
	// Parameters:
	//   - ctx: Context for cancellation and deadline
	//
	// Returns:
	//   - []ExperimentDefinition: Complete list of definitions
	//   - error: Non-nil if the catalog could not be fetched
	ListExperiments(ctx context.Context) ([]ExperimentDefinition, error)
}
