package source

import (
	"context"
	"sync"

	"github.com/arloliu/bucketeer/types"
)

// Static implements a catalog source with a fixed list of experiments.
type Static struct {
	mu   sync.RWMutex
	defs []types.ExperimentDefinition
}

var _ types.CatalogSource = (*Static)(nil)

// NewStatic creates a new static catalog source.
//
// The source returns a fixed list of definitions until Update replaces it.
// Useful for testing and for deployments where the catalog ships with the
// binary.
//
// Parameters:
//   - defs: Fixed list of experiment definitions
//
// Returns:
//   - *Static: Initialized static source
//
// Example:
//
//	src := source.NewStatic([]types.ExperimentDefinition{
//	    {ID: "exp-1", Key: "checkout-button", Status: types.StatusRunning, Allocation: 100, ...},
//	})
//	eng, err := bucketeer.New(&cfg, bucketeer.WithSource(src))
func NewStatic(defs []types.ExperimentDefinition) *Static {
	return &Static{defs: defs}
}

// ListExperiments returns the static list of definitions.
//
// Returns:
//   - []types.ExperimentDefinition: A copy of the fixed list
//   - error: Always nil (never fails)
func (s *Static) ListExperiments(_ context.Context) ([]types.ExperimentDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]types.ExperimentDefinition, len(s.defs))
	copy(result, s.defs)

	return result, nil
}

// Update replaces the definition list.
//
// This allows the static source to simulate catalog changes, which is useful
// for testing reload and relaunch scenarios.
//
// Parameters:
//   - defs: New full list of definitions
func (s *Static) Update(defs []types.ExperimentDefinition) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.defs = make([]types.ExperimentDefinition, len(defs))
	copy(s.defs, defs)
}
