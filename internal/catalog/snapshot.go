// Package catalog builds immutable, validated experiment catalog snapshots.
//
// Snapshots are replaced wholesale: the engine holds an atomic pointer to the
// current snapshot, so readers never observe a partially-updated catalog. A
// snapshot that fails validation is never constructed, which keeps the prior
// snapshot authoritative on bad loads.
package catalog

import (
	"fmt"

	"github.com/arloliu/bucketeer/types"
)

// Snapshot is an immutable point-in-time view of the experiment catalog.
type Snapshot struct {
	byKey map[string]types.ExperimentDefinition
	list  []types.ExperimentDefinition
}

// Empty returns a snapshot with no experiments.
//
// Returns:
//   - *Snapshot: Snapshot where every lookup misses
func Empty() *Snapshot {
	return &Snapshot{byKey: map[string]types.ExperimentDefinition{}}
}

// Build validates the full definition list and constructs a snapshot.
//
// Validation is all-or-nothing: any invalid definition (or duplicate key)
// rejects the whole batch so the engine never ends up with an internally
// inconsistent catalog.
//
// Parameters:
//   - defs: Complete list of experiment definitions
//
// Returns:
//   - *Snapshot: Immutable lookup table keyed by experiment key
//   - error: Validation failure wrapping types.ErrInvalidCatalog, nil if valid
func Build(defs []types.ExperimentDefinition) (*Snapshot, error) {
	byKey := make(map[string]types.ExperimentDefinition, len(defs))
	list := make([]types.ExperimentDefinition, 0, len(defs))

	for _, def := range defs {
		if err := def.Validate(); err != nil {
			return nil, fmt.Errorf("%w: experiment %q: %w", types.ErrInvalidCatalog, def.Key, err)
		}
		if _, exists := byKey[def.Key]; exists {
			return nil, fmt.Errorf("%w: %w: %q", types.ErrInvalidCatalog, types.ErrDuplicateExperimentKey, def.Key)
		}

		byKey[def.Key] = def
		list = append(list, def)
	}

	return &Snapshot{byKey: byKey, list: list}, nil
}

// Lookup finds an experiment by key.
//
// Parameters:
//   - key: Experiment key
//
// Returns:
//   - types.ExperimentDefinition: The definition (zero value on miss)
//   - bool: false when the key is not in the snapshot
func (s *Snapshot) Lookup(key string) (types.ExperimentDefinition, bool) {
	def, ok := s.byKey[key]

	return def, ok
}

// List returns a copy of all definitions in load order.
//
// Returns:
//   - []types.ExperimentDefinition: Copied slice, safe for the caller to keep
func (s *Snapshot) List() []types.ExperimentDefinition {
	result := make([]types.ExperimentDefinition, len(s.list))
	copy(result, s.list)

	return result
}

// Len returns the number of experiments in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.list)
}
