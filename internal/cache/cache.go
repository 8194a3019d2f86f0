// Package cache provides the concurrency-safe assignment cache.
//
// The cache is keyed by organization then subject, with one assignment per
// experiment key per subject. It is the engine's only owned mutable state.
// Two calls racing on the same subject/experiment pair may both compute an
// assignment; last-writer-wins is fine because selection is deterministic,
// so both writers hold the identical variant.
package cache

import (
	"github.com/puzpuzpuz/xsync/v4"

	"github.com/arloliu/bucketeer/types"
)

// Cache memoizes the most recent assignment per (org, subject, experiment).
type Cache struct {
	// subjects maps "orgID/subjectKey" to that subject's assignments keyed
	// by experiment key.
	subjects *xsync.Map[string, *xsync.Map[string, types.Assignment]]
}

// New creates an empty assignment cache.
//
// Returns:
//   - *Cache: Initialized cache, safe for concurrent use
func New() *Cache {
	return &Cache{
		subjects: xsync.NewMap[string, *xsync.Map[string, types.Assignment]](),
	}
}

// Get returns the cached assignment for the subject and experiment key,
// provided it is pinned to the given experiment ID.
//
// An entry cached under the same key but a different ID belongs to a previous
// launch of the experiment; it is reported as a miss so the caller recomputes
// and overwrites it.
//
// Parameters:
//   - orgID: Organization scope
//   - subjectKey: Opaque subject identifier
//   - experimentKey: Experiment key
//   - experimentID: Current identity of the experiment in the catalog
//
// Returns:
//   - types.Assignment: Cached assignment (zero value on miss)
//   - bool: false on miss or stale-identity entry
func (c *Cache) Get(orgID, subjectKey, experimentKey, experimentID string) (types.Assignment, bool) {
	inner, ok := c.subjects.Load(subjectID(orgID, subjectKey))
	if !ok {
		return types.Assignment{}, false
	}

	a, ok := inner.Load(experimentKey)
	if !ok || a.ExperimentID != experimentID {
		return types.Assignment{}, false
	}

	return a, true
}

// Put stores an assignment for the subject, replacing any entry for the same
// experiment key (including stale entries from a relaunched experiment).
//
// Parameters:
//   - orgID: Organization scope
//   - subjectKey: Opaque subject identifier
//   - a: Assignment to store (keyed by a.ExperimentKey)
func (c *Cache) Put(orgID, subjectKey string, a types.Assignment) {
	sid := subjectID(orgID, subjectKey)

	inner, ok := c.subjects.Load(sid)
	if !ok {
		inner, _ = c.subjects.LoadOrStore(sid, xsync.NewMap[string, types.Assignment]())
	}

	inner.Store(a.ExperimentKey, a)
}

// Clear drops every cached assignment. Intended for test teardown and
// explicit operator resets; regular operation never clears the cache.
func (c *Cache) Clear() {
	c.subjects.Clear()
}

// Size returns the number of subjects with at least one cached assignment.
func (c *Cache) Size() int {
	return c.subjects.Size()
}

func subjectID(orgID, subjectKey string) string {
	return orgID + "/" + subjectKey
}
