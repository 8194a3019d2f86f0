package ledger

import (
	"context"

	"github.com/puzpuzpuz/xsync/v4"
	"github.com/zeebo/xxh3"

	"github.com/arloliu/bucketeer/types"
)

// Memory implements an in-process exposure ledger.
//
// Tuples are stored as 128-bit xxh3 hashes of the composite key rather than
// the raw strings: subject keys never sit in ledger memory, and the set stays
// compact for large populations. 128 bits keeps the collision probability
// negligible at any realistic exposure volume.
type Memory struct {
	seen *xsync.Map[xxh3.Uint128, struct{}]
}

var _ types.ExposureLedger = (*Memory)(nil)

// NewMemory creates an empty in-process ledger.
//
// Dedup scope is the process lifetime; use KV when the guarantee must
// survive restarts.
//
// Returns:
//   - *Memory: Initialized ledger, safe for concurrent use
//
// Example:
//
//	eng, err := bucketeer.New(&cfg, bucketeer.WithLedger(ledger.NewMemory()))
func NewMemory() *Memory {
	return &Memory{
		seen: xsync.NewMap[xxh3.Uint128, struct{}](),
	}
}

// MarkSeen records the tuple and reports whether this was its first sighting.
//
// Parameters:
//   - ctx: Unused; the ledger never blocks
//   - experimentKey: Experiment the subject is assigned to
//   - subjectKey: Opaque subject identifier
//   - surface: Where the subject observed the variant
//
// Returns:
//   - bool: true if the tuple had not been seen before
//   - error: Always nil
func (m *Memory) MarkSeen(_ context.Context, experimentKey, subjectKey, surface string) (bool, error) {
	_, loaded := m.seen.LoadOrStore(tupleHash(experimentKey, subjectKey, surface), struct{}{})

	return !loaded, nil
}

// Size returns the number of distinct tuples seen so far.
func (m *Memory) Size() int {
	return m.seen.Size()
}

// tupleHash folds the composite dedup key into a 128-bit hash. The unit
// separator keeps ("a","bc") and ("ab","c") from colliding.
func tupleHash(experimentKey, subjectKey, surface string) xxh3.Uint128 {
	return xxh3.HashString128(experimentKey + "\x1f" + subjectKey + "\x1f" + surface)
}
