package types

import "context"

// ExposureLedger deduplicates exposure events by (experiment, subject,
// surface) tuple.
//
// The engine consults the ledger, when one is configured, before emitting an
// exposure metric so the same subject exposed twice on the same surface is
// not double-counted. Durable implementations keep the guarantee across
// process restarts; in-memory implementations scope it to the process.
//
// Implementations must be safe for concurrent use. Ledger failures are
// treated as fail-open by the engine: the exposure is recorded without
// deduplication rather than blocking the decision path.
type ExposureLedger interface {
	// MarkSeen records the tuple and reports whether this was its first
	// sighting.
	//
	// Parameters:
	//   - ctx: Context for cancellation and deadline
	//   - experimentKey: Experiment the subject is assigned to
	//   - subjectKey: Opaque subject identifier
	//   - surface: Where the subject observed the variant
	//
	// Returns:
	//   - bool: true if the tuple had not been seen before
	//   - error: Non-nil if the ledger could not be consulted
	MarkSeen(ctx context.Context, experimentKey, subjectKey, surface string) (bool, error)
}
