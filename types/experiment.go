package types

import (
	"encoding/json"
	"fmt"
	"time"
)

// Status describes an experiment's lifecycle phase.
//
// Only StatusRunning experiments are eligible to receive traffic. All other
// statuses are terminal for assignment purposes until the catalog is reloaded
// with an updated definition.
type Status string

// Experiment lifecycle statuses.
const (
	StatusDraft     Status = "draft"
	StatusRunning   Status = "running"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
)

// Valid reports whether s is one of the known lifecycle statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusRunning, StatusPaused, StatusCompleted:
		return true
	default:
		return false
	}
}

// Variant is one treatment arm of an experiment.
type Variant struct {
	// ID uniquely identifies the variant within the catalog.
	ID string `json:"id"`

	// Key is the human-readable variant name (e.g., "control", "treatment").
	Key string `json:"key"`

	// Weight is the variant's relative share (0-100) of allocated traffic.
	// Weights across an experiment's variants need not sum to exactly 100;
	// see the selector fallback rule.
	Weight int `json:"weight"`

	// Config is an opaque per-variant payload. The engine passes it through
	// unparsed; only the caller knows the experiment's config schema.
	Config json.RawMessage `json:"config,omitempty"`
}

// ExperimentDefinition describes one experiment in the catalog.
//
// Definitions are externally loaded and treated as immutable by the engine.
// Reloading the catalog replaces definitions wholesale.
type ExperimentDefinition struct {
	// ID is the experiment's identity. Assignment stickiness is scoped to ID:
	// a new ID under the same Key is treated as a relaunch and recomputes.
	ID string `json:"id"`

	// Key is the human-readable experiment name, unique within a catalog.
	// Callers look experiments up by Key.
	Key string `json:"key"`

	// Status governs eligibility; only StatusRunning receives traffic.
	Status Status `json:"status"`

	// StartAt and StopAt bound the activation window. Nil means unbounded on
	// that side.
	StartAt *time.Time `json:"startAt,omitempty"`
	StopAt  *time.Time `json:"stopAt,omitempty"`

	// HashSalt is mixed into every hash input so the same subject buckets
	// independently across experiments.
	HashSalt string `json:"hashSalt"`

	// Allocation is the percentage (0-100) of eligible subjects who receive
	// any treatment at all. Subjects outside the allocation observe no
	// assignment, not "control".
	Allocation int `json:"allocation"`

	// GuardrailMetric names a metric this experiment is watched against.
	// Empty means no guardrail.
	GuardrailMetric string `json:"guardrailMetric,omitempty"`

	// StoreID scopes the experiment to a single store when set. Empty means
	// the experiment applies to all stores.
	StoreID string `json:"storeId,omitempty"`

	// Variants is the ordered list of treatment arms. Order matters: the
	// selector walks variants in definition order, and the under-weighted
	// fallback lands on the first variant.
	Variants []Variant `json:"variants"`
}

// ActiveAt reports whether the experiment is eligible to receive traffic at
// the given instant for the given store.
//
// Rules:
//   - Status must be StatusRunning
//   - now must not precede StartAt (when set) nor exceed StopAt (when set)
//   - a store-scoped experiment requires a matching storeID
//
// Pure function of the definition and the arguments; callers inject the clock.
//
// Parameters:
//   - now: Current instant from the caller's clock
//   - storeID: The requesting store ("" if the caller has no store context)
//
// Returns:
//   - bool: true if the experiment may produce assignments right now
func (e ExperimentDefinition) ActiveAt(now time.Time, storeID string) bool {
	if e.Status != StatusRunning {
		return false
	}
	if e.StartAt != nil && now.Before(*e.StartAt) {
		return false
	}
	if e.StopAt != nil && now.After(*e.StopAt) {
		return false
	}
	if e.StoreID != "" && e.StoreID != storeID {
		return false
	}

	return true
}

// Validate checks the definition's structural invariants.
//
// Returns:
//   - error: The first violated invariant wrapped around a sentinel error
//     (ErrEmptyExperimentKey, ErrInvalidStatus, ErrInvalidAllocation,
//     ErrInvalidWeight, ErrInvalidWindow), nil if valid
func (e ExperimentDefinition) Validate() error {
	if e.Key == "" {
		return ErrEmptyExperimentKey
	}
	if !e.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, e.Status)
	}
	if e.Allocation < 0 || e.Allocation > 100 {
		return fmt.Errorf("%w: %d", ErrInvalidAllocation, e.Allocation)
	}
	if e.StartAt != nil && e.StopAt != nil && e.StopAt.Before(*e.StartAt) {
		return fmt.Errorf("%w: stopAt %v precedes startAt %v", ErrInvalidWindow, e.StopAt, e.StartAt)
	}
	for _, v := range e.Variants {
		if v.Weight < 0 || v.Weight > 100 {
			return fmt.Errorf("%w: variant %q has weight %d", ErrInvalidWeight, v.Key, v.Weight)
		}
	}

	return nil
}
