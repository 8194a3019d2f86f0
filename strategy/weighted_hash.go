package strategy

import (
	"github.com/arloliu/bucketeer/internal/hash"
	"github.com/arloliu/bucketeer/types"
)

// WeightedHash implements weight-proportional variant selection with
// deterministic tie-breaking.
type WeightedHash struct{}

var _ types.VariantStrategy = (*WeightedHash)(nil)

// NewWeightedHash creates the default variant selection strategy.
//
// The strategy derives two independent buckets per subject:
//
//  1. An allocation bucket from (subjectKey, hashSalt). Subjects whose bucket
//     is at or above the experiment's allocation percentage are excluded
//     entirely; they are not "control", they simply observe no assignment.
//  2. A variant bucket from (subjectKey, experimentKey, hashSalt), walked
//     over the variants' cumulative weights in definition order.
//
// Because the two buckets are independently salted, ramping the allocation
// percentage up or down never reshuffles the variant of a subject who remains
// allocated.
//
// Returns:
//   - *WeightedHash: Initialized strategy
//
// Example:
//
//	eng, err := bucketeer.New(&cfg, bucketeer.WithStrategy(strategy.NewWeightedHash()))
func NewWeightedHash() *WeightedHash {
	return &WeightedHash{}
}

// Select picks the subject's variant for the experiment.
//
// When variant weights sum below 100 and the variant bucket falls past the
// cumulative total, the FIRST variant is returned rather than none. Dropping
// traffic silently on a misconfigured catalog would skew every downstream
// metric; landing it on the first (conventionally control) arm is the safety
// default.
//
// Parameters:
//   - exp: Experiment definition (variant order matters)
//   - subjectKey: Opaque subject identifier
//
// Returns:
//   - types.Variant: Selected variant (zero value when excluded)
//   - bool: false when the subject is unallocated or there are no variants
func (s *WeightedHash) Select(exp types.ExperimentDefinition, subjectKey string) (types.Variant, bool) {
	if len(exp.Variants) == 0 {
		return types.Variant{}, false
	}

	if !Allocated(exp, subjectKey) {
		return types.Variant{}, false
	}

	bucket := int(hash.Mod100(subjectKey + ":" + exp.Key + ":" + exp.HashSalt))

	cumulative := 0
	for _, v := range exp.Variants {
		cumulative += v.Weight
		if bucket < cumulative {
			return v, true
		}
	}

	// Weights sum below 100: fall back to the first variant.
	return exp.Variants[0], true
}

// Allocated reports whether the subject participates in the experiment at
// all, independent of which variant it would land in.
//
// Shared by all strategies so the traffic ramp behaves identically no matter
// how variants are split.
//
// Parameters:
//   - exp: Experiment definition
//   - subjectKey: Opaque subject identifier
//
// Returns:
//   - bool: true if the subject falls inside the allocation percentage
func Allocated(exp types.ExperimentDefinition, subjectKey string) bool {
	if exp.Allocation <= 0 {
		return false
	}

	return hash.Mod100(subjectKey+":"+exp.HashSalt) < uint32(exp.Allocation)
}
