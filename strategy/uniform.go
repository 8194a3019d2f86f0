package strategy

import (
	"github.com/arloliu/bucketeer/internal/hash"
	"github.com/arloliu/bucketeer/types"
)

// Uniform implements equal-split variant selection, ignoring weights.
type Uniform struct{}

var _ types.VariantStrategy = (*Uniform)(nil)

// NewUniform creates a strategy that splits allocated subjects evenly across
// variants regardless of configured weights.
//
// Useful for smoke tests and for catalogs authored before weights are tuned.
// The allocation gate behaves exactly as in WeightedHash.
//
// Returns:
//   - *Uniform: Initialized strategy
func NewUniform() *Uniform {
	return &Uniform{}
}

// Select picks the subject's variant by hashing into the variant list
// directly.
//
// Parameters:
//   - exp: Experiment definition
//   - subjectKey: Opaque subject identifier
//
// Returns:
//   - types.Variant: Selected variant (zero value when excluded)
//   - bool: false when the subject is unallocated or there are no variants
func (s *Uniform) Select(exp types.ExperimentDefinition, subjectKey string) (types.Variant, bool) {
	if len(exp.Variants) == 0 {
		return types.Variant{}, false
	}

	if !Allocated(exp, subjectKey) {
		return types.Variant{}, false
	}

	idx := hash.Bucket(subjectKey+":"+exp.Key+":"+exp.HashSalt) % uint32(len(exp.Variants))

	return exp.Variants[idx], true
}
