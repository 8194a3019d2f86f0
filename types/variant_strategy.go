package types

// VariantStrategy picks exactly one variant (or none) for a subject.
//
// Implementations must be deterministic: identical (experiment, subjectKey)
// inputs must yield the identical result on every call, across processes and
// restarts. No dependency on process-local random state is permitted, since
// assignment stability and analytical reproducibility both rest on it.
type VariantStrategy interface {
	// Select picks the subject's variant for the experiment.
	//
	// Parameters:
	//   - exp: Experiment definition (variant order matters)
	//   - subjectKey: Opaque subject identifier
	//
	// Returns:
	//   - Variant: The selected variant (zero value when excluded)
	//   - bool: false when the subject is excluded (unallocated, or the
	//     experiment has no variants)
	Select(exp ExperimentDefinition, subjectKey string) (Variant, bool)
}
