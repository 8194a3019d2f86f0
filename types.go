package bucketeer

import "github.com/arloliu/bucketeer/types"

// Re-export types from the types subpackage.
//
// This file provides a stable public API for the library's core types and
// interfaces. It uses type aliases to re-export definitions from the `types`
// subpackage, which contains the actual implementations.
//
// This pattern solves the "import cycle" problem by allowing internal
// packages to depend on `types` without depending on the root bucketeer
// package, while still providing a convenient `bucketeer.Assignment`,
// `bucketeer.Logger`, etc. for users.
type (
	Status               = types.Status
	Variant              = types.Variant
	ExperimentDefinition = types.ExperimentDefinition
	Assignment           = types.Assignment
	ExposureResult       = types.ExposureResult
)

// Re-export interfaces from the types subpackage for convenience.
type (
	VariantStrategy  = types.VariantStrategy
	CatalogSource    = types.CatalogSource
	ExposureLedger   = types.ExposureLedger
	MetricsCollector = types.MetricsCollector
	Logger           = types.Logger
)

// Re-export Status constants from the types subpackage.
const (
	StatusDraft     = types.StatusDraft
	StatusRunning   = types.StatusRunning
	StatusPaused    = types.StatusPaused
	StatusCompleted = types.StatusCompleted
)
