package types

import "errors"

// Sentinel errors for the Bucketeer library.
//
// These errors provide type-safe error checking using errors.Is() and
// errors.As(). Components use these sentinels for known error conditions and
// wrap external errors with context using fmt.Errorf("%s: %w", msg, err).

// Engine errors - Public API errors returned by the Engine.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrCatalogSourceRequired is returned when Start is called without a
	// configured catalog source.
	ErrCatalogSourceRequired = errors.New("catalog source is required")

	// ErrAlreadyStarted is returned when Start is called on a running engine.
	ErrAlreadyStarted = errors.New("engine already started")

	// ErrNotStarted is returned when Stop is called on an engine that was
	// never started.
	ErrNotStarted = errors.New("engine not started")
)

// Catalog errors - Validation errors rejected at load time. A load that
// trips any of these leaves the prior snapshot authoritative.
var (
	// ErrInvalidCatalog is the base error wrapping every catalog validation
	// failure.
	ErrInvalidCatalog = errors.New("invalid catalog")

	// ErrEmptyExperimentKey is returned when a definition has no key.
	ErrEmptyExperimentKey = errors.New("experiment key is empty")

	// ErrDuplicateExperimentKey is returned when two definitions share a key.
	ErrDuplicateExperimentKey = errors.New("duplicate experiment key")

	// ErrInvalidStatus is returned for an unknown lifecycle status.
	ErrInvalidStatus = errors.New("invalid experiment status")

	// ErrInvalidAllocation is returned when allocation is outside 0-100.
	ErrInvalidAllocation = errors.New("allocation out of range")

	// ErrInvalidWeight is returned when a variant weight is outside 0-100.
	ErrInvalidWeight = errors.New("variant weight out of range")

	// ErrInvalidWindow is returned when stopAt precedes startAt.
	ErrInvalidWindow = errors.New("invalid activation window")
)
