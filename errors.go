package bucketeer

import "github.com/arloliu/bucketeer/types"

// Sentinel errors returned by the Engine, re-exported from the types
// subpackage so callers can use errors.Is against the root package.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = types.ErrInvalidConfig

	// ErrCatalogSourceRequired is returned when Start is called without a
	// configured catalog source.
	ErrCatalogSourceRequired = types.ErrCatalogSourceRequired

	// ErrAlreadyStarted is returned when Start is called on a running engine.
	ErrAlreadyStarted = types.ErrAlreadyStarted

	// ErrNotStarted is returned when Stop is called on an engine that was
	// never started.
	ErrNotStarted = types.ErrNotStarted

	// ErrInvalidCatalog wraps every catalog validation failure rejected at
	// load time.
	ErrInvalidCatalog = types.ErrInvalidCatalog

	// ErrDuplicateExperimentKey is returned when a catalog load contains two
	// definitions sharing a key.
	ErrDuplicateExperimentKey = types.ErrDuplicateExperimentKey
)
