package bucketeer

import (
	"fmt"
	"time"
)

// Config is the configuration for the Engine.
//
// All duration fields accept standard Go duration values.
type Config struct {
	// RefreshInterval is how often the engine re-reads its catalog source
	// when started with one. Manual LoadExperiments calls are unaffected.
	// Recommended: 30 seconds.
	RefreshInterval time.Duration `yaml:"refreshInterval"`

	// OperationTimeout bounds external side-channel operations (exposure
	// ledger writes, catalog source reads). An operation that exceeds it is
	// abandoned and the engine degrades per the fail-open rules; the
	// assignment decision path itself never blocks on it.
	// Recommended: 5 seconds.
	OperationTimeout time.Duration `yaml:"operationTimeout"`
}

// DefaultConfig returns a Config with sensible defaults.
//
// Returns:
//   - Config: Configuration with default values
func DefaultConfig() Config {
	return Config{
		RefreshInterval:  30 * time.Second,
		OperationTimeout: 5 * time.Second,
	}
}

// SetDefaults fills in missing configuration values with production defaults.
//
// Parameters:
//   - cfg: Config to apply defaults to (modified in place)
func SetDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.RefreshInterval == 0 {
		cfg.RefreshInterval = defaults.RefreshInterval
	}
	if cfg.OperationTimeout == 0 {
		cfg.OperationTimeout = defaults.OperationTimeout
	}
}

// Validate checks configuration constraints and returns an error for invalid
// values.
//
// Returns:
//   - error: Validation error with clear explanation, nil if valid
func (cfg *Config) Validate() error {
	if cfg.RefreshInterval <= 0 {
		return fmt.Errorf("%w: RefreshInterval must be > 0, got %v", ErrInvalidConfig, cfg.RefreshInterval)
	}
	if cfg.OperationTimeout <= 0 {
		return fmt.Errorf("%w: OperationTimeout must be > 0, got %v", ErrInvalidConfig, cfg.OperationTimeout)
	}

	return nil
}

// TestConfig returns a configuration optimized for fast test execution.
//
// Test timings are much faster than production defaults to enable rapid
// iteration. Use DefaultConfig() for production deployments.
//
// Returns:
//   - Config: Configuration with fast timings for tests
func TestConfig() Config {
	return Config{
		RefreshInterval:  50 * time.Millisecond,
		OperationTimeout: 500 * time.Millisecond,
	}
}
