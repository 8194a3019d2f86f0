package bucketeer

import "github.com/jonboulle/clockwork"

// Option configures an Engine with optional dependencies.
type Option func(*engineOptions)

// engineOptions holds optional Engine configuration.
type engineOptions struct {
	strategy VariantStrategy
	source   CatalogSource
	ledger   ExposureLedger
	clock    clockwork.Clock
	metrics  MetricsCollector
	logger   Logger
}

// WithStrategy sets a custom variant selection strategy.
//
// The default is strategy.NewWeightedHash(). Swapping the strategy on a live
// catalog re-buckets subjects who have no cached assignment yet; cached
// subjects keep their variant (stickiness is cache-level, not
// strategy-level).
//
// Parameters:
//   - s: VariantStrategy implementation
//
// Returns:
//   - Option: Functional option for New
//
// Example:
//
//	eng, err := bucketeer.New(&cfg, bucketeer.WithStrategy(strategy.NewUniform()))
func WithStrategy(s VariantStrategy) Option {
	return func(o *engineOptions) {
		o.strategy = s
	}
}

// WithSource sets a catalog source for Start's background refresh loop.
//
// Without a source the engine is fed exclusively through LoadExperiments and
// Start returns ErrCatalogSourceRequired.
//
// Parameters:
//   - src: CatalogSource implementation
//
// Returns:
//   - Option: Functional option for New
//
// Example:
//
//	src := source.NewStatic(defs)
//	eng, err := bucketeer.New(&cfg, bucketeer.WithSource(src))
func WithSource(src CatalogSource) Option {
	return func(o *engineOptions) {
		o.source = src
	}
}

// WithLedger sets an exposure dedup ledger.
//
// When configured, RecordExposure suppresses metric and log emission for a
// tuple the ledger has already seen and flags the result as deduplicated.
// Ledger failures are fail-open: the exposure is recorded without dedup.
// Without a ledger, every resolved exposure call emits; deduplication is the
// caller's concern.
//
// Parameters:
//   - l: ExposureLedger implementation
//
// Returns:
//   - Option: Functional option for New
//
// Example:
//
//	eng, err := bucketeer.New(&cfg, bucketeer.WithLedger(ledger.NewMemory()))
func WithLedger(l ExposureLedger) Option {
	return func(o *engineOptions) {
		o.ledger = l
	}
}

// WithClock sets the clock used for activation window checks and the refresh
// loop.
//
// Inject a clockwork fake clock in tests to step experiments across their
// activation windows deterministically. Defaults to the real clock.
//
// Parameters:
//   - clock: Clock implementation
//
// Returns:
//   - Option: Functional option for New
//
// Example:
//
//	clk := clockwork.NewFakeClockAt(launchTime)
//	eng, err := bucketeer.New(&cfg, bucketeer.WithClock(clk))
func WithClock(clock clockwork.Clock) Option {
	return func(o *engineOptions) {
		o.clock = clock
	}
}

// WithMetrics sets a metrics collector.
//
// Parameters:
//   - metrics: MetricsCollector implementation
//
// Returns:
//   - Option: Functional option for New
//
// Example:
//
//	collector := metrics.NewPrometheus(nil, "bucketeer")
//	eng, err := bucketeer.New(&cfg, bucketeer.WithMetrics(collector))
func WithMetrics(metrics MetricsCollector) Option {
	return func(o *engineOptions) {
		o.metrics = metrics
	}
}

// WithLogger sets a logger.
//
// Parameters:
//   - logger: Logger implementation (compatible with zap.SugaredLogger)
//
// Returns:
//   - Option: Functional option for New
//
// Example:
//
//	logger := zap.NewExample().Sugar()
//	eng, err := bucketeer.New(&cfg, bucketeer.WithLogger(logger))
func WithLogger(logger Logger) Option {
	return func(o *engineOptions) {
		o.logger = logger
	}
}
