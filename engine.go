package bucketeer

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/jonboulle/clockwork"

	"github.com/arloliu/bucketeer/internal/cache"
	"github.com/arloliu/bucketeer/internal/catalog"
	"github.com/arloliu/bucketeer/internal/logging"
	"github.com/arloliu/bucketeer/metrics"
	"github.com/arloliu/bucketeer/strategy"
	"github.com/arloliu/bucketeer/types"
)

// Engine is the deterministic experiment assignment engine.
//
// Engine is the main entry point of the Bucketeer library. It handles:
//   - Stable hashing-based variant selection with weighted allocation
//   - Sticky per-subject assignment caching (same subject, same variant)
//   - Time-windowed, store-scoped experiment activation
//   - Exactly-once-intent exposure recording with pluggable dedup
//   - Guardrail threshold monitoring
//
// Thread Safety:
//   - All public methods are safe for concurrent use
//   - Catalog snapshots are immutable and replaced atomically; readers never
//     observe a partially-loaded catalog
//   - Racing first-time assignments of the same subject resolve to the same
//     variant because selection is deterministic; only the cache write order
//     is racy, and last-writer-wins is harmless
//
// Lifecycle:
//   - Create with New()
//   - Feed the catalog via LoadExperiments, or configure a source with
//     WithSource and call Start() for background refresh
//   - Call Stop() for graceful shutdown when started
type Engine struct {
	cfg      Config
	strategy VariantStrategy
	source   CatalogSource
	ledger   ExposureLedger
	clock    clockwork.Clock
	metrics  MetricsCollector
	logger   Logger

	catalog atomic.Pointer[catalog.Snapshot]
	cache   *cache.Cache

	// Lifecycle management for the optional refresh loop
	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New creates a new Engine instance with the provided configuration.
//
// Returns a concrete *Engine struct following the "accept interfaces, return
// structs" principle. Consumers can define their own interfaces for testing
// if needed.
//
// The engine starts with an empty catalog: every lookup returns "no
// assignment" until LoadExperiments succeeds or Start runs its first refresh.
//
// Parameters:
//   - cfg: Runtime configuration (defaults are applied in place)
//   - opts: Optional configuration (strategy, source, ledger, clock, metrics, logger)
//
// Returns:
//   - *Engine: Initialized engine instance
//   - error: Validation error if configuration is invalid
//
// Example:
//
//	cfg := bucketeer.DefaultConfig()
//	eng, err := bucketeer.New(&cfg,
//	    bucketeer.WithSource(source.NewStatic(defs)),
//	    bucketeer.WithLogger(logger),
//	)
func New(cfg *Config, opts ...Option) (*Engine, error) {
	if cfg == nil {
		return nil, ErrInvalidConfig
	}

	SetDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := &engineOptions{}
	for _, opt := range opts {
		opt(options)
	}

	if options.strategy == nil {
		options.strategy = strategy.NewWeightedHash()
	}
	if options.clock == nil {
		options.clock = clockwork.NewRealClock()
	}
	if options.metrics == nil {
		options.metrics = metrics.NewNop()
	}
	if options.logger == nil {
		options.logger = logging.NewSlogDefault()
	}

	e := &Engine{
		cfg:      *cfg,
		strategy: options.strategy,
		source:   options.source,
		ledger:   options.ledger,
		clock:    options.clock,
		metrics:  options.metrics,
		logger:   options.logger,
		cache:    cache.New(),
	}
	e.catalog.Store(catalog.Empty())

	return e, nil
}

// LoadExperiments validates the definition list and atomically replaces the
// engine's catalog snapshot.
//
// Validation is all-or-nothing: any invalid definition or duplicate key
// rejects the whole batch, and the prior snapshot remains authoritative. The
// assignment cache is deliberately NOT cleared on reload; stickiness is
// scoped to each experiment's ID, so reloading an experiment under the same
// ID preserves existing assignments while a new ID under an old key
// re-buckets subjects on their next request.
//
// Parameters:
//   - defs: Complete experiment catalog (replaces the previous one wholesale)
//
// Returns:
//   - error: Validation failure wrapping ErrInvalidCatalog, nil on success
func (e *Engine) LoadExperiments(defs []types.ExperimentDefinition) error {
	snap, err := catalog.Build(defs)
	if err != nil {
		e.metrics.IncrementCatalogReloadFailure()
		e.logger.Error("catalog load rejected", "error", err, "experiments", len(defs))

		return err
	}

	e.catalog.Store(snap)
	e.metrics.RecordCatalogReload(snap.Len())
	e.logger.Info("catalog loaded", "experiments", snap.Len())

	return nil
}

// LoadFromSource fetches the catalog from the configured source and loads it.
//
// Parameters:
//   - ctx: Context for cancellation and deadline of the source read
//
// Returns:
//   - error: ErrCatalogSourceRequired without a source, otherwise any source
//     or validation failure (prior snapshot kept in both cases)
func (e *Engine) LoadFromSource(ctx context.Context) error {
	if e.source == nil {
		return ErrCatalogSourceRequired
	}

	ctx, cancelTimeout := context.WithTimeout(ctx, e.cfg.OperationTimeout)
	defer cancelTimeout()

	defs, err := e.source.ListExperiments(ctx)
	if err != nil {
		e.metrics.IncrementCatalogReloadFailure()
		e.logger.Error("catalog source read failed", "error", err)

		return fmt.Errorf("failed to list experiments from source: %w", err)
	}

	return e.LoadExperiments(defs)
}

// Start begins background catalog refresh from the configured source.
//
// The initial load happens synchronously so a successful Start means the
// engine is serving the source's current catalog. Subsequent refreshes run
// every RefreshInterval; a failed refresh logs and keeps the prior snapshot.
//
// Parameters:
//   - ctx: Context bounding the initial load and the refresh loop's lifetime
//
// Returns:
//   - error: ErrCatalogSourceRequired without a source, ErrAlreadyStarted on
//     double start, or the initial load's failure
func (e *Engine) Start(ctx context.Context) error {
	if e.source == nil {
		return ErrCatalogSourceRequired
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.started {
		return ErrAlreadyStarted
	}

	if err := e.LoadFromSource(ctx); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	e.cancel = cancel
	e.started = true

	e.wg.Add(1)
	go e.refreshLoop(runCtx)

	e.logger.Info("engine started", "refresh_interval", e.cfg.RefreshInterval)

	return nil
}

// Stop shuts down the background refresh loop.
//
// Parameters:
//   - ctx: Bound on how long to wait for the loop to drain
//
// Returns:
//   - error: ErrNotStarted if Start never succeeded, ctx.Err() if the loop
//     did not drain in time
func (e *Engine) Stop(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.started {
		return ErrNotStarted
	}

	e.cancel()

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	e.started = false
	e.logger.Info("engine stopped")

	return nil
}

// refreshLoop re-reads the catalog source until the engine is stopped.
func (e *Engine) refreshLoop(ctx context.Context) {
	defer e.wg.Done()

	ticker := e.clock.NewTicker(e.cfg.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			if err := e.LoadFromSource(ctx); err != nil && ctx.Err() == nil {
				e.logger.Warn("catalog refresh failed, keeping prior snapshot", "error", err)
			}
		}
	}
}

// GetAssignment resolves the subject's variant for the experiment.
//
// Resolution order:
//  1. Look the experiment up by key in the current catalog snapshot; an
//     unknown or inactive experiment is "no assignment", not an error.
//  2. Serve the cached assignment when one exists for the experiment's
//     current ID (stickiness: weight reloads never move a cached subject).
//     An entry pinned to a different ID under the same key belongs to a
//     previous launch and is recomputed and overwritten.
//  3. Otherwise select a variant. An excluded subject (outside the
//     allocation ramp, or zero variants) is NOT cached, so a later
//     allocation bump re-evaluates it immediately.
//
// The caller supplies default/control behavior on false; the engine never
// uses an error to mean "fall back".
//
// Parameters:
//   - orgID: Organization scope for the cache
//   - storeID: Requesting store ("" if none); checked against store-scoped experiments
//   - subjectKey: Opaque subject identifier
//   - experimentKey: Experiment key in the catalog
//
// Returns:
//   - Assignment: The subject's sticky assignment (IsNew marks a fresh computation)
//   - bool: false when the subject observes no variant
func (e *Engine) GetAssignment(orgID, storeID, subjectKey, experimentKey string) (Assignment, bool) {
	exp, ok := e.catalog.Load().Lookup(experimentKey)
	if !ok {
		return Assignment{}, false
	}
	if !exp.ActiveAt(e.clock.Now(), storeID) {
		return Assignment{}, false
	}

	if a, ok := e.cache.Get(orgID, subjectKey, experimentKey, exp.ID); ok {
		e.metrics.IncrementAssignmentReuse(exp.Key, a.VariantKey)

		return a, true
	}

	v, ok := e.strategy.Select(exp, subjectKey)
	if !ok {
		return Assignment{}, false
	}

	a := Assignment{
		ExperimentID:  exp.ID,
		ExperimentKey: exp.Key,
		VariantID:     v.ID,
		VariantKey:    v.Key,
		Config:        v.Config,
	}
	e.cache.Put(orgID, subjectKey, a)
	a.IsNew = true

	e.metrics.IncrementAssignment(exp.Key, v.Key, storeID)
	e.logger.Info("assignment created",
		"org_id", orgID,
		"experiment_id", exp.ID,
		"experiment_key", exp.Key,
		"variant_id", v.ID,
		"subject_key", subjectKey,
		"store_id", storeID,
	)

	return a, true
}

// RecordExposure confirms the subject's assignment on a surface and emits an
// exposure event.
//
// The assignment path runs first: exposure can never be recorded for a
// subject with no resolvable assignment. With a configured ledger, a tuple
// already seen on the same surface returns the assignment flagged
// Deduplicated and emits nothing; ledger failures are fail-open (the
// exposure is emitted without dedup) so the decision path never stalls on
// the side channel.
//
// Parameters:
//   - ctx: Context bounding the ledger write (OperationTimeout applies)
//   - orgID: Organization scope
//   - storeID: Requesting store ("" if none)
//   - subjectKey: Opaque subject identifier
//   - experimentKey: Experiment key in the catalog
//   - surface: Where the subject observed the variant (e.g., "checkout-page")
//
// Returns:
//   - ExposureResult: Resolved variant, config and dedup flag
//   - bool: false when the subject has no assignment (nothing emitted)
func (e *Engine) RecordExposure(ctx context.Context, orgID, storeID, subjectKey, experimentKey, surface string) (ExposureResult, bool) {
	a, ok := e.GetAssignment(orgID, storeID, subjectKey, experimentKey)
	if !ok {
		return ExposureResult{}, false
	}

	result := ExposureResult{Assignment: a, Surface: surface}

	if e.ledger != nil {
		ledgerCtx, cancel := context.WithTimeout(ctx, e.cfg.OperationTimeout)
		first, err := e.ledger.MarkSeen(ledgerCtx, experimentKey, subjectKey, surface)
		cancel()

		switch {
		case err != nil:
			e.logger.Warn("exposure ledger unavailable, recording without dedup",
				"error", err,
				"experiment_key", experimentKey,
				"surface", surface,
			)
		case !first:
			result.Deduplicated = true
			e.metrics.IncrementExposureDeduplicated(experimentKey, surface)

			return result, true
		}
	}

	e.metrics.IncrementExposure(a.ExperimentKey, a.VariantKey, surface, storeID)
	e.logger.Info("exposure recorded",
		"org_id", orgID,
		"experiment_id", a.ExperimentID,
		"experiment_key", a.ExperimentKey,
		"variant_id", a.VariantID,
		"subject_key", subjectKey,
		"surface", surface,
		"store_id", storeID,
	)

	return result, true
}

// CheckGuardrail compares an observed metric value against a threshold for
// the experiment.
//
// The check is a no-op (safe) when the experiment is unknown, watches no
// guardrail metric, or watches a different metric. A breach emits a
// guardrail event but never pauses or mutates the experiment; responding to
// breaches (auto-pause, alerting) is external policy layered on this signal.
//
// Parameters:
//   - experimentKey: Experiment key in the catalog
//   - metric: Name of the observed metric
//   - value: Observed value
//   - threshold: Safety threshold
//
// Returns:
//   - bool: true when safe, false on breach (value > threshold)
func (e *Engine) CheckGuardrail(experimentKey, metric string, value, threshold float64) bool {
	exp, ok := e.catalog.Load().Lookup(experimentKey)
	if !ok || exp.GuardrailMetric == "" || exp.GuardrailMetric != metric {
		return true
	}

	if value <= threshold {
		return true
	}

	e.metrics.IncrementGuardrailBreach(experimentKey, metric, threshold)
	e.logger.Warn("guardrail breached",
		"experiment_key", experimentKey,
		"metric", metric,
		"value", value,
		"threshold", threshold,
	)

	return false
}

// GetActiveExperiments lists the experiments currently eligible to receive
// traffic for the given store.
//
// Parameters:
//   - orgID: Organization context (carried to logs; the catalog is org-agnostic)
//   - storeID: Requesting store ("" if none)
//
// Returns:
//   - []ExperimentDefinition: Active experiments in catalog order
func (e *Engine) GetActiveExperiments(orgID, storeID string) []ExperimentDefinition {
	now := e.clock.Now()

	var active []ExperimentDefinition
	for _, exp := range e.catalog.Load().List() {
		if exp.ActiveAt(now, storeID) {
			active = append(active, exp)
		}
	}

	e.logger.Debug("active experiments listed",
		"org_id", orgID,
		"store_id", storeID,
		"count", len(active),
	)

	return active
}

// ClearCache drops every cached assignment.
//
// Intended for test teardown and explicit operator resets. Clearing the
// cache does not change what subjects will be assigned: selection is
// deterministic, so re-bucketing reproduces the same variants unless the
// catalog changed in between.
func (e *Engine) ClearCache() {
	e.cache.Clear()
	e.logger.Debug("assignment cache cleared")
}
