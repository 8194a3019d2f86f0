// Package bucketeer provides a deterministic experiment assignment engine:
// stable hashing-based bucketing, sticky per-subject assignment caching,
// weighted variant selection, time-windowed activation, exposure recording
// and guardrail monitoring.
//
// The engine is a library-level contract: it owns the bucketing decision and
// its consistency guarantees, and nothing else. The experiment catalog is
// supplied by an external loader, and assignment/exposure events flow out to
// pluggable metrics and logging sinks. Wrap it in whatever transport the
// surrounding system uses.
//
// # Quick Start
//
//	cfg := bucketeer.DefaultConfig()
//	eng, err := bucketeer.New(&cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = eng.LoadExperiments([]bucketeer.ExperimentDefinition{{
//	    ID:         "exp-1",
//	    Key:        "checkout-button",
//	    Status:     bucketeer.StatusRunning,
//	    HashSalt:   "v1",
//	    Allocation: 100,
//	    Variants: []bucketeer.Variant{
//	        {ID: "var-1", Key: "control", Weight: 50},
//	        {ID: "var-2", Key: "treatment", Weight: 50},
//	    },
//	}})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if a, ok := eng.GetAssignment("org-1", "store-1", "user-42", "checkout-button"); ok {
//	    render(a.VariantKey, a.Config)
//	}
//
// # Key Guarantees
//
//   - Determinism: selection depends only on (subjectKey, experiment key,
//     hash salt); the same inputs produce the same variant across processes
//     and restarts
//   - Stickiness: once a subject is assigned, repeated calls return the
//     identical variant for as long as the experiment keeps its ID, even if
//     variant weights are hot-reloaded
//   - Allocation independence: ramping traffic up or down never reshuffles
//     the variants of subjects who remain allocated
//   - Atomic catalog swaps: readers never observe a partially-loaded catalog;
//     a rejected load keeps the prior snapshot authoritative
//
// # Advanced Usage
//
// Background catalog refresh from a source, durable exposure dedup, and
// custom observability:
//
//	src := source.NewKV(bucket)
//	eng, err := bucketeer.New(&cfg,
//	    bucketeer.WithSource(src),
//	    bucketeer.WithLedger(ledger.NewKV(exposureBucket)),
//	    bucketeer.WithMetrics(metrics.NewPrometheus(nil, "bucketeer")),
//	    bucketeer.WithLogger(myLogger),
//	)
//
//	if err := eng.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer eng.Stop(context.Background())
//
// See the examples/ directory for complete working examples.
package bucketeer
