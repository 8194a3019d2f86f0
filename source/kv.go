package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/arloliu/bucketeer/types"
)

// KV implements a catalog source backed by a NATS JetStream key-value bucket.
//
// Each bucket key holds one experiment definition as a JSON document. The
// bucket is the catalog of record: ListExperiments reads the complete bucket,
// and Watch pushes full re-reads whenever any key changes, so consumers
// always swap in a whole catalog and never observe a partial update.
type KV struct {
	kv jetstream.KeyValue
}

var _ types.CatalogSource = (*KV)(nil)

// NewKV creates a catalog source reading from a JetStream KV bucket.
//
// Parameters:
//   - kv: JetStream key-value bucket holding one JSON definition per key
//
// Returns:
//   - *KV: Initialized source
//
// Example:
//
//	js, _ := jetstream.New(nc)
//	bucket, _ := js.KeyValue(ctx, "experiments")
//	src := source.NewKV(bucket)
//	eng, err := bucketeer.New(&cfg, bucketeer.WithSource(src))
func NewKV(kv jetstream.KeyValue) *KV {
	return &KV{kv: kv}
}

// ListExperiments reads every definition in the bucket.
//
// A single unparseable document fails the whole list: a partially readable
// catalog must be rejected at load time rather than silently dropping
// experiments.
//
// Parameters:
//   - ctx: Context for cancellation and deadline
//
// Returns:
//   - []types.ExperimentDefinition: All definitions in the bucket
//   - error: Non-nil on KV access failure or malformed document
func (s *KV) ListExperiments(ctx context.Context) ([]types.ExperimentDefinition, error) {
	keys, err := s.kv.Keys(ctx)
	if err != nil {
		if errors.Is(err, jetstream.ErrNoKeysFound) {
			return []types.ExperimentDefinition{}, nil
		}

		return nil, fmt.Errorf("failed to list catalog keys: %w", err)
	}

	defs := make([]types.ExperimentDefinition, 0, len(keys))
	for _, key := range keys {
		entry, err := s.kv.Get(ctx, key)
		if err != nil {
			if errors.Is(err, jetstream.ErrKeyNotFound) {
				// Deleted between Keys() and Get(); the watch will push a
				// fresh list shortly.
				continue
			}

			return nil, fmt.Errorf("failed to read catalog key %q: %w", key, err)
		}

		var def types.ExperimentDefinition
		if err := json.Unmarshal(entry.Value(), &def); err != nil {
			return nil, fmt.Errorf("malformed experiment document %q: %w", key, err)
		}

		defs = append(defs, def)
	}

	return defs, nil
}

// Watch blocks and invokes apply with a full catalog read whenever the bucket
// changes.
//
// The initial bucket contents also trigger one apply call, so a watcher-only
// consumer needs no separate bootstrap read. Errors returned by apply are the
// caller's to handle (log, count); the watch keeps running so a single bad
// catalog publish cannot kill push-based reloads.
//
// Parameters:
//   - ctx: Watch lifetime; Watch returns nil when it is canceled
//   - apply: Callback receiving the complete definition list
//
// Returns:
//   - error: Non-nil only if the watcher cannot be established or fails
func (s *KV) Watch(ctx context.Context, apply func([]types.ExperimentDefinition) error) error {
	watcher, err := s.kv.WatchAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to watch catalog bucket: %w", err)
	}
	defer watcher.Stop() //nolint:errcheck // stopping a watcher on exit is best-effort

	// Drain the initial replay; a nil entry marks its end. The replay is
	// collapsed into one apply call below instead of one per key.
	for {
		select {
		case <-ctx.Done():
			return nil
		case entry := <-watcher.Updates():
			if entry != nil {
				continue
			}
		}

		break
	}

	if err := s.listAndApply(ctx, apply); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case entry, ok := <-watcher.Updates():
			if !ok {
				return errors.New("catalog watcher closed unexpectedly")
			}
			if entry == nil {
				continue
			}

			if err := s.listAndApply(ctx, apply); err != nil {
				return err
			}
		}
	}
}

// listAndApply re-reads the bucket and hands the result to apply. List errors
// abort the watch; apply errors do not.
func (s *KV) listAndApply(ctx context.Context, apply func([]types.ExperimentDefinition) error) error {
	defs, err := s.ListExperiments(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}

		return err
	}

	_ = apply(defs)

	return nil
}
