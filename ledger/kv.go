package ledger

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/arloliu/bucketeer/types"
)

// KV implements a durable exposure ledger backed by a NATS JetStream
// key-value bucket.
//
// First-sighting detection rides on the bucket's Create semantics: Create
// succeeds only for a key that does not exist, so exactly one writer wins per
// tuple even across processes. Keys are hex-encoded 128-bit hashes of the
// composite tuple, which keeps subject identifiers out of the bucket and
// every key a valid KV subject token.
type KV struct {
	kv jetstream.KeyValue
}

var _ types.ExposureLedger = (*KV)(nil)

// NewKV creates a ledger writing to a JetStream KV bucket.
//
// Configure the bucket's TTL to bound ledger growth; an expired entry simply
// allows one more exposure for the tuple, which is the right failure
// direction for analytics.
//
// Parameters:
//   - kv: JetStream key-value bucket dedicated to exposure dedup
//
// Returns:
//   - *KV: Initialized ledger
//
// Example:
//
//	js, _ := jetstream.New(nc)
//	bucket, _ := js.KeyValue(ctx, "exposures")
//	eng, err := bucketeer.New(&cfg, bucketeer.WithLedger(ledger.NewKV(bucket)))
func NewKV(kv jetstream.KeyValue) *KV {
	return &KV{kv: kv}
}

// MarkSeen records the tuple and reports whether this was its first sighting.
//
// Parameters:
//   - ctx: Context for cancellation and deadline
//   - experimentKey: Experiment the subject is assigned to
//   - subjectKey: Opaque subject identifier
//   - surface: Where the subject observed the variant
//
// Returns:
//   - bool: true if the tuple had not been seen before
//   - error: Non-nil if the bucket could not be reached
func (l *KV) MarkSeen(ctx context.Context, experimentKey, subjectKey, surface string) (bool, error) {
	h := tupleHash(experimentKey, subjectKey, surface)

	var raw [16]byte
	binary.BigEndian.PutUint64(raw[:8], h.Hi)
	binary.BigEndian.PutUint64(raw[8:], h.Lo)
	key := hex.EncodeToString(raw[:])

	_, err := l.kv.Create(ctx, key, []byte{'1'})
	if err == nil {
		return true, nil
	}
	if errors.Is(err, jetstream.ErrKeyExists) {
		return false, nil
	}

	return false, fmt.Errorf("failed to record exposure tuple: %w", err)
}
