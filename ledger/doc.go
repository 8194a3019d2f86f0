// Package ledger provides built-in exposure dedup ledger implementations.
//
// A ledger remembers which (experiment, subject, surface) tuples have already
// produced an exposure event, so the engine can avoid double-counting. The
// package includes:
//
//   - Memory: In-process set, fast and allocation-light; dedup scope is the
//     process lifetime
//   - KV: NATS JetStream key-value bucket; dedup survives process restarts
//
// Custom ledgers can be implemented by satisfying the types.ExposureLedger
// interface.
package ledger
