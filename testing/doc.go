// Package testing provides test helpers for code using the Bucketeer
// library: a testing.T-backed logger, a recording metrics collector for
// asserting on emitted metrics, and embedded NATS helpers for exercising the
// JetStream-backed catalog source and exposure ledger without external
// infrastructure.
package testing
