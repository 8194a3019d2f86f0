// Package hash provides the stable bucketing hash used for experiment
// assignment.
//
// The hash must be identical across processes and restarts: past assignments
// are reproduced analytically from logged subject keys, so a process-local or
// seed-dependent hash would silently break reproducibility. SHA-256 is used
// and truncated to 32 bits, matching the derivation analysts apply offline
// (first 8 hex characters of the digest read as an unsigned integer).
package hash

import (
	"crypto/sha256"
	"encoding/binary"
)

// Bucket maps an arbitrary string to a deterministic 32-bit bucket value.
//
// The value is the first 4 bytes of SHA-256(input) interpreted big-endian,
// which equals the first 8 hex characters of the digest. Always succeeds for
// any input, including the empty string.
//
// Parameters:
//   - input: Hash input (typically subjectKey mixed with experiment salt)
//
// Returns:
//   - uint32: Uniformly distributed bucket value
func Bucket(input string) uint32 {
	sum := sha256.Sum256([]byte(input))

	return binary.BigEndian.Uint32(sum[:4])
}

// Mod100 maps an arbitrary string to a bucket in [0, 100).
//
// This is the percentage-space projection used by both the allocation gate
// and the variant weight walk.
//
// Parameters:
//   - input: Hash input
//
// Returns:
//   - uint32: Bucket value in [0, 100)
func Mod100(input string) uint32 {
	return Bucket(input) % 100
}
