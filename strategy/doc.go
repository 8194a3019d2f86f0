// Package strategy provides built-in variant selection strategies.
//
// Strategies decide which treatment arm a subject lands in once the
// activation gate has passed. The package includes:
//
//   - WeightedHash: weight-proportional selection over two independently
//     salted hashes (the default, and the one production catalogs assume)
//   - Uniform: equal split across variants, ignoring weights
//
// Custom strategies can be implemented by satisfying the
// types.VariantStrategy interface, but note the determinism requirement
// documented there.
package strategy
