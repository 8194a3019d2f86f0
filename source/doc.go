// Package source provides built-in experiment catalog source implementations.
//
// Catalog sources supply the full list of experiment definitions for the
// engine to load. The package includes:
//
//   - Static: Fixed in-memory list of definitions
//   - KV: NATS JetStream key-value bucket holding one JSON document per
//     experiment, with watch support for push-based reloads
//
// Custom sources can be implemented by satisfying the types.CatalogSource
// interface.
package source
