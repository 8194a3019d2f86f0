// Package types contains the public data types and interfaces of the
// Bucketeer library.
//
// It is a leaf package: internal packages depend on types without depending
// on the root bucketeer package, which avoids import cycles. The root package
// re-exports the commonly used definitions via type aliases.
package types
