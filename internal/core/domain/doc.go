// Package domain defines the core entities for cloudtiles.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Category and Service: the immutable dataset
//   - GroupDefinition and ResolvedGroup: service grouping inputs and outputs
//   - ViewState: which of the two views is active
//   - Screen: the render instruction consumed by every driving adapter
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
