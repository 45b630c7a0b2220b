// Package domain defines the core business entities for placemap.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RawRow, Cell, Column: a raw grid row and its column metadata
//   - FieldRecord: a row resolved into the recognised columns
//   - Place, Review, EnrichedLocation: a merged, geocoded place
//   - RowOutcome, RowError: the tagged result of processing one row
//   - Dataset: the terminal artifact consumed by presentation
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
