// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The reconciliation pipeline lives here:
//
//	ResolveTable -> GridSource.Rows -> RowProcessor (fan-out) -> Reduce (ordered fold)
//
// Services depend only on domain, the port interfaces, and small
// general-purpose libraries (errgroup, uuid, collation).
package services
