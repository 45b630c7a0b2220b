// Package sqlite provides the SQLite-backed cache and scheduler stores.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. One database connection backs:
//
//   - CacheStore: TTL-bound cache entries for the grid, place and dataset tiers
//   - SchedulerStore: background task state and execution history
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.placemap/data/placemap.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
