// Package file provides the TOML-backed configuration store.
//
// Settings live in ~/.placemap/config.toml by default. Keys use dot notation
// ("cache.backend") and are written as nested TOML tables.
package file
