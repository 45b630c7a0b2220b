package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	// For the table resolver this is fatal: no data can be located without it.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotConfigured indicates a required setting is missing.
	ErrNotConfigured = errors.New("not configured")

	// ErrMissingColumn indicates the source table lacks a recognised column.
	ErrMissingColumn = errors.New("missing column")

	// Row errors. These never abort a pipeline run; the row processor
	// turns them into RowError entries.

	// ErrNoIdentity indicates the row has no place link at all.
	ErrNoIdentity = errors.New("missing Google Maps link")

	// ErrIdentityNotFound indicates the place link did not match the identity pattern.
	ErrIdentityNotFound = errors.New("place link does not contain a place id")

	// ErrEnrichmentFailed indicates the place lookup returned a non-success response.
	ErrEnrichmentFailed = errors.New("place lookup failed")

	// Infrastructure errors surfaced by adapters.

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrCacheMiss indicates a cache key is absent or expired.
	ErrCacheMiss = errors.New("cache miss")
)
