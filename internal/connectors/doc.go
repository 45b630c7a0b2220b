// Package connectors holds the adapters that talk to external data sources.
// Each subpackage implements one or more driven ports against a remote API:
//
//   - google/sheets: driven.GridSource over the Sheets API
//   - google/places: driven.PlaceLookup over the Places API (New)
//
// Shared Google plumbing (credentials, rate limiting, error classification)
// lives in package google.
package connectors
