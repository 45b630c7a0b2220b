// Package mcp provides an MCP (Model Context Protocol) server adapter for placemap.
// It lets AI assistants query the reconciled places, their reviews and the
// rows that could not be placed.
package mcp

import "errors"

// ErrMissingDatasetService is returned when the dataset service is not provided.
var ErrMissingDatasetService = errors.New("mcp: dataset service is required")
