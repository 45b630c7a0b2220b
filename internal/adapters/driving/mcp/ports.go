package mcp

import (
	"github.com/custodia-labs/placemap/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP server.
type Ports struct {
	// Dataset serves the reconciled dataset.
	Dataset driving.DatasetService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Dataset == nil {
		return ErrMissingDatasetService
	}
	return nil
}
