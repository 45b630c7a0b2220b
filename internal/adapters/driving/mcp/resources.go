package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/placemap/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for placemap resources.
	uriScheme = "placemap://"

	mimeJSON = "application/json"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "dataset",
		Name:        "dataset",
		Description: "The full dataset: places, row errors and unique values",
		MIMEType:    mimeJSON,
	}, s.handleDatasetResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "uniques",
		Name:        "uniques",
		Description: "Distinct place types, reviewers and cities",
		MIMEType:    mimeJSON,
	}, s.handleUniquesResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "errors",
		Name:        "errors",
		Description: "Spreadsheet rows that could not be turned into places",
		MIMEType:    mimeJSON,
	}, s.handleErrorsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "places/{placeId}",
		Name:        "place",
		Description: "A single place with all of its reviews",
		MIMEType:    mimeJSON,
	}, s.handlePlaceResource)
}

func (s *Server) handleDatasetResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	dataset, err := s.ports.Dataset.Get(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("loading dataset: %w", err)
	}
	return jsonResult(req.Params.URI, dataset)
}

func (s *Server) handleUniquesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	dataset, err := s.ports.Dataset.Get(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("loading dataset: %w", err)
	}
	return jsonResult(req.Params.URI, dataset.Uniques)
}

func (s *Server) handleErrorsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	dataset, err := s.ports.Dataset.Get(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("loading dataset: %w", err)
	}
	return jsonResult(req.Params.URI, dataset.Errors)
}

// handlePlaceResource returns a single place by its identity.
func (s *Server) handlePlaceResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	placeID := extractPlaceID(req.Params.URI)
	if placeID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	dataset, err := s.ports.Dataset.Get(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("loading dataset: %w", err)
	}
	for i := range dataset.Places {
		if dataset.Places[i].Identity() == domain.PlaceIdentity(placeID) {
			return jsonResult(req.Params.URI, placeOutput(dataset.Places[i]))
		}
	}
	return nil, mcp.ResourceNotFoundError(req.Params.URI)
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mimeJSON,
			Text:     string(data),
		}},
	}, nil
}

// extractPlaceID extracts the place ID from a URI like placemap://places/{placeId}.
func extractPlaceID(uri string) string {
	const prefix = uriScheme + "places/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
