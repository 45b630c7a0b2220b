package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/placemap/internal/core/domain"
)

const defaultPlaceLimit = 50

// ListPlacesInput is the input schema for the list_places tool.
type ListPlacesInput struct {
	Types     []string `json:"types,omitempty" jsonschema:"only places carrying any of these types"`
	Users     []string `json:"users,omitempty" jsonschema:"only places reviewed by any of these users"`
	Cities    []string `json:"cities,omitempty" jsonschema:"only places in any of these cities"`
	MinRating float64  `json:"min_rating,omitempty" jsonschema:"minimum review rating from 1 to 5"`
	Refresh   bool     `json:"refresh,omitempty" jsonschema:"rebuild the dataset from the spreadsheet first"`
	Limit     int      `json:"limit,omitempty" jsonschema:"maximum number of places to return (default 50)"`
}

// ListPlacesOutput is the output schema for the list_places tool.
type ListPlacesOutput struct {
	Places []PlaceOutput `json:"places"`
	Count  int           `json:"count"`
	Total  int           `json:"total"`
}

// PlaceOutput represents a single place.
type PlaceOutput struct {
	PlaceID       string          `json:"place_id"`
	Name          string          `json:"name"`
	DisplayName   string          `json:"display_name"`
	City          string          `json:"city"`
	URL           string          `json:"url"`
	Latitude      float64         `json:"latitude"`
	Longitude     float64         `json:"longitude"`
	Types         []string        `json:"types"`
	AverageRating float64         `json:"average_rating"`
	Reviews       []domain.Review `json:"reviews"`
}

// RefreshDatasetInput is the input schema for the refresh_dataset tool.
type RefreshDatasetInput struct{}

// RefreshDatasetOutput summarises a rebuilt dataset.
type RefreshDatasetOutput struct {
	RunID  string `json:"run_id"`
	Places int    `json:"places"`
	Errors int    `json:"errors"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_places",
		Description: "List reviewed places, optionally filtered by type, reviewer, city or rating",
	}, s.handleListPlaces)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "refresh_dataset",
		Description: "Rebuild the places dataset from the source spreadsheet",
	}, s.handleRefreshDataset)
}

// handleListPlaces handles the list_places tool invocation.
func (s *Server) handleListPlaces(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListPlacesInput,
) (*mcp.CallToolResult, ListPlacesOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultPlaceLimit
	}

	filter := domain.PlaceFilter{
		Types:     input.Types,
		Users:     input.Users,
		Cities:    input.Cities,
		MinRating: input.MinRating,
	}
	places, err := s.ports.Dataset.Query(ctx, filter, input.Refresh)
	if err != nil {
		return nil, ListPlacesOutput{}, err
	}

	output := ListPlacesOutput{
		Places: make([]PlaceOutput, 0, min(limit, len(places))),
		Total:  len(places),
	}
	for i := range places {
		if len(output.Places) == limit {
			break
		}
		output.Places = append(output.Places, placeOutput(places[i]))
	}
	output.Count = len(output.Places)

	return nil, output, nil
}

// handleRefreshDataset handles the refresh_dataset tool invocation.
func (s *Server) handleRefreshDataset(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ RefreshDatasetInput,
) (*mcp.CallToolResult, RefreshDatasetOutput, error) {
	dataset, err := s.ports.Dataset.Get(ctx, true)
	if err != nil {
		return nil, RefreshDatasetOutput{}, err
	}
	return nil, RefreshDatasetOutput{
		RunID:  dataset.RunID,
		Places: len(dataset.Places),
		Errors: len(dataset.Errors),
	}, nil
}

func placeOutput(p domain.Place) PlaceOutput {
	return PlaceOutput{
		PlaceID:       p.Location.PlaceID,
		Name:          p.Location.Name,
		DisplayName:   p.Location.DisplayName,
		City:          p.Location.City,
		URL:           p.Location.URL,
		Latitude:      p.Location.Coordinates.Latitude,
		Longitude:     p.Location.Coordinates.Longitude,
		Types:         p.Types,
		AverageRating: p.AverageRanking(),
		Reviews:       p.Reviews,
	}
}
