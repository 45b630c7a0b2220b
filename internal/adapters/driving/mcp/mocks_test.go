package mcp

import (
	"context"

	"github.com/custodia-labs/placemap/internal/core/domain"
)

// mockDatasetService is a mock implementation of driving.DatasetService.
type mockDatasetService struct {
	dataset *domain.Dataset
	err     error

	lastFilter domain.PlaceFilter
	lastForce  bool
	gets       int
}

func (m *mockDatasetService) Get(_ context.Context, force bool) (*domain.Dataset, error) {
	m.gets++
	m.lastForce = force
	return m.dataset, m.err
}

func (m *mockDatasetService) Query(_ context.Context, filter domain.PlaceFilter, force bool) ([]domain.Place, error) {
	m.lastFilter = filter
	m.lastForce = force
	if m.err != nil {
		return nil, m.err
	}
	return m.dataset.Filter(filter), nil
}

func (m *mockDatasetService) Invalidate(_ context.Context, _ ...domain.CacheTier) error {
	return m.err
}

func testDataset() *domain.Dataset {
	return &domain.Dataset{
		Places: []domain.Place{
			{
				Types: []string{"Bar"},
				Location: domain.EnrichedLocation{
					City: "São Paulo", Name: "Bar do Zé", DisplayName: "Bar do Zé",
					PlaceID: "abc123", URL: "https://maps.app.goo.gl/abc123",
					Coordinates: domain.Coordinates{Latitude: -23.55, Longitude: -46.63},
				},
				Reviews: []domain.Review{{User: "ana", Ranking: 4}, {User: "bia", Ranking: 2}},
			},
			{
				Types: []string{"Café"},
				Location: domain.EnrichedLocation{
					City: "Rio de Janeiro", Name: "Café Rio", PlaceID: "def456",
				},
				Reviews: []domain.Review{{User: "bia", Ranking: 5}},
			},
		},
		Errors: []domain.RowError{{Error: "missing place link", Meta: &domain.RowErrorMeta{Row: 3}}},
		Uniques: domain.Uniques{
			Types:  []string{"Bar", "Café"},
			Users:  []string{"ana", "bia"},
			Cities: []string{"Rio de Janeiro", "São Paulo"},
		},
		RunID: "run-1",
	}
}
