package cli

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/custodia-labs/placemap/internal/core/domain"
)

// mockDatasetService implements driving.DatasetService for testing.
type mockDatasetService struct {
	dataset *domain.Dataset
	err     error

	lastFilter domain.PlaceFilter
	lastForce  bool
}

func (m *mockDatasetService) Get(_ context.Context, force bool) (*domain.Dataset, error) {
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

// mockSettingsService implements driving.SettingsService for testing.
type mockSettingsService struct {
	values map[string]string
	err    error
}

func newMockSettingsService() *mockSettingsService {
	return &mockSettingsService{values: map[string]string{
		"sheet.document_id": "doc-1",
		"google.api_key":    "AIzaSyExampleKey1234",
		"cache.backend":     "sqlite",
		"scheduler.enabled": "false",
	}}
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	s := domain.DefaultAppSettings()
	s.Sheet.DocumentID = m.values["sheet.document_id"]
	s.Google.APIKey = m.values["google.api_key"]
	s.Scheduler.Enabled = m.values["scheduler.enabled"] == "true"
	return &s, m.err
}

func (m *mockSettingsService) Save(_ *domain.AppSettings) error {
	return m.err
}

func (m *mockSettingsService) Set(key, value string) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.values[key]; !ok {
		return domain.ErrInvalidInput
	}
	m.values[key] = value
	return nil
}

func (m *mockSettingsService) Values() (map[string]string, error) {
	out := make(map[string]string, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out, m.err
}

func (m *mockSettingsService) Keys() []string {
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// mockCacheStore implements driven.CacheStore for testing.
type mockCacheStore struct {
	cleared []string
	err     error
}

func (m *mockCacheStore) Get(_ context.Context, _ string) ([]byte, error) {
	return nil, domain.ErrCacheMiss
}

func (m *mockCacheStore) Set(_ context.Context, _ string, _ []byte, _ time.Duration) error {
	return m.err
}

func (m *mockCacheStore) Delete(_ context.Context, _ string) error {
	return m.err
}

func (m *mockCacheStore) Clear(_ context.Context, prefix string) error {
	if m.err != nil {
		return m.err
	}
	m.cleared = append(m.cleared, strings.TrimSuffix(prefix, ":"))
	return nil
}

// mockScheduler implements driving.Scheduler for testing.
type mockScheduler struct {
	result  *domain.TaskResult
	err     error
	started bool
	stopped bool
}

func (m *mockScheduler) Start(ctx context.Context) error {
	m.started = true
	<-ctx.Done()
	return ctx.Err()
}

func (m *mockScheduler) Stop() error {
	m.stopped = true
	return nil
}

func (m *mockScheduler) RunNow(_ context.Context) (*domain.TaskResult, error) {
	return m.result, m.err
}

func testDataset() *domain.Dataset {
	return &domain.Dataset{
		Places: []domain.Place{
			{
				Types: []string{"Bar", "Restaurante"},
				Location: domain.EnrichedLocation{
					City: "São Paulo", Name: "Bar do Zé", PlaceID: "abc123",
					URL: "https://maps.app.goo.gl/abc123",
				},
				Reviews: []domain.Review{
					{User: "ana", Ranking: 4, Notes: "ótimo chopp"},
					{User: "bia", Ranking: 0},
				},
			},
			{
				Types:    []string{"Café"},
				Location: domain.EnrichedLocation{City: "Rio de Janeiro", Name: "Café Rio", PlaceID: "def456"},
				Reviews:  []domain.Review{{User: "bia", Ranking: 5}},
			},
		},
		Errors: []domain.RowError{
			{Error: "missing place link", Meta: &domain.RowErrorMeta{Row: 3, Fields: map[string]string{"Nome": "Sem Link"}}},
			{Error: "enrichment failed: place lookup: not found", Meta: &domain.RowErrorMeta{Row: 5, PlaceID: "zzz"}},
		},
		Uniques: domain.Uniques{
			Types:  []string{"Bar", "Café", "Restaurante"},
			Users:  []string{"ana", "bia"},
			Cities: []string{"Rio de Janeiro", "São Paulo"},
		},
		Vocabulary: []string{"Bar", "Café", "Restaurante"},
		RunID:      "run-1",
	}
}
