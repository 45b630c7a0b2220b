package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/custodia-labs/placemap/internal/core/domain"
	"github.com/custodia-labs/placemap/internal/core/ports/driven"
	"github.com/custodia-labs/placemap/internal/core/ports/driving"
)

// Ensure mocks implement interfaces
var (
	_ driven.GridSource      = (*mockGridSource)(nil)
	_ driven.PlaceLookup     = (*mockPlaceLookup)(nil)
	_ driven.CacheStore      = (*mockCacheStore)(nil)
	_ driven.SchedulerStore  = (*mockSchedulerStore)(nil)
	_ driving.Pipeline       = (*mockPipeline)(nil)
	_ driving.DatasetService = (*mockDatasetService)(nil)
)

// mockGridSource implements driven.GridSource for testing.
type mockGridSource struct {
	table    *domain.TableLocation
	rows     []domain.RawRow
	tableErr error
	rowsErr  error

	tableCalls atomic.Int32
	rowsCalls  atomic.Int32
}

func (m *mockGridSource) Table(_ context.Context, _ string, _, _ int) (*domain.TableLocation, error) {
	m.tableCalls.Add(1)
	if m.tableErr != nil {
		return nil, m.tableErr
	}
	return m.table, nil
}

func (m *mockGridSource) Rows(_ context.Context, _ string, _ domain.TableLocation) ([]domain.RawRow, error) {
	m.rowsCalls.Add(1)
	if m.rowsErr != nil {
		return nil, m.rowsErr
	}
	return m.rows, nil
}

// mockPlaceLookup implements driven.PlaceLookup for testing.
// Identities in fail return an error; delays hold a lookup back.
type mockPlaceLookup struct {
	mu      sync.Mutex
	results map[domain.PlaceIdentity]*domain.LookupResult
	fail    map[domain.PlaceIdentity]error
	delays  map[domain.PlaceIdentity]time.Duration
	calls   map[domain.PlaceIdentity]int
}

func newMockPlaceLookup() *mockPlaceLookup {
	return &mockPlaceLookup{
		results: make(map[domain.PlaceIdentity]*domain.LookupResult),
		fail:    make(map[domain.PlaceIdentity]error),
		delays:  make(map[domain.PlaceIdentity]time.Duration),
		calls:   make(map[domain.PlaceIdentity]int),
	}
}

func (m *mockPlaceLookup) add(id domain.PlaceIdentity, name string, lat, lng float64) {
	m.results[id] = &domain.LookupResult{
		Coordinates: domain.Coordinates{Latitude: lat, Longitude: lng},
		DisplayName: name,
	}
}

func (m *mockPlaceLookup) Lookup(ctx context.Context, id domain.PlaceIdentity) (*domain.LookupResult, error) {
	m.mu.Lock()
	m.calls[id]++
	delay := m.delays[id]
	err := m.fail[id]
	res, ok := m.results[id]
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New("NOT_FOUND")
	}
	out := *res
	return &out, nil
}

func (m *mockPlaceLookup) callCount(id domain.PlaceIdentity) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[id]
}

// mockCacheStore implements driven.CacheStore for testing. TTLs are recorded, not enforced.
type mockCacheStore struct {
	mu      sync.Mutex
	entries map[string][]byte
	ttls    map[string]time.Duration
	getErr  error
	setErr  error
}

func newMockCacheStore() *mockCacheStore {
	return &mockCacheStore{
		entries: make(map[string][]byte),
		ttls:    make(map[string]time.Duration),
	}
}

func (m *mockCacheStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.entries[key]
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	return v, nil
}

func (m *mockCacheStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.entries[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *mockCacheStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

func (m *mockCacheStore) Clear(_ context.Context, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.entries {
		if strings.HasPrefix(k, prefix) {
			delete(m.entries, k)
		}
	}
	return nil
}

func (m *mockCacheStore) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.entries[key]
	return ok
}

// mockPipeline implements driving.Pipeline for testing.
type mockPipeline struct {
	dataset *domain.Dataset
	err     error
	runs    atomic.Int32
}

func (m *mockPipeline) Run(_ context.Context) (*domain.Dataset, error) {
	m.runs.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	return m.dataset, nil
}

// mockDatasetService implements driving.DatasetService for testing.
type mockDatasetService struct {
	dataset *domain.Dataset
	err     error
	forced  atomic.Int32
}

func (m *mockDatasetService) Get(_ context.Context, force bool) (*domain.Dataset, error) {
	if force {
		m.forced.Add(1)
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.dataset, nil
}

func (m *mockDatasetService) Query(ctx context.Context, filter domain.PlaceFilter, force bool) ([]domain.Place, error) {
	ds, err := m.Get(ctx, force)
	if err != nil {
		return nil, err
	}
	return ds.Filter(filter), nil
}

func (m *mockDatasetService) Invalidate(_ context.Context, _ ...domain.CacheTier) error {
	return nil
}

// mockSchedulerStore implements driven.SchedulerStore for testing.
type mockSchedulerStore struct {
	mu       sync.RWMutex
	tasks    map[string]*domain.ScheduledTask
	results  map[string][]domain.TaskResult
	saveErr  error
	listErr  error
	getErr   error
	pruneErr error
}

func newMockSchedulerStore() *mockSchedulerStore {
	return &mockSchedulerStore{
		tasks:   make(map[string]*domain.ScheduledTask),
		results: make(map[string][]domain.TaskResult),
	}
}

func (m *mockSchedulerStore) GetTask(_ context.Context, taskID string) (*domain.ScheduledTask, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	task, exists := m.tasks[taskID]
	if !exists {
		return nil, nil
	}
	taskCopy := *task
	return &taskCopy, nil
}

func (m *mockSchedulerStore) ListTasks(_ context.Context) ([]domain.ScheduledTask, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	tasks := make([]domain.ScheduledTask, 0, len(m.tasks))
	for _, t := range m.tasks {
		tasks = append(tasks, *t)
	}
	return tasks, nil
}

func (m *mockSchedulerStore) SaveTask(_ context.Context, task *domain.ScheduledTask) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	if task == nil {
		return domain.ErrInvalidInput
	}
	taskCopy := *task
	m.tasks[task.ID] = &taskCopy
	return nil
}

func (m *mockSchedulerStore) DeleteTask(_ context.Context, taskID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tasks, taskID)
	return nil
}

func (m *mockSchedulerStore) RecordResult(_ context.Context, result *domain.TaskResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if result == nil {
		return domain.ErrInvalidInput
	}
	m.results[result.TaskID] = append(m.results[result.TaskID], *result)
	return nil
}

func (m *mockSchedulerStore) GetTaskHistory(_ context.Context, taskID string, limit int) ([]domain.TaskResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	results := m.results[taskID]
	if len(results) > limit {
		results = results[len(results)-limit:]
	}
	return results, nil
}

func (m *mockSchedulerStore) PruneHistory(_ context.Context, _ int) error {
	return m.pruneErr
}

// --- Fixtures ---

func placeLink(id string) string {
	return "https://www.google.com/maps/place/?q=place_id:" + id
}

func fullColumns() []domain.Column {
	return []domain.Column{
		{Index: 0, Name: domain.ColumnType, Type: "DROPDOWN", Validation: []string{"Bar", "Café", "Restaurante"}},
		{Index: 1, Name: domain.ColumnCity, Type: "TEXT"},
		{Index: 2, Name: domain.ColumnMaps, Type: "TEXT"},
		{Index: 3, Name: domain.ColumnUser, Type: "TEXT"},
		{Index: 4, Name: domain.ColumnRank, Type: "DOUBLE"},
		{Index: 5, Name: domain.ColumnNotes, Type: "TEXT"},
	}
}

func fullTable() *domain.TableLocation {
	return &domain.TableLocation{
		SheetTitle: "Lugares",
		Name:       "Places",
		EndColumn:  6,
		EndRow:     10,
		Columns:    fullColumns(),
	}
}

// sourceRow builds a row in fullColumns order. An empty id leaves the link out.
func sourceRow(index int, types, city, name, id, user string, rank float64, notes string) domain.RawRow {
	link := ""
	if id != "" {
		link = placeLink(id)
	}
	r := rank
	return domain.RawRow{
		Index: index,
		Cells: []domain.Cell{
			{Text: types},
			{Text: city},
			{Text: name, Link: link},
			{Text: user},
			{Number: &r},
			{Text: notes},
		},
	}
}
