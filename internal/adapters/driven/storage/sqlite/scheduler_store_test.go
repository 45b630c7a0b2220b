package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/placemap/internal/core/domain"
)

func TestSchedulerStore_SaveAndGetTask(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	schedulerStore := store.SchedulerStore()

	now := time.Now().UTC()
	task := &domain.ScheduledTask{
		ID:          domain.TaskIDDatasetRefresh,
		Name:        "Dataset Refresh",
		Interval:    15 * time.Minute,
		LastRun:     now.Add(-10 * time.Minute),
		NextRun:     now.Add(5 * time.Minute),
		LastSuccess: now.Add(-10 * time.Minute),
		Enabled:     true,
	}

	require.NoError(t, schedulerStore.SaveTask(ctx, task))

	got, err := schedulerStore.GetTask(ctx, domain.TaskIDDatasetRefresh)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, task.Name, got.Name)
	assert.Equal(t, task.Interval, got.Interval)
	assert.True(t, got.Enabled)
	assert.True(t, task.LastRun.Equal(got.LastRun))
	assert.True(t, task.NextRun.Equal(got.NextRun))
	assert.Empty(t, got.LastError)
}

func TestSchedulerStore_GetTask_NotFound(t *testing.T) {
	store := setupTestStore(t)

	got, err := store.SchedulerStore().GetTask(context.Background(), "nonexistent")

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSchedulerStore_SaveTask_Update(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	s := store.SchedulerStore()
	task := &domain.ScheduledTask{ID: "t", Name: "T", Interval: time.Minute, Enabled: true}
	require.NoError(t, s.SaveTask(ctx, task))

	task.Enabled = false
	task.LastError = "resolve table: not found"
	require.NoError(t, s.SaveTask(ctx, task))

	got, err := s.GetTask(ctx, "t")
	require.NoError(t, err)
	assert.False(t, got.Enabled)
	assert.Equal(t, "resolve table: not found", got.LastError)
}

func TestSchedulerStore_SaveTask_NilTask(t *testing.T) {
	store := setupTestStore(t)

	err := store.SchedulerStore().SaveTask(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSchedulerStore_ListTasks(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	s := store.SchedulerStore()

	tasks, err := s.ListTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	require.NoError(t, s.SaveTask(ctx, &domain.ScheduledTask{ID: "b", Name: "B"}))
	require.NoError(t, s.SaveTask(ctx, &domain.ScheduledTask{ID: "a", Name: "A"}))

	tasks, err = s.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "a", tasks[0].ID)
	assert.True(t, tasks[0].NextRun.IsZero())
}

func TestSchedulerStore_DeleteTaskRemovesHistory(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	s := store.SchedulerStore()
	require.NoError(t, s.SaveTask(ctx, &domain.ScheduledTask{ID: "t", Name: "T"}))
	require.NoError(t, s.RecordResult(ctx, &domain.TaskResult{TaskID: "t", StartedAt: time.Now(), EndedAt: time.Now()}))

	require.NoError(t, s.DeleteTask(ctx, "t"))

	got, err := s.GetTask(ctx, "t")
	require.NoError(t, err)
	assert.Nil(t, got)
	history, err := s.GetTaskHistory(ctx, "t", 10)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestSchedulerStore_RecordResultAndHistory(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	s := store.SchedulerStore()
	base := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		started := base.Add(time.Duration(i) * 500 * time.Millisecond)
		require.NoError(t, s.RecordResult(ctx, &domain.TaskResult{
			TaskID:         domain.TaskIDDatasetRefresh,
			StartedAt:      started,
			EndedAt:        started.Add(100 * time.Millisecond),
			Success:        i%2 == 0,
			Error:          map[bool]string{true: "", false: "boom"}[i%2 == 0],
			ItemsProcessed: 10 + i,
			ItemsFailed:    i,
		}))
	}

	history, err := s.GetTaskHistory(ctx, domain.TaskIDDatasetRefresh, 3)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, 14, history[0].ItemsProcessed)
	assert.Equal(t, 4, history[0].ItemsFailed)
	assert.True(t, history[0].Success)
	assert.Equal(t, "boom", history[1].Error)
	assert.True(t, base.Add(2*time.Second).Equal(history[0].StartedAt))
}

func TestSchedulerStore_RecordResult_NilResult(t *testing.T) {
	store := setupTestStore(t)

	err := store.SchedulerStore().RecordResult(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSchedulerStore_PruneHistory(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	s := store.SchedulerStore()
	base := time.Now().UTC()

	for _, id := range []string{"a", "b"} {
		for i := 0; i < 5; i++ {
			at := base.Add(time.Duration(i) * time.Second)
			require.NoError(t, s.RecordResult(ctx, &domain.TaskResult{TaskID: id, StartedAt: at, EndedAt: at}))
		}
	}

	require.NoError(t, s.PruneHistory(ctx, 2))

	for _, id := range []string{"a", "b"} {
		history, err := s.GetTaskHistory(ctx, id, 10)
		require.NoError(t, err)
		assert.Len(t, history, 2, id)
	}
}

func TestFormatNullableTime(t *testing.T) {
	assert.Nil(t, formatNullableTime(time.Time{}))

	at := time.Date(2025, 1, 2, 3, 4, 5, 6, time.FixedZone("BRT", -3*3600))
	assert.Equal(t, "2025-01-02T06:04:05.000000006Z", formatNullableTime(at))
}

func TestNullString(t *testing.T) {
	assert.Nil(t, nullString(""))
	assert.Equal(t, "x", nullString("x"))
}
