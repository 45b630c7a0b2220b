package services

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/placemap/internal/core/domain"
	"github.com/custodia-labs/placemap/internal/core/ports/driven"
	"github.com/custodia-labs/placemap/internal/core/ports/driving"
	"github.com/custodia-labs/placemap/internal/logger"
)

// Ensure Scheduler implements the interface.
var _ driving.Scheduler = (*Scheduler)(nil)

// historyRetention is the number of results kept per task.
const historyRetention = 100

// Scheduler refreshes the dataset in the background.
// It is a pure core service with no external control API.
type Scheduler struct {
	settings domain.SchedulerSettings
	store    driven.SchedulerStore
	datasets driving.DatasetService
	tick     time.Duration
	now      func() time.Time

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewScheduler creates a scheduler that checks for due tasks every tick.
// A non-positive tick defaults to one minute.
func NewScheduler(
	settings domain.SchedulerSettings,
	store driven.SchedulerStore,
	datasets driving.DatasetService,
	tick time.Duration,
) *Scheduler {
	if tick <= 0 {
		tick = time.Minute
	}
	return &Scheduler{
		settings: settings,
		store:    store,
		datasets: datasets,
		tick:     tick,
		now:      time.Now,
	}
}

// Start begins the scheduler loop. This method blocks until Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil // Already running
	}
	s.running = true
	s.stopCh = make(chan struct{})
	stopCh := s.stopCh
	s.mu.Unlock()

	if err := s.ensureTask(ctx); err != nil {
		logger.Warn("scheduler: failed to initialise tasks: %v", err)
	}

	return s.run(ctx, stopCh)
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	// Wait for running tasks to complete
	s.wg.Wait()

	return nil
}

// RunNow executes the refresh task once in the foreground and records its result.
func (s *Scheduler) RunNow(ctx context.Context) (*domain.TaskResult, error) {
	if err := s.ensureTask(ctx); err != nil {
		return nil, err
	}
	task, err := s.store.GetTask(ctx, domain.TaskIDDatasetRefresh)
	if err != nil {
		return nil, err
	}
	if task == nil {
		task = s.newTask()
	}
	return s.execute(ctx, task), nil
}

// ensureTask creates or updates the refresh task in the store.
func (s *Scheduler) ensureTask(ctx context.Context) error {
	task, err := s.store.GetTask(ctx, domain.TaskIDDatasetRefresh)
	if err != nil {
		return err
	}

	if task == nil {
		task = s.newTask()
	} else {
		if task.Interval != s.settings.RefreshInterval {
			task.Interval = s.settings.RefreshInterval
			task.NextRun = s.now().Add(task.Interval)
		}
		task.Enabled = s.settings.Enabled
	}

	return s.store.SaveTask(ctx, task)
}

func (s *Scheduler) newTask() *domain.ScheduledTask {
	return &domain.ScheduledTask{
		ID:       domain.TaskIDDatasetRefresh,
		Name:     "Dataset Refresh",
		Interval: s.settings.RefreshInterval,
		Enabled:  s.settings.Enabled,
		NextRun:  s.now().Add(s.settings.RefreshInterval),
	}
}

// run is the main scheduler loop.
func (s *Scheduler) run(ctx context.Context, stopCh <-chan struct{}) error {
	// Check for due tasks immediately on startup
	s.checkAndRunDueTasks(ctx)

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stopCh:
			return nil
		case <-ticker.C:
			s.checkAndRunDueTasks(ctx)
		}
	}
}

// checkAndRunDueTasks finds and executes tasks that are due.
func (s *Scheduler) checkAndRunDueTasks(ctx context.Context) {
	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		logger.Warn("scheduler: failed to list tasks: %v", err)
		return
	}

	now := s.now()
	for i := range tasks {
		task := tasks[i]
		if !task.IsDue(now) {
			continue
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.execute(ctx, &task)
		}()
	}
}

// execute runs a single task and records the outcome.
func (s *Scheduler) execute(ctx context.Context, task *domain.ScheduledTask) *domain.TaskResult {
	result := &domain.TaskResult{
		TaskID:    task.ID,
		StartedAt: s.now(),
	}

	var err error
	switch task.ID {
	case domain.TaskIDDatasetRefresh:
		err = s.refresh(ctx, result)
	default:
		logger.Warn("scheduler: unknown task ID: %s", task.ID)
		return result
	}

	result.EndedAt = s.now()
	if err != nil {
		result.Error = err.Error()
		task.LastError = err.Error()
	} else {
		result.Success = true
		task.LastError = ""
		task.LastSuccess = result.EndedAt
	}

	task.LastRun = result.StartedAt
	task.NextRun = result.EndedAt.Add(task.Interval)

	if saveErr := s.store.SaveTask(ctx, task); saveErr != nil {
		logger.Warn("scheduler: failed to save task %s: %v", task.ID, saveErr)
	}
	if recordErr := s.store.RecordResult(ctx, result); recordErr != nil {
		logger.Warn("scheduler: failed to record result for %s: %v", task.ID, recordErr)
	}
	if pruneErr := s.store.PruneHistory(ctx, historyRetention); pruneErr != nil {
		logger.Warn("scheduler: failed to prune history: %v", pruneErr)
	}

	return result
}

// refresh rebuilds the dataset, bypassing the snapshot cache.
func (s *Scheduler) refresh(ctx context.Context, result *domain.TaskResult) error {
	if s.datasets == nil {
		return nil
	}
	ds, err := s.datasets.Get(ctx, true)
	if err != nil {
		return err
	}
	result.ItemsProcessed = len(ds.Places)
	result.ItemsFailed = len(ds.Errors)
	return nil
}
