package driving

import (
	"context"

	"github.com/custodia-labs/placemap/internal/core/domain"
)

// Scheduler manages background tasks like dataset refresh.
type Scheduler interface {
	// Start begins running scheduled tasks.
	// Blocks until context is cancelled or an error occurs.
	Start(ctx context.Context) error

	// Stop gracefully stops all running tasks.
	Stop() error

	// RunNow refreshes the dataset immediately and records the result.
	RunNow(ctx context.Context) (*domain.TaskResult, error)
}
