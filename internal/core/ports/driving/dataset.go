package driving

import (
	"context"

	"github.com/custodia-labs/placemap/internal/core/domain"
)

// DatasetService serves the terminal artifact to presentation consumers.
type DatasetService interface {
	// Get returns the dataset, from the snapshot cache unless force is set.
	Get(ctx context.Context, force bool) (*domain.Dataset, error)

	// Query returns the places matching the filter.
	Query(ctx context.Context, filter domain.PlaceFilter, force bool) ([]domain.Place, error)

	// Invalidate drops the given cache tiers, or every tier when none is given.
	Invalidate(ctx context.Context, tiers ...domain.CacheTier) error
}

// Pipeline runs the reconciliation pipeline end to end.
type Pipeline interface {
	// Run rebuilds the dataset from the source.
	// Fatal precondition failures return an error and no dataset.
	Run(ctx context.Context) (*domain.Dataset, error)
}
