package driven

import (
	"context"

	"github.com/custodia-labs/placemap/internal/core/domain"
)

// PlaceLookup resolves a place identity into coordinates and a display name.
// Calls are fallible; a failure only affects the row that triggered it.
type PlaceLookup interface {
	Lookup(ctx context.Context, id domain.PlaceIdentity) (*domain.LookupResult, error)
}
