package driven

import (
	"context"

	"github.com/custodia-labs/placemap/internal/core/domain"
)

// GridSource reads the structured table out of a spreadsheet document.
// The Google Sheets connector implements it.
type GridSource interface {
	// Table locates the table at the given sheet and table indexes.
	// Returns domain.ErrNotFound if either index is absent or the table has no bounds.
	Table(ctx context.Context, documentID string, sheetIndex, tableIndex int) (*domain.TableLocation, error)

	// Rows fetches the table's data rows, header excluded, in source order.
	Rows(ctx context.Context, documentID string, table domain.TableLocation) ([]domain.RawRow, error)
}
