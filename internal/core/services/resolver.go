package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/placemap/internal/core/domain"
	"github.com/custodia-labs/placemap/internal/core/ports/driven"
)

// ResolveTable locates the source table and checks it declares every
// recognised column. Both failures are fatal for a pipeline run:
// domain.ErrNotFound when the table is absent or unbounded,
// domain.ErrMissingColumn when columns are missing.
func ResolveTable(ctx context.Context, source driven.GridSource, sheet domain.SheetSettings) (*domain.TableLocation, error) {
	table, err := source.Table(ctx, sheet.DocumentID, sheet.SheetIndex, sheet.TableIndex)
	if err != nil {
		return nil, fmt.Errorf("resolve table: %w", err)
	}
	if table == nil || !table.HasBounds() {
		return nil, fmt.Errorf("resolve table: sheet %d table %d has no bounds: %w",
			sheet.SheetIndex, sheet.TableIndex, domain.ErrNotFound)
	}

	if missing := domain.MissingColumns(table.Columns); len(missing) > 0 {
		return nil, fmt.Errorf("resolve table %s: %w: %s",
			table.Range(), domain.ErrMissingColumn, strings.Join(missing, ", "))
	}

	return table, nil
}
