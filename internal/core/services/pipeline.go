package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/placemap/internal/core/domain"
	"github.com/custodia-labs/placemap/internal/core/ports/driven"
	"github.com/custodia-labs/placemap/internal/core/ports/driving"
	"github.com/custodia-labs/placemap/internal/logger"
)

// Ensure Pipeline implements the interface.
var _ driving.Pipeline = (*Pipeline)(nil)

// Pipeline runs the reconciliation pipeline: resolve the table, fetch its
// rows, process every row concurrently, then fold the outcomes in row order.
type Pipeline struct {
	source      driven.GridSource
	processor   *RowProcessor
	sheet       domain.SheetSettings
	concurrency int

	now func() time.Time
}

// NewPipeline creates a pipeline. Concurrency below 1 means one row at a time.
func NewPipeline(
	source driven.GridSource,
	processor *RowProcessor,
	sheet domain.SheetSettings,
	concurrency int,
) *Pipeline {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Pipeline{
		source:      source,
		processor:   processor,
		sheet:       sheet,
		concurrency: concurrency,
		now:         time.Now,
	}
}

// Run rebuilds the dataset from the source.
// Table and grid failures abort the run before any row is processed.
// Row failures never abort; they are recorded in the dataset's errors.
func (p *Pipeline) Run(ctx context.Context) (*domain.Dataset, error) {
	runID := uuid.NewString()
	started := p.now()

	logger.Section("Pipeline")
	logger.Infow("pipeline started", "run", runID, "document", p.sheet.DocumentID)

	// 1. Locate the table
	table, err := ResolveTable(ctx, p.source, p.sheet)
	if err != nil {
		return nil, err
	}
	logger.Info("Table %q at %s (%d columns)", table.Name, table.Range(), len(table.Columns))

	// 2. Fetch the grid
	rows, err := p.source.Rows(ctx, p.sheet.DocumentID, *table)
	if err != nil {
		return nil, fmt.Errorf("fetch rows %s: %w", table.Range(), err)
	}
	logger.Info("Fetched %d rows", len(rows))

	// 3. Fan out, join
	outcomes, err := p.processRows(ctx, rows, table.Columns)
	if err != nil {
		return nil, err
	}

	// 4. Ordered fold
	ds := Reduce(outcomes)
	if col, ok := table.Column(domain.ColumnType); ok && len(col.Validation) > 0 {
		ds.Vocabulary = append([]string{}, col.Validation...)
	}
	ds.RunID = runID
	ds.GeneratedAt = p.now().UTC()

	logger.Infow("pipeline finished",
		"run", runID,
		"rows", len(rows),
		"places", len(ds.Places),
		"errors", len(ds.Errors),
		"elapsed", p.now().Sub(started).String())

	return ds, nil
}

// processRows runs the row processor on every row with bounded concurrency.
// Each task writes only its own slot, so outcomes keep source order no matter
// which lookup finishes first.
func (p *Pipeline) processRows(
	ctx context.Context, rows []domain.RawRow, columns []domain.Column,
) ([]domain.RowOutcome, error) {
	outcomes := make([]domain.RowOutcome, len(rows))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i := range rows {
		g.Go(func() error {
			outcomes[i] = p.processor.Process(gctx, rows[i], columns)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// A caller cancellation leaves rows half-enriched; report it instead of
	// returning a dataset full of spurious lookup errors.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("process rows: %w", err)
	}
	return outcomes, nil
}
