package services

import (
	"context"
	"strings"

	"github.com/custodia-labs/placemap/internal/core/domain"
	"github.com/custodia-labs/placemap/internal/logger"
)

// RowProcessor turns one raw row into a tagged outcome.
// It holds no per-row state and is safe to call from many goroutines.
type RowProcessor struct {
	enricher *PlaceEnricher
}

// NewRowProcessor creates a row processor.
func NewRowProcessor(enricher *PlaceEnricher) *RowProcessor {
	return &RowProcessor{enricher: enricher}
}

// Process extracts, identifies and enriches a row.
// Expected failures (missing link, unmatched link, failed lookup) come back
// as a failed outcome, never as an error.
func (p *RowProcessor) Process(ctx context.Context, row domain.RawRow, columns []domain.Column) domain.RowOutcome {
	rec := ExtractRow(row, columns)
	meta := &domain.RowErrorMeta{
		Row:    row.Index,
		Fields: rec.Dump(),
	}

	id, err := ExtractIdentity(rec.Maps.Cell.Link)
	if err != nil {
		logger.Debugw("row rejected", "row", row.Index, "error", err.Error())
		return domain.Failure("", err.Error(), meta)
	}
	meta.PlaceID = id.String()

	res, err := p.enricher.Enrich(ctx, id)
	if err != nil {
		logger.Debugw("row rejected", "row", row.Index, "placeId", id.String(), "error", err.Error())
		return domain.Failure(id, err.Error(), meta)
	}

	name := strings.TrimSpace(rec.Maps.Cell.Text)
	if name == "" {
		name = res.DisplayName
	}

	return domain.Success(id, domain.Place{
		Types: rec.Types(),
		Location: domain.EnrichedLocation{
			City:        strings.TrimSpace(rec.City.Cell.Text),
			Name:        name,
			Coordinates: res.Coordinates,
			DisplayName: res.DisplayName,
			URL:         strings.TrimSpace(rec.Maps.Cell.Link),
			PlaceID:     id.String(),
		},
		Reviews: []domain.Review{{
			User:    strings.TrimSpace(rec.User.Cell.Text),
			Ranking: rec.Ranking(),
			Notes:   rec.Notes.Cell.Text,
		}},
	})
}
