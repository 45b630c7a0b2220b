package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/sheets/v4"

	"github.com/custodia-labs/placemap/internal/connectors/google"
	"github.com/custodia-labs/placemap/internal/core/domain"
	"github.com/custodia-labs/placemap/internal/core/ports/driven"
	"github.com/custodia-labs/placemap/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.GridSource = (*Source)(nil)

// Field masks keep responses down to what the mapping reads.
const (
	tableFields = "sheets(properties(sheetId,title,index),tables)"
	gridFields  = "sheets(data(startRow,startColumn,rowData(values(" +
		"formattedValue,effectiveValue/numberValue,hyperlink," +
		"chipRuns/chip/richLinkProperties/uri,textFormatRuns/format/link/uri))))"
)

// Source reads tables from Google Sheets.
type Source struct {
	svc     *sheets.Service
	limiter *google.RateLimiter
}

// NewSource creates a grid source. A nil limiter uses the Sheets defaults.
func NewSource(svc *sheets.Service, limiter *google.RateLimiter) *Source {
	if limiter == nil {
		limiter = google.NewRateLimiter(google.ServiceSheets)
	}
	return &Source{svc: svc, limiter: limiter}
}

// Table locates the table at tableIndex on the sheet at sheetIndex.
// Sheet indexes follow the tab order.
func (s *Source) Table(ctx context.Context, documentID string, sheetIndex, tableIndex int) (*domain.TableLocation, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	doc, err := s.svc.Spreadsheets.Get(documentID).
		Fields(googleapi.Field(tableFields)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, s.wrap(err)
	}

	sheet := sheetAt(doc.Sheets, sheetIndex)
	if sheet == nil {
		return nil, fmt.Errorf("document has %d sheets, no sheet %d: %w",
			len(doc.Sheets), sheetIndex, domain.ErrNotFound)
	}

	table, err := TableFromSheet(sheet, tableIndex)
	if err != nil {
		return nil, err
	}
	logger.Debug("Located table %q (%s) on sheet %q", table.Name, table.A1(), table.SheetTitle)
	return table, nil
}

// Rows fetches the table's data rows.
func (s *Source) Rows(ctx context.Context, documentID string, table domain.TableLocation) ([]domain.RawRow, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	doc, err := s.svc.Spreadsheets.Get(documentID).
		Ranges(table.Range()).
		IncludeGridData(true).
		Fields(googleapi.Field(gridFields)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, s.wrap(err)
	}
	if len(doc.Sheets) == 0 || doc.Sheets[0] == nil {
		return nil, fmt.Errorf("range %s returned no sheet: %w", table.Range(), domain.ErrNotFound)
	}

	return RowsFromGrid(doc.Sheets[0].Data), nil
}

func (s *Source) wrap(err error) error {
	if google.IsRateLimited(err) {
		s.limiter.RecordRateLimitError(google.RetryAfter(err))
	}
	return google.WrapError(err)
}

// sheetAt returns the sheet in tab position index. The API lists sheets in
// tab order, but properties.index is authoritative when present.
func sheetAt(list []*sheets.Sheet, index int) *sheets.Sheet {
	for _, sh := range list {
		if sh != nil && sh.Properties != nil && int(sh.Properties.Index) == index {
			return sh
		}
	}
	if index >= 0 && index < len(list) {
		return list[index]
	}
	return nil
}
