package sheets

import (
	"fmt"
	"sort"

	"google.golang.org/api/sheets/v4"

	"github.com/custodia-labs/placemap/internal/core/domain"
)

// TableFromSheet returns the location of the sheet's table at tableIndex.
func TableFromSheet(sheet *sheets.Sheet, tableIndex int) (*domain.TableLocation, error) {
	if sheet == nil || sheet.Properties == nil {
		return nil, fmt.Errorf("sheet has no properties: %w", domain.ErrNotFound)
	}
	if tableIndex < 0 || tableIndex >= len(sheet.Tables) {
		return nil, fmt.Errorf("sheet %q has %d tables, no table %d: %w",
			sheet.Properties.Title, len(sheet.Tables), tableIndex, domain.ErrNotFound)
	}

	t := sheet.Tables[tableIndex]
	if t == nil || t.Range == nil {
		return nil, fmt.Errorf("table %d of sheet %q has no range: %w",
			tableIndex, sheet.Properties.Title, domain.ErrNotFound)
	}

	return &domain.TableLocation{
		SheetID:     sheet.Properties.SheetId,
		SheetTitle:  sheet.Properties.Title,
		TableID:     t.TableId,
		Name:        t.Name,
		StartColumn: int(t.Range.StartColumnIndex),
		StartRow:    int(t.Range.StartRowIndex),
		EndColumn:   int(t.Range.EndColumnIndex),
		EndRow:      int(t.Range.EndRowIndex),
		Columns:     ColumnsFromTable(t),
	}, nil
}

// ColumnsFromTable maps the table's column properties, ordered by column index.
func ColumnsFromTable(t *sheets.Table) []domain.Column {
	columns := make([]domain.Column, 0, len(t.ColumnProperties))
	for _, p := range t.ColumnProperties {
		if p == nil {
			continue
		}
		columns = append(columns, domain.Column{
			Index:      int(p.ColumnIndex),
			Name:       domain.ColumnName(p.ColumnName),
			Type:       p.ColumnType,
			Validation: validationValues(p.DataValidationRule),
		})
	}
	sort.SliceStable(columns, func(i, j int) bool {
		return columns[i].Index < columns[j].Index
	})
	return columns
}

func validationValues(rule *sheets.TableColumnDataValidationRule) []string {
	if rule == nil || rule.Condition == nil {
		return nil
	}
	values := make([]string, 0, len(rule.Condition.Values))
	for _, v := range rule.Condition.Values {
		if v != nil && v.UserEnteredValue != "" {
			values = append(values, v.UserEnteredValue)
		}
	}
	return values
}

// CellFromData maps a grid cell. The link is taken from the first rich-link
// chip, then the cell hyperlink, then the first linked text run.
func CellFromData(cd *sheets.CellData) domain.Cell {
	if cd == nil {
		return domain.Cell{}
	}

	cell := domain.Cell{Text: cd.FormattedValue}
	if cd.EffectiveValue != nil && cd.EffectiveValue.NumberValue != nil {
		n := *cd.EffectiveValue.NumberValue
		cell.Number = &n
	}
	cell.Link = cellLink(cd)
	return cell
}

func cellLink(cd *sheets.CellData) string {
	for _, run := range cd.ChipRuns {
		if run != nil && run.Chip != nil && run.Chip.RichLinkProperties != nil &&
			run.Chip.RichLinkProperties.Uri != "" {
			return run.Chip.RichLinkProperties.Uri
		}
	}
	if cd.Hyperlink != "" {
		return cd.Hyperlink
	}
	for _, run := range cd.TextFormatRuns {
		if run != nil && run.Format != nil && run.Format.Link != nil && run.Format.Link.Uri != "" {
			return run.Format.Link.Uri
		}
	}
	return ""
}

// RowsFromGrid maps the grid of a table range into data rows.
// The first row is the header and is dropped. Rows without any value are
// skipped; the others keep their position as Index.
func RowsFromGrid(data []*sheets.GridData) []domain.RawRow {
	var rows []domain.RawRow
	pos := -1
	for _, grid := range data {
		if grid == nil {
			continue
		}
		for _, rd := range grid.RowData {
			pos++
			if pos == 0 {
				continue
			}
			row := domain.RawRow{Index: pos - 1}
			if rd != nil {
				row.Cells = make([]domain.Cell, 0, len(rd.Values))
				for _, v := range rd.Values {
					row.Cells = append(row.Cells, CellFromData(v))
				}
			}
			if isBlank(row) {
				continue
			}
			rows = append(rows, row)
		}
	}
	return rows
}

func isBlank(row domain.RawRow) bool {
	for _, c := range row.Cells {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}
