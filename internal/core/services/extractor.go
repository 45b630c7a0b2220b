package services

import "github.com/custodia-labs/placemap/internal/core/domain"

// ExtractRow zips a raw row with the table's column metadata into a field record.
// Cells are aligned by position. Columns past the end of the row (the Sheets
// API trims trailing empty cells) resolve to empty cells. Columns that are not
// recognised are ignored.
func ExtractRow(row domain.RawRow, columns []domain.Column) domain.FieldRecord {
	var rec domain.FieldRecord
	for i, col := range columns {
		var cell domain.Cell
		if i < len(row.Cells) {
			cell = row.Cells[i]
		}
		f := domain.Field{Cell: cell, Column: col}

		switch col.Name {
		case domain.ColumnType:
			rec.Type = f
		case domain.ColumnCity:
			rec.City = f
		case domain.ColumnMaps:
			rec.Maps = f
		case domain.ColumnUser:
			rec.User = f
		case domain.ColumnRank:
			rec.Rank = f
		case domain.ColumnNotes:
			rec.Notes = f
		}
	}
	return rec
}
