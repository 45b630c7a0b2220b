package domain

import (
	"sort"
	"strconv"
	"strings"
)

// ColumnName is one of the recognised column names of the source table.
type ColumnName string

// Recognised columns. The names match the header text in the spreadsheet.
const (
	ColumnType  ColumnName = "Tipo"
	ColumnCity  ColumnName = "Cidade"
	ColumnMaps  ColumnName = "Google Maps"
	ColumnUser  ColumnName = "User"
	ColumnRank  ColumnName = "Rank"
	ColumnNotes ColumnName = "Notas"
)

// RecognisedColumns lists every column a table must declare.
var RecognisedColumns = []ColumnName{
	ColumnType, ColumnCity, ColumnMaps, ColumnUser, ColumnRank, ColumnNotes,
}

// IsRecognised reports whether the name is one of the recognised columns.
func (c ColumnName) IsRecognised() bool {
	for _, rc := range RecognisedColumns {
		if rc == c {
			return true
		}
	}
	return false
}

// Column is the metadata the source declares for one table column.
type Column struct {
	// Index is the zero-based position of the column inside the table.
	Index int

	// Name is the declared column name.
	Name ColumnName

	// Type is the declared column type (e.g. "TEXT", "DOUBLE", "DROPDOWN").
	Type string

	// Validation holds the allowed values when the column has a list rule.
	Validation []string
}

// Cell is a single raw grid cell.
type Cell struct {
	// Number is the effective numeric value, nil when the cell is not a number.
	Number *float64

	// Text is the formatted display string.
	Text string

	// Link is the rich-link URI (or plain hyperlink) attached to the cell.
	Link string
}

// IsEmpty returns true if the cell carries no value at all.
func (c Cell) IsEmpty() bool {
	return c.Number == nil && c.Text == "" && c.Link == ""
}

// RawRow is an ordered sequence of cells aligned by position with the
// table's column metadata.
type RawRow struct {
	// Index is the zero-based data row index (header excluded).
	Index int

	// Cells are the row's cells in column order.
	Cells []Cell
}

// Field pairs a cell with the column it belongs to.
type Field struct {
	Cell   Cell
	Column Column
}

// FieldRecord is a row resolved into the recognised columns.
type FieldRecord struct {
	Type  Field
	City  Field
	Maps  Field
	User  Field
	Rank  Field
	Notes Field
}

// Types splits the type field on ", ". Returns an empty list if absent.
func (r FieldRecord) Types() []string {
	text := strings.TrimSpace(r.Type.Cell.Text)
	if text == "" {
		return []string{}
	}
	parts := strings.Split(text, ", ")
	types := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			types = append(types, p)
		}
	}
	return types
}

// Ranking returns the numeric rank, or 0 when absent or non-numeric.
// Values outside 0..MaxRanking are treated as non-numeric.
func (r FieldRecord) Ranking() float64 {
	var v float64
	switch {
	case r.Rank.Cell.Number != nil:
		v = *r.Rank.Cell.Number
	case r.Rank.Cell.Text != "":
		parsed, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(r.Rank.Cell.Text), ",", "."), 64)
		if err != nil {
			return 0
		}
		v = parsed
	}
	if v < 0 || v > MaxRanking {
		return 0
	}
	return v
}

// Dump returns the raw field values keyed by column name, for diagnostics.
func (r FieldRecord) Dump() map[string]string {
	dump := make(map[string]string, len(RecognisedColumns))
	for _, f := range []Field{r.Type, r.City, r.Maps, r.User, r.Rank, r.Notes} {
		if f.Column.Name == "" {
			continue
		}
		value := f.Cell.Text
		if f.Cell.Link != "" {
			if value != "" {
				value += " "
			}
			value += "<" + f.Cell.Link + ">"
		}
		dump[string(f.Column.Name)] = value
	}
	return dump
}

// MissingColumns returns the recognised columns absent from the given
// metadata, sorted by name.
func MissingColumns(columns []Column) []string {
	present := make(map[ColumnName]bool, len(columns))
	for _, c := range columns {
		present[c.Name] = true
	}
	var missing []string
	for _, rc := range RecognisedColumns {
		if !present[rc] {
			missing = append(missing, string(rc))
		}
	}
	sort.Strings(missing)
	return missing
}
