package domain

import (
	"fmt"
	"strings"
)

// TableLocation is where the structured table lives inside the document.
// Bounds are zero-based; End values are exclusive, as the Sheets API reports them.
type TableLocation struct {
	// SheetID is the numeric id of the sheet holding the table.
	SheetID int64

	// SheetTitle is the sheet's tab name.
	SheetTitle string

	// TableID is the source's identifier for the table.
	TableID string

	// Name is the table's display name.
	Name string

	StartColumn int
	StartRow    int
	EndColumn   int
	EndRow      int

	// Columns is the ordered column metadata of the table.
	Columns []Column
}

// HasBounds returns true if the table has a non-empty range.
func (t TableLocation) HasBounds() bool {
	return t.EndColumn > t.StartColumn && t.EndRow > t.StartRow
}

// A1 returns the table range as "<col><row>:<col><row>", e.g. "A1:F10".
func (t TableLocation) A1() string {
	return fmt.Sprintf("%s%d:%s%d",
		ColumnLetters(t.StartColumn), t.StartRow+1,
		ColumnLetters(t.EndColumn-1), t.EndRow)
}

// Range returns the A1 range qualified with the quoted sheet title.
func (t TableLocation) Range() string {
	if t.SheetTitle == "" {
		return t.A1()
	}
	return "'" + strings.ReplaceAll(t.SheetTitle, "'", "''") + "'!" + t.A1()
}

// Column returns the metadata for a recognised column.
func (t TableLocation) Column(name ColumnName) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// ColumnLetters converts a zero-based column index to base-26,
// 1-indexed letters: 0 -> A, 25 -> Z, 26 -> AA, 701 -> ZZ, 702 -> AAA.
// Negative indexes return an empty string.
func ColumnLetters(index int) string {
	if index < 0 {
		return ""
	}
	var buf []byte
	for n := index + 1; n > 0; n = (n - 1) / 26 {
		buf = append(buf, byte('A'+(n-1)%26))
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}
