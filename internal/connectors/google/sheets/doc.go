// Package sheets reads a structured table out of a Google Sheets document.
//
// The table's bounds and column metadata come from the spreadsheet's table
// definitions; the rows come from a grid-data fetch of the table range with
// the header row dropped.
package sheets
