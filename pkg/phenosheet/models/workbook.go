// Package models defines the data structures shared across the phenosheet
// pipeline: the in-memory workbook grid, normalized headers, classification
// results, row records with their issues, and the phenopacket output types.
package models

// Workbook is an already-opened tabular document: an ordered sequence of
// sheets, each a row-major grid of raw cell strings.
type Workbook struct {
	// Name is the workbook file name (no path).
	Name string `json:"name"`
	// Sheets preserves the workbook's sheet order.
	Sheets []Sheet `json:"sheets"`
}

// Sheet is a single worksheet. Grid[0] is the header row; Grid[1:] are data
// rows. Rows may be ragged (trailing empty cells omitted by the reader).
type Sheet struct {
	Name string     `json:"name"`
	Grid [][]string `json:"grid"`
}

// HeaderRow returns the header row, or nil for an empty sheet.
func (s Sheet) HeaderRow() []string {
	if len(s.Grid) == 0 {
		return nil
	}
	return s.Grid[0]
}

// DataRows returns the rows below the header.
func (s Sheet) DataRows() [][]string {
	if len(s.Grid) < 2 {
		return nil
	}
	return s.Grid[1:]
}
