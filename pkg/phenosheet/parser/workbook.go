// Package parser reads xlsx workbooks into the in-memory grid the pipeline
// consumes. The core never touches excelize directly; everything downstream
// works on models.Workbook.
package parser

import (
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/phenokit/phenosheet/pkg/phenosheet/models"
)

// ReadWorkbook opens an xlsx file and loads every sheet as a raw string
// grid. Cell values keep their formatted string form; type coercion happens
// later, per field.
func ReadWorkbook(path string) (*models.Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	wb := &models.Workbook{Name: filepath.Base(path)}
	for _, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			// an unreadable sheet becomes an empty grid; the
			// classifier reports it as unknown
			rows = nil
		}
		wb.Sheets = append(wb.Sheets, models.Sheet{
			Name: sheetName,
			Grid: trimTrailingEmptyRows(rows),
		})
	}
	return wb, nil
}

// trimTrailingEmptyRows drops fully empty rows from the bottom of the grid.
// Excel files routinely carry formatting-only rows past the data.
func trimTrailingEmptyRows(rows [][]string) [][]string {
	end := len(rows)
	for end > 0 && rowEmpty(rows[end-1]) {
		end--
	}
	return rows[:end]
}

func rowEmpty(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}
