// Package parser provides sheet-level reading and reshaping utilities.
package parser

import (
	"github.com/xuri/excelize/v2"
)

// ExtractRows reads the cached computed values of a sheet.
// Formula text is never returned. When raw is false the cell number format
// is applied, so dates and percentages render the way Excel shows them.
// Rows come back ragged: excelize drops trailing empty cells.
func ExtractRows(f *excelize.File, sheetName string, raw bool) ([][]string, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: raw})
	if err != nil {
		return nil, err
	}
	return rows, nil
}
