package excel2csv

import (
	"errors"
	"io/fs"
	"os"

	"github.com/JonMrowczynski/Excel-2-CSV-Exporter/pkg/excel2csv/models"
	"github.com/JonMrowczynski/Excel-2-CSV-Exporter/pkg/excel2csv/parser"
	"github.com/xuri/excelize/v2"
)

// LoadWorkbook reads every sheet of the workbook at src.Path.
// Only cached computed values are read, never formula text. The file is
// closed before LoadWorkbook returns. A sheet that cannot be read carries
// its error in Sheet.Err and does not fail the workbook.
func LoadWorkbook(src Source, opts Options) (*models.Workbook, error) {
	if _, err := os.Stat(src.Path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, NewWorkbookError(src.Path, NotFound, err)
		}
		return nil, NewWorkbookError(src.Path, LockedOrUnreadable, err)
	}

	f, err := excelize.OpenFile(src.Path, excelize.Options{Password: opts.Password})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, NewWorkbookError(src.Path, NotFound, err)
		}
		return nil, NewWorkbookError(src.Path, LockedOrUnreadable, err)
	}
	defer f.Close()

	var printAreas map[string][]models.PrintArea
	if opts.PrintArea {
		printAreas = parser.ExtractPrintAreas(f)
	}

	wb := &models.Workbook{
		Path: src.Path,
		Stem: src.Stem(),
		Rel:  src.Rel,
	}
	if wb.Rel == "" {
		wb.Rel = wb.Stem
	}

	for _, sheetName := range f.GetSheetList() {
		sheet := models.Sheet{
			Title:      sheetName,
			PrintAreas: printAreas[sheetName],
		}
		rows, err := parser.ExtractRows(f, sheetName, opts.RawValues)
		if err != nil {
			sheet.Err = err
		} else {
			sheet.Rows = rows
		}
		wb.Sheets = append(wb.Sheets, sheet)
	}

	return wb, nil
}
