package excel2csv

import "errors"

// Outcome is the result of exporting one sheet.
type Outcome string

const (
	// Written means the CSV file was written.
	Written Outcome = "written"
	// Skipped means the overwrite policy kept an existing file.
	Skipped Outcome = "skipped"
	// Failed means the sheet could not be read, planned or written.
	Failed Outcome = "failed"
	// Filtered means the sheet was excluded by the sheet patterns.
	Filtered Outcome = "filtered"
)

// SheetResult records what happened to one sheet.
type SheetResult struct {
	Title   string
	Target  string
	Outcome Outcome
	// Rows and Cols describe the written grid.
	Rows int
	Cols int
	// Cells counts the non-empty cells written.
	Cells int
	// Range is the used range of the sheet before cropping and pruning.
	Range string
	Err   error
}

// WorkbookResult records what happened to one workbook.
type WorkbookResult struct {
	Source Source
	// Err is set when the workbook could not be loaded.
	Err    error
	Sheets []SheetResult
}

// Report collects the results of a run in source order.
type Report struct {
	Input      string
	OutputRoot string
	Workbooks  []WorkbookResult
}

// Summary counts outcomes across a report.
type Summary struct {
	Workbooks       int
	WorkbooksFailed int
	SheetsWritten   int
	SheetsSkipped   int
	SheetsFailed    int
	SheetsFiltered  int
}

// Summary returns outcome counts.
func (r *Report) Summary() Summary {
	var s Summary
	for _, wb := range r.Workbooks {
		s.Workbooks++
		if wb.Err != nil {
			s.WorkbooksFailed++
			continue
		}
		for _, sh := range wb.Sheets {
			switch sh.Outcome {
			case Written:
				s.SheetsWritten++
			case Skipped:
				s.SheetsSkipped++
			case Failed:
				s.SheetsFailed++
			case Filtered:
				s.SheetsFiltered++
			}
		}
	}
	return s
}

// Written returns the paths of all written files in source order.
func (r *Report) Written() []string {
	var paths []string
	for _, wb := range r.Workbooks {
		for _, sh := range wb.Sheets {
			if sh.Outcome == Written {
				paths = append(paths, sh.Target)
			}
		}
	}
	return paths
}

// Err joins every workbook and sheet failure, or returns nil.
// Skips are not failures.
func (r *Report) Err() error {
	var errs []error
	for _, wb := range r.Workbooks {
		if wb.Err != nil {
			errs = append(errs, wb.Err)
		}
		for _, sh := range wb.Sheets {
			if sh.Outcome == Failed && sh.Err != nil {
				errs = append(errs, sh.Err)
			}
		}
	}
	return errors.Join(errs...)
}
