package excel2csv

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/JonMrowczynski/Excel-2-CSV-Exporter/pkg/excel2csv/models"
	"github.com/JonMrowczynski/Excel-2-CSV-Exporter/pkg/excel2csv/parser"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Exporter runs the workbook to CSV pipeline.
type Exporter struct {
	opts    Options
	log     *zap.SugaredLogger
	planner *Planner
}

// New creates an Exporter. A nil logger discards output.
func New(opts Options, log *zap.SugaredLogger) *Exporter {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Exporter{
		opts:    opts,
		log:     log,
		planner: NewPlanner(opts.OutputRoot, opts.PreserveTree, opts.decide()),
	}
}

// Export converts every sheet of every workbook named by input.
//
// Per-workbook and per-sheet problems are recorded in the report and never
// stop the run. Export returns an error only for invalid options,
// ErrSourceNotFound (with an empty report), ErrOutputRootUnwritable and
// context cancellation.
func (e *Exporter) Export(ctx context.Context, input string) (*Report, error) {
	report := &Report{Input: input, OutputRoot: e.opts.OutputRoot}

	if err := e.opts.Validate(); err != nil {
		return report, err
	}

	sources, err := resolve(input, e.opts.Recursive, func(dir string, err error) {
		e.log.Warnw("Skipped unreadable directory", "path", dir, "error", err)
	})
	if err != nil {
		e.log.Errorw("No workbooks to convert", "path", input, "error", err)
		return report, err
	}
	if len(sources) == 0 {
		e.log.Warnw("No workbooks found", "path", input)
		return report, nil
	}
	e.log.Infow("Found workbooks", "path", input, "count", len(sources))

	if err := ensureOutputRoot(e.opts.OutputRoot); err != nil {
		e.log.Errorw("Cannot write output", "path", e.opts.OutputRoot, "error", err)
		return report, err
	}

	report.Workbooks = make([]WorkbookResult, len(sources))
	if e.opts.jobs() == 1 {
		for i, src := range sources {
			if err := ctx.Err(); err != nil {
				report.Workbooks = report.Workbooks[:i]
				return report, err
			}
			report.Workbooks[i] = e.exportWorkbook(ctx, src)
		}
	} else {
		// Workbooks sharing an output directory run in source order on one
		// goroutine, so the first of them always claims colliding targets.
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(e.opts.jobs())
		for _, group := range e.groupByDir(sources) {
			g.Go(func() error {
				for n, i := range group {
					if err := gctx.Err(); err != nil {
						for _, j := range group[n:] {
							report.Workbooks[j] = WorkbookResult{Source: sources[j], Err: err}
						}
						return err
					}
					report.Workbooks[i] = e.exportWorkbook(gctx, sources[i])
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return report, err
		}
	}
	if err := ctx.Err(); err != nil {
		return report, err
	}

	s := report.Summary()
	e.log.Infow("Converted workbooks to CSVs",
		"workbooks", s.Workbooks,
		"workbooks_failed", s.WorkbooksFailed,
		"written", s.SheetsWritten,
		"skipped", s.SheetsSkipped,
		"failed", s.SheetsFailed,
		"filtered", s.SheetsFiltered,
	)
	return report, nil
}

// groupByDir returns source indexes grouped by output directory, groups
// ordered by their first member.
func (e *Exporter) groupByDir(sources []Source) [][]int {
	var groups [][]int
	byDir := make(map[string]int)
	for i, src := range sources {
		dir := e.planner.Dir(src.Stem(), src.Rel)
		g, ok := byDir[dir]
		if !ok {
			g = len(groups)
			byDir[dir] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], i)
	}
	return groups
}

// ensureOutputRoot creates root and proves it accepts new files.
func ensureOutputRoot(root string) error {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrOutputRootUnwritable, root, err)
	}
	tmp, err := os.CreateTemp(root, ".excel2csv-check-*")
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrOutputRootUnwritable, root, err)
	}
	name := tmp.Name()
	tmp.Close()
	os.Remove(name)
	return nil
}

func (e *Exporter) exportWorkbook(ctx context.Context, src Source) WorkbookResult {
	result := WorkbookResult{Source: src}

	wb, err := LoadWorkbook(src, e.opts)
	if err != nil {
		var wbErr *WorkbookError
		kind := LockedOrUnreadable
		if errors.As(err, &wbErr) {
			kind = wbErr.Kind
		}
		e.log.Errorw("Could not load workbook", "path", src.Path, "reason", string(kind), "error", err)
		result.Err = err
		return result
	}
	e.log.Debugw("Loaded workbook", "path", wb.Path, "sheets", wb.SheetTitles())

	for i := range wb.Sheets {
		if ctx.Err() != nil {
			break
		}
		result.Sheets = append(result.Sheets, e.exportSheet(wb, &wb.Sheets[i]))
	}
	return result
}

func (e *Exporter) exportSheet(wb *models.Workbook, sheet *models.Sheet) SheetResult {
	res := SheetResult{Title: sheet.Title}
	log := e.log.With("path", wb.Path, "sheet", sheet.Title)

	if !e.opts.ShouldExportSheet(sheet.Title) {
		res.Outcome = Filtered
		log.Debugw("Sheet filtered out")
		return res
	}

	if sheet.Err != nil {
		res.Outcome = Failed
		res.Err = fmt.Errorf("read sheet %q of %q: %w", sheet.Title, wb.Path, sheet.Err)
		log.Errorw("Could not read sheet", "error", sheet.Err)
		return res
	}

	res.Range = parser.UsedRange(sheet.Rows)
	rows := e.normalize(sheet)

	entry, err := e.planner.Plan(wb, sheet.Title)
	res.Target = entry.Target
	if err != nil {
		if errors.Is(err, ErrSheetWriteSkipped) {
			res.Outcome = Skipped
			log.Infow("No data was written for sheet", "target", entry.Target)
			return res
		}
		res.Outcome = Failed
		res.Err = fmt.Errorf("plan sheet %q of %q: %w", sheet.Title, wb.Path, err)
		log.Errorw("Could not plan export", "target", entry.Target, "error", err)
		return res
	}

	if err := WriteCSV(entry.Target, rows, e.opts.CSV); err != nil {
		res.Outcome = Failed
		res.Err = fmt.Errorf("export sheet %q of %q: %w", sheet.Title, wb.Path, err)
		log.Errorw("Could not write CSV", "target", entry.Target, "error", err)
		return res
	}

	res.Outcome = Written
	res.Rows = len(rows)
	if len(rows) > 0 {
		res.Cols = len(rows[0])
	}
	res.Cells = parser.CountNonEmpty(rows)
	log.Infow("Saved converted data",
		"target", entry.Target,
		"rows", res.Rows,
		"cols", res.Cols,
		"cells", res.Cells,
		"range", res.Range,
	)
	return res
}

// normalize crops to the first print area when asked, then prunes or pads
// the grid to a rectangle.
func (e *Exporter) normalize(sheet *models.Sheet) [][]string {
	rows := sheet.Rows
	if e.opts.PrintArea && len(sheet.PrintAreas) > 0 {
		rows = parser.Crop(rows, sheet.PrintAreas[0])
	}
	if e.opts.Prune {
		return parser.Prune(rows)
	}
	return parser.Pad(rows)
}
