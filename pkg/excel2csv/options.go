// Package excel2csv exports every worksheet of xlsx workbooks to CSV files.
package excel2csv

import (
	"fmt"
	"regexp"
)

// DefaultOutputRoot is the output directory used when none is given.
const DefaultOutputRoot = "Exports"

// WorkbookExtension is the file extension of workbooks picked up by Resolve.
const WorkbookExtension = ".xlsx"

// Options configures an export run.
type Options struct {
	// OutputRoot is the directory receiving one subdirectory per workbook.
	OutputRoot string
	// Recursive scans directory inputs recursively.
	Recursive bool
	// PreserveTree mirrors the input directory layout under OutputRoot
	// instead of using only the workbook stem.
	PreserveTree bool
	// Prune removes fully empty rows and columns before writing.
	Prune bool
	// PrintArea crops each sheet to its first print area, when it has one.
	PrintArea bool
	// RawValues writes unformatted cell values instead of applying number formats.
	RawValues bool
	// Password opens encrypted workbooks.
	Password string
	// IncludeSheets keeps only sheets matching at least one pattern (all when empty).
	IncludeSheets []*regexp.Regexp
	// ExcludeSheets drops sheets matching any pattern.
	ExcludeSheets []*regexp.Regexp
	// CSV controls the output format.
	CSV CSVOptions
	// Decide settles existing targets. Nil means NeverOverwrite.
	Decide DecideFunc
	// Jobs is the number of workbooks processed at once. Values below 1 mean 1.
	Jobs int
}

// DefaultOptions returns default export options.
func DefaultOptions() Options {
	return Options{
		OutputRoot: DefaultOutputRoot,
		Recursive:  true,
		Prune:      true,
		CSV:        DefaultCSVOptions(),
		Decide:     NeverOverwrite,
		Jobs:       1,
	}
}

// Validate checks option values that cannot be fixed up silently.
func (o Options) Validate() error {
	if o.OutputRoot == "" {
		return fmt.Errorf("%w: output root is empty", ErrInvalidOptions)
	}
	if err := o.CSV.Validate(); err != nil {
		return err
	}
	return nil
}

// ShouldExportSheet reports whether a sheet passes the include/exclude patterns.
func (o Options) ShouldExportSheet(title string) bool {
	for _, re := range o.ExcludeSheets {
		if re.MatchString(title) {
			return false
		}
	}
	if len(o.IncludeSheets) == 0 {
		return true
	}
	for _, re := range o.IncludeSheets {
		if re.MatchString(title) {
			return true
		}
	}
	return false
}

func (o Options) jobs() int {
	if o.Jobs < 1 {
		return 1
	}
	return o.Jobs
}

func (o Options) decide() DecideFunc {
	if o.Decide == nil {
		return NeverOverwrite
	}
	return o.Decide
}
