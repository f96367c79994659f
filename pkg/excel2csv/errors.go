package excel2csv

import (
	"errors"
	"fmt"
)

// ErrSourceNotFound indicates the input path is neither a workbook nor a directory.
var ErrSourceNotFound = errors.New("source not found")

// ErrWorkbookUnreadable indicates a workbook could not be opened.
var ErrWorkbookUnreadable = errors.New("workbook unreadable")

// ErrSheetWriteSkipped indicates the overwrite policy declined an existing target.
var ErrSheetWriteSkipped = errors.New("sheet write skipped")

// ErrOutputRootUnwritable indicates the output directory tree cannot be created.
// It is the only error that aborts a run.
var ErrOutputRootUnwritable = errors.New("output root unwritable")

// ErrInvalidOptions indicates a bad option combination.
var ErrInvalidOptions = errors.New("invalid options")

// FailureKind classifies why a workbook could not be loaded.
type FailureKind string

const (
	// NotFound means the path did not exist at open time.
	NotFound FailureKind = "not found"
	// LockedOrUnreadable means the file exists but could not be opened or parsed.
	LockedOrUnreadable FailureKind = "locked or unreadable"
)

// WorkbookError represents a failure to load one workbook.
type WorkbookError struct {
	Path string
	Kind FailureKind
	Err  error
}

func (e *WorkbookError) Error() string {
	return fmt.Sprintf("workbook %q %s: %v", e.Path, e.Kind, e.Err)
}

func (e *WorkbookError) Unwrap() error {
	return e.Err
}

// Is makes every WorkbookError match ErrWorkbookUnreadable.
func (e *WorkbookError) Is(target error) bool {
	return target == ErrWorkbookUnreadable
}

// NewWorkbookError creates a new WorkbookError.
func NewWorkbookError(path string, kind FailureKind, err error) *WorkbookError {
	return &WorkbookError{
		Path: path,
		Kind: kind,
		Err:  err,
	}
}
