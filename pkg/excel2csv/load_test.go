package excel2csv

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Sales.xlsx")
	writeWorkbook(t, path,
		sheetSpec{name: "Q1", cells: []cell{{"A1", "region"}, {"B1", "total"}, {"A2", "north"}, {"B2", 12.5}}},
		sheetSpec{name: "Q2", cells: []cell{{"C3", "late"}}},
	)

	wb, err := LoadWorkbook(Source{Path: path, Rel: "Sales"}, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, path, wb.Path)
	assert.Equal(t, "Sales", wb.Stem)
	assert.Equal(t, []string{"Q1", "Q2"}, wb.SheetTitles())
	assert.Equal(t, [][]string{{"region", "total"}, {"north", "12.5"}}, wb.Sheets[0].Rows)
	assert.Equal(t, 3, wb.Sheets[1].RowCount())
	assert.Equal(t, 3, wb.Sheets[1].ColCount())
	assert.NoError(t, wb.Sheets[0].Err)
}

func TestLoadWorkbookNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Gone.xlsx")

	_, err := LoadWorkbook(Source{Path: path}, DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWorkbookUnreadable)
	assert.ErrorIs(t, err, os.ErrNotExist)

	var wbErr *WorkbookError
	require.True(t, errors.As(err, &wbErr))
	assert.Equal(t, NotFound, wbErr.Kind)
	assert.Equal(t, path, wbErr.Path)
	assert.Contains(t, err.Error(), path)
}

func TestLoadWorkbookUnreadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Broken.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("this is not a zip archive"), 0o644))

	_, err := LoadWorkbook(Source{Path: path}, DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWorkbookUnreadable)

	var wbErr *WorkbookError
	require.True(t, errors.As(err, &wbErr))
	assert.Equal(t, LockedOrUnreadable, wbErr.Kind)
}

func TestLoadWorkbookDefaultsRelToStem(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Book.xlsx")
	writeWorkbook(t, path, dataSheet("x"))

	wb, err := LoadWorkbook(Source{Path: path}, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "Book", wb.Rel)
}
