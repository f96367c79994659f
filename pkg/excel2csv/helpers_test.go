package excel2csv

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type cell struct {
	ref   string
	value interface{}
}

type sheetSpec struct {
	name  string
	cells []cell
}

// writeWorkbook saves an xlsx file at path with the given sheets in order.
func writeWorkbook(t *testing.T, path string, sheets ...sheetSpec) {
	t.Helper()
	require.NotEmpty(t, sheets)

	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", sheets[0].name))
	for _, s := range sheets[1:] {
		_, err := f.NewSheet(s.name)
		require.NoError(t, err)
	}
	for _, s := range sheets {
		for _, c := range s.cells {
			require.NoError(t, f.SetCellValue(s.name, c.ref, c.value))
		}
	}

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, f.SaveAs(path))
}

// dataSheet is a one sheet workbook named Data.
func dataSheet(value string) sheetSpec {
	return sheetSpec{name: "Data", cells: []cell{{"A1", "id"}, {"B1", "value"}, {"A2", 1}, {"B2", value}}}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)
	return records
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}
