package parser

import (
	"strings"

	"github.com/JonMrowczynski/Excel-2-CSV-Exporter/pkg/excel2csv/models"
	"github.com/xuri/excelize/v2"
)

// ExtractPrintAreas extracts print areas from a workbook.
// Returns a map of sheet name to list of print areas.
func ExtractPrintAreas(f *excelize.File) map[string][]models.PrintArea {
	result := make(map[string][]models.PrintArea)

	for _, dn := range f.GetDefinedName() {
		if !strings.EqualFold(dn.Name, "_xlnm.Print_Area") {
			continue
		}
		sheetName, areas := parsePrintAreaReference(dn.RefersTo)
		if sheetName == "" && dn.Scope != "" && !strings.EqualFold(dn.Scope, "Workbook") {
			sheetName = dn.Scope
		}
		if sheetName != "" && len(areas) > 0 {
			result[sheetName] = append(result[sheetName], areas...)
		}
	}

	return result
}

// Crop returns the part of rows that lies inside area. Bounds beyond the
// data are clamped; cells inside the area but missing from a ragged row
// are left out and restored later by Pad or Prune.
func Crop(rows [][]string, area models.PrintArea) [][]string {
	var out [][]string
	for r := area.R1; r <= area.R2 && r <= len(rows); r++ {
		if r < 1 {
			continue
		}
		row := rows[r-1]
		var rec []string
		for c := area.C1; c <= area.C2 && c <= len(row); c++ {
			if c < 1 {
				continue
			}
			rec = append(rec, row[c-1])
		}
		out = append(out, rec)
	}
	return out
}

// parsePrintAreaReference parses a print area reference string.
// Format: 'SheetName'!$A$1:$D$10 or SheetName!$A$1:$D$10, comma separated.
func parsePrintAreaReference(ref string) (string, []models.PrintArea) {
	var areas []models.PrintArea

	var sheetName string
	for _, part := range splitOutsideQuotes(strings.TrimPrefix(ref, "="), ',') {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		rangeStr := part
		if idx := strings.LastIndex(part, "!"); idx >= 0 {
			sheet := strings.Trim(part[:idx], "'")
			sheet = strings.ReplaceAll(sheet, "''", "'")
			if sheetName == "" {
				sheetName = sheet
			}
			rangeStr = part[idx+1:]
		}

		if area := parseRangeToArea(rangeStr); area != nil {
			areas = append(areas, *area)
		}
	}

	return sheetName, areas
}

// splitOutsideQuotes splits s on sep, ignoring separators inside
// single-quoted sheet names. A doubled quote inside a name toggles twice
// and leaves the state unchanged.
func splitOutsideQuotes(s string, sep rune) []string {
	var parts []string
	quoted := false
	start := 0
	for i, r := range s {
		switch {
		case r == '\'':
			quoted = !quoted
		case r == sep && !quoted:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

// parseRangeToArea parses a range such as $A$1:$D$10, $A:$D or $1:$10.
func parseRangeToArea(rangeStr string) *models.PrintArea {
	rangeStr = strings.ReplaceAll(rangeStr, "$", "")

	parts := strings.Split(rangeStr, ":")
	if len(parts) != 2 {
		return nil
	}

	startCol, startRow, err := refToCoordinates(parts[0], true)
	if err != nil {
		return nil
	}
	endCol, endRow, err := refToCoordinates(parts[1], false)
	if err != nil {
		return nil
	}

	return &models.PrintArea{
		R1: startRow,
		C1: startCol,
		R2: endRow,
		C2: endCol,
	}
}

// refToCoordinates accepts a cell name, a bare column or a bare row.
// Bare references expand to the sheet edge on the open side.
func refToCoordinates(ref string, start bool) (col, row int, err error) {
	if col, row, err = excelize.CellNameToCoordinates(ref); err == nil {
		return col, row, nil
	}
	if c, cerr := excelize.ColumnNameToNumber(ref); cerr == nil {
		if start {
			return c, 1, nil
		}
		return c, excelize.TotalRows, nil
	}
	if _, r, rerr := excelize.CellNameToCoordinates("A" + ref); rerr == nil {
		if start {
			return 1, r, nil
		}
		return excelize.MaxColumns, r, nil
	}
	return 0, 0, err
}
