package parser

// Prune removes fully empty rows, then fully empty columns, and returns a
// rectangular grid. A cell is empty iff its text is "". Relative order of the
// remaining rows and columns is kept and the input is not modified.
func Prune(rows [][]string) [][]string {
	kept := make([][]string, 0, len(rows))
	for _, row := range rows {
		if !isEmptyRow(row) {
			kept = append(kept, row)
		}
	}

	width := maxWidth(kept)
	cols := make([]int, 0, width)
	for c := 0; c < width; c++ {
		for _, row := range kept {
			if c < len(row) && row[c] != "" {
				cols = append(cols, c)
				break
			}
		}
	}

	out := make([][]string, len(kept))
	for i, row := range kept {
		rec := make([]string, len(cols))
		for j, c := range cols {
			if c < len(row) {
				rec[j] = row[c]
			}
		}
		out[i] = rec
	}
	return out
}

// Pad returns a copy of rows where every row has the width of the widest one.
// Missing cells become "".
func Pad(rows [][]string) [][]string {
	width := maxWidth(rows)
	out := make([][]string, len(rows))
	for i, row := range rows {
		rec := make([]string, width)
		copy(rec, row)
		out[i] = rec
	}
	return out
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}

func maxWidth(rows [][]string) int {
	w := 0
	for _, row := range rows {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}
