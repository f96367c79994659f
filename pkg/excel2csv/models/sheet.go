package models

// Sheet represents a named grid of computed cell text.
// An empty string is the null value.
type Sheet struct {
	// Title is the sheet name, used verbatim as the output file stem.
	Title string `json:"title"`
	// Rows holds cell text row by row. Rows may be ragged.
	Rows [][]string `json:"rows,omitempty"`
	// PrintAreas contains user-defined print areas.
	PrintAreas []PrintArea `json:"print_areas,omitempty"`
	// Err is set when the sheet could not be read. Rows is nil then.
	Err error `json:"-"`
}

// RowCount returns the number of rows.
func (s *Sheet) RowCount() int {
	return len(s.Rows)
}

// ColCount returns the width of the widest row.
func (s *Sheet) ColCount() int {
	n := 0
	for _, row := range s.Rows {
		if len(row) > n {
			n = len(row)
		}
	}
	return n
}
