// Package models defines data structures for workbook export.
package models

// Workbook represents a loaded workbook and its sheets in workbook order.
type Workbook struct {
	// Path is the source file path as resolved.
	Path string `json:"path"`
	// Stem is the file name without extension.
	Stem string `json:"stem"`
	// Rel is the path relative to the input root, without extension.
	// It equals Stem when the input was a single file.
	Rel string `json:"rel"`
	// Sheets lists the sheets in workbook order.
	Sheets []Sheet `json:"sheets"`
}

// SheetTitles returns the sheet titles in workbook order.
func (w *Workbook) SheetTitles() []string {
	titles := make([]string, 0, len(w.Sheets))
	for _, s := range w.Sheets {
		titles = append(titles, s.Title)
	}
	return titles
}
