package storage

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/masarusaitou/fudousan/models"
)

// WorkbookReader reads raw listing rows from an .xlsx worksheet. The
// first row is the header and defines the column keys.
type WorkbookReader struct {
	path  string
	sheet string
}

// NewWorkbookReader creates a reader for the given file and sheet name.
func NewWorkbookReader(path, sheet string) *WorkbookReader {
	return &WorkbookReader{path: path, sheet: sheet}
}

// Load opens the workbook and returns all data rows in sheet order.
func (r *WorkbookReader) Load() ([]models.RawRow, error) {
	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("workbook: open %q: %w", r.path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(r.sheet)
	if err != nil {
		return nil, fmt.Errorf("workbook: read sheet %q: %w", r.sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("workbook: sheet %q has no header row", r.sheet)
	}

	header := rows[0]
	out := make([]models.RawRow, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		row := make(models.RawRow, len(header))
		for i, key := range header {
			// GetRows trims trailing empty cells; missing cells stay "".
			if i < len(cells) {
				row[key] = cells[i]
			} else {
				row[key] = ""
			}
		}
		out = append(out, row)
	}
	return out, nil
}

// Close is a no-op; the workbook is opened per Load.
func (r *WorkbookReader) Close() error { return nil }
