package storage

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/masarusaitou/fudousan/models"
)

func writeTestWorkbook(t *testing.T, sheet string, rows [][]string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheet)
	if err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	f.SetActiveSheet(idx)

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row %d: %v", i, err)
		}
	}

	path := filepath.Join(t.TempDir(), "listings.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func TestWorkbookReaderHeaderDefinesKeys(t *testing.T) {
	path := writeTestWorkbook(t, "tech0_01", [][]string{
		{models.ColName, models.ColArea, models.ColRent, models.ColLatitude, models.ColLongitude},
		{"メゾンA", "港区", "8.5", "35.65", "139.73"},
		{"ハイツB", "中央区", "7.0", "", ""},
	})

	rows, err := NewWorkbookReader(path, "tech0_01").Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows: got %d, want 2", len(rows))
	}

	if rows[0][models.ColName] != "メゾンA" || rows[0][models.ColRent] != "8.5" {
		t.Errorf("first row: got %v", rows[0])
	}
	// Trailing empty cells are trimmed by excelize; keys must still exist.
	if v, ok := rows[1][models.ColLongitude]; !ok || v != "" {
		t.Errorf("missing trailing cell should map to empty string, got %q (ok=%v)", v, ok)
	}
}

func TestWorkbookReaderMissingFileIsFatal(t *testing.T) {
	_, err := NewWorkbookReader("/nonexistent/listings.xlsx", "tech0_01").Load()
	if err == nil {
		t.Fatal("expected error for missing workbook")
	}
}

func TestWorkbookReaderUnknownSheet(t *testing.T) {
	path := writeTestWorkbook(t, "tech0_01", [][]string{{models.ColName}})

	_, err := NewWorkbookReader(path, "no_such_sheet").Load()
	if err == nil {
		t.Fatal("expected error for unknown sheet")
	}
}
