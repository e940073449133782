package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/masarusaitou/fudousan/models"
)

var csvHeader = []string{
	models.ColName, models.ColAddress, models.ColFloor, models.ColRent,
	models.ColArea, models.ColFloorPlan, models.ColDetailURL,
	models.ColLatitude, models.ColLongitude,
}

// SnapshotRawRows writes the raw rows as loaded to a CSV file, creating
// intermediate directories as needed. Used as an audit copy of the load.
func SnapshotRawRows(path string, rows []models.RawRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv: create file %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}
	for _, r := range rows {
		record := make([]string, len(csvHeader))
		for i, key := range csvHeader {
			record[i] = r[key]
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// WriteListings streams a result set as CSV, numbering rows from 1. Used
// by the export download.
func WriteListings(w io.Writer, listings []*models.Listing) error {
	cw := csv.NewWriter(w)

	header := []string{"物件番号", models.ColName, models.ColAddress, models.ColFloor,
		models.ColRent, models.ColFloorPlan, models.ColDetailURL}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	for i, l := range listings {
		record := []string{
			strconv.Itoa(i + 1),
			l.Name,
			l.Address,
			l.FloorLevel,
			strconv.FormatFloat(l.RentFee, 'f', -1, 64),
			l.FloorPlan,
			l.DetailURL,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
