package services

import (
	"testing"

	"github.com/masarusaitou/fudousan/models"
	"github.com/masarusaitou/fudousan/utils"
)

func newTestLogger() *utils.Logger { return utils.NewLogger(false) }

func rawRow(name, area, rent, plan, lat, lon string) models.RawRow {
	return models.RawRow{
		models.ColName:      name,
		models.ColAddress:   "東京都" + area + "1-2-3",
		models.ColFloor:     "3階",
		models.ColRent:      rent,
		models.ColArea:      area,
		models.ColFloorPlan: plan,
		models.ColDetailURL: "https://suumo.jp/chintai/" + name,
		models.ColLatitude:  lat,
		models.ColLongitude: lon,
	}
}

func TestNormalizeDropsUnparsableRent(t *testing.T) {
	n := NewNormalizer(newTestLogger())

	rows := []models.RawRow{
		rawRow("A", "港区", "abc", "1K", "35.6", "139.7"),
		rawRow("B", "港区", "7.5", "1K", "35.6", "139.7"),
		rawRow("C", "港区", "", "1K", "35.6", "139.7"),
	}

	got := n.Normalize(rows)
	if len(got) != 1 {
		t.Fatalf("canonical set size: got %d, want 1", len(got))
	}
	if got[0].Name != "B" || got[0].RentFee != 7.5 {
		t.Errorf("surviving listing: got %q rent %.2f, want B rent 7.50", got[0].Name, got[0].RentFee)
	}
}

func TestNormalizeParsesRentVariants(t *testing.T) {
	n := NewNormalizer(newTestLogger())

	tests := []struct {
		raw  string
		want float64
		keep bool
	}{
		{"8.5", 8.5, true},
		{" 12 ", 12, true},
		{"1,200", 1200, true},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"家賃未定", 0, false},
	}

	for _, tt := range tests {
		got := n.Normalize([]models.RawRow{rawRow("X", "港区", tt.raw, "1K", "", "")})
		if tt.keep {
			if len(got) != 1 || got[0].RentFee != tt.want {
				t.Errorf("rent %q: expected kept with %.2f, got %v", tt.raw, tt.want, got)
			}
		} else if len(got) != 0 {
			t.Errorf("rent %q: expected row dropped, got %d listings", tt.raw, len(got))
		}
	}
}

func TestNormalizeKeepsRowsMissingCoordinates(t *testing.T) {
	n := NewNormalizer(newTestLogger())

	got := n.Normalize([]models.RawRow{rawRow("A", "港区", "9.0", "2DK", "", "")})
	if len(got) != 1 {
		t.Fatalf("expected listing without coordinates to survive, got %d", len(got))
	}
	if got[0].RawLatitude != "" || got[0].RawLongitude != "" {
		t.Errorf("raw coordinates should stay blank, got %q/%q", got[0].RawLatitude, got[0].RawLongitude)
	}
}

func TestNormalizePreservesOrder(t *testing.T) {
	n := NewNormalizer(newTestLogger())

	rows := []models.RawRow{
		rawRow("first", "港区", "5", "1K", "", ""),
		rawRow("bad", "港区", "x", "1K", "", ""),
		rawRow("second", "中央区", "6", "1DK", "", ""),
		rawRow("third", "港区", "7", "2DK", "", ""),
	}

	got := n.Normalize(rows)
	want := []string{"first", "second", "third"}
	if len(got) != len(want) {
		t.Fatalf("size: got %d, want %d", len(got), len(want))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("position %d: got %q, want %q", i, got[i].Name, name)
		}
	}
}

func TestNormalizeCollapsesWhitespace(t *testing.T) {
	n := NewNormalizer(newTestLogger())

	row := rawRow("  メゾン  東京  ", "港区", "8", "1K", "", "")
	got := n.Normalize([]models.RawRow{row})
	if len(got) != 1 {
		t.Fatal("expected one listing")
	}
	if got[0].Name != "メゾン 東京" {
		t.Errorf("name: got %q, want %q", got[0].Name, "メゾン 東京")
	}
}
