package services

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/masarusaitou/fudousan/models"
	"github.com/masarusaitou/fudousan/utils"
)

// Normalizer converts raw spreadsheet rows into canonical Listings.
// Rent is mandatory: rows whose 家賃 cell does not parse to a finite
// number are dropped. Coordinates are deliberately NOT parsed here —
// geo validity is a per-query concern handled by the filter engine.
type Normalizer struct {
	logger *utils.Logger
}

// NewNormalizer creates a Normalizer with the given logger.
func NewNormalizer(logger *utils.Logger) *Normalizer {
	return &Normalizer{logger: logger}
}

// Normalize processes raw rows in order and returns the canonical set.
func (n *Normalizer) Normalize(rows []models.RawRow) []*models.Listing {
	result := make([]*models.Listing, 0, len(rows))

	for _, r := range rows {
		rent, ok := parseRent(r[models.ColRent])
		if !ok {
			n.logger.Debug("[normalize] Dropping row %q: unparsable rent %q",
				r[models.ColName], r[models.ColRent])
			continue
		}

		result = append(result, &models.Listing{
			Name:         normalizeText(r[models.ColName]),
			Address:      normalizeText(r[models.ColAddress]),
			FloorLevel:   normalizeText(r[models.ColFloor]),
			RentFee:      rent,
			Area:         normalizeText(r[models.ColArea]),
			FloorPlan:    normalizeText(r[models.ColFloorPlan]),
			DetailURL:    strings.TrimSpace(r[models.ColDetailURL]),
			RawLatitude:  strings.TrimSpace(r[models.ColLatitude]),
			RawLongitude: strings.TrimSpace(r[models.ColLongitude]),
		})
	}

	n.logger.Info("[normalize] %d rows → %d listings (dropped %d)",
		len(rows), len(result), len(rows)-len(result))
	return result
}

// parseRent converts a rent cell like "8.5" or "12,3" to 万円. Thousands
// separators are stripped before parsing.
func parseRent(raw string) (float64, bool) {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// normalizeText strips leading/trailing whitespace and collapses internal whitespace.
func normalizeText(s string) string {
	s = strings.TrimSpace(s)
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}
