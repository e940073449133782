package services

import (
	"math"
	"strconv"

	"github.com/masarusaitou/fudousan/models"
	"github.com/masarusaitou/fudousan/utils"
)

// FilterResult holds the two result sets of one filter pass. GeoValid
// embeds the same *Listing pointers that appear in Filtered, so it is a
// subset by identity, never a copy.
type FilterResult struct {
	Filtered []*models.Listing
	GeoValid []*models.GeoListing
}

// FilterEngine applies area/price/floor-plan predicates over the
// canonical set. It never mutates the listings it is given.
type FilterEngine struct {
	logger *utils.Logger
}

// NewFilterEngine creates a FilterEngine with the given logger.
func NewFilterEngine(logger *utils.Logger) *FilterEngine {
	return &FilterEngine{logger: logger}
}

// Apply runs one atomic filter pass. Both sets are computed from the same
// canonical snapshot, in canonical order. An empty floor-plan selection
// matches nothing.
func (e *FilterEngine) Apply(listings []*models.Listing, c models.FilterCriteria) FilterResult {
	res := FilterResult{
		Filtered: make([]*models.Listing, 0, len(listings)),
		GeoValid: make([]*models.GeoListing, 0, len(listings)),
	}

	for _, l := range listings {
		if l.Area != c.Area || !c.HasFloorPlan(l.FloorPlan) {
			continue
		}
		if l.RentFee < c.PriceMin || l.RentFee > c.PriceMax {
			continue
		}
		res.Filtered = append(res.Filtered, l)

		lat, okLat := parseCoord(l.RawLatitude)
		lon, okLon := parseCoord(l.RawLongitude)
		if okLat && okLon {
			res.GeoValid = append(res.GeoValid, &models.GeoListing{Listing: l, Lat: lat, Lon: lon})
		}
	}

	e.logger.Debug("[filter] area=%q price=[%.1f,%.1f] plans=%d → %d filtered / %d geo-valid",
		c.Area, c.PriceMin, c.PriceMax, len(c.FloorPlans), len(res.Filtered), len(res.GeoValid))
	return res
}

// parseCoord parses a coordinate cell; blank or non-finite values fail.
func parseCoord(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
