package services

import (
	"github.com/masarusaitou/fudousan/models"
)

// Catalog is the canonical listing set for one session plus the summary
// that drives the input widgets. The listing slice is treated as
// immutable once built.
type Catalog struct {
	Listings []*models.Listing
	Summary  models.CatalogSummary
}

// NewCatalog computes the widget summary over the canonical set: distinct
// areas and floor plans in first-appearance order, and the observed rent
// range used to clamp the price inputs.
func NewCatalog(listings []*models.Listing) *Catalog {
	summary := models.CatalogSummary{Total: len(listings)}

	seenArea := make(map[string]struct{})
	seenPlan := make(map[string]struct{})

	for i, l := range listings {
		if _, ok := seenArea[l.Area]; !ok {
			seenArea[l.Area] = struct{}{}
			summary.Areas = append(summary.Areas, l.Area)
		}
		if _, ok := seenPlan[l.FloorPlan]; !ok {
			seenPlan[l.FloorPlan] = struct{}{}
			summary.FloorPlans = append(summary.FloorPlans, l.FloorPlan)
		}
		if i == 0 || l.RentFee < summary.MinRent {
			summary.MinRent = l.RentFee
		}
		if i == 0 || l.RentFee > summary.MaxRent {
			summary.MaxRent = l.RentFee
		}
	}

	return &Catalog{Listings: listings, Summary: summary}
}

// DefaultCriteria returns the initial draft: first area selected, full
// rent range, every floor plan allowed. Mirrors the widget defaults.
func (c *Catalog) DefaultCriteria() models.FilterCriteria {
	crit := models.FilterCriteria{
		PriceMin:   c.Summary.MinRent,
		PriceMax:   c.Summary.MaxRent,
		FloorPlans: append([]string(nil), c.Summary.FloorPlans...),
	}
	if len(c.Summary.Areas) > 0 {
		crit.Area = c.Summary.Areas[0]
	}
	return crit
}

// ClampPrice forces a bound into the observed rent range.
func (c *Catalog) ClampPrice(v float64) float64 {
	if v < c.Summary.MinRent {
		return c.Summary.MinRent
	}
	if v > c.Summary.MaxRent {
		return c.Summary.MaxRent
	}
	return v
}
