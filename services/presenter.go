package services

import (
	"github.com/dustin/go-humanize"

	"github.com/masarusaitou/fudousan/models"
)

// TableLink is a link cell for the table renderer.
type TableLink struct {
	Label string
	Href  string
}

// TableRow is one render-ready table row. Row numbers are 1-based and
// recomputed fresh on every render.
type TableRow struct {
	No         int
	Name       string
	Address    string
	FloorLevel string
	Rent       string
	FloorPlan  string
	Link       TableLink
}

// Marker is one map marker with its popup fields.
type Marker struct {
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Rent      string  `json:"rent"`
	FloorPlan string  `json:"floorPlan"`
	DetailURL string  `json:"detailUrl"`
}

// MapView is the map renderer's input: a centering point and markers.
type MapView struct {
	CenterLat float64
	CenterLon float64
	Zoom      int
	Markers   []Marker
}

// Presenter shapes result sets for the table and map renderers. It does
// no filtering and never mutates listing content.
type Presenter struct {
	fallbackLat float64
	fallbackLon float64
	zoom        int
}

// NewPresenter creates a Presenter. The fallback center is used when the
// geo-valid set is empty and no mean position exists.
func NewPresenter(fallbackLat, fallbackLon float64, zoom int) *Presenter {
	return &Presenter{fallbackLat: fallbackLat, fallbackLon: fallbackLon, zoom: zoom}
}

// BuildTable shapes the active set into table rows, in input order.
func (p *Presenter) BuildTable(listings []*models.Listing) []TableRow {
	rows := make([]TableRow, len(listings))
	for i, l := range listings {
		rows[i] = TableRow{
			No:         i + 1,
			Name:       l.Name,
			Address:    l.Address,
			FloorLevel: l.FloorLevel,
			Rent:       formatRent(l.RentFee),
			FloorPlan:  l.FloorPlan,
			Link:       TableLink{Label: "リンク", Href: l.DetailURL},
		}
	}
	return rows
}

// BuildMap shapes the geo-valid set into a map view centered on the mean
// marker position, or the fallback center when there are no markers.
func (p *Presenter) BuildMap(geo []*models.GeoListing) MapView {
	view := MapView{
		CenterLat: p.fallbackLat,
		CenterLon: p.fallbackLon,
		Zoom:      p.zoom,
		Markers:   make([]Marker, len(geo)),
	}

	var sumLat, sumLon float64
	for i, g := range geo {
		view.Markers[i] = Marker{
			Lat:       g.Lat,
			Lon:       g.Lon,
			Name:      g.Name,
			Address:   g.Address,
			Rent:      formatRent(g.RentFee),
			FloorPlan: g.FloorPlan,
			DetailURL: g.DetailURL,
		}
		sumLat += g.Lat
		sumLon += g.Lon
	}

	if len(geo) > 0 {
		view.CenterLat = sumLat / float64(len(geo))
		view.CenterLon = sumLon / float64(len(geo))
	}
	return view
}

func formatRent(fee float64) string {
	return humanize.CommafWithDigits(fee, 1) + "万円"
}
