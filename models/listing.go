package models

// Column keys used by the spreadsheet, the scraper and the Postgres store.
// The sheet's header row is the source of truth; these match it verbatim.
const (
	ColName      = "名称"
	ColAddress   = "アドレス"
	ColFloor     = "階数"
	ColRent      = "家賃"
	ColArea      = "区"
	ColFloorPlan = "間取り"
	ColDetailURL = "物件詳細URL"
	ColLatitude  = "latitude"
	ColLongitude = "longitude"
)

// RawRow is one source row keyed by header column name. All values are
// unprocessed strings exactly as the source supplied them.
type RawRow map[string]string

// Listing is a normalized, rent-valid record. Coordinates stay raw here:
// they are parsed lazily at filter time so that a listing with a broken
// latitude still shows up in the table view.
type Listing struct {
	Name         string
	Address      string
	FloorLevel   string
	RentFee      float64 // 万円
	Area         string
	FloorPlan    string
	DetailURL    string
	RawLatitude  string
	RawLongitude string
}

// GeoListing is a listing whose coordinates parsed to finite numbers.
// It embeds the same *Listing pointer that appears in the filtered set.
type GeoListing struct {
	*Listing
	Lat float64
	Lon float64
}

// FilterCriteria is one filter invocation's parameters. A fresh value is
// supplied on every search; nothing here is persisted.
type FilterCriteria struct {
	Area       string
	PriceMin   float64
	PriceMax   float64
	FloorPlans []string
}

// HasFloorPlan reports whether fp is in the allowed set.
func (c FilterCriteria) HasFloorPlan(fp string) bool {
	for _, v := range c.FloorPlans {
		if v == fp {
			return true
		}
	}
	return false
}

// CatalogSummary describes the canonical set for building the input
// widgets: area choices, floor-plan choices and the observed rent range.
type CatalogSummary struct {
	Total      int
	Areas      []string
	FloorPlans []string
	MinRent    float64
	MaxRent    float64
}
