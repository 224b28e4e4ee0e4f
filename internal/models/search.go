package models

type SearchFilters struct {
	Category      Category `form:"category"`
	SubServices   []string `form:"subServices"`
	City          string   `form:"city"`
	State         string   `form:"state"`
	MinRating     float64  `form:"minRating"`
	AvailableOnly bool     `form:"availableOnly"`
	VerifiedOnly  bool     `form:"verifiedOnly"`
}

// SearchResult is one page of approved workers. Total counts the page only
// and HasMore is true whenever the page came back full.
type SearchResult struct {
	Data     []*Worker
	Total    int
	Page     int
	PageSize int
	HasMore  bool
}

// NearbyQuery locates approved, available workers in a city. Origin and
// RadiusKm are optional; when both are set candidates without coordinates
// or farther than RadiusKm are dropped.
type NearbyQuery struct {
	City     string
	State    string
	Category Category
	Limit    int
	Origin   *Coordinates
	RadiusKm float64
}
