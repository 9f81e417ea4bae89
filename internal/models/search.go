package models

// Sort orders supported by the search engine.
const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortDateDesc  = "date_desc"
	SortDateAsc   = "date_asc"
)

// SearchFilters is the structured filter object passed into the search
// engine. Every field is optional; a nil/zero field imposes no constraint.
// Callers coerce raw query strings before building this value.
type SearchFilters struct {
	Query        string `json:"query"`
	City         string `json:"city"`
	PropertyType string `json:"property_type"`

	MinPrice     *float64 `json:"min_price"`
	MaxPrice     *float64 `json:"max_price"`
	MinBedrooms  *int     `json:"min_bedrooms"`
	MaxBedrooms  *int     `json:"max_bedrooms"`
	MinBathrooms *float64 `json:"min_bathrooms"`
	MaxBathrooms *float64 `json:"max_bathrooms"`
	MinArea      *float64 `json:"min_area"`
	MaxArea      *float64 `json:"max_area"`

	SortBy   string `json:"sort_by"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

// SearchListing is one search result row: the canonical property plus the
// media summary attached in post-processing.
type SearchListing struct {
	CanonicalProperty
	PhotoCount int `json:"photoCount"`
}

// SearchResult is a single page of matching listings with the
// pre-pagination total for page-count math.
type SearchResult struct {
	Listings []SearchListing `json:"listings"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"pageSize"`

	Suggestions []Suggestion `json:"suggestions,omitempty"`
}

// Suggestion is one typed autosuggest entry with an approximate match count.
type Suggestion struct {
	Type  string `json:"type"`
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Suggestion types produced by the autosuggest scan.
const (
	SuggestionCity         = "city"
	SuggestionStreet       = "street"
	SuggestionPropertyType = "property_type"
	SuggestionNeighborhood = "neighborhood"
)
