package models

import "time"

// Source identifies which store a resolved record lives in.
type Source string

const (
	SourceCRM Source = "crm"
	SourceMLS Source = "mls"
)

// RecordRef is the output of identity resolution: a tagged reference to
// exactly one row in one of the two stores. Downstream code never guesses
// the source from the shape of an id.
type RecordRef struct {
	Source   Source `json:"source"`
	RecordID string `json:"record_id"`
}

// CanonicalProperty is the unified, source-agnostic listing shape consumed
// by detail pages and search results.
type CanonicalProperty struct {
	ID     string `json:"id"`
	Source Source `json:"source"`
	Slug   string `json:"slug"`

	Address    string   `json:"address"`
	City       string   `json:"city"`
	Province   string   `json:"province"`
	PostalCode string   `json:"postalCode"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`

	PropertyType      string `json:"propertyType"`
	TransactionStatus string `json:"transactionStatus"`

	ListPrice         *float64 `json:"listPrice"`
	OriginalListPrice *float64 `json:"originalListPrice"`

	BedroomsTotal  *int     `json:"bedroomsTotal"`
	BathroomsTotal *float64 `json:"bathroomsTotal"`
	LivingAreaSqFt *float64 `json:"livingAreaSqFt"`
	LotSizeArea    *float64 `json:"lotSizeArea"`
	LotSizeUnits   string   `json:"lotSizeUnits"`
	YearBuilt      *int     `json:"yearBuilt"`

	PublicRemarks  string `json:"publicRemarks"`
	Directions     string `json:"directions"`
	VirtualTourURL string `json:"virtualTourUrl"`

	HeroImageURL *string     `json:"heroImageUrl"`
	Media        []MediaItem `json:"media"`

	ListDate       *time.Time `json:"listDate"`
	ExpirationDate *time.Time `json:"expirationDate"`
	CloseDate      *time.Time `json:"closeDate"`
}

// MediaItem is one media row in canonical form, ordered primary-first.
type MediaItem struct {
	MediaURL      string `json:"mediaUrl"`
	MediaCategory string `json:"mediaCategory"`
	DisplayOrder  int    `json:"displayOrder"`
	IsPreferred   bool   `json:"isPreferred"`
}

// PrimaryMedia picks the display image from an ordered media list: an item
// flagged preferred by the source feed wins, otherwise the first item.
// Returns nil for an empty list.
func PrimaryMedia(items []MediaItem) *MediaItem {
	for i := range items {
		if items[i].IsPreferred {
			return &items[i]
		}
	}
	if len(items) > 0 {
		return &items[0]
	}
	return nil
}

// PropertyDetailView is the detail-page shape. It carries the canonical
// fields plus detail-only extras and a set of flat legacy aliases kept for
// older frontend consumers. Aliases are populated from the same values as
// their canonical counterparts and must never diverge.
type PropertyDetailView struct {
	CanonicalProperty

	LotSizeFormatted *string `json:"lotSizeFormatted"`
	Zoning           string  `json:"zoning"`
	BusinessType     string  `json:"businessType"`

	// Legacy aliases
	HeroImage       *string  `json:"hero_image"`
	SquareFeet      *float64 `json:"square_feet"`
	PropertyTypeAlt string   `json:"property_type"`
	ListPriceAlt    *float64 `json:"list_price"`
}

// NewPropertyDetailView builds a detail view from a canonical property,
// filling the legacy aliases from the canonical values.
func NewPropertyDetailView(p CanonicalProperty) PropertyDetailView {
	return PropertyDetailView{
		CanonicalProperty: p,
		HeroImage:         p.HeroImageURL,
		SquareFeet:        p.LivingAreaSqFt,
		PropertyTypeAlt:   p.PropertyType,
		ListPriceAlt:      p.ListPrice,
	}
}
