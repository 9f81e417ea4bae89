package models

import "time"

// MlsListing is one row of the syndicated MLS mirror. The table is written
// by an external sync process and treated as read-only here, except for the
// HeroImageURL cache column which is recomputed from media rows.
//
// Numeric fields the search layer filters on (price, beds, baths, area,
// coordinates) arrive typed from the sync; everything else keeps the feed's
// raw text form and can be blank or malformed.
type MlsListing struct {
	ListingKey string `gorm:"primaryKey;type:varchar(64)" json:"listing_key"`
	MlsNumber  string `gorm:"uniqueIndex;type:varchar(32)" json:"mls_number"`
	Status     string `gorm:"index" json:"status"`

	Address          string `json:"address"`
	StreetName       string `json:"street_name"`
	FormattedAddress string `json:"formatted_address"`
	City             string `gorm:"index" json:"city"`
	Province         string `json:"province"`
	PostalCode       string `json:"postal_code"`
	Neighborhood     string `json:"neighborhood"`

	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	PropertyType      string   `json:"property_type"`
	ListPrice         *float64 `gorm:"index" json:"list_price"`
	OriginalListPrice *float64 `json:"original_list_price"`
	BedroomsTotal     *int     `json:"bedrooms_total"`
	BathroomsTotal    *float64 `json:"bathrooms_total"`
	LivingAreaSqFt    *float64 `json:"living_area_sqft"`

	// Raw feed text, parsed defensively by the transformer
	LotSizeArea  string `json:"lot_size_area"`
	LotSizeUnits string `json:"lot_size_units"`
	YearBuilt    string `json:"year_built"`

	PublicRemarks  string `gorm:"type:text" json:"public_remarks"`
	Directions     string `json:"directions"`
	VirtualTourURL string `json:"virtual_tour_url"`
	Zoning         string `json:"zoning"`
	BusinessType   string `json:"business_type"`

	// Feed dates in their raw text form ("2006-01-02" when well formed)
	ListDate       string `gorm:"index" json:"list_date"`
	ExpirationDate string `json:"expiration_date"`
	CloseDate      string `json:"close_date"`

	// HeroImageURL is the only column this system writes back: a best-effort
	// cache of the primary media URL, resynced by the hero cache job.
	HeroImageURL *string `json:"hero_image_url"`

	SyncedAt time.Time `json:"synced_at"`
}

func (MlsListing) TableName() string {
	return "mls_listings"
}

// MlsMedia is a media row delivered alongside a mirror listing.
type MlsMedia struct {
	ID            int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	ListingKey    string `gorm:"type:varchar(64);not null;index" json:"listing_key"`
	MediaURL      string `gorm:"type:text;not null" json:"media_url"`
	MediaCategory string `json:"media_category"`
	DisplayOrder  int    `gorm:"not null;default:0" json:"display_order"`
	IsPreferred   bool   `gorm:"not null;default:false" json:"is_preferred"`
}

func (MlsMedia) TableName() string {
	return "mls_media"
}
