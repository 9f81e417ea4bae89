package models

import "time"

// CrmProperty is an admin-owned listing in the internal CRM store.
// Rows are hand-entered and mutable, unlike the MLS mirror.
type CrmProperty struct {
	ID             string   `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Address        string   `json:"address"`
	City           string   `json:"city"`
	Province       string   `json:"province"`
	PostalCode     string   `json:"postal_code"`
	Neighborhood   string   `json:"neighborhood"`
	PropertyType   string   `json:"property_type"`
	Status         string   `json:"status"`
	ListPrice      *float64 `json:"list_price"`
	Bedrooms       *int     `json:"bedrooms"`
	Bathrooms      *float64 `json:"bathrooms"`
	SquareFeet     *float64 `json:"square_feet"`
	LotSize        *float64 `json:"lot_size"`
	LotSizeUnits   string   `json:"lot_size_units"`
	YearBuilt      *int     `json:"year_built"`
	Description    string   `gorm:"type:text" json:"description"`
	Directions     string   `json:"directions"`
	VirtualTourURL string   `json:"virtual_tour_url"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	Archived       bool     `gorm:"index" json:"archived"`

	Images   []PropertyImage   `gorm:"foreignKey:PropertyID" json:"images"`
	Features []PropertyFeature `gorm:"foreignKey:PropertyID" json:"features"`
	Tags     []PropertyTag     `gorm:"foreignKey:PropertyID" json:"tags"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CrmProperty) TableName() string {
	return "properties"
}

// PropertyImage is an ordered image row attached to a CRM property.
type PropertyImage struct {
	ID           int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	PropertyID   string `gorm:"type:varchar(36);not null;index" json:"property_id"`
	ImageURL     string `gorm:"type:text;not null" json:"image_url"`
	Caption      string `json:"caption"`
	DisplayOrder int    `gorm:"not null;default:0;index" json:"display_order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PropertyImage) TableName() string {
	return "property_images"
}

// PropertyFeature is a free-text feature line shown on the detail page.
type PropertyFeature struct {
	ID         int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	PropertyID string `gorm:"type:varchar(36);not null;index" json:"property_id"`
	Name       string `json:"name"`
}

func (PropertyFeature) TableName() string {
	return "property_features"
}

// PropertyTag is a marketing tag used to group CRM listings on landing pages.
type PropertyTag struct {
	ID         int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	PropertyID string `gorm:"type:varchar(36);not null;index" json:"property_id"`
	Name       string `gorm:"index" json:"name"`
}

func (PropertyTag) TableName() string {
	return "property_tags"
}
