package geometry

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"northshore/server/internal/database"
	"northshore/server/internal/listing"
	"northshore/server/internal/models"
)

// MapService renders active listings inside a map viewport as GeoJSON for
// the marketing map page. Listings without coordinates are simply absent.
type MapService struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewMapService(store *database.Store, logger *logrus.Logger) *MapService {
	if logger == nil {
		logger = logrus.New()
	}
	return &MapService{db: store.MLS, logger: logger}
}

// ActiveListings returns a GeoJSON FeatureCollection of active, priced
// listings whose coordinates fall inside the given bound.
func (m *MapService) ActiveListings(bound orb.Bound) (*geojson.FeatureCollection, error) {
	var rows []models.MlsListing
	err := m.db.
		Where("LOWER(status) = ?", "active").
		Where("list_price IS NOT NULL").
		Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Where("latitude BETWEEN ? AND ?", bound.Min.Lat(), bound.Max.Lat()).
		Where("longitude BETWEEN ? AND ?", bound.Min.Lon(), bound.Max.Lon()).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("map viewport query: %w", err)
	}

	collection := geojson.NewFeatureCollection()
	for i := range rows {
		row := &rows[i]
		feature := geojson.NewFeature(orb.Point{*row.Longitude, *row.Latitude})
		feature.Properties["listingKey"] = row.ListingKey
		feature.Properties["slug"] = listing.CanonicalSlug(row.Address, row.ListingKey)
		feature.Properties["address"] = row.Address
		feature.Properties["city"] = row.City
		feature.Properties["propertyType"] = listing.NormalizePropertyType(row.PropertyType)
		if row.ListPrice != nil {
			feature.Properties["listPrice"] = *row.ListPrice
		}
		if row.HeroImageURL != nil {
			feature.Properties["heroImageUrl"] = *row.HeroImageURL
		}
		collection.Append(feature)
	}

	m.logger.WithField("feature_count", len(collection.Features)).Debug("Built map view")
	return collection, nil
}
