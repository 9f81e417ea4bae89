package property

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"northshore/server/internal/database"
	"northshore/server/internal/identity"
	"northshore/server/internal/listing"
	"northshore/server/internal/models"
)

// Service is the single entry point for "fetch one property for display".
// It hides which store a record came from: identity resolution happens once
// at this boundary and downstream consumers only see the detail view.
type Service struct {
	store    *database.Store
	resolver *identity.Resolver
	logger   *logrus.Logger
}

func NewService(store *database.Store, resolver *identity.Resolver, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.New()
	}
	return &Service{store: store, resolver: resolver, logger: logger}
}

// GetProperty resolves the raw identifier and loads the record from
// whichever store holds it. Returns database.ErrNotFound when resolution
// exhausts every tier. Partially-null source data degrades field by field;
// it never fails the request.
func (s *Service) GetProperty(rawID string) (*models.PropertyDetailView, error) {
	ref, err := s.resolver.Resolve(rawID)
	if err != nil {
		return nil, err
	}

	switch ref.Source {
	case models.SourceCRM:
		return s.crmDetail(ref.RecordID)
	case models.SourceMLS:
		return s.mlsDetail(ref.RecordID)
	default:
		return nil, fmt.Errorf("unknown record source %q", ref.Source)
	}
}

func (s *Service) crmDetail(id string) (*models.PropertyDetailView, error) {
	row, err := s.store.GetCrmProperty(id)
	if err != nil {
		return nil, err
	}

	items := make([]models.MediaItem, 0, len(row.Images))
	for _, image := range row.Images {
		items = append(items, models.MediaItem{
			MediaURL:      image.ImageURL,
			MediaCategory: "photo",
			DisplayOrder:  image.DisplayOrder,
		})
	}

	canonical := models.CanonicalProperty{
		ID:     row.ID,
		Source: models.SourceCRM,
		Slug:   listing.CanonicalSlug(row.Address, row.ID),

		Address:    row.Address,
		City:       row.City,
		Province:   row.Province,
		PostalCode: row.PostalCode,
		Latitude:   row.Latitude,
		Longitude:  row.Longitude,

		PropertyType:      listing.NormalizePropertyType(row.PropertyType),
		TransactionStatus: row.Status,

		ListPrice: row.ListPrice,

		BedroomsTotal:  row.Bedrooms,
		BathroomsTotal: row.Bathrooms,
		LivingAreaSqFt: row.SquareFeet,
		LotSizeArea:    row.LotSize,
		LotSizeUnits:   row.LotSizeUnits,
		YearBuilt:      row.YearBuilt,

		PublicRemarks:  row.Description,
		Directions:     row.Directions,
		VirtualTourURL: row.VirtualTourURL,

		Media: items,
	}
	if primary := models.PrimaryMedia(items); primary != nil {
		canonical.HeroImageURL = &primary.MediaURL
	}

	view := models.NewPropertyDetailView(canonical)
	view.LotSizeFormatted = formatLotSize(canonical.LotSizeArea, canonical.LotSizeUnits)
	return &view, nil
}

func (s *Service) mlsDetail(listingKey string) (*models.PropertyDetailView, error) {
	row, err := s.store.GetMlsListing(listingKey)
	if err != nil {
		return nil, err
	}

	mediaRows, err := s.store.GetMediaForListings([]string{listingKey})
	if err != nil {
		return nil, err
	}

	canonical := listing.Transform(row, mediaRows)
	if canonical.HeroImageURL == nil && row.HeroImageURL != nil && *row.HeroImageURL != "" {
		canonical.HeroImageURL = row.HeroImageURL
	}

	view := models.NewPropertyDetailView(canonical)
	view.LotSizeFormatted = formatLotSize(canonical.LotSizeArea, canonical.LotSizeUnits)
	view.Zoning = row.Zoning
	view.BusinessType = row.BusinessType
	return &view, nil
}

// formatLotSize renders the lot size as display text, e.g. "0.25 acres".
// Nil in, nil out; a missing unit degrades to the bare number.
func formatLotSize(area *float64, units string) *string {
	if area == nil {
		return nil
	}
	formatted := fmt.Sprintf("%g", *area)
	if units != "" {
		formatted = fmt.Sprintf("%g %s", *area, units)
	}
	return &formatted
}
