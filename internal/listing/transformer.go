package listing

import (
	"sort"

	"northshore/server/internal/models"
)

// Transform converts one raw MLS mirror row and its media rows into the
// canonical property shape. It is a pure function: no store or network
// access, and no input combination makes it fail. Missing or malformed
// source fields degrade to nil.
func Transform(raw *models.MlsListing, media []models.MlsMedia) models.CanonicalProperty {
	items := canonicalMedia(media)
	hero := models.PrimaryMedia(items)

	canonical := models.CanonicalProperty{
		ID:     raw.ListingKey,
		Source: models.SourceMLS,
		Slug:   CanonicalSlug(raw.Address, raw.ListingKey),

		Address:    raw.Address,
		City:       raw.City,
		Province:   raw.Province,
		PostalCode: raw.PostalCode,
		Latitude:   raw.Latitude,
		Longitude:  raw.Longitude,

		PropertyType:      NormalizePropertyType(raw.PropertyType),
		TransactionStatus: raw.Status,

		ListPrice:         raw.ListPrice,
		OriginalListPrice: raw.OriginalListPrice,

		BedroomsTotal:  raw.BedroomsTotal,
		BathroomsTotal: raw.BathroomsTotal,
		LivingAreaSqFt: raw.LivingAreaSqFt,
		LotSizeArea:    ParseOptionalFloat(raw.LotSizeArea),
		LotSizeUnits:   raw.LotSizeUnits,
		YearBuilt:      ParseOptionalInt(raw.YearBuilt),

		PublicRemarks:  raw.PublicRemarks,
		Directions:     raw.Directions,
		VirtualTourURL: raw.VirtualTourURL,

		Media: items,

		ListDate:       ParseOptionalDate(raw.ListDate),
		ExpirationDate: ParseOptionalDate(raw.ExpirationDate),
		CloseDate:      ParseOptionalDate(raw.CloseDate),
	}

	if hero != nil {
		canonical.HeroImageURL = &hero.MediaURL
	}

	return canonical
}

// canonicalMedia maps raw media rows into ordered MediaItems. The rows
// usually arrive pre-ordered; the stable sort keeps that true even when the
// caller assembled the slice itself.
func canonicalMedia(media []models.MlsMedia) []models.MediaItem {
	if len(media) == 0 {
		return nil
	}

	items := make([]models.MediaItem, 0, len(media))
	for _, row := range media {
		items = append(items, models.MediaItem{
			MediaURL:      row.MediaURL,
			MediaCategory: row.MediaCategory,
			DisplayOrder:  row.DisplayOrder,
			IsPreferred:   row.IsPreferred,
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].DisplayOrder < items[j].DisplayOrder
	})
	return items
}
