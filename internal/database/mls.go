package database

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"northshore/server/internal/models"
)

// GetMlsListing loads one mirror row by its listing key.
func (s *Store) GetMlsListing(listingKey string) (*models.MlsListing, error) {
	var listing models.MlsListing
	err := s.MLS.First(&listing, "listing_key = ?", listingKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting listing %s: %w", listingKey, err)
	}
	return &listing, nil
}

// GetMlsListingByNumber loads one mirror row by its MLS number, the
// human-facing code agents quote (e.g. "E9876543").
func (s *Store) GetMlsListingByNumber(mlsNumber string) (*models.MlsListing, error) {
	var listing models.MlsListing
	err := s.MLS.First(&listing, "mls_number = ?", mlsNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting listing by MLS number %s: %w", mlsNumber, err)
	}
	return &listing, nil
}

// ListActiveMlsListings returns all active mirror rows. Used by the slug
// fallback scan; linear over the catalog, acceptable at current sizes.
func (s *Store) ListActiveMlsListings() ([]models.MlsListing, error) {
	var listings []models.MlsListing
	err := s.MLS.Where("LOWER(status) = ?", "active").Find(&listings).Error
	if err != nil {
		return nil, fmt.Errorf("listing active MLS rows: %w", err)
	}
	return listings, nil
}

// GetMediaForListings fetches media rows for a batch of listing keys in a
// single query, ordered per listing by display order.
func (s *Store) GetMediaForListings(listingKeys []string) ([]models.MlsMedia, error) {
	if len(listingKeys) == 0 {
		return nil, nil
	}

	var media []models.MlsMedia
	err := s.MLS.
		Where("listing_key IN ?", listingKeys).
		Order("listing_key ASC, display_order ASC").
		Find(&media).Error
	if err != nil {
		return nil, fmt.Errorf("getting media for %d listings: %w", len(listingKeys), err)
	}
	return media, nil
}

// UpdateHeroImageCache recomputes nothing itself; it writes the given hero
// URL into the mirror row's cache column. This is the single in-scope write
// against the MLS mirror and is a plain single-row update.
func (s *Store) UpdateHeroImageCache(listingKey string, heroURL *string) error {
	result := s.MLS.Model(&models.MlsListing{}).
		Where("listing_key = ?", listingKey).
		Update("hero_image_url", heroURL)
	if result.Error != nil {
		return fmt.Errorf("updating hero image cache for %s: %w", listingKey, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListingsNeedingHeroRefresh returns keys of active listings whose cached
// hero URL is empty. The processor re-derives the URL from media rows; rows
// that genuinely have no media are picked up again on the next scan, which
// keeps the query cheap and the update idempotent.
func (s *Store) ListingsNeedingHeroRefresh(limit int) ([]string, error) {
	var keys []string
	err := s.MLS.Model(&models.MlsListing{}).
		Where("LOWER(status) = ?", "active").
		Where("hero_image_url IS NULL OR hero_image_url = ''").
		Limit(limit).
		Pluck("listing_key", &keys).Error
	if err != nil {
		return nil, fmt.Errorf("scanning for stale hero caches: %w", err)
	}
	return keys, nil
}
