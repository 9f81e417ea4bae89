package media

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"northshore/server/internal/models"
)

// Store is the media read surface. *database.Store satisfies it.
type Store interface {
	GetMediaForListings(listingKeys []string) ([]models.MlsMedia, error)
}

// photoCategories are the media type tags counted as photos. Floor plans,
// tour links and other attachment categories stay retrievable but are not
// part of the photo count shown on cards.
var photoCategories = map[string]struct{}{
	"photo":      {},
	"image":      {},
	"picture":    {},
	"photograph": {},
}

// Aggregator batches media lookups for a set of listing keys into one
// grouped query, avoiding per-listing N+1 fetches on result pages.
type Aggregator struct {
	store  Store
	logger *logrus.Logger
}

func NewAggregator(store Store, logger *logrus.Logger) *Aggregator {
	if logger == nil {
		logger = logrus.New()
	}
	return &Aggregator{store: store, logger: logger}
}

// BatchMedia fetches all media rows for the given listing keys in a single
// query and groups them per key, preserving the source's display order.
// Keys with no media rows are absent from the map; callers treat a missing
// key as zero media, not an error.
func (a *Aggregator) BatchMedia(listingKeys []string) (map[string][]models.MediaItem, error) {
	unique := dedupe(listingKeys)
	if len(unique) == 0 {
		return map[string][]models.MediaItem{}, nil
	}

	rows, err := a.store.GetMediaForListings(unique)
	if err != nil {
		return nil, fmt.Errorf("batching media for %d listings: %w", len(unique), err)
	}

	grouped := make(map[string][]models.MediaItem, len(unique))
	for _, row := range rows {
		grouped[row.ListingKey] = append(grouped[row.ListingKey], models.MediaItem{
			MediaURL:      row.MediaURL,
			MediaCategory: row.MediaCategory,
			DisplayOrder:  row.DisplayOrder,
			IsPreferred:   row.IsPreferred,
		})
	}
	return grouped, nil
}

// PrimaryImageURL returns the URL of the listing's display image: the
// preferred item if the feed flagged one, else the first item in the
// already-ordered list, else nil.
func PrimaryImageURL(items []models.MediaItem) *string {
	primary := models.PrimaryMedia(items)
	if primary == nil {
		return nil
	}
	return &primary.MediaURL
}

// PhotoCount counts only items whose category tag indicates a photo.
func PhotoCount(items []models.MediaItem) int {
	count := 0
	for _, item := range items {
		tag := strings.ToLower(strings.TrimSpace(item.MediaCategory))
		if _, ok := photoCategories[tag]; ok {
			count++
		}
	}
	return count
}

func dedupe(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	unique := make([]string, 0, len(keys))
	for _, key := range keys {
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, key)
	}
	return unique
}
