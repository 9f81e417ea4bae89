package search

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"northshore/server/config"
	"northshore/server/internal/database"
	"northshore/server/internal/media"
	"northshore/server/internal/models"
)

func newTestEngine(t *testing.T) (*Engine, *database.Store) {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	store, err := database.NewStore(
		database.Options{Driver: "sqlite", DSN: fmt.Sprintf("file:%s_crm?mode=memory&cache=shared", name)},
		database.Options{Driver: "sqlite", DSN: fmt.Sprintf("file:%s_mls?mode=memory&cache=shared", name)},
		logrus.New(),
	)
	require.NoError(t, err)
	require.NoError(t, store.RunMigrations())
	t.Cleanup(func() { _ = store.Close() })

	cfg := &config.Config{}
	cfg.Suggest.CacheTTL = 60
	cfg.Suggest.CacheSize = 100

	logger := logrus.New()
	return NewEngine(store, media.NewAggregator(store, logger), cfg, logger), store
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func seedListing(t *testing.T, store *database.Store, row models.MlsListing) {
	t.Helper()
	if row.Status == "" {
		row.Status = "Active"
	}
	if row.City == "" {
		row.City = "Toronto"
	}
	if row.ListPrice == nil {
		row.ListPrice = floatPtr(500000)
	}
	if row.MlsNumber == "" {
		row.MlsNumber = "M-" + row.ListingKey
	}
	require.NoError(t, store.MLS.Create(&row).Error)
}

func TestSearchPriceRange(t *testing.T) {
	engine, store := newTestEngine(t)
	seedListing(t, store, models.MlsListing{ListingKey: "low", Address: "1 Low St", ListPrice: floatPtr(400000)})
	seedListing(t, store, models.MlsListing{ListingKey: "mid", Address: "2 Mid St", ListPrice: floatPtr(750000)})
	seedListing(t, store, models.MlsListing{ListingKey: "high", Address: "3 High St", ListPrice: floatPtr(1200000)})

	result, err := engine.Search(models.SearchFilters{
		MinPrice: floatPtr(500000),
		MaxPrice: floatPtr(1000000),
	})
	require.NoError(t, err)
	require.Len(t, result.Listings, 1)
	assert.Equal(t, "mid", result.Listings[0].ID)
	assert.Equal(t, int64(1), result.Total)
}

func TestSearchNullFieldExcludedByRangeFilter(t *testing.T) {
	engine, store := newTestEngine(t)
	seedListing(t, store, models.MlsListing{ListingKey: "beds", Address: "1 Main St", BedroomsTotal: intPtr(3)})
	seedListing(t, store, models.MlsListing{ListingKey: "nobeds", Address: "2 Main St"})

	result, err := engine.Search(models.SearchFilters{MinBedrooms: intPtr(2)})
	require.NoError(t, err)
	require.Len(t, result.Listings, 1)
	assert.Equal(t, "beds", result.Listings[0].ID)
}

func TestSearchDataQualityFloor(t *testing.T) {
	engine, store := newTestEngine(t)
	seedListing(t, store, models.MlsListing{ListingKey: "ok", Address: "1 Main St"})
	// Sold rows, priceless rows and cityless rows never surface
	seedListing(t, store, models.MlsListing{ListingKey: "sold", Address: "2 Main St", Status: "Sold"})
	require.NoError(t, store.MLS.Create(&models.MlsListing{
		ListingKey: "noprice", MlsNumber: "M-noprice", Address: "3 Main St", Status: "Active", City: "Toronto",
	}).Error)
	require.NoError(t, store.MLS.Create(&models.MlsListing{
		ListingKey: "nocity", MlsNumber: "M-nocity", Address: "4 Main St", Status: "Active", ListPrice: floatPtr(100000),
	}).Error)

	result, err := engine.Search(models.SearchFilters{})
	require.NoError(t, err)
	require.Len(t, result.Listings, 1)
	assert.Equal(t, "ok", result.Listings[0].ID)
	assert.Equal(t, int64(1), result.Total)
}

func TestSearchQueryMatchesAcrossFields(t *testing.T) {
	engine, store := newTestEngine(t)
	seedListing(t, store, models.MlsListing{ListingKey: "addr", Address: "45 Waterfront Dr"})
	seedListing(t, store, models.MlsListing{ListingKey: "remarks", Address: "9 Elm St", PublicRemarks: "Stunning waterfront views"})
	seedListing(t, store, models.MlsListing{ListingKey: "other", Address: "10 Oak St"})

	result, err := engine.Search(models.SearchFilters{Query: "Waterfront"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Total)

	keys := map[string]bool{}
	for _, row := range result.Listings {
		keys[row.ID] = true
	}
	assert.True(t, keys["addr"])
	assert.True(t, keys["remarks"])
}

func TestSearchTypeFilterUsesSynonyms(t *testing.T) {
	engine, store := newTestEngine(t)
	seedListing(t, store, models.MlsListing{ListingKey: "twn", Address: "1 Main St", PropertyType: "Att/Row/Townhouse"})
	seedListing(t, store, models.MlsListing{ListingKey: "det", Address: "2 Main St", PropertyType: "Detached"})
	seedListing(t, store, models.MlsListing{ListingKey: "cnd", Address: "3 Main St", PropertyType: "Condo Apartment"})

	result, err := engine.Search(models.SearchFilters{PropertyType: "townhouse"})
	require.NoError(t, err)
	require.Len(t, result.Listings, 1)
	assert.Equal(t, "twn", result.Listings[0].ID)
	// The returned row normalizes back to the filtered canonical type
	assert.Equal(t, "townhouse", result.Listings[0].PropertyType)
}

func TestSearchPagination(t *testing.T) {
	engine, store := newTestEngine(t)
	for i := 0; i < 25; i++ {
		seedListing(t, store, models.MlsListing{
			ListingKey: fmt.Sprintf("key-%02d", i),
			Address:    fmt.Sprintf("%d Main St", i+1),
			ListDate:   fmt.Sprintf("2024-06-%02d", i%28+1),
		})
	}

	result, err := engine.Search(models.SearchFilters{Page: 2, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, result.Listings, 10)
	assert.Equal(t, int64(25), result.Total)
	assert.Equal(t, 2, result.Page)
	assert.Equal(t, 10, result.PageSize)

	last, err := engine.Search(models.SearchFilters{Page: 3, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, last.Listings, 5)
}

func TestSearchSortByPrice(t *testing.T) {
	engine, store := newTestEngine(t)
	seedListing(t, store, models.MlsListing{ListingKey: "b", Address: "1 Main St", ListPrice: floatPtr(900000)})
	seedListing(t, store, models.MlsListing{ListingKey: "a", Address: "2 Main St", ListPrice: floatPtr(300000)})
	seedListing(t, store, models.MlsListing{ListingKey: "c", Address: "3 Main St", ListPrice: floatPtr(600000)})

	result, err := engine.Search(models.SearchFilters{SortBy: models.SortPriceAsc})
	require.NoError(t, err)
	require.Len(t, result.Listings, 3)
	assert.Equal(t, "a", result.Listings[0].ID)
	assert.Equal(t, "c", result.Listings[1].ID)
	assert.Equal(t, "b", result.Listings[2].ID)
}

func TestSearchDefaultSortNewestFirst(t *testing.T) {
	engine, store := newTestEngine(t)
	seedListing(t, store, models.MlsListing{ListingKey: "old", Address: "1 Main St", ListDate: "2024-01-05"})
	seedListing(t, store, models.MlsListing{ListingKey: "new", Address: "2 Main St", ListDate: "2024-06-10"})

	result, err := engine.Search(models.SearchFilters{})
	require.NoError(t, err)
	require.Len(t, result.Listings, 2)
	assert.Equal(t, "new", result.Listings[0].ID)
}

func TestSearchAttachesMedia(t *testing.T) {
	engine, store := newTestEngine(t)
	seedListing(t, store, models.MlsListing{ListingKey: "key-a", Address: "1 Main St"})
	require.NoError(t, store.MLS.Create(&models.MlsMedia{
		ListingKey: "key-a", MediaURL: "https://cdn.example.com/1.jpg", MediaCategory: "Photo", DisplayOrder: 1,
	}).Error)
	require.NoError(t, store.MLS.Create(&models.MlsMedia{
		ListingKey: "key-a", MediaURL: "https://cdn.example.com/2.jpg", MediaCategory: "Photo", DisplayOrder: 2, IsPreferred: true,
	}).Error)

	result, err := engine.Search(models.SearchFilters{})
	require.NoError(t, err)
	require.Len(t, result.Listings, 1)

	row := result.Listings[0]
	require.NotNil(t, row.HeroImageURL)
	assert.Equal(t, "https://cdn.example.com/2.jpg", *row.HeroImageURL)
	assert.Equal(t, 2, row.PhotoCount)
	assert.Len(t, row.Media, 2)
}

func TestSearchFallsBackToCachedHero(t *testing.T) {
	engine, store := newTestEngine(t)
	cached := "https://cdn.example.com/cached.jpg"
	seedListing(t, store, models.MlsListing{ListingKey: "key-a", Address: "1 Main St", HeroImageURL: &cached})

	result, err := engine.Search(models.SearchFilters{})
	require.NoError(t, err)
	require.Len(t, result.Listings, 1)
	require.NotNil(t, result.Listings[0].HeroImageURL)
	assert.Equal(t, cached, *result.Listings[0].HeroImageURL)
	assert.Equal(t, 0, result.Listings[0].PhotoCount)
}

func TestFeaturedRequiresHeroImage(t *testing.T) {
	engine, store := newTestEngine(t)
	hero := "https://cdn.example.com/hero.jpg"
	seedListing(t, store, models.MlsListing{ListingKey: "with", Address: "1 Main St", HeroImageURL: &hero, ListDate: "2024-06-10"})
	seedListing(t, store, models.MlsListing{ListingKey: "without", Address: "2 Main St", ListDate: "2024-06-11"})

	rows, err := engine.Featured(6)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "with", rows[0].ID)
}

func TestSuggestMinimumLength(t *testing.T) {
	engine, _ := newTestEngine(t)

	suggestions, err := engine.Suggest("t")
	require.NoError(t, err)
	assert.Nil(t, suggestions)

	suggestions, err = engine.Suggest("  ")
	require.NoError(t, err)
	assert.Nil(t, suggestions)
}

func TestSuggestCountsActiveOnly(t *testing.T) {
	engine, store := newTestEngine(t)
	seedListing(t, store, models.MlsListing{ListingKey: "a", Address: "1 Main St", City: "Toronto"})
	seedListing(t, store, models.MlsListing{ListingKey: "b", Address: "2 Main St", City: "Toronto"})
	seedListing(t, store, models.MlsListing{ListingKey: "c", Address: "3 Main St", City: "Toronto", Status: "Sold"})

	suggestions, err := engine.Suggest("tor")
	require.NoError(t, err)
	require.NotEmpty(t, suggestions)

	var city *models.Suggestion
	for i := range suggestions {
		if suggestions[i].Type == models.SuggestionCity && suggestions[i].Value == "Toronto" {
			city = &suggestions[i]
		}
	}
	require.NotNil(t, city)
	assert.Equal(t, 2, city.Count)
}

func TestSuggestStreetAndType(t *testing.T) {
	engine, store := newTestEngine(t)
	seedListing(t, store, models.MlsListing{
		ListingKey: "a", Address: "45 King St W", StreetName: "King St W", City: "Toronto", PropertyType: "Condo Apartment",
	})

	suggestions, err := engine.Suggest("king")
	require.NoError(t, err)

	found := false
	for _, s := range suggestions {
		if s.Type == models.SuggestionStreet && s.Value == "King St W" {
			found = true
		}
	}
	assert.True(t, found)

	suggestions, err = engine.Suggest("condo")
	require.NoError(t, err)
	found = false
	for _, s := range suggestions {
		if s.Type == models.SuggestionPropertyType && s.Value == "Condo Apartment" {
			found = true
		}
	}
	assert.True(t, found)
}
