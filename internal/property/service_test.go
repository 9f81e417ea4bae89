package property

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"northshore/server/internal/database"
	"northshore/server/internal/identity"
	"northshore/server/internal/models"
)

func newTestService(t *testing.T) (*Service, *database.Store) {
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

	logger := logrus.New()
	return NewService(store, identity.NewResolver(store, logger), logger), store
}

func floatPtr(v float64) *float64 { return &v }

func TestGetPropertyMlsBySlug(t *testing.T) {
	service, store := newTestService(t)

	price := 750000.0
	sqft := 1450.0
	require.NoError(t, store.MLS.Create(&models.MlsListing{
		ListingKey:     "deadbeefcafe1234",
		MlsNumber:      "E9876543",
		Status:         "Active",
		Address:        "45 King St W",
		City:           "Toronto",
		Province:       "ON",
		PropertyType:   "Condo Apartment",
		ListPrice:      &price,
		LivingAreaSqFt: &sqft,
	}).Error)
	require.NoError(t, store.MLS.Create(&models.MlsMedia{
		ListingKey: "deadbeefcafe1234", MediaURL: "https://cdn.example.com/front.jpg", MediaCategory: "Photo", DisplayOrder: 1,
	}).Error)
	require.NoError(t, store.MLS.Create(&models.MlsMedia{
		ListingKey: "deadbeefcafe1234", MediaURL: "https://cdn.example.com/hero.jpg", MediaCategory: "Photo", DisplayOrder: 2, IsPreferred: true,
	}).Error)

	view, err := service.GetProperty("45-king-st-w-cafe1234")
	require.NoError(t, err)

	assert.Equal(t, models.SourceMLS, view.Source)
	assert.Equal(t, "deadbeefcafe1234", view.ID)
	assert.Equal(t, "45-king-st-w-cafe1234", view.Slug)
	assert.Equal(t, "condo", view.PropertyType)
	require.NotNil(t, view.HeroImageURL)
	assert.Equal(t, "https://cdn.example.com/hero.jpg", *view.HeroImageURL)
	assert.Len(t, view.Media, 2)

	// Legacy aliases mirror the canonical values exactly
	require.NotNil(t, view.HeroImage)
	assert.Equal(t, *view.HeroImageURL, *view.HeroImage)
	require.NotNil(t, view.SquareFeet)
	assert.Equal(t, sqft, *view.SquareFeet)
	require.NotNil(t, view.ListPriceAlt)
	assert.Equal(t, price, *view.ListPriceAlt)
	assert.Equal(t, view.PropertyType, view.PropertyTypeAlt)
}

func TestGetPropertyMlsCachedHeroFallback(t *testing.T) {
	service, store := newTestService(t)

	cached := "https://cdn.example.com/cached.jpg"
	require.NoError(t, store.MLS.Create(&models.MlsListing{
		ListingKey:   "feedface00000001",
		MlsNumber:    "W1111111",
		Status:       "Active",
		Address:      "9 Elm St",
		City:         "Toronto",
		HeroImageURL: &cached,
	}).Error)

	view, err := service.GetProperty("feedface00000001")
	require.NoError(t, err)
	require.NotNil(t, view.HeroImageURL)
	assert.Equal(t, cached, *view.HeroImageURL)
	assert.Empty(t, view.Media)
}

func TestGetPropertyCrm(t *testing.T) {
	service, store := newTestService(t)

	id := uuid.NewString()
	require.NoError(t, store.CRM.Create(&models.CrmProperty{
		ID:           id,
		Address:      "88 Harbour View Cres",
		City:         "Halifax",
		Province:     "NS",
		PropertyType: "Single Family Detached",
		Status:       "Active",
		ListPrice:    floatPtr(425000),
		LotSize:      floatPtr(0.25),
		LotSizeUnits: "acres",
		Images: []models.PropertyImage{
			{DisplayOrder: 2, ImageURL: "https://cdn.example.com/back.jpg"},
			{DisplayOrder: 1, ImageURL: "https://cdn.example.com/front.jpg"},
		},
	}).Error)

	view, err := service.GetProperty(id)
	require.NoError(t, err)

	assert.Equal(t, models.SourceCRM, view.Source)
	assert.Equal(t, "detached", view.PropertyType)
	require.NotNil(t, view.HeroImageURL)
	assert.Equal(t, "https://cdn.example.com/front.jpg", *view.HeroImageURL)
	require.NotNil(t, view.LotSizeFormatted)
	assert.Equal(t, "0.25 acres", *view.LotSizeFormatted)

	require.NotNil(t, view.ListPriceAlt)
	assert.Equal(t, 425000.0, *view.ListPriceAlt)
	assert.Equal(t, view.PropertyType, view.PropertyTypeAlt)
}

func TestGetPropertyMlsByNumberSuffix(t *testing.T) {
	service, store := newTestService(t)

	require.NoError(t, store.MLS.Create(&models.MlsListing{
		ListingKey: "deadbeefcafe1234",
		MlsNumber:  "E9876543",
		Status:     "Active",
		Address:    "45 King St W",
		City:       "Toronto",
	}).Error)

	view, err := service.GetProperty("X1234567-E9876543")
	require.NoError(t, err)
	assert.Equal(t, "deadbeefcafe1234", view.ID)
}

func TestGetPropertyNotFound(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.GetProperty("no-such-property")
	assert.ErrorIs(t, err, database.ErrNotFound)
}
