package media

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"northshore/server/internal/database"
	"northshore/server/internal/models"
)

func newTestStore(t *testing.T) *database.Store {
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
	return store
}

func seedMedia(t *testing.T, store *database.Store, rows ...models.MlsMedia) {
	t.Helper()
	for i := range rows {
		require.NoError(t, store.MLS.Create(&rows[i]).Error)
	}
}

func TestBatchMediaGroupsPerKey(t *testing.T) {
	store := newTestStore(t)
	seedMedia(t, store,
		models.MlsMedia{ListingKey: "key-a", MediaURL: "https://cdn.example.com/a2.jpg", MediaCategory: "Photo", DisplayOrder: 2},
		models.MlsMedia{ListingKey: "key-a", MediaURL: "https://cdn.example.com/a1.jpg", MediaCategory: "Photo", DisplayOrder: 1},
		models.MlsMedia{ListingKey: "key-b", MediaURL: "https://cdn.example.com/b1.jpg", MediaCategory: "Photo", DisplayOrder: 1},
	)

	aggregator := NewAggregator(store, logrus.New())

	grouped, err := aggregator.BatchMedia([]string{"key-a", "key-b", "key-missing"})
	require.NoError(t, err)

	require.Len(t, grouped["key-a"], 2)
	require.Len(t, grouped["key-b"], 1)

	// Source display order survives grouping
	assert.Equal(t, "https://cdn.example.com/a1.jpg", grouped["key-a"][0].MediaURL)
	assert.Equal(t, "https://cdn.example.com/a2.jpg", grouped["key-a"][1].MediaURL)

	// A key with no rows is simply absent, not an error
	_, ok := grouped["key-missing"]
	assert.False(t, ok)
}

func TestBatchMediaDeduplicatesKeys(t *testing.T) {
	store := newTestStore(t)
	seedMedia(t, store,
		models.MlsMedia{ListingKey: "key-a", MediaURL: "https://cdn.example.com/a1.jpg", MediaCategory: "Photo", DisplayOrder: 1},
	)

	aggregator := NewAggregator(store, logrus.New())

	grouped, err := aggregator.BatchMedia([]string{"key-a", "key-a", "", "key-a"})
	require.NoError(t, err)
	assert.Len(t, grouped, 1)
	assert.Len(t, grouped["key-a"], 1)
}

func TestBatchMediaEmptyInput(t *testing.T) {
	aggregator := NewAggregator(newTestStore(t), logrus.New())

	grouped, err := aggregator.BatchMedia(nil)
	require.NoError(t, err)
	assert.Empty(t, grouped)
}

func TestPrimaryImageURL(t *testing.T) {
	preferred := []models.MediaItem{
		{MediaURL: "https://cdn.example.com/1.jpg", DisplayOrder: 1},
		{MediaURL: "https://cdn.example.com/2.jpg", DisplayOrder: 2, IsPreferred: true},
	}
	url := PrimaryImageURL(preferred)
	require.NotNil(t, url)
	assert.Equal(t, "https://cdn.example.com/2.jpg", *url)

	// Without a preferred flag the first ordered item is the display image
	unflagged := []models.MediaItem{
		{MediaURL: "https://cdn.example.com/1.jpg", DisplayOrder: 1},
		{MediaURL: "https://cdn.example.com/2.jpg", DisplayOrder: 2},
	}
	url = PrimaryImageURL(unflagged)
	require.NotNil(t, url)
	assert.Equal(t, "https://cdn.example.com/1.jpg", *url)

	assert.Nil(t, PrimaryImageURL(nil))
}

func TestPhotoCountFiltersCategories(t *testing.T) {
	items := []models.MediaItem{
		{MediaURL: "1.jpg", MediaCategory: "Photo"},
		{MediaURL: "2.jpg", MediaCategory: " IMAGE "},
		{MediaURL: "plan.pdf", MediaCategory: "Floor Plan"},
		{MediaURL: "tour.html", MediaCategory: "Virtual Tour"},
	}
	assert.Equal(t, 2, PhotoCount(items))
	assert.Equal(t, 0, PhotoCount(nil))
}
