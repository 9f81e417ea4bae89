package search

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/karlseguin/ccache/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"northshore/server/config"
	"northshore/server/internal/database"
	"northshore/server/internal/listing"
	"northshore/server/internal/media"
	"northshore/server/internal/models"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Engine turns a SearchFilters value into a bounded, ordered, paginated
// result page over the MLS mirror, with a best-effort autosuggest on the
// side. It knows nothing about media storage beyond the aggregator's
// contract.
type Engine struct {
	db     *gorm.DB
	media  *media.Aggregator
	logger *logrus.Logger

	suggestCache *ccache.Cache[[]models.Suggestion]
	suggestTTL   time.Duration
}

func NewEngine(store *database.Store, aggregator *media.Aggregator, cfg *config.Config, logger *logrus.Logger) *Engine {
	if logger == nil {
		logger = logrus.New()
	}
	return &Engine{
		db:           store.MLS,
		media:        aggregator,
		logger:       logger,
		suggestCache: ccache.New(ccache.Configure[[]models.Suggestion]().MaxSize(cfg.Suggest.CacheSize)),
		suggestTTL:   time.Duration(cfg.Suggest.CacheTTL) * time.Second,
	}
}

// Search runs the page query and the total-count query concurrently, then
// batch-attaches media summaries to the page rows.
func (e *Engine) Search(filters models.SearchFilters) (*models.SearchResult, error) {
	page := filters.Page
	if page < 1 {
		page = 1
	}
	pageSize := filters.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	var (
		rows     []models.MlsListing
		total    int64
		pageErr  error
		countErr error
		wg       sync.WaitGroup
	)

	// Independent queries with no data dependency; issue both and await
	// jointly. Each goroutine builds its own predicate chain because gorm
	// builders are not safe to share.
	wg.Add(2)
	go func() {
		defer wg.Done()
		pageErr = e.applyFilters(e.db.Model(&models.MlsListing{}), filters).
			Order(orderClause(filters.SortBy)).
			Offset((page - 1) * pageSize).
			Limit(pageSize).
			Find(&rows).Error
	}()
	go func() {
		defer wg.Done()
		countErr = e.applyFilters(e.db.Model(&models.MlsListing{}), filters).
			Count(&total).Error
	}()
	wg.Wait()

	if pageErr != nil {
		return nil, fmt.Errorf("search page query: %w", pageErr)
	}
	if countErr != nil {
		return nil, fmt.Errorf("search count query: %w", countErr)
	}

	listings, err := e.attachMedia(rows)
	if err != nil {
		return nil, err
	}

	return &models.SearchResult{
		Listings: listings,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Featured returns the newest active listings that have a display image.
// Listings without a hero image are excluded here but remain valid for
// direct lookup.
func (e *Engine) Featured(limit int) ([]models.SearchListing, error) {
	if limit <= 0 {
		limit = 6
	}

	var rows []models.MlsListing
	err := e.baseQuery().
		Where("hero_image_url IS NOT NULL AND hero_image_url <> ''").
		Order("list_date DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("featured listings query: %w", err)
	}

	return e.attachMedia(rows)
}

// baseQuery applies the data-quality floor: only active rows with a price
// and a city are ever eligible, regardless of other filters.
func (e *Engine) baseQuery() *gorm.DB {
	return e.db.Model(&models.MlsListing{}).
		Where("LOWER(status) = ?", "active").
		Where("list_price IS NOT NULL").
		Where("city IS NOT NULL AND city <> ''")
}

func (e *Engine) applyFilters(tx *gorm.DB, filters models.SearchFilters) *gorm.DB {
	tx = tx.
		Where("LOWER(status) = ?", "active").
		Where("list_price IS NOT NULL").
		Where("city IS NOT NULL AND city <> ''")

	if query := strings.TrimSpace(filters.Query); query != "" {
		pattern := "%" + strings.ToLower(query) + "%"
		tx = tx.Where(
			"LOWER(address) LIKE ? OR LOWER(formatted_address) LIKE ? OR LOWER(city) LIKE ? OR LOWER(public_remarks) LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	if filters.City != "" {
		tx = tx.Where("LOWER(city) = ?", strings.ToLower(filters.City))
	}

	if filters.PropertyType != "" {
		synonyms := listing.TypeSynonyms(filters.PropertyType)
		if len(synonyms) > 0 {
			conditions := make([]string, 0, len(synonyms))
			args := make([]interface{}, 0, len(synonyms))
			for _, synonym := range synonyms {
				conditions = append(conditions, "LOWER(property_type) LIKE ?")
				args = append(args, "%"+synonym+"%")
			}
			tx = tx.Where(strings.Join(conditions, " OR "), args...)
		}
	}

	// Each present bound is its own AND'd condition. SQL comparison against
	// NULL is never true, so a min filter excludes rows missing that field.
	if filters.MinPrice != nil {
		tx = tx.Where("list_price >= ?", *filters.MinPrice)
	}
	if filters.MaxPrice != nil {
		tx = tx.Where("list_price <= ?", *filters.MaxPrice)
	}
	if filters.MinBedrooms != nil {
		tx = tx.Where("bedrooms_total >= ?", *filters.MinBedrooms)
	}
	if filters.MaxBedrooms != nil {
		tx = tx.Where("bedrooms_total <= ?", *filters.MaxBedrooms)
	}
	if filters.MinBathrooms != nil {
		tx = tx.Where("bathrooms_total >= ?", *filters.MinBathrooms)
	}
	if filters.MaxBathrooms != nil {
		tx = tx.Where("bathrooms_total <= ?", *filters.MaxBathrooms)
	}
	if filters.MinArea != nil {
		tx = tx.Where("living_area_sq_ft >= ?", *filters.MinArea)
	}
	if filters.MaxArea != nil {
		tx = tx.Where("living_area_sq_ft <= ?", *filters.MaxArea)
	}

	return tx
}

func orderClause(sortBy string) string {
	switch sortBy {
	case models.SortPriceAsc:
		return "list_price ASC"
	case models.SortPriceDesc:
		return "list_price DESC"
	case models.SortDateAsc:
		return "list_date ASC"
	case models.SortDateDesc:
		return "list_date DESC"
	default:
		// Newest listed first when unspecified
		return "list_date DESC"
	}
}

// attachMedia transforms the raw page rows and batch-attaches each one's
// media summary via the aggregator.
func (e *Engine) attachMedia(rows []models.MlsListing) ([]models.SearchListing, error) {
	keys := make([]string, 0, len(rows))
	for i := range rows {
		keys = append(keys, rows[i].ListingKey)
	}

	grouped, err := e.media.BatchMedia(keys)
	if err != nil {
		return nil, fmt.Errorf("attaching media to search results: %w", err)
	}

	listings := make([]models.SearchListing, 0, len(rows))
	for i := range rows {
		canonical := listing.Transform(&rows[i], nil)
		items := grouped[rows[i].ListingKey]
		canonical.Media = items
		if url := media.PrimaryImageURL(items); url != nil {
			canonical.HeroImageURL = url
		} else if rows[i].HeroImageURL != nil && *rows[i].HeroImageURL != "" {
			// Fall back to the cached hero column when no media rows came
			// back (e.g. the sync delivered the cache but not the rows yet)
			canonical.HeroImageURL = rows[i].HeroImageURL
		}

		listings = append(listings, models.SearchListing{
			CanonicalProperty: canonical,
			PhotoCount:        media.PhotoCount(items),
		})
	}
	return listings, nil
}
