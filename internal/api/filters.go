package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"northshore/server/internal/listing"
	"northshore/server/internal/models"
)

// ParseSearchFilters coerces raw query-string values into a SearchFilters
// value. A filter that cannot be coerced is ignored (treated as absent)
// rather than failing the whole search.
func ParseSearchFilters(c *gin.Context) models.SearchFilters {
	filters := models.SearchFilters{
		Query:        c.Query("query"),
		City:         c.Query("city"),
		PropertyType: c.Query("property_type"),
		SortBy:       c.Query("sort_by"),

		MinPrice:     listing.ParseOptionalFloat(c.Query("min_price")),
		MaxPrice:     listing.ParseOptionalFloat(c.Query("max_price")),
		MinBedrooms:  listing.ParseOptionalInt(c.Query("min_bedrooms")),
		MaxBedrooms:  listing.ParseOptionalInt(c.Query("max_bedrooms")),
		MinBathrooms: listing.ParseOptionalFloat(c.Query("min_bathrooms")),
		MaxBathrooms: listing.ParseOptionalFloat(c.Query("max_bathrooms")),
		MinArea:      listing.ParseOptionalFloat(c.Query("min_area")),
		MaxArea:      listing.ParseOptionalFloat(c.Query("max_area")),
	}

	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filters.Page = page
	}
	if pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "20")); err == nil {
		filters.PageSize = pageSize
	}

	return filters
}
