package api

import (
	"errors"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/paulmach/orb"
	"github.com/sirupsen/logrus"

	"northshore/server/internal/database"
	"northshore/server/internal/geometry"
	"northshore/server/internal/property"
	"northshore/server/internal/scheduler"
	"northshore/server/internal/search"
)

type Handler struct {
	store      *database.Store
	engine     *search.Engine
	properties *property.Service
	mapService *geometry.MapService
	scheduler  *scheduler.Scheduler
	logger     *logrus.Logger
}

func NewHandler(store *database.Store, engine *search.Engine, properties *property.Service, mapService *geometry.MapService, heroScheduler *scheduler.Scheduler, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Handler{
		store:      store,
		engine:     engine,
		properties: properties,
		mapService: mapService,
		scheduler:  heroScheduler,
		logger:     logger,
	}
}

// SearchListings handles the public search page query.
func (h *Handler) SearchListings(c *gin.Context) {
	filters := ParseSearchFilters(c)

	result, err := h.engine.Search(filters)
	if err != nil {
		h.logger.WithError(err).Error("Failed to search listings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search listings"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// SuggestListings handles autosuggest for the search box.
func (h *Handler) SuggestListings(c *gin.Context) {
	suggestions, err := h.engine.Suggest(c.Query("q"))
	if err != nil {
		h.logger.WithError(err).Error("Failed to build suggestions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build suggestions"})
		return
	}

	if suggestions == nil {
		// Short or empty prefixes serialize as an empty list, not null
		c.JSON(http.StatusOK, gin.H{"suggestions": []interface{}{}})
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// GetFeaturedListings returns the newest active listings with a hero image.
func (h *Handler) GetFeaturedListings(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "6")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = 6
	}

	listings, err := h.engine.Featured(limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get featured listings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get featured listings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"listings": listings})
}

// GetProperty serves the detail page for any identifier form: UUID, MLS
// number, listing key, or SEO slug.
func (h *Handler) GetProperty(c *gin.Context) {
	view, err := h.properties.GetProperty(c.Param("id"))
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to get property")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get property"})
		return
	}

	c.JSON(http.StatusOK, view)
}

// GetMapListings renders active listings inside the requested viewport as
// GeoJSON.
func (h *Handler) GetMapListings(c *gin.Context) {
	bound, ok := parseBound(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid map bounds"})
		return
	}

	collection, err := h.mapService.ActiveListings(bound)
	if err != nil {
		h.logger.WithError(err).Error("Failed to build map view")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build map view"})
		return
	}

	c.JSON(http.StatusOK, collection)
}

func parseBound(c *gin.Context) (orb.Bound, bool) {
	north, err1 := strconv.ParseFloat(c.Query("north"), 64)
	south, err2 := strconv.ParseFloat(c.Query("south"), 64)
	east, err3 := strconv.ParseFloat(c.Query("east"), 64)
	west, err4 := strconv.ParseFloat(c.Query("west"), 64)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return orb.Bound{}, false
	}
	if south > north || west > east {
		return orb.Bound{}, false
	}

	return orb.Bound{
		Min: orb.Point{west, south},
		Max: orb.Point{east, north},
	}, true
}
