package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"northshore/server/internal/database"
	"northshore/server/internal/models"
)

// Admin CRUD over the CRM store. Authentication for this group is mounted
// by the surrounding deployment; these handlers only own the data access.

// ListCrmProperties returns CRM rows for the admin panel.
func (h *Handler) ListCrmProperties(c *gin.Context) {
	includeArchived := c.DefaultQuery("include_archived", "false") == "true"

	properties, err := h.store.ListCrmProperties(includeArchived)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list CRM properties")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list properties"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"properties": properties})
}

// GetCrmProperty returns one CRM row by primary key.
func (h *Handler) GetCrmProperty(c *gin.Context) {
	property, err := h.store.GetCrmProperty(c.Param("id"))
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to get CRM property")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get property"})
		return
	}

	c.JSON(http.StatusOK, property)
}

// CreateCrmProperty inserts a new CRM row.
func (h *Handler) CreateCrmProperty(c *gin.Context) {
	var property models.CrmProperty
	if err := c.ShouldBindJSON(&property); err != nil {
		h.logger.WithError(err).Error("Invalid property payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.store.CreateProperty(&property); err != nil {
		h.logger.WithError(err).Error("Failed to create CRM property")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create property"})
		return
	}

	c.JSON(http.StatusCreated, property)
}

// UpdateCrmProperty saves changes to an existing CRM row. Last writer wins.
func (h *Handler) UpdateCrmProperty(c *gin.Context) {
	var property models.CrmProperty
	if err := c.ShouldBindJSON(&property); err != nil {
		h.logger.WithError(err).Error("Invalid property payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	property.ID = c.Param("id")

	err := h.store.UpdateProperty(&property)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to update CRM property")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update property"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Property updated"})
}

// DeleteCrmProperty removes a CRM row and its dependent rows.
func (h *Handler) DeleteCrmProperty(c *gin.Context) {
	err := h.store.DeleteProperty(c.Param("id"))
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to delete CRM property")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete property"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Property deleted"})
}

// ResyncHeroCache triggers an out-of-schedule hero image cache scan.
func (h *Handler) ResyncHeroCache(c *gin.Context) {
	go h.scheduler.TriggerScan()

	c.JSON(http.StatusAccepted, gin.H{
		"status": "Hero image cache resync started",
	})
}
