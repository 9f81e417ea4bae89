package api

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes registers the public marketing routes and the admin panel
// routes. adminMiddleware is whatever authentication the deployment mounts
// in front of the admin group; this core does not implement it.
func SetupRoutes(router *gin.Engine, handler *Handler, adminMiddleware ...gin.HandlerFunc) {
	api := router.Group("/api")
	{
		api.GET("/listings/search", handler.SearchListings)
		api.GET("/listings/suggest", handler.SuggestListings)
		api.GET("/listings/featured", handler.GetFeaturedListings)
		api.GET("/listings/map", handler.GetMapListings)
		api.GET("/properties/:id", handler.GetProperty)
	}

	admin := router.Group("/api/admin", adminMiddleware...)
	{
		admin.GET("/properties", handler.ListCrmProperties)
		admin.POST("/properties", handler.CreateCrmProperty)
		admin.GET("/properties/:id", handler.GetCrmProperty)
		admin.PUT("/properties/:id", handler.UpdateCrmProperty)
		admin.DELETE("/properties/:id", handler.DeleteCrmProperty)
		admin.POST("/hero-cache/resync", handler.ResyncHeroCache)
	}
}
