package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers catalog, browse-session and owned-resource routes.
// Owned routes take the optional middleware: the resource service itself
// refuses anonymous callers.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, optionalAuth gin.HandlerFunc) {
	// === Public Catalog ===
	catalog := g.Group("/resources")
	{
		catalog.GET("", h.List)
		catalog.GET("/facets", h.Facets)
		catalog.GET("/:id", h.Get)
	}

	// === Browse Sessions ===
	browse := g.Group("/browse")
	{
		browse.POST("", h.StartSession)
		browse.GET("", h.GetSession)
		browse.PUT("/criteria", h.SetCriteria)
		browse.PUT("/page", h.SetPage)
		browse.POST("/next", h.NextPage)
		browse.POST("/prev", h.PrevPage)
		browse.POST("/resources/:id/useful", h.ToggleUseful)
		browse.POST("/resources/:id/favorite", h.ToggleFavorite)
	}

	// === Owned Resources ===
	owned := g.Group("/me/resources")
	owned.Use(optionalAuth)
	{
		owned.GET("", h.ListOwned)
		owned.POST("", h.CreateOwned)
		owned.POST("/validate", h.ValidateOwned)
		owned.GET("/:id", h.GetOwned)
		owned.PUT("/:id", h.UpdateOwned)
		owned.DELETE("/:id", h.DeleteOwned)
	}
}
