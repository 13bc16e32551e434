package handlers

import (
	"net/http"

	"restaurant-catalog-api/catalog"

	"github.com/gin-gonic/gin"
)

type BrowseRequest struct {
	Query  string `form:"query"`
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
}

// BrowseRestaurants runs the public free-text search. A restaurant matches
// when any query word appears in its name, description or dishes.
func (h *Handler) BrowseRestaurants(c *gin.Context) {
	var req BrowseRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	restaurants, err := h.catalog.Browse(c.Request.Context(), catalog.BrowseQuery{
		Query:  req.Query,
		Limit:  req.Limit,
		Offset: req.Offset,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":       len(restaurants),
		"restaurants": restaurants,
	})
}

// Health reports liveness
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "Restaurant Catalog API",
		"version": "1.0.0",
	})
}
