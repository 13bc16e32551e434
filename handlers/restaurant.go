package handlers

import (
	"net/http"
	"strconv"

	"restaurant-catalog-api/catalog"
	"restaurant-catalog-api/middleware"

	"github.com/gin-gonic/gin"
)

// ── Restaurant Management ────────────────────────────────────────────────────

type CreateRestaurantRequest struct {
	Name        string  `json:"name" binding:"required,notblank"`
	Description *string `json:"description"`
}

// CreateRestaurant lets an owner create a restaurant
func (h *Handler) CreateRestaurant(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	var req CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	restaurant, err := h.catalog.CreateRestaurant(c.Request.Context(), ownerID, catalog.RestaurantInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Restaurant created", "restaurant": restaurant})
}

// GetMyRestaurants lists the restaurants owned by the logged-in user
func (h *Handler) GetMyRestaurants(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	restaurants, err := h.catalog.MyRestaurants(c.Request.Context(), ownerID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":       len(restaurants),
		"restaurants": restaurants,
		// order tracking lives outside this service
		"has_incomplete_orders": false,
	})
}

// GetMyRestaurant returns one of the caller's restaurants with its dishes
func (h *Handler) GetMyRestaurant(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	restaurant, err := h.catalog.Restaurant(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
}

// ── Dish Management ─────────────────────────────────────────────────────────

type AddDishRequest struct {
	RestaurantID uint     `json:"restaurant_id" binding:"required"`
	Name         string   `json:"name" binding:"required,notblank"`
	Description  *string  `json:"description"`
	Price        *float64 `json:"price" binding:"required,gte=0"`
	Photo        *string  `json:"photo" binding:"omitempty,url"`
}

type UpdateDishRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	Photo       *string  `json:"photo" binding:"omitempty,url"`
}

// AddDish adds a dish to one of the caller's restaurants
func (h *Handler) AddDish(c *gin.Context) {
	var req AddDishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	dish, err := h.catalog.AddDish(c.Request.Context(), middleware.GetUserID(c), catalog.DishInput{
		RestaurantID: req.RestaurantID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Photo:        req.Photo,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Dish added", "dish": dish})
}

// GetDish returns one dish of the caller's restaurants
func (h *Handler) GetDish(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	dish, err := h.catalog.Dish(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dish": dish})
}

// UpdateDish changes a dish (only by the owner)
func (h *Handler) UpdateDish(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req UpdateDishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	dish, err := h.catalog.UpdateDish(c.Request.Context(), middleware.GetUserID(c), catalog.DishUpdate{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Photo:       req.Photo,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Dish updated", "dish": dish})
}

// DeleteDish removes a dish
func (h *Handler) DeleteDish(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	dish, err := h.catalog.DeleteDish(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Dish deleted", "dish": dish})
}

func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}
