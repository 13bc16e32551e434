package routes

import (
	"restaurant-catalog-api/handlers"
	"restaurant-catalog-api/metrics"
	"restaurant-catalog-api/middleware"
	"restaurant-catalog-api/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter builds the engine with the shared middleware stack and every route.
func NewRouter(h *handlers.Handler, auth *middleware.Auth, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log), metrics.Middleware(), middleware.CORS())

	r.GET("/health", handlers.Health)
	r.GET("/metrics", metrics.Handler())

	SetupRoutes(r, h, auth)
	return r
}

func SetupRoutes(r *gin.Engine, h *handlers.Handler, auth *middleware.Auth) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/auth/register", h.Register)
		public.POST("/auth/login", h.Login)

		// Free-text search over every catalog
		public.GET("/restaurants", h.BrowseRestaurants)
	}

	// ── Authenticated routes ───────────────────────────────────────
	authed := r.Group("/api")
	authed.Use(auth.AuthRequired())
	{
		authed.GET("/profile", h.GetProfile)
	}

	// ── Restaurant owner routes ────────────────────────────────────
	owner := r.Group("/api/owner")
	owner.Use(auth.AuthRequired(), middleware.RoleRequired(models.RoleOwner))
	{
		owner.POST("/restaurants", h.CreateRestaurant)
		owner.GET("/restaurants", h.GetMyRestaurants)
		owner.GET("/restaurants/:id", h.GetMyRestaurant)

		owner.POST("/dishes", h.AddDish)
		owner.GET("/dishes/:id", h.GetDish)
		owner.PUT("/dishes/:id", h.UpdateDish)
		owner.DELETE("/dishes/:id", h.DeleteDish)
	}
}
