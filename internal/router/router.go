package router

import (
	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-share/backend/internal/api"
	"github.com/pageza/recipe-share/backend/internal/middleware"
)

// Handlers groups the HTTP handlers mounted under /api
type Handlers struct {
	Auth          *api.AuthHandler
	Recipes       *api.RecipeHandler
	Reviews       *api.ReviewHandler
	Collections   *api.CollectionHandler
	MealPlans     *api.MealPlanHandler
	Notifications *api.NotificationHandler
	Uploads       *api.UploadHandler
	External      *api.ExternalRecipeHandler
	Health        *api.HealthHandler
}

// Options controls the engine-wide middleware
type Options struct {
	CORSOrigins []string
	Production  bool
}

// SetupRouter configures the application routes
func SetupRouter(h *Handlers, opts Options) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Recovery(opts.Production))
	router.Use(middleware.RequestLogger())
	router.Use(middleware.PrometheusMetrics())
	router.Use(middleware.CORS(opts.CORSOrigins))
	router.Use(middleware.ErrorHandler(opts.Production))

	if h.Health != nil {
		h.Health.RegisterRoutes(router)
	}

	apiGroup := router.Group("/api")
	for _, r := range []interface {
		RegisterRoutes(*gin.RouterGroup)
	}{h.Auth, h.Recipes, h.Reviews, h.Collections, h.MealPlans, h.Notifications, h.Uploads, h.External} {
		r.RegisterRoutes(apiGroup)
	}

	return router
}
