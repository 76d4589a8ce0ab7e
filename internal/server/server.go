package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/recipe-share/backend/config"
	"github.com/pageza/recipe-share/backend/internal/api"
	"github.com/pageza/recipe-share/backend/internal/cache"
	"github.com/pageza/recipe-share/backend/internal/middleware"
	"github.com/pageza/recipe-share/backend/internal/router"
	"github.com/pageza/recipe-share/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
	redis  *redis.Client
	images *config.S3Config
}

// Option customises optional integrations of a Server
type Option func(*Server)

// WithRedis backs the external-recipe cache and the rate limiters with client.
func WithRedis(client *redis.Client) Option {
	return func(s *Server) { s.redis = client }
}

// WithImageStorage enables image uploads to the given bucket.
func WithImageStorage(s3 *config.S3Config) Option {
	return func(s *Server) { s.images = s3 }
}

// New wires services and handlers onto a router
func New(cfg *config.Config, db *gorm.DB, opts ...Option) *Server {
	s := &Server{db: db}
	for _, opt := range opts {
		opt(s)
	}

	authService := service.NewAuthService(db, cfg.JWTSecret, cfg.JWTExpiry)
	recipeService := service.NewRecipeService(db)
	reviewService := service.NewReviewService(db)

	var store cache.Store = cache.NewMemory()
	var createLimiter, reviewLimiter *middleware.RateLimiter
	if s.redis != nil {
		store = cache.NewRedis(s.redis, "recipeshare:")
		createLimiter = middleware.NewRecipeCreationRateLimiter(s.redis)
		reviewLimiter = middleware.NewReviewRateLimiter(s.redis)
	}

	external := service.NewSpoonacularService(service.SpoonacularOptions{
		APIKey:   cfg.SpoonacularAPIKey,
		BaseURL:  cfg.SpoonacularBaseURL,
		CacheTTL: cfg.SpoonacularCacheTTL,
	}, store)

	handlers := &router.Handlers{
		Auth:          api.NewAuthHandler(authService),
		Recipes:       api.NewRecipeHandlerWithRateLimit(recipeService, reviewService, authService, createLimiter, reviewLimiter),
		Reviews:       api.NewReviewHandler(reviewService, authService),
		Collections:   api.NewCollectionHandler(service.NewCollectionService(db), authService),
		MealPlans:     api.NewMealPlanHandler(service.NewMealPlanService(db), authService),
		Notifications: api.NewNotificationHandler(service.NewNotificationService(db), authService),
		Uploads:       api.NewUploadHandler(service.NewImageService(s.images), authService),
		External:      api.NewExternalRecipeHandler(external, authService),
		Health:        api.NewHealthHandler(db),
	}

	production := config.GetEnvironment() == config.Production
	if production {
		gin.SetMode(gin.ReleaseMode)
	}
	s.router = router.SetupRouter(handlers, router.Options{
		CORSOrigins: cfg.CORSOrigins,
		Production:  production,
	})

	s.http = &http.Server{
		Addr:              net.JoinHostPort(cfg.ServerHost, cfg.ServerPort),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

// Handler returns the configured router
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves HTTP until Shutdown is called
func (s *Server) Start() error {
	slog.Info("server listening", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server and releases its connections
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err := s.http.Shutdown(ctx)
	if s.redis != nil {
		if cerr := s.redis.Close(); cerr != nil {
			slog.Warn("closing redis", "error", cerr)
		}
	}
	if sqlDB, dberr := s.db.DB(); dberr == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			slog.Warn("closing database", "error", cerr)
		}
	}
	return err
}
