package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-share/backend/internal/middleware"
	"github.com/pageza/recipe-share/backend/internal/models"
	"github.com/pageza/recipe-share/backend/internal/service"
	"github.com/pageza/recipe-share/backend/internal/types"
)

// RecipeList is one page of recipes.
type RecipeList struct {
	Recipes    []models.Recipe  `json:"recipes"`
	Pagination types.Pagination `json:"pagination"`
}

// ReviewList is one page of a recipe's reviews.
type ReviewList struct {
	Reviews    []models.Review  `json:"reviews"`
	Pagination types.Pagination `json:"pagination"`
}

// RecipeHandler serves recipes and the reviews nested under them
type RecipeHandler struct {
	recipeService service.IRecipeService
	reviewService service.IReviewService
	validator     middleware.TokenValidator
	createLimiter *middleware.RateLimiter
	reviewLimiter *middleware.RateLimiter
}

// NewRecipeHandler creates a RecipeHandler without rate limits
func NewRecipeHandler(recipes service.IRecipeService, reviews service.IReviewService, validator middleware.TokenValidator) *RecipeHandler {
	return NewRecipeHandlerWithRateLimit(recipes, reviews, validator, nil, nil)
}

// NewRecipeHandlerWithRateLimit creates a RecipeHandler whose create
// endpoints are rate limited. Nil limiters disable limiting.
func NewRecipeHandlerWithRateLimit(recipes service.IRecipeService, reviews service.IReviewService, validator middleware.TokenValidator, createLimiter, reviewLimiter *middleware.RateLimiter) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipes,
		reviewService: reviews,
		validator:     validator,
		createLimiter: createLimiter,
		reviewLimiter: reviewLimiter,
	}
}

// RegisterRoutes registers the recipe routes on router
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := middleware.AuthMiddleware(h.validator)
	optional := middleware.OptionalAuth(h.validator)

	recipes := router.Group("/recipes")
	{
		recipes.GET("", optional, h.ListRecipes)
		recipes.GET("/slug/:slug", optional, h.GetRecipeBySlug)
		recipes.GET("/:id", optional, h.GetRecipe)
		recipes.POST("", withLimit(auth, h.createLimiter), h.CreateRecipe)
		recipes.PUT("/:id", auth, h.UpdateRecipe)
		recipes.DELETE("/:id", auth, h.DeleteRecipe)

		recipes.GET("/:id/reviews", h.ListReviews)
		recipes.POST("/:id/reviews", withLimit(auth, h.reviewLimiter), h.CreateReview)
	}
}

// withLimit chains auth with an optional rate limiter.
func withLimit(auth gin.HandlerFunc, limiter *middleware.RateLimiter) gin.HandlerFunc {
	if limiter == nil {
		return auth
	}
	limit := limiter.RateLimitMiddleware()
	return func(c *gin.Context) {
		auth(c)
		if c.IsAborted() {
			return
		}
		limit(c)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	var filter types.RecipeFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		fail(c, types.NewValidationError("Invalid query parameters"))
		return
	}
	recipes, pagination, err := h.recipeService.ListRecipes(c.Request.Context(), &filter, viewerID(c))
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, RecipeList{Recipes: recipes, Pagination: pagination})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := pathID(c, "id", "Recipe")
	if !ok {
		return
	}
	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), id, viewerID(c))
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, recipe)
}

func (h *RecipeHandler) GetRecipeBySlug(c *gin.Context) {
	recipe, err := h.recipeService.GetRecipeBySlug(c.Request.Context(), c.Param("slug"), viewerID(c))
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var req types.CreateRecipeRequest
	if !bindJSON(c, &req) {
		return
	}
	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), userID, &req)
	if err != nil {
		fail(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "Recipe created", recipe)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "Recipe")
	if !ok {
		return
	}
	var req types.UpdateRecipeRequest
	if !bindJSON(c, &req) {
		return
	}
	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), id, userID, &req)
	if err != nil {
		fail(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Recipe updated", recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "Recipe")
	if !ok {
		return
	}
	if err := h.recipeService.DeleteRecipe(c.Request.Context(), id, userID); err != nil {
		fail(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Recipe deleted", nil)
}

func (h *RecipeHandler) ListReviews(c *gin.Context) {
	id, ok := pathID(c, "id", "Recipe")
	if !ok {
		return
	}
	reviews, pagination, err := h.reviewService.ListReviews(c.Request.Context(), id, queryInt(c, "page", 1), queryInt(c, "limit", 0))
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, ReviewList{Reviews: reviews, Pagination: pagination})
}

func (h *RecipeHandler) CreateReview(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "Recipe")
	if !ok {
		return
	}
	var req types.CreateReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	review, err := h.reviewService.CreateReview(c.Request.Context(), id, userID, &req)
	if err != nil {
		fail(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "Review added", review)
}
