package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-share/backend/internal/middleware"
	"github.com/pageza/recipe-share/backend/internal/service"
	"github.com/pageza/recipe-share/backend/internal/types"
	"github.com/pageza/recipe-share/backend/internal/validation"
)

// ExternalRecipeHandler proxies the third-party recipe catalogue
type ExternalRecipeHandler struct {
	externalService service.IExternalRecipeService
	validator       middleware.TokenValidator
}

// NewExternalRecipeHandler creates a new ExternalRecipeHandler instance
func NewExternalRecipeHandler(external service.IExternalRecipeService, validator middleware.TokenValidator) *ExternalRecipeHandler {
	return &ExternalRecipeHandler{externalService: external, validator: validator}
}

// RegisterRoutes registers the external recipe routes on router
func (h *ExternalRecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	external := router.Group("/external/recipes")
	external.Use(middleware.AuthMiddleware(h.validator))
	{
		external.GET("/search", h.Search)
		external.GET("/random", h.Random)
		external.GET("/by-ingredients", h.ByIngredients)
		external.GET("/:id", h.GetRecipe)
	}
}

func (h *ExternalRecipeHandler) Search(c *gin.Context) {
	var params types.ExternalSearchParams
	if !bindQuery(c, &params) {
		return
	}
	body, err := h.externalService.SearchRecipes(c.Request.Context(), &params)
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, body)
}

func (h *ExternalRecipeHandler) Random(c *gin.Context) {
	var params types.ExternalRandomParams
	if !bindQuery(c, &params) {
		return
	}
	body, err := h.externalService.GetRandomRecipes(c.Request.Context(), &params)
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, body)
}

func (h *ExternalRecipeHandler) ByIngredients(c *gin.Context) {
	var params types.ExternalIngredientParams
	if !bindQuery(c, &params) {
		return
	}
	body, err := h.externalService.FindByIngredients(c.Request.Context(), &params)
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, body)
}

func (h *ExternalRecipeHandler) GetRecipe(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		fail(c, types.NotFound("External recipe"))
		return
	}
	body, err := h.externalService.GetRecipeInformation(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, body)
}

func bindQuery(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		fail(c, types.NewValidationError("Invalid query parameters"))
		return false
	}
	if err := validation.Struct(dst); err != nil {
		fail(c, err)
		return false
	}
	return true
}
