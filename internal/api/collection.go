package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/recipe-share/backend/internal/middleware"
	"github.com/pageza/recipe-share/backend/internal/models"
	"github.com/pageza/recipe-share/backend/internal/service"
	"github.com/pageza/recipe-share/backend/internal/types"
)

type collectionRecipeOp func(ctx context.Context, id, callerID, recipeID uuid.UUID) (*models.Collection, error)

// CollectionHandler serves recipe collections
type CollectionHandler struct {
	collectionService service.ICollectionService
	validator         middleware.TokenValidator
}

// NewCollectionHandler creates a new CollectionHandler instance
func NewCollectionHandler(collections service.ICollectionService, validator middleware.TokenValidator) *CollectionHandler {
	return &CollectionHandler{collectionService: collections, validator: validator}
}

// RegisterRoutes registers the collection routes on router
func (h *CollectionHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := middleware.AuthMiddleware(h.validator)

	collections := router.Group("/collections")
	{
		collections.GET("", auth, h.ListCollections)
		collections.POST("", auth, h.CreateCollection)
		collections.GET("/:id", middleware.OptionalAuth(h.validator), h.GetCollection)
		collections.PUT("/:id", auth, h.UpdateCollection)
		collections.DELETE("/:id", auth, h.DeleteCollection)
		collections.POST("/:id/recipes/:recipeId", auth, h.AddRecipe)
		collections.DELETE("/:id/recipes/:recipeId", auth, h.RemoveRecipe)
	}
}

func (h *CollectionHandler) ListCollections(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	collections, err := h.collectionService.ListCollections(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, collections)
}

func (h *CollectionHandler) CreateCollection(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var req types.CreateCollectionRequest
	if !bindJSON(c, &req) {
		return
	}
	collection, err := h.collectionService.CreateCollection(c.Request.Context(), userID, &req)
	if err != nil {
		fail(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "Collection created", collection)
}

func (h *CollectionHandler) GetCollection(c *gin.Context) {
	id, ok := pathID(c, "id", "Collection")
	if !ok {
		return
	}
	collection, err := h.collectionService.GetCollection(c.Request.Context(), id, viewerID(c))
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, collection)
}

func (h *CollectionHandler) UpdateCollection(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "Collection")
	if !ok {
		return
	}
	var req types.UpdateCollectionRequest
	if !bindJSON(c, &req) {
		return
	}
	collection, err := h.collectionService.UpdateCollection(c.Request.Context(), id, userID, &req)
	if err != nil {
		fail(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Collection updated", collection)
}

func (h *CollectionHandler) DeleteCollection(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "Collection")
	if !ok {
		return
	}
	if err := h.collectionService.DeleteCollection(c.Request.Context(), id, userID); err != nil {
		fail(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Collection deleted", nil)
}

func (h *CollectionHandler) AddRecipe(c *gin.Context) {
	h.changeRecipe(c, h.collectionService.AddRecipe, "Recipe added to collection")
}

func (h *CollectionHandler) RemoveRecipe(c *gin.Context) {
	h.changeRecipe(c, h.collectionService.RemoveRecipe, "Recipe removed from collection")
}

func (h *CollectionHandler) changeRecipe(c *gin.Context, op collectionRecipeOp, msg string) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "Collection")
	if !ok {
		return
	}
	recipeID, ok := pathID(c, "recipeId", "Recipe")
	if !ok {
		return
	}
	collection, err := op(c.Request.Context(), id, userID, recipeID)
	if err != nil {
		fail(c, err)
		return
	}
	respondMessage(c, http.StatusOK, msg, collection)
}
