package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-share/backend/internal/middleware"
	"github.com/pageza/recipe-share/backend/internal/service"
	"github.com/pageza/recipe-share/backend/internal/types"
)

// ReviewHandler serves review mutations addressed by review id
type ReviewHandler struct {
	reviewService service.IReviewService
	validator     middleware.TokenValidator
}

// NewReviewHandler creates a new ReviewHandler instance
func NewReviewHandler(reviews service.IReviewService, validator middleware.TokenValidator) *ReviewHandler {
	return &ReviewHandler{reviewService: reviews, validator: validator}
}

// RegisterRoutes registers the review routes on router
func (h *ReviewHandler) RegisterRoutes(router *gin.RouterGroup) {
	reviews := router.Group("/reviews")
	reviews.Use(middleware.AuthMiddleware(h.validator))
	{
		reviews.PUT("/:id", h.UpdateReview)
		reviews.DELETE("/:id", h.DeleteReview)
		reviews.POST("/:id/helpful", h.ToggleHelpful)
	}
}

func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "Review")
	if !ok {
		return
	}
	var req types.UpdateReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	review, err := h.reviewService.UpdateReview(c.Request.Context(), id, userID, &req)
	if err != nil {
		fail(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Review updated", review)
}

func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "Review")
	if !ok {
		return
	}
	if err := h.reviewService.DeleteReview(c.Request.Context(), id, userID); err != nil {
		fail(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Review deleted", nil)
}

func (h *ReviewHandler) ToggleHelpful(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "Review")
	if !ok {
		return
	}
	result, err := h.reviewService.ToggleHelpful(c.Request.Context(), id, userID)
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, result)
}
