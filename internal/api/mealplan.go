package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/recipe-share/backend/internal/middleware"
	"github.com/pageza/recipe-share/backend/internal/service"
	"github.com/pageza/recipe-share/backend/internal/types"
)

// MealPlanHandler serves meal plans and their shopping lists
type MealPlanHandler struct {
	mealPlanService service.IMealPlanService
	validator       middleware.TokenValidator
}

// NewMealPlanHandler creates a new MealPlanHandler instance
func NewMealPlanHandler(mealPlans service.IMealPlanService, validator middleware.TokenValidator) *MealPlanHandler {
	return &MealPlanHandler{mealPlanService: mealPlans, validator: validator}
}

// RegisterRoutes registers the meal plan routes on router
func (h *MealPlanHandler) RegisterRoutes(router *gin.RouterGroup) {
	plans := router.Group("/meal-plans")
	plans.Use(middleware.AuthMiddleware(h.validator))
	{
		plans.GET("", h.ListMealPlans)
		plans.POST("", h.CreateMealPlan)
		plans.GET("/:id", h.GetMealPlan)
		plans.PUT("/:id", h.UpdateMealPlan)
		plans.DELETE("/:id", h.DeleteMealPlan)
		plans.PUT("/:id/day", h.SetSlot)
		plans.DELETE("/:id/day/snacks", h.RemoveSnack)
		plans.GET("/:id/shopping-list", h.ShoppingList)
	}
}

func (h *MealPlanHandler) ListMealPlans(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	plans, err := h.mealPlanService.ListMealPlans(c.Request.Context(), userID, c.Query("active") == "true")
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, plans)
}

func (h *MealPlanHandler) CreateMealPlan(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var req types.CreateMealPlanRequest
	if !bindJSON(c, &req) {
		return
	}
	plan, err := h.mealPlanService.CreateMealPlan(c.Request.Context(), userID, &req)
	if err != nil {
		fail(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "Meal plan created", plan)
}

func (h *MealPlanHandler) GetMealPlan(c *gin.Context) {
	userID, id, ok := h.target(c)
	if !ok {
		return
	}
	plan, err := h.mealPlanService.GetMealPlan(c.Request.Context(), id, userID)
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, plan)
}

func (h *MealPlanHandler) UpdateMealPlan(c *gin.Context) {
	userID, id, ok := h.target(c)
	if !ok {
		return
	}
	var req types.UpdateMealPlanRequest
	if !h.bindOwned(c, id, userID, &req) {
		return
	}
	plan, err := h.mealPlanService.UpdateMealPlan(c.Request.Context(), id, userID, &req)
	if err != nil {
		fail(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Meal plan updated", plan)
}

func (h *MealPlanHandler) DeleteMealPlan(c *gin.Context) {
	userID, id, ok := h.target(c)
	if !ok {
		return
	}
	if err := h.mealPlanService.DeleteMealPlan(c.Request.Context(), id, userID); err != nil {
		fail(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Meal plan deleted", nil)
}

func (h *MealPlanHandler) SetSlot(c *gin.Context) {
	userID, id, ok := h.target(c)
	if !ok {
		return
	}
	var req types.SetSlotRequest
	if !h.bindOwned(c, id, userID, &req) {
		return
	}
	plan, err := h.mealPlanService.SetSlot(c.Request.Context(), id, userID, &req)
	if err != nil {
		fail(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Meal plan updated", plan)
}

func (h *MealPlanHandler) RemoveSnack(c *gin.Context) {
	userID, id, ok := h.target(c)
	if !ok {
		return
	}
	var req types.RemoveSnackRequest
	if !h.bindOwned(c, id, userID, &req) {
		return
	}
	plan, err := h.mealPlanService.RemoveSnack(c.Request.Context(), id, userID, &req)
	if err != nil {
		fail(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Snack removed", plan)
}

func (h *MealPlanHandler) ShoppingList(c *gin.Context) {
	userID, id, ok := h.target(c)
	if !ok {
		return
	}
	list, err := h.mealPlanService.ShoppingList(c.Request.Context(), id, userID)
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, list)
}

func (h *MealPlanHandler) target(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := callerID(c)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	id, ok := pathID(c, "id", "Meal plan")
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	return userID, id, true
}

// bindOwned decodes the body of a plan mutation. An undecodable body is
// reported only after ownership has been confirmed.
func (h *MealPlanHandler) bindOwned(c *gin.Context, id, userID uuid.UUID, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if ownerErr := h.mealPlanService.CheckOwner(c.Request.Context(), id, userID); ownerErr != nil {
			fail(c, ownerErr)
			return false
		}
		fail(c, types.NewValidationError(invalidBodyMessage))
		return false
	}
	return true
}
