package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipe-share/backend/internal/models"
	"github.com/pageza/recipe-share/backend/internal/service"
	"github.com/pageza/recipe-share/backend/internal/types"
)

// MockMealPlanService is a mock implementation of the meal plan service
type MockMealPlanService struct {
	mock.Mock
}

func (m *MockMealPlanService) plan(args mock.Arguments) (*models.MealPlan, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MealPlan), args.Error(1)
}

func (m *MockMealPlanService) CreateMealPlan(ctx context.Context, ownerID uuid.UUID, req *types.CreateMealPlanRequest) (*models.MealPlan, error) {
	return m.plan(m.Called(ctx, ownerID, req))
}

func (m *MockMealPlanService) GetMealPlan(ctx context.Context, id, callerID uuid.UUID) (*models.MealPlan, error) {
	return m.plan(m.Called(ctx, id, callerID))
}

func (m *MockMealPlanService) ListMealPlans(ctx context.Context, ownerID uuid.UUID, activeOnly bool) ([]models.MealPlan, error) {
	args := m.Called(ctx, ownerID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MealPlan), args.Error(1)
}

func (m *MockMealPlanService) UpdateMealPlan(ctx context.Context, id, callerID uuid.UUID, req *types.UpdateMealPlanRequest) (*models.MealPlan, error) {
	return m.plan(m.Called(ctx, id, callerID, req))
}

func (m *MockMealPlanService) SetSlot(ctx context.Context, id, callerID uuid.UUID, req *types.SetSlotRequest) (*models.MealPlan, error) {
	return m.plan(m.Called(ctx, id, callerID, req))
}

func (m *MockMealPlanService) RemoveSnack(ctx context.Context, id, callerID uuid.UUID, req *types.RemoveSnackRequest) (*models.MealPlan, error) {
	return m.plan(m.Called(ctx, id, callerID, req))
}

func (m *MockMealPlanService) DeleteMealPlan(ctx context.Context, id, callerID uuid.UUID) error {
	return m.Called(ctx, id, callerID).Error(0)
}

func (m *MockMealPlanService) ShoppingList(ctx context.Context, id, callerID uuid.UUID) (*types.ShoppingListResponse, error) {
	args := m.Called(ctx, id, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ShoppingListResponse), args.Error(1)
}

func (m *MockMealPlanService) CheckOwner(ctx context.Context, id, callerID uuid.UUID) error {
	return m.Called(ctx, id, callerID).Error(0)
}

var _ service.IMealPlanService = (*MockMealPlanService)(nil)
