package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipe-share/backend/internal/models"
	"github.com/pageza/recipe-share/backend/internal/service"
	"github.com/pageza/recipe-share/backend/internal/types"
)

// MockRecipeService is a mock implementation of the recipe service
type MockRecipeService struct {
	mock.Mock
}

func (m *MockRecipeService) CreateRecipe(ctx context.Context, authorID uuid.UUID, req *types.CreateRecipeRequest) (*models.Recipe, error) {
	args := m.Called(ctx, authorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

func (m *MockRecipeService) GetRecipe(ctx context.Context, id, viewerID uuid.UUID) (*models.Recipe, error) {
	args := m.Called(ctx, id, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

func (m *MockRecipeService) GetRecipeBySlug(ctx context.Context, slug string, viewerID uuid.UUID) (*models.Recipe, error) {
	args := m.Called(ctx, slug, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

func (m *MockRecipeService) ListRecipes(ctx context.Context, filter *types.RecipeFilter, viewerID uuid.UUID) ([]models.Recipe, types.Pagination, error) {
	args := m.Called(ctx, filter, viewerID)
	if args.Get(0) == nil {
		return nil, types.Pagination{}, args.Error(2)
	}
	return args.Get(0).([]models.Recipe), args.Get(1).(types.Pagination), args.Error(2)
}

func (m *MockRecipeService) UpdateRecipe(ctx context.Context, id, callerID uuid.UUID, req *types.UpdateRecipeRequest) (*models.Recipe, error) {
	args := m.Called(ctx, id, callerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

func (m *MockRecipeService) DeleteRecipe(ctx context.Context, id, callerID uuid.UUID) error {
	args := m.Called(ctx, id, callerID)
	return args.Error(0)
}

// MockReviewService is a mock implementation of the review service
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) CreateReview(ctx context.Context, recipeID, authorID uuid.UUID, req *types.CreateReviewRequest) (*models.Review, error) {
	args := m.Called(ctx, recipeID, authorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewService) ListReviews(ctx context.Context, recipeID uuid.UUID, page, limit int) ([]models.Review, types.Pagination, error) {
	args := m.Called(ctx, recipeID, page, limit)
	if args.Get(0) == nil {
		return nil, types.Pagination{}, args.Error(2)
	}
	return args.Get(0).([]models.Review), args.Get(1).(types.Pagination), args.Error(2)
}

func (m *MockReviewService) UpdateReview(ctx context.Context, reviewID, callerID uuid.UUID, req *types.UpdateReviewRequest) (*models.Review, error) {
	args := m.Called(ctx, reviewID, callerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewService) DeleteReview(ctx context.Context, reviewID, callerID uuid.UUID) error {
	args := m.Called(ctx, reviewID, callerID)
	return args.Error(0)
}

func (m *MockReviewService) ToggleHelpful(ctx context.Context, reviewID, userID uuid.UUID) (*service.HelpfulResult, error) {
	args := m.Called(ctx, reviewID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.HelpfulResult), args.Error(1)
}

var (
	_ service.IAuthService   = (*MockAuthService)(nil)
	_ service.IRecipeService = (*MockRecipeService)(nil)
	_ service.IReviewService = (*MockReviewService)(nil)
)
