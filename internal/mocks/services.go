package mocks

import (
	"context"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipe-share/backend/internal/models"
	"github.com/pageza/recipe-share/backend/internal/service"
	"github.com/pageza/recipe-share/backend/internal/types"
)

// MockCollectionService is a mock implementation of the collection service
type MockCollectionService struct {
	mock.Mock
}

func (m *MockCollectionService) collection(args mock.Arguments) (*models.Collection, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Collection), args.Error(1)
}

func (m *MockCollectionService) CreateCollection(ctx context.Context, ownerID uuid.UUID, req *types.CreateCollectionRequest) (*models.Collection, error) {
	return m.collection(m.Called(ctx, ownerID, req))
}

func (m *MockCollectionService) ListCollections(ctx context.Context, ownerID uuid.UUID) ([]models.Collection, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Collection), args.Error(1)
}

func (m *MockCollectionService) GetCollection(ctx context.Context, id, viewerID uuid.UUID) (*models.Collection, error) {
	return m.collection(m.Called(ctx, id, viewerID))
}

func (m *MockCollectionService) UpdateCollection(ctx context.Context, id, callerID uuid.UUID, req *types.UpdateCollectionRequest) (*models.Collection, error) {
	return m.collection(m.Called(ctx, id, callerID, req))
}

func (m *MockCollectionService) DeleteCollection(ctx context.Context, id, callerID uuid.UUID) error {
	return m.Called(ctx, id, callerID).Error(0)
}

func (m *MockCollectionService) AddRecipe(ctx context.Context, id, callerID, recipeID uuid.UUID) (*models.Collection, error) {
	return m.collection(m.Called(ctx, id, callerID, recipeID))
}

func (m *MockCollectionService) RemoveRecipe(ctx context.Context, id, callerID, recipeID uuid.UUID) (*models.Collection, error) {
	return m.collection(m.Called(ctx, id, callerID, recipeID))
}

// MockNotificationService is a mock implementation of the notification service
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) ListNotifications(ctx context.Context, recipientID uuid.UUID, page, limit int) (*service.NotificationPage, error) {
	args := m.Called(ctx, recipientID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.NotificationPage), args.Error(1)
}

func (m *MockNotificationService) MarkRead(ctx context.Context, id, recipientID uuid.UUID) (*models.Notification, error) {
	args := m.Called(ctx, id, recipientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}

func (m *MockNotificationService) MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationService) DeleteNotification(ctx context.Context, id, recipientID uuid.UUID) error {
	return m.Called(ctx, id, recipientID).Error(0)
}

// MockImageService is a mock implementation of the image service
type MockImageService struct {
	mock.Mock
}

func (m *MockImageService) UploadImage(ctx context.Context, data []byte) (string, error) {
	args := m.Called(ctx, data)
	return args.String(0), args.Error(1)
}

// MockExternalRecipeService is a mock implementation of the external recipe proxy
type MockExternalRecipeService struct {
	mock.Mock
}

func raw(args mock.Arguments) (json.RawMessage, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *MockExternalRecipeService) SearchRecipes(ctx context.Context, params *types.ExternalSearchParams) (json.RawMessage, error) {
	return raw(m.Called(ctx, params))
}

func (m *MockExternalRecipeService) GetRecipeInformation(ctx context.Context, id int) (json.RawMessage, error) {
	return raw(m.Called(ctx, id))
}

func (m *MockExternalRecipeService) GetRandomRecipes(ctx context.Context, params *types.ExternalRandomParams) (json.RawMessage, error) {
	return raw(m.Called(ctx, params))
}

func (m *MockExternalRecipeService) FindByIngredients(ctx context.Context, params *types.ExternalIngredientParams) (json.RawMessage, error) {
	return raw(m.Called(ctx, params))
}

var (
	_ service.ICollectionService     = (*MockCollectionService)(nil)
	_ service.INotificationService   = (*MockNotificationService)(nil)
	_ service.IImageService          = (*MockImageService)(nil)
	_ service.IExternalRecipeService = (*MockExternalRecipeService)(nil)
)
