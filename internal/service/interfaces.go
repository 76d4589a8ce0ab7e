package service

import (
	"context"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/pageza/recipe-share/backend/internal/models"
	"github.com/pageza/recipe-share/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*models.User, string, error)
	Login(ctx context.Context, req *types.LoginRequest) (*models.User, string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.User, error)
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	CreateRecipe(ctx context.Context, authorID uuid.UUID, req *types.CreateRecipeRequest) (*models.Recipe, error)
	GetRecipe(ctx context.Context, id, viewerID uuid.UUID) (*models.Recipe, error)
	GetRecipeBySlug(ctx context.Context, slug string, viewerID uuid.UUID) (*models.Recipe, error)
	ListRecipes(ctx context.Context, filter *types.RecipeFilter, viewerID uuid.UUID) ([]models.Recipe, types.Pagination, error)
	UpdateRecipe(ctx context.Context, id, callerID uuid.UUID, req *types.UpdateRecipeRequest) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, id, callerID uuid.UUID) error
}

// IReviewService defines the interface for review operations
type IReviewService interface {
	CreateReview(ctx context.Context, recipeID, authorID uuid.UUID, req *types.CreateReviewRequest) (*models.Review, error)
	ListReviews(ctx context.Context, recipeID uuid.UUID, page, limit int) ([]models.Review, types.Pagination, error)
	UpdateReview(ctx context.Context, reviewID, callerID uuid.UUID, req *types.UpdateReviewRequest) (*models.Review, error)
	DeleteReview(ctx context.Context, reviewID, callerID uuid.UUID) error
	ToggleHelpful(ctx context.Context, reviewID, userID uuid.UUID) (*HelpfulResult, error)
}

// ICollectionService defines the interface for collection operations
type ICollectionService interface {
	CreateCollection(ctx context.Context, ownerID uuid.UUID, req *types.CreateCollectionRequest) (*models.Collection, error)
	ListCollections(ctx context.Context, ownerID uuid.UUID) ([]models.Collection, error)
	GetCollection(ctx context.Context, id, viewerID uuid.UUID) (*models.Collection, error)
	UpdateCollection(ctx context.Context, id, callerID uuid.UUID, req *types.UpdateCollectionRequest) (*models.Collection, error)
	DeleteCollection(ctx context.Context, id, callerID uuid.UUID) error
	AddRecipe(ctx context.Context, id, callerID, recipeID uuid.UUID) (*models.Collection, error)
	RemoveRecipe(ctx context.Context, id, callerID, recipeID uuid.UUID) (*models.Collection, error)
}

// IMealPlanService defines the interface for meal plan operations
type IMealPlanService interface {
	CreateMealPlan(ctx context.Context, ownerID uuid.UUID, req *types.CreateMealPlanRequest) (*models.MealPlan, error)
	GetMealPlan(ctx context.Context, id, callerID uuid.UUID) (*models.MealPlan, error)
	ListMealPlans(ctx context.Context, ownerID uuid.UUID, activeOnly bool) ([]models.MealPlan, error)
	UpdateMealPlan(ctx context.Context, id, callerID uuid.UUID, req *types.UpdateMealPlanRequest) (*models.MealPlan, error)
	SetSlot(ctx context.Context, id, callerID uuid.UUID, req *types.SetSlotRequest) (*models.MealPlan, error)
	RemoveSnack(ctx context.Context, id, callerID uuid.UUID, req *types.RemoveSnackRequest) (*models.MealPlan, error)
	DeleteMealPlan(ctx context.Context, id, callerID uuid.UUID) error
	ShoppingList(ctx context.Context, id, callerID uuid.UUID) (*types.ShoppingListResponse, error)
	CheckOwner(ctx context.Context, id, callerID uuid.UUID) error
}

// INotificationService defines the interface for notification operations
type INotificationService interface {
	ListNotifications(ctx context.Context, recipientID uuid.UUID, page, limit int) (*NotificationPage, error)
	MarkRead(ctx context.Context, id, recipientID uuid.UUID) (*models.Notification, error)
	MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error)
	DeleteNotification(ctx context.Context, id, recipientID uuid.UUID) error
}

// IImageService defines the interface for image uploads
type IImageService interface {
	UploadImage(ctx context.Context, data []byte) (string, error)
}

// IExternalRecipeService defines the interface for the third-party recipe proxy
type IExternalRecipeService interface {
	SearchRecipes(ctx context.Context, params *types.ExternalSearchParams) (json.RawMessage, error)
	GetRecipeInformation(ctx context.Context, id int) (json.RawMessage, error)
	GetRandomRecipes(ctx context.Context, params *types.ExternalRandomParams) (json.RawMessage, error)
	FindByIngredients(ctx context.Context, params *types.ExternalIngredientParams) (json.RawMessage, error)
}

var (
	_ IAuthService           = (*AuthService)(nil)
	_ IRecipeService         = (*RecipeService)(nil)
	_ IReviewService         = (*ReviewService)(nil)
	_ ICollectionService     = (*CollectionService)(nil)
	_ IMealPlanService       = (*MealPlanService)(nil)
	_ INotificationService   = (*NotificationService)(nil)
	_ IImageService          = (*ImageService)(nil)
	_ IExternalRecipeService = (*SpoonacularService)(nil)
)
